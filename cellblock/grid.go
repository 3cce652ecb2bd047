package cellblock

import (
	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/cell"
	"github.com/TimurEke/AutoPas/particle"
)

// Grid is a CellBlock3D with owned cell.Cell storage (spec §3, §4.2
// "LinkedCells"). LinkedCells and VerletLists are built on top of a
// Grid; DirectSum uses two plain cell.Cells and VerletClusterLists its
// own towers, and the reference-storage variant uses Geometry directly
// with cell.ReferenceCell instead (see container.ReferenceLinkedCells).
type Grid struct {
	Geom  *Geometry
	cells []*cell.Cell
}

// NewGrid builds a Grid with freshly allocated, empty cells.
func NewGrid(boxMin, boxMax [3]float64, interactionLength, cellSizeFactor float64) *Grid {
	geom := NewGeometry(boxMin, boxMax, interactionLength, cellSizeFactor)
	cells := make([]*cell.Cell, geom.NumCells())
	for i := range cells {
		cells[i] = cell.New()
	}
	return &Grid{Geom: geom, cells: cells}
}

// Cells returns every cell, owned and halo, indexed by Index3Dto1D order.
func (g *Grid) Cells() []*cell.Cell { return g.cells }

// CellAt returns the cell at halo-inclusive 3D coordinates c.
func (g *Grid) CellAt(c [3]int) *cell.Cell {
	return g.cells[g.Geom.Index3Dto1D(c)]
}

// CellAtIndex returns the cell at flat index idx.
func (g *Grid) CellAtIndex(idx int) *cell.Cell { return g.cells[idx] }

// Add inserts an owned particle into the cell containing its position.
// Adding a position outside [boxMin,boxMax) is a programmer error (spec
// §4.2 "Failure semantics").
func (g *Grid) Add(p particle.Particle) {
	if !g.Geom.InOwnedBox(p.GetPosition()) {
		apierror.External(
			"Grid.Add: particle %d at position %v lies outside the owned box [%v,%v)",
			p.GetID(), p.GetPosition(), g.Geom.BoxMin, g.Geom.BoxMax)
	}
	p.SetOwnershipState(particle.OwnedState)
	c, _ := g.Geom.CoordsOfPosition(p.GetPosition())
	g.CellAt(c).Add(p)
}

// AddHalo inserts a halo particle into the halo cell containing its
// position. Adding a position inside the owned box is a programmer error
// (spec §4.2).
func (g *Grid) AddHalo(p particle.Particle) {
	if g.Geom.InOwnedBox(p.GetPosition()) {
		apierror.External(
			"Grid.AddHalo: particle %d at position %v lies inside the owned box; halo particles must be outside it",
			p.GetID(), p.GetPosition())
	}
	p.SetOwnershipState(particle.HaloState)
	c, inGrid := g.Geom.CoordsOfPosition(p.GetPosition())
	if !inGrid {
		apierror.External(
			"Grid.AddHalo: particle %d at position %v lies further than one interaction length outside the box",
			p.GetID(), p.GetPosition())
	}
	g.CellAt(c).Add(p)
}

// OwnedCellCoords returns every halo-inclusive coordinate naming an owned
// cell, in ascending x,y,z order.
func (g *Grid) OwnedCellCoords() [][3]int {
	od := g.Geom.OwnedDims()
	out := make([][3]int, 0, od[0]*od[1]*od[2])
	for z := 1; z <= od[2]; z++ {
		for y := 1; y <= od[1]; y++ {
			for x := 1; x <= od[0]; x++ {
				out = append(out, [3]int{x, y, z})
			}
		}
	}
	return out
}

// IterateOwned calls f for every non-dummy particle in every owned cell.
func (g *Grid) IterateOwned(includeDummies bool, f func(particle.Particle)) {
	for _, c := range g.OwnedCellCoords() {
		g.CellAt(c).Iterate(includeDummies, f)
	}
}

// IterateAll calls f for every non-dummy particle in every cell, owned or
// halo.
func (g *Grid) IterateAll(includeDummies bool, f func(particle.Particle)) {
	for _, c := range g.cells {
		c.Iterate(includeDummies, f)
	}
}

// ClearHalo empties every halo cell (spec §4.2 "deleteHalo").
func (g *Grid) ClearHalo() {
	for idx, c := range g.cells {
		coord := g.Geom.Index1Dto3D(idx)
		if !g.Geom.IsOwnedCoord(coord) {
			c.Clear()
		}
	}
}
