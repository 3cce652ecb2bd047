/*Package cellblock implements the regular 3D grid of cells every
cell-based container is built on (spec §3 "CellBlock3D"): a box of owned
cells surrounded by one layer of halo cells on every face, with 3D<->1D
index mapping and cell lookup by position.
*/
package cellblock

import (
	"math"

	"github.com/TimurEke/AutoPas/apierror"
)

// Geometry is the pure index-math half of CellBlock3D: box bounds, cell
// size, and grid dimensions, with no cell storage attached. It is shared
// between the owned-storage Grid below and container.ReferenceLinkedCells'
// grid of cell.ReferenceCell, since both need identical coordinate
// mapping over identical bounds.
type Geometry struct {
	BoxMin, BoxMax     [3]float64
	InteractionLength  float64
	CellSizeFactor     float64
	CellSize           [3]float64
	// Dims is the halo-inclusive grid size: Dims[i]-2 owned cells plus one
	// halo layer on each face along axis i.
	Dims [3]int
}

// NewGeometry derives a grid whose cell side length is >= interactionLength
// * cellSizeFactor along each axis (spec §3 invariant), covering
// [boxMin,boxMax) with exactly one halo layer per face.
func NewGeometry(boxMin, boxMax [3]float64, interactionLength, cellSizeFactor float64) *Geometry {
	if interactionLength <= 0 {
		apierror.External("CellBlock3D: interactionLength must be positive, got %g", interactionLength)
	}
	if cellSizeFactor <= 0 {
		apierror.External("CellBlock3D: cellSizeFactor must be positive, got %g", cellSizeFactor)
	}
	g := &Geometry{
		BoxMin:            boxMin,
		BoxMax:            boxMax,
		InteractionLength: interactionLength,
		CellSizeFactor:    cellSizeFactor,
	}
	minSide := interactionLength * cellSizeFactor
	for d := 0; d < 3; d++ {
		span := boxMax[d] - boxMin[d]
		if span <= 0 {
			apierror.External("CellBlock3D: boxMax[%d]=%g must be greater than boxMin[%d]=%g", d, boxMax[d], d, boxMin[d])
		}
		numOwned := int(math.Floor(span / minSide))
		if numOwned < 1 {
			numOwned = 1
		}
		g.CellSize[d] = span / float64(numOwned)
		g.Dims[d] = numOwned + 2 // + one halo layer each side
	}
	return g
}

// NumCells returns the total number of cells, owned and halo.
func (g *Geometry) NumCells() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

// OwnedDims returns the number of owned (non-halo) cells along each axis.
func (g *Geometry) OwnedDims() [3]int {
	return [3]int{g.Dims[0] - 2, g.Dims[1] - 2, g.Dims[2] - 2}
}

// Index3Dto1D maps 3D halo-inclusive cell coordinates to a flat index.
func (g *Geometry) Index3Dto1D(c [3]int) int {
	return c[0] + g.Dims[0]*(c[1]+g.Dims[1]*c[2])
}

// Index1Dto3D is the inverse of Index3Dto1D.
func (g *Geometry) Index1Dto3D(idx int) [3]int {
	x := idx % g.Dims[0]
	idx /= g.Dims[0]
	y := idx % g.Dims[1]
	z := idx / g.Dims[1]
	return [3]int{x, y, z}
}

// IsOwnedCoord reports whether c names an owned (interior) cell, as
// opposed to a halo cell.
func (g *Geometry) IsOwnedCoord(c [3]int) bool {
	for d := 0; d < 3; d++ {
		if c[d] < 1 || c[d] > g.Dims[d]-2 {
			return false
		}
	}
	return true
}

// InGridBounds reports whether c names any valid cell (owned or halo) in
// this grid.
func (g *Geometry) InGridBounds(c [3]int) bool {
	for d := 0; d < 3; d++ {
		if c[d] < 0 || c[d] >= g.Dims[d] {
			return false
		}
	}
	return true
}

// CoordsOfPosition returns the halo-inclusive cell coordinates containing
// position r, and whether r falls within the grid's halo shell at all
// (false means r is further than one halo layer away from the box).
func (g *Geometry) CoordsOfPosition(r [3]float64) (c [3]int, inGrid bool) {
	for d := 0; d < 3; d++ {
		rel := (r[d] - g.BoxMin[d]) / g.CellSize[d]
		coord := int(math.Floor(rel)) + 1 // +1 to shift into halo-inclusive coords
		c[d] = coord
	}
	return c, g.InGridBounds(c)
}

// CellBounds returns the [lo,hi) spatial bounds of the cell at halo-
// inclusive coordinates c.
func (g *Geometry) CellBounds(c [3]int) (lo, hi [3]float64) {
	for d := 0; d < 3; d++ {
		lo[d] = g.BoxMin[d] + float64(c[d]-1)*g.CellSize[d]
		hi[d] = lo[d] + g.CellSize[d]
	}
	return lo, hi
}

// InOwnedBox reports whether r lies in [BoxMin,BoxMax), the region owned
// particles must occupy.
func (g *Geometry) InOwnedBox(r [3]float64) bool {
	for d := 0; d < 3; d++ {
		if r[d] < g.BoxMin[d] || r[d] >= g.BoxMax[d] {
			return false
		}
	}
	return true
}
