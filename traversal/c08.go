package traversal

import (
	"github.com/TimurEke/AutoPas/cellblock"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/thread"
)

// C08Traversal is spec §4.4's c08 scheduling order: base cells colored
// by parity on every axis, each pairing with its self and 13 forward
// neighbors. CellAt/AllCells are supplied by the caller so the same
// scheduling code drives both owned-storage (cellblock.Grid) and
// reference-storage (container.ReferenceLinkedCells) grids (spec §9).
type C08Traversal struct {
	Geom     *cellblock.Geometry
	CellAt   func(c [3]int) cellfunctor.CellAccessor
	AllCells func() []cellfunctor.CellAccessor
	CF       *cellfunctor.CellFunctor
	Pool     *thread.Pool
}

func NewC08(geom *cellblock.Geometry, cellAt func([3]int) cellfunctor.CellAccessor, allCells func() []cellfunctor.CellAccessor, cf *cellfunctor.CellFunctor, pool *thread.Pool) *C08Traversal {
	return &C08Traversal{Geom: geom, CellAt: cellAt, AllCells: allCells, CF: cf, Pool: pool}
}

// IsApplicable requires every owned dimension to hold at least one
// cell, trivially true for any valid Geometry (spec §3 invariant
// guarantees numOwned >= 1 per axis already).
func (t *C08Traversal) IsApplicable() bool {
	od := t.Geom.OwnedDims()
	return od[0] >= 1 && od[1] >= 1 && od[2] >= 1
}

func (t *C08Traversal) InitTraversal() { t.CF.LoadCells(t.AllCells()) }
func (t *C08Traversal) EndTraversal()  { t.CF.ExtractCells(t.AllCells()) }

func (t *C08Traversal) TraverseParticlePairs() {
	runColored(t.Geom, t.Pool, c08Offsets, 2,
		func(c [3]int) { t.CF.SelfCell(t.CellAt(c)) },
		func(c1, c2 [3]int) {
			cellPairBoth(t.CF, t.CellAt(c1), t.CellAt(c2), t.Geom.IsOwnedCoord(c2))
		})
}

func (t *C08Traversal) DataLayout() options.DataLayoutOption  { return t.CF.Layout }
func (t *C08Traversal) UseNewton3() bool                       { return t.CF.Newton3 }
func (t *C08Traversal) TraversalType() options.TraversalOption { return options.TraversalC08 }

// cellPairBoth runs CellFunctor.CellPair(c1,c2), and under Newton-3 off
// also runs the reverse-ordered (c2,c1) pair so c2 ends up updated too
// (spec §4.3 ordering rule: the reverse pair is a separate task, here
// scheduled back to back since both cells are already exclusively
// owned by this color's task). The reverse call is skipped when c2 is
// a halo cell: halo particles are never iterated or integrated, so
// they never need a force update.
func cellPairBoth(cf *cellfunctor.CellFunctor, c1, c2 cellfunctor.CellAccessor, c2Owned bool) {
	cf.CellPair(c1, c2)
	if !cf.Newton3 && c2Owned {
		cf.CellPair(c2, c1)
	}
}
