package traversal

import (
	"github.com/TimurEke/AutoPas/cellblock"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/thread"
)

// C18Traversal is spec §4.4's c18 scheduling order: it covers the same
// pairs as c08 with a differently shaped half-shell whose offsets span
// -1..1 on every axis, scheduled in 27 colors (mod 3) so same-colored
// tasks are write-disjoint.
type C18Traversal struct {
	Geom     *cellblock.Geometry
	CellAt   func(c [3]int) cellfunctor.CellAccessor
	AllCells func() []cellfunctor.CellAccessor
	CF       *cellfunctor.CellFunctor
	Pool     *thread.Pool
}

func NewC18(geom *cellblock.Geometry, cellAt func([3]int) cellfunctor.CellAccessor, allCells func() []cellfunctor.CellAccessor, cf *cellfunctor.CellFunctor, pool *thread.Pool) *C18Traversal {
	return &C18Traversal{Geom: geom, CellAt: cellAt, AllCells: allCells, CF: cf, Pool: pool}
}

func (t *C18Traversal) IsApplicable() bool {
	od := t.Geom.OwnedDims()
	return od[0] >= 1 && od[1] >= 1 && od[2] >= 1
}

func (t *C18Traversal) InitTraversal() { t.CF.LoadCells(t.AllCells()) }
func (t *C18Traversal) EndTraversal()  { t.CF.ExtractCells(t.AllCells()) }

func (t *C18Traversal) TraverseParticlePairs() {
	runColored(t.Geom, t.Pool, c18Offsets, 3,
		func(c [3]int) { t.CF.SelfCell(t.CellAt(c)) },
		func(c1, c2 [3]int) {
			cellPairBoth(t.CF, t.CellAt(c1), t.CellAt(c2), t.Geom.IsOwnedCoord(c2))
		})
}

func (t *C18Traversal) DataLayout() options.DataLayoutOption  { return t.CF.Layout }
func (t *C18Traversal) UseNewton3() bool                       { return t.CF.Newton3 }
func (t *C18Traversal) TraversalType() options.TraversalOption { return options.TraversalC18 }
