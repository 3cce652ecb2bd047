package traversal

import (
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/options"
)

// DirectSumTraversal is spec §4.2 DirectSum's only traversal: one
// self-cell over the single owned cell, and one cell-pair against the
// single halo cell holding every imported particle.
type DirectSumTraversal struct {
	Owned, Halo cellfunctor.CellAccessor
	CF          *cellfunctor.CellFunctor
}

func NewDirectSum(owned, halo cellfunctor.CellAccessor, cf *cellfunctor.CellFunctor) *DirectSumTraversal {
	return &DirectSumTraversal{Owned: owned, Halo: halo, CF: cf}
}

func (t *DirectSumTraversal) IsApplicable() bool { return true }

func (t *DirectSumTraversal) InitTraversal() {
	t.CF.LoadCells([]cellfunctor.CellAccessor{t.Owned, t.Halo})
}

func (t *DirectSumTraversal) EndTraversal() {
	t.CF.ExtractCells([]cellfunctor.CellAccessor{t.Owned, t.Halo})
}

// TraverseParticlePairs always walks Owned x Halo in that order and
// never the reverse: halo particles are ghost images that are never
// iterated or integrated, so only the owned side of each pair needs a
// force update, with or without Newton-3.
func (t *DirectSumTraversal) TraverseParticlePairs() {
	t.CF.SelfCell(t.Owned)
	ownedOnly := *t.CF
	ownedOnly.Newton3 = false
	ownedOnly.CellPair(t.Owned, t.Halo)
}

func (t *DirectSumTraversal) DataLayout() options.DataLayoutOption  { return t.CF.Layout }
func (t *DirectSumTraversal) UseNewton3() bool                       { return t.CF.Newton3 }
func (t *DirectSumTraversal) TraversalType() options.TraversalOption { return options.TraversalDirectSum }
