package traversal

import (
	"github.com/TimurEke/AutoPas/cellblock"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/thread"
)

// BalancedSlicedTraversal is spec §4.4's balancedSliced order: sliced's
// wall-locking scheme, but slab widths are chosen from each owned
// x-column's estimated load rather than split evenly, so uneven
// particle density doesn't leave some workers idle. Load is supplied by
// the caller as a function of active (non-dummy) particle count per
// owned cell, since that count is read differently from an owned-
// storage cell.Cell than from a reference-storage cell.ReferenceCell.
type BalancedSlicedTraversal struct {
	Geom      *cellblock.Geometry
	CellAt    func(c [3]int) cellfunctor.CellAccessor
	AllCells  func() []cellfunctor.CellAccessor
	CellCount func(c [3]int) int
	CF        *cellfunctor.CellFunctor
	Pool      *thread.Pool
	Estimator options.LoadEstimatorOption
}

func NewBalancedSliced(geom *cellblock.Geometry, cellAt func([3]int) cellfunctor.CellAccessor, allCells func() []cellfunctor.CellAccessor, cellCount func([3]int) int, cf *cellfunctor.CellFunctor, pool *thread.Pool, estimator options.LoadEstimatorOption) *BalancedSlicedTraversal {
	return &BalancedSlicedTraversal{Geom: geom, CellAt: cellAt, AllCells: allCells, CellCount: cellCount, CF: cf, Pool: pool, Estimator: estimator}
}

func (t *BalancedSlicedTraversal) IsApplicable() bool {
	od := t.Geom.OwnedDims()
	return od[0] >= t.Pool.Workers() && od[1] >= 1 && od[2] >= 1
}

func (t *BalancedSlicedTraversal) InitTraversal() { t.CF.LoadCells(t.AllCells()) }
func (t *BalancedSlicedTraversal) EndTraversal()  { t.CF.ExtractCells(t.AllCells()) }

func (t *BalancedSlicedTraversal) TraverseParticlePairs() {
	runSliced(t.Geom, t.CellAt, t.CF, t.balancedSlabs())
}

func (t *BalancedSlicedTraversal) DataLayout() options.DataLayoutOption { return t.CF.Layout }
func (t *BalancedSlicedTraversal) UseNewton3() bool                     { return t.CF.Newton3 }
func (t *BalancedSlicedTraversal) TraversalType() options.TraversalOption {
	return options.TraversalBalancedSliced
}

// columnLoad estimates the work owned x-column x costs, by particle
// count (LoadEstimatorNone) or the squared particle count
// (LoadEstimatorSquaredCellSize, approximating O(n^2) pairwise cost
// within a dense column, spec §4.4).
func (t *BalancedSlicedTraversal) columnLoad(x int) float64 {
	od := t.Geom.OwnedDims()
	n := 0
	for z := 1; z <= od[2]; z++ {
		for y := 1; y <= od[1]; y++ {
			n += t.CellCount([3]int{x, y, z})
		}
	}
	if t.Estimator == options.LoadEstimatorSquaredCellSize {
		return float64(n) * float64(n)
	}
	return float64(n)
}

// balancedSlabs greedily packs owned x-columns into t.Pool.Workers()
// contiguous ranges so each worker's accumulated column load is as
// close as possible to the running target share, rather than splitting
// column count evenly (spec §4.4 "balancedSliced").
func (t *BalancedSlicedTraversal) balancedSlabs() [][2]int {
	n := t.Geom.OwnedDims()[0]
	slabs := t.Pool.Workers()
	if slabs > n {
		slabs = n
	}
	if slabs < 1 {
		slabs = 1
	}

	loads := make([]float64, n+1)
	total := 0.0
	for x := 1; x <= n; x++ {
		l := t.columnLoad(x)
		loads[x] = l
		total += l
	}

	out := make([][2]int, 0, slabs)
	start := 1
	remainingTotal := total
	remainingSlabs := slabs
	for w := 0; w < slabs; w++ {
		if w == slabs-1 {
			out = append(out, [2]int{start, n})
			break
		}
		target := remainingTotal / float64(remainingSlabs)
		acc := 0.0
		x := start
		for x <= n && (acc < target || x == start) && n-x >= remainingSlabs-w-1 {
			acc += loads[x]
			remainingTotal -= loads[x]
			x++
		}
		out = append(out, [2]int{start, x - 1})
		start = x
		remainingSlabs--
	}
	return out
}
