package container

import (
	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/cellblock"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/neighbor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/thread"
	"github.com/TimurEke/AutoPas/traversal"
)

// LinkedCells is spec §4.2's cell-grid container: a cellblock.Grid of
// owned-storage cells, re-sorted into place on every Update instead of
// relying on a separate neighbor list.
type LinkedCells struct {
	grid      *cellblock.Grid
	haloIndex *neighbor.IDSet
	pool      *thread.Pool
	estimator options.LoadEstimatorOption
}

// NewLinkedCells builds a LinkedCells container whose grid covers
// [boxMin,boxMax) with one halo layer, cells at least
// interactionLength*cellSizeFactor wide (spec §3 invariant).
func NewLinkedCells(boxMin, boxMax [3]float64, interactionLength, cellSizeFactor float64, pool *thread.Pool, estimator options.LoadEstimatorOption) *LinkedCells {
	return &LinkedCells{
		grid:      cellblock.NewGrid(boxMin, boxMax, interactionLength, cellSizeFactor),
		haloIndex: neighbor.NewIDSet(64),
		pool:      pool,
		estimator: estimator,
	}
}

func (l *LinkedCells) Add(p particle.Particle) { l.grid.Add(p) }

func (l *LinkedCells) AddHalo(p particle.Particle) {
	l.grid.AddHalo(p)
	coord, _ := l.grid.Geom.CoordsOfPosition(p.GetPosition())
	l.haloIndex.Put(p.GetID(), l.grid.Geom.Index3Dto1D(coord))
}

func (l *LinkedCells) UpdateHalo(p particle.Particle) bool {
	idx, ok := l.haloIndex.Lookup(p.GetID())
	if !ok {
		return false
	}
	var target particle.Particle
	for _, q := range l.grid.CellAtIndex(idx).Particles() {
		if q.GetID() == p.GetID() {
			target = q
			break
		}
	}
	if target == nil {
		return false
	}
	target.SetPosition(p.GetPosition())
	target.SetVelocity(p.GetVelocity())
	target.SetForce(p.GetForce())
	return true
}

func (l *LinkedCells) DeleteHalo() {
	l.grid.ClearHalo()
	l.haloIndex = neighbor.NewIDSet(64)
}

// IterateHalo calls f for every halo particle.
func (l *LinkedCells) IterateHalo(f func(particle.Particle)) {
	l.grid.IterateAll(false, func(p particle.Particle) {
		if p.IsHalo() {
			f(p)
		}
	})
}

// Update resorts every owned cell's particles against their current
// position: particles that drifted into a different owned cell are
// reinserted there, particles that drifted outside [boxMin,boxMax) are
// collected and returned exactly once each (spec §8 invariant 5).
func (l *LinkedCells) Update() []particle.Particle {
	var drifted []particle.Particle
	for _, c := range l.grid.OwnedCellCoords() {
		removed := l.grid.CellAt(c).Compact(func(p particle.Particle) bool {
			if !l.grid.Geom.InOwnedBox(p.GetPosition()) {
				return true
			}
			newCoord, _ := l.grid.Geom.CoordsOfPosition(p.GetPosition())
			return newCoord != c
		})
		drifted = append(drifted, removed...)
	}

	var leavers []particle.Particle
	for _, p := range drifted {
		if l.grid.Geom.InOwnedBox(p.GetPosition()) {
			l.grid.Add(p)
		} else {
			leavers = append(leavers, p)
		}
	}
	return leavers
}

// IsUpdateNeeded is always false: LinkedCells has no separate neighbor
// list, Update always resorts cells fresh (spec §4.5 applies only to
// Verlet-style variants).
func (l *LinkedCells) IsUpdateNeeded() bool { return false }

func (l *LinkedCells) Iterate(includeDummies bool, f func(particle.Particle)) {
	l.grid.IterateOwned(includeDummies, f)
}

func (l *LinkedCells) RegionIterate(lo, hi [3]float64, includeDummies bool, f func(particle.Particle)) {
	l.grid.IterateOwned(includeDummies, func(p particle.Particle) {
		if inRegion(p.GetPosition(), lo, hi) {
			f(p)
		}
	})
}

func (l *LinkedCells) buildTraversal(traversalType options.TraversalOption, cf *cellfunctor.CellFunctor) traversal.Traversal {
	cellAt := func(c [3]int) cellfunctor.CellAccessor { return l.grid.CellAt(c) }
	allCells := func() []cellfunctor.CellAccessor {
		cells := l.grid.Cells()
		out := make([]cellfunctor.CellAccessor, len(cells))
		for i, c := range cells {
			out[i] = c
		}
		return out
	}

	switch traversalType {
	case options.TraversalC08:
		return traversal.NewC08(l.grid.Geom, cellAt, allCells, cf, l.pool)
	case options.TraversalC18:
		return traversal.NewC18(l.grid.Geom, cellAt, allCells, cf, l.pool)
	case options.TraversalSliced:
		return traversal.NewSliced(l.grid.Geom, cellAt, allCells, cf, l.pool)
	case options.TraversalBalancedSliced:
		cellCount := func(c [3]int) int { return l.grid.CellAt(c).ActiveSize() }
		return traversal.NewBalancedSliced(l.grid.Geom, cellAt, allCells, cellCount, cf, l.pool, l.estimator)
	default:
		apierror.External("LinkedCells.IteratePairwise: traversal %v is not compatible with LinkedCells", traversalType)
		return nil
	}
}

func (l *LinkedCells) IteratePairwise(f functor.Functor, traversalType options.TraversalOption, layout options.DataLayoutOption, newton3 bool) {
	cf := cellfunctor.New(f, layout, newton3)
	tr := l.buildTraversal(traversalType, cf)
	if !tr.IsApplicable() {
		apierror.External("LinkedCells.IteratePairwise: traversal %v is not applicable to this grid (owned dims %v, workers %d)",
			traversalType, l.grid.Geom.OwnedDims(), l.pool.Workers())
	}
	tr.InitTraversal()
	tr.TraverseParticlePairs()
	tr.EndTraversal()
}

func (l *LinkedCells) RebuildNeighborLists() {}

func (l *LinkedCells) ContainerType() options.ContainerOption { return options.LinkedCells }

var _ Container = (*LinkedCells)(nil)
