package container

import (
	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/cell"
	"github.com/TimurEke/AutoPas/cellblock"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/neighbor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/thread"
	"github.com/TimurEke/AutoPas/traversal"
)

// ReferenceLinkedCells is LinkedCells' reference-storage twin (spec §9
// "reference vs owned particle storage"): cells hold indices into a
// single cell.ParticleStore rather than owning their own particle
// slices, so a full re-sort only moves index ints, not particle data.
type ReferenceLinkedCells struct {
	geom      *cellblock.Geometry
	store     *cell.ParticleStore
	cells     []*cell.ReferenceCell
	haloIndex *neighbor.IDSet
	pool      *thread.Pool
	estimator options.LoadEstimatorOption
}

func NewReferenceLinkedCells(boxMin, boxMax [3]float64, interactionLength, cellSizeFactor float64, pool *thread.Pool, estimator options.LoadEstimatorOption) *ReferenceLinkedCells {
	geom := cellblock.NewGeometry(boxMin, boxMax, interactionLength, cellSizeFactor)
	store := cell.NewParticleStore()
	cells := make([]*cell.ReferenceCell, geom.NumCells())
	for i := range cells {
		cells[i] = cell.NewReferenceCell(store)
	}
	return &ReferenceLinkedCells{geom: geom, store: store, cells: cells, haloIndex: neighbor.NewIDSet(64), pool: pool, estimator: estimator}
}

func (r *ReferenceLinkedCells) cellAt(c [3]int) *cell.ReferenceCell {
	return r.cells[r.geom.Index3Dto1D(c)]
}

func (r *ReferenceLinkedCells) Add(p particle.Particle) {
	if !r.geom.InOwnedBox(p.GetPosition()) {
		apierror.External("ReferenceLinkedCells.Add: particle %d at %v lies outside the owned box [%v,%v)",
			p.GetID(), p.GetPosition(), r.geom.BoxMin, r.geom.BoxMax)
	}
	p.SetOwnershipState(particle.OwnedState)
	idx := r.store.Append(p)
	coord, _ := r.geom.CoordsOfPosition(p.GetPosition())
	r.cellAt(coord).AddIndex(idx)
}

func (r *ReferenceLinkedCells) AddHalo(p particle.Particle) {
	if r.geom.InOwnedBox(p.GetPosition()) {
		apierror.External("ReferenceLinkedCells.AddHalo: particle %d at %v lies inside the owned box",
			p.GetID(), p.GetPosition())
	}
	p.SetOwnershipState(particle.HaloState)
	coord, inGrid := r.geom.CoordsOfPosition(p.GetPosition())
	if !inGrid {
		apierror.External("ReferenceLinkedCells.AddHalo: particle %d at %v lies further than one interaction length outside the box",
			p.GetID(), p.GetPosition())
	}
	idx := r.store.Append(p)
	r.cellAt(coord).AddIndex(idx)
	r.haloIndex.Put(p.GetID(), idx)
}

func (r *ReferenceLinkedCells) UpdateHalo(p particle.Particle) bool {
	idx, ok := r.haloIndex.Lookup(p.GetID())
	if !ok {
		return false
	}
	target := r.store.At(idx)
	target.SetPosition(p.GetPosition())
	target.SetVelocity(p.GetVelocity())
	target.SetForce(p.GetForce())
	return true
}

func (r *ReferenceLinkedCells) DeleteHalo() {
	r.store.Compact(func(p particle.Particle) bool { return !p.IsHalo() })
	r.rebuild()
}

// IterateHalo calls f for every halo particle.
func (r *ReferenceLinkedCells) IterateHalo(f func(particle.Particle)) {
	for idx := 0; idx < r.store.Len(); idx++ {
		p := r.store.At(idx)
		if p.IsHalo() {
			f(p)
		}
	}
}

// rebuild resets every cell's index list and the halo index table and
// re-derives both from the store's current contents, the bulk rebuild
// cell.ParticleStore's Dirty contract calls for after any Compact
// (spec §4.2, §9).
func (r *ReferenceLinkedCells) rebuild() {
	for _, c := range r.cells {
		c.Reset()
	}
	r.haloIndex = neighbor.NewIDSet(64)
	for idx := 0; idx < r.store.Len(); idx++ {
		p := r.store.At(idx)
		coord, _ := r.geom.CoordsOfPosition(p.GetPosition())
		r.cellAt(coord).AddIndex(idx)
		if p.IsHalo() {
			r.haloIndex.Put(p.GetID(), idx)
		}
	}
	r.store.ClearDirty()
}

func (r *ReferenceLinkedCells) Update() []particle.Particle {
	var leavers []particle.Particle
	r.store.Compact(func(p particle.Particle) bool {
		if !p.IsOwned() {
			return true
		}
		if !r.geom.InOwnedBox(p.GetPosition()) {
			leavers = append(leavers, p)
			return false
		}
		return true
	})
	r.rebuild()
	return leavers
}

func (r *ReferenceLinkedCells) IsUpdateNeeded() bool { return false }

func (r *ReferenceLinkedCells) Iterate(includeDummies bool, f func(particle.Particle)) {
	for idx := 0; idx < r.store.Len(); idx++ {
		p := r.store.At(idx)
		if !p.IsOwned() {
			continue
		}
		if p.IsDummy() && !includeDummies {
			continue
		}
		f(p)
	}
}

func (r *ReferenceLinkedCells) RegionIterate(lo, hi [3]float64, includeDummies bool, f func(particle.Particle)) {
	r.Iterate(includeDummies, func(p particle.Particle) {
		if inRegion(p.GetPosition(), lo, hi) {
			f(p)
		}
	})
}

func (r *ReferenceLinkedCells) buildTraversal(traversalType options.TraversalOption, cf *cellfunctor.CellFunctor) traversal.Traversal {
	cellAt := func(c [3]int) cellfunctor.CellAccessor { return r.cellAt(c) }
	allCells := func() []cellfunctor.CellAccessor {
		out := make([]cellfunctor.CellAccessor, len(r.cells))
		for i, c := range r.cells {
			out[i] = c
		}
		return out
	}

	switch traversalType {
	case options.TraversalC08:
		return traversal.NewC08(r.geom, cellAt, allCells, cf, r.pool)
	case options.TraversalC18:
		return traversal.NewC18(r.geom, cellAt, allCells, cf, r.pool)
	case options.TraversalSliced:
		return traversal.NewSliced(r.geom, cellAt, allCells, cf, r.pool)
	case options.TraversalBalancedSliced:
		cellCount := func(c [3]int) int { return r.cellAt(c).Size() }
		return traversal.NewBalancedSliced(r.geom, cellAt, allCells, cellCount, cf, r.pool, r.estimator)
	default:
		apierror.External("ReferenceLinkedCells.IteratePairwise: traversal %v is not compatible with ReferenceLinkedCells", traversalType)
		return nil
	}
}

func (r *ReferenceLinkedCells) IteratePairwise(f functor.Functor, traversalType options.TraversalOption, layout options.DataLayoutOption, newton3 bool) {
	cf := cellfunctor.New(f, layout, newton3)
	tr := r.buildTraversal(traversalType, cf)
	if !tr.IsApplicable() {
		apierror.External("ReferenceLinkedCells.IteratePairwise: traversal %v is not applicable to this grid (owned dims %v, workers %d)",
			traversalType, r.geom.OwnedDims(), r.pool.Workers())
	}
	tr.InitTraversal()
	tr.TraverseParticlePairs()
	tr.EndTraversal()
}

func (r *ReferenceLinkedCells) RebuildNeighborLists() {}

func (r *ReferenceLinkedCells) ContainerType() options.ContainerOption {
	return options.ReferenceLinkedCells
}

var _ Container = (*ReferenceLinkedCells)(nil)
