package container

import (
	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/cell"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/neighbor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/traversal"
)

// DirectSum is spec §4.2's correctness baseline: one owned cell and one
// halo cell, O(N^2) pairwise work and no neighbor structure to rebuild.
type DirectSum struct {
	boxMin, boxMax [3]float64
	owned          *cell.Cell
	halo           *cell.Cell
	haloIndex      *neighbor.IDSet
}

// NewDirectSum builds an empty DirectSum container over [boxMin,boxMax).
func NewDirectSum(boxMin, boxMax [3]float64) *DirectSum {
	return &DirectSum{
		boxMin: boxMin, boxMax: boxMax,
		owned: cell.New(), halo: cell.New(),
		haloIndex: neighbor.NewIDSet(64),
	}
}

func (d *DirectSum) inBox(r [3]float64) bool {
	for i := 0; i < 3; i++ {
		if r[i] < d.boxMin[i] || r[i] >= d.boxMax[i] {
			return false
		}
	}
	return true
}

func (d *DirectSum) Add(p particle.Particle) {
	if !d.inBox(p.GetPosition()) {
		apierror.External("DirectSum.Add: particle %d at %v lies outside the owned box [%v,%v)",
			p.GetID(), p.GetPosition(), d.boxMin, d.boxMax)
	}
	p.SetOwnershipState(particle.OwnedState)
	d.owned.Add(p)
}

func (d *DirectSum) AddHalo(p particle.Particle) {
	if d.inBox(p.GetPosition()) {
		apierror.External("DirectSum.AddHalo: particle %d at %v lies inside the owned box",
			p.GetID(), p.GetPosition())
	}
	p.SetOwnershipState(particle.HaloState)
	idx := d.halo.Size()
	d.halo.Add(p)
	d.haloIndex.Put(p.GetID(), idx)
}

func (d *DirectSum) UpdateHalo(p particle.Particle) bool {
	idx, ok := d.haloIndex.Lookup(p.GetID())
	if !ok {
		return false
	}
	target := d.halo.Particles()[idx]
	target.SetPosition(p.GetPosition())
	target.SetVelocity(p.GetVelocity())
	target.SetForce(p.GetForce())
	return true
}

func (d *DirectSum) DeleteHalo() {
	d.halo.Clear()
	d.haloIndex = neighbor.NewIDSet(64)
}

// IterateHalo calls f for every halo particle, for callers that need the
// ownership states a Container's own Iterate doesn't surface (spec §6
// "Iterator behavior flags").
func (d *DirectSum) IterateHalo(f func(particle.Particle)) {
	d.halo.Iterate(false, f)
}

func (d *DirectSum) Update() []particle.Particle {
	return d.owned.Compact(func(p particle.Particle) bool { return !d.inBox(p.GetPosition()) })
}

// IsUpdateNeeded is always false: DirectSum has no neighbor structure
// to go stale, every iteratePairwise recomputes the full owned x halo
// cross product fresh (spec §4.5 applies only to Verlet-style
// variants).
func (d *DirectSum) IsUpdateNeeded() bool { return false }

func (d *DirectSum) Iterate(includeDummies bool, f func(particle.Particle)) {
	d.owned.Iterate(includeDummies, f)
}

func (d *DirectSum) RegionIterate(lo, hi [3]float64, includeDummies bool, f func(particle.Particle)) {
	d.owned.Iterate(includeDummies, func(p particle.Particle) {
		if inRegion(p.GetPosition(), lo, hi) {
			f(p)
		}
	})
}

func (d *DirectSum) IteratePairwise(f functor.Functor, traversalType options.TraversalOption, layout options.DataLayoutOption, newton3 bool) {
	if traversalType != options.TraversalDirectSum {
		apierror.External("DirectSum.IteratePairwise: traversal %v is not compatible with DirectSum", traversalType)
	}
	cf := cellfunctor.New(f, layout, newton3)
	tr := traversal.NewDirectSum(d.owned, d.halo, cf)
	tr.InitTraversal()
	tr.TraverseParticlePairs()
	tr.EndTraversal()
}

func (d *DirectSum) RebuildNeighborLists() {}

func (d *DirectSum) ContainerType() options.ContainerOption { return options.DirectSum }

// inRegion reports whether r lies in the closed box [lo,hi] (spec §8
// invariant 6: regionIterate visits the closed interval, unlike
// updateContainer's half-open owned-box test).
func inRegion(r, lo, hi [3]float64) bool {
	for i := 0; i < 3; i++ {
		if r[i] < lo[i] || r[i] > hi[i] {
			return false
		}
	}
	return true
}

var _ Container = (*DirectSum)(nil)
