package container

import (
	"math"

	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/cellblock"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/neighbor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
)

// verletEntry is one owned particle's cached neighbor list, kept in two
// shapes so both Newton-3 policies can be served from a single rebuild:
// Half holds only the forward half of each pair (for a Newton-3 pass
// that visits every unordered pair exactly once and updates both
// sides); Full holds every neighbor in both directions (for a
// Newton-3-off pass, where each particle must see every neighbor itself
// since only the first argument of a pair call gets updated).
type verletEntry struct {
	Half []particle.Particle
	Full []particle.Particle
}

// VerletLists is spec §4.2/§4.5's neighbor-list container: a
// cellblock.Grid substrate (cell size cutoff+skin, so only the 26
// neighbor cells plus self can hold anything in range) used purely to
// build and rebuild a per-particle neighbor list cheaply; iteratePairwise
// itself runs entirely off the cached lists.
type VerletLists struct {
	grid              *cellblock.Grid
	cutoff, skin      float64
	rebuildFrequency  int
	stepsSinceRebuild int
	neighbors         map[int64]verletEntry
	buildPositions    map[int64][3]float64
	haloIndex         *neighbor.IDSet
}

func NewVerletLists(boxMin, boxMax [3]float64, cutoff, skin float64, rebuildFrequency int) *VerletLists {
	return &VerletLists{
		grid:             cellblock.NewGrid(boxMin, boxMax, cutoff+skin, 1.0),
		cutoff:           cutoff,
		skin:             skin,
		rebuildFrequency: rebuildFrequency,
		neighbors:        make(map[int64]verletEntry),
		buildPositions:   make(map[int64][3]float64),
		haloIndex:        neighbor.NewIDSet(64),
	}
}

func (v *VerletLists) Add(p particle.Particle) { v.grid.Add(p) }

func (v *VerletLists) AddHalo(p particle.Particle) {
	v.grid.AddHalo(p)
	coord, _ := v.grid.Geom.CoordsOfPosition(p.GetPosition())
	v.haloIndex.Put(p.GetID(), v.grid.Geom.Index3Dto1D(coord))
}

func (v *VerletLists) UpdateHalo(p particle.Particle) bool {
	idx, ok := v.haloIndex.Lookup(p.GetID())
	if !ok {
		return false
	}
	for _, q := range v.grid.CellAtIndex(idx).Particles() {
		if q.GetID() == p.GetID() {
			q.SetPosition(p.GetPosition())
			q.SetVelocity(p.GetVelocity())
			q.SetForce(p.GetForce())
			return true
		}
	}
	return false
}

func (v *VerletLists) DeleteHalo() {
	v.grid.ClearHalo()
	v.haloIndex = neighbor.NewIDSet(64)
}

// IterateHalo calls f for every halo particle.
func (v *VerletLists) IterateHalo(f func(particle.Particle)) {
	v.grid.IterateAll(false, func(p particle.Particle) {
		if p.IsHalo() {
			f(p)
		}
	})
}

// Update resorts owned particles into their current cell the way
// LinkedCells does, returns every particle that drifted outside the
// box, and advances the rebuild-frequency counter (spec §4.5 "common
// rule").
func (v *VerletLists) Update() []particle.Particle {
	var drifted []particle.Particle
	for _, c := range v.grid.OwnedCellCoords() {
		removed := v.grid.CellAt(c).Compact(func(p particle.Particle) bool {
			if !v.grid.Geom.InOwnedBox(p.GetPosition()) {
				return true
			}
			newCoord, _ := v.grid.Geom.CoordsOfPosition(p.GetPosition())
			return newCoord != c
		})
		drifted = append(drifted, removed...)
	}
	var leavers []particle.Particle
	for _, p := range drifted {
		if v.grid.Geom.InOwnedBox(p.GetPosition()) {
			v.grid.Add(p)
		} else {
			leavers = append(leavers, p)
		}
	}
	v.stepsSinceRebuild++
	return leavers
}

// IsUpdateNeeded reports whether the rebuild-frequency counter has
// reached it, or any owned particle has drifted more than skin/2 since
// the list was last built (spec §4.5).
func (v *VerletLists) IsUpdateNeeded() bool {
	if v.rebuildFrequency > 0 && v.stepsSinceRebuild >= v.rebuildFrequency {
		return true
	}
	halfSkin := v.skin / 2
	needed := false
	v.grid.IterateOwned(false, func(p particle.Particle) {
		if needed {
			return
		}
		last, ok := v.buildPositions[p.GetID()]
		if !ok {
			needed = true
			return
		}
		if dist(p.GetPosition(), last) > halfSkin {
			needed = true
		}
	})
	return needed
}

func dist(a, b [3]float64) float64 {
	var s float64
	for i := 0; i < 3; i++ {
		d := a[i] - b[i]
		s += d * d
	}
	return math.Sqrt(s)
}

// RebuildNeighborLists scans each owned cell against its 26 neighbor
// cells (cell size cutoff+skin makes that exhaustive) and rebuilds
// every owned particle's Half/Full neighbor list from scratch.
// Idempotent if called twice with nothing moved in between, since it
// always derives the lists fresh from current positions (spec §8
// invariant 4).
func (v *VerletLists) RebuildNeighborLists() {
	neighbors := make(map[int64]verletEntry)
	buildPositions := make(map[int64][3]float64)

	type seqParticle struct {
		p   particle.Particle
		seq int
	}
	seq := 0
	var owned []seqParticle
	v.grid.IterateOwned(false, func(p particle.Particle) {
		owned = append(owned, seqParticle{p: p, seq: seq})
		buildPositions[p.GetID()] = p.GetPosition()
		seq++
	})
	seqOf := make(map[int64]int, len(owned))
	for _, sp := range owned {
		seqOf[sp.p.GetID()] = sp.seq
	}

	reach := v.cutoff + v.skin
	reach2 := reach * reach

	addPair := func(a, b particle.Particle) {
		ea, eb := neighbors[a.GetID()], neighbors[b.GetID()]
		ea.Full = append(ea.Full, b)
		eb.Full = append(eb.Full, a)
		if !b.IsOwned() || seqOf[a.GetID()] < seqOf[b.GetID()] {
			ea.Half = append(ea.Half, b)
		} else {
			eb.Half = append(eb.Half, a)
		}
		neighbors[a.GetID()] = ea
		neighbors[b.GetID()] = eb
	}

	for _, coord := range v.grid.OwnedCellCoords() {
		base := v.grid.CellAt(coord).Particles()
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					n := [3]int{coord[0] + dx, coord[1] + dy, coord[2] + dz}
					if !v.grid.Geom.InGridBounds(n) {
						continue
					}
					if n == coord {
						for i := 0; i < len(base); i++ {
							if base[i].IsDummy() {
								continue
							}
							for j := i + 1; j < len(base); j++ {
								if base[j].IsDummy() || d2(base[i].GetPosition(), base[j].GetPosition()) > reach2 {
									continue
								}
								addPair(base[i], base[j])
							}
						}
						continue
					}
					// Only process each unordered cell pair once: skip
					// neighbor cells already visited as someone else's
					// base cell (those with a lexicographically smaller
					// coordinate), except past the owned boundary where
					// there is no "someone else" to have covered it.
					if !v.grid.Geom.IsOwnedCoord(n) || lexLess(n, coord) {
						other := v.grid.CellAt(n).Particles()
						for _, pi := range base {
							if pi.IsDummy() {
								continue
							}
							for _, pj := range other {
								if pj.IsDummy() || d2(pi.GetPosition(), pj.GetPosition()) > reach2 {
									continue
								}
								addPair(pi, pj)
							}
						}
					}
				}
			}
		}
	}

	v.neighbors = neighbors
	v.buildPositions = buildPositions
	v.stepsSinceRebuild = 0
}

func d2(a, b [3]float64) float64 {
	var s float64
	for i := 0; i < 3; i++ {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func lexLess(a, b [3]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}

func (v *VerletLists) Iterate(includeDummies bool, f func(particle.Particle)) {
	v.grid.IterateOwned(includeDummies, f)
}

func (v *VerletLists) RegionIterate(lo, hi [3]float64, includeDummies bool, f func(particle.Particle)) {
	v.grid.IterateOwned(includeDummies, func(p particle.Particle) {
		if inRegion(p.GetPosition(), lo, hi) {
			f(p)
		}
	})
}

func (v *VerletLists) IteratePairwise(f functor.Functor, traversalType options.TraversalOption, layout options.DataLayoutOption, newton3 bool) {
	if traversalType != options.TraversalVerletLists {
		apierror.External("VerletLists.IteratePairwise: traversal %v is not compatible with VerletLists", traversalType)
	}
	cf := cellfunctor.New(f, layout, newton3)
	v.grid.IterateOwned(false, func(p particle.Particle) {
		entry := v.neighbors[p.GetID()]
		list := entry.Full
		if newton3 {
			list = entry.Half
		}
		cf.VerletParticles(p, list)
	})
}

func (v *VerletLists) ContainerType() options.ContainerOption { return options.VerletLists }

var _ Container = (*VerletLists)(nil)
