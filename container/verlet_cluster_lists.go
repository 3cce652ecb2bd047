package container

import (
	"math"
	"sort"

	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/neighbor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/soa"
	"github.com/TimurEke/AutoPas/thread"
)

// vclCluster is a fixed-width, z-sorted run of particles from one tower
// (spec §3 "Cluster / ClusterTower"), padded with dummies (parked at
// particle.DummySentinel) so every cluster in the container has the
// same width regardless of how many real particles a tower holds.
type vclCluster struct {
	particles  []particle.Particle
	minZ, maxZ float64
	buf        *soa.Buffer
}

func (c *vclCluster) Particles() []particle.Particle { return c.particles }

func (c *vclCluster) LoadSoA(f functor.Functor) *soa.Buffer {
	c.buf = soa.NewBuffer()
	c.buf.Load(c.particles, f.RequiredAttributes())
	return c.buf
}
func (c *vclCluster) SoABuffer() *soa.Buffer { return c.buf }
func (c *vclCluster) ExtractSoA(f functor.Functor) {
	if c.buf == nil {
		return
	}
	c.buf.Extract(c.particles, f.ComputedAttributes())
	c.buf = nil
}

var _ cellfunctor.CellAccessor = (*vclCluster)(nil)

// towerOffsets are the forward 2D neighbor directions a base tower
// pairs against, the planar analogue of c08Offsets: together with the
// self-tower they cover every unordered tower pair exactly once.
var towerOffsets = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// VerletClusterLists is spec §4.2's cluster-list container: particles
// are binned into 2D towers over x,y (width cutoff+skin), each tower
// sorted by z and sliced into fixed-width clusters. Cluster-cluster
// interaction is decided by z-range overlap within cutoff+skin, derived
// fresh from the tower structure on every IteratePairwise rather than
// cached separately, since the structure only changes at
// RebuildNeighborLists.
type VerletClusterLists struct {
	boxMin, boxMax   [3]float64
	cutoff, skin     float64
	clusterSize      int
	rebuildFrequency int

	owned, halo       []particle.Particle
	haloIndex         *neighbor.IDSet
	stepsSinceRebuild int
	buildPositions    map[int64][3]float64

	towerSize  [2]float64
	dims       [2]int // owned tower counts along x,y
	haloDims   [2]int // dims + 2 (one halo layer per axis)
	towers     [][]*vclCluster
	pool       *thread.Pool
}

// NewVerletClusterLists builds an empty cluster-list container.
// clusterSize is the fixed cluster width (spec §3); callers should pick
// a value their functor's IsAppropriateClusterSize accepts.
func NewVerletClusterLists(boxMin, boxMax [3]float64, cutoff, skin float64, clusterSize, rebuildFrequency int, pool *thread.Pool) *VerletClusterLists {
	return &VerletClusterLists{
		boxMin: boxMin, boxMax: boxMax,
		cutoff: cutoff, skin: skin,
		clusterSize:      clusterSize,
		rebuildFrequency: rebuildFrequency,
		haloIndex:         neighbor.NewIDSet(64),
		buildPositions:    make(map[int64][3]float64),
		pool:              pool,
	}
}

func (v *VerletClusterLists) inBox(r [3]float64) bool {
	for i := 0; i < 3; i++ {
		if r[i] < v.boxMin[i] || r[i] >= v.boxMax[i] {
			return false
		}
	}
	return true
}

func (v *VerletClusterLists) Add(p particle.Particle) {
	if !v.inBox(p.GetPosition()) {
		apierror.External("VerletClusterLists.Add: particle %d at %v lies outside the owned box [%v,%v)",
			p.GetID(), p.GetPosition(), v.boxMin, v.boxMax)
	}
	p.SetOwnershipState(particle.OwnedState)
	v.owned = append(v.owned, p)
}

func (v *VerletClusterLists) AddHalo(p particle.Particle) {
	if v.inBox(p.GetPosition()) {
		apierror.External("VerletClusterLists.AddHalo: particle %d at %v lies inside the owned box",
			p.GetID(), p.GetPosition())
	}
	p.SetOwnershipState(particle.HaloState)
	v.haloIndex.Put(p.GetID(), len(v.halo))
	v.halo = append(v.halo, p)
}

func (v *VerletClusterLists) UpdateHalo(p particle.Particle) bool {
	idx, ok := v.haloIndex.Lookup(p.GetID())
	if !ok {
		return false
	}
	target := v.halo[idx]
	target.SetPosition(p.GetPosition())
	target.SetVelocity(p.GetVelocity())
	target.SetForce(p.GetForce())
	return true
}

func (v *VerletClusterLists) DeleteHalo() {
	v.halo = nil
	v.haloIndex = neighbor.NewIDSet(64)
}

// IterateHalo calls f for every halo particle.
func (v *VerletClusterLists) IterateHalo(f func(particle.Particle)) {
	for _, p := range v.halo {
		f(p)
	}
}

// Update drops owned particles that drifted outside the box and
// returns them; towers are not re-derived until RebuildNeighborLists
// (spec §4.5: "for cluster lists the rebuild additionally re-towers the
// particles").
func (v *VerletClusterLists) Update() []particle.Particle {
	kept := v.owned[:0]
	var leavers []particle.Particle
	for _, p := range v.owned {
		if v.inBox(p.GetPosition()) {
			kept = append(kept, p)
		} else {
			leavers = append(leavers, p)
		}
	}
	v.owned = kept
	v.stepsSinceRebuild++
	return leavers
}

func (v *VerletClusterLists) IsUpdateNeeded() bool {
	if v.rebuildFrequency > 0 && v.stepsSinceRebuild >= v.rebuildFrequency {
		return true
	}
	halfSkin := v.skin / 2
	for _, p := range v.owned {
		last, ok := v.buildPositions[p.GetID()]
		if !ok || dist(p.GetPosition(), last) > halfSkin {
			return true
		}
	}
	return false
}

func (v *VerletClusterLists) towerCoord(r [3]float64) (int, int) {
	tx := int(math.Floor((r[0]-v.boxMin[0])/v.towerSize[0])) + 1
	ty := int(math.Floor((r[1]-v.boxMin[1])/v.towerSize[1])) + 1
	return tx, ty
}

func (v *VerletClusterLists) towerIndex(tx, ty int) int { return ty*v.haloDims[0] + tx }

// RebuildNeighborLists re-derives the tower grid from the current owned
// and halo particles: sorts each tower by z and pads it with dummy
// particles to a multiple of clusterSize (spec §4.2 "VerletClusterLists
// invariant": no real particle is ever within cutoff of a dummy).
func (v *VerletClusterLists) RebuildNeighborLists() {
	towerSize := v.cutoff + v.skin
	v.towerSize = [2]float64{towerSize, towerSize}
	v.dims[0] = maxInt(1, int(math.Floor((v.boxMax[0]-v.boxMin[0])/towerSize)))
	v.dims[1] = maxInt(1, int(math.Floor((v.boxMax[1]-v.boxMin[1])/towerSize)))
	v.towerSize[0] = (v.boxMax[0] - v.boxMin[0]) / float64(v.dims[0])
	v.towerSize[1] = (v.boxMax[1] - v.boxMin[1]) / float64(v.dims[1])
	v.haloDims = [2]int{v.dims[0] + 2, v.dims[1] + 2}

	raw := make([][]particle.Particle, v.haloDims[0]*v.haloDims[1])
	place := func(p particle.Particle) {
		tx, ty := v.towerCoord(p.GetPosition())
		if tx < 0 || tx >= v.haloDims[0] || ty < 0 || ty >= v.haloDims[1] {
			return
		}
		idx := v.towerIndex(tx, ty)
		raw[idx] = append(raw[idx], p)
	}
	v.buildPositions = make(map[int64][3]float64, len(v.owned))
	for _, p := range v.owned {
		place(p)
		v.buildPositions[p.GetID()] = p.GetPosition()
	}
	for _, p := range v.halo {
		place(p)
	}

	v.towers = make([][]*vclCluster, len(raw))
	for idx, ps := range raw {
		if len(ps) == 0 {
			continue
		}
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].GetPosition()[2] < ps[j].GetPosition()[2] })
		pad := (v.clusterSize - len(ps)%v.clusterSize) % v.clusterSize
		for i := 0; i < pad; i++ {
			ps = append(ps, particle.NewDummy(particle.DummySentinel))
		}
		clusters := make([]*vclCluster, 0, len(ps)/v.clusterSize)
		for i := 0; i < len(ps); i += v.clusterSize {
			chunk := ps[i : i+v.clusterSize]
			lo, hi := clusterZRange(chunk)
			clusters = append(clusters, &vclCluster{particles: chunk, minZ: lo, maxZ: hi})
		}
		v.towers[idx] = clusters
	}
	v.stepsSinceRebuild = 0
}

func clusterZRange(ps []particle.Particle) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range ps {
		if p.IsDummy() {
			continue
		}
		z := p.GetPosition()[2]
		if z < lo {
			lo = z
		}
		if z > hi {
			hi = z
		}
	}
	return lo, hi
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func zRangesWithinReach(a, b *vclCluster, reach float64) bool {
	gap := math.Max(a.minZ, b.minZ) - math.Min(a.maxZ, b.maxZ)
	return gap <= reach
}

func (v *VerletClusterLists) Iterate(includeDummies bool, f func(particle.Particle)) {
	for _, p := range v.owned {
		if p.IsDummy() && !includeDummies {
			continue
		}
		f(p)
	}
}

func (v *VerletClusterLists) RegionIterate(lo, hi [3]float64, includeDummies bool, f func(particle.Particle)) {
	v.Iterate(includeDummies, func(p particle.Particle) {
		if inRegion(p.GetPosition(), lo, hi) {
			f(p)
		}
	})
}

func (v *VerletClusterLists) IteratePairwise(f functor.Functor, traversalType options.TraversalOption, layout options.DataLayoutOption, newton3 bool) {
	if traversalType != options.TraversalVerletClusterCells {
		apierror.External("VerletClusterLists.IteratePairwise: traversal %v is not compatible with VerletClusterLists", traversalType)
	}
	if !f.IsAppropriateClusterSize(v.clusterSize, layout) {
		apierror.External("VerletClusterLists.IteratePairwise: functor rejects cluster width %d under layout %v", v.clusterSize, layout)
	}
	cf := cellfunctor.New(f, layout, newton3)
	reach := v.cutoff + v.skin

	byColor := make([][]int, 4)
	var baseTowers [][2]int
	for tx := 1; tx <= v.dims[0]; tx++ {
		for ty := 1; ty <= v.dims[1]; ty++ {
			color := (tx % 2) + 2*(ty%2)
			byColor[color] = append(byColor[color], len(baseTowers))
			baseTowers = append(baseTowers, [2]int{tx, ty})
		}
	}

	ownedOnly := *cf
	ownedOnly.Newton3 = false
	v.pool.ForEachColor(byColor, func(taskIdx int) {
		tx, ty := baseTowers[taskIdx][0], baseTowers[taskIdx][1]
		clusters := v.towers[v.towerIndex(tx, ty)]
		for ci, c := range clusters {
			if clusterEmpty(c) {
				continue
			}
			cf.SelfCell(c)
			for cj := ci + 1; cj < len(clusters); cj++ {
				if clusterEmpty(clusters[cj]) {
					continue
				}
				if zRangesWithinReach(c, clusters[cj], reach) {
					cellPairBothCluster(cf, c, clusters[cj], true)
				}
			}
		}
		for _, off := range towerOffsets {
			nx, ny := tx+off[0], ty+off[1]
			if nx < 0 || nx >= v.haloDims[0] || ny < 0 || ny >= v.haloDims[1] {
				continue
			}
			neighborOwned := nx >= 1 && nx <= v.dims[0] && ny >= 1 && ny <= v.dims[1]
			for _, c := range clusters {
				if clusterEmpty(c) {
					continue
				}
				for _, nc := range v.towers[v.towerIndex(nx, ny)] {
					if clusterEmpty(nc) || !zRangesWithinReach(c, nc, reach) {
						continue
					}
					cellPairBothCluster(cf, c, nc, neighborOwned)
				}
			}
		}
		// A halo tower behind (tx,ty) is never a base tower; pair it from here, owned side only.
		for _, off := range towerOffsets {
			nx, ny := tx-off[0], ty-off[1]
			if nx >= 1 && nx <= v.dims[0] && ny >= 1 && ny <= v.dims[1] {
				continue
			}
			for _, c := range clusters {
				for _, nc := range v.towers[v.towerIndex(nx, ny)] {
					if !clusterEmpty(c) && !clusterEmpty(nc) && zRangesWithinReach(c, nc, reach) {
						ownedOnly.CellPair(c, nc)
					}
				}
			}
		}
	})
}

func clusterEmpty(c *vclCluster) bool {
	return c == nil || math.IsInf(c.minZ, 1)
}

// cellPairBothCluster mirrors traversal's cellPairBoth: under Newton-3
// off, the reverse pair is also run so the second cluster's particles
// get updated too, unless that cluster belongs to a halo tower (halo
// particles are never integrated).
func cellPairBothCluster(cf *cellfunctor.CellFunctor, c1, c2 *vclCluster, c2Owned bool) {
	cf.CellPair(c1, c2)
	if !cf.Newton3 && c2Owned {
		cf.CellPair(c2, c1)
	}
}

func (v *VerletClusterLists) ContainerType() options.ContainerOption { return options.VerletClusterLists }

var _ Container = (*VerletClusterLists)(nil)
