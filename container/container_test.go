package container

import (
	"testing"

	"github.com/TimurEke/AutoPas/internal/eq"
	"github.com/TimurEke/AutoPas/internal/testfunctor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/thread"
)

var (
	boxMin = [3]float64{0, 0, 0}
	boxMax = [3]float64{8, 8, 8}
)

// seedOwned returns a small, deterministic owned-particle cloud spread
// across the box, plus a handful of halo particles just outside each
// face, so every container variant under test sees the same physical
// configuration.
func seedOwned() ([]particle.Particle, []particle.Particle) {
	var owned []particle.Particle
	id := int64(0)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				r := [3]float64{float64(x)*2.3 + 0.5, float64(y)*2.3 + 0.5, float64(z)*2.3 + 0.5}
				owned = append(owned, particle.NewBasic(id, r))
				id++
			}
		}
	}
	halo := []particle.Particle{
		particle.NewBasic(id+0, [3]float64{-0.5, 1.0, 1.0}),
		particle.NewBasic(id+1, [3]float64{8.5, 1.0, 1.0}),
		particle.NewBasic(id+2, [3]float64{1.0, -0.5, 1.0}),
		particle.NewBasic(id+3, [3]float64{1.0, 8.5, 1.0}),
	}
	return owned, halo
}

func forcesByID(c Container) map[int64][3]float64 {
	out := make(map[int64][3]float64)
	c.Iterate(false, func(p particle.Particle) { out[p.GetID()] = p.GetForce() })
	return out
}

func addAll(c Container, owned, halo []particle.Particle) {
	for _, p := range owned {
		c.Add(p)
	}
	for _, p := range halo {
		c.AddHalo(p)
	}
}

// TestDirectSumVsLinkedCells is spec §8 scenario A: DirectSum and
// LinkedCells must agree on the resulting forces within 1.5e-12, since
// both visit exactly the same set of pairs just via different
// traversals.
func TestDirectSumVsLinkedCells(t *testing.T) {
	owned, halo := seedOwned()
	f := testfunctor.New(1.0, 2.0)

	ds := NewDirectSum(boxMin, boxMax)
	addAll(ds, owned, halo)
	ds.IteratePairwise(f, options.TraversalDirectSum, options.AoS, true)

	lc := NewLinkedCells(boxMin, boxMax, 2.0, 1.0, thread.NewPool(4), options.LoadEstimatorNone)
	owned2, halo2 := seedOwned()
	addAll(lc, owned2, halo2)
	lc.IteratePairwise(f, options.TraversalC08, options.AoS, true)

	dsForces := forcesByID(ds)
	lcForces := forcesByID(lc)
	if len(dsForces) != len(lcForces) {
		t.Fatalf("particle count mismatch: %d vs %d", len(dsForces), len(lcForces))
	}
	for id, df := range dsForces {
		lf, ok := lcForces[id]
		if !ok {
			t.Fatalf("particle %d missing from LinkedCells result", id)
		}
		if !eq.Vec3Eps(df, lf, 1.5e-12) {
			t.Errorf("particle %d: DirectSum %v != LinkedCells %v", id, df, lf)
		}
	}
}

func TestDirectSumVsReferenceLinkedCells(t *testing.T) {
	owned, halo := seedOwned()
	f := testfunctor.New(1.0, 2.0)

	ds := NewDirectSum(boxMin, boxMax)
	addAll(ds, owned, halo)
	ds.IteratePairwise(f, options.TraversalDirectSum, options.AoS, true)

	rlc := NewReferenceLinkedCells(boxMin, boxMax, 2.0, 1.0, thread.NewPool(4), options.LoadEstimatorNone)
	owned2, halo2 := seedOwned()
	addAll(rlc, owned2, halo2)
	rlc.IteratePairwise(f, options.TraversalC08, options.AoS, true)

	dsForces := forcesByID(ds)
	rlcForces := forcesByID(rlc)
	if len(dsForces) != len(rlcForces) {
		t.Fatalf("particle count mismatch: %d vs %d", len(dsForces), len(rlcForces))
	}
	for id, df := range dsForces {
		rf, ok := rlcForces[id]
		if !ok {
			t.Fatalf("particle %d missing from ReferenceLinkedCells result", id)
		}
		if !eq.Vec3Eps(df, rf, 1.5e-12) {
			t.Errorf("particle %d: DirectSum %v != ReferenceLinkedCells %v", id, df, rf)
		}
	}
}

func TestDirectSumVsVerletLists(t *testing.T) {
	owned, halo := seedOwned()
	f := testfunctor.New(1.0, 2.0)

	ds := NewDirectSum(boxMin, boxMax)
	addAll(ds, owned, halo)
	ds.IteratePairwise(f, options.TraversalDirectSum, options.AoS, true)

	vl := NewVerletLists(boxMin, boxMax, 2.0, 0.3, 10)
	owned2, halo2 := seedOwned()
	addAll(vl, owned2, halo2)
	vl.RebuildNeighborLists()
	vl.IteratePairwise(f, options.TraversalVerletLists, options.AoS, true)

	dsForces := forcesByID(ds)
	vlForces := forcesByID(vl)
	if len(dsForces) != len(vlForces) {
		t.Fatalf("particle count mismatch: %d vs %d", len(dsForces), len(vlForces))
	}
	for id, df := range dsForces {
		vf, ok := vlForces[id]
		if !ok {
			t.Fatalf("particle %d missing from VerletLists result", id)
		}
		if !eq.Vec3Eps(df, vf, 1.5e-12) {
			t.Errorf("particle %d: DirectSum %v != VerletLists %v", id, df, vf)
		}
	}
}

// TestDirectSumVsVerletClusterLists is spec §8 scenario B: forces must
// still agree once particles are re-towered into fixed-width,
// dummy-padded clusters, and every cluster must end up exactly
// clusterSize wide (spec §4.2 "VerletClusterLists invariant").
func TestDirectSumVsVerletClusterLists(t *testing.T) {
	owned, halo := seedOwned()
	f := testfunctor.New(1.0, 2.0)

	ds := NewDirectSum(boxMin, boxMax)
	addAll(ds, owned, halo)
	ds.IteratePairwise(f, options.TraversalDirectSum, options.AoS, true)

	const clusterSize = 4
	vcl := NewVerletClusterLists(boxMin, boxMax, 2.0, 0.3, clusterSize, 10, thread.NewPool(4))
	owned2, halo2 := seedOwned()
	addAll(vcl, owned2, halo2)
	vcl.RebuildNeighborLists()

	for _, towerClusters := range vcl.towers {
		for _, c := range towerClusters {
			if len(c.particles) != clusterSize {
				t.Fatalf("cluster width %d, want %d", len(c.particles), clusterSize)
			}
		}
	}

	vcl.IteratePairwise(f, options.TraversalVerletClusterCells, options.AoS, true)

	dsForces := forcesByID(ds)
	vclForces := forcesByID(vcl)
	if len(dsForces) != len(vclForces) {
		t.Fatalf("particle count mismatch: %d vs %d", len(dsForces), len(vclForces))
	}
	for id, df := range dsForces {
		vf, ok := vclForces[id]
		if !ok {
			t.Fatalf("particle %d missing from VerletClusterLists result", id)
		}
		if !eq.Vec3Eps(df, vf, 1.5e-12) {
			t.Errorf("particle %d: DirectSum %v != VerletClusterLists %v", id, df, vf)
		}
	}
}

func TestLinkedCellsUpdateReportsLeavers(t *testing.T) {
	owned, _ := seedOwned()
	lc := NewLinkedCells(boxMin, boxMax, 2.0, 1.0, thread.NewPool(4), options.LoadEstimatorNone)
	for _, p := range owned {
		lc.Add(p)
	}
	owned[0].SetPosition([3]float64{-1, -1, -1})
	leavers := lc.Update()
	if len(leavers) != 1 || leavers[0].GetID() != owned[0].GetID() {
		t.Fatalf("expected exactly particle %d to leave, got %v", owned[0].GetID(), leavers)
	}
}

func TestVerletListsIsUpdateNeeded(t *testing.T) {
	owned, _ := seedOwned()
	vl := NewVerletLists(boxMin, boxMax, 2.0, 0.3, 100)
	for _, p := range owned {
		vl.Add(p)
	}
	vl.RebuildNeighborLists()
	if vl.IsUpdateNeeded() {
		t.Fatal("freshly rebuilt VerletLists should not need an update")
	}
	owned[0].SetPosition([3]float64{owned[0].GetPosition()[0] + 1.0, owned[0].GetPosition()[1], owned[0].GetPosition()[2]})
	if !vl.IsUpdateNeeded() {
		t.Fatal("expected drift past skin/2 to require an update")
	}
}
