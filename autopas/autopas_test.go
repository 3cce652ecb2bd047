package autopas

import (
	"math"
	"testing"

	"github.com/TimurEke/AutoPas/internal/testfunctor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
)

func newSmallAutoPas(t *testing.T) (*AutoPas, *testfunctor.InverseSquare) {
	t.Helper()
	a := New()
	a.SetBoxMin([3]float64{0, 0, 0})
	a.SetBoxMax([3]float64{6, 6, 6})
	a.SetCutoff(2.0)
	a.SetVerletSkin(0.3)
	a.SetAllowedContainers([]options.ContainerOption{options.LinkedCells})
	a.SetAllowedTraversals([]options.TraversalOption{options.TraversalC08})
	a.SetAllowedDataLayouts([]options.DataLayoutOption{options.AoS})
	a.SetAllowedCellSizeFactors([]float64{1.0})
	a.SetNumSamples(1)
	a.SetTuningInterval(2)

	f := testfunctor.New(1.0, 2.0)
	a.Init(f)

	id := int64(0)
	for x := 1.0; x < 5; x += 1.7 {
		for y := 1.0; y < 5; y += 1.7 {
			for z := 1.0; z < 5; z += 1.7 {
				a.AddParticle(particle.NewBasic(id, [3]float64{x, y, z}))
				id++
			}
		}
	}
	return a, f
}

func TestIteratePairwiseAppliesForces(t *testing.T) {
	a, f := newSmallAutoPas(t)

	nonZero := 0
	a.ForEach(Owned, func(p particle.Particle) {
		if fr := p.GetForce(); fr != [3]float64{} {
			nonZero++
		}
	})
	if nonZero != 0 {
		t.Fatalf("expected zero force before any iteration, found %d nonzero", nonZero)
	}

	a.IteratePairwise(f)

	nonZero = 0
	a.ForEach(Owned, func(p particle.Particle) {
		if fr := p.GetForce(); fr != [3]float64{} {
			nonZero++
		}
	})
	if nonZero == 0 {
		t.Fatal("expected IteratePairwise to apply nonzero forces to at least one particle")
	}
}

func TestIteratePairwiseEntersAndExitsTuning(t *testing.T) {
	a, f := newSmallAutoPas(t)

	sawTuning, sawExit := false, false
	for i := 0; i < 5; i++ {
		if a.IteratePairwise(f) {
			sawTuning = true
		} else if sawTuning {
			sawExit = true
		}
	}
	if !sawTuning {
		t.Fatal("expected at least one tuning iteration within the configured interval")
	}
	if !sawExit {
		t.Fatal("expected a non-tuning iteration after the tuning phase ended")
	}
}

func TestGetNumberOfParticlesCountsOwned(t *testing.T) {
	a, _ := newSmallAutoPas(t)
	n := a.GetNumberOfParticles(Owned)
	if n != 27 {
		t.Errorf("expected 27 owned particles, got %d", n)
	}
	if n2 := a.GetNumberOfParticles(Halo); n2 != 0 {
		t.Errorf("expected zero halo particles, got %d", n2)
	}
}

func TestForEachInRegionFiltersByPosition(t *testing.T) {
	a, _ := newSmallAutoPas(t)
	count := 0
	a.ForEachInRegion([3]float64{0, 0, 0}, [3]float64{2, 2, 2}, Owned, func(particle.Particle) { count++ })
	if count == 0 || count == 27 {
		t.Errorf("expected a strict, nonempty subregion subset of the 27 particles, got %d", count)
	}
}

func TestUpdateContainerReportsLeavers(t *testing.T) {
	a, _ := newSmallAutoPas(t)
	var first particle.Particle
	a.ForEach(Owned, func(p particle.Particle) {
		if first == nil {
			first = p
		}
	})
	first.SetPosition([3]float64{100, 100, 100})

	leavers := a.UpdateContainer()
	if len(leavers) != 1 || leavers[0].GetID() != first.GetID() {
		t.Errorf("expected exactly the drifted particle reported as a leaver, got %v", leavers)
	}
	if n := a.GetNumberOfParticles(Owned); n != 26 {
		t.Errorf("expected 26 particles remaining after the leaver was removed, got %d", n)
	}
}

// TestForEachInRegionScenarioF is spec §8 scenario F: a region box around
// a domain corner, with particles placed both just inside and just past
// every boundary, across owned and halo ownership, checked against a
// brute-force filter rather than against ForEachInRegion's own notion of
// "in region" (spec §8 invariant 6: the closed interval [lo,hi], not
// [lo,hi)).
func TestForEachInRegionScenarioF(t *testing.T) {
	a := New()
	a.SetBoxMin([3]float64{0, 0, 0})
	a.SetBoxMax([3]float64{10, 10, 10})
	a.SetCutoff(1.0)
	a.SetVerletSkin(0.2)
	a.SetAllowedContainers([]options.ContainerOption{options.LinkedCells})
	a.SetAllowedTraversals([]options.TraversalOption{options.TraversalC08})
	a.SetAllowedDataLayouts([]options.DataLayoutOption{options.AoS})
	a.SetAllowedCellSizeFactors([]float64{1.0})
	a.Init(testfunctor.New(1.0, 1.0))

	lo := [3]float64{9, 9, 9}
	hi := [3]float64{10.2, 10.2, 10.2}

	type placed struct {
		id    int64
		r     [3]float64
		halo  bool
		inBox bool // brute-force: does r lie in the closed box [lo,hi]?
	}
	particles := []placed{
		{id: 0, r: [3]float64{9.5, 9.5, 9.5}, halo: false, inBox: true},
		{id: 1, r: [3]float64{9, 9, 9}, halo: false, inBox: true},           // exactly at lo
		{id: 2, r: [3]float64{8.9999, 9, 9}, halo: false, inBox: false},     // just below lo
		{id: 3, r: [3]float64{9.9999, 9.9999, 9.9999}, halo: false, inBox: true},
		{id: 4, r: [3]float64{10.2, 10.2, 10.2}, halo: true, inBox: true},   // exactly at hi
		{id: 5, r: [3]float64{10.3, 10.2, 10.2}, halo: true, inBox: false},  // just past hi
		{id: 6, r: [3]float64{10.05, 10.05, 10.05}, halo: true, inBox: true},
		{id: 7, r: [3]float64{11, 11, 11}, halo: true, inBox: false},
		{id: 8, r: [3]float64{0.5, 0.5, 0.5}, halo: false, inBox: false},
	}
	for _, p := range particles {
		bp := particle.NewBasic(p.id, p.r)
		if p.halo {
			bp.SetOwnershipState(particle.HaloState)
			a.AddHaloParticle(bp)
		} else {
			a.AddParticle(bp)
		}
	}

	bruteForce := func(wantOwned, wantHalo bool) map[int64]bool {
		want := make(map[int64]bool)
		for _, p := range particles {
			if !p.inBox {
				continue
			}
			if p.halo && wantHalo || !p.halo && wantOwned {
				want[p.id] = true
			}
		}
		return want
	}
	actual := func(behavior IteratorBehavior) map[int64]bool {
		got := make(map[int64]bool)
		a.ForEachInRegion(lo, hi, behavior, func(p particle.Particle) { got[p.GetID()] = true })
		return got
	}

	cases := []struct {
		name              string
		behavior          IteratorBehavior
		wantOwned, wantHalo bool
	}{
		{"owned", Owned, true, false},
		{"halo", Halo, false, true},
		{"ownedOrHalo", OwnedOrHalo, true, true},
	}
	for _, c := range cases {
		want := bruteForce(c.wantOwned, c.wantHalo)
		got := actual(c.behavior)
		if len(want) != len(got) {
			t.Errorf("%s: expected %d particles, got %d (want ids %v, got ids %v)", c.name, len(want), len(got), want, got)
			continue
		}
		for id := range want {
			if !got[id] {
				t.Errorf("%s: expected particle %d in region, was excluded", c.name, id)
			}
		}
		for id := range got {
			if !want[id] {
				t.Errorf("%s: unexpected particle %d included in region", c.name, id)
			}
		}
	}
}

func TestDistanceToDomainZeroInsideBox(t *testing.T) {
	a := New()
	a.SetBoxMin([3]float64{0, 0, 0})
	a.SetBoxMax([3]float64{10, 10, 10})
	if d := a.DistanceToDomain([3]float64{5, 5, 5}, options.Euclidean); d != 0 {
		t.Errorf("expected zero distance for a point inside the box, got %v", d)
	}
	if d := a.DistanceToDomain([3]float64{5, 5, 5}, options.RootPowerN); d != 0 {
		t.Errorf("expected zero distance for a point inside the box, got %v", d)
	}
}

func TestDistanceToDomainEuclideanVsRootPowerN(t *testing.T) {
	a := New()
	a.SetBoxMin([3]float64{0, 0, 0})
	a.SetBoxMax([3]float64{10, 10, 10})

	// Three units past boxMax on every axis: sumSquares = 3*(3*3) = 27.
	got := a.DistanceToDomain([3]float64{13, 13, 13}, options.Euclidean)
	want := math.Sqrt(27)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Euclidean: expected %v, got %v", want, got)
	}

	got = a.DistanceToDomain([3]float64{13, 13, 13}, options.RootPowerN)
	want = math.Pow(27, 1.0/3.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RootPowerN: expected %v, got %v", want, got)
	}
}

func TestThermostatScalingRespectsDelta(t *testing.T) {
	ps := []particle.Particle{
		particle.NewBasic(0, [3]float64{0, 0, 0}),
		particle.NewBasic(1, [3]float64{1, 1, 1}),
	}
	ps[0].SetVelocity([3]float64{1, 0, 0})
	ps[1].SetVelocity([3]float64{0, 1, 0})

	before := CalcTemperature(ps, 6)
	ApplyScaling(ps, before, before*4, 0.1)
	after := CalcTemperature(ps, 6)

	if after-before > 0.1+1e-9 {
		t.Errorf("expected temperature change bounded by delta, went from %v to %v", before, after)
	}
	if after <= before {
		t.Errorf("expected scaling toward a higher target to raise the temperature, got %v -> %v", before, after)
	}
}
