package traversal

import (
	"testing"

	"github.com/TimurEke/AutoPas/cellblock"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/internal/eq"
	"github.com/TimurEke/AutoPas/internal/testfunctor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/thread"
)

func seedGrid(g *cellblock.Grid, n int) {
	id := int64(0)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			for z := 0; z < 4; z++ {
				r := [3]float64{
					float64(x)*2.3 + 0.3,
					float64(y)*2.3 + 0.3,
					float64(z)*2.3 + 0.3,
				}
				g.Add(particle.NewBasic(id, r))
				id++
				if int(id) >= n {
					return
				}
			}
		}
	}
}

func totalForce(g *cellblock.Grid) [3]float64 {
	var total [3]float64
	g.IterateOwned(false, func(p particle.Particle) {
		f := p.GetForce()
		total[0] += f[0]
		total[1] += f[1]
		total[2] += f[2]
	})
	return total
}

func gridCellAt(g *cellblock.Grid) func(c [3]int) cellfunctor.CellAccessor {
	return func(c [3]int) cellfunctor.CellAccessor { return g.CellAt(c) }
}

func gridAllCells(g *cellblock.Grid) func() []cellfunctor.CellAccessor {
	return func() []cellfunctor.CellAccessor {
		cells := g.Cells()
		out := make([]cellfunctor.CellAccessor, len(cells))
		for i, c := range cells {
			out[i] = c
		}
		return out
	}
}

func gridCellCount(g *cellblock.Grid) func(c [3]int) int {
	return func(c [3]int) int { return g.CellAt(c).ActiveSize() }
}

func TestC08Newton3ConservesMomentum(t *testing.T) {
	g := cellblock.NewGrid([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 1.0, 1.0)
	seedGrid(g, 40)

	f := testfunctor.New(1.0, 3.0)
	cf := cellfunctor.New(f, options.AoS, true)
	tr := NewC08(g.Geom, gridCellAt(g), gridAllCells(g), cf, thread.NewPool(4))
	if !tr.IsApplicable() {
		t.Fatal("expected c08 to be applicable")
	}
	tr.InitTraversal()
	tr.TraverseParticlePairs()
	tr.EndTraversal()

	if total := totalForce(g); !eq.Vec3Eps(total, [3]float64{}, 1e-9) {
		t.Errorf("expected zero net force under Newton-3, got %v", total)
	}
}

func TestC08AoSAndSoAAgree(t *testing.T) {
	build := func() *cellblock.Grid {
		g := cellblock.NewGrid([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 1.0, 1.0)
		seedGrid(g, 40)
		return g
	}

	f := testfunctor.New(1.0, 3.0)

	aosGrid := build()
	NewC08(aosGrid.Geom, gridCellAt(aosGrid), gridAllCells(aosGrid), cellfunctor.New(f, options.AoS, true), thread.NewPool(4)).TraverseParticlePairs()

	soaGrid := build()
	soaCF := cellfunctor.New(f, options.SoA, true)
	soaTr := NewC08(soaGrid.Geom, gridCellAt(soaGrid), gridAllCells(soaGrid), soaCF, thread.NewPool(4))
	soaTr.InitTraversal()
	soaTr.TraverseParticlePairs()
	soaTr.EndTraversal()

	var aosForces, soaForces [][3]float64
	aosGrid.IterateOwned(false, func(p particle.Particle) { aosForces = append(aosForces, p.GetForce()) })
	soaGrid.IterateOwned(false, func(p particle.Particle) { soaForces = append(soaForces, p.GetForce()) })

	if len(aosForces) != len(soaForces) {
		t.Fatalf("particle count mismatch: %d vs %d", len(aosForces), len(soaForces))
	}
	for i := range aosForces {
		if !eq.Vec3Eps(aosForces[i], soaForces[i], 1e-9) {
			t.Errorf("particle %d: AoS %v != SoA %v", i, aosForces[i], soaForces[i])
		}
	}
}

func TestC18AndC08Agree(t *testing.T) {
	build := func() *cellblock.Grid {
		g := cellblock.NewGrid([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 1.0, 1.0)
		seedGrid(g, 48)
		return g
	}
	f := testfunctor.New(1.0, 4.0)

	c08Grid := build()
	NewC08(c08Grid.Geom, gridCellAt(c08Grid), gridAllCells(c08Grid), cellfunctor.New(f, options.AoS, true), thread.NewPool(4)).TraverseParticlePairs()

	c18Grid := build()
	NewC18(c18Grid.Geom, gridCellAt(c18Grid), gridAllCells(c18Grid), cellfunctor.New(f, options.AoS, true), thread.NewPool(4)).TraverseParticlePairs()

	var fA, fB [][3]float64
	c08Grid.IterateOwned(false, func(p particle.Particle) { fA = append(fA, p.GetForce()) })
	c18Grid.IterateOwned(false, func(p particle.Particle) { fB = append(fB, p.GetForce()) })

	if len(fA) != len(fB) {
		t.Fatalf("particle count mismatch: %d vs %d", len(fA), len(fB))
	}
	for i := range fA {
		if !eq.Vec3Eps(fA[i], fB[i], 1e-9) {
			t.Errorf("particle %d: c08 %v != c18 %v", i, fA[i], fB[i])
		}
	}
}

func TestSlicedMatchesC08(t *testing.T) {
	build := func() *cellblock.Grid {
		g := cellblock.NewGrid([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 1.0, 1.0)
		seedGrid(g, 48)
		return g
	}
	f := testfunctor.New(1.0, 4.0)

	c08Grid := build()
	NewC08(c08Grid.Geom, gridCellAt(c08Grid), gridAllCells(c08Grid), cellfunctor.New(f, options.AoS, true), thread.NewPool(4)).TraverseParticlePairs()

	slicedGrid := build()
	slicedTr := NewSliced(slicedGrid.Geom, gridCellAt(slicedGrid), gridAllCells(slicedGrid), cellfunctor.New(f, options.AoS, true), thread.NewPool(4))
	if !slicedTr.IsApplicable() {
		t.Fatal("expected sliced traversal to be applicable")
	}
	slicedTr.TraverseParticlePairs()

	var fA, fB [][3]float64
	c08Grid.IterateOwned(false, func(p particle.Particle) { fA = append(fA, p.GetForce()) })
	slicedGrid.IterateOwned(false, func(p particle.Particle) { fB = append(fB, p.GetForce()) })

	if len(fA) != len(fB) {
		t.Fatalf("particle count mismatch: %d vs %d", len(fA), len(fB))
	}
	for i := range fA {
		if !eq.Vec3Eps(fA[i], fB[i], 1e-9) {
			t.Errorf("particle %d: c08 %v != sliced %v", i, fA[i], fB[i])
		}
	}
}

func TestBalancedSlicedAppliesLoadEstimator(t *testing.T) {
	g := cellblock.NewGrid([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 1.0, 1.0)
	seedGrid(g, 40)
	f := testfunctor.New(1.0, 3.0)
	cf := cellfunctor.New(f, options.AoS, true)
	tr := NewBalancedSliced(g.Geom, gridCellAt(g), gridAllCells(g), gridCellCount(g), cf, thread.NewPool(4), options.LoadEstimatorSquaredCellSize)

	slabs := tr.balancedSlabs()
	n := g.Geom.OwnedDims()[0]
	covered := 0
	for _, s := range slabs {
		covered += s[1] - s[0] + 1
	}
	if covered != n {
		t.Errorf("expected slabs to cover all %d owned x-columns, got %d", n, covered)
	}
}

func TestDirectSumTraversal(t *testing.T) {
	g := cellblock.NewGrid([3]float64{0, 0, 0}, [3]float64{4, 4, 4}, 5.0, 1.0)
	g.Add(particle.NewBasic(0, [3]float64{1, 1, 1}))
	g.Add(particle.NewBasic(1, [3]float64{1.5, 1, 1}))
	g.AddHalo(particle.NewBasic(2, [3]float64{-1, 1, 1}))

	owned := g.OwnedCellCoords()
	if len(owned) != 1 {
		t.Fatalf("expected a single owned cell for DirectSum, got %d", len(owned))
	}
	ownedCell := g.CellAt(owned[0])

	var haloCoord [3]int
	found := false
	for idx, c := range g.Cells() {
		coord := g.Geom.Index1Dto3D(idx)
		if !g.Geom.IsOwnedCoord(coord) && c.Size() > 0 {
			haloCoord = coord
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected a populated halo cell")
	}
	haloCell := g.CellAt(haloCoord)

	f := testfunctor.New(1.0, 10.0)
	cf := cellfunctor.New(f, options.AoS, true)
	tr := NewDirectSum(ownedCell, haloCell, cf)
	tr.TraverseParticlePairs()

	if tr.TraversalType() != options.TraversalDirectSum {
		t.Errorf("unexpected traversal type %v", tr.TraversalType())
	}

	p0Force := [3]float64{}
	ownedCell.Iterate(false, func(p particle.Particle) {
		if p.GetID() == 0 {
			p0Force = p.GetForce()
		}
	})
	if p0Force == ([3]float64{}) {
		t.Errorf("expected particle 0 to receive force from its cell-mate and the halo particle")
	}

	haloHasForce := false
	haloCell.Iterate(false, func(p particle.Particle) {
		if p.GetForce() != ([3]float64{}) {
			haloHasForce = true
		}
	})
	if haloHasForce {
		t.Errorf("halo particles should never receive a force update")
	}
}
