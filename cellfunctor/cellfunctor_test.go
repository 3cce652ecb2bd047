package cellfunctor

import (
	"testing"

	"github.com/TimurEke/AutoPas/cell"
	"github.com/TimurEke/AutoPas/internal/eq"
	"github.com/TimurEke/AutoPas/internal/testfunctor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
)

func buildCell(positions [][3]float64) *cell.Cell {
	c := cell.New()
	for i, r := range positions {
		c.Add(particle.NewBasic(int64(i), r))
	}
	return c
}

func TestSelfCellAoSNewton3ConservesMomentum(t *testing.T) {
	c := buildCell([][3]float64{{0, 0, 0}, {0.5, 0, 0}, {0, 0.5, 0}})
	f := testfunctor.New(1.0, 2.0)
	cf := New(f, options.AoS, true)
	cf.SelfCell(c)

	var total [3]float64
	c.Iterate(false, func(p particle.Particle) {
		fr := p.GetForce()
		total[0] += fr[0]
		total[1] += fr[1]
		total[2] += fr[2]
	})
	if !eq.Vec3Eps(total, [3]float64{}, 1e-12) {
		t.Errorf("expected zero net force under Newton-3, got %v", total)
	}
}

func TestSelfCellAoSAndSoAAgree(t *testing.T) {
	positions := [][3]float64{{0, 0, 0}, {0.3, 0, 0}, {0, 0.4, 0}, {0.2, 0.2, 0.2}}

	aosCell := buildCell(positions)
	f := testfunctor.New(2.0, 2.0)
	New(f, options.AoS, true).SelfCell(aosCell)

	soaCell := buildCell(positions)
	cfSoA := New(f, options.SoA, true)
	cfSoA.SelfCell(soaCell)
	soaCell.ExtractSoA(f)

	aosForces := forcesOf(aosCell)
	soaForces := forcesOf(soaCell)
	for i := range aosForces {
		if !eq.Vec3Eps(aosForces[i], soaForces[i], 1e-10) {
			t.Errorf("particle %d: AoS force %v != SoA force %v", i, aosForces[i], soaForces[i])
		}
	}
}

func forcesOf(c *cell.Cell) [][3]float64 {
	var out [][3]float64
	c.Iterate(false, func(p particle.Particle) { out = append(out, p.GetForce()) })
	return out
}

func TestCellPairNonNewton3OnlyUpdatesFirstCell(t *testing.T) {
	c1 := buildCell([][3]float64{{0, 0, 0}})
	c2 := buildCell([][3]float64{{0.5, 0, 0}})
	f := testfunctor.New(1.0, 2.0)
	cf := New(f, options.AoS, false)
	cf.CellPair(c1, c2)

	f1 := forcesOf(c1)[0]
	f2 := forcesOf(c2)[0]
	if f1 == ([3]float64{}) {
		t.Errorf("expected c1's particle to receive a force")
	}
	if f2 != ([3]float64{}) {
		t.Errorf("expected c2's particle to receive no force without Newton-3 (caller schedules the reverse pair)")
	}
}
