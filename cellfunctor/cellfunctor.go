/*Package cellfunctor binds a user functor.Functor to cells and handles the
AoS/SoA dispatch (spec §4.3): for each scheduled task, it decides whether
to run the AoS pairwise loop or hand the functor a whole SoA buffer.
*/
package cellfunctor

import (
	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/soa"
)

// CellAccessor is the subset of cell.Cell / cell.ReferenceCell's method
// set CellFunctor needs. Both owned and reference-storage cells already
// satisfy it, so a single CellFunctor implementation drives every
// container variant (spec §9 "reference vs owned particle storage").
type CellAccessor interface {
	Particles() []particle.Particle
	LoadSoA(f functor.Functor) *soa.Buffer
	SoABuffer() *soa.Buffer
	ExtractSoA(f functor.Functor)
}

// CellFunctor binds a functor to a data layout and Newton-3 policy for
// the duration of one traversal (spec §4.3).
type CellFunctor struct {
	F       functor.Functor
	Layout  options.DataLayoutOption
	Newton3 bool
}

// New builds a CellFunctor for f under the given layout/Newton-3 policy.
func New(f functor.Functor, layout options.DataLayoutOption, newton3 bool) *CellFunctor {
	return &CellFunctor{F: f, Layout: layout, Newton3: newton3}
}

func (cf *CellFunctor) soaOf(c CellAccessor) *soa.Buffer {
	buf := c.SoABuffer()
	if buf == nil {
		buf = c.LoadSoA(cf.F)
	}
	return buf
}

// SelfCell processes every unique pair of particles within a single cell
// (spec §4.3 "self-cell"). With Newton-3 on, each unordered pair is
// visited once and both partners are updated inside the functor call;
// with Newton-3 off, no other task ever touches this cell concurrently
// (it is a self-contained task), so every ordered pair is visited and
// each call updates only its first argument, matching the convention
// cross-cell tasks use.
func (cf *CellFunctor) SelfCell(c CellAccessor) {
	if cf.Layout == options.SoA {
		cf.F.SoAPairSelf(cf.soaOf(c), cf.Newton3)
		return
	}
	ps := c.Particles()
	if cf.Newton3 {
		for i := 0; i < len(ps); i++ {
			if ps[i].IsDummy() {
				continue
			}
			for j := i + 1; j < len(ps); j++ {
				if ps[j].IsDummy() {
					continue
				}
				cf.F.AoSPair(ps[i], ps[j], true)
			}
		}
		return
	}
	for i := 0; i < len(ps); i++ {
		if ps[i].IsDummy() {
			continue
		}
		for j := 0; j < len(ps); j++ {
			if i == j || ps[j].IsDummy() {
				continue
			}
			cf.F.AoSPair(ps[i], ps[j], false)
		}
	}
}

// CellPair processes every pair drawn one from c1 and one from c2 (spec
// §4.3 "cell-pair"). When Newton-3 is off, callers are responsible for
// scheduling the reverse-ordered pair (c2,c1) as a separate task (spec
// §4.3 ordering rule); CellPair itself always walks c1 x c2 in that
// order.
func (cf *CellFunctor) CellPair(c1, c2 CellAccessor) {
	if cf.Layout == options.SoA {
		cf.F.SoAPairCross(cf.soaOf(c1), cf.soaOf(c2), cf.Newton3)
		return
	}
	ps1, ps2 := c1.Particles(), c2.Particles()
	for i := 0; i < len(ps1); i++ {
		if ps1[i].IsDummy() {
			continue
		}
		for j := 0; j < len(ps2); j++ {
			if ps2[j].IsDummy() {
				continue
			}
			cf.F.AoSPair(ps1[i], ps2[j], cf.Newton3)
		}
	}
}

// Verlet processes particle i of c against the particles named by
// neighbors, indices into the same cell's particle slice (spec §4.3
// "Verlet-style").
func (cf *CellFunctor) Verlet(c CellAccessor, i int, neighbors []int) {
	if cf.Layout == options.SoA {
		cf.F.SoAVerlet(cf.soaOf(c), i, neighbors, cf.Newton3)
		return
	}
	ps := c.Particles()
	pi := ps[i]
	if pi.IsDummy() {
		return
	}
	for _, j := range neighbors {
		pj := ps[j]
		if pj.IsDummy() {
			continue
		}
		cf.F.AoSPair(pi, pj, cf.Newton3)
	}
}

// VerletParticles processes a single owned particle against an arbitrary
// slice of neighbor particles, for Verlet-list variants that store
// pointers directly rather than cell-local indices (spec §4.2
// "VerletLists").
func (cf *CellFunctor) VerletParticles(p particle.Particle, neighbors []particle.Particle) {
	if p.IsDummy() {
		return
	}
	for _, n := range neighbors {
		if n.IsDummy() {
			continue
		}
		cf.F.AoSPair(p, n, cf.Newton3)
	}
}

// LoadCells converts every cell in cells to SoA if this functor is
// running with an SoA layout; a no-op under AoS (spec §4.4
// "initTraversal").
func (cf *CellFunctor) LoadCells(cells []CellAccessor) {
	if cf.Layout != options.SoA {
		return
	}
	for _, c := range cells {
		if c.SoABuffer() == nil {
			c.LoadSoA(cf.F)
		}
	}
}

// ExtractCells converts every cell in cells back to AoS if this functor
// is running with an SoA layout; a no-op under AoS (spec §4.4
// "endTraversal").
func (cf *CellFunctor) ExtractCells(cells []CellAccessor) {
	if cf.Layout != options.SoA {
		return
	}
	for _, c := range cells {
		c.ExtractSoA(cf.F)
	}
}
