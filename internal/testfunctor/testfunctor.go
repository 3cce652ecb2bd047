/*Package testfunctor implements a minimal pairwise inverse-square-law
functor used only by the test suite, standing in for the physics kernels
spec §1 explicitly keeps out of core scope. It exists purely to exercise
the traversal/container machinery end to end: given two particles closer
than the cutoff, it applies a force of magnitude strength/r^2 directed
along their separation, which is symmetric and therefore a faithful
stand-in for checking Newton-3 correctness (spec §8 invariant 2: force
sum is zero after a Newton-3 iteration).
*/
package testfunctor

import (
	"math"

	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/soa"
)

// InverseSquare is a toy pairwise functor: F = strength / r^2, directed
// along the separation vector, for r < cutoff.
type InverseSquare struct {
	Strength  float64
	Cutoff    float64
	Newton3On bool
	Newton3Off bool
}

// New builds an InverseSquare functor that allows both Newton-3 policies.
func New(strength, cutoff float64) *InverseSquare {
	return &InverseSquare{Strength: strength, Cutoff: cutoff, Newton3On: true, Newton3Off: true}
}

func (f *InverseSquare) CutoffSquared() float64 { return f.Cutoff * f.Cutoff }

func (f *InverseSquare) pairForce(ri, rj [3]float64) (df [3]float64, within bool) {
	var d [3]float64
	r2 := 0.0
	for k := 0; k < 3; k++ {
		d[k] = ri[k] - rj[k]
		r2 += d[k] * d[k]
	}
	if r2 >= f.CutoffSquared() || r2 == 0 {
		return df, false
	}
	invR2 := 1.0 / r2
	invR := math.Sqrt(invR2)
	mag := f.Strength * invR2
	for k := 0; k < 3; k++ {
		df[k] = mag * d[k] * invR
	}
	return df, true
}

func (f *InverseSquare) AoSPair(pi, pj particle.Particle, newton3 bool) {
	df, within := f.pairForce(pi.GetPosition(), pj.GetPosition())
	if !within {
		return
	}
	pi.AddForce(df)
	if newton3 {
		pj.AddForce([3]float64{-df[0], -df[1], -df[2]})
	}
}

// SoAPairSelf mirrors CellFunctor.SelfCell's AoS loop bound: under
// Newton-3 it visits each unordered pair once and updates both sides;
// without it, a self-cell task owns the whole buffer exclusively, so it
// visits every ordered pair and updates only the first index each time.
func (f *InverseSquare) SoAPairSelf(buf *soa.Buffer, newton3 bool) {
	n := buf.Len()
	px := buf.Column(particle.AttrPositionX)
	py := buf.Column(particle.AttrPositionY)
	pz := buf.Column(particle.AttrPositionZ)
	fx := buf.Column(particle.AttrForceX)
	fy := buf.Column(particle.AttrForceY)
	fz := buf.Column(particle.AttrForceZ)

	if newton3 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				df, within := f.pairForce(
					[3]float64{px[i], py[i], pz[i]},
					[3]float64{px[j], py[j], pz[j]})
				if !within {
					continue
				}
				fx[i] += df[0]
				fy[i] += df[1]
				fz[i] += df[2]
				fx[j] -= df[0]
				fy[j] -= df[1]
				fz[j] -= df[2]
			}
		}
		return
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			df, within := f.pairForce(
				[3]float64{px[i], py[i], pz[i]},
				[3]float64{px[j], py[j], pz[j]})
			if !within {
				continue
			}
			fx[i] += df[0]
			fy[i] += df[1]
			fz[i] += df[2]
		}
	}
}

func (f *InverseSquare) SoAPairCross(buf1, buf2 *soa.Buffer, newton3 bool) {
	n1, n2 := buf1.Len(), buf2.Len()
	px1 := buf1.Column(particle.AttrPositionX)
	py1 := buf1.Column(particle.AttrPositionY)
	pz1 := buf1.Column(particle.AttrPositionZ)
	fx1 := buf1.Column(particle.AttrForceX)
	fy1 := buf1.Column(particle.AttrForceY)
	fz1 := buf1.Column(particle.AttrForceZ)

	px2 := buf2.Column(particle.AttrPositionX)
	py2 := buf2.Column(particle.AttrPositionY)
	pz2 := buf2.Column(particle.AttrPositionZ)
	fx2 := buf2.Column(particle.AttrForceX)
	fy2 := buf2.Column(particle.AttrForceY)
	fz2 := buf2.Column(particle.AttrForceZ)

	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			df, within := f.pairForce(
				[3]float64{px1[i], py1[i], pz1[i]},
				[3]float64{px2[j], py2[j], pz2[j]})
			if !within {
				continue
			}
			fx1[i] += df[0]
			fy1[i] += df[1]
			fz1[i] += df[2]
			if newton3 {
				fx2[j] -= df[0]
				fy2[j] -= df[1]
				fz2[j] -= df[2]
			}
		}
	}
}

func (f *InverseSquare) SoAVerlet(buf *soa.Buffer, i int, neighbors []int, newton3 bool) {
	px := buf.Column(particle.AttrPositionX)
	py := buf.Column(particle.AttrPositionY)
	pz := buf.Column(particle.AttrPositionZ)
	fx := buf.Column(particle.AttrForceX)
	fy := buf.Column(particle.AttrForceY)
	fz := buf.Column(particle.AttrForceZ)

	ri := [3]float64{px[i], py[i], pz[i]}
	for _, j := range neighbors {
		df, within := f.pairForce(ri, [3]float64{px[j], py[j], pz[j]})
		if !within {
			continue
		}
		fx[i] += df[0]
		fy[i] += df[1]
		fz[i] += df[2]
		if newton3 {
			fx[j] -= df[0]
			fy[j] -= df[1]
			fz[j] -= df[2]
		}
	}
}

func (f *InverseSquare) RequiredAttributes() []particle.AttributeHandle {
	return []particle.AttributeHandle{
		particle.AttrPositionX, particle.AttrPositionY, particle.AttrPositionZ,
		particle.AttrForceX, particle.AttrForceY, particle.AttrForceZ,
	}
}

func (f *InverseSquare) ComputedAttributes() []particle.AttributeHandle {
	return []particle.AttributeHandle{particle.AttrForceX, particle.AttrForceY, particle.AttrForceZ}
}

func (f *InverseSquare) AllowsNewton3() bool    { return f.Newton3On }
func (f *InverseSquare) AllowsNonNewton3() bool { return f.Newton3Off }

func (f *InverseSquare) IsAppropriateClusterSize(width int, layout options.DataLayoutOption) bool {
	return width == 4
}

func (f *InverseSquare) IsRelevantForTuning() bool { return true }
