/*Package functor defines the capability contract a user's pair-interaction
kernel must satisfy (spec §4.3, §6). The core calls these methods to
deliver candidate pairs; it never inspects what a "force" is.
*/
package functor

import (
	"math"

	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/soa"
)

// Functor is the pair-interaction kernel contract. Implementations are
// shared across concurrently-executing tasks during one iteratePairwise
// call; the contract requires per-pair updates to be either atomic or
// guarded by the calling task's cell ownership (spec §5).
type Functor interface {
	// AoSPair evaluates the kernel for particles i and j directly. When
	// newton3 is true, both i's and j's forces are updated by this single
	// call; when false, only i's force is updated and the caller is
	// responsible for invoking the reverse pair separately.
	AoSPair(i, j particle.Particle, newton3 bool)

	// SoAPairSelf evaluates every unique pair within a single SoA buffer.
	SoAPairSelf(buf *soa.Buffer, newton3 bool)

	// SoAPairCross evaluates every pair drawn one from each of two SoA
	// buffers.
	SoAPairCross(buf1, buf2 *soa.Buffer, newton3 bool)

	// SoAVerlet evaluates particle i (by index into buf) against the
	// particles named by neighbors (indices into the same buf).
	SoAVerlet(buf *soa.Buffer, i int, neighbors []int, newton3 bool)

	// RequiredAttributes lists the SoA columns SoALoad must gather before
	// any SoA* method is called.
	RequiredAttributes() []particle.AttributeHandle

	// ComputedAttributes lists the SoA columns a SoA* call may have
	// written, so SoAExtract knows what to scatter back to AoS. Spec §4.1
	// invariant: Load then Extract is the identity on every attribute NOT
	// in this list.
	ComputedAttributes() []particle.AttributeHandle

	// AllowsNewton3 reports whether this functor can be driven with
	// Newton-3 symmetrization on.
	AllowsNewton3() bool
	// AllowsNonNewton3 reports whether this functor can be driven with
	// Newton-3 off.
	AllowsNonNewton3() bool

	// IsAppropriateClusterSize reports whether this functor can process
	// clusters of the given width under the given data layout (spec §4.2,
	// VerletClusterLists).
	IsAppropriateClusterSize(width int, layout options.DataLayoutOption) bool

	// IsRelevantForTuning reports whether iterations using this functor
	// should be timed and fed to the tuner, or always run at a fixed
	// configuration (e.g. a cheap bookkeeping pass run every iteration
	// regardless of the tuning phase).
	IsRelevantForTuning() bool

	// CutoffSquared is the square of the cutoff radius beyond which this
	// functor has no effect (spec: Glossary, "Cutoff").
	CutoffSquared() float64
}

// PropertiesLibrary is the particle-property lookup the user functor
// consults; it is opaque to the core (spec §6). MixingRule controls which
// of the two candidate epsilon-mixing formulas GetMixed24Epsilon below
// applies — see options.MixingRuleOption for the open question this
// resolves (spec §9(a)).
type PropertiesLibrary interface {
	GetMass(typeID int64) float64
	Get24Epsilon(typeI, typeJ int64) float64
	GetSigmaSquare(typeI, typeJ int64) float64
	GetShift6(typeI, typeJ int64) float64
}

// GetMixed24Epsilon computes 24*epsilon for a pair of particle types from
// each type's own epsilon value, under the mixing rule options.
// MixingRuleOption leaves open (spec §9(a)): GeometricMean is the
// physical Lorentz-Berthelot rule sqrt(epsilonI*epsilonJ); ArithmeticMean
// reproduces the source's ParticleClassLibrary::mixingE formula
// sqrt(epsilonI+epsilonJ) instead. A PropertiesLibrary implementation
// that stores raw per-type epsilons calls this from its own
// Get24Epsilon rather than hardcoding one rule.
func GetMixed24Epsilon(epsilonI, epsilonJ float64, rule options.MixingRuleOption) float64 {
	switch rule {
	case options.ArithmeticMean:
		return 24 * math.Sqrt(epsilonI+epsilonJ)
	default:
		return 24 * math.Sqrt(epsilonI*epsilonJ)
	}
}
