/*Package options contains the small closed enumerations AutoPas's
configuration space is built from, plus the compact search-space string
grammar used to specify ranges of them (sequence.go).
*/
package options

import "fmt"

// ContainerOption names a spatial container implementation (spec §2 L3).
type ContainerOption int

const (
	DirectSum ContainerOption = iota
	LinkedCells
	ReferenceLinkedCells
	VerletLists
	VerletClusterLists
	numContainerOptions
)

func (c ContainerOption) String() string {
	switch c {
	case DirectSum:
		return "DirectSum"
	case LinkedCells:
		return "LinkedCells"
	case ReferenceLinkedCells:
		return "ReferenceLinkedCells"
	case VerletLists:
		return "VerletLists"
	case VerletClusterLists:
		return "VerletClusterLists"
	default:
		return fmt.Sprintf("ContainerOption(%d)", int(c))
	}
}

// AllContainerOptions returns every known ContainerOption, in enumeration
// order, the way FullSearch walks the configuration space.
func AllContainerOptions() []ContainerOption {
	out := make([]ContainerOption, numContainerOptions)
	for i := range out {
		out[i] = ContainerOption(i)
	}
	return out
}

// TraversalOption names a scheduling order over cells (spec §2 L4).
type TraversalOption int

const (
	TraversalDirectSum TraversalOption = iota
	TraversalC08
	TraversalC18
	TraversalSliced
	TraversalBalancedSliced
	TraversalVerletLists
	TraversalVerletClusterCells
	numTraversalOptions
)

func (t TraversalOption) String() string {
	switch t {
	case TraversalDirectSum:
		return "DirectSum"
	case TraversalC08:
		return "c08"
	case TraversalC18:
		return "c18"
	case TraversalSliced:
		return "sliced"
	case TraversalBalancedSliced:
		return "balancedSliced"
	case TraversalVerletLists:
		return "verletLists"
	case TraversalVerletClusterCells:
		return "verletClusterCells"
	default:
		return fmt.Sprintf("TraversalOption(%d)", int(t))
	}
}

func AllTraversalOptions() []TraversalOption {
	out := make([]TraversalOption, numTraversalOptions)
	for i := range out {
		out[i] = TraversalOption(i)
	}
	return out
}

// DataLayoutOption selects the array-of-structures / structure-of-arrays
// layout a traversal feeds to the functor (spec §2 L4).
type DataLayoutOption int

const (
	AoS DataLayoutOption = iota
	SoA
	numDataLayoutOptions
)

func (d DataLayoutOption) String() string {
	switch d {
	case AoS:
		return "AoS"
	case SoA:
		return "SoA"
	default:
		return fmt.Sprintf("DataLayoutOption(%d)", int(d))
	}
}

func AllDataLayoutOptions() []DataLayoutOption {
	out := make([]DataLayoutOption, numDataLayoutOptions)
	for i := range out {
		out[i] = DataLayoutOption(i)
	}
	return out
}

// Newton3Option selects whether a traversal symmetrizes pair updates.
type Newton3Option int

const (
	Newton3On Newton3Option = iota
	Newton3Off
	numNewton3Options
)

func (n Newton3Option) String() string {
	switch n {
	case Newton3On:
		return "enabled"
	case Newton3Off:
		return "disabled"
	default:
		return fmt.Sprintf("Newton3Option(%d)", int(n))
	}
}

func AllNewton3Options() []Newton3Option {
	out := make([]Newton3Option, numNewton3Options)
	for i := range out {
		out[i] = Newton3Option(i)
	}
	return out
}

// SelectorStrategyOption decides how FullSearch breaks ties/picks the
// winner among sampled configurations (spec §4.6).
type SelectorStrategyOption int

const (
	FastestAbs SelectorStrategyOption = iota
	FastestMean
)

func (s SelectorStrategyOption) String() string {
	switch s {
	case FastestAbs:
		return "fastestAbsoluteValue"
	case FastestMean:
		return "fastestMean"
	default:
		return fmt.Sprintf("SelectorStrategyOption(%d)", int(s))
	}
}

// TuningStrategyOption names which tuning.Strategy implementation the
// façade should construct.
type TuningStrategyOption int

const (
	TuningFullSearch TuningStrategyOption = iota
	TuningFullSearchMPI
	TuningPredictive
	TuningBayesian
	TuningActiveHarmony
)

func (t TuningStrategyOption) String() string {
	switch t {
	case TuningFullSearch:
		return "full-search"
	case TuningFullSearchMPI:
		return "full-search-mpi"
	case TuningPredictive:
		return "predictive"
	case TuningBayesian:
		return "bayesian-search"
	case TuningActiveHarmony:
		return "active-harmony"
	default:
		return fmt.Sprintf("TuningStrategyOption(%d)", int(t))
	}
}

// ExtrapolationMethodOption selects the predictor the Predictive strategy
// uses to forecast a configuration's next runtime (spec §4.6).
type ExtrapolationMethodOption int

const (
	LinearRegression ExtrapolationMethodOption = iota
	LagrangePolynomial
	NewtonPolynomial
)

func (e ExtrapolationMethodOption) String() string {
	switch e {
	case LinearRegression:
		return "linearRegression"
	case LagrangePolynomial:
		return "lagrange"
	case NewtonPolynomial:
		return "newton"
	default:
		return fmt.Sprintf("ExtrapolationMethodOption(%d)", int(e))
	}
}

// LoadEstimatorOption selects how the balanced sliced traversal estimates
// per-slab work (spec §4.4).
type LoadEstimatorOption int

const (
	LoadEstimatorNone LoadEstimatorOption = iota
	LoadEstimatorSquaredCellSize
)

func (l LoadEstimatorOption) String() string {
	switch l {
	case LoadEstimatorNone:
		return "none"
	case LoadEstimatorSquaredCellSize:
		return "squaredCellSize"
	default:
		return fmt.Sprintf("LoadEstimatorOption(%d)", int(l))
	}
}

// AcquisitionFunctionOption selects the Gaussian-process acquisition
// function (spec §4.6).
type AcquisitionFunctionOption int

const (
	UpperConfidenceBound AcquisitionFunctionOption = iota
	LowerConfidenceBound
	Mean
	ProbabilityOfImprovement
)

func (a AcquisitionFunctionOption) String() string {
	switch a {
	case UpperConfidenceBound:
		return "ucb"
	case LowerConfidenceBound:
		return "lcb"
	case Mean:
		return "mean"
	case ProbabilityOfImprovement:
		return "probability-of-improvement"
	default:
		return fmt.Sprintf("AcquisitionFunctionOption(%d)", int(a))
	}
}

// MixingRuleOption resolves the open question in spec §9(a): the source's
// ParticleClassLibrary::mixingE computes sqrt(eps_i + eps_j), while the
// physical Lorentz-Berthelot rule is sqrt(eps_i * eps_j). Both are
// surfaced explicitly rather than guessing intent.
type MixingRuleOption int

const (
	GeometricMean MixingRuleOption = iota
	ArithmeticMean
)

func (m MixingRuleOption) String() string {
	switch m {
	case GeometricMean:
		return "geometricMean"
	case ArithmeticMean:
		return "arithmeticMean"
	default:
		return fmt.Sprintf("MixingRuleOption(%d)", int(m))
	}
}

// DomainDistanceMetric resolves the open question in spec §9(b):
// DomainTools::getDistanceToDomain returns distance^(1/n), not a Euclidean
// distance. RootPowerN reproduces that helper as an opt-in, never the
// default and never used internally by the core.
type DomainDistanceMetric int

const (
	Euclidean DomainDistanceMetric = iota
	RootPowerN
)

func (d DomainDistanceMetric) String() string {
	switch d {
	case Euclidean:
		return "euclidean"
	case RootPowerN:
		return "rootPowerN"
	default:
		return fmt.Sprintf("DomainDistanceMetric(%d)", int(d))
	}
}
