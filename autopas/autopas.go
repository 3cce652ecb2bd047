/*Package autopas is the user-facing façade spec §4.7 describes: a single
AutoPas value that owns the current container, runs the tuning state
machine across calls to IteratePairwise, and exposes the data-plane and
query operations a simulation loop drives every step. It is the one
package allowed to depend on both container and tuning, since wiring
them together is its entire job.
*/
package autopas

import (
	"time"

	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/container"
	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/mpi"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/thread"
	"github.com/TimurEke/AutoPas/tuning"
)

// AutoPas is the façade a simulation loop drives: set configuration via
// the SetXxx methods, call Init once, then AddParticle/IteratePairwise
// every step.
type AutoPas struct {
	boxMin, boxMax   [3]float64
	cutoff           float64
	skin             float64
	rebuildFrequency int
	clusterSize      int
	loadEstimator    options.LoadEstimatorOption

	allowedContainers      []options.ContainerOption
	allowedTraversals      []options.TraversalOption
	allowedDataLayouts     []options.DataLayoutOption
	allowedNewton3         []options.Newton3Option
	allowedCellSizeFactors []float64

	tuningStrategyOption options.TuningStrategyOption
	selectorStrategy     options.SelectorStrategyOption
	numSamples           int
	tuningInterval       int

	// extra construction inputs only some tuning strategies need.
	mpiComm            mpi.Comm
	extrapolation      options.ExtrapolationMethodOption
	relativeOptimumRange float64
	maxPhasesWithoutTest int
	bayesianCandidates []float64
	bayesianAcquisition options.AcquisitionFunctionOption
	bayesianHyperparams [3]float64 // lengthScale, signalVar, noiseVar
	bayesianMaxSamples int
	activeHarmonyBackend tuning.ExternalBackend

	pool      *thread.Pool
	container container.Container
	strategy  tuning.Strategy

	iteration        int
	sinceTuning       int
	inTuningPhase     bool
	lastWasInvalid    bool
}

// New builds a façade with the spec's documented defaults: no tuning
// phase in progress, every container/traversal/layout/Newton3 option
// allowed, full-search tuning with three samples per configuration.
func New() *AutoPas {
	return &AutoPas{
		rebuildFrequency:       10,
		clusterSize:            4,
		allowedContainers:      options.AllContainerOptions(),
		allowedTraversals:      options.AllTraversalOptions(),
		allowedDataLayouts:     options.AllDataLayoutOptions(),
		allowedNewton3:         options.AllNewton3Options(),
		allowedCellSizeFactors: []float64{1.0},
		tuningStrategyOption:   options.TuningFullSearch,
		selectorStrategy:       options.FastestMean,
		numSamples:             3,
		tuningInterval:         100,
		relativeOptimumRange:   1.2,
		maxPhasesWithoutTest:   5,
		bayesianHyperparams:    [3]float64{1.0, 1.0, 1e-6},
		bayesianMaxSamples:     10,
		pool:                   thread.NewPool(thread.NumThreads()),
	}
}

func (a *AutoPas) SetBoxMin(r [3]float64)             { a.boxMin = r }
func (a *AutoPas) SetBoxMax(r [3]float64)             { a.boxMax = r }
func (a *AutoPas) SetCutoff(cutoff float64)           { a.cutoff = cutoff }
func (a *AutoPas) SetVerletSkin(skin float64)         { a.skin = skin }
func (a *AutoPas) SetVerletRebuildFrequency(n int)    { a.rebuildFrequency = n }
func (a *AutoPas) SetVerletClusterSize(n int)         { a.clusterSize = n }
func (a *AutoPas) SetLoadEstimator(e options.LoadEstimatorOption) { a.loadEstimator = e }

func (a *AutoPas) SetAllowedContainers(c []options.ContainerOption)      { a.allowedContainers = c }
func (a *AutoPas) SetAllowedTraversals(t []options.TraversalOption)      { a.allowedTraversals = t }
func (a *AutoPas) SetAllowedDataLayouts(d []options.DataLayoutOption)    { a.allowedDataLayouts = d }
func (a *AutoPas) SetAllowedNewton3Options(n []options.Newton3Option)    { a.allowedNewton3 = n }
func (a *AutoPas) SetAllowedCellSizeFactors(c []float64)                 { a.allowedCellSizeFactors = c }

func (a *AutoPas) SetTuningStrategyOption(t options.TuningStrategyOption) { a.tuningStrategyOption = t }
func (a *AutoPas) SetSelectorStrategy(s options.SelectorStrategyOption)   { a.selectorStrategy = s }
func (a *AutoPas) SetNumSamples(n int)                                    { a.numSamples = n }
func (a *AutoPas) SetTuningInterval(n int)                                { a.tuningInterval = n }
func (a *AutoPas) SetExtrapolationMethod(m options.ExtrapolationMethodOption) { a.extrapolation = m }
func (a *AutoPas) SetPredictiveParams(relativeOptimumRange float64, maxPhasesWithoutTest int) {
	a.relativeOptimumRange = relativeOptimumRange
	a.maxPhasesWithoutTest = maxPhasesWithoutTest
}
func (a *AutoPas) SetBayesianParams(candidates []float64, acquisition options.AcquisitionFunctionOption,
	lengthScale, signalVar, noiseVar float64, maxSamples int) {
	a.bayesianCandidates = candidates
	a.bayesianAcquisition = acquisition
	a.bayesianHyperparams = [3]float64{lengthScale, signalVar, noiseVar}
	a.bayesianMaxSamples = maxSamples
}
func (a *AutoPas) SetActiveHarmonyBackend(backend tuning.ExternalBackend) { a.activeHarmonyBackend = backend }
func (a *AutoPas) SetMPIComm(comm mpi.Comm)                               { a.mpiComm = comm }

// SetThreads bounds the worker pool the concurrent traversals use (spec
// §5); grounded on the teacher's thread.SetThreads/GOMAXPROCS idiom.
func (a *AutoPas) SetThreads(n int) {
	thread.SetThreads(n)
	a.pool = thread.NewPool(n)
}

// Init builds the filtered configuration space, the tuning strategy it
// names, and the first container (spec §4.7 step 0). f is the functor
// the simulation will drive every step; its AllowsNewton3/AllowsNonNewton3
// and IsAppropriateClusterSize decide which configurations are even
// admissible (spec §4.6 "FullSearch: enumerate the Cartesian product
// filtered by compatibility").
func (a *AutoPas) Init(f functor.Functor) {
	space := tuning.BuildSearchSpace(a.allowedContainers, a.allowedTraversals, a.allowedDataLayouts,
		a.allowedNewton3, a.allowedCellSizeFactors, f)

	switch a.tuningStrategyOption {
	case options.TuningFullSearch:
		a.strategy = tuning.NewFullSearch(space, a.numSamples, a.selectorStrategy)
	case options.TuningFullSearchMPI:
		if a.mpiComm == nil {
			apierror.External("AutoPas.Init: TuningFullSearchMPI requires SetMPIComm")
		}
		a.strategy = tuning.NewFullSearchMPI(a.mpiComm, space, a.numSamples, a.selectorStrategy)
	case options.TuningPredictive:
		a.strategy = tuning.NewPredictive(space, a.extrapolation, a.relativeOptimumRange, a.maxPhasesWithoutTest, a.numSamples)
	case options.TuningBayesian:
		if len(a.bayesianCandidates) == 0 {
			apierror.External("AutoPas.Init: TuningBayesian requires SetBayesianParams with a non-empty candidate grid")
		}
		a.strategy = tuning.NewBayesian(space[0], a.bayesianCandidates, a.bayesianAcquisition,
			a.bayesianHyperparams[0], a.bayesianHyperparams[1], a.bayesianHyperparams[2], a.numSamples, a.bayesianMaxSamples)
	case options.TuningActiveHarmony:
		if a.activeHarmonyBackend == nil {
			apierror.External("AutoPas.Init: TuningActiveHarmony requires SetActiveHarmonyBackend")
		}
		a.strategy = tuning.NewActiveHarmonyStrategy(a.activeHarmonyBackend, space)
	default:
		apierror.External("AutoPas.Init: unknown tuning strategy option %v", a.tuningStrategyOption)
	}

	a.container = a.buildContainer(a.strategy.CurrentConfiguration())
}

func (a *AutoPas) buildContainer(cfg tuning.Configuration) container.Container {
	interactionLength := a.cutoff + a.skin
	switch cfg.Container {
	case options.DirectSum:
		return container.NewDirectSum(a.boxMin, a.boxMax)
	case options.LinkedCells:
		return container.NewLinkedCells(a.boxMin, a.boxMax, interactionLength, cfg.CellSizeFactor, a.pool, a.loadEstimator)
	case options.ReferenceLinkedCells:
		return container.NewReferenceLinkedCells(a.boxMin, a.boxMax, interactionLength, cfg.CellSizeFactor, a.pool, a.loadEstimator)
	case options.VerletLists:
		return container.NewVerletLists(a.boxMin, a.boxMax, a.cutoff, a.skin, a.rebuildFrequency)
	case options.VerletClusterLists:
		return container.NewVerletClusterLists(a.boxMin, a.boxMax, a.cutoff, a.skin, a.clusterSize, a.rebuildFrequency, a.pool)
	default:
		apierror.External("AutoPas.buildContainer: unknown container option %v", cfg.Container)
		return nil
	}
}

// AddParticle inserts an owned particle.
func (a *AutoPas) AddParticle(p particle.Particle) { a.container.Add(p) }

// AddHaloParticle inserts a halo particle.
func (a *AutoPas) AddHaloParticle(p particle.Particle) { a.container.AddHalo(p) }

// UpdateContainer re-sorts owned particles into their current cells and
// returns every particle that drifted outside the box entirely (spec §8
// invariant 5).
func (a *AutoPas) UpdateContainer() []particle.Particle { return a.container.Update() }

// ForEach calls f for every particle matching behavior.
func (a *AutoPas) ForEach(behavior IteratorBehavior, f func(particle.Particle)) {
	if behavior.includesOwned() {
		a.container.Iterate(behavior.includesDummies(), f)
	}
	if behavior.includesHalo() {
		a.container.IterateHalo(f)
	}
}

// ForEachInRegion calls f for every particle matching behavior whose
// position lies in the closed interval [lo,hi] (spec §8 invariant 6).
func (a *AutoPas) ForEachInRegion(lo, hi [3]float64, behavior IteratorBehavior, f func(particle.Particle)) {
	if behavior.includesOwned() {
		a.container.RegionIterate(lo, hi, behavior.includesDummies(), f)
	}
	if behavior.includesHalo() {
		a.container.IterateHalo(func(p particle.Particle) {
			if inRegion(p.GetPosition(), lo, hi) {
				f(p)
			}
		})
	}
}

// inRegion reports whether r lies in the closed box [lo,hi] (spec §8
// invariant 6).
func inRegion(r, lo, hi [3]float64) bool {
	for d := 0; d < 3; d++ {
		if r[d] < lo[d] || r[d] > hi[d] {
			return false
		}
	}
	return true
}

// Reduce folds over every particle matching behavior, the way a caller
// computing total kinetic energy or momentum would.
func (a *AutoPas) Reduce(behavior IteratorBehavior, init interface{}, f func(acc interface{}, p particle.Particle) interface{}) interface{} {
	acc := init
	a.ForEach(behavior, func(p particle.Particle) { acc = f(acc, p) })
	return acc
}

// GetNumberOfParticles counts particles matching behavior.
func (a *AutoPas) GetNumberOfParticles(behavior IteratorBehavior) int {
	n := 0
	a.ForEach(behavior, func(particle.Particle) { n++ })
	return n
}

func (a *AutoPas) GetCutoff() float64            { return a.cutoff }
func (a *AutoPas) GetVerletSkin() float64        { return a.skin }
func (a *AutoPas) GetInteractionLength() float64 { return a.cutoff + a.skin }

// IteratePairwise runs the state machine spec §4.7 describes: rebuild the
// neighbor structure if it is stale, enter or continue a tuning phase if
// one is due, materialize whatever configuration the strategy currently
// names, run one pairwise traversal under it, feed the measured runtime
// back to the strategy if this iteration is tuning-relevant, and return
// whether this call was itself a tuning iteration.
func (a *AutoPas) IteratePairwise(f functor.Functor) bool {
	if a.container.IsUpdateNeeded() {
		a.container.Update()
		a.container.RebuildNeighborLists()
	}

	// A previous call's configuration was flagged invalid after the fact
	// (spec §7 "sampling invalidity... recoverable via lastWasInvalid"):
	// drop it from the strategy's candidate set before running anything
	// under it again.
	if a.inTuningPhase && a.lastWasInvalid {
		a.lastWasInvalid = false
		a.advanceOrEndTuning(true)
	}

	if !a.inTuningPhase && a.sinceTuning >= a.tuningInterval {
		a.inTuningPhase = true
		a.strategy.Reset(a.iteration)
		a.container = a.buildContainer(a.strategy.CurrentConfiguration())
	}

	wasTuning := a.inTuningPhase
	cfg := a.strategy.CurrentConfiguration()

	start := time.Now()
	a.container.IteratePairwise(f, cfg.Traversal, cfg.DataLayout, cfg.Newton3 == options.Newton3On)
	elapsed := time.Since(start).Nanoseconds()

	if a.inTuningPhase && f.IsRelevantForTuning() {
		a.strategy.AddEvidence(elapsed, a.iteration)
		a.advanceOrEndTuning(false)
	} else if !a.inTuningPhase {
		a.sinceTuning++
	}

	a.iteration++
	return wasTuning
}

// advanceOrEndTuning calls Tune and materializes whatever configuration
// the strategy lands on next, ending the tuning phase if the search
// space is exhausted. Returns whether the tuning phase continues.
func (a *AutoPas) advanceOrEndTuning(lastWasInvalid bool) bool {
	if a.strategy.Tune(lastWasInvalid) {
		a.container = a.buildContainer(a.strategy.CurrentConfiguration())
		return true
	}
	a.inTuningPhase = false
	a.sinceTuning = 0
	a.container = a.buildContainer(a.strategy.CurrentConfiguration())
	return false
}

// InvalidateCurrentConfiguration reports to the active tuning strategy
// that the configuration just run threw a sampling-invalidity error
// (spec §7 "sampling invalidity... recoverable via lastWasInvalid"): the
// next IteratePairwise call drops it from the candidate set instead of
// feeding it a bogus measurement.
func (a *AutoPas) InvalidateCurrentConfiguration() {
	a.lastWasInvalid = true
}
