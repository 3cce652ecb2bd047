/*Package tuning implements the auto-tuning strategies spec §4.6 names:
FullSearch, FullSearchMPI, Predictive, a Bayesian GaussianProcess
strategy (bayesian.go, built on the tuning/gp regressor) and
ActiveHarmonyStrategy. Every strategy operates over a
Configuration space filtered down by compatibility once at construction,
and records wall-clock Evidence samples via AddEvidence.
*/
package tuning

import (
	"fmt"

	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/options"
)

// Configuration names one point in the tunable search space: a
// container, the traversal run against it, the data layout fed to the
// functor, the Newton-3 policy and the cell-size factor (spec §2 L3/L4).
type Configuration struct {
	Container      options.ContainerOption
	Traversal      options.TraversalOption
	DataLayout     options.DataLayoutOption
	Newton3        options.Newton3Option
	CellSizeFactor float64
}

func (c Configuration) String() string {
	return fmt.Sprintf("%s-%s-%s-Newton3%s-cellSize%.3g",
		c.Container, c.Traversal, c.DataLayout, c.Newton3, c.CellSizeFactor)
}

// compatible reports whether a container/traversal/layout/Newton3
// combination is one iteratePairwise could actually run (spec §7
// "configuration errors": an incompatible tuple is filtered out before
// tuning ever samples it, rather than discovered at runtime).
func compatible(c Configuration, f functor.Functor) bool {
	switch c.Container {
	case options.DirectSum:
		if c.Traversal != options.TraversalDirectSum {
			return false
		}
	case options.LinkedCells, options.ReferenceLinkedCells:
		switch c.Traversal {
		case options.TraversalC08, options.TraversalC18, options.TraversalSliced, options.TraversalBalancedSliced:
		default:
			return false
		}
	case options.VerletLists:
		if c.Traversal != options.TraversalVerletLists {
			return false
		}
	case options.VerletClusterLists:
		if c.Traversal != options.TraversalVerletClusterCells {
			return false
		}
		if !f.IsAppropriateClusterSize(4, c.DataLayout) {
			return false
		}
	}
	if c.Newton3 == options.Newton3On && !f.AllowsNewton3() {
		return false
	}
	if c.Newton3 == options.Newton3Off && !f.AllowsNonNewton3() {
		return false
	}
	return true
}

// BuildSearchSpace is the Cartesian product of every allowed option,
// filtered by compatible (spec §4.6 FullSearch: "enumerate the
// Cartesian product filtered by compatibility").
func BuildSearchSpace(containers []options.ContainerOption, traversals []options.TraversalOption,
	layouts []options.DataLayoutOption, newton3s []options.Newton3Option, cellSizeFactors []float64,
	f functor.Functor) []Configuration {
	var out []Configuration
	for _, c := range containers {
		for _, tr := range traversals {
			for _, l := range layouts {
				for _, n3 := range newton3s {
					for _, csf := range cellSizeFactors {
						cfg := Configuration{Container: c, Traversal: tr, DataLayout: l, Newton3: n3, CellSizeFactor: csf}
						if compatible(cfg, f) {
							out = append(out, cfg)
						}
					}
				}
			}
		}
	}
	return out
}

// Evidence is one wall-clock measurement of a Configuration, recorded
// against the tuning iteration it was taken in (spec §4.6 Predictive:
// "retains (iteration, ns) history per config").
type Evidence struct {
	Iteration int
	Ns        int64
}

// Strategy is the tuner contract spec §4.6 names.
type Strategy interface {
	// CurrentConfiguration returns the configuration the façade should
	// run next.
	CurrentConfiguration() Configuration

	// Tune advances the strategy to its next configuration (or decision)
	// after a sample has been collected. lastWasInvalid marks a sample
	// that could not actually be run (spec §7 "sampling invalidity").
	// Returns whether there is more to try this tuning phase.
	Tune(lastWasInvalid bool) bool

	// AddEvidence records a wall-clock sample (nanoseconds) for the
	// current configuration at the given global iteration.
	AddEvidence(ns int64, iteration int)

	// RemoveN3Option drops every configuration using the given Newton-3
	// policy from the live search space, e.g. after the functor refuses
	// it outright.
	RemoveN3Option(opt options.Newton3Option)

	// Reset starts a fresh tuning phase at the given global iteration.
	// FullSearch and ActiveHarmonyStrategy restore their full search
	// space; Predictive rebuilds its candidate list from its history.
	Reset(iteration int)
}
