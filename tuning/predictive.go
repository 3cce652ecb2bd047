package tuning

import (
	"sort"

	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/options"
)

// Predictive retains (iteration, ns) history per configuration across
// tuning phases and uses it to avoid re-sampling every configuration
// every phase (spec §4.6 "Predictive").
type Predictive struct {
	full                         []Configuration
	history                      map[Configuration][]Evidence
	lastTestedPhase              map[Configuration]int
	method                       options.ExtrapolationMethodOption
	relativeOptimumRange         float64
	maxTuningPhasesWithoutTest   int
	numSamples                   int

	phase      int
	candidates []Configuration
	idx        int
}

// NewPredictive builds a Predictive strategy over the (compatibility
// filtered) configuration space.
func NewPredictive(space []Configuration, method options.ExtrapolationMethodOption,
	relativeOptimumRange float64, maxTuningPhasesWithoutTest, numSamples int) *Predictive {
	if len(space) == 0 {
		apierror.External("Predictive: the configuration space is empty after filtering by compatibility")
	}
	return &Predictive{
		full:                       append([]Configuration(nil), space...),
		history:                    make(map[Configuration][]Evidence),
		lastTestedPhase:            make(map[Configuration]int),
		method:                     method,
		relativeOptimumRange:       relativeOptimumRange,
		maxTuningPhasesWithoutTest: maxTuningPhasesWithoutTest,
		numSamples:                 numSamples,
		candidates:                 append([]Configuration(nil), space...),
	}
}

func (p *Predictive) CurrentConfiguration() Configuration { return p.candidates[p.idx] }

func (p *Predictive) AddEvidence(ns int64, iteration int) {
	cfg := p.CurrentConfiguration()
	p.history[cfg] = append(p.history[cfg], Evidence{Iteration: iteration, Ns: ns})
	p.lastTestedPhase[cfg] = p.phase
}

func (p *Predictive) Tune(lastWasInvalid bool) bool {
	if lastWasInvalid {
		p.candidates = append(p.candidates[:p.idx], p.candidates[p.idx+1:]...)
		if len(p.candidates) == 0 {
			// Every candidate this phase turned out invalid: re-derive a
			// candidate set from configurations with at least one valid
			// sample on record.
			for _, cfg := range p.full {
				if len(p.history[cfg]) > 0 {
					p.candidates = append(p.candidates, cfg)
				}
			}
			if len(p.candidates) == 0 {
				apierror.External("Predictive: every configuration is invalid and none has ever produced a valid sample")
			}
		}
		if p.idx >= len(p.candidates) {
			p.idx = 0
		}
		return true
	}
	if len(p.history[p.CurrentConfiguration()]) < p.numSamples {
		return true
	}
	p.idx++
	return p.idx < len(p.candidates)
}

func (p *Predictive) RemoveN3Option(opt options.Newton3Option) {
	filter := func(list []Configuration) []Configuration {
		out := list[:0]
		for _, c := range list {
			if c.Newton3 != opt {
				out = append(out, c)
			}
		}
		return out
	}
	p.full = filter(p.full)
	p.candidates = filter(p.candidates)
	if p.idx >= len(p.candidates) {
		p.idx = 0
	}
}

// Reset starts a new tuning phase: predicts every configuration's next
// runtime and rebuilds the candidate set from (a) configurations whose
// prediction falls within relativeOptimumRange of the best prediction,
// and (b) any configuration untested for maxTuningPhasesWithoutTest
// phases (spec §4.6).
func (p *Predictive) Reset(iteration int) {
	p.phase++
	p.idx = 0

	type scored struct {
		cfg  Configuration
		pred float64
		has  bool
	}
	scores := make([]scored, 0, len(p.full))
	bestPred := -1.0
	for _, cfg := range p.full {
		pred, ok := predict(p.history[cfg], p.method)
		scores = append(scores, scored{cfg: cfg, pred: pred, has: ok})
		if ok && (bestPred < 0 || pred < bestPred) {
			bestPred = pred
		}
	}

	var candidates []Configuration
	seen := make(map[Configuration]bool)
	add := func(cfg Configuration) {
		if !seen[cfg] {
			seen[cfg] = true
			candidates = append(candidates, cfg)
		}
	}
	for _, s := range scores {
		if s.has && bestPred >= 0 && s.pred <= p.relativeOptimumRange*bestPred {
			add(s.cfg)
		}
		phasesSinceTest := p.phase - p.lastTestedPhase[s.cfg]
		if _, tested := p.lastTestedPhase[s.cfg]; !tested || phasesSinceTest >= p.maxTuningPhasesWithoutTest {
			add(s.cfg)
		}
	}
	if len(candidates) == 0 {
		candidates = append([]Configuration(nil), p.full...)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].String() < candidates[j].String() })
	p.candidates = candidates
}

// predict forecasts the next runtime for a configuration by
// extrapolating over its two most recent samples. Lagrange/Newton
// extrapolation over two points reduces to the same line as linear
// regression; all three only diverge with three or more retained
// samples, which this history never needs since only the last two
// matter for predicting the immediate next phase.
func predict(history []Evidence, method options.ExtrapolationMethodOption) (float64, bool) {
	if len(history) == 0 {
		return 0, false
	}
	if len(history) == 1 {
		return float64(history[0].Ns), true
	}
	a, b := history[len(history)-2], history[len(history)-1]
	if a.Iteration == b.Iteration {
		return float64(b.Ns), true
	}
	slope := float64(b.Ns-a.Ns) / float64(b.Iteration-a.Iteration)
	nextIteration := b.Iteration + (b.Iteration - a.Iteration)
	return float64(b.Ns) + slope*float64(nextIteration-b.Iteration), true
}

var _ Strategy = (*Predictive)(nil)
