package tuning

import (
	"math"

	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/tuning/gp"
)

// Bayesian explores a continuous cellSizeFactor for one fixed
// container/traversal/layout/Newton3 tuple via Gaussian-process
// regression (spec §4.6 "Bayesian / GaussianProcess"): each Tune call
// refits the GP on every sample seen so far and picks the next
// cellSizeFactor to try by evaluating the chosen acquisition function
// over a finite candidate grid.
type Bayesian struct {
	base       Configuration
	candidates []float64
	acquire    func(best float64) gp.AcquisitionFunc
	regressor  *gp.Regressor
	numSamples int
	maxSamples int

	current  Configuration
	lastNs   []int64
	bestSeen float64
}

// NewBayesian builds a Bayesian strategy exploring cellSizeFactor over
// candidateGrid, a finite set of values to score the acquisition
// function against (spec §4.6: "evaluates an acquisition function on a
// finite sample set").
func NewBayesian(base Configuration, candidateGrid []float64, acquisition options.AcquisitionFunctionOption,
	lengthScale, signalVar, noiseVar float64, numSamples, maxSamples int) *Bayesian {
	if len(candidateGrid) == 0 {
		apierror.External("Bayesian: the candidate grid for cellSizeFactor is empty")
	}
	var acquire func(best float64) gp.AcquisitionFunc
	switch acquisition {
	case options.UpperConfidenceBound:
		acquire = func(best float64) gp.AcquisitionFunc { return gp.UCB(2.0) }
	case options.LowerConfidenceBound:
		acquire = func(best float64) gp.AcquisitionFunc { return gp.LCB(2.0) }
	case options.ProbabilityOfImprovement:
		acquire = func(best float64) gp.AcquisitionFunc {
			poi := gp.ProbabilityOfImprovement(best)
			return func(mean, std float64) float64 { return -poi(mean, std) }
		}
	default:
		acquire = func(best float64) gp.AcquisitionFunc { return gp.Mean() }
	}
	b := &Bayesian{
		base:       base,
		candidates: append([]float64(nil), candidateGrid...),
		acquire:    acquire,
		regressor:  gp.New(lengthScale, signalVar, noiseVar),
		numSamples: numSamples,
		maxSamples: maxSamples,
		bestSeen:   math.Inf(1),
	}
	b.current = b.configAt(candidateGrid[len(candidateGrid)/2])
	return b
}

func (b *Bayesian) configAt(cellSize float64) Configuration {
	cfg := b.base
	cfg.CellSizeFactor = cellSize
	return cfg
}

func (b *Bayesian) CurrentConfiguration() Configuration { return b.current }

func (b *Bayesian) AddEvidence(ns int64, iteration int) {
	b.lastNs = append(b.lastNs, ns)
	if float64(ns) < b.bestSeen {
		b.bestSeen = float64(ns)
	}
}

func (b *Bayesian) Tune(lastWasInvalid bool) bool {
	if lastWasInvalid {
		return b.regressor.Len() < b.maxSamples
	}
	if len(b.lastNs) < b.numSamples {
		return true
	}
	var sum int64
	for _, ns := range b.lastNs {
		sum += ns
	}
	mean := float64(sum) / float64(len(b.lastNs))
	b.regressor.Add(b.current.CellSizeFactor, mean)
	b.lastNs = nil

	if !b.regressor.Fit() || b.samplesTaken() >= b.maxSamples {
		return false
	}
	next := gp.ArgExtremum(b.candidates, b.regressor, b.acquire(b.bestSeen))
	b.current = b.configAt(next)
	return true
}

func (b *Bayesian) samplesTaken() int { return b.regressor.Len() }

func (b *Bayesian) RemoveN3Option(opt options.Newton3Option) {
	if b.base.Newton3 == opt {
		apierror.External("Bayesian: the functor refused the only Newton-3 policy this strategy was configured with")
	}
}

func (b *Bayesian) Reset(iteration int) {
	b.lastNs = nil
	b.current = b.configAt(b.candidates[len(b.candidates)/2])
}

var _ Strategy = (*Bayesian)(nil)
