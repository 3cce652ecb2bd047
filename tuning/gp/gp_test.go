package gp

import (
	"math"
	"testing"
)

func TestFitFailsWithNoObservations(t *testing.T) {
	r := New(1.0, 1.0, 1e-4)
	if r.Fit() {
		t.Fatal("expected Fit to fail with zero observations")
	}
}

func TestPredictAtObservedPointMatchesClosedForm(t *testing.T) {
	const signalVar, noiseVar = 1.0, 1e-4
	r := New(1.0, signalVar, noiseVar)
	r.Add(0, 5)
	if !r.Fit() {
		t.Fatal("expected Fit to succeed with one observation")
	}

	mean, std := r.Predict(0)

	// With a single observation (x0,y0), K = [signalVar+noiseVar], so
	// ky = y0/(signalVar+noiseVar) and, at x=x0, kStar = [signalVar] (the
	// kernel evaluated against itself, i.e. exp(0) = 1).
	wantMean := signalVar * 5 / (signalVar + noiseVar)
	wantVar := signalVar * noiseVar / (signalVar + noiseVar)
	wantStd := math.Sqrt(wantVar)

	if math.Abs(mean-wantMean) > 1e-9 {
		t.Errorf("expected mean %.9f, got %.9f", wantMean, mean)
	}
	if math.Abs(std-wantStd) > 1e-9 {
		t.Errorf("expected std %.9f, got %.9f", wantStd, std)
	}
}

func TestAcquisitionFunctionsApplyTheirFormula(t *testing.T) {
	const mean, std, kappa = 2.0, 0.5, 2.0
	if got := UCB(kappa)(mean, std); got != mean+kappa*std {
		t.Errorf("UCB: expected %v, got %v", mean+kappa*std, got)
	}
	if got := LCB(kappa)(mean, std); got != mean-kappa*std {
		t.Errorf("LCB: expected %v, got %v", mean-kappa*std, got)
	}
	if got := Mean()(mean, std); got != mean {
		t.Errorf("Mean: expected %v, got %v", mean, got)
	}
}

func TestProbabilityOfImprovementDegenerateStd(t *testing.T) {
	acq := ProbabilityOfImprovement(10)
	if got := acq(5, 0); got != 1 {
		t.Errorf("expected probability 1 when mean beats best with zero std, got %v", got)
	}
	if got := acq(15, 0); got != 0 {
		t.Errorf("expected probability 0 when mean is worse than best with zero std, got %v", got)
	}
}

func TestProbabilityOfImprovementFavorsLowerMean(t *testing.T) {
	acq := ProbabilityOfImprovement(10)
	better := acq(5, 2)
	worse := acq(12, 2)
	if better <= worse {
		t.Errorf("expected a lower mean to score a higher probability of improvement, got %v <= %v", better, worse)
	}
}

func TestArgExtremumPicksTheCandidateFarthestFromAPositiveObservation(t *testing.T) {
	r := New(1.0, 1.0, 1e-4)
	r.Add(0, 10)
	if !r.Fit() {
		t.Fatal("expected Fit to succeed")
	}

	// Posterior mean under a squared-exponential kernel decays toward
	// zero away from the single positive observation, so the smallest
	// posterior mean among the candidates is the one farthest from it.
	got := ArgExtremum([]float64{0, 1, 5}, r, Mean())
	if got != 5 {
		t.Errorf("expected ArgExtremum to pick 5, got %v", got)
	}
}
