/*Package gp implements the Gaussian-process regression the Bayesian
tuning strategy uses to model a configuration's runtime as a function of
a continuous parameter (spec §4.6 "Bayesian / GaussianProcess"): a
squared-exponential kernel, zero prior mean, fixed observation noise, and
a Cholesky-based posterior, the same numerical building block the
teacher's only other gonum usage (go/sim_stats.go, scripts/sim_stats.go)
reaches for: gonum.org/v1/gonum/mat.
*/
package gp

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Regressor is a 1D Gaussian process over a continuous input (e.g.
// cellSizeFactor), fit to whatever (x,y) observations have been added so
// far.
type Regressor struct {
	lengthScale float64
	signalVar   float64
	noiseVar    float64

	xs []float64
	ys []float64

	chol *mat.Cholesky
	ky   *mat.VecDense // K^-1 y, cached after Fit
}

// New builds a GP regressor with the given squared-exponential kernel
// hyperparameters and fixed observation noise variance.
func New(lengthScale, signalVar, noiseVar float64) *Regressor {
	return &Regressor{lengthScale: lengthScale, signalVar: signalVar, noiseVar: noiseVar}
}

func (r *Regressor) kernel(a, b float64) float64 {
	d := a - b
	return r.signalVar * math.Exp(-(d*d)/(2*r.lengthScale*r.lengthScale))
}

// Len returns the number of observations added so far.
func (r *Regressor) Len() int { return len(r.xs) }

// Add records one more (x,y) observation; the posterior is not
// refreshed until the next Fit call.
func (r *Regressor) Add(x, y float64) {
	r.xs = append(r.xs, x)
	r.ys = append(r.ys, y)
	r.chol = nil
}

// Fit builds the Cholesky factorization of K + noiseVar*I over the
// current observations. Must be called at least once before Predict.
func (r *Regressor) Fit() bool {
	n := len(r.xs)
	if n == 0 {
		return false
	}
	k := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := r.kernel(r.xs[i], r.xs[j])
			if i == j {
				v += r.noiseVar
			}
			k.SetSym(i, j, v)
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(k); !ok {
		return false
	}
	r.chol = &chol

	y := mat.NewVecDense(n, r.ys)
	var ky mat.VecDense
	if err := chol.SolveVecTo(&ky, y); err != nil {
		return false
	}
	r.ky = &ky
	return true
}

// Predict returns the posterior mean and standard deviation at x. Fit
// must have succeeded first.
func (r *Regressor) Predict(x float64) (mean, std float64) {
	n := len(r.xs)
	kStar := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		kStar.SetVec(i, r.kernel(x, r.xs[i]))
	}
	mean = mat.Dot(kStar, r.ky)

	var v mat.VecDense
	if err := r.chol.SolveVecTo(&v, kStar); err != nil {
		return mean, math.Sqrt(r.signalVar + r.noiseVar)
	}
	variance := r.kernel(x, x) - mat.Dot(kStar, &v)
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// AcquisitionFunc scores a candidate x for the next sample; the caller
// picks the arg-extremum over a finite candidate set (spec §4.6).
type AcquisitionFunc func(mean, std float64) float64

// UCB is the upper-confidence-bound acquisition, mean + kappa·std.
// ArgExtremum minimizes every acquisition score, so under it UCB ranks
// uncertain candidates as worse, not better.
func UCB(kappa float64) AcquisitionFunc {
	return func(mean, std float64) float64 { return mean + kappa*std }
}

// LCB is the lower-confidence-bound acquisition, the natural pairing for
// a minimizing search: trades mean against predicted uncertainty.
func LCB(kappa float64) AcquisitionFunc {
	return func(mean, std float64) float64 { return mean - kappa*std }
}

// Mean ignores uncertainty entirely and scores by the posterior mean.
func Mean() AcquisitionFunc {
	return func(mean, std float64) float64 { return mean }
}

// ProbabilityOfImprovement scores x by its probability of beating the
// best observation so far, using the standard normal CDF the way the
// teacher's stats code reaches for gonum/stat/distuv.
func ProbabilityOfImprovement(best float64) AcquisitionFunc {
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	return func(mean, std float64) float64 {
		if std <= 0 {
			if mean <= best {
				return 1
			}
			return 0
		}
		z := (best - mean) / std
		return norm.CDF(z)
	}
}

// ArgExtremum evaluates f's acquisition over candidates and returns the
// candidate minimizing it (the search always minimizes runtime, spec
// §4.6).
func ArgExtremum(candidates []float64, r *Regressor, f AcquisitionFunc) float64 {
	best := candidates[0]
	bestScore := math.Inf(1)
	for _, x := range candidates {
		mean, std := r.Predict(x)
		score := f(mean, std)
		if score < bestScore {
			bestScore = score
			best = x
		}
	}
	return best
}
