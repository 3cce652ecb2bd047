package autopas

import (
	"math"

	"github.com/TimurEke/AutoPas/options"
)

// DistanceToDomain reports how far point lies outside [boxMin,boxMax),
// zero if point is inside. It resolves the open question in spec §9(b):
// DomainTools::getDistanceToDomain returns distance^(1/n) rather than a
// Euclidean distance. Euclidean takes the ordinary sqrt of the summed
// squared per-axis overshoot; RootPowerN instead takes the cube root
// (n=3, the dimensionality), reproducing the source's formula as an
// opt-in the core never calls internally.
func (a *AutoPas) DistanceToDomain(point [3]float64, metric options.DomainDistanceMetric) float64 {
	sumSquares := 0.0
	for i := 0; i < 3; i++ {
		d := 0.0
		switch {
		case point[i] < a.boxMin[i]:
			d = a.boxMin[i] - point[i]
		case point[i] >= a.boxMax[i]:
			d = point[i] - a.boxMax[i]
		}
		sumSquares += d * d
	}
	if metric == options.RootPowerN {
		return math.Pow(sumSquares, 1.0/3.0)
	}
	return math.Sqrt(sumSquares)
}
