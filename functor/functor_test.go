package functor

import (
	"math"
	"testing"

	"github.com/TimurEke/AutoPas/options"
)

func TestGetMixed24EpsilonGeometricMeanIsLorentzBerthelot(t *testing.T) {
	got := GetMixed24Epsilon(1.0, 4.0, options.GeometricMean)
	want := 24 * math.Sqrt(1.0*4.0)
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGetMixed24EpsilonArithmeticMeanMatchesSourceFormula(t *testing.T) {
	got := GetMixed24Epsilon(1.0, 4.0, options.ArithmeticMean)
	want := 24 * math.Sqrt(1.0+4.0)
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGetMixed24EpsilonIsSymmetric(t *testing.T) {
	a := GetMixed24Epsilon(2.0, 6.0, options.GeometricMean)
	b := GetMixed24Epsilon(6.0, 2.0, options.GeometricMean)
	if a != b {
		t.Errorf("expected mixing to be symmetric in its two arguments, got %v vs %v", a, b)
	}
}
