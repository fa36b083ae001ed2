package math_test

import (
	"testing"

	cmath "github.com/sw965/nhits/math"
)

func TestCentralDifference(t *testing.T) {
	got := cmath.CentralDifference(1.0, 0.0, 0.5)
	if got != 1.0 {
		t.Errorf("CentralDifference = %f, want 1.0", got)
	}
}

func TestNumericalGradient(t *testing.T) {
	f := func(xs []float32) float32 {
		return xs[0]*xs[0] + 3.0*xs[1]
	}
	grad := cmath.NumericalGradient([]float32{2.0, 1.0}, f)

	wants := []float32{4.0, 3.0}
	for i, want := range wants {
		d := grad[i] - want
		if d < 0 {
			d = -d
		}
		if d > 0.01 {
			t.Errorf("grad[%d] = %f, want %f", i, grad[i], want)
		}
	}
}
