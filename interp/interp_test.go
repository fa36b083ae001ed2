package interp_test

import (
	"testing"

	"github.com/sw965/nhits/blas32/vector"
	"github.com/sw965/nhits/interp"
)

func closeTo(a, b, tolerance float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func TestResizeIdentityWhenKnotsEqualSize(t *testing.T) {
	knots := vector.New([]float32{2.0, -1.0, 0.5, 3.0})
	for _, mode := range []interp.Mode{interp.Nearest, interp.Linear, interp.Cubic} {
		y, err := interp.Resize(knots, knots.N, mode)
		if err != nil {
			t.Fatal(err)
		}
		for i := range knots.Data {
			if y.Data[i] != knots.Data[i] {
				t.Errorf("%v: y[%d] = %f, want %f", mode, i, y.Data[i], knots.Data[i])
			}
		}
	}
}

func TestResizeSingleKnotBroadcasts(t *testing.T) {
	knots := vector.New([]float32{7.5})
	for _, mode := range []interp.Mode{interp.Nearest, interp.Linear, interp.Cubic} {
		y, err := interp.Resize(knots, 6, mode)
		if err != nil {
			t.Fatal(err)
		}
		for i := range y.Data {
			if y.Data[i] != 7.5 {
				t.Errorf("%v: y[%d] = %f, want 7.5", mode, i, y.Data[i])
			}
		}
	}
}

func TestResizeLinear(t *testing.T) {
	knots := vector.New([]float32{0.0, 4.0})
	y, err := interp.Resize(knots, 4, interp.Linear)
	if err != nil {
		t.Fatal(err)
	}
	// Half-pixel source mapping with edge clamping.
	want := []float32{0.0, 1.0, 3.0, 4.0}
	for i, e := range want {
		if !closeTo(y.Data[i], e, 1e-6) {
			t.Errorf("y[%d] = %f, want %f", i, y.Data[i], e)
		}
	}
}

func TestResizeNearest(t *testing.T) {
	knots := vector.New([]float32{1.0, 2.0})
	y, err := interp.Resize(knots, 4, interp.Nearest)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{1.0, 1.0, 2.0, 2.0}
	for i, e := range want {
		if y.Data[i] != e {
			t.Errorf("y[%d] = %f, want %f", i, y.Data[i], e)
		}
	}
}

func TestResizeCubicConstant(t *testing.T) {
	// The cubic kernel weights sum to one, so a constant signal stays
	// constant.
	knots := vector.NewFill(3, 2.5)
	y, err := interp.Resize(knots, 9, interp.Cubic)
	if err != nil {
		t.Fatal(err)
	}
	for i := range y.Data {
		if !closeTo(y.Data[i], 2.5, 1e-5) {
			t.Errorf("y[%d] = %f, want 2.5", i, y.Data[i])
		}
	}
}

func TestModeFromString(t *testing.T) {
	if _, err := interp.ModeFromString("linear"); err != nil {
		t.Fatal(err)
	}
	if _, err := interp.ModeFromString("bilinear"); err == nil {
		t.Errorf("expected an error for an unknown mode")
	}
}

func TestBasisThetaSize(t *testing.T) {
	basis, err := interp.NewBasis(12, 6, 3, 2, interp.Linear)
	if err != nil {
		t.Fatal(err)
	}
	if got := basis.ThetaSize(); got != 12+2*3 {
		t.Errorf("ThetaSize() = %d, want %d", got, 12+2*3)
	}
}

func TestBasisDecompose(t *testing.T) {
	basis, err := interp.NewBasis(4, 2, 2, 1, interp.Linear)
	if err != nil {
		t.Fatal(err)
	}
	theta := vector.New([]float32{1, 2, 3, 4, 10, 20})
	backcast, forecast, err := basis.Decompose(theta)
	if err != nil {
		t.Fatal(err)
	}
	wantBackcast := []float32{1, 2, 3, 4}
	for i, e := range wantBackcast {
		if backcast.Data[i] != e {
			t.Errorf("backcast[%d] = %f, want %f", i, backcast.Data[i], e)
		}
	}
	if forecast.Rows != 2 || forecast.Cols != 1 {
		t.Fatalf("forecast shape = (%d, %d), want (2, 1)", forecast.Rows, forecast.Cols)
	}
	// Two knots onto two horizon steps is the identity.
	if forecast.Data[0] != 10 || forecast.Data[1] != 20 {
		t.Errorf("forecast = %v, want [10 20]", forecast.Data)
	}
}

func TestBasisDecomposeMultiFeature(t *testing.T) {
	basis, err := interp.NewBasis(2, 3, 3, 2, interp.Nearest)
	if err != nil {
		t.Fatal(err)
	}
	theta := vector.New([]float32{0, 0, 1, 2, 3, 10, 20, 30})
	_, forecast, err := basis.Decompose(theta)
	if err != nil {
		t.Fatal(err)
	}
	if forecast.Rows != 3 || forecast.Cols != 2 {
		t.Fatalf("forecast shape = (%d, %d), want (3, 2)", forecast.Rows, forecast.Cols)
	}
	// Indexed (horizon, feature): row t holds every feature at step t.
	want := []float32{
		1, 10,
		2, 20,
		3, 30,
	}
	for i, e := range want {
		if forecast.Data[i] != e {
			t.Errorf("forecast.Data[%d] = %f, want %f", i, forecast.Data[i], e)
		}
	}
}

func TestBasisDecomposeBadTheta(t *testing.T) {
	basis, err := interp.NewBasis(4, 2, 2, 1, interp.Linear)
	if err != nil {
		t.Fatal(err)
	}
	theta := vector.NewFill(5, 1.0)
	if _, _, err := basis.Decompose(theta); err == nil {
		t.Errorf("expected an error for a mis-sized theta vector")
	}
}
