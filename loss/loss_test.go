package loss_test

import (
	"testing"

	"github.com/sw965/nhits/blas32/tensor/2d"
	"github.com/sw965/nhits/blas32/vector"
	"github.com/sw965/nhits/loss"
)

func TestAdapterSizes(t *testing.T) {
	if got := loss.MAE().OutputSize; got != 1 {
		t.Errorf("MAE output size = %d, want 1", got)
	}
	qs := []float32{0.1, 0.5, 0.9}
	if got := loss.Quantiles(qs).OutputSize; got != 3 {
		t.Errorf("Quantiles output size = %d, want 3", got)
	}
}

func TestMAELoss(t *testing.T) {
	y := tensor2d.NewZeros(2, 1)
	y.Data[0] = 1.0
	y.Data[1] = -1.0
	target := vector.New([]float32{0.0, 1.0})

	got, err := loss.MAELoss(y, target)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1.5 {
		t.Errorf("MAELoss = %f, want 1.5", got)
	}
}

func TestMSELoss(t *testing.T) {
	y := tensor2d.NewZeros(2, 1)
	y.Data[0] = 2.0
	target := vector.New([]float32{0.0, 0.0})

	got, err := loss.MSELoss(y, target)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2.0 {
		t.Errorf("MSELoss = %f, want 2.0", got)
	}
}

func TestPinballLoss(t *testing.T) {
	qs := []float32{0.5}
	y := tensor2d.NewZeros(1, 1)
	target := vector.New([]float32{2.0})

	// At the median the pinball loss is half the absolute error.
	got, err := loss.PinballLoss(y, target, qs)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1.0 {
		t.Errorf("PinballLoss = %f, want 1.0", got)
	}
}

func TestLossShapeMismatch(t *testing.T) {
	y := tensor2d.NewZeros(3, 1)
	target := vector.New([]float32{0.0, 0.0})
	if _, err := loss.MAELoss(y, target); err == nil {
		t.Errorf("expected an error for a horizon mismatch")
	}
}
