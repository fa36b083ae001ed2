package loss

import (
	"fmt"

	"github.com/sw965/nhits/blas32/tensor/2d"
	"gonum.org/v1/gonum/blas/blas32"
)

// Adapter is the contract a loss supplies to the forecasting model: how many
// scalar outputs each horizon step needs, and the mapping applied to the
// combined forecast.
type Adapter struct {
	OutputSize int
	DomainMap  func(blas32.General) blas32.General
}

func identity(forecast blas32.General) blas32.General {
	return forecast
}

// MAE is a point forecast: one output per horizon step, identity mapping.
func MAE() Adapter {
	return Adapter{
		OutputSize: 1,
		DomainMap:  identity,
	}
}

func MSE() Adapter {
	return Adapter{
		OutputSize: 1,
		DomainMap:  identity,
	}
}

// Quantiles forecasts one output per quantile level per horizon step.
func Quantiles(qs []float32) Adapter {
	return Adapter{
		OutputSize: len(qs),
		DomainMap:  identity,
	}
}

// MAELoss averages |y - t| over the horizon. y is (horizon, outFeatures)
// with outFeatures 1, t is the length-horizon target.
func MAELoss(y blas32.General, t blas32.Vector) (float32, error) {
	if y.Rows != t.N || y.Cols != 1 {
		return 0.0, fmt.Errorf("loss.MAELoss: forecast shape (%d, %d) does not match target length %d", y.Rows, y.Cols, t.N)
	}
	sum := float32(0.0)
	for i := 0; i < t.N; i++ {
		d := y.Data[tensor2d.At(y, i, 0)] - t.Data[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float32(t.N), nil
}

func MSELoss(y blas32.General, t blas32.Vector) (float32, error) {
	if y.Rows != t.N || y.Cols != 1 {
		return 0.0, fmt.Errorf("loss.MSELoss: forecast shape (%d, %d) does not match target length %d", y.Rows, y.Cols, t.N)
	}
	sum := float32(0.0)
	for i := 0; i < t.N; i++ {
		d := y.Data[tensor2d.At(y, i, 0)] - t.Data[i]
		sum += d * d
	}
	return sum / float32(t.N), nil
}

// PinballLoss averages the quantile loss over horizon steps and levels.
// y is (horizon, len(qs)).
func PinballLoss(y blas32.General, t blas32.Vector, qs []float32) (float32, error) {
	if y.Rows != t.N || y.Cols != len(qs) {
		return 0.0, fmt.Errorf("loss.PinballLoss: forecast shape (%d, %d) does not match target length %d with %d quantiles", y.Rows, y.Cols, t.N, len(qs))
	}
	sum := float32(0.0)
	for i := 0; i < t.N; i++ {
		for j, q := range qs {
			d := t.Data[i] - y.Data[tensor2d.At(y, i, j)]
			if d >= 0 {
				sum += q * d
			} else {
				sum += (q - 1) * d
			}
		}
	}
	return sum / float32(t.N*len(qs)), nil
}
