package pool

import (
	"fmt"

	"github.com/sw965/nhits/blas32/tensor/2d"
	"github.com/sw965/nhits/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

type Reduction int

const (
	Max Reduction = iota
	Avg
)

var reductionNames = map[string]Reduction{
	"MaxPool1d": Max,
	"AvgPool1d": Avg,
}

func ReductionFromString(s string) (Reduction, error) {
	r, ok := reductionNames[s]
	if !ok {
		return 0, fmt.Errorf("pool: unknown reduction %q (valid: MaxPool1d, AvgPool1d)", s)
	}
	return r, nil
}

func (r Reduction) String() string {
	switch r {
	case Max:
		return "MaxPool1d"
	case Avg:
		return "AvgPool1d"
	}
	return fmt.Sprintf("Reduction(%d)", int(r))
}

func (r Reduction) IsValid() bool {
	return r == Max || r == Avg
}

// OutputLen is ceil(n/k). The last window is truncated, not dropped.
func OutputLen(n, k int) int {
	return (n + k - 1) / k
}

// Vector downsamples x by reducing each window of up to k elements.
func Vector(x blas32.Vector, k int, r Reduction) (blas32.Vector, error) {
	if k < 1 {
		return blas32.Vector{}, fmt.Errorf("pool.Vector: kernel size must be >= 1, got %d", k)
	}
	if !r.IsValid() {
		return blas32.Vector{}, fmt.Errorf("pool.Vector: unknown reduction %q (valid: MaxPool1d, AvgPool1d)", r)
	}

	yn := OutputLen(x.N, k)
	y := vector.NewZeros(yn)
	for i := 0; i < yn; i++ {
		lo := i * k
		hi := lo + k
		if hi > x.N {
			hi = x.N
		}
		switch r {
		case Max:
			e := x.Data[lo]
			for j := lo + 1; j < hi; j++ {
				if x.Data[j] > e {
					e = x.Data[j]
				}
			}
			y.Data[i] = e
		case Avg:
			sum := float32(0.0)
			for j := lo; j < hi; j++ {
				sum += x.Data[j]
			}
			y.Data[i] = sum / float32(hi-lo)
		}
	}
	return y, nil
}

// Rows pools each row of gen independently. Rows are channels, columns are
// time steps.
func Rows(gen blas32.General, k int, r Reduction) (blas32.General, error) {
	yc := OutputLen(gen.Cols, k)
	y := tensor2d.NewZeros(gen.Rows, yc)
	for i := 0; i < gen.Rows; i++ {
		pooled, err := Vector(tensor2d.Row(gen, i), k, r)
		if err != nil {
			return blas32.General{}, err
		}
		copy(y.Data[i*y.Stride:i*y.Stride+yc], pooled.Data)
	}
	return y, nil
}
