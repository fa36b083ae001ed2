package interp

import (
	"fmt"

	"github.com/sw965/nhits/blas32/tensor/2d"
	"github.com/sw965/nhits/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

type Mode int

const (
	Nearest Mode = iota
	Linear
	Cubic
)

var modeNames = map[string]Mode{
	"nearest": Nearest,
	"linear":  Linear,
	"cubic":   Cubic,
}

func ModeFromString(s string) (Mode, error) {
	m, ok := modeNames[s]
	if !ok {
		return 0, fmt.Errorf("interp: unknown interpolation mode %q (valid: nearest, linear, cubic)", s)
	}
	return m, nil
}

func (m Mode) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) IsValid() bool {
	return m == Nearest || m == Linear || m == Cubic
}

// Keys cubic convolution kernel, a = -0.75. Matches bicubic upsampling with
// one spatial axis pinned to size 1.
const cubicA = -0.75

func cubicWeight(x float32) float32 {
	if x < 0 {
		x = -x
	}
	if x <= 1 {
		return ((cubicA+2)*x-(cubicA+3))*x*x + 1
	}
	if x < 2 {
		return ((cubicA*x-5*cubicA)*x+8*cubicA)*x - 4*cubicA
	}
	return 0
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Resize expands a length-k knot vector to size points along the same axis.
// A single knot broadcasts as a constant in every mode; cubic interpolation
// is not defined for one control point, so it degenerates to nearest there.
func Resize(knots blas32.Vector, size int, mode Mode) (blas32.Vector, error) {
	k := knots.N
	if k < 1 {
		return blas32.Vector{}, fmt.Errorf("interp.Resize: need at least one knot, got %d", k)
	}
	if size < 1 {
		return blas32.Vector{}, fmt.Errorf("interp.Resize: output size must be >= 1, got %d", size)
	}
	if !mode.IsValid() {
		return blas32.Vector{}, fmt.Errorf("interp.Resize: unknown interpolation mode %q (valid: nearest, linear, cubic)", mode)
	}

	if k == 1 {
		return vector.NewFill(size, knots.Data[0]), nil
	}

	y := vector.NewZeros(size)
	scale := float32(k) / float32(size)

	switch mode {
	case Nearest:
		for i := 0; i < size; i++ {
			src := i * k / size
			y.Data[i] = knots.Data[src]
		}
	case Linear:
		for i := 0; i < size; i++ {
			src := (float32(i)+0.5)*scale - 0.5
			if src < 0 {
				src = 0
			}
			i0 := int(src)
			if i0 > k-1 {
				i0 = k - 1
			}
			i1 := clampIndex(i0+1, k)
			t := src - float32(i0)
			y.Data[i] = (1-t)*knots.Data[i0] + t*knots.Data[i1]
		}
	case Cubic:
		for i := 0; i < size; i++ {
			src := (float32(i)+0.5)*scale - 0.5
			i0 := int(src)
			if src < 0 {
				i0 = int(src) - 1
			}
			t := src - float32(i0)
			var sum float32
			for j := -1; j <= 2; j++ {
				w := cubicWeight(t - float32(j))
				sum += w * knots.Data[clampIndex(i0+j, k)]
			}
			y.Data[i] = sum
		}
	}
	return y, nil
}

// Basis splits a theta vector into a backcast and a compact knot matrix, and
// expands the knots to full horizon resolution.
type Basis struct {
	BackcastSize int
	ForecastSize int
	NKnots       int
	OutFeatures  int
	Mode         Mode
}

func NewBasis(backcastSize, forecastSize, nKnots, outFeatures int, mode Mode) (Basis, error) {
	if backcastSize < 1 || forecastSize < 1 || nKnots < 1 || outFeatures < 1 {
		return Basis{}, fmt.Errorf(
			"interp.NewBasis: sizes must be >= 1 (backcast=%d, forecast=%d, knots=%d, outFeatures=%d)",
			backcastSize, forecastSize, nKnots, outFeatures,
		)
	}
	if !mode.IsValid() {
		return Basis{}, fmt.Errorf("interp.NewBasis: unknown interpolation mode %q (valid: nearest, linear, cubic)", mode)
	}
	return Basis{
		BackcastSize: backcastSize,
		ForecastSize: forecastSize,
		NKnots:       nKnots,
		OutFeatures:  outFeatures,
		Mode:         mode,
	}, nil
}

func (b Basis) ThetaSize() int {
	return b.BackcastSize + b.OutFeatures*b.NKnots
}

// Decompose splits theta into the backcast (first BackcastSize entries) and
// the knots (OutFeatures rows of NKnots), then interpolates each feature row
// to ForecastSize. The forecast is indexed (horizon, feature).
func (b Basis) Decompose(theta blas32.Vector) (blas32.Vector, blas32.General, error) {
	if theta.N != b.ThetaSize() {
		return blas32.Vector{}, blas32.General{}, fmt.Errorf(
			"interp.Basis.Decompose: theta length %d != backcast %d + outFeatures %d * knots %d",
			theta.N, b.BackcastSize, b.OutFeatures, b.NKnots,
		)
	}

	backcast := vector.New(theta.Data[:b.BackcastSize])
	forecast := tensor2d.NewZeros(b.ForecastSize, b.OutFeatures)
	for f := 0; f < b.OutFeatures; f++ {
		lo := b.BackcastSize + f*b.NKnots
		knots := vector.New(theta.Data[lo : lo+b.NKnots])
		row, err := Resize(knots, b.ForecastSize, b.Mode)
		if err != nil {
			return blas32.Vector{}, blas32.General{}, err
		}
		for t := 0; t < b.ForecastSize; t++ {
			forecast.Data[tensor2d.At(forecast, t, f)] = row.Data[t]
		}
	}
	return backcast, forecast, nil
}
