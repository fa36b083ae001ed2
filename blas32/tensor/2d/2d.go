package tensor2d

import (
	"math"
	"math/rand"
	"slices"

	crand "github.com/sw965/nhits/math/rand"
	"gonum.org/v1/gonum/blas/blas32"
)

func NewZeros(rows, cols int) blas32.General {
	return blas32.General{
		Rows:   rows,
		Cols:   cols,
		Stride: cols,
		Data:   make([]float32, rows*cols),
	}
}

func NewZerosLike(gen blas32.General) blas32.General {
	return NewZeros(gen.Rows, gen.Cols)
}

func NewFill(rows, cols int, e float32) blas32.General {
	gen := NewZeros(rows, cols)
	for i := range gen.Data {
		gen.Data[i] = e
	}
	return gen
}

func NewHe(rows, cols int, rng *rand.Rand) blas32.General {
	gen := NewZeros(rows, cols)
	fanIn := float64(rows)
	std := math.Sqrt(2.0 / fanIn)
	for i := range gen.Data {
		gen.Data[i] = float32(rng.NormFloat64() * std)
	}
	return gen
}

func NewRademacher(rows, cols int, rng *rand.Rand) blas32.General {
	gen := NewZeros(rows, cols)
	for i := range gen.Data {
		gen.Data[i] = crand.Rademacher(rng)
	}
	return gen
}

func NewRademacherLike(gen blas32.General, rng *rand.Rand) blas32.General {
	return NewRademacher(gen.Rows, gen.Cols, rng)
}

func N(gen blas32.General) int {
	return gen.Rows * gen.Cols
}

func Clone(gen blas32.General) blas32.General {
	return blas32.General{
		Rows:   gen.Rows,
		Cols:   gen.Cols,
		Stride: gen.Stride,
		Data:   slices.Clone(gen.Data),
	}
}

func At(gen blas32.General, row, col int) int {
	return row*gen.Stride + col
}

func Row(gen blas32.General, row int) blas32.Vector {
	offset := row * gen.Stride
	return blas32.Vector{
		N:    gen.Cols,
		Inc:  1,
		Data: gen.Data[offset : offset+gen.Cols],
	}
}

func ToVector(gen blas32.General) blas32.Vector {
	return blas32.Vector{
		N:    N(gen),
		Inc:  1,
		Data: gen.Data,
	}
}

func Flatten(gen blas32.General) blas32.Vector {
	return blas32.Vector{
		N:    N(gen),
		Inc:  1,
		Data: slices.Clone(gen.Data),
	}
}

// FlattenColMajor clones the elements column-by-column, i.e. for a
// (channel, time) matrix the result is time-major.
func FlattenColMajor(gen blas32.General) blas32.Vector {
	data := make([]float32, 0, N(gen))
	for c := 0; c < gen.Cols; c++ {
		for r := 0; r < gen.Rows; r++ {
			data = append(data, gen.Data[At(gen, r, c)])
		}
	}
	return blas32.Vector{
		N:    N(gen),
		Inc:  1,
		Data: data,
	}
}

func Transpose(gen blas32.General) blas32.General {
	t := NewZeros(gen.Cols, gen.Rows)
	for i := 0; i < t.Rows; i++ {
		for j := 0; j < t.Cols; j++ {
			t.Data[At(t, i, j)] = gen.Data[At(gen, j, i)]
		}
	}
	return t
}

func Scal(alpha float32, gen blas32.General) {
	vec := ToVector(gen)
	blas32.Scal(alpha, vec)
}

func Axpy(alpha float32, x, y blas32.General) {
	xv := ToVector(x)
	yv := ToVector(y)
	blas32.Axpy(alpha, xv, yv)
}
