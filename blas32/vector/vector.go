package vector

import (
	"fmt"
	"math/rand"
	"slices"

	crand "github.com/sw965/nhits/math/rand"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

func NewZeros(n int) blas32.Vector {
	return blas32.Vector{
		N:    n,
		Inc:  1,
		Data: make([]float32, n),
	}
}

func NewZerosLike(vec blas32.Vector) blas32.Vector {
	return NewZeros(vec.N)
}

func NewFill(n int, e float32) blas32.Vector {
	vec := NewZeros(n)
	for i := range vec.Data {
		vec.Data[i] = e
	}
	return vec
}

func New(data []float32) blas32.Vector {
	return blas32.Vector{
		N:    len(data),
		Inc:  1,
		Data: data,
	}
}

func NewRademacher(n int, rng *rand.Rand) blas32.Vector {
	vec := NewZeros(n)
	for i := range vec.Data {
		vec.Data[i] = crand.Rademacher(rng)
	}
	return vec
}

func NewRademacherLike(vec blas32.Vector, rng *rand.Rand) blas32.Vector {
	return NewRademacher(vec.N, rng)
}

func Clone(vec blas32.Vector) blas32.Vector {
	return blas32.Vector{
		N:    vec.N,
		Inc:  vec.Inc,
		Data: slices.Clone(vec.Data),
	}
}

// Reverse returns a copy with the element order flipped.
func Reverse(vec blas32.Vector) blas32.Vector {
	data := slices.Clone(vec.Data)
	slices.Reverse(data)
	return blas32.Vector{
		N:    vec.N,
		Inc:  1,
		Data: data,
	}
}

func Affine(x blas32.Vector, w blas32.General, b blas32.Vector) blas32.Vector {
	yn := len(b.Data)
	y := blas32.Vector{N: yn, Inc: 1, Data: make([]float32, yn)}
	blas32.Copy(b, y)
	blas32.Gemv(blas.Trans, 1.0, w, x, 1.0, y)
	return y
}

func Sub(x, other blas32.Vector) (blas32.Vector, error) {
	if x.N != other.N {
		return blas32.Vector{}, fmt.Errorf("vector.Sub: x.N (%d) != other.N (%d)", x.N, other.N)
	}
	y := Clone(x)
	blas32.Axpy(-1.0, other, y)
	return y, nil
}

func Mul(x, other blas32.Vector) (blas32.Vector, error) {
	if x.N != other.N {
		return blas32.Vector{}, fmt.Errorf("vector.Mul: x.N (%d) != other.N (%d)", x.N, other.N)
	}
	y := NewZeros(x.N)
	for i := range y.Data {
		y.Data[i] = x.Data[i] * other.Data[i]
	}
	return y, nil
}

func Concat(vs ...blas32.Vector) blas32.Vector {
	n := 0
	for _, v := range vs {
		n += v.N
	}
	data := make([]float32, 0, n)
	for _, v := range vs {
		data = append(data, v.Data...)
	}
	return New(data)
}
