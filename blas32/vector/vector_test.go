package vector_test

import (
	"testing"

	"github.com/sw965/nhits/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestReverse(t *testing.T) {
	x := vector.New([]float32{1, 2, 3, 4})
	y := vector.Reverse(x)
	want := []float32{4, 3, 2, 1}
	for i, e := range want {
		if y.Data[i] != e {
			t.Errorf("y[%d] = %f, want %f", i, y.Data[i], e)
		}
	}
	// The input must stay untouched.
	if x.Data[0] != 1 || x.Data[3] != 4 {
		t.Errorf("Reverse mutated its input: %v", x.Data)
	}
}

func TestConcat(t *testing.T) {
	a := vector.New([]float32{1, 2})
	b := vector.NewZeros(0)
	c := vector.New([]float32{3})
	y := vector.Concat(a, b, c)
	if y.N != 3 {
		t.Fatalf("y.N = %d, want 3", y.N)
	}
	want := []float32{1, 2, 3}
	for i, e := range want {
		if y.Data[i] != e {
			t.Errorf("y[%d] = %f, want %f", i, y.Data[i], e)
		}
	}
}

func TestSubMul(t *testing.T) {
	x := vector.New([]float32{5, 3, 1})
	other := vector.New([]float32{1, 1, 2})

	sub, err := vector.Sub(x, other)
	if err != nil {
		t.Fatal(err)
	}
	mul, err := vector.Mul(sub, other)
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{4, 2, -2}
	for i, e := range want {
		if mul.Data[i] != e {
			t.Errorf("mul[%d] = %f, want %f", i, mul.Data[i], e)
		}
	}

	if _, err := vector.Sub(x, vector.NewZeros(2)); err == nil {
		t.Errorf("expected an error for a length mismatch")
	}
}

func TestAffine(t *testing.T) {
	w := blas32.General{
		Rows:   2,
		Cols:   3,
		Stride: 3,
		Data: []float32{
			1, 0, 2,
			0, 1, 1,
		},
	}
	x := vector.New([]float32{1, 2})
	b := vector.New([]float32{0.5, 0.5, 0.5})

	y := vector.Affine(x, w, b)
	want := []float32{1.5, 2.5, 4.5}
	for i, e := range want {
		if y.Data[i] != e {
			t.Errorf("y[%d] = %f, want %f", i, y.Data[i], e)
		}
	}
}
