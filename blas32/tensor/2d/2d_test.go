package tensor2d_test

import (
	"slices"
	"testing"

	"github.com/sw965/nhits/blas32/tensor/2d"
	"gonum.org/v1/gonum/blas/blas32"
)

func TestTranspose(t *testing.T) {
	x := blas32.General{
		Rows:   2,
		Cols:   3,
		Stride: 3,
		Data: []float32{
			1, 2, 3,
			4, 5, 6,
		},
	}
	result := tensor2d.Transpose(x)
	expected := []float32{
		1, 4,
		2, 5,
		3, 6,
	}
	if result.Rows != 3 || result.Cols != 2 {
		t.Fatalf("shape = (%d, %d), want (3, 2)", result.Rows, result.Cols)
	}
	if !slices.Equal(result.Data, expected) {
		t.Errorf("data = %v, want %v", result.Data, expected)
	}
}

func TestFlattenColMajor(t *testing.T) {
	x := blas32.General{
		Rows:   2,
		Cols:   3,
		Stride: 3,
		Data: []float32{
			1, 2, 3,
			4, 5, 6,
		},
	}
	y := tensor2d.FlattenColMajor(x)
	expected := []float32{1, 4, 2, 5, 3, 6}
	if !slices.Equal(y.Data, expected) {
		t.Errorf("data = %v, want %v", y.Data, expected)
	}
}

func TestRow(t *testing.T) {
	x := tensor2d.NewFill(3, 2, 0.0)
	x.Data[tensor2d.At(x, 1, 0)] = 7
	x.Data[tensor2d.At(x, 1, 1)] = 8

	row := tensor2d.Row(x, 1)
	if row.N != 2 || row.Data[0] != 7 || row.Data[1] != 8 {
		t.Errorf("row = %v, want [7 8]", row.Data)
	}
}
