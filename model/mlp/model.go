package mlp

import (
	"fmt"
	"math/rand"

	"github.com/sw965/nhits/blas32/tensor/2d"
	"github.com/sw965/nhits/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

func emptyParameter() Parameter {
	return Parameter{
		Weight: blas32.General{Rows: 0, Cols: 0, Stride: 0, Data: []float32{}},
		Bias:   blas32.Vector{N: 0, Inc: 0, Data: []float32{}},
	}
}

// Model is a feed-forward network: affine layers with an activation after
// every layer except the last.
type Model struct {
	InputSize  int
	OutputSize int
	Parameters Parameters
	Forwards   Forwards
}

func New(inputSize int, hiddenUnits []int, outputSize int, activ Activation, dropout float32, rng *rand.Rand) (Model, error) {
	if inputSize < 1 {
		return Model{}, fmt.Errorf("mlp.New: input size must be >= 1, got %d", inputSize)
	}
	if outputSize < 1 {
		return Model{}, fmt.Errorf("mlp.New: output size must be >= 1, got %d", outputSize)
	}
	if !activ.IsValid() {
		return Model{}, fmt.Errorf("mlp.New: unknown activation %q (valid: %s)", activ, ValidActivations)
	}
	if dropout > 0 {
		return Model{}, fmt.Errorf("mlp.New: dropout is not implemented, got probability %f", dropout)
	}
	if dropout < 0 {
		return Model{}, fmt.Errorf("mlp.New: dropout probability must not be negative, got %f", dropout)
	}

	m := Model{
		InputSize:  inputSize,
		OutputSize: outputSize,
	}
	xn := inputSize
	for i, units := range hiddenUnits {
		if units < 1 {
			return Model{}, fmt.Errorf("mlp.New: hidden layer %d must have >= 1 units, got %d", i, units)
		}
		m.appendAffine(xn, units, rng)
		m.appendActivation(activ)
		xn = units
	}
	m.appendAffine(xn, outputSize, rng)
	return m, nil
}

func (m *Model) appendAffine(xn, yn int, rng *rand.Rand) {
	param := Parameter{
		Weight: tensor2d.NewHe(xn, yn, rng),
		Bias:   vector.NewZeros(yn),
	}
	m.Parameters = append(m.Parameters, param)
	m.Forwards = append(m.Forwards, AffineForward)
}

func (m *Model) appendActivation(activ Activation) {
	param := emptyParameter()
	if activ == PReLU {
		param.Bias = vector.NewFill(1, preluInitSlope)
	}
	m.Parameters = append(m.Parameters, param)
	m.Forwards = append(m.Forwards, activ.forward())
}

func (m Model) Clone() Model {
	return Model{
		InputSize:  m.InputSize,
		OutputSize: m.OutputSize,
		Parameters: m.Parameters.Clone(),
		Forwards:   m.Forwards,
	}
}

func (m *Model) Predict(x blas32.Vector) (blas32.Vector, error) {
	if x.N != m.InputSize {
		return blas32.Vector{}, fmt.Errorf("mlp.Model.Predict: input length %d != configured input size %d", x.N, m.InputSize)
	}
	return m.Forwards.Propagate(x, m.Parameters)
}
