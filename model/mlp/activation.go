package mlp

import (
	"fmt"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/blas/blas32"
)

type Activation int

const (
	ReLU Activation = iota
	Softplus
	Tanh
	SELU
	LeakyReLU
	PReLU
	Sigmoid
)

var activationNames = map[string]Activation{
	"ReLU":      ReLU,
	"Softplus":  Softplus,
	"Tanh":      Tanh,
	"SELU":      SELU,
	"LeakyReLU": LeakyReLU,
	"PReLU":     PReLU,
	"Sigmoid":   Sigmoid,
}

const ValidActivations = "ReLU, Softplus, Tanh, SELU, LeakyReLU, PReLU, Sigmoid"

func ActivationFromString(s string) (Activation, error) {
	a, ok := activationNames[s]
	if !ok {
		return 0, fmt.Errorf("mlp: unknown activation %q (valid: %s)", s, ValidActivations)
	}
	return a, nil
}

func (a Activation) String() string {
	for name, v := range activationNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}

func (a Activation) IsValid() bool {
	switch a {
	case ReLU, Softplus, Tanh, SELU, LeakyReLU, PReLU, Sigmoid:
		return true
	}
	return false
}

const (
	seluAlpha = 1.6732632423543772
	seluScale = 1.0507009873554805

	leakySlope = 0.01

	// PReLU slope initial value. The slope itself is a trainable parameter.
	preluInitSlope = 0.25

	// Above this threshold softplus is numerically the identity.
	softplusThreshold = 20.0
)

func elementwiseForward(f func(float32) float32) Forward {
	return func(x blas32.Vector, _ *Parameter) (blas32.Vector, error) {
		y := blas32.Vector{
			N:    x.N,
			Inc:  1,
			Data: make([]float32, x.N),
		}
		for i, e := range x.Data {
			y.Data[i] = f(e)
		}
		return y, nil
	}
}

func reluForward() Forward {
	return elementwiseForward(func(e float32) float32 {
		if e > 0 {
			return e
		}
		return 0
	})
}

func softplusForward() Forward {
	return elementwiseForward(func(e float32) float32 {
		if e > softplusThreshold {
			return e
		}
		return math32.Log(1.0 + math32.Exp(e))
	})
}

func tanhForward() Forward {
	return elementwiseForward(math32.Tanh)
}

func seluForward() Forward {
	return elementwiseForward(func(e float32) float32 {
		if e > 0 {
			return seluScale * e
		}
		return seluScale * seluAlpha * (math32.Exp(e) - 1.0)
	})
}

func leakyReLUForward() Forward {
	return elementwiseForward(func(e float32) float32 {
		if e > 0 {
			return e
		}
		return leakySlope * e
	})
}

// The slope lives in param.Bias so external trainers treat it like any other
// weight.
func preluForward() Forward {
	return func(x blas32.Vector, param *Parameter) (blas32.Vector, error) {
		slope := param.Bias.Data[0]
		y := blas32.Vector{
			N:    x.N,
			Inc:  1,
			Data: make([]float32, x.N),
		}
		for i, e := range x.Data {
			if e > 0 {
				y.Data[i] = e
			} else {
				y.Data[i] = slope * e
			}
		}
		return y, nil
	}
}

func sigmoidForward() Forward {
	return elementwiseForward(func(e float32) float32 {
		return 1.0 / (1.0 + math32.Exp(-e))
	})
}

func (a Activation) forward() Forward {
	switch a {
	case ReLU:
		return reluForward()
	case Softplus:
		return softplusForward()
	case Tanh:
		return tanhForward()
	case SELU:
		return seluForward()
	case LeakyReLU:
		return leakyReLUForward()
	case PReLU:
		return preluForward()
	case Sigmoid:
		return sigmoidForward()
	}
	return nil
}
