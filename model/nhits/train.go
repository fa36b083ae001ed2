package nhits

import (
	"math/rand"

	cmath "github.com/sw965/nhits/math"
	"github.com/sw965/nhits/model/mlp"
)

// Parameters returns the trainable weights of every block, in block order.
// The returned slice shares storage with the model, so applying gradients to
// it updates the model in place.
func (m *Model) Parameters() mlp.Parameters {
	params := make(mlp.Parameters, 0)
	for _, b := range m.Blocks {
		params = append(params, b.Theta.Parameters...)
	}
	return params
}

func (m *Model) AxpyGrads(alpha float32, grads mlp.GradBuffers) {
	m.Parameters().AxpyGrads(alpha, grads)
}

// EstimateGradsBySPSA perturbs all weights with Rademacher noise of magnitude
// c and estimates the gradient from the two-sided loss difference, averaged
// over len(rngs) parallel estimates. The model's LossFunc must be set.
func (m *Model) EstimateGradsBySPSA(c float32, rngs []*rand.Rand) (mlp.GradBuffers, error) {
	p := len(rngs)
	gradsByParallel := make([]mlp.GradBuffers, p)
	errCh := make(chan error, p)

	worker := func(workerIdx int) {
		rng := rngs[workerIdx]
		deltas := m.Parameters().NewGradsRademacherLike(rng)

		plusModel := m.Clone()
		plusModel.Parameters().AxpyGrads(c, deltas)

		minusModel := m.Clone()
		minusModel.Parameters().AxpyGrads(-c, deltas)

		plusLoss, err := m.LossFunc(plusModel, workerIdx)
		if err != nil {
			errCh <- err
			return
		}

		minusLoss, err := m.LossFunc(minusModel, workerIdx)
		if err != nil {
			errCh <- err
			return
		}

		grads := m.Parameters().NewGradsZerosLike()
		for i, delta := range deltas {
			for j, d := range delta.Weight.Data {
				grads[i].Weight.Data[j] = cmath.CentralDifference(plusLoss, minusLoss, c*d)
			}

			for j, d := range delta.Bias.Data {
				grads[i].Bias.Data[j] = cmath.CentralDifference(plusLoss, minusLoss, c*d)
			}
		}

		gradsByParallel[workerIdx] = grads
		errCh <- nil
	}

	for i := 0; i < p; i++ {
		go worker(i)
	}

	for i := 0; i < p; i++ {
		if err := <-errCh; err != nil {
			return nil, err
		}
	}

	grads := gradsByParallel[0]
	grads.Scal(1.0 / float32(p))
	for _, g := range gradsByParallel[1:] {
		grads.Axpy(1.0/float32(p), g)
	}
	return grads, nil
}
