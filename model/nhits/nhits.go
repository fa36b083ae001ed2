package nhits

import (
	"fmt"
	"math/rand"

	"github.com/sw965/nhits/blas32/tensor/2d"
	"github.com/sw965/nhits/blas32/vector"
	"github.com/sw965/omw/parallel"
	"gonum.org/v1/gonum/blas/blas32"
)

// Window is one forecasting sample. InsampleY and InsampleMask cover the
// lookback in natural time order (oldest first). HistExog is
// (channel, lookback), FutrExog is (channel, lookback+horizon), StatExog is a
// flat feature vector; any of the three may be empty. A Window is never
// mutated by the model.
type Window struct {
	InsampleY    blas32.Vector
	InsampleMask blas32.Vector
	HistExog     blas32.General
	FutrExog     blas32.General
	StatExog     blas32.Vector
}

// Model chains blocks with doubly-residual bookkeeping: each block consumes
// the residual left by its predecessors and contributes an additive share of
// the forecast.
type Model struct {
	InputSize   int
	Horizon     int
	OutFeatures int
	DomainMap   func(blas32.General) blas32.General
	Blocks      []*Block

	// LossFunc is the training hook for SPSA gradient estimation. The int is
	// a worker index.
	LossFunc func(*Model, int) (float32, error)
}

func New(cfg *Config, rng *rand.Rand) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	blocks := make([]*Block, 0)
	for stack := range cfg.StackTypes {
		for i := 0; i < cfg.NBlocks[stack]; i++ {
			b, err := newBlock(cfg, stack, rng)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
		}
	}

	return &Model{
		InputSize:   cfg.InputSize,
		Horizon:     cfg.Horizon,
		OutFeatures: cfg.Loss.OutputSize,
		DomainMap:   cfg.Loss.DomainMap,
		Blocks:      blocks,
	}, nil
}

func (m *Model) validateWindow(w *Window) error {
	if w.InsampleY.N != m.InputSize {
		return fmt.Errorf("nhits.Model: insample length %d != input size %d", w.InsampleY.N, m.InputSize)
	}
	if w.InsampleMask.N != m.InputSize {
		return fmt.Errorf("nhits.Model: insample mask length %d != input size %d", w.InsampleMask.N, m.InputSize)
	}
	return nil
}

// run executes the blocks in order. The residual starts as the time-reversed
// lookback and shrinks by each backcast; the forecast starts at the naive
// baseline (last observed value) and grows by each block's contribution.
// Blocks are strictly sequential.
func (m *Model) run(w *Window, decompose bool) (blas32.General, []blas32.General, error) {
	if err := m.validateWindow(w); err != nil {
		return blas32.General{}, nil, err
	}

	residual := vector.Reverse(w.InsampleY)
	mask := vector.Reverse(w.InsampleMask)

	lastY := w.InsampleY.Data[w.InsampleY.N-1]
	forecast := tensor2d.NewFill(m.Horizon, m.OutFeatures, lastY)

	var contributions []blas32.General
	if decompose {
		contributions = make([]blas32.General, 0, 1+len(m.Blocks))
		contributions = append(contributions, tensor2d.Clone(forecast))
	}

	for _, b := range m.Blocks {
		backcast, blockForecast, err := b.Forward(residual, w.HistExog, w.FutrExog, w.StatExog)
		if err != nil {
			return blas32.General{}, nil, err
		}

		residual, err = vector.Sub(residual, backcast)
		if err != nil {
			return blas32.General{}, nil, err
		}
		residual, err = vector.Mul(residual, mask)
		if err != nil {
			return blas32.General{}, nil, err
		}

		tensor2d.Axpy(1.0, blockForecast, forecast)
		if decompose {
			contributions = append(contributions, blockForecast)
		}
	}
	return forecast, contributions, nil
}

// Forecast returns the combined forecast after domain mapping, indexed
// (horizon, feature).
func (m *Model) Forecast(w *Window) (blas32.General, error) {
	forecast, _, err := m.run(w, false)
	if err != nil {
		return blas32.General{}, err
	}
	return m.DomainMap(forecast), nil
}

// Decompose returns the naive baseline followed by each block's individual
// contribution, without domain mapping. Their elementwise sum equals the
// combined forecast before the domain map.
func (m *Model) Decompose(w *Window) ([]blas32.General, error) {
	_, contributions, err := m.run(w, true)
	return contributions, err
}

// ForecastBatch evaluates the windows with p workers. Samples are
// independent; block order within a sample stays sequential.
func (m *Model) ForecastBatch(ws []*Window, p int) ([]blas32.General, error) {
	if p < 1 {
		return nil, fmt.Errorf("nhits.ForecastBatch: worker count must be >= 1, got %d", p)
	}
	n := len(ws)
	ys := make([]blas32.General, n)
	errCh := make(chan error, p)

	worker := func(idxs []int) {
		for _, idx := range idxs {
			y, err := m.Forecast(ws[idx])
			if err != nil {
				errCh <- err
				return
			}
			ys[idx] = y
		}
		errCh <- nil
	}

	for _, idxs := range parallel.DistributeIndicesEvenly(n, p) {
		go worker(idxs)
	}

	for i := 0; i < p; i++ {
		if err := <-errCh; err != nil {
			return nil, err
		}
	}
	return ys, nil
}

func (m *Model) Clone() *Model {
	blocks := make([]*Block, len(m.Blocks))
	for i, b := range m.Blocks {
		blocks[i] = b.clone()
	}
	return &Model{
		InputSize:   m.InputSize,
		Horizon:     m.Horizon,
		OutFeatures: m.OutFeatures,
		DomainMap:   m.DomainMap,
		Blocks:      blocks,
		LossFunc:    m.LossFunc,
	}
}
