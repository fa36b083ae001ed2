package nhits

import (
	"fmt"
	"math/rand"

	"github.com/sw965/nhits/blas32/tensor/2d"
	"github.com/sw965/nhits/blas32/vector"
	"github.com/sw965/nhits/interp"
	"github.com/sw965/nhits/model/mlp"
	"github.com/sw965/nhits/pool"
	"gonum.org/v1/gonum/blas/blas32"
)

// Block projects a pooled window through a feed-forward network into a
// compact theta vector and expands it into a backcast and a forecast.
type Block struct {
	InputSize int
	Horizon   int

	HistExogSize int
	FutrExogSize int
	StatExogSize int

	PoolKernelSize int
	PoolReduction  pool.Reduction

	Theta mlp.Model
	Basis interp.Basis
}

func newBlock(cfg *Config, stack int, rng *rand.Rand) (*Block, error) {
	l := cfg.InputSize
	h := cfg.Horizon
	k := cfg.PoolKernelSizes[stack]

	nKnots := h / cfg.FreqDownsamples[stack]
	if nKnots < 1 {
		nKnots = 1
	}
	basis, err := interp.NewBasis(l, h, nKnots, cfg.Loss.OutputSize, cfg.InterpolationMode)
	if err != nil {
		return nil, err
	}

	pooledInsample := pool.OutputLen(l, k)
	pooledFuture := pool.OutputLen(l+h, k)
	featureSize := pooledInsample +
		cfg.HistExogSize*pooledInsample +
		cfg.FutrExogSize*pooledFuture +
		cfg.StatExogSize

	theta, err := mlp.New(featureSize, cfg.MLPUnits[stack], basis.ThetaSize(), cfg.Activations[stack], cfg.Dropout, rng)
	if err != nil {
		return nil, err
	}

	return &Block{
		InputSize:      l,
		Horizon:        h,
		HistExogSize:   cfg.HistExogSize,
		FutrExogSize:   cfg.FutrExogSize,
		StatExogSize:   cfg.StatExogSize,
		PoolKernelSize: k,
		PoolReduction:  cfg.PoolReductions[stack],
		Theta:          theta,
		Basis:          basis,
	}, nil
}

func (b *Block) clone() *Block {
	clone := *b
	clone.Theta = b.Theta.Clone()
	return &clone
}

// assembleFeatures pools each input group with the block's kernel and
// concatenates them in fixed order: pooled autoregressive values, flattened
// pooled historical exogenous, flattened pooled future exogenous, raw static
// features. Groups with zero channels are skipped. Exogenous matrices are
// flattened time-major.
func (b *Block) assembleFeatures(insample blas32.Vector, histExog, futrExog blas32.General, statExog blas32.Vector) (blas32.Vector, error) {
	pooledY, err := pool.Vector(insample, b.PoolKernelSize, b.PoolReduction)
	if err != nil {
		return blas32.Vector{}, err
	}
	features := []blas32.Vector{pooledY}

	if b.HistExogSize > 0 {
		pooledHist, err := pool.Rows(histExog, b.PoolKernelSize, b.PoolReduction)
		if err != nil {
			return blas32.Vector{}, err
		}
		features = append(features, tensor2d.FlattenColMajor(pooledHist))
	}

	if b.FutrExogSize > 0 {
		pooledFutr, err := pool.Rows(futrExog, b.PoolKernelSize, b.PoolReduction)
		if err != nil {
			return blas32.Vector{}, err
		}
		features = append(features, tensor2d.FlattenColMajor(pooledFutr))
	}

	if b.StatExogSize > 0 {
		features = append(features, statExog)
	}

	return vector.Concat(features...), nil
}

func (b *Block) validateInputs(insample blas32.Vector, histExog, futrExog blas32.General, statExog blas32.Vector) error {
	if insample.N != b.InputSize {
		return fmt.Errorf("nhits.Block.Forward: insample length %d != input size %d", insample.N, b.InputSize)
	}
	if b.HistExogSize > 0 && (histExog.Rows != b.HistExogSize || histExog.Cols != b.InputSize) {
		return fmt.Errorf(
			"nhits.Block.Forward: historical exogenous shape (%d, %d) != configured (%d, %d)",
			histExog.Rows, histExog.Cols, b.HistExogSize, b.InputSize,
		)
	}
	if b.FutrExogSize > 0 && (futrExog.Rows != b.FutrExogSize || futrExog.Cols != b.InputSize+b.Horizon) {
		return fmt.Errorf(
			"nhits.Block.Forward: future exogenous shape (%d, %d) != configured (%d, %d)",
			futrExog.Rows, futrExog.Cols, b.FutrExogSize, b.InputSize+b.Horizon,
		)
	}
	if statExog.N != b.StatExogSize {
		return fmt.Errorf("nhits.Block.Forward: static feature length %d != configured %d", statExog.N, b.StatExogSize)
	}
	return nil
}

// Forward maps one window to its backcast (length InputSize) and forecast
// (Horizon rows, one column per output feature).
func (b *Block) Forward(insample blas32.Vector, histExog, futrExog blas32.General, statExog blas32.Vector) (blas32.Vector, blas32.General, error) {
	if err := b.validateInputs(insample, histExog, futrExog, statExog); err != nil {
		return blas32.Vector{}, blas32.General{}, err
	}

	x, err := b.assembleFeatures(insample, histExog, futrExog, statExog)
	if err != nil {
		return blas32.Vector{}, blas32.General{}, err
	}

	theta, err := b.Theta.Predict(x)
	if err != nil {
		return blas32.Vector{}, blas32.General{}, err
	}

	return b.Basis.Decompose(theta)
}
