package nhits

import (
	"fmt"

	"github.com/sw965/nhits/interp"
	"github.com/sw965/nhits/loss"
	"github.com/sw965/nhits/model/mlp"
	"github.com/sw965/nhits/pool"
)

type StackType int

const (
	StackTypeIdentity StackType = iota
)

func StackTypeFromString(s string) (StackType, error) {
	if s == "identity" {
		return StackTypeIdentity, nil
	}
	return 0, fmt.Errorf("nhits: unknown stack type %q (valid: identity)", s)
}

func (st StackType) String() string {
	if st == StackTypeIdentity {
		return "identity"
	}
	return fmt.Sprintf("StackType(%d)", int(st))
}

// Config declares the model once; every field is validated by New and
// immutable afterwards. The per-stack lists are parallel: entry i of each
// configures stack i.
type Config struct {
	InputSize int
	Horizon   int

	HistExogSize int
	FutrExogSize int
	StatExogSize int

	StackTypes      []StackType
	NBlocks         []int
	MLPUnits        [][]int
	PoolKernelSizes []int
	FreqDownsamples []int
	Activations     []mlp.Activation
	PoolReductions  []pool.Reduction

	InterpolationMode interp.Mode
	Dropout           float32

	Loss loss.Adapter
}

func (cfg *Config) validate() error {
	if cfg.InputSize < 1 {
		return fmt.Errorf("nhits.New: input size must be >= 1, got %d", cfg.InputSize)
	}
	if cfg.Horizon < 1 {
		return fmt.Errorf("nhits.New: horizon must be >= 1, got %d", cfg.Horizon)
	}
	if cfg.HistExogSize < 0 || cfg.FutrExogSize < 0 || cfg.StatExogSize < 0 {
		return fmt.Errorf(
			"nhits.New: exogenous sizes must not be negative (hist=%d, futr=%d, stat=%d)",
			cfg.HistExogSize, cfg.FutrExogSize, cfg.StatExogSize,
		)
	}

	n := len(cfg.StackTypes)
	if n == 0 {
		return fmt.Errorf("nhits.New: at least one stack is required")
	}
	lists := []struct {
		name string
		n    int
	}{
		{"NBlocks", len(cfg.NBlocks)},
		{"MLPUnits", len(cfg.MLPUnits)},
		{"PoolKernelSizes", len(cfg.PoolKernelSizes)},
		{"FreqDownsamples", len(cfg.FreqDownsamples)},
		{"Activations", len(cfg.Activations)},
		{"PoolReductions", len(cfg.PoolReductions)},
	}
	for _, l := range lists {
		if l.n != n {
			return fmt.Errorf(
				"nhits.New: per-stack configuration lists must have equal length: StackTypes has %d, %s has %d",
				n, l.name, l.n,
			)
		}
	}

	for i, st := range cfg.StackTypes {
		if st != StackTypeIdentity {
			return fmt.Errorf("nhits.New: stack type %q at stack index %d is not supported (valid: identity)", st, i)
		}
		if cfg.NBlocks[i] < 1 {
			return fmt.Errorf("nhits.New: stack %d must have >= 1 blocks, got %d", i, cfg.NBlocks[i])
		}
		if cfg.PoolKernelSizes[i] < 1 {
			return fmt.Errorf("nhits.New: stack %d pooling kernel size must be >= 1, got %d", i, cfg.PoolKernelSizes[i])
		}
		if cfg.FreqDownsamples[i] < 1 {
			return fmt.Errorf("nhits.New: stack %d frequency downsample ratio must be >= 1, got %d", i, cfg.FreqDownsamples[i])
		}
		if !cfg.Activations[i].IsValid() {
			return fmt.Errorf("nhits.New: stack %d has an unknown activation %q (valid: %s)", i, cfg.Activations[i], mlp.ValidActivations)
		}
		if !cfg.PoolReductions[i].IsValid() {
			return fmt.Errorf("nhits.New: stack %d has an unknown pooling reduction %q (valid: MaxPool1d, AvgPool1d)", i, cfg.PoolReductions[i])
		}
	}

	if !cfg.InterpolationMode.IsValid() {
		return fmt.Errorf("nhits.New: unknown interpolation mode %q (valid: nearest, linear, cubic)", cfg.InterpolationMode)
	}
	if cfg.Dropout != 0 {
		return fmt.Errorf("nhits.New: dropout is not implemented, got probability %f", cfg.Dropout)
	}
	if cfg.Loss.OutputSize < 1 {
		return fmt.Errorf("nhits.New: loss adapter must declare an output size >= 1, got %d", cfg.Loss.OutputSize)
	}
	if cfg.Loss.DomainMap == nil {
		return fmt.Errorf("nhits.New: loss adapter must supply a domain map")
	}
	return nil
}
