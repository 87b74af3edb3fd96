package safety

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sartorproj/stockdb/stats"
	"github.com/sartorproj/stockdb/table"
)

// DefaultBootstrapSamples is the number of resamples used when none is given.
const DefaultBootstrapSamples = 10000

// BootstrapOptions configures Bootstrap.
type BootstrapOptions struct {
	Samples int    // resamples to draw; 0 means DefaultBootstrapSamples
	Seed    uint64 // resampling is deterministic for a given seed
}

// BootstrapResult holds the coefficient estimates of every resample.
type BootstrapResult struct {
	Names   []string
	Draws   [][]float64 // draw x coefficient, coefficients in Names order
	Skipped int         // resamples dropped for a singular design
}

// Bootstrap estimates the sampling distribution of the coefficients by
// refitting the model on complete rows resampled with replacement.
func Bootstrap(t *table.Table, opts BootstrapOptions) (*BootstrapResult, error) {
	if opts.Samples < 0 {
		return nil, fmt.Errorf("%w: bootstrap samples must not be negative, got %d", ErrInvalidArgument, opts.Samples)
	}
	if opts.Samples == 0 {
		opts.Samples = DefaultBootstrapSamples
	}

	d, err := buildDesign(t)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	n := len(d.y)
	x := make([][]float64, n)
	y := make([]float64, n)

	result := &BootstrapResult{
		Names: d.names,
		Draws: make([][]float64, 0, opts.Samples),
	}
	for s := 0; s < opts.Samples; s++ {
		for i := 0; i < n; i++ {
			j := rng.IntN(n)
			x[i] = d.x[j]
			y[i] = d.y[j]
		}
		res, err := stats.OLS(y, x, d.names)
		if errors.Is(err, stats.ErrSingular) {
			result.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("bootstrap draw %d: %w", s, err)
		}
		result.Draws = append(result.Draws, res.Params())
	}

	if len(result.Draws) == 0 {
		return nil, fmt.Errorf("bootstrap: all %d resamples were singular: %w", opts.Samples, stats.ErrSingular)
	}
	return result, nil
}

// Column returns the draws of one coefficient.
func (b *BootstrapResult) Column(name string) ([]float64, bool) {
	for j, n := range b.Names {
		if n == name {
			return b.column(j), true
		}
	}
	return nil, false
}

func (b *BootstrapResult) column(j int) []float64 {
	out := make([]float64, len(b.Draws))
	for i, d := range b.Draws {
		out[i] = d[j]
	}
	return out
}

// Mean returns the average of the draws for each coefficient.
func (b *BootstrapResult) Mean() []float64 {
	out := make([]float64, len(b.Names))
	for j := range b.Names {
		m, _, err := stats.MeanStd(b.column(j))
		if err != nil {
			// a single draw has no spread but still has a mean
			m = b.Draws[0][j]
		}
		out[j] = m
	}
	return out
}

// StdErr returns the sample standard deviation of the draws for each
// coefficient, NaN with fewer than two draws.
func (b *BootstrapResult) StdErr() []float64 {
	out := make([]float64, len(b.Names))
	for j := range b.Names {
		_, sd, err := stats.MeanStd(b.column(j))
		if err != nil {
			sd = math.NaN()
		}
		out[j] = sd
	}
	return out
}

// ConfInt returns the percentile interval holding level of the draws for
// each coefficient.
func (b *BootstrapResult) ConfInt(level float64) ([]stats.Interval, error) {
	if !(level > 0 && level < 1) {
		return nil, fmt.Errorf("%w: confidence level must be in (0, 1), got %v", ErrInvalidArgument, level)
	}
	out := make([]stats.Interval, len(b.Names))
	for j := range b.Names {
		iv, err := stats.PercentileInterval(b.column(j), level)
		if err != nil {
			return nil, fmt.Errorf("coefficient %q: %w", b.Names[j], err)
		}
		out[j] = iv
	}
	return out, nil
}
