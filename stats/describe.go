package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoVariance is returned when a z-score is requested for constant data.
var ErrNoVariance = errors.New("zero variance")

// finite returns the values that are neither NaN nor infinite.
func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// MeanStd returns the mean and sample standard deviation of the finite values.
func MeanStd(values []float64) (mean, std float64, err error) {
	data := finite(values)
	if len(data) < 2 {
		return math.NaN(), math.NaN(), fmt.Errorf("%w: need at least 2 values, got %d", ErrDimension, len(data))
	}
	mean, err = mstats.Mean(data)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	std, err = mstats.StandardDeviationSample(data)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	return mean, std, nil
}

// ZScore standardizes values to zero mean and unit sample variance.
// NaN inputs are ignored in the moments and stay NaN in the output.
func ZScore(values []float64) ([]float64, error) {
	mean, std, err := MeanStd(values)
	if err != nil {
		return nil, err
	}
	if std == 0 {
		return nil, ErrNoVariance
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out, nil
}

// Quantile returns the p-quantile (p in [0, 1]) of the finite values using
// linear interpolation of the empirical distribution.
func Quantile(values []float64, p float64) (float64, error) {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return math.NaN(), fmt.Errorf("quantile must be in [0, 1], got %v", p)
	}
	data := finite(values)
	if len(data) == 0 {
		return math.NaN(), fmt.Errorf("%w: no finite values", ErrDimension)
	}
	sort.Float64s(data)
	return stat.Quantile(p, stat.LinInterp, data, nil), nil
}

// PercentileInterval returns the central interval holding level of the values,
// e.g. level 0.95 gives the 2.5% and 97.5% quantiles.
func PercentileInterval(values []float64, level float64) (Interval, error) {
	if !(level > 0 && level < 1) {
		return Interval{}, fmt.Errorf("level must be in (0, 1), got %v", level)
	}
	tail := (1 - level) / 2
	lo, err := Quantile(values, tail)
	if err != nil {
		return Interval{}, err
	}
	hi, err := Quantile(values, 1-tail)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Lower: lo, Upper: hi}, nil
}
