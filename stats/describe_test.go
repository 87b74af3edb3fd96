package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanStd(t *testing.T) {
	mean, std, err := MeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mean, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7), std, 1e-12)

	t.Run("ignores NaN", func(t *testing.T) {
		mean, std, err := MeanStd([]float64{1, math.NaN(), 3})
		require.NoError(t, err)
		assert.InDelta(t, 2.0, mean, 1e-12)
		assert.InDelta(t, math.Sqrt2, std, 1e-12)
	})

	t.Run("too few values", func(t *testing.T) {
		_, _, err := MeanStd([]float64{1, math.NaN()})
		assert.ErrorIs(t, err, ErrDimension)
	})
}

func TestZScore(t *testing.T) {
	z, err := ZScore([]float64{1, 2, 3, math.NaN()})
	require.NoError(t, err)
	require.Len(t, z, 4)
	assert.InDelta(t, -1.0, z[0], 1e-12)
	assert.InDelta(t, 0.0, z[1], 1e-12)
	assert.InDelta(t, 1.0, z[2], 1e-12)
	assert.True(t, math.IsNaN(z[3]))

	_, err = ZScore([]float64{4, 4, 4})
	assert.ErrorIs(t, err, ErrNoVariance)
}

func TestQuantile(t *testing.T) {
	values := []float64{3, 1, 2, 4, 5}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{1, 5},
	}
	for _, tt := range tests {
		got, err := Quantile(values, tt.p)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12, "p=%v", tt.p)
	}

	mid, err := Quantile(values, 0.5)
	require.NoError(t, err)
	assert.True(t, mid >= 2 && mid <= 4, "median %v", mid)

	// input order is preserved
	assert.Equal(t, []float64{3, 1, 2, 4, 5}, values)

	_, err = Quantile(values, 1.5)
	assert.Error(t, err)
	_, err = Quantile([]float64{math.NaN()}, 0.5)
	assert.ErrorIs(t, err, ErrDimension)
}

func TestPercentileInterval(t *testing.T) {
	values := make([]float64, 1001)
	for i := range values {
		values[i] = float64(i)
	}

	ci, err := PercentileInterval(values, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 50, ci.Lower, 1.5)
	assert.InDelta(t, 950, ci.Upper, 1.5)
	assert.Less(t, ci.Lower, ci.Upper)

	_, err = PercentileInterval(values, 1)
	assert.Error(t, err)
}
