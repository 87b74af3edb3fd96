package stats

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleDesign() ([]float64, [][]float64, []string) {
	y := []float64{1, 3, 2, 5, 4}
	x, names := AddConstant([][]float64{{1}, {2}, {3}, {4}, {5}}, []string{"x"})
	return y, x, names
}

func TestOLSSimpleRegression(t *testing.T) {
	y, x, names := simpleDesign()

	res, err := OLS(y, x, names)
	require.NoError(t, err)

	require.Len(t, res.Coefficients, 2)
	assert.Equal(t, []string{"const", "x"}, res.Names())

	c := res.Coefficients[0]
	assert.InDelta(t, 0.6, c.Estimate, 1e-10)
	assert.InDelta(t, math.Sqrt(1.32), c.StdErr, 1e-10)

	slope, ok := res.Coef("x")
	require.True(t, ok)
	assert.InDelta(t, 0.8, slope.Estimate, 1e-10)
	assert.InDelta(t, math.Sqrt(0.12), slope.StdErr, 1e-10)
	assert.InDelta(t, 2.3094010767585034, slope.T, 1e-9)
	assert.InDelta(t, 0.10408803866182792, slope.P, 1e-6)

	assert.Equal(t, 5, res.NObs)
	assert.Equal(t, 1, res.DFModel)
	assert.Equal(t, 3, res.DFResid)
	assert.True(t, res.HasConst)
	assert.InDelta(t, 3.6, res.SSR, 1e-10)
	assert.InDelta(t, 10.0, res.TSS, 1e-10)
	assert.InDelta(t, 6.4, res.ESS, 1e-10)
	assert.InDelta(t, 1.2, res.Scale, 1e-10)
	assert.InDelta(t, 0.64, res.RSquared, 1e-10)
	assert.InDelta(t, 0.52, res.AdjRSquared, 1e-10)
	assert.InDelta(t, 16.0/3, res.FValue, 1e-9)
	// with one regressor the F test is the squared t test
	assert.InDelta(t, slope.P, res.FPValue, 1e-6)
	assert.InDelta(t, -6.273432498593273, res.LogLik, 1e-9)
	assert.InDelta(t, 16.546864997186546, res.AIC, 1e-9)
	assert.InDelta(t, 15.765740822054747, res.BIC, 1e-9)
	assert.Greater(t, res.CondNo, 1.0)
}

func TestOLSResidualsAndFitted(t *testing.T) {
	y, x, names := simpleDesign()
	res, err := OLS(y, x, names)
	require.NoError(t, err)

	expectedFitted := []float64{1.4, 2.2, 3.0, 3.8, 4.6}
	expectedResid := []float64{-0.4, 0.8, -1.0, 1.2, -0.6}
	fitted := res.FittedValues()
	resid := res.Residuals()
	for i := range y {
		assert.InDelta(t, expectedFitted[i], fitted[i], 1e-10)
		assert.InDelta(t, expectedResid[i], resid[i], 1e-10)
	}

	// accessors hand out copies
	resid[0] = 100
	assert.InDelta(t, -0.4, res.Residuals()[0], 1e-10)
}

func TestOLSDoesNotModifyInputs(t *testing.T) {
	y, x, names := simpleDesign()
	yCopy := append([]float64(nil), y...)
	x0 := append([]float64(nil), x[0]...)

	_, err := OLS(y, x, names)
	require.NoError(t, err)

	assert.Equal(t, yCopy, y)
	assert.Equal(t, x0, x[0])
}

func TestOLSConfInt(t *testing.T) {
	y, x, names := simpleDesign()
	res, err := OLS(y, x, names)
	require.NoError(t, err)

	ci, err := res.ConfInt(0.05)
	require.NoError(t, err)
	require.Len(t, ci, 2)

	// t(0.975, 3) = 3.182446305
	q := 3.182446305284263
	assert.InDelta(t, 0.8-q*math.Sqrt(0.12), ci[1].Lower, 1e-6)
	assert.InDelta(t, 0.8+q*math.Sqrt(0.12), ci[1].Upper, 1e-6)
	assert.True(t, ci[1].Contains(0.8))

	_, err = res.ConfInt(0)
	assert.Error(t, err)
	_, err = res.ConfInt(1.5)
	assert.Error(t, err)
}

func TestOLSPredict(t *testing.T) {
	y, x, names := simpleDesign()
	res, err := OLS(y, x, names)
	require.NoError(t, err)

	v, err := res.Predict([]float64{1, 10})
	require.NoError(t, err)
	assert.InDelta(t, 8.6, v, 1e-10)

	_, err = res.Predict([]float64{1})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestOLSExactFit(t *testing.T) {
	n := 20
	rows := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		a := float64(i%7) - 3
		b := math.Sin(float64(i))
		rows[i] = []float64{a, b}
		y[i] = 2 - 1.5*a + 4*b
	}
	x, names := AddConstant(rows, []string{"a", "b"})

	res, err := OLS(y, x, names)
	require.NoError(t, err)

	want := []float64{2, -1.5, 4}
	for i, p := range res.Params() {
		assert.InDelta(t, want[i], p, 1e-8)
	}
	assert.InDelta(t, 1.0, res.RSquared, 1e-10)
}

func TestOLSNoConstant(t *testing.T) {
	y := []float64{2, 4.1, 5.9, 8.2}
	x := [][]float64{{1}, {2}, {3}, {4}}

	res, err := OLS(y, x, nil)
	require.NoError(t, err)

	assert.False(t, res.HasConst)
	assert.Equal(t, []string{"x1"}, res.Names())
	assert.Equal(t, 1, res.DFModel)
	assert.Equal(t, 3, res.DFResid)
	// uncentered R² for a model through the origin
	assert.Greater(t, res.RSquared, 0.99)
}

func TestOLSErrors(t *testing.T) {
	tests := []struct {
		name  string
		y     []float64
		x     [][]float64
		names []string
		want  error
	}{
		{"empty", nil, nil, nil, ErrDimension},
		{"length mismatch", []float64{1, 2, 3}, [][]float64{{1}, {2}}, nil, ErrDimension},
		{"too few rows", []float64{1, 2}, [][]float64{{1, 1}, {1, 2}}, nil, ErrDimension},
		{"ragged rows", []float64{1, 2, 3, 4}, [][]float64{{1, 1}, {1, 2}, {1}, {1, 4}}, nil, ErrDimension},
		{"names mismatch", []float64{1, 2, 3}, [][]float64{{1}, {2}, {3}}, []string{"a", "b"}, ErrDimension},
		{
			name: "collinear",
			y:    []float64{1, 2, 3, 4, 5},
			x:    [][]float64{{1, 1, 2}, {1, 2, 4}, {1, 3, 6}, {1, 4, 8}, {1, 5, 10}},
			want: ErrSingular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OLS(tt.y, tt.x, tt.names)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestAddConstant(t *testing.T) {
	rows := [][]float64{{2, 3}, {4, 5}}
	x, names := AddConstant(rows, []string{"a", "b"})

	assert.Equal(t, [][]float64{{1, 2, 3}, {1, 4, 5}}, x)
	assert.Equal(t, []string{"const", "a", "b"}, names)
	assert.Equal(t, []float64{2, 3}, rows[0])
}

func TestOLSConstantResponse(t *testing.T) {
	_, x, names := simpleDesign()
	y := []float64{0.1, 0.1, 0.1, 0.1, 0.1}

	res, err := OLS(y, x, names)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, res.Coefficients[0].Estimate, 1e-12)
	assert.InDelta(t, 0.0, res.Coefficients[1].Estimate, 1e-12)
	assert.Equal(t, 0.0, res.TSS)
	assert.Equal(t, 0.0, res.ESS)
	assert.True(t, math.IsNaN(res.RSquared))
	assert.True(t, math.IsNaN(res.AdjRSquared))
	assert.True(t, math.IsNaN(res.FValue))
	assert.True(t, math.IsNaN(res.FPValue))
}

func TestOLSNearCollinearStdErr(t *testing.T) {
	n := 30
	base := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		fi := float64(i)
		base[i] = []float64{math.Sin(fi), math.Cos(1.7 * fi)}
		y[i] = 1 + 2*base[i][0] + 0.3*base[i][1] + 0.5*math.Sin(2.9*fi)
	}

	// y on [1, a, b] is well conditioned
	xRef, names := AddConstant(base, []string{"a", "b"})
	ref, err := OLS(y, xRef, names)
	require.NoError(t, err)
	refB := ref.Coefficients[2]

	for _, eps := range []float64{1e-4, 1e-7, 1e-8} {
		t.Run(fmt.Sprintf("eps=%g", eps), func(t *testing.T) {
			// a + eps*b spans the same space, so its coefficient is the
			// reference b coefficient divided by eps
			rows := make([][]float64, n)
			for i, r := range base {
				rows[i] = []float64{r[0], r[0] + eps*r[1]}
			}
			x, _ := AddConstant(rows, []string{"a", "a_near"})
			res, err := OLS(y, x, nil)
			require.NoError(t, err)
			require.Greater(t, res.CondNo, 0.1/eps)

			c := res.Coefficients[2]
			assert.InEpsilon(t, refB.StdErr/eps, c.StdErr, 1e-4)
			assert.InEpsilon(t, refB.Estimate/eps, c.Estimate, 1e-4)
			assert.InDelta(t, refB.T, c.T, 1e-3*math.Abs(refB.T)+1e-6)
			assert.InEpsilon(t, ref.SSR, res.SSR, 1e-4)
		})
	}
}
