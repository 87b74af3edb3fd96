package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrDimension indicates inconsistent or too small inputs.
	ErrDimension = errors.New("dimension mismatch")
	// ErrSingular indicates a rank deficient design matrix.
	ErrSingular = errors.New("singular design matrix")
)

// ConstName is the name given to the intercept column by AddConstant.
const ConstName = "const"

// MaxCondition is the largest design condition number OLS accepts. Above it
// the columns are treated as linearly dependent.
const MaxCondition = 1e12

// Coefficient is one estimated regression parameter.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	T        float64
	P        float64 // two-sided, Student's t with DFResid degrees of freedom
}

// Result holds an ordinary least squares fit. It is not modified after OLS
// returns it.
type Result struct {
	Coefficients []Coefficient

	NObs    int
	DFModel int // regressors excluding the constant
	DFResid int

	RSquared    float64
	AdjRSquared float64
	FValue      float64
	FPValue     float64

	SSR   float64 // sum of squared residuals
	ESS   float64 // explained sum of squares
	TSS   float64 // centered when the model has a constant
	Scale float64 // residual variance SSR/DFResid

	LogLik float64
	AIC    float64
	BIC    float64
	CondNo float64 // 2-norm condition number of the design matrix

	DurbinWatson float64
	JarqueBera   *JarqueBeraResult

	HasConst bool

	residuals []float64
	fitted    []float64
}

// AddConstant returns a copy of x with a leading column of ones, and names
// with ConstName prepended.
func AddConstant(x [][]float64, names []string) ([][]float64, []string) {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = make([]float64, len(row)+1)
		out[i][0] = 1
		copy(out[i][1:], row)
	}
	return out, append([]string{ConstName}, names...)
}

// OLS performs ordinary least squares regression of y on the rows of x.
// The coefficients are found with a QR decomposition of x; standard errors
// use the inverse of x'x, taken from the same factorization. names labels the
// columns of x and may be nil.
//
// A constant response leaves R² and the F test undefined; they are NaN.
func OLS(y []float64, x [][]float64, names []string) (*Result, error) {
	n := len(y)
	if n == 0 || len(x) != n {
		return nil, fmt.Errorf("%w: %d responses, %d design rows", ErrDimension, n, len(x))
	}
	k := len(x[0])
	if k == 0 {
		return nil, fmt.Errorf("%w: empty design row", ErrDimension)
	}
	if n <= k {
		return nil, fmt.Errorf("%w: %d observations for %d parameters", ErrDimension, n, k)
	}
	if names == nil {
		names = make([]string, k)
		for j := range names {
			names[j] = fmt.Sprintf("x%d", j+1)
		}
	}
	if len(names) != k {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrDimension, len(names), k)
	}

	data := make([]float64, 0, n*k)
	for i, row := range x {
		if len(row) != k {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimension, i, len(row), k)
		}
		data = append(data, row...)
	}
	X := mat.NewDense(n, k, data)
	Y := mat.NewVecDense(n, append([]float64(nil), y...))

	cond := mat.Cond(X, 2)
	if math.IsNaN(cond) || cond > MaxCondition {
		return nil, fmt.Errorf("%w: condition number %g", ErrSingular, cond)
	}

	var qr mat.QR
	qr.Factorize(X)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, Y); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	xtxInv, err := gramInverse(&qr, k)
	if err != nil {
		return nil, err
	}

	var fittedVec mat.VecDense
	fittedVec.MulVec(X, &beta)

	r := &Result{
		NObs:      n,
		CondNo:    cond,
		HasConst:  hasConstant(x),
		residuals: make([]float64, n),
		fitted:    make([]float64, n),
	}
	for i := 0; i < n; i++ {
		r.fitted[i] = fittedVec.AtVec(i)
		r.residuals[i] = y[i] - r.fitted[i]
		r.SSR += r.residuals[i] * r.residuals[i]
	}

	kConst := 0
	switch {
	case r.HasConst && floats.Min(y) == floats.Max(y):
		// constant response: nothing to explain
		kConst = 1
	case r.HasConst:
		kConst = 1
		mean := floats.Sum(y) / float64(n)
		for _, v := range y {
			r.TSS += (v - mean) * (v - mean)
		}
	default:
		r.TSS = floats.Dot(y, y)
	}
	r.DFModel = k - kConst
	r.DFResid = n - k
	r.Scale = r.SSR / float64(r.DFResid)
	r.ESS = math.Max(r.TSS-r.SSR, 0)
	r.RSquared, r.AdjRSquared = math.NaN(), math.NaN()
	if r.TSS > 0 {
		r.RSquared = 1 - r.SSR/r.TSS
		r.AdjRSquared = 1 - float64(n-kConst)/float64(r.DFResid)*(1-r.RSquared)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(r.DFResid)}
	r.Coefficients = make([]Coefficient, k)
	for j := 0; j < k; j++ {
		est := beta.AtVec(j)
		se := math.Sqrt(r.Scale * xtxInv.At(j, j))
		t := est / se
		r.Coefficients[j] = Coefficient{
			Name:     names[j],
			Estimate: est,
			StdErr:   se,
			T:        t,
			P:        twoSidedP(tDist, t),
		}
	}

	r.FValue, r.FPValue = math.NaN(), math.NaN()
	if r.DFModel > 0 && r.TSS > 0 {
		r.FValue = (r.ESS / float64(r.DFModel)) / r.Scale
		switch {
		case math.IsInf(r.FValue, 1):
			r.FPValue = 0
		case r.FValue >= 0:
			r.FPValue = distuv.F{D1: float64(r.DFModel), D2: float64(r.DFResid)}.Survival(r.FValue)
		}
	}

	nf := float64(n)
	r.LogLik = -nf / 2 * (math.Log(2*math.Pi) + math.Log(r.SSR/nf) + 1)
	r.AIC = -2*r.LogLik + 2*float64(k)
	r.BIC = -2*r.LogLik + float64(k)*math.Log(nf)

	if dw := DurbinWatson(r.residuals); dw != nil {
		r.DurbinWatson = dw.Statistic
	}
	r.JarqueBera = JarqueBera(r.residuals)

	return r, nil
}

// gramInverse returns (x'x)^-1 as R^-1 R^-T from the QR factors of x, which
// avoids squaring the condition number of x.
func gramInverse(qr *mat.QR, k int) (*mat.Dense, error) {
	var full mat.Dense
	qr.RTo(&full)
	r := mat.NewTriDense(k, mat.Upper, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			r.SetTri(i, j, full.At(i, j))
		}
	}
	var rInv mat.TriDense
	if err := rInv.InverseTri(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	var inv mat.Dense
	inv.Mul(&rInv, rInv.T())
	return &inv, nil
}

func twoSidedP(dist distuv.StudentsT, t float64) float64 {
	switch {
	case math.IsNaN(t):
		return math.NaN()
	case math.IsInf(t, 0):
		return 0
	}
	return 2 * dist.Survival(math.Abs(t))
}

// hasConstant reports whether some column of x is constant and non-zero.
func hasConstant(x [][]float64) bool {
	k := len(x[0])
	for j := 0; j < k; j++ {
		v := x[0][j]
		if v == 0 {
			continue
		}
		constant := true
		for i := 1; i < len(x); i++ {
			if x[i][j] != v {
				constant = false
				break
			}
		}
		if constant {
			return true
		}
	}
	return false
}

// Params returns the coefficient estimates in design column order.
func (r *Result) Params() []float64 {
	out := make([]float64, len(r.Coefficients))
	for i, c := range r.Coefficients {
		out[i] = c.Estimate
	}
	return out
}

// Names returns the coefficient names in design column order.
func (r *Result) Names() []string {
	out := make([]string, len(r.Coefficients))
	for i, c := range r.Coefficients {
		out[i] = c.Name
	}
	return out
}

// Coef returns the coefficient with the given name.
func (r *Result) Coef(name string) (Coefficient, bool) {
	for _, c := range r.Coefficients {
		if c.Name == name {
			return c, true
		}
	}
	return Coefficient{}, false
}

// Residuals returns the model residuals.
func (r *Result) Residuals() []float64 {
	out := make([]float64, len(r.residuals))
	copy(out, r.residuals)
	return out
}

// FittedValues returns the fitted values.
func (r *Result) FittedValues() []float64 {
	out := make([]float64, len(r.fitted))
	copy(out, r.fitted)
	return out
}

// Interval is a closed confidence interval.
type Interval struct {
	Lower float64
	Upper float64
}

// Contains reports whether v lies in the interval.
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// ConfInt returns the 100*(1-alpha)% t confidence interval of every coefficient.
func (r *Result) ConfInt(alpha float64) ([]Interval, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("alpha must be in (0, 1), got %v", alpha)
	}
	q := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(r.DFResid)}.Quantile(1 - alpha/2)
	out := make([]Interval, len(r.Coefficients))
	for i, c := range r.Coefficients {
		out[i] = Interval{Lower: c.Estimate - q*c.StdErr, Upper: c.Estimate + q*c.StdErr}
	}
	return out, nil
}

// Predict returns the fitted value for one design row.
func (r *Result) Predict(x []float64) (float64, error) {
	if len(x) != len(r.Coefficients) {
		return 0, fmt.Errorf("%w: %d values for %d coefficients", ErrDimension, len(x), len(r.Coefficients))
	}
	return floats.Dot(r.Params(), x), nil
}
