package safety

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/sartorproj/stockdb/stats"
	"github.com/sartorproj/stockdb/table"
)

// Column names of the model.
const (
	SharpeZ        = "sharpe_1y_z"
	VolZ           = "vol_z"
	DownsideVolZ   = "downside_vol_z"
	IdiosyncraticZ = "idiosyncratic_vol_z"
	Response       = "safety_score"
)

// Factors lists the predictors in design matrix order, after the intercept.
var Factors = []string{SharpeZ, VolZ, DownsideVolZ, IdiosyncraticZ}

// Required returns the factor columns followed by the response column.
func Required() []string {
	return append(append([]string(nil), Factors...), Response)
}

// Model is a fitted safety score regression.
type Model struct {
	*stats.Result

	// Dropped counts the rows excluded for a missing required value.
	Dropped int
}

// design holds the complete rows of a table ready for regression.
type design struct {
	x       [][]float64 // intercept first, then Factors
	y       []float64
	names   []string
	dropped int
}

// buildDesign validates the schema and keeps the rows holding a number in
// every required column. The table is only read.
func buildDesign(t *table.Table) (*design, error) {
	for _, c := range Required() {
		if !t.HasColumn(c) {
			return nil, &MissingColumnError{Column: c}
		}
	}

	rows := make([][]float64, 0, t.Len())
	y := make([]float64, 0, t.Len())
	dropped := 0
	for r := 0; r < t.Len(); r++ {
		row, ok := factorRow(t, r)
		if !ok {
			dropped++
			continue
		}
		resp, ok := t.Float(r, Response)
		if !ok || math.IsInf(resp, 0) {
			dropped++
			continue
		}
		rows = append(rows, row)
		y = append(y, resp)
	}

	params := len(Factors) + 1
	if len(rows) <= params {
		return nil, &InsufficientDataError{Rows: len(rows), Params: params}
	}

	x, names := stats.AddConstant(rows, Factors)
	return &design{x: x, y: y, names: names, dropped: dropped}, nil
}

// factorRow returns the factor values of row r, false when one is missing.
func factorRow(t *table.Table, r int) ([]float64, bool) {
	row := make([]float64, len(Factors))
	for j, c := range Factors {
		f, ok := t.Float(r, c)
		if !ok || math.IsInf(f, 0) {
			return nil, false
		}
		row[j] = f
	}
	return row, true
}

// Fit regresses safety_score on the four standardized factors plus an
// intercept by ordinary least squares. Rows with a missing required value
// are dropped silently.
func Fit(t *table.Table) (*Model, error) {
	d, err := buildDesign(t)
	if err != nil {
		return nil, err
	}
	res, err := stats.OLS(d.y, d.x, d.names)
	if err != nil {
		return nil, fmt.Errorf("fit safety model: %w", err)
	}
	return &Model{Result: res, Dropped: d.dropped}, nil
}

// Predict returns the model prediction for every row of t, NaN for rows
// missing a factor. Only the factor columns are required.
func (m *Model) Predict(t *table.Table) ([]float64, error) {
	for _, c := range Factors {
		if !t.HasColumn(c) {
			return nil, &MissingColumnError{Column: c}
		}
	}
	params := m.Params()
	out := make([]float64, t.Len())
	for r := range out {
		row, ok := factorRow(t, r)
		if !ok {
			out[r] = math.NaN()
			continue
		}
		out[r] = predict(params, row)
	}
	return out, nil
}

// predict evaluates const + sum(beta_j * factor_j).
func predict(params, factors []float64) float64 {
	v := params[0]
	for j, f := range factors {
		v += params[j+1] * f
	}
	return v
}

// Summary returns a text report of the fit.
func (m *Model) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Safety model OLS: %s ~ %s\n", Response, strings.Join(Factors, " + "))
	fmt.Fprintf(&b, "Observations: %d (dropped %d)   Df model: %d   Df resid: %d\n",
		m.NObs, m.Dropped, m.DFModel, m.DFResid)
	fmt.Fprintf(&b, "R-squared: %.4f   Adj. R-squared: %.4f\n", m.RSquared, m.AdjRSquared)
	fmt.Fprintf(&b, "F-statistic: %.4g   Prob (F): %.4g\n", m.FValue, m.FPValue)
	fmt.Fprintf(&b, "Log-likelihood: %.4f   AIC: %.4f   BIC: %.4f\n\n", m.LogLik, m.AIC, m.BIC)

	ci, _ := m.ConfInt(0.05)
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "\tcoef\tstd err\tt\tP>|t|\t[0.025\t0.975]\t")
	for i, c := range m.Coefficients {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.3f\t%.3f\t%.4f\t%.4f\t\n",
			c.Name, c.Estimate, c.StdErr, c.T, c.P, ci[i].Lower, ci[i].Upper)
	}
	w.Flush()

	fmt.Fprintf(&b, "\nDurbin-Watson: %.3f", m.DurbinWatson)
	if jb := m.JarqueBera; jb != nil {
		fmt.Fprintf(&b, "   Jarque-Bera: %.3f (p=%.3g)   Skew: %.3f   Kurtosis: %.3f",
			jb.Statistic, jb.PValue, jb.Skew, jb.Kurtosis)
	}
	fmt.Fprintf(&b, "\nCond. No.: %.3g\n", m.CondNo)
	return b.String()
}
