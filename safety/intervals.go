package safety

import (
	"fmt"
	"math"
	"slices"

	"github.com/sartorproj/stockdb/stats"
	"github.com/sartorproj/stockdb/table"
)

// Prediction is the model output for one row with its bootstrap interval.
type Prediction struct {
	Estimate float64
	Lower    float64
	Upper    float64
	OK       bool // false when the row misses a factor; the values are then NaN
}

// PredictIntervals applies the model to every row of t. The estimate is the
// OLS prediction; the interval holds level of the predictions made with the
// bootstrap draws.
func PredictIntervals(t *table.Table, m *Model, boot *BootstrapResult, level float64) ([]Prediction, error) {
	if m == nil || boot == nil {
		return nil, fmt.Errorf("%w: model and bootstrap result are required", ErrInvalidArgument)
	}
	if !slices.Equal(m.Names(), boot.Names) {
		return nil, fmt.Errorf("%w: bootstrap coefficients %v do not match model %v", ErrInvalidArgument, boot.Names, m.Names())
	}
	if !(level > 0 && level < 1) {
		return nil, fmt.Errorf("%w: confidence level must be in (0, 1), got %v", ErrInvalidArgument, level)
	}

	estimates, err := m.Predict(t)
	if err != nil {
		return nil, err
	}

	out := make([]Prediction, t.Len())
	draws := make([]float64, len(boot.Draws))
	for r := range out {
		row, ok := factorRow(t, r)
		if !ok {
			out[r] = Prediction{Estimate: math.NaN(), Lower: math.NaN(), Upper: math.NaN()}
			continue
		}
		for i, params := range boot.Draws {
			draws[i] = predict(params, row)
		}
		iv, err := stats.PercentileInterval(draws, level)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		out[r] = Prediction{Estimate: estimates[r], Lower: iv.Lower, Upper: iv.Upper, OK: true}
	}
	return out, nil
}

// AnnotateTable adds the columns prefix, prefix_lower and prefix_upper to t.
// It is the one helper in this package that modifies a table.
func AnnotateTable(t *table.Table, preds []Prediction, prefix string) error {
	if len(preds) != t.Len() {
		return fmt.Errorf("%w: %d predictions for %d rows", ErrInvalidArgument, len(preds), t.Len())
	}
	est := make([]float64, len(preds))
	lo := make([]float64, len(preds))
	hi := make([]float64, len(preds))
	for i, p := range preds {
		est[i], lo[i], hi[i] = p.Estimate, p.Lower, p.Upper
	}
	if err := t.AddFloatColumn(prefix, est); err != nil {
		return err
	}
	if err := t.AddFloatColumn(prefix+"_lower", lo); err != nil {
		return err
	}
	return t.AddFloatColumn(prefix+"_upper", hi)
}
