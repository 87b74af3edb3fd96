package safety

import (
	"strings"

	"github.com/sartorproj/stockdb/table"
)

// StandardizeFactors adds each absent factor column by z-scoring its raw
// column, the factor name without the "_z" suffix (vol for vol_z). Factors
// already present are left alone. It returns the columns it added.
func StandardizeFactors(t *table.Table) ([]string, error) {
	added := []string{}
	for _, f := range Factors {
		if t.HasColumn(f) {
			continue
		}
		raw := strings.TrimSuffix(f, "_z")
		if !t.HasColumn(raw) {
			return added, &MissingColumnError{Column: f}
		}
		if err := t.Standardize(raw, f); err != nil {
			return added, err
		}
		added = append(added, f)
	}
	return added, nil
}
