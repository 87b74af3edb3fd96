package table

import (
	"fmt"

	"github.com/sartorproj/stockdb/stats"
)

// Standardize adds column dst holding the z-score of column src. Missing
// values stay missing and do not contribute to the mean or deviation.
func (t *Table) Standardize(src, dst string) error {
	values, err := t.Floats(src)
	if err != nil {
		return err
	}
	z, err := stats.ZScore(values)
	if err != nil {
		return fmt.Errorf("standardize %q: %w", src, err)
	}
	return t.AddFloatColumn(dst, z)
}
