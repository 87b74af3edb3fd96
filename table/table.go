// Package table provides the in-memory observation table used by the models.
package table

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrNoData          = errors.New("no data")
)

// Kind is the kind of value held by a cell.
type Kind int

const (
	Missing Kind = iota
	Number
	String
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "missing"
	}
}

// Value is a single table cell.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num returns a numeric cell. NaN is stored as a missing cell.
func Num(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{kind: Number, num: v}
}

// Str returns a string cell.
func Str(s string) Value {
	return Value{kind: String, str: s}
}

// Null returns a missing cell.
func Null() Value {
	return Value{}
}

// Kind returns the kind of the cell.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the cell holds no usable value.
func (v Value) IsMissing() bool {
	if v.kind == String {
		return isMissingText(v.str)
	}
	return v.kind == Missing
}

// Float returns the numeric value of the cell. String cells are parsed, so
// text loaded from CSV can be used as numbers.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case Number:
		return v.num, !math.IsNaN(v.num)
	case String:
		s := strings.TrimSpace(v.str)
		if isMissingText(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Text returns the cell formatted as text; missing cells are empty.
func (v Value) Text() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case String:
		return v.str
	}
	return ""
}

func (v Value) String() string {
	if v.kind == Missing {
		return "NA"
	}
	return v.Text()
}

// isMissingText matches the spellings of a missing value found in exported data.
func isMissingText(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "N/A", "NaN", "nan", "null", "NULL", "None":
		return true
	}
	return false
}

// ValueOf converts a Go value to a cell.
func ValueOf(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case float64:
		return Num(v), nil
	case float32:
		return Num(float64(v)), nil
	case int:
		return Num(float64(v)), nil
	case int64:
		return Num(float64(v)), nil
	case int32:
		return Num(float64(v)), nil
	case string:
		return Str(v), nil
	}
	return Value{}, fmt.Errorf("unsupported cell type %T", x)
}

// Table is a collection of rows sharing an ordered column schema.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty table with the given columns.
func New(columns ...string) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, ok := t.index[c]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// MustNew is like New but panics on a duplicate column.
func MustNew(columns ...string) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns a copy of the column names in schema order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the schema contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AppendRow adds a row given as column name to value. Columns of the schema
// absent from the map are missing.
func (t *Table) AppendRow(row map[string]any) error {
	values := make([]Value, len(t.columns))
	for name, x := range row {
		i, ok := t.index[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		v, err := ValueOf(x)
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		values[i] = v
	}
	t.rows = append(t.rows, values)
	return nil
}

// AppendValues adds a row given in schema order.
func (t *Table) AppendValues(values ...Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, schema has %d columns", len(values), len(t.columns))
	}
	row := make([]Value, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// AppendFloats adds a numeric row given in schema order.
func (t *Table) AppendFloats(values ...float64) error {
	row := make([]Value, len(values))
	for i, f := range values {
		row[i] = Num(f)
	}
	return t.AppendValues(row...)
}

// Value returns the cell at (row, column). Out of range rows and unknown
// columns yield a missing cell.
func (t *Table) Value(row int, column string) Value {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return Null()
	}
	return t.rows[row][i]
}

// Float returns the numeric value at (row, column).
func (t *Table) Float(row int, column string) (float64, bool) {
	return t.Value(row, column).Float()
}

// String returns the text value at (row, column).
func (t *Table) String(row int, column string) string {
	return t.Value(row, column).Text()
}

// Floats returns a column as numbers, NaN where the value is missing or not numeric.
func (t *Table) Floats(column string) ([]float64, error) {
	i, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	out := make([]float64, len(t.rows))
	for r, row := range t.rows {
		f, ok := row[i].Float()
		if !ok {
			f = math.NaN()
		}
		out[r] = f
	}
	return out, nil
}

// Strings returns a column as text.
func (t *Table) Strings(column string) ([]string, error) {
	i, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i].Text()
	}
	return out, nil
}

// AddColumn appends a column to the schema. values must hold one cell per row.
func (t *Table) AddColumn(name string, values []Value) error {
	if _, ok := t.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.rows))
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for r := range t.rows {
		t.rows[r] = append(t.rows[r], values[r])
	}
	return nil
}

// AddFloatColumn is AddColumn for numeric values; NaN becomes missing.
func (t *Table) AddFloatColumn(name string, values []float64) error {
	cells := make([]Value, len(values))
	for i, f := range values {
		cells[i] = Num(f)
	}
	return t.AddColumn(name, cells)
}

// Copy creates a deep copy of the table.
func (t *Table) Copy() *Table {
	c := MustNew(t.columns...)
	c.rows = make([][]Value, len(t.rows))
	for r, row := range t.rows {
		c.rows[r] = make([]Value, len(row))
		copy(c.rows[r], row)
	}
	return c
}
