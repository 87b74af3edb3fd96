package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDuplicateColumn(t *testing.T) {
	_, err := New("a", "b", "a")
	assert.ErrorIs(t, err, ErrDuplicateColumn)
	assert.Panics(t, func() { MustNew("x", "x") })
}

func TestValue(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		kind    Kind
		missing bool
		f       float64
		ok      bool
		text    string
	}{
		{"number", Num(2.5), Number, false, 2.5, true, "2.5"},
		{"nan number", Num(math.NaN()), Missing, true, 0, false, ""},
		{"numeric text", Str(" 3 "), String, false, 3, true, " 3 "},
		{"text", Str("AAPL"), String, false, 0, false, "AAPL"},
		{"missing text", Str("N/A"), String, true, 0, false, "N/A"},
		{"null", Null(), Missing, true, 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.v.Kind())
			assert.Equal(t, tt.missing, tt.v.IsMissing())
			f, ok := tt.v.Float()
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.f, f)
			}
			assert.Equal(t, tt.text, tt.v.Text())
		})
	}

	assert.Equal(t, "NA", Null().String())
	assert.Equal(t, "number", Number.String())
}

func TestValueOf(t *testing.T) {
	v, err := ValueOf(3)
	require.NoError(t, err)
	assert.Equal(t, Num(3), v)

	v, err = ValueOf(nil)
	require.NoError(t, err)
	assert.True(t, v.IsMissing())

	_, err = ValueOf([]int{1})
	assert.Error(t, err)
}

func TestAppendRow(t *testing.T) {
	tbl := MustNew("ticker", "vol_z", "safety_score")

	require.NoError(t, tbl.AppendRow(map[string]any{"ticker": "AAPL", "vol_z": 0.4, "safety_score": 1}))
	require.NoError(t, tbl.AppendRow(map[string]any{"ticker": "MSFT"}))
	assert.Equal(t, 2, tbl.Len())

	f, ok := tbl.Float(0, "safety_score")
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)

	_, ok = tbl.Float(1, "vol_z")
	assert.False(t, ok)

	err := tbl.AppendRow(map[string]any{"bogus": 1})
	assert.ErrorIs(t, err, ErrUnknownColumn)
	err = tbl.AppendRow(map[string]any{"vol_z": struct{}{}})
	assert.Error(t, err)
	assert.Equal(t, 2, tbl.Len())

	assert.Error(t, tbl.AppendValues(Num(1)))
}

func TestColumnAccess(t *testing.T) {
	tbl := MustNew("a", "b")
	require.NoError(t, tbl.AppendFloats(1, 2))
	require.NoError(t, tbl.AppendValues(Str("x"), Null()))

	a, err := tbl.Floats("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, a[0])
	assert.True(t, math.IsNaN(a[1]))

	s, err := tbl.Strings("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "x"}, s)

	_, err = tbl.Floats("c")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	_, err = tbl.Strings("c")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	assert.True(t, tbl.Value(5, "a").IsMissing())
	assert.True(t, tbl.Value(0, "c").IsMissing())

	cols := tbl.Columns()
	cols[0] = "changed"
	assert.True(t, tbl.HasColumn("a"))
	assert.False(t, tbl.HasColumn("changed"))
}

func TestAddColumn(t *testing.T) {
	tbl := MustNew("a")
	require.NoError(t, tbl.AppendFloats(1))
	require.NoError(t, tbl.AppendFloats(2))

	require.NoError(t, tbl.AddFloatColumn("b", []float64{10, math.NaN()}))
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.True(t, tbl.Value(1, "b").IsMissing())

	assert.ErrorIs(t, tbl.AddFloatColumn("b", []float64{1, 2}), ErrDuplicateColumn)
	assert.Error(t, tbl.AddFloatColumn("c", []float64{1}))
}

func TestCopy(t *testing.T) {
	tbl := MustNew("a")
	require.NoError(t, tbl.AppendFloats(1))

	c := tbl.Copy()
	require.NoError(t, c.AppendFloats(2))
	require.NoError(t, c.AddFloatColumn("b", []float64{0, 0}))

	assert.Equal(t, 1, tbl.Len())
	assert.False(t, tbl.HasColumn("b"))
	assert.Equal(t, 2, c.Len())
}

func TestStandardize(t *testing.T) {
	tbl := MustNew("vol")
	for _, v := range []float64{1, 2, 3, math.NaN()} {
		require.NoError(t, tbl.AppendFloats(v))
	}

	require.NoError(t, tbl.Standardize("vol", "vol_z"))
	z, err := tbl.Floats("vol_z")
	require.NoError(t, err)
	assert.InDelta(t, -1.0, z[0], 1e-12)
	assert.InDelta(t, 0.0, z[1], 1e-12)
	assert.InDelta(t, 1.0, z[2], 1e-12)
	assert.True(t, math.IsNaN(z[3]))

	assert.ErrorIs(t, tbl.Standardize("missing", "x"), ErrUnknownColumn)
}
