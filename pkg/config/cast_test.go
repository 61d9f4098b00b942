package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsIntScalars(t *testing.T) {
	n, err := AsInt("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = AsInt("  -7  ")
	require.NoError(t, err)
	assert.Equal(t, -7, n)

	// Interior whitespace is stripped too.
	n, err = AsInt("1 000")
	require.NoError(t, err)
	assert.Equal(t, 1000, n)

	_, err = AsInt("3.0")
	assert.ErrorIs(t, err, ErrNotANumber)
	_, err = AsInt("abc")
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestAsInt64(t *testing.T) {
	n, err := AsInt64("9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), n)

	_, err = AsInt64("9223372036854775808")
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestAsUint64RejectsNegative(t *testing.T) {
	n, err := AsUint64("18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), n)

	// No silent two's-complement wrap for negative input.
	_, err = AsUint64("-1")
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestAsFloat(t *testing.T) {
	f64, err := AsFloat64("  3.0  ")
	require.NoError(t, err)
	assert.Equal(t, 3.0, f64)

	f64, err = AsFloat64("-1.5e3")
	require.NoError(t, err)
	assert.Equal(t, -1500.0, f64)

	f32, err := AsFloat32("0.25")
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), f32)

	_, err = AsFloat64("not-a-number")
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestAsBoolNarrowContract(t *testing.T) {
	// Only the exact literal "true" maps to true; everything else is
	// false, with no error. Deliberately narrow.
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"  true ", true},
		{"True", false},
		{"TRUE", false},
		{"false", false},
		{"1", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AsBool(tt.in), "AsBool(%q)", tt.in)
	}
}

func TestAsIntSlice(t *testing.T) {
	got, err := AsIntSlice("{3, 4, 5}")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5}, got)

	// Trailing comma tokens are dropped.
	got, err = AsIntSlice("{1,2,}")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	// Surrounding whitespace on the literal itself is fine.
	got, err = AsIntSlice("  { 7 }  ")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, got)

	_, err = AsIntSlice("{1, x, 3}")
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestAsSliceMalformed(t *testing.T) {
	for _, in := range []string{"", "3,4,5", "{3,4,5", "3,4,5}", "x"} {
		_, err := AsIntSlice(in)
		assert.ErrorIs(t, err, ErrMalformedArray, "AsIntSlice(%q)", in)
	}
}

func TestAsFloatSlices(t *testing.T) {
	f64s, err := AsFloat64Slice("{1.5, 2.5}")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, f64s)

	f32s, err := AsFloat32Slice("{0.5, 1.0}")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 1.0}, f32s)
}

func TestAsInt64AndUint64Slices(t *testing.T) {
	i64s, err := AsInt64Slice("{-1, 0, 1}")
	require.NoError(t, err)
	assert.Equal(t, []int64{-1, 0, 1}, i64s)

	u64s, err := AsUint64Slice("{1, 2}")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, u64s)

	_, err = AsUint64Slice("{-1}")
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestAsBoolSlice(t *testing.T) {
	got, err := AsBoolSlice("{true, false, True}")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, got)
}

func TestEmptyArray(t *testing.T) {
	got, err := AsIntSlice("{}")
	require.NoError(t, err)
	assert.Empty(t, got)
}
