package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SeparatorConventions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"19.90", "19.90"},
		{"19,90", "19.90"},
		{"1.234,56", "1234.56"},
		{"12.345.678,90", "12345678.90"},
		{"1234.56", "1234.56"},
		{"0,5", "0.50"},
		{"7", "7.00"},
		{"  3,25 ", "3.25"},
		{"-2,50", "-2.50"},
	}
	for _, tt := range tests {
		m, ok := Parse(tt.in)
		require.True(t, ok, "Parse(%q) should succeed", tt.in)
		assert.Equal(t, tt.want, m.String(), "Parse(%q)", tt.in)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1,2,3", "12x", "R$ 10"} {
		_, ok := Parse(in)
		assert.False(t, ok, "Parse(%q) should fail", in)
	}
}

func TestParse_FormatRoundTrip(t *testing.T) {
	for _, in := range []string{"0.00", "19.90", "1234.56", "-8.25", "1000000.01"} {
		m := MustParse(in)
		back, ok := Parse(m.String())
		require.True(t, ok)
		assert.True(t, m.Equal(back), "round trip of %s", in)
		assert.Equal(t, in, m.String())
	}
}

func TestRounding_HalfUp(t *testing.T) {
	assert.Equal(t, "0.01", MustParse("0.005").String())
	assert.Equal(t, "1.24", MustParse("1.235").String())
	assert.Equal(t, "1.23", MustParse("1.234").String())
}

func TestArithmetic(t *testing.T) {
	a := MustParse("10.00")
	b := MustParse("5.50")
	c := MustParse("3.25")
	assert.Equal(t, "18.75", a.Add(b).Add(c).String())
	assert.Equal(t, "4.50", a.Sub(b).String())

	// subtotal = qty × unit price, rounded half-up
	qty := FromInt(2)
	price := MustParse("19.90")
	assert.Equal(t, "39.80", qty.Mul(price).String())
	assert.Equal(t, "0.08", MustParse("0.25").Mul(MustParse("0.30")).String())
}

func TestComparisons(t *testing.T) {
	assert.True(t, Zero.IsZero())
	assert.Equal(t, "0.00", Zero.String())
	assert.True(t, MustParse("-0.01").IsNegative())
	assert.False(t, MustParse("0.01").IsNegative())
	assert.Equal(t, -1, MustParse("1.00").Cmp(MustParse("2.00")))
	assert.Equal(t, 0, MustParse("2,00").Cmp(FromInt(2)))
}
