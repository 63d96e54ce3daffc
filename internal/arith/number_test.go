package arith

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":         Exact,
		"exact":    Exact,
		"rational": Exact,
		"float":    Float,
		"float64":  Float,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("decimal")
	assert.Error(t, err)
}

func TestExactThirds(t *testing.T) {
	one, three := Exact.FromInt(1), Exact.FromInt(3)
	v := one.Quo(three).Mul(three)
	assert.True(t, v.EqualInt(1))
	assert.Equal(t, "1", v.String())
	assert.Equal(t, "1/3", one.Quo(three).String())
}

// 2 ÷ (6 ÷ 5 − 1) is exactly 10 but float64 rounding lands on 10.000000000000002.
func TestFloatMissesRationalSolution(t *testing.T) {
	eval := func(m Mode) Number {
		two, six, five, one := m.FromInt(2), m.FromInt(6), m.FromInt(5), m.FromInt(1)
		return two.Quo(six.Quo(five).Sub(one))
	}

	assert.True(t, eval(Exact).EqualInt(10))
	assert.False(t, eval(Float).EqualInt(10))
}

func TestNegAndZero(t *testing.T) {
	for _, m := range []Mode{Exact, Float} {
		five := m.FromInt(5)
		assert.True(t, five.Neg().Add(five).IsZero(), m)
		assert.False(t, five.IsZero(), m)
		assert.True(t, five.Neg().EqualInt(-5), m)
	}
}

func TestQuoByZeroPanics(t *testing.T) {
	for _, m := range []Mode{Exact, Float} {
		assert.Panics(t, func() { m.FromInt(1).Quo(m.FromInt(0)) }, m)
	}
}

func TestRat(t *testing.T) {
	assert.Equal(t, 0, Rat(Exact.FromInt(7)).Cmp(big.NewRat(7, 1)))
	assert.Equal(t, 0, Rat(Float.FromInt(1).Quo(Float.FromInt(4))).Cmp(big.NewRat(1, 4)))
}
