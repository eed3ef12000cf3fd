package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"-1.005", "-1.01"},
		{"2.675", "2.68"},
		{"10", "10"},
	}
	for _, tc := range cases {
		got := Round2(dec(tc.in))
		assert.True(t, got.Equal(dec(tc.want)), "Round2(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestIsSettled(t *testing.T) {
	assert.True(t, IsSettled(decimal.Zero))
	assert.True(t, IsSettled(dec("0.01")))
	assert.True(t, IsSettled(dec("-0.01")))
	assert.False(t, IsSettled(dec("0.011")))
	assert.False(t, IsSettled(dec("5")))
}
