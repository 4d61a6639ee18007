package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "₦0"},
		{"3000", "₦3,000"},
		{"2700.00", "₦2,700"},
		{"1234567", "₦1,234,567"},
		{"12.5", "₦12.5"},
		{"12.05", "₦12.05"},
		{"-300", "-₦300"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestNewFormatterRejectsUnknownCode(t *testing.T) {
	_, err := NewFormatter("XYZ1", "")
	assert.Error(t, err)
}

func TestFormatterFallsBackToCode(t *testing.T) {
	f, err := NewFormatter("KES", "")
	require.NoError(t, err)

	assert.Equal(t, "KES", f.Code())
	assert.Equal(t, "KES 1,500", f.Format(decimal.NewFromInt(1500)))
}

func TestParse(t *testing.T) {
	d, err := Parse(" 1500.50 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1500.5")))

	zero, err := Parse("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = Parse("abc")
	assert.Error(t, err)
}
