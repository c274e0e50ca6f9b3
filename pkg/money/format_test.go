package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1.000",
		45000:      "45.000",
		1500000:    "1.500.000",
		2911260.5:  "2.911.260,5",
		1234.5678:  "1.234,568",
		-98000.25:  "-98.000,25",
		100.10:     "100,1",
		1000000000: "1.000.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, Format(in), "input %v", in)
	}
}

func TestFormatWhole(t *testing.T) {
	assert.Equal(t, "400.381", FormatWhole(400380.6))
	assert.Equal(t, "1.000", FormatWhole(999.5))
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "2.406.000", FormatDecimal(decimal.RequireFromString("2406000.00")))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.3, Sum(2, 0.1, 0.2))
	assert.Equal(t, 3.0, Sum(0, 1.4, 1.4))
	assert.Equal(t, 0.0, Sum(2))
}
