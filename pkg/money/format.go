// Package money formats and sums currency amounts the way Argentine documents print them.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	thousandsSep = "."
	decimalSep   = ","
	maxFraction  = 3
)

// Format renders v with '.' grouping and ',' decimals, keeping up to three
// fraction digits and dropping trailing zeros: 1234567.5 -> "1.234.567,5".
func Format(v float64) string {
	return FormatDecimal(decimal.NewFromFloat(v))
}

// FormatDecimal is Format for decimal values.
func FormatDecimal(d decimal.Decimal) string {
	return localize(d.Round(maxFraction).String())
}

// FormatWhole rounds to whole units before formatting.
func FormatWhole(v float64) string {
	return localize(decimal.NewFromFloat(v).Round(0).String())
}

func localize(plain string) string {
	sign := ""
	if strings.HasPrefix(plain, "-") {
		sign, plain = "-", plain[1:]
	}
	intPart, frac, hasFrac := strings.Cut(plain, ".")

	var sb strings.Builder
	sb.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteString(thousandsSep)
		}
		sb.WriteRune(digit)
	}
	if hasFrac {
		sb.WriteString(decimalSep)
		sb.WriteString(frac)
	}
	return sb.String()
}

// Sum adds amounts exactly and rounds the total to the given places.
func Sum(places int32, values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(places).InexactFloat64()
}
