package enums

import (
	"fmt"
	"strings"
)

// Currency is the denomination of inventory prices. Every quote the agent
// produces is in pesos; USD exists for imported third-party rate cards.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

var currencySymbols = map[Currency]string{
	CurrencyARS: "$",
	CurrencyUSD: "US$",
}

func (c Currency) String() string {
	return string(c)
}

func (c Currency) IsValid() bool {
	_, ok := currencySymbols[c]
	return ok
}

// Symbol is the prefix printed before amounts in proposals.
func (c Currency) Symbol() string {
	if sym, ok := currencySymbols[c]; ok {
		return sym
	}
	return currencySymbols[CurrencyARS]
}

// OrDefault returns ARS for rows stored before the column had a default.
func (c Currency) OrDefault() Currency {
	if c == "" {
		return CurrencyARS
	}
	return c
}

// ParseCurrency accepts any casing and surrounding spaces; blank means ARS.
func ParseCurrency(value string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(value))).OrDefault()
	if !c.IsValid() {
		return "", fmt.Errorf("invalid currency %q", value)
	}
	return c, nil
}
