package main

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatMoney renders an amount with the currency's symbol and fraction digits.
// Unknown currency codes fall back to two decimals.
func formatMoney(amount float64, currency string) string {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return fmt.Sprintf("%.2f %s", amount, currency)
	}

	factor := decimal.New(1, int32(cur.Fraction))
	minor := decimal.NewFromFloat(amount).Mul(factor).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}
