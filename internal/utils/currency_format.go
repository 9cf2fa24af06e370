package utils

import (
	"strings"
	"time"

	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).StringFixed(int32(precision))
}

// FormatCurrencyBRL renders an amount as Brazilian reais with two decimals.
// Example: 1234.5 returns "R$ 1.234,50", -1234.5 returns "R$ -1.234,50"
func FormatCurrencyBRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString("R$ ")
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// FormatDateBR converts an ISO date to dd/mm/yyyy, returning the input unchanged when it does not parse.
func FormatDateBR(date string) string {
	d, err := domain.ParseDate(date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}

// FormatTimeBR formats a time value as dd/mm/yyyy.
func FormatTimeBR(t time.Time) string {
	return t.Format("02/01/2006")
}
