package utils_test

import (
	"testing"
	"time"

	"github.com/Gabriel4210/DRE/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5", "R$ 5,00"},
		{"999.999", "R$ 1.000,00"},
		{"1234.5", "R$ 1.234,50"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"100000", "R$ 100.000,00"},
		{"-1234.56", "R$ -1.234,56"},
		{"-0.001", "R$ 0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatCurrencyBRL(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatDateBR(t *testing.T) {
	assert.Equal(t, "05/01/2024", utils.FormatDateBR("2024-01-05"))
	assert.Equal(t, "not a date", utils.FormatDateBR("not a date"))
	assert.Equal(t, "29/02/2024", utils.FormatTimeBR(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12.35", utils.FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
	assert.Equal(t, "12", utils.FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
}
