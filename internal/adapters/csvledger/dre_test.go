package csvledger_test

import (
	"bytes"
	"testing"

	"github.com/Gabriel4210/DRE/internal/adapters/csvledger"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDRE(t *testing.T) {
	report := &domain.DREReport{
		Company: "ACME",
		Months: []domain.DRERow{
			{Month: "2024-01", DREFigures: domain.NewDREFigures(decimal.NewFromInt(1000), decimal.NewFromInt(400), decimal.RequireFromString("100.5"))},
			{Month: "2024-02", DREFigures: domain.NewDREFigures(decimal.Zero, decimal.NewFromInt(50), decimal.Zero)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, csvledger.WriteDRE(&buf, report))

	want := "mes,Receita,Custo,Despesa,Lucro Bruto,Lucro Líquido\n" +
		"2024-01,1000.00,400.00,100.50,600.00,499.50\n" +
		"2024-02,0.00,50.00,0.00,-50.00,-50.00\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteDRE_EmptyReportIsHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, csvledger.WriteDRE(&buf, &domain.DREReport{Months: []domain.DRERow{}}))
	assert.Equal(t, "mes,Receita,Custo,Despesa,Lucro Bruto,Lucro Líquido\n", buf.String())
}

func TestDREFileName(t *testing.T) {
	p, err := domain.NewPeriod("2024-01-01", "2024-06-30")
	require.NoError(t, err)

	assert.Equal(t, "dre_ACME_2024-01-01_2024-06-30.csv", csvledger.DREFileName("ACME", *p))
	assert.Equal(t, "dre_ACME_Ltda_2024-01-01_2024-06-30.csv", csvledger.DREFileName("ACME Ltda", *p))
	assert.Equal(t, "dre_Comércio_S_A_2024-01-01_2024-06-30.csv", csvledger.DREFileName("Comércio S/A", *p))
}
