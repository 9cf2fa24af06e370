package accounting_test

import (
	"testing"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/Gabriel4210/DRE/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(id int64, company, date string, kind domain.TransactionKind, amount string) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		Company:     company,
		Date:        date,
		Kind:        kind,
		Description: "item",
		Amount:      decimal.RequireFromString(amount),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertFigures(t *testing.T, want, got domain.DREFigures) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %+v, got %+v", want, got)
}

func period(t *testing.T, from, to string) *domain.Period {
	t.Helper()
	p, err := domain.NewPeriod(from, to)
	require.NoError(t, err)
	return p
}

func ledger() []domain.Transaction {
	return []domain.Transaction{
		txn(1, "A", "2024-01-05", domain.KindRevenue, "1000"),
		txn(2, "A", "2024-01-10", domain.KindCost, "400"),
		txn(3, "A", "2024-01-15", domain.KindExpense, "100"),
		txn(4, "A", "2024-02-01", domain.KindRevenue, "500"),
		txn(5, "B", "2024-01-20", domain.KindRevenue, "9999.99"),
		txn(6, "A", "2024-03-01", domain.KindExpense, "70.50"),
	}
}

func TestComputeDRE_JanuaryFebruaryScenario(t *testing.T) {
	report, err := accounting.ComputeDRE(ledger(), domain.TransactionFilter{
		Company: "A",
		Period:  period(t, "2024-01-01", "2024-02-28"),
	})
	require.NoError(t, err)

	require.Len(t, report.Months, 2)
	assert.Equal(t, "2024-01", report.Months[0].Month)
	assertFigures(t, domain.DREFigures{Revenue: dec("1000"), Cost: dec("400"), Expense: dec("100"), GrossProfit: dec("600"), NetProfit: dec("500")}, report.Months[0].DREFigures)
	assert.Equal(t, "2024-02", report.Months[1].Month)
	assertFigures(t, domain.DREFigures{Revenue: dec("500"), Cost: dec("0"), Expense: dec("0"), GrossProfit: dec("500"), NetProfit: dec("500")}, report.Months[1].DREFigures)

	assertFigures(t, domain.DREFigures{Revenue: dec("1500"), Cost: dec("400"), Expense: dec("100"), GrossProfit: dec("1100"), NetProfit: dec("1000")}, report.Totals)
	assert.Equal(t, "A", report.Company)
}

func TestComputeDRE_EmptyInput(t *testing.T) {
	for name, input := range map[string][]domain.Transaction{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			report, err := accounting.ComputeDRE(input, domain.TransactionFilter{})
			require.NoError(t, err)
			assert.NotNil(t, report.Months)
			assert.Empty(t, report.Months)
			assert.True(t, report.Totals.NetProfit.IsZero())
			assert.True(t, report.Totals.Revenue.IsZero())
		})
	}
}

func TestComputeDRE_NoMatchesIsEmptyNotError(t *testing.T) {
	report, err := accounting.ComputeDRE(ledger(), domain.TransactionFilter{Company: "Z"})
	require.NoError(t, err)
	assert.Empty(t, report.Months)
	assert.True(t, report.Totals.GrossProfit.IsZero())
}

func TestComputeDRE_BoundsAreInclusive(t *testing.T) {
	report, err := accounting.ComputeDRE(ledger(), domain.TransactionFilter{
		Company: "A",
		Period:  period(t, "2024-01-05", "2024-02-01"),
	})
	require.NoError(t, err)

	assert.True(t, report.Totals.Revenue.Equal(dec("1500")))
	require.Len(t, report.Months, 2)
}

func TestComputeDRE_TotalsMatchRows(t *testing.T) {
	filters := []domain.TransactionFilter{
		{},
		{Company: "A"},
		{Company: "B"},
		{Period: period(t, "2024-01-01", "2024-01-31")},
		{Company: "A", Period: period(t, "2024-02-01", "2024-12-31")},
	}

	for _, f := range filters {
		report, err := accounting.ComputeDRE(ledger(), f)
		require.NoError(t, err)

		assertFigures(t, report.Totals, accounting.SumRows(report.Months))
		assert.True(t, report.Totals.GrossProfit.Equal(report.Totals.Revenue.Sub(report.Totals.Cost)))
		assert.True(t, report.Totals.NetProfit.Equal(report.Totals.GrossProfit.Sub(report.Totals.Expense)))

		for i := 1; i < len(report.Months); i++ {
			assert.Less(t, report.Months[i-1].Month, report.Months[i].Month)
		}
	}
}

func TestComputeDRE_FilterThenAggregateEqualsAggregateWithFilter(t *testing.T) {
	f := domain.TransactionFilter{Company: "A", Period: period(t, "2024-01-01", "2024-02-28")}

	direct, err := accounting.ComputeDRE(ledger(), f)
	require.NoError(t, err)

	prefiltered, err := accounting.ComputeDRE(f.Apply(ledger()), domain.TransactionFilter{})
	require.NoError(t, err)

	require.Len(t, prefiltered.Months, len(direct.Months))
	for i := range direct.Months {
		assert.Equal(t, direct.Months[i].Month, prefiltered.Months[i].Month)
		assertFigures(t, direct.Months[i].DREFigures, prefiltered.Months[i].DREFigures)
	}
	assertFigures(t, direct.Totals, prefiltered.Totals)
}

func TestComputeDRE_DecimalPrecision(t *testing.T) {
	txns := []domain.Transaction{
		txn(1, "A", "2024-01-01", domain.KindRevenue, "0.1"),
		txn(2, "A", "2024-01-02", domain.KindRevenue, "0.2"),
	}
	report, err := accounting.ComputeDRE(txns, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, "0.3", report.Totals.Revenue.String())
}

func TestComputeDRE_UnparseableDateIsDataError(t *testing.T) {
	txns := append(ledger(), txn(7, "A", "2024-13-01", domain.KindRevenue, "1"))

	_, err := accounting.ComputeDRE(txns, domain.TransactionFilter{Company: "A"})
	assert.ErrorIs(t, err, apperrors.ErrData)

	// excluded by the company filter before parsing
	_, err = accounting.ComputeDRE(txns, domain.TransactionFilter{Company: "B"})
	assert.NoError(t, err)
}

func TestComputeDRE_UnknownKindIsDataError(t *testing.T) {
	txns := []domain.Transaction{txn(1, "A", "2024-01-01", domain.TransactionKind("Lucro"), "10")}

	_, err := accounting.ComputeDRE(txns, domain.TransactionFilter{})
	var dErr *apperrors.DataError
	require.ErrorAs(t, err, &dErr)
	assert.Contains(t, dErr.Msg, "Lucro")
}

func expense(id int64, company, date, description, amount string) domain.Transaction {
	t := txn(id, company, date, domain.KindExpense, amount)
	t.Description = description
	return t
}

func TestComputeExpenseBreakdown(t *testing.T) {
	txns := []domain.Transaction{
		expense(1, "A", "2024-01-05", "Aluguel", "300"),
		expense(2, "A", "2024-01-20", "Marketing", "100"),
		expense(3, "A", "2024-02-05", "Aluguel", "300"),
		expense(4, "A", "2024-02-07", "Salários", "600"),
		txn(5, "A", "2024-02-08", domain.KindCost, "999"),
		expense(6, "B", "2024-01-05", "Aluguel", "50"),
		expense(7, "A", "2024-04-01", "Aluguel", "1"),
	}

	got := accounting.ComputeExpenseBreakdown(txns, domain.TransactionFilter{Company: "A", Period: period(t, "2024-01-01", "2024-03-31")})

	assert.Equal(t, "A", got.Company)
	assert.True(t, dec("1300").Equal(got.Total))
	require.Len(t, got.Items, 3)
	assert.Equal(t, "Aluguel", got.Items[0].Description)
	assert.True(t, dec("600").Equal(got.Items[0].Amount))
	assert.Equal(t, "Salários", got.Items[1].Description)
	assert.Equal(t, "Marketing", got.Items[2].Description)
	assert.True(t, dec("46.15").Equal(got.Items[0].Share), got.Items[0].Share.String())
	assert.True(t, dec("7.69").Equal(got.Items[2].Share), got.Items[2].Share.String())
}

func TestComputeExpenseBreakdown_NoExpensesIsEmpty(t *testing.T) {
	got := accounting.ComputeExpenseBreakdown(ledger(), domain.TransactionFilter{Company: "B"})

	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.True(t, got.Total.IsZero())
}

func TestCompareCompanies(t *testing.T) {
	got, err := accounting.CompareCompanies(ledger(), domain.TransactionFilter{Period: period(t, "2024-01-01", "2024-02-29")})
	require.NoError(t, err)

	require.Len(t, got.Companies, 2)
	assert.Equal(t, "A", got.Companies[0].Company)
	assertFigures(t, domain.NewDREFigures(dec("1500"), dec("400"), dec("100")), got.Companies[0].DREFigures)
	assert.Equal(t, "B", got.Companies[1].Company)
	assertFigures(t, domain.NewDREFigures(dec("9999.99"), decimal.Zero, decimal.Zero), got.Companies[1].DREFigures)
}

func TestCompareCompanies_TotalsMatchPerCompanyDRE(t *testing.T) {
	got, err := accounting.CompareCompanies(ledger(), domain.TransactionFilter{})
	require.NoError(t, err)

	for _, c := range got.Companies {
		report, err := accounting.ComputeDRE(ledger(), domain.TransactionFilter{Company: c.Company})
		require.NoError(t, err)
		assertFigures(t, report.Totals, c.DREFigures)
	}
}

func TestCompareCompanies_UnknownKindIsDataError(t *testing.T) {
	_, err := accounting.CompareCompanies([]domain.Transaction{txn(1, "A", "2024-01-01", "Lucro", "1")}, domain.TransactionFilter{})
	assert.ErrorIs(t, err, apperrors.ErrData)
}
