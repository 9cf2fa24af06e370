package accounting

import (
	"fmt"
	"sort"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/shopspring/decimal"
)

// kindSums accumulates the three category totals of a bucket.
type kindSums struct {
	revenue decimal.Decimal
	cost    decimal.Decimal
	expense decimal.Decimal
}

func (s *kindSums) add(txn domain.Transaction) error {
	switch txn.Kind {
	case domain.KindRevenue:
		s.revenue = s.revenue.Add(txn.Amount)
	case domain.KindCost:
		s.cost = s.cost.Add(txn.Amount)
	case domain.KindExpense:
		s.expense = s.expense.Add(txn.Amount)
	default:
		return apperrors.NewDataError("", 0, fmt.Sprintf("transaction %d has unknown kind %q", txn.ID, string(txn.Kind)), nil)
	}
	return nil
}

func (s kindSums) figures() domain.DREFigures {
	return domain.NewDREFigures(s.revenue, s.cost, s.expense)
}

// ComputeDRE builds the monthly income statement of the transactions that pass filter.
// This is used by the reporting service and the CLI so both produce the same numbers.
func ComputeDRE(txns []domain.Transaction, filter domain.TransactionFilter) (*domain.DREReport, error) {
	zero := kindSums{revenue: decimal.Zero, cost: decimal.Zero, expense: decimal.Zero}
	report := &domain.DREReport{
		Company: filter.Company,
		Period:  filter.Period,
		Months:  []domain.DRERow{},
		Totals:  zero.figures(),
	}

	retained := filter.Apply(txns)
	if len(retained) == 0 {
		return report, nil
	}

	byMonth := make(map[string]*kindSums)
	totals := zero
	for _, txn := range retained {
		month, err := domain.MonthKey(txn.Date)
		if err != nil {
			return nil, apperrors.NewDataError("", 0, fmt.Sprintf("transaction %d has unparseable date %q", txn.ID, txn.Date), err)
		}
		bucket, ok := byMonth[month]
		if !ok {
			b := zero
			bucket = &b
			byMonth[month] = bucket
		}
		if err := bucket.add(txn); err != nil {
			return nil, err
		}
		// add cannot fail here since the kind was accepted above
		_ = totals.add(txn)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	report.Months = make([]domain.DRERow, 0, len(months))
	for _, m := range months {
		report.Months = append(report.Months, domain.DRERow{Month: m, DREFigures: byMonth[m].figures()})
	}
	report.Totals = totals.figures()

	return report, nil
}

// SumRows returns the column-wise sum of the monthly rows of a report.
func SumRows(rows []domain.DRERow) domain.DREFigures {
	sum := domain.NewDREFigures(decimal.Zero, decimal.Zero, decimal.Zero)
	for _, r := range rows {
		sum = sum.Add(r.DREFigures)
	}
	return sum
}

var hundred = decimal.NewFromInt(100)

// ComputeExpenseBreakdown sums the Despesa transactions that pass filter per description.
// Items are ordered by amount, largest first, then by description.
func ComputeExpenseBreakdown(txns []domain.Transaction, filter domain.TransactionFilter) *domain.ExpenseBreakdown {
	byDescription := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, txn := range filter.Apply(txns) {
		if txn.Kind != domain.KindExpense {
			continue
		}
		byDescription[txn.Description] = byDescription[txn.Description].Add(txn.Amount)
		total = total.Add(txn.Amount)
	}

	items := make([]domain.ExpenseItem, 0, len(byDescription))
	for desc, amount := range byDescription {
		items = append(items, domain.ExpenseItem{
			Description: desc,
			Amount:      amount,
			Share:       amount.Mul(hundred).Div(total).Round(2),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if c := items[i].Amount.Cmp(items[j].Amount); c != 0 {
			return c > 0
		}
		return items[i].Description < items[j].Description
	})

	return &domain.ExpenseBreakdown{
		Company: filter.Company,
		Period:  filter.Period,
		Items:   items,
		Total:   total,
	}
}

// CompareCompanies computes the DRE totals of every company that has
// transactions in filter's period. filter.Company narrows the result to one company.
func CompareCompanies(txns []domain.Transaction, filter domain.TransactionFilter) (*domain.CompanyComparison, error) {
	byCompany := make(map[string][]domain.Transaction)
	for _, txn := range filter.Apply(txns) {
		byCompany[txn.Company] = append(byCompany[txn.Company], txn)
	}

	names := make([]string, 0, len(byCompany))
	for name := range byCompany {
		names = append(names, name)
	}
	sort.Strings(names)

	comparison := &domain.CompanyComparison{
		Period:    filter.Period,
		Companies: make([]domain.CompanyTotals, 0, len(names)),
	}
	for _, name := range names {
		report, err := ComputeDRE(byCompany[name], domain.TransactionFilter{Company: name, Period: filter.Period})
		if err != nil {
			return nil, err
		}
		comparison.Companies = append(comparison.Companies, domain.CompanyTotals{Company: name, DREFigures: report.Totals})
	}
	return comparison, nil
}
