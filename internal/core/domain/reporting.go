package domain

import (
	"github.com/shopspring/decimal"
)

// DREFigures holds the five income-statement lines.
type DREFigures struct {
	Revenue     decimal.Decimal `json:"revenue"`
	Cost        decimal.Decimal `json:"cost"`
	Expense     decimal.Decimal `json:"expense"`
	GrossProfit decimal.Decimal `json:"grossProfit"` // Revenue - Cost
	NetProfit   decimal.Decimal `json:"netProfit"`   // GrossProfit - Expense
}

// NewDREFigures derives gross and net profit from the three category sums.
func NewDREFigures(revenue, cost, expense decimal.Decimal) DREFigures {
	gross := revenue.Sub(cost)
	return DREFigures{
		Revenue:     revenue,
		Cost:        cost,
		Expense:     expense,
		GrossProfit: gross,
		NetProfit:   gross.Sub(expense),
	}
}

// Add returns the column-wise sum of f and o.
func (f DREFigures) Add(o DREFigures) DREFigures {
	return DREFigures{
		Revenue:     f.Revenue.Add(o.Revenue),
		Cost:        f.Cost.Add(o.Cost),
		Expense:     f.Expense.Add(o.Expense),
		GrossProfit: f.GrossProfit.Add(o.GrossProfit),
		NetProfit:   f.NetProfit.Add(o.NetProfit),
	}
}

// Equal compares figures numerically, ignoring decimal scale.
func (f DREFigures) Equal(o DREFigures) bool {
	return f.Revenue.Equal(o.Revenue) &&
		f.Cost.Equal(o.Cost) &&
		f.Expense.Equal(o.Expense) &&
		f.GrossProfit.Equal(o.GrossProfit) &&
		f.NetProfit.Equal(o.NetProfit)
}

// DRERow is the statement of one calendar month.
type DRERow struct {
	Month string `json:"month"` // YYYY-MM
	DREFigures
}

// DREReport is the income statement for a company over a period, broken out by month.
// It is derived on every query and never persisted.
type DREReport struct {
	Company string     `json:"company,omitempty"`
	Period  *Period    `json:"period,omitempty"`
	Months  []DRERow   `json:"months"` // ascending by Month
	Totals  DREFigures `json:"totals"`
}

// ExpenseItem is the Despesa total of one description.
type ExpenseItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Share       decimal.Decimal `json:"share"` // percent of the breakdown total, two places
}

// ExpenseBreakdown splits the Despesa total of a company and period by description.
type ExpenseBreakdown struct {
	Company string          `json:"company,omitempty"`
	Period  *Period         `json:"period,omitempty"`
	Items   []ExpenseItem   `json:"items"` // largest amount first
	Total   decimal.Decimal `json:"total"`
}

// CompanyTotals is the whole-period statement of one company.
type CompanyTotals struct {
	Company string `json:"company"`
	DREFigures
}

// CompanyComparison lines up the DRE totals of every company over one period.
type CompanyComparison struct {
	Period    *Period         `json:"period,omitempty"`
	Companies []CompanyTotals `json:"companies"` // ascending by Company
}
