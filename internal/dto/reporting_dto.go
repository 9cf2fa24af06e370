package dto

import (
	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/Gabriel4210/DRE/internal/utils"
	"github.com/shopspring/decimal"
)

// DREFiguresFormatted holds the figures rendered as Brazilian reais.
type DREFiguresFormatted struct {
	Revenue     string `json:"revenue"`
	Cost        string `json:"cost"`
	Expense     string `json:"expense"`
	GrossProfit string `json:"grossProfit"`
	NetProfit   string `json:"netProfit"`
}

// DREFiguresResponse represents the five income-statement lines
type DREFiguresResponse struct {
	Revenue     decimal.Decimal     `json:"revenue" swaggertype:"string"`
	Cost        decimal.Decimal     `json:"cost" swaggertype:"string"`
	Expense     decimal.Decimal     `json:"expense" swaggertype:"string"`
	GrossProfit decimal.Decimal     `json:"grossProfit" swaggertype:"string"`
	NetProfit   decimal.Decimal     `json:"netProfit" swaggertype:"string"`
	Formatted   DREFiguresFormatted `json:"formatted"`
}

// DRERowResponse represents one month of the DRE report
type DRERowResponse struct {
	Month string `json:"month"`
	DREFiguresResponse
}

// DREReportResponse represents the DRE report response
type DREReportResponse struct {
	Company  string             `json:"company,omitempty"`
	FromDate string             `json:"fromDate,omitempty"`
	ToDate   string             `json:"toDate,omitempty"`
	Months   []DRERowResponse   `json:"months"`
	Totals   DREFiguresResponse `json:"totals"`
}

// ToDREFiguresResponse converts domain figures, adding the formatted strings.
func ToDREFiguresResponse(f domain.DREFigures) DREFiguresResponse {
	return DREFiguresResponse{
		Revenue:     f.Revenue,
		Cost:        f.Cost,
		Expense:     f.Expense,
		GrossProfit: f.GrossProfit,
		NetProfit:   f.NetProfit,
		Formatted: DREFiguresFormatted{
			Revenue:     utils.FormatCurrencyBRL(f.Revenue),
			Cost:        utils.FormatCurrencyBRL(f.Cost),
			Expense:     utils.FormatCurrencyBRL(f.Expense),
			GrossProfit: utils.FormatCurrencyBRL(f.GrossProfit),
			NetProfit:   utils.FormatCurrencyBRL(f.NetProfit),
		},
	}
}

// ToDREReportResponse converts a domain DRE report to a DTO response
func ToDREReportResponse(report *domain.DREReport) DREReportResponse {
	response := DREReportResponse{
		Company: report.Company,
		Months:  make([]DRERowResponse, len(report.Months)),
		Totals:  ToDREFiguresResponse(report.Totals),
	}
	if report.Period != nil {
		response.FromDate, response.ToDate = report.Period.Bounds()
	}
	for i, row := range report.Months {
		response.Months[i] = DRERowResponse{
			Month:              row.Month,
			DREFiguresResponse: ToDREFiguresResponse(row.DREFigures),
		}
	}
	return response
}

// ExpenseItemResponse is the Despesa total of one description
type ExpenseItemResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Share       decimal.Decimal `json:"share" swaggertype:"string"`
	Formatted   string          `json:"formatted"`
}

// ExpenseBreakdownResponse represents the expense breakdown response
type ExpenseBreakdownResponse struct {
	Company        string                `json:"company,omitempty"`
	FromDate       string                `json:"fromDate,omitempty"`
	ToDate         string                `json:"toDate,omitempty"`
	Items          []ExpenseItemResponse `json:"items"`
	Total          decimal.Decimal       `json:"total" swaggertype:"string"`
	TotalFormatted string                `json:"totalFormatted"`
}

// CompanyTotalsResponse is the whole-period DRE of one company
type CompanyTotalsResponse struct {
	Company string `json:"company"`
	DREFiguresResponse
}

// CompanyComparisonResponse represents the company comparison response
type CompanyComparisonResponse struct {
	FromDate  string                  `json:"fromDate,omitempty"`
	ToDate    string                  `json:"toDate,omitempty"`
	Companies []CompanyTotalsResponse `json:"companies"`
}

// ToExpenseBreakdownResponse converts a domain expense breakdown to a DTO response
func ToExpenseBreakdownResponse(b *domain.ExpenseBreakdown) ExpenseBreakdownResponse {
	response := ExpenseBreakdownResponse{
		Company:        b.Company,
		Items:          make([]ExpenseItemResponse, len(b.Items)),
		Total:          b.Total,
		TotalFormatted: utils.FormatCurrencyBRL(b.Total),
	}
	if b.Period != nil {
		response.FromDate, response.ToDate = b.Period.Bounds()
	}
	for i, item := range b.Items {
		response.Items[i] = ExpenseItemResponse{
			Description: item.Description,
			Amount:      item.Amount,
			Share:       item.Share,
			Formatted:   utils.FormatCurrencyBRL(item.Amount),
		}
	}
	return response
}

// ToCompanyComparisonResponse converts a domain company comparison to a DTO response
func ToCompanyComparisonResponse(c *domain.CompanyComparison) CompanyComparisonResponse {
	response := CompanyComparisonResponse{
		Companies: make([]CompanyTotalsResponse, len(c.Companies)),
	}
	if c.Period != nil {
		response.FromDate, response.ToDate = c.Period.Bounds()
	}
	for i, ct := range c.Companies {
		response.Companies[i] = CompanyTotalsResponse{
			Company:            ct.Company,
			DREFiguresResponse: ToDREFiguresResponse(ct.DREFigures),
		}
	}
	return response
}
