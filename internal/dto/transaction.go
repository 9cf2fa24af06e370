package dto

import (
	"strings"

	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/Gabriel4210/DRE/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Company     string          `json:"company" binding:"required" example:"ACME Ltda"`
	Date        string          `json:"date" binding:"required,isodate" example:"2024-01-05"`
	Kind        string          `json:"kind" binding:"required,txkind" example:"Receita"`
	Description string          `json:"description" binding:"required" example:"Vendas"`
	Amount      decimal.Decimal `json:"amount" binding:"posdecimal" swaggertype:"string" example:"1000.00"`
}

// ToNewTransaction converts the request into the domain input. Kind must already be valid.
func (r CreateTransactionRequest) ToNewTransaction() domain.NewTransaction {
	kind, _ := domain.ParseTransactionKind(r.Kind)
	return domain.NewTransaction{
		Company:     strings.TrimSpace(r.Company),
		Date:        r.Date,
		Kind:        kind,
		Description: strings.TrimSpace(r.Description),
		Amount:      r.Amount,
	}
}

// ListTransactionsParams defines the query parameters shared by listing, export and reports.
type ListTransactionsParams struct {
	Company  string `form:"company"`
	FromDate string `form:"fromDate" binding:"omitempty,isodate"`
	ToDate   string `form:"toDate" binding:"omitempty,isodate"`
}

// ToFilter builds the domain filter. Both dates or neither must be given.
func (p ListTransactionsParams) ToFilter() (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{Company: strings.TrimSpace(p.Company)}
	if p.FromDate == "" && p.ToDate == "" {
		return filter, nil
	}
	period, err := domain.NewPeriod(p.FromDate, p.ToDate)
	if err != nil {
		return filter, err
	}
	filter.Period = period
	return filter, nil
}

// PageParams defines the optional paging of the transaction listing.
type PageParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	NextToken string `form:"nextToken"`
}

// Token returns the cursor, or nil for the first page.
func (p PageParams) Token() *string {
	if p.NextToken == "" {
		return nil
	}
	return &p.NextToken
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID              int64           `json:"id"`
	Company         string          `json:"company"`
	Date            string          `json:"date"`
	DateFormatted   string          `json:"dateFormatted"`
	Kind            string          `json:"kind"`
	KindLabel       string          `json:"kindLabel"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string"`
	AmountFormatted string          `json:"amountFormatted"`
}

// ListTransactionsResponse wraps a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListCompaniesResponse wraps the distinct company names.
type ListCompaniesResponse struct {
	Companies []string `json:"companies"`
}

// ImportTransactionsResponse reports the outcome of an import.
type ImportTransactionsResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              txn.ID,
		Company:         txn.Company,
		Date:            txn.Date,
		DateFormatted:   utils.FormatDateBR(txn.Date),
		Kind:            string(txn.Kind),
		KindLabel:       txn.Kind.Label(),
		Description:     txn.Description,
		Amount:          txn.Amount,
		AmountFormatted: utils.FormatCurrencyBRL(txn.Amount),
	}
}

// ToListTransactionsResponse converts a page of domain.Transaction to ListTransactionsResponse.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(txn)
	}
	return ListTransactionsResponse{Transactions: responses, Count: len(responses), NextToken: nextToken}
}

// ToImportTransactionsResponse converts a domain.ImportResult.
func ToImportTransactionsResponse(r domain.ImportResult) ImportTransactionsResponse {
	return ImportTransactionsResponse{Imported: r.Imported, Skipped: r.Skipped}
}
