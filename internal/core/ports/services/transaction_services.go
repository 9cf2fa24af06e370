package services

import (
	"context"
	"io"

	"github.com/Gabriel4210/DRE/internal/core/domain"
)

// TransactionReaderSvc defines read operations on the transaction log
type TransactionReaderSvc interface {
	// ListTransactions returns the transactions that pass filter, ordered by date for display.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// ListTransactionsPage returns at most limit transactions after the cursor in nextToken,
	// plus the cursor of the next page (nil on the last page). limit <= 0 returns everything.
	ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListCompanies returns the distinct company names, sorted.
	ListCompanies(ctx context.Context) ([]string, error)
}

// TransactionWriterSvc defines write operations on the transaction log
type TransactionWriterSvc interface {
	// AddTransaction validates and persists a new transaction.
	AddTransaction(ctx context.Context, txn domain.NewTransaction) (*domain.Transaction, error)

	// ImportTransactions reads a CSV file and appends its records, skipping ids already stored.
	ImportTransactions(ctx context.Context, r io.Reader) (domain.ImportResult, error)
}

// TransactionExporterSvc defines export operations on the transaction log
type TransactionExporterSvc interface {
	// ExportTransactions writes the matching transactions as CSV, header first. It returns the row count.
	ExportTransactions(ctx context.Context, w io.Writer, filter domain.TransactionFilter) (int, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionExporterSvc
}
