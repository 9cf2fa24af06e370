package repositories

import (
	"context"

	"github.com/Gabriel4210/DRE/internal/core/domain"
)

// TransactionReader defines read operations for the transaction log
type TransactionReader interface {
	// FindTransactions returns the transactions that pass filter, in insertion order.
	// An empty store yields an empty, non-nil slice. Malformed persisted data yields a DataError.
	FindTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// ListCompanies returns the distinct company names, sorted.
	ListCompanies(ctx context.Context) ([]string, error)
}

// TransactionWriter defines write operations for the transaction log
type TransactionWriter interface {
	// SaveTransaction validates and appends a transaction, returning the id assigned to it.
	SaveTransaction(ctx context.Context, txn domain.NewTransaction) (int64, error)

	// ImportTransactions appends records keeping their ids. Records whose id is already
	// present, in the store or earlier in the batch, are skipped. Records with a zero id
	// are given a fresh one. The batch is written at once or not at all.
	ImportTransactions(ctx context.Context, txns []domain.Transaction) (domain.ImportResult, error)
}

// TransactionStoreInitializer prepares the backing store
type TransactionStoreInitializer interface {
	// Initialize creates the store with its schema if absent and leaves existing data untouched.
	Initialize(ctx context.Context) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionStoreInitializer
	TransactionReader
	TransactionWriter
}
