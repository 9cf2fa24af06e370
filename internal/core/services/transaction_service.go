package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/Gabriel4210/DRE/internal/adapters/csvledger"
	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	portsrepo "github.com/Gabriel4210/DRE/internal/core/ports/repositories"
	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
	"github.com/Gabriel4210/DRE/internal/utils/pagination"
)

type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: repo}
}

func (s *transactionService) AddTransaction(ctx context.Context, txn domain.NewTransaction) (*domain.Transaction, error) {
	txn = txn.Normalized()
	id, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("company", txn.Company),
			slog.String("date", txn.Date),
			slog.String("kind", string(txn.Kind)))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	saved := txn.WithID(id)
	s.LogInfo(ctx, "Transaction saved",
		slog.Int64("transaction_id", id),
		slog.String("company", saved.Company),
		slog.String("kind", string(saved.Kind)))
	return &saved, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("company", filter.Company))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	sortByDateAndID(txns)
	s.LogDebug(ctx, "Transactions listed", slog.Int("count", len(txns)))
	return txns, nil
}

func (s *transactionService) ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var (
		afterDate string
		afterID   int64
	)
	if nextToken != nil && *nextToken != "" {
		var err error
		afterDate, afterID, err = pagination.DecodeTransactionToken(*nextToken)
		if err != nil {
			s.LogWarn(ctx, "Invalid pagination token", slog.String("error", err.Error()))
			return nil, nil, apperrors.NewValidationError("nextToken", "invalid pagination token")
		}
	}

	txns, err := s.ListTransactions(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if afterDate != "" {
		start := sort.Search(len(txns), func(i int) bool {
			return txns[i].Date > afterDate || (txns[i].Date == afterDate && txns[i].ID > afterID)
		})
		txns = txns[start:]
	}

	if limit <= 0 || len(txns) <= limit {
		return txns, nil, nil
	}

	page := txns[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeTransactionToken(last.Date, last.ID)
	return page, &token, nil
}

func (s *transactionService) ListCompanies(ctx context.Context) ([]string, error) {
	companies, err := s.txnRepo.ListCompanies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies")
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (s *transactionService) ImportTransactions(ctx context.Context, r io.Reader) (domain.ImportResult, error) {
	txns, err := csvledger.ReadImport(r)
	if err != nil {
		s.LogError(ctx, err, "Rejected import file")
		return domain.ImportResult{}, fmt.Errorf("failed to read import file: %w", err)
	}

	result, err := s.txnRepo.ImportTransactions(ctx, txns)
	if err != nil {
		s.LogError(ctx, err, "Failed to import transactions", slog.Int("records", len(txns)))
		return domain.ImportResult{}, fmt.Errorf("failed to import transactions: %w", err)
	}

	s.LogInfo(ctx, "Transactions imported",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

func (s *transactionService) ExportTransactions(ctx context.Context, w io.Writer, filter domain.TransactionFilter) (int, error) {
	txns, err := s.txnRepo.FindTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for export")
		return 0, fmt.Errorf("failed to load transactions: %w", err)
	}
	if err := csvledger.Write(w, txns); err != nil {
		return 0, fmt.Errorf("failed to export transactions: %w", err)
	}
	s.LogInfo(ctx, "Transactions exported", slog.Int("count", len(txns)))
	return len(txns), nil
}

// sortByDateAndID orders by date, then by id for records sharing a date.
func sortByDateAndID(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if txns[i].Date != txns[j].Date {
			return txns[i].Date < txns[j].Date
		}
		return txns[i].ID < txns[j].ID
	})
}
