package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Gabriel4210/DRE/internal/adapters/csvledger"
	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	portsrepo "github.com/Gabriel4210/DRE/internal/core/ports/repositories"
	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
	"github.com/Gabriel4210/DRE/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	txnRepo portsrepo.TransactionReader
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.TransactionReader) portssvc.ReportingService {
	return &reportingService{txnRepo: repo}
}

// DRE loads the filtered transactions and aggregates them into a monthly income statement.
func (s *reportingService) DRE(ctx context.Context, filter domain.TransactionFilter) (*domain.DREReport, error) {
	filter = filter.Normalized()
	txns, err := s.txnRepo.FindTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for DRE",
			slog.String("company", filter.Company))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	// Re-applying the filter is idempotent and stamps company and period on the report.
	report, err := accounting.ComputeDRE(txns, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute DRE", slog.String("company", filter.Company))
		return nil, fmt.Errorf("failed to compute DRE: %w", err)
	}

	s.LogInfo(ctx, "DRE report generated",
		slog.String("company", filter.Company),
		slog.Int("month_count", len(report.Months)),
		slog.String("net_profit", report.Totals.NetProfit.String()))
	return report, nil
}

// ExportDRE writes the monthly DRE as CSV and returns its download name.
func (s *reportingService) ExportDRE(ctx context.Context, w io.Writer, filter domain.TransactionFilter) (string, error) {
	filter = filter.Normalized()
	if filter.Company == "" {
		return "", apperrors.NewValidationError("empresa", "is required for a DRE export")
	}
	if filter.Period == nil {
		return "", apperrors.NewValidationError("periodo", "from and to are required for a DRE export")
	}

	report, err := s.DRE(ctx, filter)
	if err != nil {
		return "", err
	}
	if err := csvledger.WriteDRE(w, report); err != nil {
		s.LogError(ctx, err, "Failed to write DRE export", slog.String("company", filter.Company))
		return "", fmt.Errorf("failed to export DRE: %w", err)
	}

	name := csvledger.DREFileName(filter.Company, *filter.Period)
	s.LogInfo(ctx, "DRE exported", slog.String("file_name", name), slog.Int("month_count", len(report.Months)))
	return name, nil
}

// ExpenseBreakdown groups the Despesa transactions that pass filter by description.
func (s *reportingService) ExpenseBreakdown(ctx context.Context, filter domain.TransactionFilter) (*domain.ExpenseBreakdown, error) {
	filter = filter.Normalized()
	txns, err := s.txnRepo.FindTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for expense breakdown",
			slog.String("company", filter.Company))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	breakdown := accounting.ComputeExpenseBreakdown(txns, filter)
	s.LogInfo(ctx, "Expense breakdown generated",
		slog.String("company", filter.Company),
		slog.Int("item_count", len(breakdown.Items)),
		slog.String("total", breakdown.Total.String()))
	return breakdown, nil
}

// CompareCompanies computes the DRE totals of each company in the period.
func (s *reportingService) CompareCompanies(ctx context.Context, filter domain.TransactionFilter) (*domain.CompanyComparison, error) {
	filter = filter.Normalized()
	txns, err := s.txnRepo.FindTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for company comparison")
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	comparison, err := accounting.CompareCompanies(txns, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to compare companies")
		return nil, fmt.Errorf("failed to compare companies: %w", err)
	}

	s.LogInfo(ctx, "Company comparison generated", slog.Int("company_count", len(comparison.Companies)))
	return comparison, nil
}
