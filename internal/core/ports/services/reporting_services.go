package services

import (
	"context"
	"io"

	"github.com/Gabriel4210/DRE/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// DRE computes the monthly income statement of the transactions that pass filter.
	DRE(ctx context.Context, filter domain.TransactionFilter) (*domain.DREReport, error)

	// ExportDRE writes the monthly DRE of one company and period as CSV and returns the
	// file name it should be saved under. Company and period are required.
	ExportDRE(ctx context.Context, w io.Writer, filter domain.TransactionFilter) (string, error)

	// ExpenseBreakdown sums the Despesa amounts per description.
	ExpenseBreakdown(ctx context.Context, filter domain.TransactionFilter) (*domain.ExpenseBreakdown, error)

	// CompareCompanies returns the DRE totals of every company over filter's period.
	CompareCompanies(ctx context.Context, filter domain.TransactionFilter) (*domain.CompanyComparison, error)
}
