package services

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// ReportingService defines operations for generating fee reports
type ReportingService interface {
	// Summary aggregates a period's ledger records into dashboard totals.
	Summary(ctx context.Context, schoolID string, params dto.SummaryParams, userID string) (*domain.FeeSummary, error)

	// Defaulters lists students with an outstanding balance for a period.
	Defaulters(ctx context.Context, schoolID string, params dto.DefaultersParams, userID string) ([]dto.DefaulterResponse, error)

	// ExportRows flattens a period's ledger records for CSV export.
	ExportRows(ctx context.Context, schoolID string, params dto.ExportParams, userID string) ([]domain.ExportRow, error)
}
