package services

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// GenerationSvcFacade defines the bulk fee generation operations. Preview and
// Generate take the same request; only Generate persists anything.
type GenerationSvcFacade interface {
	// PreviewGeneration reports what a generation run would create without
	// writing any records.
	PreviewGeneration(ctx context.Context, schoolID string, req dto.GenerationRequest, requestingUserID string) (*dto.GenerationPreviewResponse, error)

	// Generate creates ledger records for all eligible students. Students that
	// already have a record for the target key are skipped, making reruns safe.
	Generate(ctx context.Context, schoolID string, req dto.GenerationRequest, requestingUserID string) (*dto.GenerationResultResponse, error)
}
