package inventory

import (
	"context"

	"github.com/printmate/backend/internal/pricing"
)

// Repository defines data access for paper stock.
type Repository interface {
	// Create registers a new paper quality.
	Create(ctx context.Context, ps *PaperStock) error

	// GetByQuality retrieves the stock row for a paper quality.
	GetByQuality(ctx context.Context, quality pricing.PaperQuality) (*PaperStock, error)

	// List returns all stock rows.
	List(ctx context.Context) ([]*PaperStock, error)

	// AdjustSheets applies a signed delta atomically; it fails when the
	// delta would take the count below zero.
	AdjustSheets(ctx context.Context, quality pricing.PaperQuality, delta int) error
}
