package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/printmate/backend/internal/pricing"
)

// PaperStock tracks the sheets on hand for one paper quality.
type PaperStock struct {
	ID           uuid.UUID            `json:"id"`
	PaperQuality pricing.PaperQuality `json:"paper_quality"`
	SheetsOnHand int                  `json:"sheets_on_hand"`
	ReorderLevel int                  `json:"reorder_level"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// CreateStockRequest holds data for registering a paper quality.
type CreateStockRequest struct {
	PaperQuality string `json:"paper_quality"`
	SheetsOnHand int    `json:"sheets_on_hand"`
	ReorderLevel int    `json:"reorder_level"`
}

// AdjustStockRequest holds a signed sheet delta (restock or correction).
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}
