package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/printmate/backend/internal/pricing"
)

// Service defines paper stock business logic.
type Service interface {
	// CreateStock registers a paper quality with an opening sheet count.
	CreateStock(ctx context.Context, req CreateStockRequest) (*PaperStock, error)

	// GetStock retrieves the stock row for a paper quality.
	GetStock(ctx context.Context, quality string) (*PaperStock, error)

	// ListStock returns all paper stock rows.
	ListStock(ctx context.Context) ([]*PaperStock, error)

	// ListLowStock returns qualities at or below their reorder level.
	ListLowStock(ctx context.Context) ([]*PaperStock, error)

	// AdjustStock applies a signed delta (restock or correction).
	AdjustStock(ctx context.Context, quality string, req AdjustStockRequest) (*PaperStock, error)

	// Consume decrements sheets for a placed order. Satisfies the order
	// module's StockConsumer.
	Consume(ctx context.Context, quality pricing.PaperQuality, sheets int) error
}

type service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateStock(ctx context.Context, req CreateStockRequest) (*PaperStock, error) {
	if req.PaperQuality == "" {
		return nil, fmt.Errorf("paper_quality is required")
	}
	if req.SheetsOnHand < 0 || req.ReorderLevel < 0 {
		return nil, fmt.Errorf("sheet counts must be >= 0")
	}
	ps := &PaperStock{
		ID:           uuid.New(),
		PaperQuality: pricing.PaperQuality(strings.ToUpper(req.PaperQuality)),
		SheetsOnHand: req.SheetsOnHand,
		ReorderLevel: req.ReorderLevel,
	}
	if err := s.repo.Create(ctx, ps); err != nil {
		return nil, fmt.Errorf("failed to persist paper stock: %w", err)
	}
	return ps, nil
}

func (s *service) GetStock(ctx context.Context, quality string) (*PaperStock, error) {
	return s.repo.GetByQuality(ctx, pricing.PaperQuality(strings.ToUpper(quality)))
}

func (s *service) ListStock(ctx context.Context) ([]*PaperStock, error) {
	return s.repo.List(ctx)
}

func (s *service) ListLowStock(ctx context.Context) ([]*PaperStock, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var low []*PaperStock
	for _, ps := range all {
		if ps.SheetsOnHand <= ps.ReorderLevel {
			low = append(low, ps)
		}
	}
	return low, nil
}

func (s *service) AdjustStock(ctx context.Context, quality string, req AdjustStockRequest) (*PaperStock, error) {
	q := pricing.PaperQuality(strings.ToUpper(quality))
	if err := s.repo.AdjustSheets(ctx, q, req.Delta); err != nil {
		return nil, err
	}
	return s.repo.GetByQuality(ctx, q)
}

func (s *service) Consume(ctx context.Context, quality pricing.PaperQuality, sheets int) error {
	if sheets <= 0 {
		return nil
	}
	return s.repo.AdjustSheets(ctx, quality, -sheets)
}
