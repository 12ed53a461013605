package quote

import (
	"context"

	"github.com/google/uuid"

	"github.com/printmate/backend/internal/pricing"
)

// RateSource supplies the authoritative rate table for a pricing session.
// The returned UUID identifies the rate card used, nil when the built-in
// fallback table was served.
type RateSource interface {
	ActiveTable(ctx context.Context) (pricing.RateTable, *uuid.UUID)
}

// Service defines cart quoting business logic.
type Service interface {
	// QuoteOrder prices a whole cart against the current rate table.
	QuoteOrder(ctx context.Context, req QuoteRequest) (*pricing.OrderQuote, error)

	// QuoteItem previews one line item in isolation.
	QuoteItem(ctx context.Context, req ItemQuoteRequest) (*pricing.LineItemPricing, error)
}

type service struct {
	rates RateSource
}

// NewService creates a new quote service.
func NewService(rates RateSource) Service { return &service{rates: rates} }

func (s *service) QuoteOrder(ctx context.Context, req QuoteRequest) (*pricing.OrderQuote, error) {
	table, _ := s.rates.ActiveTable(ctx)
	q, err := pricing.PriceOrder(table, req.Items, req.DeliveryType)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *service) QuoteItem(ctx context.Context, req ItemQuoteRequest) (*pricing.LineItemPricing, error) {
	table, _ := s.rates.ActiveTable(ctx)
	p, err := pricing.PriceLineItem(table, req.Item)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
