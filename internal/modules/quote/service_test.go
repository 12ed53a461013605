package quote

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/printmate/backend/internal/pricing"
)

type stubRates struct {
	table pricing.RateTable
	id    *uuid.UUID
}

func (s stubRates) ActiveTable(ctx context.Context) (pricing.RateTable, *uuid.UUID) {
	return s.table, s.id
}

func TestQuoteOrder_UsesActiveTable(t *testing.T) {
	table := pricing.DefaultRateTable()
	table.BWPerPage = 4.00
	svc := NewService(stubRates{table: table})

	q, err := svc.QuoteOrder(context.Background(), QuoteRequest{
		Items: []pricing.LineItem{{
			ProductType:  pricing.ProductDocument,
			PageCount:    10,
			Copies:       1,
			ColorMode:    pricing.ColorBW,
			PaperQuality: pricing.PaperStandard,
		}},
		DeliveryType: pricing.DeliveryStandard,
	})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(q.Subtotal-40.00) > 1e-9 {
		t.Fatalf("subtotal = %v, want 40.00 from the active table rate", q.Subtotal)
	}
}

func TestQuoteOrder_SurfacesValidationError(t *testing.T) {
	svc := NewService(stubRates{table: pricing.DefaultRateTable()})
	_, err := svc.QuoteOrder(context.Background(), QuoteRequest{
		Items: []pricing.LineItem{{ProductType: pricing.ProductDocument, PageCount: 1, Copies: 0}},
	})
	var verr *pricing.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestQuoteItem_Preview(t *testing.T) {
	svc := NewService(stubRates{table: pricing.DefaultRateTable()})
	p, err := svc.QuoteItem(context.Background(), ItemQuoteRequest{
		Item: pricing.LineItem{
			ProductType:  pricing.ProductDocument,
			PageCount:    10,
			Copies:       5,
			ColorMode:    pricing.ColorBW,
			PaperQuality: pricing.PaperStandard,
			Binding:      pricing.BindingSpiral,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.LineTotal-345.00) > 1e-9 {
		t.Fatalf("line total = %v, want 345.00", p.LineTotal)
	}
}
