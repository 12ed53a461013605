package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/printmate/backend/internal/pricing"
)

type stubRepo struct {
	stocks map[pricing.PaperQuality]*PaperStock
}

func newStubRepo() *stubRepo { return &stubRepo{stocks: map[pricing.PaperQuality]*PaperStock{}} }

func (r *stubRepo) Create(ctx context.Context, ps *PaperStock) error {
	r.stocks[ps.PaperQuality] = ps
	return nil
}

func (r *stubRepo) GetByQuality(ctx context.Context, q pricing.PaperQuality) (*PaperStock, error) {
	ps, ok := r.stocks[q]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return ps, nil
}

func (r *stubRepo) List(ctx context.Context) ([]*PaperStock, error) {
	var out []*PaperStock
	for _, ps := range r.stocks {
		out = append(out, ps)
	}
	return out, nil
}

func (r *stubRepo) AdjustSheets(ctx context.Context, q pricing.PaperQuality, delta int) error {
	ps, ok := r.stocks[q]
	if !ok || ps.SheetsOnHand+delta < 0 {
		return fmt.Errorf("insufficient stock for %s (delta %d)", q, delta)
	}
	ps.SheetsOnHand += delta
	return nil
}

func TestConsume_DecrementsSheets(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.CreateStock(ctx, CreateStockRequest{PaperQuality: "standard", SheetsOnHand: 100}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Consume(ctx, pricing.PaperStandard, 60); err != nil {
		t.Fatal(err)
	}
	ps, err := svc.GetStock(ctx, "STANDARD")
	if err != nil {
		t.Fatal(err)
	}
	if ps.SheetsOnHand != 40 {
		t.Fatalf("sheets on hand = %d, want 40", ps.SheetsOnHand)
	}
}

func TestConsume_RejectsOverdraw(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.CreateStock(ctx, CreateStockRequest{PaperQuality: "glossy", SheetsOnHand: 10}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Consume(ctx, pricing.PaperGlossy, 11); err == nil {
		t.Fatal("consuming more sheets than on hand must fail")
	}
}

func TestListLowStock(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.CreateStock(ctx, CreateStockRequest{PaperQuality: "standard", SheetsOnHand: 500, ReorderLevel: 100}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateStock(ctx, CreateStockRequest{PaperQuality: "premium", SheetsOnHand: 50, ReorderLevel: 100}); err != nil {
		t.Fatal(err)
	}

	low, err := svc.ListLowStock(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(low) != 1 || low[0].PaperQuality != pricing.PaperPremium {
		t.Fatalf("low stock = %+v, want only PREMIUM", low)
	}
}
