package ratecard

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/printmate/backend/internal/pricing"
)

type stubRepo struct {
	cards  map[string]*RateCard
	active *RateCard
	fail   error
}

func newStubRepo() *stubRepo { return &stubRepo{cards: map[string]*RateCard{}} }

func (r *stubRepo) Create(ctx context.Context, rc *RateCard) error {
	if r.fail != nil {
		return r.fail
	}
	r.cards[rc.ID.String()] = rc
	return nil
}

func (r *stubRepo) GetByID(ctx context.Context, id string) (*RateCard, error) {
	rc, ok := r.cards[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rc, nil
}

func (r *stubRepo) GetActive(ctx context.Context) (*RateCard, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	if r.active == nil {
		return nil, sql.ErrNoRows
	}
	return r.active, nil
}

func (r *stubRepo) List(ctx context.Context) ([]*RateCard, error) { return nil, nil }

func (r *stubRepo) Activate(ctx context.Context, id string) error {
	rc, ok := r.cards[id]
	if !ok {
		return sql.ErrNoRows
	}
	if r.active != nil {
		r.active.Status = StatusRetired
	}
	rc.Status = StatusActive
	r.active = rc
	return nil
}

func (r *stubRepo) SetStatus(ctx context.Context, id string, status Status) error {
	if rc, ok := r.cards[id]; ok {
		rc.Status = status
	}
	return nil
}

func TestCreateRateCard_RejectsBrokenTable(t *testing.T) {
	svc := NewService(newStubRepo())
	table := pricing.DefaultRateTable()
	table.ColorPerPage = 0
	_, err := svc.CreateRateCard(context.Background(), CreateRateCardRequest{Name: "broken", Table: table})
	var cerr *pricing.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
}

func TestActivateRateCard_SingleActive(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.CreateRateCard(ctx, CreateRateCardRequest{Name: "v1", Table: pricing.DefaultRateTable()})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.CreateRateCard(ctx, CreateRateCardRequest{Name: "v2", Table: pricing.DefaultRateTable()})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ActivateRateCard(ctx, first.ID.String()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ActivateRateCard(ctx, second.ID.String()); err != nil {
		t.Fatal(err)
	}
	if first.Status != StatusRetired {
		t.Fatalf("previous active card should be retired, got %s", first.Status)
	}
	if repo.active != second {
		t.Fatal("second card should be the active one")
	}
}

func TestActiveTable_FallsBackToDefault(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	table, id := svc.ActiveTable(ctx)
	if id != nil {
		t.Fatalf("fallback should carry no rate card id, got %v", id)
	}
	if table.BWPerPage != pricing.DefaultRateTable().BWPerPage {
		t.Fatal("fallback should return the default table")
	}

	// Same behaviour when the store errors outright.
	repo.fail = errors.New("connection refused")
	if _, id := svc.ActiveTable(ctx); id != nil {
		t.Fatal("store failure should fall back to the default table")
	}
}

func TestActiveTable_ReturnsActiveCard(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	table := pricing.DefaultRateTable()
	table.BWPerPage = 3.50
	rc, err := svc.CreateRateCard(ctx, CreateRateCardRequest{Name: "v1", Table: table})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ActivateRateCard(ctx, rc.ID.String()); err != nil {
		t.Fatal(err)
	}

	got, id := svc.ActiveTable(ctx)
	if id == nil || *id != rc.ID {
		t.Fatalf("want active card id %s, got %v", rc.ID, id)
	}
	if got.BWPerPage != 3.50 {
		t.Fatalf("want active table rate 3.50, got %v", got.BWPerPage)
	}
}
