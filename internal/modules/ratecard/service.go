package ratecard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/printmate/backend/internal/pricing"
)

// Service defines rate card business logic.
type Service interface {
	// CreateRateCard validates and persists a new DRAFT rate card.
	CreateRateCard(ctx context.Context, req CreateRateCardRequest) (*RateCard, error)

	// GetRateCard retrieves a rate card by UUID.
	GetRateCard(ctx context.Context, id string) (*RateCard, error)

	// ListRateCards returns all rate cards, newest first.
	ListRateCards(ctx context.Context) ([]*RateCard, error)

	// ActivateRateCard makes the given card the single authoritative policy.
	ActivateRateCard(ctx context.Context, id string) (*RateCard, error)

	// RetireRateCard takes a card out of rotation.
	RetireRateCard(ctx context.Context, id string) error

	// ActiveTable returns the table of the active card, or the built-in
	// default table when none is active or the store is unreachable. The
	// returned UUID is nil when the fallback was used.
	ActiveTable(ctx context.Context) (pricing.RateTable, *uuid.UUID)
}

type service struct {
	repo Repository
}

// NewService creates a new rate card service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateRateCard(ctx context.Context, req CreateRateCardRequest) (*RateCard, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := req.Table.Validate(); err != nil {
		return nil, err
	}
	effective := time.Now()
	if req.EffectiveFrom != nil {
		effective = *req.EffectiveFrom
	}
	rc := &RateCard{
		ID:            uuid.New(),
		Name:          req.Name,
		Status:        StatusDraft,
		Table:         req.Table,
		EffectiveFrom: effective,
	}
	if err := s.repo.Create(ctx, rc); err != nil {
		return nil, fmt.Errorf("failed to persist rate card: %w", err)
	}
	return rc, nil
}

func (s *service) GetRateCard(ctx context.Context, id string) (*RateCard, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRateCards(ctx context.Context) ([]*RateCard, error) {
	return s.repo.List(ctx)
}

func (s *service) ActivateRateCard(ctx context.Context, id string) (*RateCard, error) {
	rc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("rate card not found: %w", err)
	}
	// Never let a structurally broken table become authoritative, even if it
	// slipped into storage.
	if err := rc.Table.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Activate(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to activate rate card: %w", err)
	}
	rc.Status = StatusActive
	return rc, nil
}

func (s *service) RetireRateCard(ctx context.Context, id string) error {
	rc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("rate card not found: %w", err)
	}
	if rc.Status == StatusRetired {
		return nil
	}
	return s.repo.SetStatus(ctx, id, StatusRetired)
}

// ActiveTable never fails: pricing degrades to the default table instead of
// blocking the cart when no card is active or the store errors.
func (s *service) ActiveTable(ctx context.Context) (pricing.RateTable, *uuid.UUID) {
	rc, err := s.repo.GetActive(ctx)
	if err != nil {
		return pricing.DefaultRateTable(), nil
	}
	if err := rc.Table.Validate(); err != nil {
		log.Printf("active rate card %s failed validation, using default table: %v", rc.ID, err)
		return pricing.DefaultRateTable(), nil
	}
	id := rc.ID
	return rc.Table, &id
}
