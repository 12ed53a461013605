package ratecard

import "context"

// Repository defines data access for rate cards.
type Repository interface {
	// Create persists a new rate card.
	Create(ctx context.Context, rc *RateCard) error

	// GetByID retrieves a rate card by UUID.
	GetByID(ctx context.Context, id string) (*RateCard, error)

	// GetActive returns the single ACTIVE rate card, or sql.ErrNoRows.
	GetActive(ctx context.Context) (*RateCard, error)

	// List returns all rate cards, newest first.
	List(ctx context.Context) ([]*RateCard, error)

	// Activate promotes a card to ACTIVE and retires the previous active
	// card atomically.
	Activate(ctx context.Context, id string) error

	// SetStatus updates a card's lifecycle status.
	SetStatus(ctx context.Context, id string, status Status) error
}
