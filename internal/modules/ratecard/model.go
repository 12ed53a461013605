package ratecard

import (
	"time"

	"github.com/google/uuid"

	"github.com/printmate/backend/internal/pricing"
)

// Status represents the lifecycle state of a rate card.
type Status string

const (
	StatusDraft   Status = "DRAFT"
	StatusActive  Status = "ACTIVE"
	StatusRetired Status = "RETIRED"
)

// RateCard is a versioned snapshot of the shop's pricing policy. At most one
// card is ACTIVE at any instant; activating a card retires the previous one
// in the same transaction.
type RateCard struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Status        Status            `json:"status"`
	Table         pricing.RateTable `json:"table"`
	EffectiveFrom time.Time         `json:"effective_from"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreateRateCardRequest is the payload for creating a new draft rate card.
type CreateRateCardRequest struct {
	Name          string            `json:"name"`
	Table         pricing.RateTable `json:"table"`
	EffectiveFrom *time.Time        `json:"effective_from,omitempty"`
}
