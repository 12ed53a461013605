package order

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/printmate/backend/internal/pricing"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending      OrderStatus = "PENDING"
	StatusConfirmed    OrderStatus = "CONFIRMED"
	StatusInProduction OrderStatus = "IN_PRODUCTION"
	StatusReady        OrderStatus = "READY"
	StatusDelivered    OrderStatus = "DELIVERED"
	StatusCancelled    OrderStatus = "CANCELLED"
)

// OrderChannel indicates how the order was placed.
type OrderChannel string

const (
	ChannelOnline OrderChannel = "ONLINE"
	ChannelWalkIn OrderChannel = "WALK_IN"
)

// Order is a frozen, fully-priced print order. Totals are computed
// server-side from the rate card that was active at placement time; the full
// breakdown is stored so the order stays auditable after the card changes.
type Order struct {
	ID              uuid.UUID            `json:"id"`
	CustomerID      *uuid.UUID           `json:"customer_id,omitempty"` // nil for walk-in orders
	OrderNumber     string               `json:"order_number"`
	Status          OrderStatus          `json:"status"`
	Channel         OrderChannel         `json:"channel"`
	RateCardID      *uuid.UUID           `json:"rate_card_id,omitempty"` // nil when the fallback table priced it
	DeliveryType    pricing.DeliveryType `json:"delivery_type"`
	TotalPages      int                  `json:"total_pages"`
	Subtotal        float64              `json:"subtotal"`
	DiscountPercent float64              `json:"discount_percent"`
	DiscountAmount  float64              `json:"discount_amount"`
	TaxAmount       float64              `json:"tax_amount"`
	DeliveryCharge  float64              `json:"delivery_charge"`
	GrandTotal      float64              `json:"grand_total"`
	Currency        string               `json:"currency"`
	Notes           string               `json:"notes,omitempty"`
	DeliveryAddress json.RawMessage      `json:"delivery_address,omitempty"`
	Items           []*OrderItem         `json:"items,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// OrderItem freezes one print-job configuration together with its pricing
// breakdown. Line totals are undiscounted; the order-level bulk discount
// lives on the order record.
type OrderItem struct {
	ID            uuid.UUID            `json:"id"`
	OrderID       uuid.UUID            `json:"order_id"`
	DocumentID    *uuid.UUID           `json:"document_id,omitempty"`
	ProductType   pricing.ProductType  `json:"product_type"`
	PageCount     int                  `json:"page_count"`
	Copies        int                  `json:"copies"`
	ColorMode     pricing.ColorMode    `json:"color_mode"`
	PaperQuality  pricing.PaperQuality `json:"paper_quality"`
	Binding       pricing.BindingType  `json:"binding"`
	Cover         pricing.CoverType    `json:"cover"`
	CardTier      pricing.CardTier     `json:"card_tier,omitempty"`
	CardUnits     int                  `json:"card_units,omitempty"`
	BrochureSize  pricing.BrochureSize `json:"brochure_size,omitempty"`
	EffectiveRate float64              `json:"effective_rate"`
	PrintSubtotal float64              `json:"print_subtotal"`
	BindingCost   float64              `json:"binding_cost"`
	CoverCost     float64              `json:"cover_cost"`
	LineTotal     float64              `json:"line_total"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// CartItem is a transient struct used during checkout to describe one print
// job. The client never supplies prices; everything is repriced server-side.
type CartItem struct {
	pricing.LineItem
	DocumentID string `json:"document_id,omitempty"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	CustomerID      string          `json:"customer_id,omitempty"` // optional for walk-in
	Channel         string          `json:"channel,omitempty"`
	Items           []CartItem      `json:"items"`
	DeliveryType    string          `json:"delivery_type"`
	Notes           string          `json:"notes,omitempty"`
	DeliveryAddress json.RawMessage `json:"delivery_address,omitempty"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
