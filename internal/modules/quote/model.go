package quote

import "github.com/printmate/backend/internal/pricing"

// QuoteRequest is the payload for pricing a whole cart. Quotes are ephemeral:
// nothing here is persisted, the cart reprices in full on every edit.
type QuoteRequest struct {
	Items        []pricing.LineItem   `json:"items"`
	DeliveryType pricing.DeliveryType `json:"delivery_type"`
}

// ItemQuoteRequest is the payload for previewing a single line item.
type ItemQuoteRequest struct {
	Item pricing.LineItem `json:"item"`
}
