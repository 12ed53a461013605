package order

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/printmate/backend/internal/pricing"
)

// RateSource supplies the authoritative rate table for a pricing session.
type RateSource interface {
	ActiveTable(ctx context.Context) (pricing.RateTable, *uuid.UUID)
}

// StockConsumer decrements paper stock when an order is placed.
type StockConsumer interface {
	Consume(ctx context.Context, quality pricing.PaperQuality, sheets int) error
}

// Service defines the order management business logic.
type Service interface {
	// PlaceOrder reprices the cart against the active rate card, persists
	// the frozen order atomically, and decrements paper stock.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	// GetOrder retrieves a full order with its items by UUID.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// GetOrderByNumber retrieves an order by its human-readable number.
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)

	// ListOrders returns all orders, optionally filtered by status.
	ListOrders(ctx context.Context, status string) ([]*Order, error)

	// ListCustomerOrders returns all orders placed by a customer.
	ListCustomerOrders(ctx context.Context, customerID string) ([]*Order, error)

	// UpdateStatus advances an order to a new lifecycle status.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// CancelOrder cancels a PENDING or CONFIRMED order.
	CancelOrder(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	rates RateSource
	stock StockConsumer
}

// NewService creates a new order service.
func NewService(repo Repository, rates RateSource, stock StockConsumer) Service {
	return &service{repo: repo, rates: rates, stock: stock}
}

// validTransitions defines the allowed status state machine.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:      {StatusConfirmed, StatusCancelled},
	StatusConfirmed:    {StatusInProduction, StatusCancelled},
	StatusInProduction: {StatusReady},
	StatusReady:        {StatusDelivered},
	StatusDelivered:    {},
	StatusCancelled:    {},
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	channel := OrderChannel(strings.ToUpper(req.Channel))
	if channel == "" {
		channel = ChannelOnline
	}
	delivery := pricing.DeliveryType(strings.ToUpper(req.DeliveryType))
	if delivery == "" {
		delivery = pricing.DeliveryStandard
	}

	// ── Reprice the whole cart against the active rate card ───────────────────
	lineItems := make([]pricing.LineItem, len(req.Items))
	for i, ci := range req.Items {
		lineItems[i] = ci.LineItem
	}
	table, rateCardID := s.rates.ActiveTable(ctx)
	quote, err := pricing.PriceOrder(table, lineItems, delivery)
	if err != nil {
		return nil, err
	}

	// ── Freeze the quote into an immutable order ──────────────────────────────
	o := &Order{
		ID:              uuid.New(),
		OrderNumber:     generateOrderNumber(),
		Status:          StatusPending,
		Channel:         channel,
		RateCardID:      rateCardID,
		DeliveryType:    delivery,
		TotalPages:      quote.TotalPages,
		Subtotal:        quote.Subtotal,
		DiscountPercent: quote.DiscountPercent,
		DiscountAmount:  quote.DiscountAmount,
		TaxAmount:       quote.TaxAmount,
		DeliveryCharge:  quote.DeliveryCharge,
		GrandTotal:      quote.GrandTotal,
		Currency:        quote.Currency,
		Notes:           req.Notes,
		DeliveryAddress: req.DeliveryAddress,
	}

	for i, ci := range req.Items {
		p := quote.Items[i]
		item := &OrderItem{
			ID:            uuid.New(),
			ProductType:   p.ProductType,
			PageCount:     ci.PageCount,
			Copies:        ci.Copies,
			ColorMode:     ci.ColorMode,
			PaperQuality:  ci.PaperQuality,
			Binding:       ci.Binding,
			Cover:         ci.Cover,
			CardTier:      ci.CardTier,
			CardUnits:     ci.CardUnits,
			BrochureSize:  ci.BrochureSize,
			EffectiveRate: p.EffectiveRatePerPage,
			PrintSubtotal: p.PrintSubtotal,
			BindingCost:   p.BindingCost,
			CoverCost:     p.CoverCost,
			LineTotal:     p.LineTotal,
		}
		if ci.DocumentID != "" {
			did, err := uuid.Parse(ci.DocumentID)
			if err != nil {
				return nil, fmt.Errorf("invalid document_id: %w", err)
			}
			item.DocumentID = &did
		}
		o.Items = append(o.Items, item)
	}

	if req.CustomerID != "" {
		uid, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer_id: %w", err)
		}
		o.CustomerID = &uid
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// Stock decrement is best effort: a stock shortfall is a back-office
	// problem, never a reason to lose a placed order.
	s.consumeStock(ctx, o)

	return o, nil
}

func (s *service) consumeStock(ctx context.Context, o *Order) {
	if s.stock == nil {
		return
	}
	for _, item := range o.Items {
		if item.ProductType == pricing.ProductBusinessCard {
			continue
		}
		sheets := item.PageCount * item.Copies
		if sheets == 0 {
			continue
		}
		if err := s.stock.Consume(ctx, item.PaperQuality, sheets); err != nil {
			log.Printf("order %s: failed to consume %d sheets of %s: %v",
				o.OrderNumber, sheets, item.PaperQuality, err)
		}
	}
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return s.repo.GetOrderByNumber(ctx, orderNumber)
}

func (s *service) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	return s.repo.ListOrders(ctx, status)
}

func (s *service) ListCustomerOrders(ctx context.Context, customerID string) ([]*Order, error) {
	return s.repo.ListOrdersByCustomer(ctx, customerID)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	newStatus := OrderStatus(strings.ToUpper(req.Status))
	allowed := validTransitions[o.Status]
	valid := false
	for _, st := range allowed {
		if st == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	o.Status = newStatus
	return o, nil
}

func (s *service) CancelOrder(ctx context.Context, id string) error {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return fmt.Errorf("order not found: %w", err)
	}
	if o.Status != StatusPending && o.Status != StatusConfirmed {
		return fmt.Errorf("only PENDING or CONFIRMED orders can be cancelled (current: %s)", o.Status)
	}
	return s.repo.UpdateStatus(ctx, id, StatusCancelled)
}

// generateOrderNumber creates a human-readable order number: ORD-YYYYMMDD-XXXX
func generateOrderNumber() string {
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("ORD-%s-%s", date, suffix)
}
