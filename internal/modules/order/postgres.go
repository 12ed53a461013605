package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, customer_id, order_number, status, channel, rate_card_id,
	delivery_type, total_pages, subtotal, discount_percent, discount_amount,
	tax_amount, delivery_charge, grand_total, currency, notes, delivery_address,
	created_at, updated_at`

// CreateOrder inserts the order and all its items inside a single transaction.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, customer_id, order_number, status, channel, rate_card_id,
		   delivery_type, total_pages, subtotal, discount_percent, discount_amount,
		   tax_amount, delivery_charge, grand_total, currency, notes, delivery_address)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		o.ID, o.CustomerID, o.OrderNumber, o.Status, o.Channel, o.RateCardID,
		o.DeliveryType, o.TotalPages, o.Subtotal, o.DiscountPercent, o.DiscountAmount,
		o.TaxAmount, o.DeliveryCharge, o.GrandTotal, o.Currency, o.Notes,
		nullableJSON(o.DeliveryAddress))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, document_id, product_type, page_count, copies,
			   color_mode, paper_quality, binding, cover, card_tier, card_units,
			   brochure_size, effective_rate, print_subtotal, binding_cost,
			   cover_cost, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
			item.ID, o.ID, item.DocumentID, item.ProductType, item.PageCount,
			item.Copies, item.ColorMode, item.PaperQuality, item.Binding,
			item.Cover, item.CardTier, item.CardUnits, item.BrochureSize,
			item.EffectiveRate, item.PrintSubtotal, item.BindingCost,
			item.CoverCost, item.LineTotal)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o, err := r.scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID.String())
	return o, err
}

func (r *postgresRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	o, err := r.scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number=$1`, orderNumber))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID.String())
	return o, err
}

func (r *postgresRepo) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`,
		customerID)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrderFields(row rowScanner) (*Order, error) {
	o := &Order{}
	var customerID, rateCardID sql.NullString
	var deliveryAddr []byte
	err := row.Scan(
		&o.ID, &customerID, &o.OrderNumber, &o.Status, &o.Channel, &rateCardID,
		&o.DeliveryType, &o.TotalPages, &o.Subtotal, &o.DiscountPercent,
		&o.DiscountAmount, &o.TaxAmount, &o.DeliveryCharge, &o.GrandTotal,
		&o.Currency, &o.Notes, &deliveryAddr, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		uid, _ := uuid.Parse(customerID.String)
		o.CustomerID = &uid
	}
	if rateCardID.Valid {
		uid, _ := uuid.Parse(rateCardID.String)
		o.RateCardID = &uid
	}
	o.DeliveryAddress = deliveryAddr
	return o, nil
}

func (r *postgresRepo) scanOrder(row *sql.Row) (*Order, error) {
	return scanOrderFields(row)
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o, err := scanOrderFields(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) listItems(ctx context.Context, orderID string) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, document_id, product_type, page_count, copies,
		       color_mode, paper_quality, binding, cover, card_tier, card_units,
		       brochure_size, effective_rate, print_subtotal, binding_cost,
		       cover_cost, line_total, created_at, updated_at
		FROM order_items WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*OrderItem
	for rows.Next() {
		item := &OrderItem{}
		var documentID sql.NullString
		if err := rows.Scan(&item.ID, &item.OrderID, &documentID, &item.ProductType,
			&item.PageCount, &item.Copies, &item.ColorMode, &item.PaperQuality,
			&item.Binding, &item.Cover, &item.CardTier, &item.CardUnits,
			&item.BrochureSize, &item.EffectiveRate, &item.PrintSubtotal,
			&item.BindingCost, &item.CoverCost, &item.LineTotal,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		if documentID.Valid {
			did, _ := uuid.Parse(documentID.String)
			item.DocumentID = &did
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
