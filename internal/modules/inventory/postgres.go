package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/printmate/backend/internal/pricing"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, ps *PaperStock) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO paper_stock (id, paper_quality, sheets_on_hand, reorder_level)
		VALUES ($1,$2,$3,$4)`,
		ps.ID, ps.PaperQuality, ps.SheetsOnHand, ps.ReorderLevel)
	if err != nil {
		return fmt.Errorf("insert paper_stock: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByQuality(ctx context.Context, quality pricing.PaperQuality) (*PaperStock, error) {
	ps := &PaperStock{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, paper_quality, sheets_on_hand, reorder_level, created_at, updated_at
		FROM paper_stock WHERE paper_quality=$1`, quality).
		Scan(&ps.ID, &ps.PaperQuality, &ps.SheetsOnHand, &ps.ReorderLevel,
			&ps.CreatedAt, &ps.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*PaperStock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, paper_quality, sheets_on_hand, reorder_level, created_at, updated_at
		FROM paper_stock ORDER BY paper_quality ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var stocks []*PaperStock
	for rows.Next() {
		ps := &PaperStock{}
		if err := rows.Scan(&ps.ID, &ps.PaperQuality, &ps.SheetsOnHand,
			&ps.ReorderLevel, &ps.CreatedAt, &ps.UpdatedAt); err != nil {
			return nil, err
		}
		stocks = append(stocks, ps)
	}
	return stocks, rows.Err()
}

// AdjustSheets relies on the sheets_on_hand >= 0 guard in the WHERE clause so
// two concurrent decrements can never drive the count negative.
func (r *postgresRepo) AdjustSheets(ctx context.Context, quality pricing.PaperQuality, delta int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE paper_stock
		SET sheets_on_hand = sheets_on_hand + $1, updated_at = $2
		WHERE paper_quality = $3 AND sheets_on_hand + $1 >= 0`,
		delta, time.Now(), quality)
	if err != nil {
		return fmt.Errorf("adjust paper_stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("insufficient stock for %s (delta %d)", quality, delta)
	}
	return nil
}
