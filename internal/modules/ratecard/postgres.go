package ratecard

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, rc *RateCard) error {
	table, err := json.Marshal(rc.Table)
	if err != nil {
		return fmt.Errorf("marshal rate table: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO rate_cards (id, name, status, rate_table, effective_from)
		VALUES ($1,$2,$3,$4,$5)`,
		rc.ID, rc.Name, rc.Status, table, rc.EffectiveFrom)
	if err != nil {
		return fmt.Errorf("insert rate_card: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*RateCard, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanRateCard(r.db.QueryRowContext(ctx, `
		SELECT id, name, status, rate_table, effective_from, created_at, updated_at
		FROM rate_cards WHERE id=$1`, uid))
}

func (r *postgresRepo) GetActive(ctx context.Context) (*RateCard, error) {
	return scanRateCard(r.db.QueryRowContext(ctx, `
		SELECT id, name, status, rate_table, effective_from, created_at, updated_at
		FROM rate_cards WHERE status=$1
		ORDER BY effective_from DESC LIMIT 1`, StatusActive))
}

func (r *postgresRepo) List(ctx context.Context) ([]*RateCard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, status, rate_table, effective_from, created_at, updated_at
		FROM rate_cards ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cards []*RateCard
	for rows.Next() {
		rc := &RateCard{}
		var table []byte
		if err := rows.Scan(&rc.ID, &rc.Name, &rc.Status, &table,
			&rc.EffectiveFrom, &rc.CreatedAt, &rc.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(table, &rc.Table); err != nil {
			return nil, fmt.Errorf("unmarshal rate table %s: %w", rc.ID, err)
		}
		cards = append(cards, rc)
	}
	return cards, rows.Err()
}

// Activate retires the current active card and promotes the given one inside
// a single transaction so there is never more than one active card.
func (r *postgresRepo) Activate(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE rate_cards SET status=$1, updated_at=$2 WHERE status=$3`,
		StatusRetired, time.Now(), StatusActive)
	if err != nil {
		return fmt.Errorf("retire active rate_card: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE rate_cards SET status=$1, updated_at=$2 WHERE id=$3`,
		StatusActive, time.Now(), uid)
	if err != nil {
		return fmt.Errorf("activate rate_card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *postgresRepo) SetStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE rate_cards SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func scanRateCard(row *sql.Row) (*RateCard, error) {
	rc := &RateCard{}
	var table []byte
	err := row.Scan(&rc.ID, &rc.Name, &rc.Status, &table,
		&rc.EffectiveFrom, &rc.CreatedAt, &rc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(table, &rc.Table); err != nil {
		return nil, fmt.Errorf("unmarshal rate table %s: %w", rc.ID, err)
	}
	return rc, nil
}
