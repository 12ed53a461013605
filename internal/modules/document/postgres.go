package document

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, d *Document) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, owner_id, file_name, stored_path, content_type, size_bytes, pages)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.OwnerID, d.FileName, d.StoredPath, d.ContentType, d.SizeBytes, d.Pages)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Document, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	d := &Document{}
	var ownerID sql.NullString
	err = r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, file_name, stored_path, content_type, size_bytes, pages, created_at
		FROM documents WHERE id=$1`, uid).
		Scan(&d.ID, &ownerID, &d.FileName, &d.StoredPath, &d.ContentType,
			&d.SizeBytes, &d.Pages, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	if ownerID.Valid {
		oid, _ := uuid.Parse(ownerID.String)
		d.OwnerID = &oid
	}
	return d, nil
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID string) ([]*Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, file_name, stored_path, content_type, size_bytes, pages, created_at
		FROM documents WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []*Document
	for rows.Next() {
		d := &Document{}
		var oid sql.NullString
		if err := rows.Scan(&d.ID, &oid, &d.FileName, &d.StoredPath, &d.ContentType,
			&d.SizeBytes, &d.Pages, &d.CreatedAt); err != nil {
			return nil, err
		}
		if oid.Valid {
			u, _ := uuid.Parse(oid.String)
			d.OwnerID = &u
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
