package document

import "context"

// Repository defines data access for uploaded documents.
type Repository interface {
	// Create persists document metadata.
	Create(ctx context.Context, d *Document) error

	// GetByID retrieves document metadata by UUID.
	GetByID(ctx context.Context, id string) (*Document, error)

	// ListByOwner returns all documents uploaded by a user.
	ListByOwner(ctx context.Context, ownerID string) ([]*Document, error)
}
