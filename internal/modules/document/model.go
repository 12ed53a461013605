package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded print-ready file. The detected page count seeds the
// line item's page_count; the customer can correct it before checkout.
type Document struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
	FileName    string     `json:"file_name"`
	StoredPath  string     `json:"-"`
	ContentType string     `json:"content_type,omitempty"`
	SizeBytes   int64      `json:"size_bytes"`
	Pages       int        `json:"pages"`
	CreatedAt   time.Time  `json:"created_at"`
}
