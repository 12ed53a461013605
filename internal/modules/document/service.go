package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Service defines document upload business logic.
type Service interface {
	// Upload stores the file, detects its page count, and persists metadata.
	Upload(ctx context.Context, ownerID, fileName, contentType string, r io.Reader) (*Document, error)

	// GetDocument retrieves document metadata by UUID.
	GetDocument(ctx context.Context, id string) (*Document, error)

	// ListUserDocuments returns all documents uploaded by a user.
	ListUserDocuments(ctx context.Context, ownerID string) ([]*Document, error)
}

type service struct {
	repo      Repository
	counter   PageCounter
	uploadDir string
}

// NewService creates a new document service storing files under uploadDir.
func NewService(repo Repository, counter PageCounter, uploadDir string) Service {
	return &service{repo: repo, counter: counter, uploadDir: uploadDir}
}

func (s *service) Upload(ctx context.Context, ownerID, fileName, contentType string, r io.Reader) (*Document, error) {
	if fileName == "" {
		return nil, fmt.Errorf("file name is required")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("uploaded file is empty")
	}

	d := &Document{
		ID:          uuid.New(),
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Pages:       s.counter.CountPages(data),
	}
	if ownerID != "" {
		oid, err := uuid.Parse(ownerID)
		if err != nil {
			return nil, fmt.Errorf("invalid owner id: %w", err)
		}
		d.OwnerID = &oid
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	d.StoredPath = filepath.Join(s.uploadDir, d.ID.String()+filepath.Ext(fileName))
	if err := os.WriteFile(d.StoredPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	if err := s.repo.Create(ctx, d); err != nil {
		os.Remove(d.StoredPath)
		return nil, fmt.Errorf("failed to persist document: %w", err)
	}
	return d, nil
}

func (s *service) GetDocument(ctx context.Context, id string) (*Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListUserDocuments(ctx context.Context, ownerID string) ([]*Document, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
