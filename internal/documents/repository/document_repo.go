package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/documents/domain"
)

// DocumentRepository provides persistence operations for document records.
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document for the given owner.
func (r *DocumentRepository) Create(ctx context.Context, ownerID, name, content string, protected bool) (*domain.Document, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required")
	}

	const q = `
INSERT INTO documents (id, owner_id, name, content, is_protected)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, owner_id, name, content, is_protected, created_at, updated_at;
`
	var d domain.Document
	err := r.db.QueryRow(ctx, q, uuid.New().String(), ownerID, name, content, protected).
		Scan(&d.ID, &d.OwnerID, &d.Name, &d.Content, &d.Protected, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &d, nil
}

// Get returns one non-deleted document owned by the user.
func (r *DocumentRepository) Get(ctx context.Context, ownerID, id string) (*domain.Document, error) {
	const q = `
SELECT id, owner_id, name, content, is_protected, created_at, updated_at
FROM documents
WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL;
`
	var d domain.Document
	err := r.db.QueryRow(ctx, q, ownerID, id).
		Scan(&d.ID, &d.OwnerID, &d.Name, &d.Content, &d.Protected, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// UpdateContent replaces a document's content.
func (r *DocumentRepository) UpdateContent(ctx context.Context, ownerID, id, content string) (*domain.Document, error) {
	const q = `
UPDATE documents
SET content = $3, updated_at = now()
WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL
RETURNING id, owner_id, name, content, is_protected, created_at, updated_at;
`
	var d domain.Document
	err := r.db.QueryRow(ctx, q, ownerID, id, content).
		Scan(&d.ID, &d.OwnerID, &d.Name, &d.Content, &d.Protected, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update document: %w", err)
	}
	return &d, nil
}

// Rename updates the document's display name.
func (r *DocumentRepository) Rename(ctx context.Context, ownerID, id, name string) (*domain.Document, error) {
	const q = `
UPDATE documents
SET name = $3, updated_at = now()
WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL
RETURNING id, owner_id, name, content, is_protected, created_at, updated_at;
`
	var d domain.Document
	err := r.db.QueryRow(ctx, q, ownerID, id, name).
		Scan(&d.ID, &d.OwnerID, &d.Name, &d.Content, &d.Protected, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("rename document: %w", err)
	}
	return &d, nil
}

// SoftDelete marks a document as deleted.
func (r *DocumentRepository) SoftDelete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `
UPDATE documents
SET deleted_at = now(), updated_at = now()
WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL;
`
	tag, err := r.db.Exec(ctx, q, ownerID, id)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListFlat returns all non-deleted documents for a user, newest first,
// without content bodies.
func (r *DocumentRepository) ListFlat(ctx context.Context, ownerID string) ([]domain.Document, error) {
	const q = `
SELECT id, owner_id, name, '', is_protected, created_at, updated_at
FROM documents
WHERE owner_id = $1 AND deleted_at IS NULL
ORDER BY updated_at DESC;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Document, 0, 16)
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Name, &d.Content, &d.Protected, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
