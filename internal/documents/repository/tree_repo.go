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

// TreeRepository persists the folder-tree nodes of a user's workspace.
type TreeRepository struct {
	db *pgxpool.Pool
}

// NewTreeRepository creates a new tree repository.
func NewTreeRepository(db *pgxpool.Pool) *TreeRepository {
	return &TreeRepository{db: db}
}

// CreateNode inserts a folder or file node. File nodes must reference a
// document record.
func (r *TreeRepository) CreateNode(ctx context.Context, ownerID string, parentID *string, name string, kind domain.NodeKind, documentID *string) (*domain.TreeNode, error) {
	if kind == domain.NodeFile && documentID == nil {
		return nil, fmt.Errorf("file node requires a document id")
	}

	const q = `
INSERT INTO tree_nodes (id, owner_id, parent_id, name, kind, position, document_id)
VALUES ($1, $2, $3, $4, $5,
        COALESCE((SELECT MAX(position) + 1 FROM tree_nodes WHERE owner_id = $2 AND parent_id IS NOT DISTINCT FROM $3), 0),
        $6)
RETURNING id, owner_id, parent_id, name, kind, position, document_id;
`
	var n domain.TreeNode
	err := r.db.QueryRow(ctx, q, uuid.New().String(), ownerID, parentID, name, kind, documentID).
		Scan(&n.ID, &n.OwnerID, &n.ParentID, &n.Name, &n.Kind, &n.Position, &n.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("create node: %w", err)
	}
	return &n, nil
}

// MoveNode reparents a node and assigns its position among siblings.
func (r *TreeRepository) MoveNode(ctx context.Context, ownerID, nodeID string, newParentID *string, position int) (*domain.TreeNode, error) {
	const q = `
UPDATE tree_nodes
SET parent_id = $3, position = $4
WHERE owner_id = $1 AND id = $2
RETURNING id, owner_id, parent_id, name, kind, position, document_id;
`
	var n domain.TreeNode
	err := r.db.QueryRow(ctx, q, ownerID, nodeID, newParentID, position).
		Scan(&n.ID, &n.OwnerID, &n.ParentID, &n.Name, &n.Kind, &n.Position, &n.DocumentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNodeNotFound
		}
		return nil, fmt.Errorf("move node: %w", err)
	}
	return &n, nil
}

// DeleteNode removes a node. Children are reparented to the deleted node's
// parent so no subtree is orphaned by a single delete.
func (r *TreeRepository) DeleteNode(ctx context.Context, ownerID, nodeID string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin delete node: %w", err)
	}
	defer tx.Rollback(ctx)

	var parentID *string
	err = tx.QueryRow(ctx,
		`SELECT parent_id FROM tree_nodes WHERE owner_id = $1 AND id = $2`,
		ownerID, nodeID).Scan(&parentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("delete node: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE tree_nodes SET parent_id = $3 WHERE owner_id = $1 AND parent_id = $2`,
		ownerID, nodeID, parentID); err != nil {
		return false, fmt.Errorf("reparent children: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM tree_nodes WHERE owner_id = $1 AND id = $2`,
		ownerID, nodeID); err != nil {
		return false, fmt.Errorf("delete node: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit delete node: %w", err)
	}
	return true, nil
}

// ListNodes returns every node of a user's tree as a flat, ordered slice.
func (r *TreeRepository) ListNodes(ctx context.Context, ownerID string) ([]domain.TreeNode, error) {
	const q = `
SELECT id, owner_id, parent_id, name, kind, position, document_id
FROM tree_nodes
WHERE owner_id = $1
ORDER BY parent_id NULLS FIRST, position, name;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TreeNode, 0, 32)
	for rows.Next() {
		var n domain.TreeNode
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.ParentID, &n.Name, &n.Kind, &n.Position, &n.DocumentID); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
