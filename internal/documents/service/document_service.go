// Package service holds document-management business logic shared by the
// HTTP layer: document CRUD backed by the repositories and assembly of the
// nested folder tree from its flat storage form.
package service

import (
	"context"
	"sort"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/documents/domain"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/documents/repository"
)

// DocumentService handles document and folder-tree operations.
type DocumentService struct {
	docs *repository.DocumentRepository
	tree *repository.TreeRepository
}

// NewDocumentService creates a new document service.
func NewDocumentService(docs *repository.DocumentRepository, tree *repository.TreeRepository) *DocumentService {
	return &DocumentService{docs: docs, tree: tree}
}

// Save creates a new document record along with its file node in the tree.
func (s *DocumentService) Save(ctx context.Context, ownerID, name, content string, parentID *string, protected bool) (*domain.Document, error) {
	doc, err := s.docs.Create(ctx, ownerID, name, content, protected)
	if err != nil {
		return nil, err
	}
	if _, err := s.tree.CreateNode(ctx, ownerID, parentID, name, domain.NodeFile, &doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get fetches one document with content.
func (s *DocumentService) Get(ctx context.Context, ownerID, id string) (*domain.Document, error) {
	return s.docs.Get(ctx, ownerID, id)
}

// Update replaces a document's content.
func (s *DocumentService) Update(ctx context.Context, ownerID, id, content string) (*domain.Document, error) {
	return s.docs.UpdateContent(ctx, ownerID, id, content)
}

// Rename changes a document's display name.
func (s *DocumentService) Rename(ctx context.Context, ownerID, id, name string) (*domain.Document, error) {
	return s.docs.Rename(ctx, ownerID, id, name)
}

// Delete soft-deletes a document record.
func (s *DocumentService) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	return s.docs.SoftDelete(ctx, ownerID, id)
}

// FetchFlat lists a user's documents without bodies.
func (s *DocumentService) FetchFlat(ctx context.Context, ownerID string) ([]domain.Document, error) {
	return s.docs.ListFlat(ctx, ownerID)
}

// CreateFolder adds a folder node to the tree.
func (s *DocumentService) CreateFolder(ctx context.Context, ownerID string, parentID *string, name string) (*domain.TreeNode, error) {
	return s.tree.CreateNode(ctx, ownerID, parentID, name, domain.NodeFolder, nil)
}

// MoveNode reparents a tree node.
func (s *DocumentService) MoveNode(ctx context.Context, ownerID, nodeID string, newParentID *string, position int) (*domain.TreeNode, error) {
	return s.tree.MoveNode(ctx, ownerID, nodeID, newParentID, position)
}

// DeleteNode removes a tree node, reparenting its children.
func (s *DocumentService) DeleteNode(ctx context.Context, ownerID, nodeID string) (bool, error) {
	return s.tree.DeleteNode(ctx, ownerID, nodeID)
}

// FetchTree assembles the user's nested folder tree from flat node storage.
func (s *DocumentService) FetchTree(ctx context.Context, ownerID string) ([]*domain.TreeNode, error) {
	flat, err := s.tree.ListNodes(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.TreeNode, len(flat))
	for i := range flat {
		byID[flat[i].ID] = &flat[i]
	}

	var roots []*domain.TreeNode
	for i := range flat {
		n := &flat[i]
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := byID[*n.ParentID]
		if !ok {
			// Orphaned node, surface it at the root rather than dropping it.
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	sortTree(roots)
	return roots, nil
}

func sortTree(nodes []*domain.TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Position < nodes[j].Position
	})
	for _, n := range nodes {
		if len(n.Children) > 0 {
			sortTree(n.Children)
		}
	}
}
