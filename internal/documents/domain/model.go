package domain

import "time"

// Document is one LaTeX file record. Content holds the serialized LaTeX
// text, which is the durable, authoritative form of a document; structured
// models are derived from it per editing session.
type Document struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Protected bool      `json:"is_protected"` // derived from a protected template
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NodeKind discriminates tree nodes.
type NodeKind string

const (
	NodeFile   NodeKind = "file"
	NodeFolder NodeKind = "folder"
)

// TreeNode is one entry of a user's folder tree. File nodes reference a
// document record by DocumentID.
type TreeNode struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"-"`
	ParentID   *string     `json:"parent_id,omitempty"`
	Name       string      `json:"name"`
	Kind       NodeKind    `json:"kind"`
	Position   int         `json:"position"`
	DocumentID *string     `json:"document_id,omitempty"`
	Children   []*TreeNode `json:"children,omitempty"`
}
