package domain

import "time"

// ChangeType classifies what kind of edit produced a snapshot.
type ChangeType string

const (
	ChangeInsertion    ChangeType = "insertion"
	ChangeDeletion     ChangeType = "deletion"
	ChangeModification ChangeType = "modification"
	ChangeSave         ChangeType = "save"
)

// MaxVersionsPerDocument caps stored history; oldest entries are evicted
// first and newest-first ordering is maintained.
const MaxVersionsPerDocument = 50

// VersionRecord is one immutable snapshot of a document's serialized LaTeX.
type VersionRecord struct {
	Label     string     `json:"label"` // "1.0", "1.1", ... purely sequential
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
	Author    string     `json:"author,omitempty"`
	Change    ChangeType `json:"change"`
	Note      string     `json:"note,omitempty"`
}

// DiffKind classifies one line of a comparison.
type DiffKind string

const (
	DiffAdded    DiffKind = "added"
	DiffRemoved  DiffKind = "removed"
	DiffModified DiffKind = "modified"
)

// DiffLine is one entry of the index-aligned line comparison between two
// snapshots. Identical lines produce no entry.
type DiffLine struct {
	Line int      `json:"line"` // 1-based
	Kind DiffKind `json:"kind"`
	Old  string   `json:"old,omitempty"`
	New  string   `json:"new,omitempty"`
}
