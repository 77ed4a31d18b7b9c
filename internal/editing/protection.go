package editing

import (
	"errors"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
)

// ErrProtectedBlock is returned when an edit targets a read-only templated
// section.
var ErrProtectedBlock = errors.New("block is protected by the document template")

// ErrInvalidBlock is returned for an out-of-range block index.
var ErrInvalidBlock = errors.New("invalid block index")

// IsProtected reports whether the block at index i is read-only. In a
// template-derived document every heading block is protected; metadata
// blocks are governed by their own invariant and count as protected too.
func (s *Session) IsProtected(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isProtectedLocked(i)
}

func (s *Session) isProtectedLocked(i int) bool {
	if i < 0 || i >= len(s.doc.Blocks) {
		return false
	}
	b := s.doc.Blocks[i]
	if b.Kind == document.KindMetadata {
		return true
	}
	return s.protected && b.Kind == document.KindHeading
}

// ClickBlock resolves where the interactive cursor lands after a click on
// block i. Clicks on protected blocks are intercepted: warned is true so the
// surface can show its transient notice, and the cursor is redirected to
// the nearest following non-protected block (falling back to the nearest
// preceding one at the end of the document).
func (s *Session) ClickBlock(i int) (target int, warned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isProtectedLocked(i) {
		return i, false
	}
	for j := i + 1; j < len(s.doc.Blocks); j++ {
		if !s.isProtectedLocked(j) {
			return j, true
		}
	}
	for j := i - 1; j >= 0; j-- {
		if !s.isProtectedLocked(j) {
			return j, true
		}
	}
	return i, true
}

// ToggleBlockType switches a block between paragraph and heading. The
// operation is disallowed when the block is protected in either direction:
// a protected heading cannot become a paragraph, and in a protected
// document a paragraph cannot be promoted into a (protected) heading.
func (s *Session) ToggleBlockType(i int, kind document.BlockKind, level int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if i < 0 || i >= len(s.doc.Blocks) {
		s.mu.Unlock()
		return ErrInvalidBlock
	}
	if s.isProtectedLocked(i) || (s.protected && kind == document.KindHeading) {
		s.mu.Unlock()
		return ErrProtectedBlock
	}

	b := &s.doc.Blocks[i]
	switch kind {
	case document.KindHeading:
		if level < 1 {
			level = 1
		}
		if level > 5 {
			level = 5
		}
		b.Kind = document.KindHeading
		b.Level = level
	case document.KindParagraph:
		b.Kind = document.KindParagraph
		b.Level = 0
	default:
		s.mu.Unlock()
		return ErrInvalidBlock
	}
	s.mu.Unlock()

	s.Edit(func(*document.Document) {})
	return nil
}
