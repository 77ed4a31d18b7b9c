package editing

import (
	"strings"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
)

// PressEnter handles the Enter key inside a list block. Enter on a
// non-empty item inserts a fresh empty item after it. Enter on an empty
// item is the double-Enter exit signal: the empty item is removed, the
// list is left, and an empty paragraph is placed after the list (replacing
// it entirely when no items remain). exited reports whether the cursor
// left the list. These are user edits, so they notify and arm the
// auto-save timers like any other edit.
func (s *Session) PressEnter(blockIdx, itemIdx int) (exited bool) {
	exited, changed := s.pressEnterLocked(blockIdx, itemIdx)
	if changed {
		s.Edit(func(*document.Document) {})
	}
	return exited
}

func (s *Session) pressEnterLocked(blockIdx, itemIdx int) (exited, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.isListLocked(blockIdx) {
		return false, false
	}
	b := &s.doc.Blocks[blockIdx]
	if itemIdx < 0 || itemIdx >= len(b.Items) {
		return false, false
	}

	if strings.TrimSpace(document.SpanText(b.Items[itemIdx].Spans)) != "" {
		items := make([]document.ListItem, 0, len(b.Items)+1)
		items = append(items, b.Items[:itemIdx+1]...)
		items = append(items, document.ListItem{Spans: []document.Span{{Text: ""}}})
		items = append(items, b.Items[itemIdx+1:]...)
		b.Items = items
		return false, true
	}

	b.Items = append(b.Items[:itemIdx], b.Items[itemIdx+1:]...)
	s.exitListLocked(blockIdx)
	return true, true
}

// PressEscape unconditionally exits the list at blockIdx, leaving an empty
// paragraph after it for the cursor.
func (s *Session) PressEscape(blockIdx int) (exited bool) {
	if !s.pressEscapeLocked(blockIdx) {
		return false
	}
	s.Edit(func(*document.Document) {})
	return true
}

func (s *Session) pressEscapeLocked(blockIdx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.isListLocked(blockIdx) {
		return false
	}
	s.exitListLocked(blockIdx)
	return true
}

func (s *Session) isListLocked(i int) bool {
	if i < 0 || i >= len(s.doc.Blocks) {
		return false
	}
	k := s.doc.Blocks[i].Kind
	return k == document.KindBulletList || k == document.KindNumberedList
}

// exitListLocked places an empty paragraph after the list block, or
// replaces the list entirely when it has no items left.
func (s *Session) exitListLocked(i int) {
	para := document.Paragraph("")
	if len(s.doc.Blocks[i].Items) == 0 {
		s.doc.Blocks[i] = para
		return
	}
	blocks := make([]document.Block, 0, len(s.doc.Blocks)+1)
	blocks = append(blocks, s.doc.Blocks[:i+1]...)
	blocks = append(blocks, para)
	blocks = append(blocks, s.doc.Blocks[i+1:]...)
	s.doc.Blocks = blocks
}
