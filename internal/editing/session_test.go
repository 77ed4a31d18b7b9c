package editing

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
)

const listSource = "\\begin{document}\n\\section{Head}\npara text\n\\begin{itemize}\n\\item one\n\\item two\n\\end{itemize}\n\\end{document}"

// Block layout of listSource: 0-2 metadata, 3 heading, 4 paragraph, 5 list.

func TestEditFiresOnChangeSynchronously(t *testing.T) {
	var got string
	s := NewSession("\\begin{document}\nhello\n\\end{document}", false, Callbacks{
		OnChange: func(latex string) { got = latex },
	})

	s.Edit(func(d *document.Document) {
		d.Append(document.Paragraph("added"))
	})

	require.NotEmpty(t, got)
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "added")
}

func TestApplyExternalSuppressesNotifications(t *testing.T) {
	changes := 0
	s := NewSession("\\begin{document}\nhello\n\\end{document}", false, Callbacks{
		OnChange: func(string) { changes++ },
	})

	s.ApplyExternal("\\begin{document}\nreverted content\n\\end{document}")

	assert.Zero(t, changes)
	assert.Contains(t, s.Latex(), "reverted content")
}

func TestClosedSessionIgnoresEdits(t *testing.T) {
	changes := 0
	s := NewSession("\\begin{document}\nhello\n\\end{document}", false, Callbacks{
		OnChange: func(string) { changes++ },
	})
	s.Close()

	s.Edit(func(d *document.Document) {
		d.Append(document.Paragraph("late"))
	})

	assert.Zero(t, changes)
	assert.NotContains(t, s.Latex(), "late")
}

func TestProtection(t *testing.T) {
	t.Run("metadata blocks are always protected", func(t *testing.T) {
		s := NewSession(listSource, false, Callbacks{})
		assert.True(t, s.IsProtected(0))
		assert.True(t, s.IsProtected(2))
		assert.False(t, s.IsProtected(3)) // heading, unprotected document
		assert.False(t, s.IsProtected(4))
	})

	t.Run("template documents protect headings", func(t *testing.T) {
		s := NewSession(listSource, true, Callbacks{})
		assert.True(t, s.IsProtected(3))
		assert.False(t, s.IsProtected(4))
	})
}

func TestClickBlock(t *testing.T) {
	s := NewSession(listSource, true, Callbacks{})

	t.Run("clicks on editable blocks land in place", func(t *testing.T) {
		target, warned := s.ClickBlock(4)
		assert.Equal(t, 4, target)
		assert.False(t, warned)
	})

	t.Run("clicks on protected blocks redirect forward with a warning", func(t *testing.T) {
		target, warned := s.ClickBlock(3)
		assert.Equal(t, 4, target)
		assert.True(t, warned)
	})

	t.Run("metadata clicks redirect past the protected heading", func(t *testing.T) {
		target, warned := s.ClickBlock(0)
		assert.Equal(t, 4, target)
		assert.True(t, warned)
	})
}

func TestToggleBlockType(t *testing.T) {
	t.Run("paragraph and heading toggle both ways", func(t *testing.T) {
		s := NewSession(listSource, false, Callbacks{})
		require.NoError(t, s.ToggleBlockType(4, document.KindHeading, 2))
		assert.Equal(t, document.KindHeading, s.Document().Blocks[4].Kind)
		assert.Equal(t, 2, s.Document().Blocks[4].Level)

		require.NoError(t, s.ToggleBlockType(4, document.KindParagraph, 0))
		assert.Equal(t, document.KindParagraph, s.Document().Blocks[4].Kind)
	})

	t.Run("level clamps to the heading range", func(t *testing.T) {
		s := NewSession(listSource, false, Callbacks{})
		require.NoError(t, s.ToggleBlockType(4, document.KindHeading, 9))
		assert.Equal(t, 5, s.Document().Blocks[4].Level)
	})

	t.Run("protected heading refuses demotion", func(t *testing.T) {
		s := NewSession(listSource, true, Callbacks{})
		assert.ErrorIs(t, s.ToggleBlockType(3, document.KindParagraph, 0), ErrProtectedBlock)
	})

	t.Run("protected document refuses promotion to heading", func(t *testing.T) {
		s := NewSession(listSource, true, Callbacks{})
		assert.ErrorIs(t, s.ToggleBlockType(4, document.KindHeading, 1), ErrProtectedBlock)
	})

	t.Run("out of range index", func(t *testing.T) {
		s := NewSession(listSource, false, Callbacks{})
		assert.ErrorIs(t, s.ToggleBlockType(99, document.KindHeading, 1), ErrInvalidBlock)
	})

	t.Run("toggling notifies the surface", func(t *testing.T) {
		changes := 0
		s := NewSession(listSource, false, Callbacks{OnChange: func(string) { changes++ }})
		require.NoError(t, s.ToggleBlockType(4, document.KindHeading, 1))
		assert.Equal(t, 1, changes)
	})
}

func TestPressEnter(t *testing.T) {
	t.Run("enter on a non-empty item inserts an empty one after it", func(t *testing.T) {
		s := NewSession(listSource, false, Callbacks{})
		exited := s.PressEnter(5, 0)
		assert.False(t, exited)

		items := s.Document().Blocks[5].Items
		require.Len(t, items, 3)
		assert.Equal(t, "one", document.SpanText(items[0].Spans))
		assert.Empty(t, document.SpanText(items[1].Spans))
		assert.Equal(t, "two", document.SpanText(items[2].Spans))
	})

	t.Run("double enter exits the list", func(t *testing.T) {
		s := NewSession(listSource, false, Callbacks{})
		require.False(t, s.PressEnter(5, 1)) // after "two": inserts empty item 2
		exited := s.PressEnter(5, 2)         // enter again on the empty item
		assert.True(t, exited)

		blocks := s.Document().Blocks
		assert.Equal(t, document.KindBulletList, blocks[5].Kind)
		require.Len(t, blocks[5].Items, 2) // the empty item was removed
		require.Greater(t, len(blocks), 6)
		assert.Equal(t, document.KindParagraph, blocks[6].Kind)
		assert.Empty(t, blocks[6].PlainText())
	})

	t.Run("emptying the only item replaces the list with a paragraph", func(t *testing.T) {
		src := "\\begin{document}\n\\begin{itemize}\n\\item solo\n\\end{itemize}\n\\end{document}"
		s := NewSession(src, false, Callbacks{})
		// Block 3 is the list; blank the item first, as the surface would.
		s.Edit(func(d *document.Document) {
			d.Blocks[3].Items[0].Spans = []document.Span{{Text: ""}}
		})
		exited := s.PressEnter(3, 0)
		assert.True(t, exited)
		assert.Equal(t, document.KindParagraph, s.Document().Blocks[3].Kind)
	})

	t.Run("enter outside a list does nothing", func(t *testing.T) {
		s := NewSession(listSource, false, Callbacks{})
		assert.False(t, s.PressEnter(4, 0))
	})
}

func TestPressEscape(t *testing.T) {
	s := NewSession(listSource, false, Callbacks{})
	exited := s.PressEscape(5)
	assert.True(t, exited)

	blocks := s.Document().Blocks
	assert.Equal(t, document.KindBulletList, blocks[5].Kind)
	require.Greater(t, len(blocks), 6)
	assert.Equal(t, document.KindParagraph, blocks[6].Kind)

	assert.False(t, s.PressEscape(4))
}

func TestListEditsNotifyAndArmAutoSave(t *testing.T) {
	var changes, saves atomic.Int32
	s := newSession(listSource, false, Callbacks{
		OnChange: func(string) { changes.Add(1) },
		AutoSave: func(string) { saves.Add(1) },
	}, 20*time.Millisecond, 20*time.Millisecond)

	// Inserting an item and escaping the list are user edits like any other.
	assert.False(t, s.PressEnter(5, 0))
	assert.Equal(t, int32(1), changes.Load())

	assert.True(t, s.PressEscape(5))
	assert.Equal(t, int32(2), changes.Load())

	assert.Eventually(t, func() bool { return saves.Load() == 1 },
		time.Second, 5*time.Millisecond)

	// A rejected press must not notify or arm anything.
	assert.False(t, s.PressEnter(4, 0))
	assert.Equal(t, int32(2), changes.Load())
}

func TestAutoSaveFiresOnceWithSettledContent(t *testing.T) {
	var saves, compiles atomic.Int32
	var settled atomic.Value
	s := newSession("\\begin{document}\nhello\n\\end{document}", false, Callbacks{
		AutoSave: func(latex string) {
			settled.Store(latex)
			saves.Add(1)
		},
		AutoCompile: func(string) { compiles.Add(1) },
	}, 20*time.Millisecond, 20*time.Millisecond)

	s.Edit(func(d *document.Document) { d.Append(document.Paragraph("draft")) })
	s.Edit(func(d *document.Document) { d.Append(document.Paragraph("final")) })

	assert.Eventually(t, func() bool { return saves.Load() == 1 && compiles.Load() == 1 },
		time.Second, 5*time.Millisecond)
	assert.Contains(t, settled.Load().(string), "final")

	// No further edits, no further fires.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), saves.Load())
	assert.Equal(t, int32(1), compiles.Load())
}

func TestCloseSuppressesPendingAutoSave(t *testing.T) {
	var saves atomic.Int32
	s := newSession("\\begin{document}\nhello\n\\end{document}", false, Callbacks{
		AutoSave: func(string) { saves.Add(1) },
	}, 20*time.Millisecond, 20*time.Millisecond)

	s.Edit(func(d *document.Document) { d.Append(document.Paragraph("moving on")) })
	s.Close()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, saves.Load())
}
