package parse

import (
	"strings"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/texpat"
)

// extractMetadata resolves title, author and date before any cleanup runs,
// since the font-size title-page heuristics would not survive normalization.
// Each field is evaluated independently in title, author, date order: the
// size-block heuristic applies first and an explicit command overwrites it
// (last applied wins), falling back to the shared defaults.
func extractMetadata(src string) (title, author, date string) {
	if v, ok := texpat.SizeBlock(src, "Huge"); ok {
		title = cleanMetaValue(v)
	}
	if v, _, ok := texpat.Command(src, "title"); ok && strings.TrimSpace(v) != "" {
		title = cleanMetaValue(v)
	}
	if title == "" {
		title = document.DefaultTitle
	}

	if v, ok := texpat.SizeBlock(src, "Large"); ok {
		author = cleanMetaValue(v)
	}
	if v, _, ok := texpat.Command(src, "author"); ok && strings.TrimSpace(v) != "" {
		author = cleanMetaValue(v)
	}
	if author == "" {
		author = document.DefaultAuthor
	}

	if v, ok := texpat.SizeBlock(src, "large"); ok {
		date = cleanMetaValue(v)
	}
	if v, _, ok := texpat.Command(src, "date"); ok && strings.TrimSpace(v) != "" {
		date = cleanMetaValue(v)
	}
	if date == "" {
		date = document.Today()
	}
	return title, author, date
}

// cleanMetaValue flattens any formatting left inside a metadata argument and
// resolves \today to the current local date.
func cleanMetaValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.Contains(v, "\\today") {
		v = strings.ReplaceAll(v, "\\today", document.Today())
	}
	for _, cmd := range []string{"textbf", "textit", "underline", "texttt", "emph", "textrm", "textsf", "text"} {
		v = texpat.StripCommand(v, cmd)
	}
	return strings.TrimSpace(v)
}
