package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/preview"
)

// wordShell is the minimal HTML wrapper Word accepts as a .doc file.
const wordShell = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word">
<head><meta charset="utf-8"><title>%s</title>
<style>
body { font-family: "Times New Roman", serif; font-size: 12pt; }
table.latex-table { border-collapse: collapse; }
table.latex-table td { border: 1px solid #000; padding: 4px 8px; }
.latex-placeholder, .latex-render-error { color: #999; font-style: italic; }
</style>
</head>
<body>%s</body>
</html>`

// Word renders the LaTeX source to a Word-compatible HTML document.
// Word opens the result as a regular .doc when served with the
// application/msword content type.
func Word(title, source string) []byte {
	body := preview.Render(source)
	return []byte(fmt.Sprintf(wordShell, html.EscapeString(title), body))
}

// Filename derives a safe .doc filename from a document name.
func Filename(name string) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = "document"
	}
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, base)
	return base + ".doc"
}
