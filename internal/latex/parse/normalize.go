package parse

import (
	"strings"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/texpat"
)

// normalize prepares raw source for the structural pass: comments go first,
// then layout no-ops and wrapper environments, then font-size groups are
// inlined so embedded braces cannot confuse line splitting. Structural style
// markers (\textbf and friends) survive and are re-detected per line.
func normalize(src string) string {
	src = texpat.StripComments(src)
	src = texpat.StripNoops(src)
	src = texpat.InlineSizes(src)
	return src
}

// extractBody isolates the substring between \begin{document} and
// \end{document} when present; otherwise the full remainder is the body.
func extractBody(src string) string {
	begin := strings.Index(src, "\\begin{document}")
	if begin < 0 {
		return src
	}
	body := src[begin+len("\\begin{document}"):]
	if end := strings.Index(body, "\\end{document}"); end >= 0 {
		body = body[:end]
	}
	return body
}
