package texpat

import "regexp"

// Compiled patterns for the fixed catalogue of recognized LaTeX forms.
// Anything outside this catalogue falls through to plain-text handling.
var (
	headingPattern = regexp.MustCompile(`^\\(chapter|section|subsection|subsubsection|paragraph|subparagraph)\*?\s*\{`)

	beginEnvPattern = regexp.MustCompile(`\\begin\{([a-zA-Z*]+)\}`)
	endEnvPattern   = regexp.MustCompile(`\\end\{([a-zA-Z*]+)\}`)

	itemPattern = regexp.MustCompile(`\\item\b`)

	includeGraphicsPattern = regexp.MustCompile(`\\includegraphics(?:\[[^\]]*\])?\s*\{`)

	displayMathPattern = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	inlineMathPattern  = regexp.MustCompile(`\$([^$\n]+)\$`)

	fontFamilyPattern = regexp.MustCompile(`\\fontfamily\{([^}]*)\}\s*\\selectfont\s*`)

	// Page-layout and no-op commands carrying no content payload.
	noopCommandPattern = regexp.MustCompile(`\\(centering|vfill|vspace\*?\{[^}]*\}|hspace\*?\{[^}]*\}|newpage|clearpage|maketitle|tableofcontents|noindent)\b`)

	// Environment wrappers whose begin/end lines are dropped while their
	// content is kept for the structural pass.
	wrapperEnvPattern = regexp.MustCompile(`\\(?:begin|end)\{(titlepage|center|figure\*?|flushleft|flushright|minipage)\}(?:\[[^\]]*\])?(?:\{[^}]*\})?`)

	// Font-size switches inlined during normalization. The structural style
	// markers (\textbf, \textit, \underline, \texttt, \emph) are kept so the
	// per-line span pass can still see them.
	// Family switches (\rmfamily, \sffamily, \ttfamily) are not listed here:
	// they carry style the span pass re-detects.
	sizeSwitchPattern = regexp.MustCompile(`\\(Huge|huge|LARGE|Large|large|normalsize|small|footnotesize|scriptsize|tiny|bfseries|itshape)\b\s*`)
)

var headingLevels = map[string]int{
	"chapter":       1,
	"section":       1,
	"subsection":    2,
	"subsubsection": 3,
	"paragraph":     4,
	"subparagraph":  5,
}
