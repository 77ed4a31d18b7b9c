package parse

import (
	"strings"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/texpat"
)

type style struct {
	bold      bool
	italic    bool
	underline bool
	code      bool
	family    string
}

func (st style) span(text string) document.Span {
	return document.Span{
		Text:       text,
		Bold:       st.bold,
		Italic:     st.italic,
		Underline:  st.underline,
		Code:       st.code,
		FontFamily: st.family,
	}
}

// detectSpans is the second half of the strip-then-redetect design: it walks
// a single normalized line and converts the surviving style markers into
// flat spans carrying combined attribute sets. Nested commands extend the
// active set; an unterminated command contributes its bare text unstyled.
func detectSpans(line string) []document.Span {
	spans := scanStyled(line, style{})
	if len(spans) == 0 {
		spans = []document.Span{{Text: strings.TrimSpace(line)}}
	}
	return spans
}

func scanStyled(s string, st style) []document.Span {
	var spans []document.Span
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			spans = append(spans, st.span(text.String()))
			text.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if s[i] != '\\' {
			text.WriteByte(s[i])
			i++
			continue
		}

		name, after := commandName(s, i)
		if name == "fontfamily" {
			if fam, ok, next := fontFamilyAt(s, after); ok {
				flush()
				st.family = fam
				i = skipOneSpace(s, next)
				continue
			}
		}
		if fam, ok := familySwitch(name); ok {
			flush()
			st.family = fam
			i = skipOneSpace(s, after)
			continue
		}

		next, ok := styleFor(name, st)
		if !ok {
			// Unrecognized command: keep it as literal text so nothing the
			// catalogue does not know is lost.
			text.WriteString(s[i:after])
			i = after
			continue
		}

		j := after
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if j >= len(s) || s[j] != '{' {
			i = after
			continue
		}
		arg, end, closed := texpat.BraceArg(s, j)
		flush()
		if closed {
			spans = append(spans, scanStyled(arg, next)...)
		} else {
			// Incomplete command: degrade to the bare text, unstyled.
			spans = append(spans, scanStyled(arg, st)...)
		}
		i = end
	}
	flush()
	return spans
}

func styleFor(name string, st style) (style, bool) {
	switch name {
	case "textbf":
		st.bold = true
	case "textit", "emph":
		st.italic = true
	case "underline":
		st.underline = true
	case "texttt":
		st.code = true
	default:
		return st, false
	}
	return st, true
}

// commandName reads the letters following a backslash at s[i].
func commandName(s string, i int) (name string, after int) {
	j := i + 1
	for j < len(s) && isLetter(s[j]) {
		j++
	}
	return s[i+1 : j], j
}

// fontFamilyAt parses {family}\selectfont starting right after a
// \fontfamily command.
func fontFamilyAt(s string, after int) (family string, ok bool, next int) {
	if after >= len(s) || s[after] != '{' {
		return "", false, after
	}
	fam, end, closed := texpat.BraceArg(s, after)
	if !closed {
		return "", false, after
	}
	rest := s[end:]
	trimmed := strings.TrimLeft(rest, " \t")
	if strings.HasPrefix(trimmed, "\\selectfont") {
		skip := len(rest) - len(trimmed) + len("\\selectfont")
		return fam, true, end + skip
	}
	return fam, true, end
}

// familySwitch maps the standard family switch commands to the short family
// names the serializer emits them back from.
func familySwitch(name string) (string, bool) {
	switch name {
	case "rmfamily":
		return "rm", true
	case "sffamily":
		return "sf", true
	case "ttfamily":
		return "tt", true
	}
	return "", false
}

// skipOneSpace consumes the single separating space a command switch leaves
// before its affected text, keeping span text byte-stable on round trips.
func skipOneSpace(s string, i int) int {
	if i < len(s) && s[i] == ' ' {
		return i + 1
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
