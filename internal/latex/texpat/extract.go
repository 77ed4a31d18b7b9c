// Package texpat recognizes and extracts the arguments of a fixed catalogue
// of LaTeX command and environment forms. Extractors are pure functions and
// never fail on malformed input: an unterminated argument degrades to
// "everything up to end of line", and anything unrecognized simply reports
// no match so callers can fall through to plain-text handling.
package texpat

import "strings"

// BraceArg scans a brace-delimited argument starting at s[open], which must
// be '{'. It returns the argument text, the index just past the closing
// brace, and whether the argument was properly closed. A missing closing
// brace degrades to consuming up to the end of the line (or end of input).
func BraceArg(s string, open int) (arg string, next int, closed bool) {
	if open >= len(s) || s[open] != '{' {
		return "", open, false
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip escaped character
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[open+1 : i], i + 1, true
			}
		}
	}
	rest := s[open+1:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return rest, open + 1 + len(rest), false
}

// Command extracts the first occurrence of \name{...} in s. The second
// return value is the index just past the consumed text; ok is false when
// the command does not occur at all.
func Command(s, name string) (arg string, end int, ok bool) {
	arg, _, end, ok = findCommand(s, name)
	return arg, end, ok
}

// StripCommand replaces every \name{X} in s with X, tolerating a missing
// closing brace on the last occurrence.
func StripCommand(s, name string) string {
	var b strings.Builder
	for {
		arg, start, end, ok := findCommand(s, name)
		if !ok {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		b.WriteString(arg)
		s = s[end:]
	}
}

func findCommand(s, name string) (arg string, start, end int, ok bool) {
	marker := "\\" + name
	from := 0
	for {
		idx := strings.Index(s[from:], marker)
		if idx < 0 {
			return "", 0, 0, false
		}
		idx += from
		after := idx + len(marker)
		// Reject partial matches such as \titlepage for \title.
		if after < len(s) && isCommandLetter(s[after]) {
			from = after
			continue
		}
		j := after
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if j >= len(s) || s[j] != '{' {
			from = after
			continue
		}
		arg, next, _ := BraceArg(s, j)
		return arg, idx, next, true
	}
}

// SizeBlock extracts the text of the first {\size ...} group, the title-page
// convention used when explicit metadata commands are absent.
func SizeBlock(s, size string) (text string, ok bool) {
	marker := "{\\" + size
	idx := strings.Index(s, marker)
	if idx < 0 {
		return "", false
	}
	arg, _, _ := BraceArg(s, idx)
	text = strings.TrimPrefix(arg, "\\"+size)
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

// Heading matches a sectioning command at the start of line and returns its
// level (1-5) and title text.
func Heading(line string) (level int, title string, ok bool) {
	m := headingPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, "", false
	}
	trimmed := strings.TrimSpace(line)
	open := strings.IndexByte(trimmed, '{')
	arg, _, _ := BraceArg(trimmed, open)
	return headingLevels[m[1]], strings.TrimSpace(arg), true
}

// BeginEnv reports the environment opened on the line, if any.
func BeginEnv(line string) (name string, ok bool) {
	m := beginEnvPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EndsEnv reports whether the line closes the named environment.
func EndsEnv(line, name string) bool {
	m := endEnvPattern.FindStringSubmatch(line)
	return m != nil && m[1] == name
}

// TabularSpec extracts the column specification from a \begin{tabular} line,
// preserved verbatim so re-serialization can reproduce it.
func TabularSpec(line string) (spec string, ok bool) {
	idx := strings.Index(line, "\\begin{tabular}")
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len("\\begin{tabular}"):]
	open := strings.IndexByte(rest, '{')
	if open < 0 {
		return "", true
	}
	spec, _, _ = BraceArg(rest, open)
	return spec, true
}

// IncludeGraphics extracts the image path from an \includegraphics command.
func IncludeGraphics(line string) (path string, ok bool) {
	loc := includeGraphicsPattern.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	arg, _, _ := BraceArg(line, loc[1]-1)
	return strings.TrimSpace(arg), true
}

// SplitItems splits a list environment body on \item separators, dropping
// the leading pre-item text. Items are trimmed; empty items are discarded.
func SplitItems(body string) []string {
	parts := itemPattern.Split(body, -1)
	if len(parts) == 0 {
		return nil
	}
	items := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

// DescriptionItem splits a description \item of the form "[term] definition".
// When the bracket convention is absent the whole text is the definition; an
// unclosed bracket leniently treats the remainder as the term.
func DescriptionItem(item string) (term, def string) {
	item = strings.TrimSpace(item)
	if !strings.HasPrefix(item, "[") {
		return "", item
	}
	if idx := strings.IndexByte(item, ']'); idx > 0 {
		return strings.TrimSpace(item[1:idx]), strings.TrimSpace(item[idx+1:])
	}
	return strings.TrimSpace(item[1:]), ""
}

// StripComments removes % comments up to end of line while keeping escaped
// \% literals intact.
func StripComments(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = stripCommentLine(line)
	}
	return strings.Join(lines, "\n")
}

func stripCommentLine(line string) string {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			return line[:i]
		}
	}
	return line
}

// StripNoops removes page-layout and other no-payload commands together
// with wrapper environment delimiters (titlepage, center, figure, ...).
func StripNoops(s string) string {
	s = wrapperEnvPattern.ReplaceAllString(s, "")
	s = noopCommandPattern.ReplaceAllString(s, "")
	return s
}

// InlineSizes flattens font-size switches and grouped size blocks so that
// structural splitting is not confused by the surrounding braces. Structural
// style markers (\textbf, \textit, \underline, \texttt, \emph) survive this
// pass and are picked up again by span detection.
func InlineSizes(s string) string {
	for _, size := range []string{"Huge", "huge", "LARGE", "Large", "large", "normalsize", "small", "footnotesize", "scriptsize", "tiny"} {
		for {
			marker := "{\\" + size
			idx := strings.Index(s, marker)
			if idx < 0 {
				break
			}
			arg, next, _ := BraceArg(s, idx)
			inner := strings.TrimSpace(strings.TrimPrefix(arg, "\\"+size))
			s = s[:idx] + inner + s[next:]
		}
	}
	for _, cmd := range []string{"textrm", "textsf", "textnormal", "mbox", "text"} {
		s = StripCommand(s, cmd)
	}
	return sizeSwitchPattern.ReplaceAllString(s, "")
}

// DisplayMath extracts the first $$...$$ formula on the line.
func DisplayMath(line string) (formula string, ok bool) {
	m := displayMathPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// InlineMath extracts the first $...$ formula on the line.
func InlineMath(line string) (formula string, ok bool) {
	_, formula, _, ok = SplitInlineMath(line)
	return formula, ok
}

// SplitInlineMath splits the line around its first $...$ run so renderers
// can process the surrounding text separately.
func SplitInlineMath(line string) (before, formula, after string, ok bool) {
	m := inlineMathPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return "", "", "", false
	}
	return line[:m[0]], strings.TrimSpace(line[m[2]:m[3]]), line[m[1]:], true
}

// FontFamily extracts the family name of a \fontfamily{..}\selectfont run.
func FontFamily(s string) (family string, rest string, ok bool) {
	m := fontFamilyPattern.FindStringSubmatchIndex(s)
	if m == nil {
		return "", s, false
	}
	return s[m[2]:m[3]], s[:m[0]] + s[m[1]:], true
}

func isCommandLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
