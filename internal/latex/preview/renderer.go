// Package preview renders LaTeX text to HTML for the live preview pane.
// The transform is one-way and best-effort: output is never parsed back,
// constructs outside the catalogue degrade to labeled placeholders, and a
// failure while rendering one construct is replaced with an inline error
// marker without aborting the rest of the document.
package preview

import (
	"html"
	"strings"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/texpat"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/logger"
)

// Render converts LaTeX source into preview HTML.
func Render(src string) string {
	src = texpat.StripComments(src)
	body := src
	if idx := strings.Index(src, "\\begin{document}"); idx >= 0 {
		body = src[idx+len("\\begin{document}"):]
		if end := strings.Index(body, "\\end{document}"); end >= 0 {
			body = body[:end]
		}
	}

	var b strings.Builder
	b.WriteString(`<div class="latex-preview">`)
	b.WriteString("\n")

	lines := strings.Split(body, "\n")
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" || isChrome(line) {
			i++
			continue
		}
		i = renderConstruct(&b, lines, i)
	}

	b.WriteString("</div>")
	return b.String()
}

// renderConstruct renders the construct starting at line i and returns the
// next line index. A panic inside a single construct is converted into an
// inline error marker.
func renderConstruct(b *strings.Builder, lines []string, i int) (next int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("preview construct failed", logger.Int("line", i))
			b.WriteString(`<span class="latex-render-error">rendering error</span>` + "\n")
			if next <= i {
				next = i + 1
			}
		}
	}()
	return renderLine(b, lines, i)
}

func renderLine(b *strings.Builder, lines []string, i int) int {
	line := strings.TrimSpace(lines[i])

	if level, title, ok := texpat.Heading(line); ok {
		tag := headingTags[level]
		b.WriteString("<" + tag + ">" + inlineHTML(title) + "</" + tag + ">\n")
		return i + 1
	}

	if env, ok := texpat.BeginEnv(line); ok {
		switch env {
		case "itemize", "enumerate":
			return renderList(b, lines, i, env)
		case "description":
			return renderDescription(b, lines, i)
		case "tabular":
			return renderTable(b, lines, i)
		case "equation", "equation*", "align", "align*", "displaymath":
			body, next := collectEnv(lines, i, env)
			b.WriteString(`<div class="math-display">` + html.EscapeString(strings.TrimSpace(body)) + "</div>\n")
			return next
		case "tikzpicture":
			body, next := collectEnv(lines, i, env)
			b.WriteString(renderTikz(body))
			return next
		case "figure", "figure*", "center", "titlepage", "flushleft", "flushright":
			// Transparent wrappers: render their content lines.
			return i + 1
		default:
			_, next := collectEnv(lines, i, env)
			b.WriteString(`<div class="latex-placeholder">unsupported environment: ` + html.EscapeString(env) + "</div>\n")
			return next
		}
	}

	if f, ok := texpat.DisplayMath(line); ok {
		b.WriteString(`<div class="math-display">` + html.EscapeString(f) + "</div>\n")
		return i + 1
	}

	if path, ok := texpat.IncludeGraphics(line); ok {
		b.WriteString(`<img class="latex-image" src="` + html.EscapeString(path) + `" alt="">` + "\n")
		return i + 1
	}

	if caption, _, ok := texpat.Command(line, "caption"); ok {
		b.WriteString(`<figcaption>` + inlineHTML(caption) + "</figcaption>\n")
		return i + 1
	}

	b.WriteString("<p>" + inlineHTML(line) + "</p>\n")
	return i + 1
}

var headingTags = [...]string{1: "h1", 2: "h2", 3: "h3", 4: "h4", 5: "h5"}

func renderList(b *strings.Builder, lines []string, i int, env string) int {
	body, next := collectEnv(lines, i, env)
	tag := "ul"
	if env == "enumerate" {
		tag = "ol"
	}
	items := texpat.SplitItems(body)
	if len(items) == 0 {
		return next
	}
	b.WriteString("<" + tag + ">\n")
	for _, it := range items {
		b.WriteString("<li>" + inlineHTML(it) + "</li>\n")
	}
	b.WriteString("</" + tag + ">\n")
	return next
}

func renderDescription(b *strings.Builder, lines []string, i int) int {
	body, next := collectEnv(lines, i, "description")
	items := texpat.SplitItems(body)
	if len(items) == 0 {
		return next
	}
	b.WriteString("<dl>\n")
	for _, it := range items {
		term, def := texpat.DescriptionItem(it)
		if term != "" {
			b.WriteString("<dt>" + inlineHTML(term) + "</dt>\n")
		}
		b.WriteString("<dd>" + inlineHTML(def) + "</dd>\n")
	}
	b.WriteString("</dl>\n")
	return next
}

func renderTable(b *strings.Builder, lines []string, i int) int {
	body, next := collectEnv(lines, i, "tabular")
	body = strings.ReplaceAll(body, "\\hline", "\n")

	b.WriteString(`<table class="latex-table">` + "\n")
	for _, rawRow := range strings.Split(body, "\\\\") {
		rawRow = strings.TrimSpace(rawRow)
		if rawRow == "" {
			continue
		}
		b.WriteString("<tr>")
		for _, cell := range strings.Split(rawRow, "&") {
			b.WriteString("<td>" + inlineHTML(strings.TrimSpace(cell)) + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
	return next
}

// collectEnv mirrors the parser's environment gathering, kept separate so
// the preview stays independent of the round-trip engine.
func collectEnv(lines []string, i int, env string) (string, int) {
	begin := "\\begin{" + env + "}"
	end := "\\end{" + env + "}"

	cur := lines[i]
	if idx := strings.Index(cur, begin); idx >= 0 {
		cur = cur[idx+len(begin):]
	}
	if env == "tabular" {
		trimmed := strings.TrimLeft(cur, " \t")
		if strings.HasPrefix(trimmed, "{") {
			_, next, _ := texpat.BraceArg(trimmed, 0)
			cur = trimmed[next:]
		}
	}

	var parts []string
	j := i
	for {
		if idx := strings.Index(cur, end); idx >= 0 {
			parts = append(parts, cur[:idx])
			return strings.Join(parts, "\n"), j + 1
		}
		parts = append(parts, cur)
		j++
		if j >= len(lines) {
			return strings.Join(parts, "\n"), j
		}
		cur = lines[j]
	}
}

// isChrome reports lines that carry no preview content.
func isChrome(line string) bool {
	switch {
	case strings.HasPrefix(line, "\\documentclass"),
		strings.HasPrefix(line, "\\usepackage"),
		strings.HasPrefix(line, "\\maketitle"),
		strings.HasPrefix(line, "\\centering"),
		strings.HasPrefix(line, "\\vfill"),
		strings.HasPrefix(line, "\\newpage"),
		strings.HasPrefix(line, "\\tableofcontents"):
		return true
	}
	return texpat.EndsEnv(line, "figure") ||
		texpat.EndsEnv(line, "center") ||
		texpat.EndsEnv(line, "titlepage")
}

// inlineHTML maps the inline command catalogue to HTML tags. Inline math is
// wrapped in a span carrying the escaped TeX for client-side typesetting.
func inlineHTML(s string) string {
	s = replaceInline(s, "textbf", "strong")
	s = replaceInline(s, "textit", "em")
	s = replaceInline(s, "emph", "em")
	s = replaceInline(s, "underline", "u")
	s = replaceInline(s, "texttt", "code")
	s = replaceInline(s, "textrm", "span")
	s = replaceInline(s, "textsf", "span")

	var b strings.Builder
	rest := s
	for {
		before, formula, after, ok := texpat.SplitInlineMath(rest)
		if !ok {
			b.WriteString(html.EscapeString(rest))
			break
		}
		b.WriteString(html.EscapeString(before))
		b.WriteString(`<span class="math-inline">` + html.EscapeString(formula) + "</span>")
		rest = after
	}
	out := b.String()

	// Escaping also neutralized the tags we just inserted; restore them.
	for _, tag := range []string{"strong", "em", "u", "code", "span"} {
		out = strings.ReplaceAll(out, "&lt;"+tag+"&gt;", "<"+tag+">")
		out = strings.ReplaceAll(out, "&lt;/"+tag+"&gt;", "</"+tag+">")
	}
	return out
}

func replaceInline(s, cmd, tag string) string {
	for {
		arg, end, ok := texpat.Command(s, cmd)
		if !ok {
			return s
		}
		idx := strings.Index(s, "\\"+cmd)
		s = s[:idx] + "<" + tag + ">" + arg + "</" + tag + ">" + s[end:]
	}
}
