// Package parse transforms raw LaTeX source into the structured document
// model. Parsing is lenient by design: malformed constructs degrade to
// plain-text handling, and an unexpected failure in the structural pass is
// caught at the top level and surfaced as a single error paragraph rather
// than an error return. The original source text stays authoritative; the
// model is only a projection of it.
package parse

import (
	"strings"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/texpat"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/logger"
)

// Parse converts a full LaTeX source string into a Document. It never
// panics past this boundary.
func Parse(src string) (doc *document.Document) {
	title, author, date := extractMetadata(src)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("latex parse failed", logger.String("panic", panicString(r)))
			doc = document.New(title, author, date)
			doc.Blocks[3] = document.Paragraph("Unable to parse document content. The original source is unchanged.")
		}
	}()

	body := extractBody(normalize(src))
	blocks := scanBlocks(body)
	if len(blocks) == 0 {
		blocks = []document.Block{document.Paragraph("")}
	}

	doc = document.New(title, author, date)
	doc.Blocks = append(doc.Blocks[:3], blocks...)
	return doc
}

// scanBlocks is the line-oriented structural pass.
func scanBlocks(body string) []document.Block {
	lines := strings.Split(body, "\n")
	blocks := make([]document.Block, 0, len(lines)/2)

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if level, title, ok := texpat.Heading(line); ok {
			blocks = append(blocks, document.Block{Kind: document.KindHeading, Level: level, Spans: detectSpans(title)})
			i++
			continue
		}

		if env, ok := texpat.BeginEnv(line); ok {
			switch env {
			case "itemize", "enumerate":
				body, next := collectEnv(lines, i, env)
				if b, ok := listBlock(body, env); ok {
					blocks = append(blocks, b)
				}
				i = next
				continue
			case "description":
				body, next := collectEnv(lines, i, env)
				if b, ok := descriptionBlock(body); ok {
					blocks = append(blocks, b)
				}
				i = next
				continue
			case "tabular":
				body, next := collectEnv(lines, i, env)
				blocks = append(blocks, tableBlock(body, line))
				i = next
				continue
			case "equation", "equation*", "align", "align*", "displaymath":
				body, next := collectEnv(lines, i, env)
				if f := strings.TrimSpace(body); f != "" {
					blocks = append(blocks, document.Block{Kind: document.KindEquation, Formula: f})
				}
				i = next
				continue
			}
		}

		if f, ok := texpat.DisplayMath(line); ok {
			blocks = append(blocks, document.Block{Kind: document.KindEquation, Formula: f})
			i++
			continue
		}

		if path, ok := texpat.IncludeGraphics(line); ok {
			blocks = append(blocks, document.Block{Kind: document.KindImage, URL: path})
			i++
			continue
		}

		if caption, _, ok := texpat.Command(line, "caption"); ok {
			attachCaption(blocks, caption)
			i++
			continue
		}

		blocks = append(blocks, document.Block{Kind: document.KindParagraph, Spans: detectSpans(line)})
		i++
	}
	return blocks
}

// collectEnv gathers the body of \begin{env}...\end{env} starting on line i,
// handling the single-line form and degrading to end-of-input when the
// closing tag is missing. It returns the inner text and the next line index.
func collectEnv(lines []string, i int, env string) (string, int) {
	begin := "\\begin{" + env + "}"
	end := "\\end{" + env + "}"

	cur := lines[i]
	if idx := strings.Index(cur, begin); idx >= 0 {
		cur = cur[idx+len(begin):]
	}
	// Drop a leading required argument (tabular colspec).
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

func listBlock(body, env string) (document.Block, bool) {
	kind := document.KindBulletList
	if env == "enumerate" {
		kind = document.KindNumberedList
	}
	raw := texpat.SplitItems(body)
	if len(raw) == 0 {
		return document.Block{}, false
	}
	items := make([]document.ListItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, document.ListItem{Spans: detectSpans(r)})
	}
	return document.Block{Kind: kind, Items: items}, true
}

func descriptionBlock(body string) (document.Block, bool) {
	raw := texpat.SplitItems(body)
	if len(raw) == 0 {
		return document.Block{}, false
	}
	items := make([]document.ListItem, 0, len(raw))
	for _, r := range raw {
		term, def := texpat.DescriptionItem(r)
		items = append(items, document.ListItem{Term: term, Spans: detectSpans(def)})
	}
	return document.Block{Kind: document.KindBulletList, Items: items}, true
}

// tableBlock parses a tabular body. \hline acts as a row separator, never
// row content; remaining rows split on \\ then on & for cells. The column
// spec from the begin line is kept verbatim on the block.
func tableBlock(body, beginLine string) document.Block {
	spec, _ := texpat.TabularSpec(beginLine)

	cleaned := strings.ReplaceAll(body, "\\hline", "\n")
	var rows []document.Row
	for _, rawRow := range strings.Split(cleaned, "\\\\") {
		rawRow = strings.TrimSpace(rawRow)
		if rawRow == "" {
			continue
		}
		var cells []document.Cell
		for _, rawCell := range strings.Split(rawRow, "&") {
			cells = append(cells, document.Cell{Spans: detectSpans(strings.TrimSpace(rawCell))})
		}
		rows = append(rows, document.Row{Cells: cells})
	}
	return document.NewTable(rows, spec)
}

func attachCaption(blocks []document.Block, caption string) {
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].Kind == document.KindImage && blocks[i].Caption == "" {
			blocks[i].Caption = strings.TrimSpace(caption)
			return
		}
	}
}

func panicString(r interface{}) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	if s, ok := r.(string); ok {
		return s
	}
	return "unknown"
}
