// Package serialize is the inverse of parse: it emits compilable LaTeX from
// a document model. Serialization is deterministic and total; every block
// kind has exactly one mapping and there is no failure path.
package serialize

import (
	"fmt"
	"strings"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
)

// Serialize produces the full LaTeX text for a document: fixed preamble,
// metadata commands, \begin{document}, \maketitle, the body, and
// \end{document}.
func Serialize(doc *document.Document) string {
	var b strings.Builder
	b.WriteString(Preamble())
	b.WriteString("\n")

	b.WriteString("\\title{" + metaOr(doc, document.MetaTitle, document.DefaultTitle) + "}\n")
	b.WriteString("\\author{" + metaOr(doc, document.MetaAuthor, document.DefaultAuthor) + "}\n")
	b.WriteString("\\date{" + metaOr(doc, document.MetaDate, document.Today()) + "}\n")
	b.WriteString("\n\\begin{document}\n\\maketitle\n\n")

	for _, blk := range doc.Content() {
		writeBlock(&b, blk)
	}

	b.WriteString("\\end{document}\n")
	return b.String()
}

func metaOr(doc *document.Document, field document.MetaField, fallback string) string {
	if v := strings.TrimSpace(doc.Meta(field)); v != "" {
		return escapeText(v)
	}
	return fallback
}

var headingCommands = [...]string{1: "section", 2: "subsection", 3: "subsubsection", 4: "paragraph", 5: "subparagraph"}

func writeBlock(b *strings.Builder, blk document.Block) {
	switch blk.Kind {
	case document.KindHeading:
		level := blk.Level
		if level < 1 {
			level = 1
		}
		if level > 5 {
			level = 5
		}
		b.WriteString("\\" + headingCommands[level] + "{" + Spans(blk.Spans) + "}\n\n")

	case document.KindParagraph:
		if text := Spans(blk.Spans); text != "" {
			b.WriteString(text + "\n\n")
		}

	case document.KindBulletList, document.KindNumberedList:
		writeList(b, blk)

	case document.KindTable:
		writeTable(b, blk)

	case document.KindEquation:
		b.WriteString("\\begin{equation}\n" + blk.Formula + "\n\\end{equation}\n\n")

	case document.KindImage:
		b.WriteString("\\begin{figure}[h]\n\\centering\n")
		b.WriteString("\\includegraphics[width=0.8\\textwidth]{" + blk.URL + "}\n")
		if blk.Caption != "" {
			b.WriteString("\\caption{" + escapeText(blk.Caption) + "}\n")
		}
		b.WriteString("\\end{figure}\n\n")

	case document.KindMetadata:
		// Metadata is emitted in the preamble; a stray metadata block in the
		// body serializes to nothing.
	}
}

func writeList(b *strings.Builder, blk document.Block) {
	if len(blk.Items) == 0 {
		return
	}
	env := "itemize"
	if blk.Kind == document.KindNumberedList {
		env = "enumerate"
	}
	for _, it := range blk.Items {
		if it.Term != "" {
			env = "description"
			break
		}
	}

	b.WriteString("\\begin{" + env + "}\n")
	for _, it := range blk.Items {
		if env == "description" {
			b.WriteString("\\item[" + escapeText(it.Term) + "] " + Spans(it.Spans) + "\n")
			continue
		}
		b.WriteString("\\item " + Spans(it.Spans) + "\n")
	}
	b.WriteString("\\end{" + env + "}\n\n")
}

// writeTable reuses the stored column spec verbatim when present so the
// author's column formatting survives a round trip; otherwise a centered
// spec is synthesized from the widest row. \hline frames every row.
func writeTable(b *strings.Builder, blk document.Block) {
	spec := blk.ColSpec
	if spec == "" {
		cols := blk.Cols
		if cols == 0 {
			for _, r := range blk.Rows {
				if len(r.Cells) > cols {
					cols = len(r.Cells)
				}
			}
		}
		spec = "|" + strings.Repeat("c|", cols)
	}

	b.WriteString("\\begin{tabular}{" + spec + "}\n\\hline\n")
	for _, row := range blk.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, Spans(c.Spans))
		}
		b.WriteString(strings.Join(cells, " & ") + " \\\\\n\\hline\n")
	}
	b.WriteString("\\end{tabular}\n\n")
}

// Spans serializes inline runs, wrapping each span's text in the command
// for every active style attribute in a fixed nesting order: bold outermost,
// then italic, underline, code, and finally the font-family wrapper.
func Spans(spans []document.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(span(s))
	}
	return b.String()
}

func span(s document.Span) string {
	text := escapeText(s.Text)
	if text == "" {
		return ""
	}
	switch s.FontFamily {
	case "":
	case "rm":
		text = "\\rmfamily " + text
	case "sf":
		text = "\\sffamily " + text
	case "tt":
		text = "\\ttfamily " + text
	default:
		text = fmt.Sprintf("\\fontfamily{%s}\\selectfont %s", s.FontFamily, text)
	}
	if s.Code {
		text = "\\texttt{" + text + "}"
	}
	if s.Underline {
		text = "\\underline{" + text + "}"
	}
	if s.Italic {
		text = "\\textit{" + text + "}"
	}
	if s.Bold {
		text = "\\textbf{" + text + "}"
	}
	return text
}

// escapeText protects the characters that would otherwise change meaning on
// reparse. Ampersands are left alone outside tables, matching the editor's
// own output.
func escapeText(text string) string {
	if strings.Contains(text, "%") && !strings.Contains(text, "\\%") {
		text = strings.ReplaceAll(text, "%", "\\%")
	}
	return text
}
