package serialize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
)

func TestPreamble(t *testing.T) {
	p := Preamble()

	assert.True(t, strings.HasPrefix(p, "\\documentclass[12pt,a4paper,twoside]{report}\n"))
	assert.Contains(t, p, "\\usepackage[utf8]{inputenc}")
	assert.Contains(t, p, "\\usepackage[table]{xcolor}")

	// Category order: layout before math before graphics.
	assert.Less(t, strings.Index(p, "{geometry}"), strings.Index(p, "{amsmath}"))
	assert.Less(t, strings.Index(p, "{amsmath}"), strings.Index(p, "{graphicx}"))
	assert.Less(t, strings.Index(p, "{booktabs}"), strings.Index(p, "{titling}"))

	assert.Equal(t, p, Preamble())
}

func TestSerializeMetadata(t *testing.T) {
	t.Run("emits stored metadata", func(t *testing.T) {
		doc := document.New("My Paper", "Jane", "March 1, 2024")
		out := Serialize(doc)
		assert.Contains(t, out, "\\title{My Paper}\n")
		assert.Contains(t, out, "\\author{Jane}\n")
		assert.Contains(t, out, "\\date{March 1, 2024}\n")
		assert.Contains(t, out, "\\begin{document}\n\\maketitle\n")
		assert.True(t, strings.HasSuffix(out, "\\end{document}\n"))
	})

	t.Run("blank metadata falls back to defaults", func(t *testing.T) {
		doc := document.New("x", "y", "z")
		doc.SetMeta(document.MetaTitle, "  ")
		out := Serialize(doc)
		assert.Contains(t, out, "\\title{"+document.DefaultTitle+"}")
	})
}

func TestSpanNesting(t *testing.T) {
	out := Spans([]document.Span{{Text: "all", Bold: true, Italic: true, Underline: true, Code: true}})
	assert.Equal(t, "\\textbf{\\textit{\\underline{\\texttt{all}}}}", out)

	out = Spans([]document.Span{{Text: "mono", FontFamily: "tt"}})
	assert.Equal(t, "\\ttfamily mono", out)

	out = Spans([]document.Span{{Text: "times", FontFamily: "ptm"}})
	assert.Equal(t, "\\fontfamily{ptm}\\selectfont times", out)

	assert.Empty(t, Spans([]document.Span{{Text: ""}}))
}

func TestSerializeLists(t *testing.T) {
	doc := document.New("", "", "")
	doc.Blocks = doc.Blocks[:3]
	doc.Append(document.Block{Kind: document.KindNumberedList, Items: []document.ListItem{
		{Spans: []document.Span{{Text: "one"}}},
		{Spans: []document.Span{{Text: "two"}}},
	}})
	out := Serialize(doc)
	assert.Contains(t, out, "\\begin{enumerate}\n\\item one\n\\item two\n\\end{enumerate}")

	doc.Blocks = doc.Blocks[:3]
	doc.Append(document.Block{Kind: document.KindBulletList, Items: []document.ListItem{
		{Term: "API", Spans: []document.Span{{Text: "an interface"}}},
	}})
	out = Serialize(doc)
	assert.Contains(t, out, "\\begin{description}\n\\item[API] an interface\n\\end{description}")
}

func TestSerializeTable(t *testing.T) {
	rows := []document.Row{
		{Cells: []document.Cell{
			{Spans: []document.Span{{Text: "a"}}},
			{Spans: []document.Span{{Text: "b"}}},
		}},
	}

	t.Run("stored column spec is reused verbatim", func(t *testing.T) {
		doc := document.New("", "", "")
		doc.Append(document.NewTable(rows, "|l|r|"))
		assert.Contains(t, Serialize(doc), "\\begin{tabular}{|l|r|}")
	})

	t.Run("missing spec synthesizes centered columns", func(t *testing.T) {
		doc := document.New("", "", "")
		doc.Append(document.NewTable(rows, ""))
		out := Serialize(doc)
		assert.Contains(t, out, "\\begin{tabular}{|c|c|}")
		assert.Contains(t, out, "a & b \\\\")
	})
}

func TestSerializeImage(t *testing.T) {
	doc := document.New("", "", "")
	doc.Append(document.Block{Kind: document.KindImage, URL: "plot.png", Caption: "A plot"})
	out := Serialize(doc)
	assert.Contains(t, out, "\\includegraphics[width=0.8\\textwidth]{plot.png}")
	assert.Contains(t, out, "\\caption{A plot}")
	require.Contains(t, out, "\\begin{figure}[h]")
}

func TestEscapePercent(t *testing.T) {
	out := Spans([]document.Span{{Text: "50% off"}})
	assert.Equal(t, "50\\% off", out)

	// Already-escaped text is left untouched.
	out = Spans([]document.Span{{Text: "50\\% off"}})
	assert.Equal(t, "50\\% off", out)
}
