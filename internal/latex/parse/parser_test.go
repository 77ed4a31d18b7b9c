package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/serialize"
)

func TestParseMetadata(t *testing.T) {
	t.Run("empty source falls back to defaults", func(t *testing.T) {
		doc := Parse("")
		assert.Equal(t, document.DefaultTitle, doc.Meta(document.MetaTitle))
		assert.Equal(t, document.DefaultAuthor, doc.Meta(document.MetaAuthor))
		assert.Equal(t, document.Today(), doc.Meta(document.MetaDate))
	})

	t.Run("explicit commands win", func(t *testing.T) {
		src := "\\title{My Paper}\n\\author{Jane Doe}\n\\date{March 1, 2024}\n\\begin{document}\n\\end{document}"
		doc := Parse(src)
		assert.Equal(t, "My Paper", doc.Meta(document.MetaTitle))
		assert.Equal(t, "Jane Doe", doc.Meta(document.MetaAuthor))
		assert.Equal(t, "March 1, 2024", doc.Meta(document.MetaDate))
	})

	t.Run("title page size heuristics apply without explicit commands", func(t *testing.T) {
		src := "\\begin{document}\n\\begin{titlepage}\n{\\Huge Report Title}\n{\\Large Some Author}\n{\\large June 1, 2024}\n\\end{titlepage}\n\\end{document}"
		doc := Parse(src)
		assert.Equal(t, "Report Title", doc.Meta(document.MetaTitle))
		assert.Equal(t, "Some Author", doc.Meta(document.MetaAuthor))
		assert.Equal(t, "June 1, 2024", doc.Meta(document.MetaDate))
	})

	t.Run("today resolves to the formatted current date", func(t *testing.T) {
		doc := Parse("\\date{\\today}\n\\begin{document}\n\\end{document}")
		assert.Equal(t, document.Today(), doc.Meta(document.MetaDate))
	})
}

func TestParseBlocks(t *testing.T) {
	body := func(src string) string {
		return "\\begin{document}\n" + src + "\n\\end{document}"
	}

	t.Run("headings", func(t *testing.T) {
		doc := Parse(body("\\section{Intro}\n\\subsection{Background}"))
		content := doc.Content()
		require.Len(t, content, 2)
		assert.Equal(t, document.KindHeading, content[0].Kind)
		assert.Equal(t, 1, content[0].Level)
		assert.Equal(t, "Intro", document.SpanText(content[0].Spans))
		assert.Equal(t, 2, content[1].Level)
	})

	t.Run("styled paragraph yields flat spans", func(t *testing.T) {
		doc := Parse(body("Plain \\textbf{bold \\textit{both}} tail"))
		content := doc.Content()
		require.Len(t, content, 1)
		spans := content[0].Spans
		require.Len(t, spans, 4)
		assert.Equal(t, document.Span{Text: "Plain "}, spans[0])
		assert.Equal(t, document.Span{Text: "bold ", Bold: true}, spans[1])
		assert.Equal(t, document.Span{Text: "both", Bold: true, Italic: true}, spans[2])
		assert.Equal(t, document.Span{Text: " tail"}, spans[3])
	})

	t.Run("unterminated bold degrades to plain text", func(t *testing.T) {
		doc := Parse(body("\\textbf{Hello"))
		content := doc.Content()
		require.Len(t, content, 1)
		require.Len(t, content[0].Spans, 1)
		assert.Equal(t, "Hello", content[0].Spans[0].Text)
		assert.False(t, content[0].Spans[0].Bold)
	})

	t.Run("unknown command survives as literal text", func(t *testing.T) {
		doc := Parse(body("see \\ref{fig:one} above"))
		content := doc.Content()
		require.Len(t, content, 1)
		assert.Contains(t, document.SpanText(content[0].Spans), "\\ref")
	})

	t.Run("lists", func(t *testing.T) {
		doc := Parse(body("\\begin{itemize}\n\\item First\n\\item Second\n\\end{itemize}"))
		content := doc.Content()
		require.Len(t, content, 1)
		assert.Equal(t, document.KindBulletList, content[0].Kind)
		require.Len(t, content[0].Items, 2)
		assert.Equal(t, "First", document.SpanText(content[0].Items[0].Spans))
		assert.Equal(t, "Second", document.SpanText(content[0].Items[1].Spans))
	})

	t.Run("empty list produces no block", func(t *testing.T) {
		doc := Parse(body("\\begin{itemize}\n\\end{itemize}"))
		require.Len(t, doc.Content(), 1) // fallback empty paragraph
		assert.Equal(t, document.KindParagraph, doc.Content()[0].Kind)
	})

	t.Run("single-line list environment", func(t *testing.T) {
		doc := Parse(body("\\begin{itemize}\\item Only\\end{itemize}"))
		content := doc.Content()
		require.Len(t, content, 1)
		require.Len(t, content[0].Items, 1)
		assert.Equal(t, "Only", document.SpanText(content[0].Items[0].Spans))
	})

	t.Run("description list keeps terms", func(t *testing.T) {
		doc := Parse(body("\\begin{description}\n\\item[API] An interface\n\\end{description}"))
		content := doc.Content()
		require.Len(t, content, 1)
		require.Len(t, content[0].Items, 1)
		assert.Equal(t, "API", content[0].Items[0].Term)
		assert.Equal(t, "An interface", document.SpanText(content[0].Items[0].Spans))
	})

	t.Run("tabular with hline separators", func(t *testing.T) {
		doc := Parse(body("\\begin{tabular}{|c|r|}\n\\hline\na & b \\\\\n\\hline\nc & d \\\\\n\\hline\n\\end{tabular}"))
		content := doc.Content()
		require.Len(t, content, 1)
		blk := content[0]
		assert.Equal(t, document.KindTable, blk.Kind)
		assert.Equal(t, "|c|r|", blk.ColSpec)
		assert.Equal(t, 2, blk.Cols)
		require.Len(t, blk.Rows, 2)
		assert.Equal(t, "a", document.SpanText(blk.Rows[0].Cells[0].Spans))
		assert.Equal(t, "d", document.SpanText(blk.Rows[1].Cells[1].Spans))
	})

	t.Run("equation environments and display math", func(t *testing.T) {
		doc := Parse(body("\\begin{equation}\nE = mc^2\n\\end{equation}\n$$a^2 + b^2 = c^2$$"))
		content := doc.Content()
		require.Len(t, content, 2)
		assert.Equal(t, document.KindEquation, content[0].Kind)
		assert.Equal(t, "E = mc^2", content[0].Formula)
		assert.Equal(t, "a^2 + b^2 = c^2", content[1].Formula)
	})

	t.Run("image with caption", func(t *testing.T) {
		doc := Parse(body("\\includegraphics[width=0.8\\textwidth]{plot.png}\n\\caption{A plot}"))
		content := doc.Content()
		require.Len(t, content, 1)
		assert.Equal(t, document.KindImage, content[0].Kind)
		assert.Equal(t, "plot.png", content[0].URL)
		assert.Equal(t, "A plot", content[0].Caption)
	})

	t.Run("unterminated environment consumes the remainder", func(t *testing.T) {
		doc := Parse(body("\\begin{itemize}\n\\item Dangling"))
		content := doc.Content()
		require.Len(t, content, 1)
		require.Len(t, content[0].Items, 1)
		assert.Equal(t, "Dangling", document.SpanText(content[0].Items[0].Spans))
	})

	t.Run("comments never reach the model", func(t *testing.T) {
		doc := Parse(body("visible % hidden\n% whole line hidden"))
		content := doc.Content()
		require.Len(t, content, 1)
		assert.Equal(t, "visible", document.SpanText(content[0].Spans))
	})
}

const sampleSource = `\documentclass[12pt,a4paper,twoside]{report}
\title{Trip Report}
\author{Jane Doe}
\date{March 1, 2024}

\begin{document}
\maketitle

\section{Overview}

We visited \textbf{three} sites and logged \textit{every} finding.

\begin{itemize}
\item First stop
\item Second stop
\end{itemize}

\begin{tabular}{|c|r|}
\hline
site & count \\
\hline
\end{tabular}

\begin{equation}
x = y + 1
\end{equation}

\end{document}
`

func TestRoundTripFixedPoint(t *testing.T) {
	// One parse/serialize pass canonicalizes; after that the pair must be
	// a fixed point.
	first := serialize.Serialize(Parse(sampleSource))
	second := serialize.Serialize(Parse(first))
	assert.Equal(t, first, second)

	third := serialize.Serialize(Parse(second))
	assert.Equal(t, second, third)
}

func TestRoundTripPreservesContent(t *testing.T) {
	out := serialize.Serialize(Parse(sampleSource))

	assert.Contains(t, out, "\\title{Trip Report}")
	assert.Contains(t, out, "\\author{Jane Doe}")
	assert.Contains(t, out, "\\section{Overview}")
	assert.Contains(t, out, "\\textbf{three}")
	assert.Contains(t, out, "\\textit{every}")
	assert.Contains(t, out, "\\item First stop")
	assert.Contains(t, out, "\\begin{tabular}{|c|r|}")
	assert.Contains(t, out, "x = y + 1")
}

func TestParseNeverReturnsEmptyDocument(t *testing.T) {
	for _, src := range []string{"", "\\begin{document}\\end{document}", "% only comments"} {
		doc := Parse(src)
		require.NotNil(t, doc)
		assert.GreaterOrEqual(t, len(doc.Content()), 1, "source %q", src)
	}
}

func TestFontFamilyRoundTrip(t *testing.T) {
	src := "\\begin{document}\n\\ttfamily monospace text\n\\end{document}"
	doc := Parse(src)
	content := doc.Content()
	require.Len(t, content, 1)
	require.NotEmpty(t, content[0].Spans)
	assert.Equal(t, "tt", content[0].Spans[0].FontFamily)

	out := serialize.Serialize(doc)
	assert.Contains(t, out, "\\ttfamily monospace text")

	again := serialize.Serialize(Parse(out))
	assert.Equal(t, out, again)
}

func TestNormalizeStripsLayoutOnly(t *testing.T) {
	src := "\\begin{center}\n{\\Large Centered \\textbf{Bold}}\n\\end{center}"
	out := normalize(src)
	assert.NotContains(t, out, "center")
	assert.NotContains(t, out, "\\Large")
	assert.Contains(t, out, "\\textbf{Bold}")
	assert.Contains(t, out, "Centered")
}

func TestExtractBody(t *testing.T) {
	assert.Equal(t, "body", extractBody("preamble\\begin{document}body\\end{document}trailer"))
	assert.Equal(t, "no markers", extractBody("no markers"))
	assert.Equal(t, "open ended", extractBody("\\begin{document}open ended"))
}

func TestSerializeIsDeterministic(t *testing.T) {
	doc := Parse(sampleSource)
	assert.Equal(t, serialize.Serialize(doc), serialize.Serialize(doc))
	assert.True(t, strings.HasPrefix(serialize.Serialize(doc), "\\documentclass"))
}
