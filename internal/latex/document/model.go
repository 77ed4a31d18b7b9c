// Package document defines the structured in-memory representation of a
// LaTeX document: an ordered sequence of typed blocks, each holding inline
// runs with flat style attributes. The model is a disposable projection of
// the serialized LaTeX text, owned by exactly one editing session.
package document

import "time"

// BlockKind discriminates the Block variant.
type BlockKind string

const (
	KindParagraph    BlockKind = "paragraph"
	KindHeading      BlockKind = "heading"
	KindMetadata     BlockKind = "metadata"
	KindBulletList   BlockKind = "bulletList"
	KindNumberedList BlockKind = "numberedList"
	KindTable        BlockKind = "table"
	KindImage        BlockKind = "image"
	KindEquation     BlockKind = "equation"
)

// MetaField names the metadata slot a metadata block fills.
type MetaField string

const (
	MetaTitle  MetaField = "title"
	MetaAuthor MetaField = "author"
	MetaDate   MetaField = "date"
)

// Defaults used when a document carries no usable metadata.
const (
	DefaultTitle  = "LaTeX Document"
	DefaultAuthor = "Author"
)

// Span is one contiguous inline run sharing a single combined set of style
// attributes. Overlapping styles are represented by splitting text into
// several spans, never by nesting.
type Span struct {
	Text       string `json:"text"`
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Underline  bool   `json:"underline,omitempty"`
	Code       bool   `json:"code,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
}

// ListItem holds the inline runs of one list element.
type ListItem struct {
	Spans []Span `json:"spans"`
	Term  string `json:"term,omitempty"` // description lists only
}

// Cell holds the inline runs of one table cell.
type Cell struct {
	Spans []Span `json:"spans"`
}

// Row is an ordered sequence of cells.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Block is a tagged variant over the supported block kinds. Only the fields
// belonging to the Kind are populated; each block owns its children
// exclusively.
type Block struct {
	Kind BlockKind `json:"kind"`

	Spans []Span `json:"spans,omitempty"` // paragraph

	Level int `json:"level,omitempty"` // heading, 1-5

	Meta      MetaField `json:"meta,omitempty"` // metadata
	MetaValue string    `json:"metaValue,omitempty"`

	Items []ListItem `json:"items,omitempty"` // bulletList, numberedList

	Rows    []Row  `json:"rows,omitempty"` // table
	Cols    int    `json:"cols,omitempty"`
	ColSpec string `json:"colSpec,omitempty"` // stored verbatim from source

	URL     string `json:"url,omitempty"` // image
	Caption string `json:"caption,omitempty"`

	Formula string `json:"formula,omitempty"` // equation
}

// Document is an ordered block sequence. The three metadata blocks occupy
// positions 0-2 (title, author, date) and are never reordered by editing
// operations; at least one content block follows them.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// New returns a document seeded with the three metadata blocks and a single
// empty paragraph. Empty metadata values fall back to the shared defaults.
func New(title, author, date string) *Document {
	if title == "" {
		title = DefaultTitle
	}
	if author == "" {
		author = DefaultAuthor
	}
	if date == "" {
		date = Today()
	}
	return &Document{Blocks: []Block{
		{Kind: KindMetadata, Meta: MetaTitle, MetaValue: title},
		{Kind: KindMetadata, Meta: MetaAuthor, MetaValue: author},
		{Kind: KindMetadata, Meta: MetaDate, MetaValue: date},
		{Kind: KindParagraph, Spans: []Span{{Text: ""}}},
	}}
}

// Today formats the current local date the way \today renders it.
func Today() string {
	return time.Now().Format("January 2, 2006")
}

// NewTable constructs a table block, deriving Cols from the widest row. The
// cols invariant is enforced here, not continuously.
func NewTable(rows []Row, colSpec string) Block {
	cols := 0
	for _, r := range rows {
		if len(r.Cells) > cols {
			cols = len(r.Cells)
		}
	}
	return Block{Kind: KindTable, Rows: rows, Cols: cols, ColSpec: colSpec}
}

// Paragraph builds a paragraph block from a plain string.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Spans: []Span{{Text: text}}}
}

// Meta returns the value of the named metadata slot, or the empty string.
func (d *Document) Meta(field MetaField) string {
	for _, b := range d.Blocks {
		if b.Kind == KindMetadata && b.Meta == field {
			return b.MetaValue
		}
	}
	return ""
}

// SetMeta updates the named metadata slot in place when present.
func (d *Document) SetMeta(field MetaField, value string) {
	for i := range d.Blocks {
		if d.Blocks[i].Kind == KindMetadata && d.Blocks[i].Meta == field {
			d.Blocks[i].MetaValue = value
			return
		}
	}
}

// Content returns the blocks following the metadata prefix.
func (d *Document) Content() []Block {
	i := 0
	for i < len(d.Blocks) && d.Blocks[i].Kind == KindMetadata {
		i++
	}
	return d.Blocks[i:]
}

// Append adds a content block at the end of the document.
func (d *Document) Append(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// PlainText flattens the spans of a block into unstyled text. Used by
// exports and protection checks that care about content, not styling.
func (b *Block) PlainText() string {
	out := ""
	for _, s := range b.Spans {
		out += s.Text
	}
	return out
}

// SpanText flattens a span slice into plain text.
func SpanText(spans []Span) string {
	out := ""
	for _, s := range spans {
		out += s.Text
	}
	return out
}
