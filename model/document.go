package model

import (
	"strings"
	"time"
)

// Document represents a complete authored document: metadata, one page-layout
// section and the ordered block sequence.
type Document struct {
	Metadata Metadata
	Section  Section
	Elements []Element
}

// Metadata contains document-level information
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	CreationDate time.Time
	ModDate      time.Time
	// Custom metadata
	Custom map[string]string
}

// Section is a page-layout region. Documents built here have exactly one.
type Section struct {
	PageWidth  Length
	PageHeight Length
	Margins    Margins
}

// Margins holds the four page margins of a section.
type Margins struct {
	Top    Length
	Bottom Length
	Left   Length
	Right  Length
}

// UniformMargins returns margins with the same value on every side.
func UniformMargins(l Length) Margins {
	return Margins{Top: l, Bottom: l, Left: l, Right: l}
}

// DefaultSection returns a US Letter section with one-inch margins.
func DefaultSection() Section {
	return Section{
		PageWidth:  Inches(8.5),
		PageHeight: Inches(11),
		Margins:    UniformMargins(Inches(1)),
	}
}

// TextWidth returns the page width between the left and right margins.
func (s Section) TextWidth() Length {
	return s.PageWidth - s.Margins.Left - s.Margins.Right
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		Section:  DefaultSection(),
		Elements: make([]Element, 0),
	}
}

// Append adds blocks to the end of the document
func (d *Document) Append(elems ...Element) {
	d.Elements = append(d.Elements, elems...)
}

// Len returns the number of blocks
func (d *Document) Len() int {
	return len(d.Elements)
}

// ExtractText returns all text content, one block per line group
func (d *Document) ExtractText() string {
	var sb strings.Builder
	for _, elem := range d.Elements {
		if te, ok := elem.(TextElement); ok {
			sb.WriteString(te.GetText())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// ExtractTables returns all tables in document order
func (d *Document) ExtractTables() []*Table {
	var tables []*Table
	for _, elem := range d.Elements {
		if table, ok := elem.(*Table); ok {
			tables = append(tables, table)
		}
	}
	return tables
}

// Headings returns all headings in document order
func (d *Document) Headings() []*Heading {
	var headings []*Heading
	for _, elem := range d.Elements {
		if h, ok := elem.(*Heading); ok {
			headings = append(headings, h)
		}
	}
	return headings
}

// Types returns the element type of every block, in order.
func (d *Document) Types() []ElementType {
	types := make([]ElementType, len(d.Elements))
	for i, elem := range d.Elements {
		types[i] = elem.Type()
	}
	return types
}

// TableOfContents returns headings organized as a document outline
func (d *Document) TableOfContents() []TOCEntry {
	var toc []TOCEntry
	for _, h := range d.Headings() {
		toc = append(toc, TOCEntry{
			Level: h.Level,
			Text:  h.GetText(),
		})
	}
	return toc
}

// TOCEntry represents an entry in the table of contents
type TOCEntry struct {
	Level int    // Heading level (1-9)
	Text  string // Heading text
}
