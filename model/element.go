package model

import "strings"

// ElementType represents the type of document block
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeTitle
	ElementTypeHeading
	ElementTypeParagraph
	ElementTypeTable
	ElementTypePageBreak
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeTitle:
		return "Title"
	case ElementTypeHeading:
		return "Heading"
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeTable:
		return "Table"
	case ElementTypePageBreak:
		return "PageBreak"
	default:
		return "Unknown"
	}
}

// Element is the interface for all document blocks
type Element interface {
	Type() ElementType
}

// TextElement is an interface for blocks containing text
type TextElement interface {
	Element
	GetText() string
}

// Run is a contiguous span of text carrying uniform formatting. A zero
// FontName or FontSize means the paragraph style applies.
type Run struct {
	Text     string
	FontName string
	FontSize float64 // points
	Style    TextStyle
}

// TextStyle represents text styling
type TextStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
	Color     Color
}

// TextAlignment represents text alignment
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a TextAlignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// Title is the title-page block: a main title rendered in the Title style and
// a subtitle paragraph below it.
type Title struct {
	Text      string
	Subtitle  Run
	Alignment TextAlignment
}

func (t *Title) Type() ElementType { return ElementTypeTitle }
func (t *Title) GetText() string {
	if t.Subtitle.Text == "" {
		return t.Text
	}
	return t.Text + "\n" + t.Subtitle.Text
}

// Heading represents a heading
type Heading struct {
	Level     int // 1-9
	Runs      []Run
	Alignment TextAlignment
}

func (h *Heading) Type() ElementType { return ElementTypeHeading }
func (h *Heading) GetText() string   { return joinRuns(h.Runs) }

// Paragraph represents a paragraph of text. Newlines inside run text are line
// breaks within the paragraph, not paragraph boundaries.
type Paragraph struct {
	Runs        []Run
	Alignment   TextAlignment
	LineSpacing float64 // multiple of single spacing; 0 means style default
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }
func (p *Paragraph) GetText() string   { return joinRuns(p.Runs) }

// PageBreak forces the following block onto a new page.
type PageBreak struct{}

func (pb *PageBreak) Type() ElementType { return ElementTypePageBreak }

func joinRuns(runs []Run) string {
	if len(runs) == 1 {
		return runs[0].Text
	}
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
