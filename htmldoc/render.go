// Package htmldoc renders a model.Document as a standalone HTML page.
//
// The page mirrors the DOCX layout closely enough to preview a report in a
// browser: section margins become an @page rule, run formatting becomes inline
// styles, tables use a bordered grid and page breaks become print breaks.
package htmldoc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/quill/model"
)

// Class names used in the generated markup.
const (
	ClassTitle     = "title"
	ClassSubtitle  = "subtitle"
	ClassGrid      = "grid"
	ClassPageBreak = "page-break"
)

// Render writes doc to w as an HTML5 document.
func Render(w io.Writer, doc *model.Document) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	page := element(atom.Html, attr("lang", "en"))
	root.AppendChild(page)
	page.AppendChild(head(doc))

	body := element(atom.Body)
	page.AppendChild(body)
	for _, elem := range doc.Elements {
		for _, n := range renderElement(elem) {
			body.AppendChild(n)
		}
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

func head(doc *model.Document) *html.Node {
	h := element(atom.Head)
	h.AppendChild(element(atom.Meta, attr("charset", "utf-8")))

	title := doc.Metadata.Title
	if title == "" {
		for _, elem := range doc.Elements {
			if t, ok := elem.(*model.Title); ok {
				title = t.Text
				break
			}
		}
	}
	h.AppendChild(withText(element(atom.Title), title))

	if doc.Metadata.Author != "" {
		h.AppendChild(element(atom.Meta, attr("name", "author"), attr("content", doc.Metadata.Author)))
	}
	if len(doc.Metadata.Keywords) > 0 {
		h.AppendChild(element(atom.Meta, attr("name", "keywords"), attr("content", strings.Join(doc.Metadata.Keywords, ", "))))
	}

	h.AppendChild(withText(element(atom.Style), stylesheet(doc.Section)))
	return h
}

// stylesheet returns the page CSS for a section.
func stylesheet(s model.Section) string {
	m := s.Margins
	var sb strings.Builder
	fmt.Fprintf(&sb, "@page { size: %sin %sin; margin: %s %s %s %s; }\n",
		num(s.PageWidth.Inches()), num(s.PageHeight.Inches()), m.Top, m.Right, m.Bottom, m.Left)
	fmt.Fprintf(&sb, "body { max-width: %sin; margin: 0 auto; }\n", num(s.TextWidth().Inches()))
	sb.WriteString("table." + ClassGrid + " { border-collapse: collapse; }\n")
	sb.WriteString("table." + ClassGrid + " th, table." + ClassGrid + " td { border: 1px solid #000; padding: 2pt 4pt; }\n")
	sb.WriteString("." + ClassPageBreak + " { page-break-after: always; }\n")
	return sb.String()
}

func renderElement(elem model.Element) []*html.Node {
	switch e := elem.(type) {
	case *model.Title:
		nodes := []*html.Node{textBlock(atom.H1, ClassTitle, []model.Run{{Text: e.Text}}, e.Alignment, 0)}
		if e.Subtitle.Text != "" {
			nodes = append(nodes, textBlock(atom.P, ClassSubtitle, []model.Run{e.Subtitle}, e.Alignment, 0))
		}
		return nodes
	case *model.Heading:
		return []*html.Node{textBlock(headingAtom(e.Level), "", e.Runs, e.Alignment, 0)}
	case *model.Paragraph:
		return []*html.Node{textBlock(atom.P, "", e.Runs, e.Alignment, e.LineSpacing)}
	case *model.Table:
		return []*html.Node{renderTable(e)}
	case *model.PageBreak:
		return []*html.Node{element(atom.Div, attr("class", ClassPageBreak))}
	}
	return nil
}

// headingAtom maps a heading level to h2..h6; h1 belongs to the title.
func headingAtom(level int) atom.Atom {
	switch {
	case level <= 1:
		return atom.H2
	case level == 2:
		return atom.H3
	case level == 3:
		return atom.H4
	case level == 4:
		return atom.H5
	default:
		return atom.H6
	}
}

func textBlock(a atom.Atom, class string, runs []model.Run, align model.TextAlignment, lineSpacing float64) *html.Node {
	var attrs []html.Attribute
	if class != "" {
		attrs = append(attrs, attr("class", class))
	}
	var style []string
	if align != model.AlignLeft {
		style = append(style, "text-align: "+align.String())
	}
	if lineSpacing > 0 {
		style = append(style, "line-height: "+num(lineSpacing))
	}
	if len(style) > 0 {
		attrs = append(attrs, attr("style", strings.Join(style, "; ")))
	}

	n := element(a, attrs...)
	for _, run := range runs {
		n.AppendChild(renderRun(run))
	}
	return n
}

// renderRun emits a span carrying the run's formatting. Newlines become <br>.
func renderRun(run model.Run) *html.Node {
	var attrs []html.Attribute
	if style := runStyle(run); style != "" {
		attrs = append(attrs, attr("style", style))
	}
	span := element(atom.Span, attrs...)

	for i, line := range strings.Split(run.Text, "\n") {
		if i > 0 {
			span.AppendChild(element(atom.Br))
		}
		if line != "" {
			span.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
	}
	return span
}

func runStyle(run model.Run) string {
	var parts []string
	if run.FontName != "" {
		parts = append(parts, fmt.Sprintf("font-family: '%s'", run.FontName))
	}
	if run.FontSize > 0 {
		parts = append(parts, "font-size: "+num(run.FontSize)+"pt")
	}
	s := run.Style
	if s.Bold {
		parts = append(parts, "font-weight: bold")
	}
	if s.Italic {
		parts = append(parts, "font-style: italic")
	}
	if s.Underline {
		parts = append(parts, "text-decoration: underline")
	}
	if s.Color != (model.Color{}) {
		parts = append(parts, fmt.Sprintf("color: #%02x%02x%02x", s.Color.R, s.Color.G, s.Color.B))
	}
	return strings.Join(parts, "; ")
}

func renderTable(t *model.Table) *html.Node {
	var attrs []html.Attribute
	if t.HasGrid || t.StyleName != "" {
		attrs = append(attrs, attr("class", ClassGrid))
	}
	if t.Autofit {
		attrs = append(attrs, attr("style", "width: auto"))
	}
	table := element(atom.Table, attrs...)

	var thead, tbody *html.Node
	for i, row := range t.Rows {
		header := i < t.HeaderRows
		var section *html.Node
		if header {
			if thead == nil {
				thead = element(atom.Thead)
				table.AppendChild(thead)
			}
			section = thead
		} else {
			if tbody == nil {
				tbody = element(atom.Tbody)
				table.AppendChild(tbody)
			}
			section = tbody
		}

		tr := element(atom.Tr)
		section.AppendChild(tr)
		for _, cell := range row {
			cellAtom := atom.Td
			if header || cell.IsHeader {
				cellAtom = atom.Th
			}
			var cellAttrs []html.Attribute
			if cell.ColSpan > 1 {
				cellAttrs = append(cellAttrs, attr("colspan", strconv.Itoa(cell.ColSpan)))
			}
			td := element(cellAtom, cellAttrs...)
			td.AppendChild(renderRun(model.Run{Text: cell.Text, Style: cell.Style.TextStyle}))
			tr.AppendChild(td)
		}
	}
	return table
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
