package htmldoc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/tsawler/quill/model"
)

func sampleDocument() *model.Document {
	doc := model.NewDocument()
	doc.Metadata.Author = "Analyst"
	doc.Section.Margins = model.UniformMargins(model.Cm(2.54))

	table := model.NewTable(2, 2)
	table.HeaderRows = 1
	table.HasGrid = true
	table.Autofit = true
	table.Rows[0][0] = model.Cell{Text: "Name", ColSpan: 1, RowSpan: 1, IsHeader: true}
	table.Rows[0][1] = model.Cell{Text: "Score", ColSpan: 1, RowSpan: 1, IsHeader: true}
	table.Rows[1][0] = model.Cell{Text: "a<b", ColSpan: 1, RowSpan: 1}
	table.Rows[1][1] = model.Cell{Text: "7800", ColSpan: 1, RowSpan: 1}

	doc.Append(
		&model.Title{Text: "Report", Subtitle: model.Run{Text: "Sub", FontSize: 16}, Alignment: model.AlignCenter},
		&model.Heading{Level: 1, Runs: []model.Run{{Text: "Intro", FontName: "Times New Roman", FontSize: 18, Style: model.TextStyle{Bold: true}}}},
		&model.Paragraph{Runs: []model.Run{{Text: "line one\nline two", FontSize: 14}}, LineSpacing: 1.5},
		table,
		&model.PageBreak{},
	)
	return doc
}

func render(t *testing.T, doc *model.Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

// findAll collects every element with the given tag.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			sb.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestRender_Structure(t *testing.T) {
	out := render(t, sampleDocument())

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("output should start with doctype, got %q", out[:min(40, len(out))])
	}

	root, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}

	if titles := findAll(root, "title"); len(titles) != 1 || textContent(titles[0]) != "Report" {
		t.Errorf("<title> = %v", titles)
	}

	h1 := findAll(root, "h1")
	if len(h1) != 1 || textContent(h1[0]) != "Report" || getAttr(h1[0], "class") != ClassTitle {
		t.Fatalf("h1 = %v", h1)
	}
	if style := getAttr(h1[0], "style"); style != "text-align: center" {
		t.Errorf("title style = %q", style)
	}

	h2 := findAll(root, "h2")
	if len(h2) != 1 || textContent(h2[0]) != "Intro" {
		t.Fatalf("h2 = %v", h2)
	}
	span := findAll(h2[0], "span")[0]
	if got := getAttr(span, "style"); got != "font-family: 'Times New Roman'; font-size: 18pt; font-weight: bold" {
		t.Errorf("heading run style = %q", got)
	}

	var body *html.Node
	for _, p := range findAll(root, "p") {
		if getAttr(p, "class") == "" {
			body = p
		}
	}
	if body == nil {
		t.Fatal("body paragraph not found")
	}
	if got := textContent(body); got != "line one\nline two" {
		t.Errorf("paragraph text = %q", got)
	}
	if got := getAttr(body, "style"); got != "line-height: 1.5" {
		t.Errorf("paragraph style = %q", got)
	}
}

func TestRender_Table(t *testing.T) {
	root, err := html.Parse(strings.NewReader(render(t, sampleDocument())))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}

	tables := findAll(root, "table")
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if getAttr(tables[0], "class") != ClassGrid {
		t.Errorf("table class = %q", getAttr(tables[0], "class"))
	}
	if th := findAll(findAll(tables[0], "thead")[0], "th"); len(th) != 2 || textContent(th[0]) != "Name" {
		t.Errorf("header cells = %d", len(th))
	}
	td := findAll(findAll(tables[0], "tbody")[0], "td")
	if len(td) != 2 || textContent(td[0]) != "a<b" || textContent(td[1]) != "7800" {
		t.Errorf("body cells wrong")
	}
}

func TestRender_EscapesText(t *testing.T) {
	out := render(t, sampleDocument())
	if !strings.Contains(out, "a&lt;b") {
		t.Error("cell text should be escaped")
	}
}

func TestRender_PageBreakAndStylesheet(t *testing.T) {
	out := render(t, sampleDocument())

	for _, want := range []string{
		`<div class="page-break"></div>`,
		"@page { size: 8.5in 11in; margin: 2.54cm 2.54cm 2.54cm 2.54cm; }",
		"page-break-after: always",
		`<meta name="author" content="Analyst"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRender_MetadataTitleWins(t *testing.T) {
	doc := sampleDocument()
	doc.Metadata.Title = "From metadata"

	root, err := html.Parse(strings.NewReader(render(t, doc)))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	if got := textContent(findAll(root, "title")[0]); got != "From metadata" {
		t.Errorf("<title> = %q", got)
	}
}

func TestHeadingAtom(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "h2"}, {2, "h3"}, {3, "h4"}, {4, "h5"}, {5, "h6"}, {9, "h6"},
	}
	for _, tt := range tests {
		if got := headingAtom(tt.level).String(); got != tt.want {
			t.Errorf("headingAtom(%d) = %s, want %s", tt.level, got, tt.want)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriteError(t *testing.T) {
	if err := Render(failingWriter{}, sampleDocument()); err == nil {
		t.Error("Render() should report writer errors")
	}
}
