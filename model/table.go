package model

import (
	"encoding/csv"
	"strings"
)

// Table is a grid of text cells. The first HeaderRows rows are header rows
// that writers repeat at the top of each page.
type Table struct {
	Rows       [][]Cell
	HeaderRows int
	HasGrid    bool   // cell borders are drawn
	StyleName  string // table style ID, e.g. "TableGrid"
	Autofit    bool   // column widths follow content
}

func (t *Table) Type() ElementType { return ElementTypeTable }

// GetText returns the table as tab-separated lines.
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.texts() {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// NewTable returns a rows x cols table of empty single-span cells.
func NewTable(rows, cols int) *Table {
	t := &Table{Rows: make([][]Cell, rows)}
	for i := range t.Rows {
		t.Rows[i] = make([]Cell, cols)
		for j := range t.Rows[i] {
			t.Rows[i][j] = Cell{RowSpan: 1, ColSpan: 1}
		}
	}
	return t
}

func (t *Table) RowCount() int { return len(t.Rows) }

// ColCount returns the width of the first row.
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Headers returns the text of the first row.
func (t *Table) Headers() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.texts()[0]
}

// Records returns the text of every row after the header rows.
func (t *Table) Records() [][]string {
	start := min(t.HeaderRows, len(t.Rows))
	return t.texts()[start:]
}

func (t *Table) texts() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = cell.Text
		}
	}
	return out
}

// ToMarkdown renders a pipe table with the first row as its header.
func (t *Table) ToMarkdown() string {
	rows := t.texts()
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	line := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			c = strings.ReplaceAll(c, "\n", " ")
			sb.WriteString(" " + strings.ReplaceAll(c, "|", `\|`) + " |")
		}
		sb.WriteString("\n")
	}

	line(rows[0])
	sb.WriteString(strings.Repeat("|---", len(rows[0])) + "|\n")
	for _, row := range rows[1:] {
		line(row)
	}
	return sb.String()
}

// ToCSV renders the table as RFC 4180 CSV.
func (t *Table) ToCSV() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	// strings.Builder never fails a write.
	_ = w.WriteAll(t.texts())
	return sb.String()
}

// Cell is one table cell.
type Cell struct {
	Text     string
	RowSpan  int
	ColSpan  int
	IsHeader bool
	Style    CellStyle
}

// CellStyle holds the cell formatting that survives a DOCX round trip.
type CellStyle struct {
	TextStyle     TextStyle
	Alignment     TextAlignment
	VerticalAlign VerticalAlignment
}

// VerticalAlignment positions text inside a cell.
type VerticalAlignment int

const (
	VAlignTop VerticalAlignment = iota
	VAlignMiddle
	VAlignBottom
)
