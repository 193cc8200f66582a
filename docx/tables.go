package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/quill/model"
)

// TableParser converts DOCX table XML into model tables.
type TableParser struct {
	styleResolver *StyleResolver
}

// NewTableParser creates a new table parser.
func NewTableParser(resolver *StyleResolver) *TableParser {
	return &TableParser{
		styleResolver: resolver,
	}
}

// ParseTable parses a table XML element. Leading rows marked w:tblHeader are
// counted as header rows; borders come from the table or its style.
func (tp *TableParser) ParseTable(tbl tableXML) *model.Table {
	colCount := len(tbl.Grid.Cols)
	for _, row := range tbl.Rows {
		if n := rowSpanWidth(row); n > colCount {
			colCount = n
		}
	}

	table := model.NewTable(len(tbl.Rows), colCount)
	table.StyleName = tbl.Properties.Style.Val
	table.Autofit = tbl.Properties.Layout.Type != "fixed"
	table.HasGrid = tbl.Properties.Borders.visible()
	if !table.HasGrid && table.StyleName != "" && tp.styleResolver != nil {
		table.HasGrid = tp.styleResolver.Resolve(table.StyleName).HasBorders
	}

	inHeader := true
	for rowIdx, row := range tbl.Rows {
		isHeader := inHeader && row.Properties.Header.on()
		if isHeader {
			table.HeaderRows++
		} else {
			inHeader = false
		}

		colIdx := 0
		for _, cell := range row.Cells {
			if colIdx >= colCount {
				break
			}
			span := cellSpan(cell)
			table.Rows[rowIdx][colIdx] = model.Cell{
				Text:     tp.cellText(cell),
				RowSpan:  1,
				ColSpan:  span,
				IsHeader: isHeader,
				Style: model.CellStyle{
					VerticalAlign: parseVerticalAlign(cell.Properties.VAlign.Val),
				},
			}
			colIdx += span
		}
	}

	return table
}

// cellText joins the text of every paragraph in a cell with newlines.
func (tp *TableParser) cellText(cell tableCellXML) string {
	parts := make([]string, 0, len(cell.Paragraphs))
	for _, p := range cell.Paragraphs {
		parts = append(parts, paragraphText(p))
	}
	return strings.Join(parts, "\n")
}

// cellSpan returns the number of grid columns a cell covers.
func cellSpan(cell tableCellXML) int {
	if span, err := strconv.Atoi(cell.Properties.GridSpan.Val); err == nil && span > 0 {
		return span
	}
	return 1
}

// rowSpanWidth returns the number of grid columns a row covers.
func rowSpanWidth(row tableRowXML) int {
	n := 0
	for _, cell := range row.Cells {
		n += cellSpan(cell)
	}
	return n
}

// parseVerticalAlign maps a w:vAlign value to a model alignment.
func parseVerticalAlign(v string) model.VerticalAlignment {
	switch v {
	case "center":
		return model.VAlignMiddle
	case "bottom":
		return model.VAlignBottom
	default:
		return model.VAlignTop
	}
}
