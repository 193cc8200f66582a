package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/tsawler/quill/model"
)

// zipModTime is stamped on every package entry so identical documents
// serialize to identical bytes.
var zipModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Write serializes doc as a DOCX package to w.
func Write(w io.Writer, doc *model.Document) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		xml  *etree.Document
	}{
		{partContentTypes, contentTypesPart()},
		{partRootRels, rootRelsPart()},
		{partCore, corePart(doc.Metadata)},
		{partApp, appPart(doc.Metadata)},
		{partDocument, documentPart(doc)},
		{partDocumentRels, documentRelsPart()},
		{partStyles, stylesPart()},
		{partSettings, settingsPart()},
	}

	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipModTime,
		})
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := p.xml.WriteTo(fw); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing package: %w", err)
	}
	return nil
}

// documentPart builds word/document.xml from the block sequence.
func documentPart(doc *model.Document) *etree.Document {
	out := newPart()
	root := out.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	body := root.CreateElement("w:body")

	for _, elem := range doc.Elements {
		switch e := elem.(type) {
		case *model.Title:
			writeTitle(body, e)
		case *model.Heading:
			writeHeading(body, e)
		case *model.Paragraph:
			writeParagraph(body, e)
		case *model.Table:
			writeTable(body, e, doc.Section)
		case *model.PageBreak:
			br := body.CreateElement("w:p").CreateElement("w:r").CreateElement("w:br")
			br.CreateAttr("w:type", "page")
		}
	}

	writeSection(body, doc.Section)
	return out
}

func writeTitle(body *etree.Element, t *model.Title) {
	p := body.CreateElement("w:p")
	writeParaProps(p, StyleTitle, 0, t.Alignment)
	writeRun(p, model.Run{Text: t.Text})

	if t.Subtitle.Text == "" {
		return
	}
	sub := body.CreateElement("w:p")
	writeParaProps(sub, "", 0, t.Alignment)
	writeRun(sub, t.Subtitle)
}

func writeHeading(body *etree.Element, h *model.Heading) {
	p := body.CreateElement("w:p")
	writeParaProps(p, HeadingStyle(h.Level), 0, h.Alignment)
	for _, run := range h.Runs {
		writeRun(p, run)
	}
}

func writeParagraph(body *etree.Element, para *model.Paragraph) {
	p := body.CreateElement("w:p")
	writeParaProps(p, "", para.LineSpacing, para.Alignment)
	for _, run := range para.Runs {
		writeRun(p, run)
	}
}

// writeParaProps emits w:pPr in schema order (pStyle, spacing, jc); nothing is
// written when there is nothing to set.
func writeParaProps(p *etree.Element, styleID string, lineSpacing float64, align model.TextAlignment) {
	if styleID == "" && lineSpacing == 0 && align == model.AlignLeft {
		return
	}
	ppr := p.CreateElement("w:pPr")
	if styleID != "" {
		setVal(ppr.CreateElement("w:pStyle"), styleID)
	}
	if lineSpacing > 0 {
		setSpacing(ppr.CreateElement("w:spacing"), "", "", strconv.Itoa(int(lineSpacing*240+0.5)))
	}
	if align != model.AlignLeft {
		setVal(ppr.CreateElement("w:jc"), jcValue(align))
	}
}

// jcValue maps a model alignment to w:jc.
func jcValue(a model.TextAlignment) string {
	switch a {
	case model.AlignCenter:
		return "center"
	case model.AlignRight:
		return "right"
	case model.AlignJustify:
		return "both"
	default:
		return "left"
	}
}

// writeRun emits one w:r. Newlines become w:br and tabs w:tab so the text
// survives Word's whitespace handling.
func writeRun(p *etree.Element, run model.Run) {
	r := p.CreateElement("w:r")
	writeRunProps(r, run)

	var text strings.Builder
	flush := func() {
		if text.Len() == 0 {
			return
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(text.String())
		text.Reset()
	}
	for _, c := range run.Text {
		switch c {
		case '\n':
			flush()
			r.CreateElement("w:br")
		case '\t':
			flush()
			r.CreateElement("w:tab")
		case '\r':
		default:
			text.WriteRune(c)
		}
	}
	flush()
}

// writeRunProps emits w:rPr in schema order for whatever the run sets.
func writeRunProps(r *etree.Element, run model.Run) {
	s := run.Style
	if run.FontName == "" && run.FontSize == 0 && !s.Bold && !s.Italic && !s.Underline && s.Color == (model.Color{}) {
		return
	}
	rpr := r.CreateElement("w:rPr")
	if run.FontName != "" {
		setFonts(rpr.CreateElement("w:rFonts"), run.FontName)
	}
	if s.Bold {
		rpr.CreateElement("w:b")
	}
	if s.Italic {
		rpr.CreateElement("w:i")
	}
	if s.Color != (model.Color{}) {
		setVal(rpr.CreateElement("w:color"), fmt.Sprintf("%02X%02X%02X", s.Color.R, s.Color.G, s.Color.B))
	}
	if run.FontSize > 0 {
		hp := strconv.Itoa(model.HalfPoints(run.FontSize))
		setVal(rpr.CreateElement("w:sz"), hp)
		setVal(rpr.CreateElement("w:szCs"), hp)
	}
	if s.Underline {
		setVal(rpr.CreateElement("w:u"), "single")
	}
}

// writeTable emits a w:tbl whose grid divides the text width evenly.
func writeTable(body *etree.Element, t *model.Table, section model.Section) {
	cols := t.ColCount()
	tbl := body.CreateElement("w:tbl")

	tblPr := tbl.CreateElement("w:tblPr")
	if t.StyleName != "" {
		setVal(tblPr.CreateElement("w:tblStyle"), t.StyleName)
	}
	tblW := tblPr.CreateElement("w:tblW")
	tblW.CreateAttr("w:w", "0")
	tblW.CreateAttr("w:type", "auto")
	layout := "fixed"
	if t.Autofit {
		layout = "autofit"
	}
	tblPr.CreateElement("w:tblLayout").CreateAttr("w:type", layout)
	look := tblPr.CreateElement("w:tblLook")
	look.CreateAttr("w:val", "04A0")
	look.CreateAttr("w:firstRow", "1")
	look.CreateAttr("w:lastRow", "0")
	look.CreateAttr("w:firstColumn", "1")
	look.CreateAttr("w:lastColumn", "0")
	look.CreateAttr("w:noHBand", "0")
	look.CreateAttr("w:noVBand", "1")

	colWidth := "0"
	if cols > 0 {
		colWidth = strconv.FormatInt(section.TextWidth().Twips()/int64(cols), 10)
	}
	grid := tbl.CreateElement("w:tblGrid")
	for i := 0; i < cols; i++ {
		grid.CreateElement("w:gridCol").CreateAttr("w:w", colWidth)
	}

	for i, row := range t.Rows {
		tr := tbl.CreateElement("w:tr")
		if i < t.HeaderRows {
			tr.CreateElement("w:trPr").CreateElement("w:tblHeader")
		}
		for _, cell := range row {
			tc := tr.CreateElement("w:tc")
			tcPr := tc.CreateElement("w:tcPr")
			tcW := tcPr.CreateElement("w:tcW")
			tcW.CreateAttr("w:w", colWidth)
			tcW.CreateAttr("w:type", "dxa")
			if cell.ColSpan > 1 {
				setVal(tcPr.CreateElement("w:gridSpan"), strconv.Itoa(cell.ColSpan))
			}
			p := tc.CreateElement("w:p")
			if cell.Text != "" {
				writeRun(p, model.Run{Text: cell.Text, Style: cell.Style.TextStyle})
			}
		}
	}
}

// writeSection emits the trailing w:sectPr with page size and margins.
func writeSection(body *etree.Element, s model.Section) {
	sect := body.CreateElement("w:sectPr")
	pgSz := sect.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", twips(s.PageWidth))
	pgSz.CreateAttr("w:h", twips(s.PageHeight))
	pgMar := sect.CreateElement("w:pgMar")
	pgMar.CreateAttr("w:top", twips(s.Margins.Top))
	pgMar.CreateAttr("w:right", twips(s.Margins.Right))
	pgMar.CreateAttr("w:bottom", twips(s.Margins.Bottom))
	pgMar.CreateAttr("w:left", twips(s.Margins.Left))
	pgMar.CreateAttr("w:header", "720")
	pgMar.CreateAttr("w:footer", "720")
	pgMar.CreateAttr("w:gutter", "0")
	sect.CreateElement("w:cols").CreateAttr("w:space", "720")
	sect.CreateElement("w:docGrid").CreateAttr("w:linePitch", "360")
}

func twips(l model.Length) string {
	return strconv.FormatInt(l.Twips(), 10)
}
