package docx

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// Style IDs the writer references.
const (
	StyleNormal    = "Normal"
	StyleTitle     = "Title"
	StyleTableGrid = "TableGrid"
)

// HeadingStyle returns the built-in style ID for a heading level.
func HeadingStyle(level int) string {
	return "Heading" + strconv.Itoa(level)
}

// Document defaults written to styles.xml.
const (
	defaultFont     = "Calibri"
	defaultHalfPts  = 22  // 11pt
	defaultAfter    = 200 // twips
	defaultLine     = 276 // 1.15 lines
	headingColor    = "365F91"
	subheadingColor = "4F81BD"
	titleColor      = "17365D"
)

// stylesPart builds word/styles.xml: document defaults, Normal, Title,
// Heading1-9 and the TableGrid table style.
func stylesPart() *etree.Document {
	doc := newPart()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsW)

	defaults := root.CreateElement("w:docDefaults")
	rpr := defaults.CreateElement("w:rPrDefault").CreateElement("w:rPr")
	setFonts(rpr.CreateElement("w:rFonts"), defaultFont)
	setVal(rpr.CreateElement("w:sz"), strconv.Itoa(defaultHalfPts))
	setVal(rpr.CreateElement("w:szCs"), strconv.Itoa(defaultHalfPts))
	setVal(rpr.CreateElement("w:lang"), "en-US")
	ppr := defaults.CreateElement("w:pPrDefault").CreateElement("w:pPr")
	setSpacing(ppr.CreateElement("w:spacing"), "0", strconv.Itoa(defaultAfter), strconv.Itoa(defaultLine))

	normal := newStyle(root, "paragraph", StyleNormal, "Normal")
	normal.CreateAttr("w:default", "1")
	normal.CreateElement("w:qFormat")

	title := newStyle(root, "paragraph", StyleTitle, "Title")
	setVal(title.CreateElement("w:basedOn"), StyleNormal)
	setVal(title.CreateElement("w:next"), StyleNormal)
	title.CreateElement("w:qFormat")
	tppr := title.CreateElement("w:pPr")
	setSpacing(tppr.CreateElement("w:spacing"), "", "300", "240")
	tppr.CreateElement("w:contextualSpacing")
	trpr := title.CreateElement("w:rPr")
	setVal(trpr.CreateElement("w:color"), titleColor)
	setVal(trpr.CreateElement("w:kern"), "28")
	setVal(trpr.CreateElement("w:sz"), "52")
	setVal(trpr.CreateElement("w:szCs"), "52")

	for level := 1; level <= 9; level++ {
		h := newStyle(root, "paragraph", HeadingStyle(level), fmt.Sprintf("heading %d", level))
		setVal(h.CreateElement("w:basedOn"), StyleNormal)
		setVal(h.CreateElement("w:next"), StyleNormal)
		h.CreateElement("w:qFormat")
		hppr := h.CreateElement("w:pPr")
		hppr.CreateElement("w:keepNext")
		hppr.CreateElement("w:keepLines")
		before := "200"
		if level == 1 {
			before = "480"
		}
		setSpacing(hppr.CreateElement("w:spacing"), before, "0", "")
		setVal(hppr.CreateElement("w:outlineLvl"), strconv.Itoa(level-1))
		hrpr := h.CreateElement("w:rPr")
		hrpr.CreateElement("w:b")
		color, size := subheadingColor, 26
		if level == 1 {
			color, size = headingColor, 28
		}
		setVal(hrpr.CreateElement("w:color"), color)
		setVal(hrpr.CreateElement("w:sz"), strconv.Itoa(size))
		setVal(hrpr.CreateElement("w:szCs"), strconv.Itoa(size))
	}

	grid := newStyle(root, "table", StyleTableGrid, "Table Grid")
	gppr := grid.CreateElement("w:pPr")
	setSpacing(gppr.CreateElement("w:spacing"), "", "0", "240")
	tblPr := grid.CreateElement("w:tblPr")
	borders := tblPr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
		b.CreateAttr("w:space", "0")
		b.CreateAttr("w:color", "auto")
	}

	return doc
}

// newStyle appends a w:style element with its name.
func newStyle(root *etree.Element, typ, id, name string) *etree.Element {
	style := root.CreateElement("w:style")
	style.CreateAttr("w:type", typ)
	style.CreateAttr("w:styleId", id)
	setVal(style.CreateElement("w:name"), name)
	return style
}

// setFonts sets every script slot of a w:rFonts element to the same font.
func setFonts(el *etree.Element, font string) {
	for _, attr := range []string{"w:ascii", "w:hAnsi", "w:eastAsia", "w:cs"} {
		el.CreateAttr(attr, font)
	}
}

// setSpacing fills a w:spacing element; empty values are omitted.
func setSpacing(el *etree.Element, before, after, line string) {
	if before != "" {
		el.CreateAttr("w:before", before)
	}
	if after != "" {
		el.CreateAttr("w:after", after)
	}
	if line != "" {
		el.CreateAttr("w:line", line)
		el.CreateAttr("w:lineRule", "auto")
	}
}
