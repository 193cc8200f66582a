package docx

import (
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/tsawler/quill/model"
)

// Package part names.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partSettings     = "word/settings.xml"
)

// Relationship types.
const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relSettings       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
)

// defaultApplication is written to docProps/app.xml when the document has no
// creator.
const defaultApplication = "quill"

// newPart starts an XML part with the standalone declaration Word writes.
func newPart() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

// contentTypesPart builds [Content_Types].xml.
func contentTypesPart() *etree.Document {
	doc := newPart()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsTypes)

	defaults := []struct{ ext, ct string }{
		{"rels", "application/vnd.openxmlformats-package.relationships+xml"},
		{"xml", "application/xml"},
	}
	for _, d := range defaults {
		el := types.CreateElement("Default")
		el.CreateAttr("Extension", d.ext)
		el.CreateAttr("ContentType", d.ct)
	}

	overrides := []struct{ part, ct string }{
		{partDocument, "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
		{partStyles, "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
		{partSettings, "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"},
		{partCore, "application/vnd.openxmlformats-package.core-properties+xml"},
		{partApp, "application/vnd.openxmlformats-officedocument.extended-properties+xml"},
	}
	for _, o := range overrides {
		el := types.CreateElement("Override")
		el.CreateAttr("PartName", "/"+o.part)
		el.CreateAttr("ContentType", o.ct)
	}
	return doc
}

// relationship is one entry of a .rels part.
type relationship struct {
	id, typ, target string
}

// relsPart builds a relationships part.
func relsPart(rels ...relationship) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsPkgRels)
	for _, rel := range rels {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", rel.id)
		el.CreateAttr("Type", rel.typ)
		el.CreateAttr("Target", rel.target)
	}
	return doc
}

func rootRelsPart() *etree.Document {
	return relsPart(
		relationship{"rId1", relOfficeDocument, partDocument},
		relationship{"rId2", relCoreProps, partCore},
		relationship{"rId3", relExtendedProps, partApp},
	)
}

func documentRelsPart() *etree.Document {
	return relsPart(
		relationship{"rId1", relStyles, "styles.xml"},
		relationship{"rId2", relSettings, "settings.xml"},
	)
}

// corePart builds docProps/core.xml. Zero dates are omitted so output stays
// reproducible.
func corePart(meta model.Metadata) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", nsCP)
	root.CreateAttr("xmlns:dc", nsDC)
	root.CreateAttr("xmlns:dcterms", nsDCTerms)
	root.CreateAttr("xmlns:xsi", nsXSI)

	root.CreateElement("dc:title").SetText(meta.Title)
	root.CreateElement("dc:subject").SetText(meta.Subject)
	root.CreateElement("dc:creator").SetText(meta.Author)
	root.CreateElement("cp:keywords").SetText(strings.Join(meta.Keywords, ", "))
	root.CreateElement("cp:revision").SetText("1")

	for _, d := range []struct {
		tag string
		t   time.Time
	}{
		{"dcterms:created", meta.CreationDate},
		{"dcterms:modified", meta.ModDate},
	} {
		if d.t.IsZero() {
			continue
		}
		el := root.CreateElement(d.tag)
		el.CreateAttr("xsi:type", "dcterms:W3CDTF")
		el.SetText(d.t.UTC().Format(time.RFC3339))
	}
	return doc
}

// appPart builds docProps/app.xml.
func appPart(meta model.Metadata) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("Properties")
	root.CreateAttr("xmlns", nsExtProp)
	root.CreateAttr("xmlns:vt", nsVT)
	app := meta.Creator
	if app == "" {
		app = defaultApplication
	}
	root.CreateElement("Application").SetText(app)
	return doc
}

// settingsPart builds word/settings.xml.
func settingsPart() *etree.Document {
	doc := newPart()
	root := doc.CreateElement("w:settings")
	root.CreateAttr("xmlns:w", nsW)
	setVal(root.CreateElement("w:defaultTabStop"), "720")
	setVal(root.CreateElement("w:characterSpacingControl"), "doNotCompress")
	compat := root.CreateElement("w:compat").CreateElement("w:compatSetting")
	compat.CreateAttr("w:name", "compatibilityMode")
	compat.CreateAttr("w:uri", "http://schemas.microsoft.com/office/word")
	compat.CreateAttr("w:val", "15")
	return doc
}

// setVal sets the w:val attribute most WordprocessingML properties use.
func setVal(el *etree.Element, val string) *etree.Element {
	el.CreateAttr("w:val", val)
	return el
}
