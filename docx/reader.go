package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tsawler/quill/model"
)

// ErrMissingPart is returned when a package lacks a part every DOCX must have.
var ErrMissingPart = errors.New("docx: missing required part")

// Reader provides access to DOCX document content.
type Reader struct {
	closer    io.Closer
	zipReader *zip.Reader
	document  *documentXML
	styles    *stylesXML
	coreProps *corePropertiesXML
	appProps  *appPropertiesXML
	resolver  *StyleResolver
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenReader reads a DOCX package from memory or any other random-access
// source. The caller keeps ownership of ra.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{
		zipReader: zr,
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Styles and metadata are optional parts
	r.parseStyles()
	r.parseCoreProperties()
	r.parseAppProperties()

	r.resolver = NewStyleResolver(r.styles)
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX parts exist.
func (r *Reader) validate() error {
	for _, name := range []string{partContentTypes, partDocument} {
		if r.getFile(name) == nil {
			return fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}
	return nil
}

// getFile returns a zip.File by name.
func (r *Reader) getFile(name string) *zip.File {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f := r.getFile(name)
	if f == nil {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent(partDocument)
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() {
	data, err := r.getFileContent(partStyles)
	if err != nil {
		return
	}

	styles := &stylesXML{}
	if xml.Unmarshal(data, styles) == nil {
		r.styles = styles
	}
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent(partCore)
	if err != nil {
		return
	}

	core := &corePropertiesXML{}
	if xml.Unmarshal(data, core) == nil {
		r.coreProps = core
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent(partApp)
	if err != nil {
		return
	}

	app := &appPropertiesXML{}
	if xml.Unmarshal(data, app) == nil {
		r.appProps = app
	}
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{Custom: make(map[string]string)}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		if r.coreProps.Keywords != "" {
			for _, kw := range strings.Split(r.coreProps.Keywords, ",") {
				meta.Keywords = append(meta.Keywords, strings.TrimSpace(kw))
			}
		}
		meta.CreationDate, _ = time.Parse(time.RFC3339, r.coreProps.Created)
		meta.ModDate, _ = time.Parse(time.RFC3339, r.coreProps.Modified)
	}
	if r.appProps != nil {
		meta.Creator = r.appProps.Application
	}
	return meta
}

// Section returns the page geometry of the document's final section.
func (r *Reader) Section() model.Section {
	section := model.DefaultSection()
	sp := r.document.Body.SectPr
	if sp == nil {
		return section
	}
	if sp.PgSz.W != "" {
		section.PageWidth = model.Twips(parseTwips(sp.PgSz.W))
	}
	if sp.PgSz.H != "" {
		section.PageHeight = model.Twips(parseTwips(sp.PgSz.H))
	}
	m := &section.Margins
	for _, side := range []struct {
		val string
		dst *model.Length
	}{
		{sp.PgMar.Top, &m.Top},
		{sp.PgMar.Bottom, &m.Bottom},
		{sp.PgMar.Left, &m.Left},
		{sp.PgMar.Right, &m.Right},
	} {
		if side.val != "" {
			*side.dst = model.Twips(parseTwips(side.val))
		}
	}
	return section
}

// Text extracts and returns all text content from the document.
func (r *Reader) Text() (string, error) {
	doc, err := r.Document()
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(doc.ExtractText(), "\n"), nil
}

// Document returns a model.Document representation of the DOCX content. A
// centered paragraph directly after a Title paragraph becomes its subtitle;
// paragraphs holding only page breaks become PageBreak blocks; empty
// paragraphs are dropped.
func (r *Reader) Document() (*model.Document, error) {
	if r.document == nil {
		return nil, fmt.Errorf("document not parsed")
	}

	doc := model.NewDocument()
	doc.Metadata = r.Metadata()
	doc.Section = r.Section()

	tables := NewTableParser(r.resolver)
	elems := r.document.Body.Elements

	for i := 0; i < len(elems); i++ {
		if elems[i].Table != nil {
			doc.Append(tables.ParseTable(*elems[i].Table))
			continue
		}

		p := elems[i].Paragraph
		if isPageBreak(*p) {
			doc.Append(&model.PageBreak{})
			continue
		}

		styleID := p.Properties.Style.Val
		style := r.resolver.Resolve(styleID)
		alignment := style.Alignment
		if p.Properties.Justification.Val != "" {
			alignment = p.Properties.Justification.Val
		}
		runs := r.paragraphRuns(styleID, *p)

		switch {
		case r.resolver.isTitleStyle(styleID):
			title := &model.Title{
				Text:      joinRunText(runs),
				Alignment: parseAlignment(alignment),
			}
			if i+1 < len(elems) && r.isSubtitle(elems[i+1]) {
				i++
				next := elems[i].Paragraph
				subRuns := r.paragraphRuns(next.Properties.Style.Val, *next)
				title.Subtitle = subRuns[0]
				title.Subtitle.Text = joinRunText(subRuns)
			}
			doc.Append(title)
		case style.IsHeading:
			doc.Append(&model.Heading{
				Level:     style.HeadingLevel,
				Runs:      runs,
				Alignment: parseAlignment(alignment),
			})
		case len(runs) > 0:
			spacing := style.LineSpacing
			if direct := parseLineSpacing(p.Properties.Spacing); direct > 0 {
				spacing = direct
			}
			doc.Append(&model.Paragraph{
				Runs:        runs,
				Alignment:   parseAlignment(alignment),
				LineSpacing: spacing,
			})
		}
	}

	return doc, nil
}

// isSubtitle reports whether a body element is a centered, non-heading text
// paragraph.
func (r *Reader) isSubtitle(el bodyElement) bool {
	p := el.Paragraph
	if p == nil || isPageBreak(*p) || paragraphText(*p) == "" {
		return false
	}
	style := r.resolver.Resolve(p.Properties.Style.Val)
	if style.IsHeading || r.resolver.isTitleStyle(p.Properties.Style.Val) {
		return false
	}
	jc := style.Alignment
	if p.Properties.Justification.Val != "" {
		jc = p.Properties.Justification.Val
	}
	return jc == "center"
}

// paragraphRuns resolves each non-empty run of a paragraph.
func (r *Reader) paragraphRuns(styleID string, p paragraphXML) []model.Run {
	var runs []model.Run
	for _, run := range p.Runs {
		text := extractRunText(run)
		if text == "" {
			continue
		}
		resolved := r.resolver.ResolveRun(styleID, run.Properties)
		resolved.Text = text
		runs = append(runs, resolved)
	}
	return runs
}

// extractRunText extracts text from a run element in document order.
func extractRunText(run runXML) string {
	var sb strings.Builder
	for _, c := range run.Content {
		switch c.Kind {
		case runText:
			sb.WriteString(c.Text)
		case runTab:
			sb.WriteString("\t")
		case runBreak:
			sb.WriteString("\n")
		case runPageBreak:
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// paragraphText concatenates the text of every run in a paragraph.
func paragraphText(p paragraphXML) string {
	var sb strings.Builder
	for _, run := range p.Runs {
		sb.WriteString(extractRunText(run))
	}
	return sb.String()
}

// isPageBreak reports whether a paragraph holds a page break and nothing else.
func isPageBreak(p paragraphXML) bool {
	found := false
	for _, run := range p.Runs {
		for _, c := range run.Content {
			switch {
			case c.Kind == runPageBreak:
				found = true
			case c.Kind == runText && c.Text == "":
			default:
				return false
			}
		}
	}
	return found
}

func joinRunText(runs []model.Run) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}
