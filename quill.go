// Package quill builds formatted report documents and saves them as DOCX,
// HTML or Markdown.
//
// Basic usage:
//
//	b, err := quill.New()
//	if err != nil {
//	    // handle error
//	}
//	if err := b.AddTitlePage("Report", "A subtitle"); err != nil {
//	    // handle error
//	}
//	if err := b.AddHeadingAndContent("Introduction", "Body text."); err != nil {
//	    // handle error
//	}
//	if err := b.Save("report.docx"); err != nil {
//	    // handle error
//	}
//
// Every block added through the Builder carries the formatting of its
// model.StyleConfig, so the output stays consistent without per-call styling.
// The docx, htmldoc and model packages are available for lower-level work.
package quill

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/quill/model"
)

// Builder assembles a document block by block. A Builder accepts content
// until its first successful Save; after that every Add method returns
// ErrSaved while Save may be repeated to overwrite the output.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	doc   *model.Document
	style model.StyleConfig
	log   zerolog.Logger
	saved bool
}

// New creates a Builder holding an empty document whose margins come from the
// style configuration.
func New(opts ...Option) (*Builder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.style.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
	}

	doc := model.NewDocument()
	doc.Section.Margins = model.UniformMargins(o.style.Margin)
	doc.Metadata = o.metadata

	o.logger.Debug().
		Str("font", o.style.FontFamily).
		Stringer("margin", o.style.Margin).
		Msg("document initialized")

	return &Builder{
		doc:   doc,
		style: o.style,
		log:   o.logger,
	}, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	b := quill.Must(quill.New())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Style returns the formatting the Builder applies.
func (b *Builder) Style() model.StyleConfig {
	return b.style
}

// Document returns the document being built. Callers may inspect it; blocks
// should only be added through the Builder.
func (b *Builder) Document() *model.Document {
	return b.doc
}

// Saved reports whether the document has been saved.
func (b *Builder) Saved() bool {
	return b.saved
}

// checkOpen returns ErrSaved once the document has been saved.
func (b *Builder) checkOpen() error {
	if b.saved {
		return ErrSaved
	}
	return nil
}

// AddTitlePage appends a centered title in the Title style followed by a
// centered subtitle at the subtitle size. The main title also becomes the
// document title property when none was set.
func (b *Builder) AddTitlePage(mainTitle, subtitle string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	mainTitle, subtitle = normalize(mainTitle), normalize(subtitle)
	if mainTitle == "" {
		return fmt.Errorf("%w: title", ErrEmptyText)
	}
	if subtitle == "" {
		return fmt.Errorf("%w: subtitle", ErrEmptyText)
	}

	b.doc.Append(&model.Title{
		Text: mainTitle,
		Subtitle: model.Run{
			Text:     subtitle,
			FontSize: b.style.SubtitleSize,
		},
		Alignment: model.AlignCenter,
	})
	if b.doc.Metadata.Title == "" {
		b.doc.Metadata.Title = mainTitle
	}

	b.log.Debug().Str("title", mainTitle).Msg("added title page")
	return nil
}

// AddHeadingAndContent appends a level-1 heading and a body paragraph, both in
// the configured font. Nothing is appended when either text is empty.
func (b *Builder) AddHeadingAndContent(heading, content string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	heading, content = normalize(heading), normalize(content)
	if heading == "" {
		return fmt.Errorf("%w: heading", ErrEmptyText)
	}
	if content == "" {
		return fmt.Errorf("%w: content for %q", ErrEmptyText, heading)
	}

	b.doc.Append(b.heading(heading, 1), b.body(content))

	b.log.Debug().Str("heading", heading).Int("chars", len(content)).Msg("added section")
	return nil
}

// AddPlainHeadingAndContent appends a level-1 heading and a paragraph that
// set only the heading and body font sizes. Font family, weight and line
// spacing come from the document's Heading 1 and Normal styles.
func (b *Builder) AddPlainHeadingAndContent(heading, content string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	heading, content = normalize(heading), normalize(content)
	if heading == "" {
		return fmt.Errorf("%w: heading", ErrEmptyText)
	}
	if content == "" {
		return fmt.Errorf("%w: content for %q", ErrEmptyText, heading)
	}

	b.doc.Append(
		&model.Heading{Level: 1, Runs: []model.Run{{Text: heading, FontSize: b.style.HeadingSize}}},
		&model.Paragraph{Runs: []model.Run{{Text: content, FontSize: b.style.BodySize}}},
	)

	b.log.Debug().Str("heading", heading).Int("chars", len(content)).Msg("added plain section")
	return nil
}

// AddHeading appends a styled heading. Levels outside 1-9 are clamped.
func (b *Builder) AddHeading(text string, level int) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	text = normalize(text)
	if text == "" {
		return fmt.Errorf("%w: heading", ErrEmptyText)
	}

	b.doc.Append(b.heading(text, level))

	b.log.Debug().Str("heading", text).Int("level", level).Msg("added heading")
	return nil
}

// AddParagraph appends a paragraph with no direct formatting, so the
// document defaults apply.
func (b *Builder) AddParagraph(text string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	text = normalize(text)
	if text == "" {
		return fmt.Errorf("%w: paragraph", ErrEmptyText)
	}

	b.doc.Append(&model.Paragraph{Runs: []model.Run{{Text: text}}})

	b.log.Debug().Int("chars", len(text)).Msg("added paragraph")
	return nil
}

// AddTable appends a grid table with one header row and one row per record.
// Cells are converted to text; every record must have exactly len(headers)
// cells. The created table is returned for inspection.
func (b *Builder) AddTable(data [][]any, headers []string) (*model.Table, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, ErrEmptyHeaders
	}
	for i, row := range data {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowShape, i, len(row), len(headers))
		}
	}

	table := model.NewTable(len(data)+1, len(headers))
	table.StyleName = b.style.TableStyle
	table.HasGrid = true
	table.Autofit = true
	table.HeaderRows = 1

	for c, h := range headers {
		table.Rows[0][c] = model.Cell{Text: normalize(h), RowSpan: 1, ColSpan: 1, IsHeader: true}
	}
	for r, row := range data {
		for c, v := range row {
			table.Rows[r+1][c] = model.Cell{Text: normalize(cellText(v)), RowSpan: 1, ColSpan: 1}
		}
	}

	b.doc.Append(table)

	b.log.Debug().Int("rows", len(data)).Int("cols", len(headers)).Msg("added table")
	return table, nil
}

// AddPageBreak appends a page break.
func (b *Builder) AddPageBreak() error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	b.doc.Append(&model.PageBreak{})
	b.log.Debug().Msg("added page break")
	return nil
}

func (b *Builder) heading(text string, level int) *model.Heading {
	level = min(max(level, 1), 9)
	return &model.Heading{
		Level: level,
		Runs: []model.Run{{
			Text:     text,
			FontName: b.style.FontFamily,
			FontSize: b.style.HeadingSizeFor(level),
			Style:    model.TextStyle{Bold: true},
		}},
	}
}

func (b *Builder) body(text string) *model.Paragraph {
	return &model.Paragraph{
		Runs: []model.Run{{
			Text:     text,
			FontName: b.style.FontFamily,
			FontSize: b.style.BodySize,
		}},
		LineSpacing: b.style.LineSpacing,
	}
}

// normalize returns text in Unicode NFC so identical content always
// serializes to identical bytes.
func normalize(s string) string {
	return norm.NFC.String(s)
}

// cellText converts a table value to its displayed text.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
