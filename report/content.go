// Package report holds the tweet sentiment project report: its literal
// content and the fixed order in which that content is handed to a
// quill.Builder.
//
// The content lives in an embedded YAML document so the text and the
// confusion matrix stay separate from the code that lays them out. Load reads
// a replacement document with the same shape.
package report

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/quill"
)

// OutputFile is the file name the report is saved under by default.
const OutputFile = "Tweet_Sentiment_Analysis_Formatted_Report.docx"

// ErrInvalidContent is returned when report content is incomplete or
// malformed.
var ErrInvalidContent = errors.New("report: invalid content")

//go:embed report.yaml
var defaultContent []byte

// Content is a complete report: a title page followed by sections.
type Content struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Sections []Section `yaml:"sections"`
}

// Section is a level-1 heading and its body. The Output section also carries
// a caption, a table and a trailing page break.
//
// Plain sections set only the font sizes and leave family, weight and
// spacing to the document styles.
type Section struct {
	Heading        string `yaml:"heading"`
	Body           string `yaml:"body"`
	Plain          bool   `yaml:"plain,omitempty"`
	Caption        string `yaml:"caption,omitempty"`
	Table          *Table `yaml:"table,omitempty"`
	PageBreakAfter bool   `yaml:"page_break_after,omitempty"`
}

// Table is a header row plus records. Record values may be strings or numbers.
type Table struct {
	Headers []string `yaml:"headers"`
	Rows    [][]any  `yaml:"rows"`
}

// Default returns the built-in report content.
func Default() (*Content, error) {
	return Parse(defaultContent)
}

// DefaultYAML returns the raw built-in content, the starting point for a
// replacement passed to Load.
func DefaultYAML() []byte {
	return bytes.Clone(defaultContent)
}

// Load reads report content from a YAML file.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes report content. Unknown keys are rejected and the result is
// validated.
func Parse(data []byte) (*Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every piece of text and every table before anything is
// built, so a bad section never leaves a half-written document.
func (c *Content) Validate() error {
	if c.Title == "" || c.Subtitle == "" {
		return fmt.Errorf("%w: title page needs a title and a subtitle", ErrInvalidContent)
	}
	if len(c.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidContent)
	}
	for i, s := range c.Sections {
		if s.Heading == "" {
			return fmt.Errorf("%w: section %d has no heading", ErrInvalidContent, i+1)
		}
		if s.Body == "" {
			return fmt.Errorf("%w: section %q has no body", ErrInvalidContent, s.Heading)
		}
		if s.Table == nil {
			continue
		}
		if len(s.Table.Headers) == 0 {
			return fmt.Errorf("%w: table in %q has no headers", ErrInvalidContent, s.Heading)
		}
		for r, row := range s.Table.Rows {
			if len(row) != len(s.Table.Headers) {
				return fmt.Errorf("%w: table in %q: row %d has %d cells, want %d",
					ErrInvalidContent, s.Heading, r+1, len(row), len(s.Table.Headers))
			}
		}
	}
	return nil
}

// Build appends the report to b: the title page, then each section's heading
// and body, its caption, its table and its page break, in that order.
func (c *Content) Build(b *quill.Builder) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := b.AddTitlePage(c.Title, c.Subtitle); err != nil {
		return err
	}
	for _, s := range c.Sections {
		add := b.AddHeadingAndContent
		if s.Plain {
			add = b.AddPlainHeadingAndContent
		}
		if err := add(s.Heading, s.Body); err != nil {
			return err
		}
		if s.Caption != "" {
			if err := b.AddParagraph(s.Caption); err != nil {
				return err
			}
		}
		if s.Table != nil {
			if _, err := b.AddTable(s.Table.Rows, s.Table.Headers); err != nil {
				return fmt.Errorf("section %q: %w", s.Heading, err)
			}
		}
		if s.PageBreakAfter {
			if err := b.AddPageBreak(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Headings returns the section headings in order.
func (c *Content) Headings() []string {
	headings := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		headings[i] = s.Heading
	}
	return headings
}
