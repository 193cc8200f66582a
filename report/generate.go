package report

import (
	"github.com/tsawler/quill"
)

// Generate builds c with a new Builder configured by opts and saves it to
// path. The builder is returned so callers can inspect what was written.
func Generate(c *Content, path string, opts ...quill.Option) (*quill.Builder, error) {
	b, err := quill.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Build(b); err != nil {
		return nil, err
	}
	if err := b.Save(path); err != nil {
		return nil, err
	}
	return b, nil
}
