package quill

import (
	"github.com/rs/zerolog"

	"github.com/tsawler/quill/model"
)

// builderOptions holds configuration for a Builder.
type builderOptions struct {
	style    model.StyleConfig
	metadata model.Metadata
	logger   zerolog.Logger
}

// Option configures a Builder.
type Option func(*builderOptions)

// defaultOptions returns the report formatting with no metadata and a
// discarding logger.
func defaultOptions() builderOptions {
	return builderOptions{
		style:    model.DefaultStyle(),
		metadata: model.Metadata{Custom: make(map[string]string)},
		logger:   zerolog.Nop(),
	}
}

// WithStyle replaces the formatting applied to every block.
//
// Example:
//
//	style := model.DefaultStyle()
//	style.BodySize = 12
//	b, err := quill.New(quill.WithStyle(style))
func WithStyle(style model.StyleConfig) Option {
	return func(o *builderOptions) {
		o.style = style
	}
}

// WithMetadata sets the document properties written to the package.
func WithMetadata(meta model.Metadata) Option {
	return func(o *builderOptions) {
		custom := make(map[string]string, len(meta.Custom))
		for k, v := range meta.Custom {
			custom[k] = v
		}
		meta.Custom = custom
		meta.Keywords = append([]string(nil), meta.Keywords...)
		o.metadata = meta
	}
}

// WithLogger sets the logger used to trace builder operations.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *builderOptions) {
		o.logger = logger
	}
}
