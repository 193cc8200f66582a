package quill

import "errors"

// Errors returned by the Builder.
var (
	// ErrInvalidStyle is returned by New when the style configuration is unusable.
	ErrInvalidStyle = errors.New("quill: invalid style configuration")

	// ErrEmptyText is returned when a title, heading or paragraph has no text.
	ErrEmptyText = errors.New("quill: empty text")

	// ErrEmptyHeaders is returned by AddTable when no column headers are given.
	ErrEmptyHeaders = errors.New("quill: table has no headers")

	// ErrRowShape is returned by AddTable when a row's cell count differs from
	// the number of headers.
	ErrRowShape = errors.New("quill: table row does not match header count")

	// ErrSaved is returned when content is added after the document was saved.
	ErrSaved = errors.New("quill: document already saved")

	// ErrSave wraps the I/O error of a failed Save.
	ErrSave = errors.New("quill: saving document")
)
