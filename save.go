package quill

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsawler/quill/docx"
	"github.com/tsawler/quill/format"
	"github.com/tsawler/quill/htmldoc"
)

// countingWriter tracks bytes written for WriteTo.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// WriteTo writes the document to w as a DOCX package. It does not change the
// Builder's state.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := docx.Write(cw, b.doc)
	return cw.n, err
}

// Render writes the document to w in the given format. Unknown formats are
// written as DOCX.
func (b *Builder) Render(w io.Writer, f format.Format) error {
	switch f {
	case format.HTML:
		return htmldoc.Render(w, b.doc)
	case format.Markdown:
		_, err := io.WriteString(w, b.doc.ToMarkdown())
		return err
	default:
		return docx.Write(w, b.doc)
	}
}

// Save writes the document to path, choosing the format from the file
// extension (.docx, .html or .md; anything else is written as DOCX). The file
// is written beside its destination and renamed into place, so an existing
// file is either fully replaced or left untouched. After the first successful
// Save no more content may be added; saving again overwrites the file.
func (b *Builder) Save(path string) error {
	f := format.Detect(path)
	if f == format.Unknown {
		f = format.DOCX
	}

	if err := b.writeFile(path, f); err != nil {
		b.log.Error().Err(err).Str("path", path).Msg("save failed")
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	b.saved = true
	b.log.Info().Str("path", path).Stringer("format", f).Int("blocks", b.doc.Len()).Msg("document saved")
	return nil
}

func (b *Builder) writeFile(path string, f format.Format) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = b.Render(tmp, f); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
