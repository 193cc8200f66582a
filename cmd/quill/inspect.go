package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tsawler/quill/docx"
	"github.com/tsawler/quill/format"
	"github.com/tsawler/quill/model"
)

var errNotDOCX = errors.New("not a DOCX document")

type inspectOptions struct {
	plain  bool
	tables bool
	width  int
	styled bool
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file.docx>",
		Short: "Summarize a DOCX document and render its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.styled = !opts.plain && isTerminal(os.Stdout)
			return runInspect(cmd.OutOrStdout(), args[0], *opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print raw Markdown instead of terminal formatting")
	cmd.Flags().BoolVar(&opts.tables, "tables", false, "also print every table as CSV")
	cmd.Flags().IntVar(&opts.width, "width", 80, "word wrap width for terminal formatting")
	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runInspect(w io.Writer, path string, opts inspectOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	kind, err := format.DetectFromReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if kind != format.DOCX {
		return fmt.Errorf("%s: %w (detected %s)", path, errNotDOCX, kind)
	}

	r, err := docx.OpenReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	doc, err := r.Document()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintln(w, summarize(w, path, doc))
	fmt.Fprintln(w, outline(doc))
	if opts.tables {
		for i, t := range doc.ExtractTables() {
			fmt.Fprintf(w, "Table %d (%d records x %d columns)\n", i+1, len(t.Records()), len(t.Headers()))
			fmt.Fprintln(w, t.ToCSV())
		}
	}
	fmt.Fprintln(w, renderMarkdown(doc.ToMarkdown(), opts.styled, opts.width))
	return nil
}

// outline lists the headings, indented by level.
func outline(doc *model.Document) string {
	var sb strings.Builder
	sb.WriteString("Outline\n")
	for _, e := range doc.TableOfContents() {
		sb.WriteString(strings.Repeat("  ", e.Level))
		sb.WriteString(e.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// summarize renders a key/value overview of doc.
func summarize(w io.Writer, path string, doc *model.Document) string {
	re := lipgloss.NewRenderer(w)
	keyStyle := re.NewStyle().Bold(true).Width(10)
	titleStyle := re.NewStyle().Bold(true).Underline(true)

	var breaks int
	for _, typ := range doc.Types() {
		if typ == model.ElementTypePageBreak {
			breaks++
		}
	}
	var records int
	tables := doc.ExtractTables()
	for _, t := range tables {
		records += len(t.Records())
	}

	m := doc.Section.Margins
	rows := [][2]string{
		{"Title", doc.Metadata.Title},
		{"Creator", doc.Metadata.Creator},
		{"Blocks", fmt.Sprint(doc.Len())},
		{"Headings", fmt.Sprint(len(doc.Headings()))},
		{"Tables", fmt.Sprintf("%d (%d records)", len(tables), records)},
		{"Breaks", fmt.Sprint(breaks)},
		{"Margins", fmt.Sprintf("%v %v %v %v", m.Top, m.Right, m.Bottom, m.Left)},
	}

	lines := []string{titleStyle.Render(path)}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(row[0]), row[1]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// renderMarkdown formats md for the terminal, falling back to the raw text.
func renderMarkdown(md string, styled bool, width int) string {
	if !styled {
		return md
	}

	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
