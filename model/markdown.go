package model

import "strings"

// ToMarkdown renders the document as Markdown. The title uses a level-one
// heading, so document headings are shifted down one level.
func (d *Document) ToMarkdown() string {
	var sb strings.Builder

	for i, elem := range d.Elements {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch e := elem.(type) {
		case *Title:
			sb.WriteString("# ")
			sb.WriteString(e.Text)
			sb.WriteString("\n")
			if e.Subtitle.Text != "" {
				sb.WriteString("\n_")
				sb.WriteString(e.Subtitle.Text)
				sb.WriteString("_\n")
			}
		case *Heading:
			level := e.Level + 1
			if level > 6 {
				level = 6
			}
			sb.WriteString(strings.Repeat("#", level))
			sb.WriteString(" ")
			sb.WriteString(e.GetText())
			sb.WriteString("\n")
		case *Paragraph:
			sb.WriteString(markdownLines(e.GetText()))
			sb.WriteString("\n")
		case *Table:
			sb.WriteString(e.ToMarkdown())
		case *PageBreak:
			sb.WriteString("---\n")
		}
	}

	return sb.String()
}

// markdownLines turns in-paragraph newlines into hard line breaks.
func markdownLines(text string) string {
	text = strings.Trim(text, "\n")
	return strings.ReplaceAll(text, "\n", "  \n")
}
