// Package model provides the intermediate representation (IR) for authored
// document content.
//
// This package defines the format-neutral data structures that the builder
// appends to and that every serializer (DOCX, HTML, Markdown) reads from. The
// DOCX reader also produces these types, so a written document can be read
// back and compared against what was built.
//
// # Document Structure
//
// The [Document] type represents a complete document with metadata, a single
// page-layout [Section] and an ordered list of blocks:
//
//	doc := model.NewDocument()
//	doc.Metadata.Title = "Project Report"
//	doc.Append(&model.Heading{Level: 1, Runs: []model.Run{{Text: "Introduction"}}})
//
// # Elements
//
// All blocks implement the [Element] interface. The concrete types are:
//
//   - [Title] - centered main title with an optional subtitle
//   - [Heading] - headings (levels 1-9)
//   - [Paragraph] - text paragraphs made of [Run] values
//   - [Table] - tables of [Cell] values with a header row
//   - [PageBreak] - an explicit page break
//
// Blocks are never modified after they are appended; the order of
// [Document.Elements] is the rendering order.
//
// # Units
//
// [Length] stores distances in English Metric Units (EMU) so centimetre,
// point, inch and twip values convert without drift:
//
//	model.Cm(2.54).Twips() // 1440
//
// # Styling
//
// [StyleConfig] carries every formatting choice the builder applies (font
// family, heading/body/subtitle sizes, line spacing, margins, table style).
// [DefaultStyle] returns the values used by the report.
package model
