package model

import (
	"math"
	"strings"
	"testing"
)

// ============================================================================
// Length Tests
// ============================================================================

func TestLengthConversions(t *testing.T) {
	tests := []struct {
		name      string
		length    Length
		wantTwips int64
		wantCm    float64
		wantPt    float64
	}{
		{"2.54cm is one inch", Cm(2.54), 1440, 2.54, 72},
		{"one inch", Inches(1), 1440, 2.54, 72},
		{"72pt", Pt(72), 1440, 2.54, 72},
		{"1440 twips", Twips(1440), 1440, 2.54, 72},
		{"zero", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.length.Twips(); got != tt.wantTwips {
				t.Errorf("Twips() = %d, want %d", got, tt.wantTwips)
			}
			if got := tt.length.Centimeters(); math.Abs(got-tt.wantCm) > 1e-9 {
				t.Errorf("Centimeters() = %v, want %v", got, tt.wantCm)
			}
			if got := tt.length.Points(); math.Abs(got-tt.wantPt) > 1e-9 {
				t.Errorf("Points() = %v, want %v", got, tt.wantPt)
			}
		})
	}
}

func TestCmIsExact(t *testing.T) {
	if Cm(2.54) != Inches(1) {
		t.Errorf("Cm(2.54) = %d EMU, want %d", Cm(2.54), Inches(1))
	}
}

func TestHalfPoints(t *testing.T) {
	tests := []struct {
		size float64
		want int
	}{
		{14, 28},
		{18, 36},
		{16, 32},
		{10.5, 21},
	}
	for _, tt := range tests {
		if got := HalfPoints(tt.size); got != tt.want {
			t.Errorf("HalfPoints(%v) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

// ============================================================================
// Style Tests
// ============================================================================

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.FontFamily != "Times New Roman" {
		t.Errorf("FontFamily = %q", s.FontFamily)
	}
	if s.HeadingSize != 18 || s.BodySize != 14 || s.SubtitleSize != 16 {
		t.Errorf("sizes = %v/%v/%v, want 18/14/16", s.HeadingSize, s.BodySize, s.SubtitleSize)
	}
	if s.LineSpacing != 1.5 {
		t.Errorf("LineSpacing = %v, want 1.5", s.LineSpacing)
	}
	if s.Margin.Twips() != 1440 {
		t.Errorf("Margin = %d twips, want 1440", s.Margin.Twips())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StyleConfig)
	}{
		{"empty font", func(s *StyleConfig) { s.FontFamily = "" }},
		{"zero heading", func(s *StyleConfig) { s.HeadingSize = 0 }},
		{"negative body", func(s *StyleConfig) { s.BodySize = -1 }},
		{"zero subtitle", func(s *StyleConfig) { s.SubtitleSize = 0 }},
		{"zero spacing", func(s *StyleConfig) { s.LineSpacing = 0 }},
		{"negative margin", func(s *StyleConfig) { s.Margin = -1 }},
		{"empty table style", func(s *StyleConfig) { s.TableStyle = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("Validate() should return error")
			}
		})
	}
}

func TestHeadingSizeFor(t *testing.T) {
	s := DefaultStyle()
	tests := []struct {
		level int
		want  float64
	}{
		{0, 18},
		{1, 18},
		{2, 16},
		{3, 14},
		{9, 14},
	}
	for _, tt := range tests {
		if got := s.HeadingSizeFor(tt.level); got != tt.want {
			t.Errorf("HeadingSizeFor(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", doc.Len())
	}
	if doc.Metadata.Custom == nil {
		t.Error("Custom metadata map should be initialized")
	}
	if doc.Section.PageWidth.Twips() != 12240 || doc.Section.PageHeight.Twips() != 15840 {
		t.Errorf("page = %dx%d twips, want 12240x15840",
			doc.Section.PageWidth.Twips(), doc.Section.PageHeight.Twips())
	}
}

func TestSectionTextWidth(t *testing.T) {
	s := DefaultSection()
	s.Margins = UniformMargins(Cm(2.54))
	if got := s.TextWidth().Twips(); got != 9360 {
		t.Errorf("TextWidth() = %d twips, want 9360", got)
	}
}

func TestDocumentQueries(t *testing.T) {
	doc := NewDocument()
	table := NewTable(2, 2)
	doc.Append(
		&Title{Text: "Report", Subtitle: Run{Text: "Sub"}},
		&Heading{Level: 1, Runs: []Run{{Text: "Intro"}}},
		&Paragraph{Runs: []Run{{Text: "Body"}}},
		table,
		&PageBreak{},
		&Heading{Level: 2, Runs: []Run{{Text: "Detail"}}},
	)

	wantTypes := []ElementType{
		ElementTypeTitle, ElementTypeHeading, ElementTypeParagraph,
		ElementTypeTable, ElementTypePageBreak, ElementTypeHeading,
	}
	got := doc.Types()
	if len(got) != len(wantTypes) {
		t.Fatalf("Types() len = %d, want %d", len(got), len(wantTypes))
	}
	for i := range wantTypes {
		if got[i] != wantTypes[i] {
			t.Errorf("Types()[%d] = %v, want %v", i, got[i], wantTypes[i])
		}
	}

	if tables := doc.ExtractTables(); len(tables) != 1 || tables[0] != table {
		t.Errorf("ExtractTables() = %v", tables)
	}

	toc := doc.TableOfContents()
	if len(toc) != 2 || toc[0].Text != "Intro" || toc[1].Level != 2 {
		t.Errorf("TableOfContents() = %+v", toc)
	}

	text := doc.ExtractText()
	for _, want := range []string{"Report\nSub", "Intro", "Body"} {
		if !strings.Contains(text, want) {
			t.Errorf("ExtractText() missing %q", want)
		}
	}
}

func TestElementTypeString(t *testing.T) {
	tests := []struct {
		et   ElementType
		want string
	}{
		{ElementTypeTitle, "Title"},
		{ElementTypeHeading, "Heading"},
		{ElementTypeParagraph, "Paragraph"},
		{ElementTypeTable, "Table"},
		{ElementTypePageBreak, "PageBreak"},
		{ElementTypeUnknown, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func newSampleTable() *Table {
	table := NewTable(3, 2)
	table.HeaderRows = 1
	table.Rows[0][0].Text = "Name"
	table.Rows[0][1].Text = "Count"
	table.Rows[1][0].Text = "a|b"
	table.Rows[1][1].Text = "1"
	table.Rows[2][0].Text = "c, d"
	table.Rows[2][1].Text = "2"
	return table
}

func TestTableDimensions(t *testing.T) {
	table := newSampleTable()
	if table.RowCount() != 3 || table.ColCount() != 2 {
		t.Errorf("dims = %dx%d, want 3x2", table.RowCount(), table.ColCount())
	}
	if got := table.Headers(); len(got) != 2 || got[0] != "Name" || got[1] != "Count" {
		t.Errorf("Headers() = %v", got)
	}
	records := table.Records()
	if len(records) != 2 || records[1][1] != "2" {
		t.Errorf("Records() = %v", records)
	}
	if (&Table{}).ColCount() != 0 {
		t.Error("empty table ColCount() should be 0")
	}
}

func TestNewTable_SingleSpanCells(t *testing.T) {
	table := NewTable(2, 3)
	for r, row := range table.Rows {
		for c, cell := range row {
			if cell.RowSpan != 1 || cell.ColSpan != 1 || cell.Text != "" {
				t.Errorf("cell[%d][%d] = %+v", r, c, cell)
			}
		}
	}
}

func TestTableToMarkdown(t *testing.T) {
	want := "| Name | Count |\n|---|---|\n| a\\|b | 1 |\n| c, d | 2 |\n"
	if got := newSampleTable().ToMarkdown(); got != want {
		t.Errorf("ToMarkdown() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableToCSV(t *testing.T) {
	want := "Name,Count\na|b,1\n\"c, d\",2\n"
	if got := newSampleTable().ToCSV(); got != want {
		t.Errorf("ToCSV() = %q, want %q", got, want)
	}
}

// ============================================================================
// Markdown Tests
// ============================================================================

func TestDocumentToMarkdown(t *testing.T) {
	doc := NewDocument()
	table := NewTable(1, 2)
	table.Rows[0][0].Text = "A"
	table.Rows[0][1].Text = "B"
	doc.Append(
		&Title{Text: "Report", Subtitle: Run{Text: "Sub"}},
		&Heading{Level: 1, Runs: []Run{{Text: "Intro"}}},
		&Paragraph{Runs: []Run{{Text: "line one\nline two"}}},
		&PageBreak{},
		table,
	)

	got := doc.ToMarkdown()
	for _, want := range []string{
		"# Report\n",
		"_Sub_",
		"## Intro\n",
		"line one  \nline two\n",
		"---\n",
		"| A | B |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToMarkdown() missing %q in:\n%s", want, got)
		}
	}
}
