package docx

import (
	"encoding/xml"
	"testing"

	"github.com/tsawler/quill/model"
)

func TestNewStyleResolver_Nil(t *testing.T) {
	sr := NewStyleResolver(nil)
	if sr == nil {
		t.Fatal("NewStyleResolver(nil) returned nil")
	}

	style := sr.Resolve("")
	if style.FontSize != 11 {
		t.Errorf("default FontSize = %v, want 11", style.FontSize)
	}
	if style.FontName != "Calibri" {
		t.Errorf("default FontName = %v, want Calibri", style.FontName)
	}
	if style.Alignment != "left" {
		t.Errorf("default Alignment = %v, want left", style.Alignment)
	}
}

func TestStyleResolver_ResolveBuiltInHeading(t *testing.T) {
	sr := NewStyleResolver(nil)

	tests := []struct {
		styleID       string
		wantIsHeading bool
		wantLevel     int
	}{
		{"Heading1", true, 1},
		{"Heading2", true, 2},
		{"heading1", true, 1},
		{"Title", false, 0},
		{"Normal", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.styleID, func(t *testing.T) {
			style := sr.Resolve(tt.styleID)
			if style.IsHeading != tt.wantIsHeading {
				t.Errorf("IsHeading = %v, want %v", style.IsHeading, tt.wantIsHeading)
			}
			if style.HeadingLevel != tt.wantLevel {
				t.Errorf("HeadingLevel = %v, want %v", style.HeadingLevel, tt.wantLevel)
			}
		})
	}
}

func TestStyleResolver_WithStyles(t *testing.T) {
	styles := &stylesXML{
		DocDefaults: docDefaultsXML{
			RPrDefault: rPrDefaultXML{RPr: runPropsXML{
				Font:     fontXML{ASCII: "Georgia"},
				FontSize: sizeXML{Val: "20"},
			}},
			PPrDefault: pPrDefaultXML{PPr: paragraphPropsXML{
				Spacing: spacingXML{Line: "276", LineRule: "auto"},
			}},
		},
		Styles: []styleDefXML{
			{
				StyleID: "CustomHeading",
				Type:    "paragraph",
				Name:    styleNameXML{Val: "My Custom Heading"},
				PPr: paragraphPropsXML{
					OutlineLvl: outlineLvlXML{Val: "1"},
				},
				RPr: runPropsXML{
					Bold:     boolXML{XMLName: xml.Name{Local: "b"}},
					FontSize: sizeXML{Val: "28"},
				},
			},
			{
				StyleID: "CenteredPara",
				Type:    "paragraph",
				Name:    styleNameXML{Val: "Centered Paragraph"},
				PPr: paragraphPropsXML{
					Justification: justificationXML{Val: "center"},
					Spacing:       spacingXML{Line: "480", LineRule: "auto"},
				},
			},
		},
	}

	sr := NewStyleResolver(styles)

	t.Run("custom heading", func(t *testing.T) {
		style := sr.Resolve("CustomHeading")
		if !style.IsHeading || style.HeadingLevel != 2 {
			t.Errorf("heading = %v/%d, want true/2", style.IsHeading, style.HeadingLevel)
		}
		if style.FontSize != 14 {
			t.Errorf("FontSize = %v, want 14", style.FontSize)
		}
		if !style.Bold {
			t.Error("expected Bold = true")
		}
		if style.FontName != "Georgia" {
			t.Errorf("FontName = %v, want Georgia from defaults", style.FontName)
		}
	})

	t.Run("centered paragraph", func(t *testing.T) {
		style := sr.Resolve("CenteredPara")
		if style.Alignment != "center" {
			t.Errorf("Alignment = %v, want center", style.Alignment)
		}
		if style.LineSpacing != 2 {
			t.Errorf("LineSpacing = %v, want 2", style.LineSpacing)
		}
	})

	t.Run("unknown style falls back to defaults", func(t *testing.T) {
		style := sr.Resolve("Missing")
		if style.FontSize != 10 {
			t.Errorf("FontSize = %v, want 10", style.FontSize)
		}
		if style.LineSpacing != 1.15 {
			t.Errorf("LineSpacing = %v, want 1.15", style.LineSpacing)
		}
	})
}

func TestStyleResolver_Inheritance(t *testing.T) {
	styles := &stylesXML{
		Styles: []styleDefXML{
			{
				StyleID: "BaseStyle",
				Type:    "paragraph",
				Name:    styleNameXML{Val: "Base"},
				PPr: paragraphPropsXML{
					Justification: justificationXML{Val: "left"},
					Spacing:       spacingXML{Line: "360"},
				},
				RPr: runPropsXML{
					FontSize: sizeXML{Val: "24"},
					Font:     fontXML{ASCII: "Arial"},
				},
			},
			{
				StyleID: "DerivedStyle",
				Type:    "paragraph",
				Name:    styleNameXML{Val: "Derived"},
				BasedOn: basedOnXML{Val: "BaseStyle"},
				PPr: paragraphPropsXML{
					Justification: justificationXML{Val: "center"},
				},
				RPr: runPropsXML{
					Bold: boolXML{XMLName: xml.Name{Local: "b"}},
				},
			},
			{
				StyleID: "LoopA",
				Type:    "paragraph",
				BasedOn: basedOnXML{Val: "LoopB"},
			},
			{
				StyleID: "LoopB",
				Type:    "paragraph",
				BasedOn: basedOnXML{Val: "LoopA"},
			},
		},
	}

	sr := NewStyleResolver(styles)
	style := sr.Resolve("DerivedStyle")

	if style.FontName != "Arial" {
		t.Errorf("FontName = %v, want Arial (inherited)", style.FontName)
	}
	if style.FontSize != 12 {
		t.Errorf("FontSize = %v, want 12 (inherited)", style.FontSize)
	}
	if style.LineSpacing != 1.5 {
		t.Errorf("LineSpacing = %v, want 1.5 (inherited)", style.LineSpacing)
	}
	if style.Alignment != "center" {
		t.Errorf("Alignment = %v, want center (overridden)", style.Alignment)
	}
	if !style.Bold {
		t.Error("Bold should be true")
	}

	if chain := sr.buildInheritanceChain("LoopA"); len(chain) != 2 {
		t.Errorf("cyclic chain = %v, want 2 entries", chain)
	}
}

func TestStyleResolver_ResolveRun(t *testing.T) {
	styles := &stylesXML{
		Styles: []styleDefXML{
			{
				StyleID: "NormalStyle",
				Type:    "paragraph",
				Name:    styleNameXML{Val: "Normal"},
				RPr: runPropsXML{
					FontSize: sizeXML{Val: "22"},
					Font:     fontXML{ASCII: "Times New Roman"},
					Italic:   boolXML{XMLName: xml.Name{Local: "i"}},
				},
			},
		},
	}

	sr := NewStyleResolver(styles)

	t.Run("inherit from paragraph style", func(t *testing.T) {
		resolved := sr.ResolveRun("NormalStyle", runPropsXML{})
		if resolved.FontName != "Times New Roman" {
			t.Errorf("FontName = %v, want Times New Roman", resolved.FontName)
		}
		if resolved.FontSize != 11 {
			t.Errorf("FontSize = %v, want 11", resolved.FontSize)
		}
		if !resolved.Style.Italic {
			t.Error("Italic should be inherited")
		}
	})

	t.Run("override with direct formatting", func(t *testing.T) {
		runProps := runPropsXML{
			Bold:      boolXML{XMLName: xml.Name{Local: "b"}},
			Italic:    boolXML{XMLName: xml.Name{Local: "i"}, Val: "0"},
			FontSize:  sizeXML{Val: "28"},
			Color:     colorXML{Val: "00FF80"},
			Underline: underlineXML{Val: "single"},
		}
		resolved := sr.ResolveRun("NormalStyle", runProps)

		if resolved.FontName != "Times New Roman" {
			t.Errorf("FontName = %v, want Times New Roman", resolved.FontName)
		}
		if resolved.FontSize != 14 {
			t.Errorf("FontSize = %v, want 14", resolved.FontSize)
		}
		if !resolved.Style.Bold || resolved.Style.Italic || !resolved.Style.Underline {
			t.Errorf("Style = %+v, want bold, underline, not italic", resolved.Style)
		}
		if resolved.Style.Color != (model.Color{G: 0xFF, B: 0x80}) {
			t.Errorf("Color = %+v", resolved.Style.Color)
		}
	})
}

func TestParseHalfPoints(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"24", 12},
		{"22", 11},
		{"0", 0},
		{"", 0},
		{"invalid", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseHalfPoints(tt.input)
			if got != tt.want {
				t.Errorf("parseHalfPoints(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTwips(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1440", 1440},
		{"720", 720},
		{"0", 0},
		{"", 0},
		{"invalid", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseTwips(tt.input)
			if got != tt.want {
				t.Errorf("parseTwips(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLineSpacing(t *testing.T) {
	tests := []struct {
		name string
		in   spacingXML
		want float64
	}{
		{"auto one and a half", spacingXML{Line: "360", LineRule: "auto"}, 1.5},
		{"implicit auto", spacingXML{Line: "240"}, 1},
		{"exact has no multiple", spacingXML{Line: "360", LineRule: "exact"}, 0},
		{"absent", spacingXML{}, 0},
		{"garbage", spacingXML{Line: "x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLineSpacing(tt.in); got != tt.want {
				t.Errorf("parseLineSpacing(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input  string
		want   model.Color
		wantOK bool
	}{
		{"365F91", model.Color{R: 0x36, G: 0x5F, B: 0x91}, true},
		{"000000", model.Color{}, true},
		{"auto", model.Color{}, false},
		{"12345", model.Color{}, false},
		{"GGGGGG", model.Color{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseHexColor(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseHexColor(%q) = %+v, %v; want %+v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDetectBuiltInHeading(t *testing.T) {
	tests := []struct {
		styleID   string
		isHeading bool
		level     int
	}{
		{"Heading1", true, 1},
		{"heading1", true, 1},
		{"HEADING1", true, 1},
		{"Heading9", true, 9},
		{"Heading10", false, 0},
		{"Heading", false, 0},
		{"Title", false, 0},
		{"Normal", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.styleID, func(t *testing.T) {
			isHeading, level := detectBuiltInHeading(tt.styleID)
			if isHeading != tt.isHeading {
				t.Errorf("isHeading = %v, want %v", isHeading, tt.isHeading)
			}
			if level != tt.level {
				t.Errorf("level = %v, want %v", level, tt.level)
			}
		})
	}
}

func TestStyleResolver_IsTitleStyle(t *testing.T) {
	sr := NewStyleResolver(&stylesXML{Styles: []styleDefXML{
		{StyleID: "a1", Type: "paragraph", Name: styleNameXML{Val: "Title"}},
	}})

	for id, want := range map[string]bool{"Title": true, "title": true, "a1": true, "Normal": false} {
		if got := sr.isTitleStyle(id); got != want {
			t.Errorf("isTitleStyle(%q) = %v, want %v", id, got, want)
		}
	}
}
