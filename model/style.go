package model

import (
	"errors"
	"fmt"
)

// StyleConfig is the formatting applied by the builder. Values are immutable
// once a builder has been created with them.
type StyleConfig struct {
	FontFamily   string
	HeadingSize  float64 // points, level-1 headings
	SubtitleSize float64 // points
	BodySize     float64 // points
	LineSpacing  float64 // multiple of single spacing
	Margin       Length  // applied to all four sides
	TableStyle   string  // table style ID
}

// DefaultStyle returns the report formatting: Times New Roman, 18pt bold
// headings, 14pt body at 1.5 spacing, 16pt subtitle, 2.54cm margins and the
// grid table style.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		FontFamily:   "Times New Roman",
		HeadingSize:  18,
		SubtitleSize: 16,
		BodySize:     14,
		LineSpacing:  1.5,
		Margin:       Cm(2.54),
		TableStyle:   "TableGrid",
	}
}

// Validate reports the first invalid field.
func (s StyleConfig) Validate() error {
	switch {
	case s.FontFamily == "":
		return errors.New("font family is empty")
	case s.HeadingSize <= 0:
		return fmt.Errorf("heading size %v must be positive", s.HeadingSize)
	case s.SubtitleSize <= 0:
		return fmt.Errorf("subtitle size %v must be positive", s.SubtitleSize)
	case s.BodySize <= 0:
		return fmt.Errorf("body size %v must be positive", s.BodySize)
	case s.LineSpacing <= 0:
		return fmt.Errorf("line spacing %v must be positive", s.LineSpacing)
	case s.Margin < 0:
		return fmt.Errorf("margin %v must not be negative", s.Margin)
	case s.TableStyle == "":
		return errors.New("table style is empty")
	}
	return nil
}

// HeadingSizeFor returns the font size for a heading level. Each level below
// 1 is 2pt smaller, bottoming out at the body size.
func (s StyleConfig) HeadingSizeFor(level int) float64 {
	if level < 1 {
		level = 1
	}
	size := s.HeadingSize - float64(2*(level-1))
	if size < s.BodySize {
		return s.BodySize
	}
	return size
}
