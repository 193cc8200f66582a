package model

import (
	"fmt"
	"math"
)

// Length is a distance in English Metric Units (914400 per inch).
type Length int64

// EMU conversion factors.
const (
	emuPerInch  = 914400
	emuPerCm    = 360000
	emuPerPoint = 12700
	emuPerTwip  = 635
)

// Inches returns a Length of the given number of inches.
func Inches(v float64) Length { return Length(math.Round(v * emuPerInch)) }

// Cm returns a Length of the given number of centimetres.
func Cm(v float64) Length { return Length(math.Round(v * emuPerCm)) }

// Pt returns a Length of the given number of points.
func Pt(v float64) Length { return Length(math.Round(v * emuPerPoint)) }

// Twips returns a Length of the given number of twentieths of a point.
func Twips(v int64) Length { return Length(v * emuPerTwip) }

// Inches returns the length in inches.
func (l Length) Inches() float64 { return float64(l) / emuPerInch }

// Centimeters returns the length in centimetres.
func (l Length) Centimeters() float64 { return float64(l) / emuPerCm }

// Points returns the length in points.
func (l Length) Points() float64 { return float64(l) / emuPerPoint }

// Twips returns the length rounded to whole twips, the unit WordprocessingML
// uses for page geometry.
func (l Length) Twips() int64 { return int64(math.Round(float64(l) / emuPerTwip)) }

func (l Length) String() string {
	return fmt.Sprintf("%.2fcm", l.Centimeters())
}

// HalfPoints converts a font size in points to the half-point integer used by
// w:sz.
func HalfPoints(size float64) int {
	return int(math.Round(size * 2))
}
