package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/quill/model"
)

// ResolvedStyle contains the fully resolved properties for a style.
type ResolvedStyle struct {
	// Identity
	ID   string
	Name string
	Type string // paragraph, character, table

	// Heading info
	IsHeading    bool
	HeadingLevel int // 1-9, 0 if not a heading

	// Paragraph properties
	Alignment   string  // left, center, right, both (justify)
	LineSpacing float64 // multiple of single spacing (0 = auto)

	// Run/character properties
	FontName  string
	FontSize  float64 // points
	Bold      bool
	Italic    bool
	Underline bool

	// Table properties
	HasBorders bool
}

// StyleResolver resolves styles with inheritance support.
type StyleResolver struct {
	styles         map[string]*styleDefXML
	resolved       map[string]*ResolvedStyle
	defaultPara    string
	defaultFont    string
	defaultSize    float64
	defaultSpacing float64
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:      make(map[string]*styleDefXML),
		resolved:    make(map[string]*ResolvedStyle),
		defaultFont: "Calibri", // Word default
		defaultSize: 11,        // Word default (11pt)
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
		if style.Type == "paragraph" && style.Default == "1" {
			sr.defaultPara = style.StyleID
		}
	}

	defaults := styles.DocDefaults
	if defaults.RPrDefault.RPr.Font.ASCII != "" {
		sr.defaultFont = defaults.RPrDefault.RPr.Font.ASCII
	}
	if size := parseHalfPoints(defaults.RPrDefault.RPr.FontSize.Val); size > 0 {
		sr.defaultSize = size
	}
	sr.defaultSpacing = parseLineSpacing(defaults.PPrDefault.PPr.Spacing)

	return sr
}

// Resolve returns the fully resolved style for the given style ID. An empty ID
// resolves the default paragraph style.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if styleID == "" {
		styleID = sr.defaultPara
	}
	if styleID == "" {
		return sr.defaultStyle()
	}

	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := sr.defaultStyle()
	resolved.ID = styleID

	styleDef, ok := sr.styles[styleID]
	if !ok {
		// Style not found - check for built-in heading styles
		resolved.IsHeading, resolved.HeadingLevel = detectBuiltInHeading(styleID)
		sr.resolved[styleID] = resolved
		return resolved
	}

	resolved.Name = styleDef.Name.Val
	resolved.Type = styleDef.Type

	// Apply properties from base to derived
	for _, sid := range sr.buildInheritanceChain(styleID) {
		if def, ok := sr.styles[sid]; ok {
			applyStyleDef(resolved, def)
		}
	}

	resolved.IsHeading, resolved.HeadingLevel = detectHeading(styleDef)

	sr.resolved[styleID] = resolved
	return resolved
}

// defaultStyle returns a style with document default values.
func (sr *StyleResolver) defaultStyle() *ResolvedStyle {
	return &ResolvedStyle{
		FontName:    sr.defaultFont,
		FontSize:    sr.defaultSize,
		Alignment:   "left",
		LineSpacing: sr.defaultSpacing,
	}
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...)

		def, ok := sr.styles[current]
		if !ok {
			break
		}
		current = def.BasedOn.Val
	}

	return chain
}

// applyStyleDef applies a style definition's properties to a resolved style.
func applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	ppr := def.PPr
	if ppr.Justification.Val != "" {
		resolved.Alignment = ppr.Justification.Val
	}
	if spacing := parseLineSpacing(ppr.Spacing); spacing > 0 {
		resolved.LineSpacing = spacing
	}

	applyRunProps(&resolved.FontName, &resolved.FontSize, &resolved.Bold, &resolved.Italic, &resolved.Underline, def.RPr)

	if def.TblPr.Borders.visible() {
		resolved.HasBorders = true
	}
}

// applyRunProps overlays direct run formatting onto inherited values.
func applyRunProps(font *string, size *float64, bold, italic, underline *bool, rpr runPropsXML) {
	if rpr.Font.ASCII != "" {
		*font = rpr.Font.ASCII
	}
	if s := parseHalfPoints(rpr.FontSize.Val); s > 0 {
		*size = s
	}
	if rpr.Bold.set() {
		*bold = rpr.Bold.on()
	}
	if rpr.Italic.set() {
		*italic = rpr.Italic.on()
	}
	if rpr.Underline.Val != "" {
		*underline = rpr.Underline.Val != "none"
	}
}

// detectHeading determines if a style represents a heading.
func detectHeading(def *styleDefXML) (bool, int) {
	if isHeading, level := detectBuiltInHeading(def.StyleID); isHeading {
		return true, level
	}

	name := strings.ToLower(def.Name.Val)
	if strings.HasPrefix(name, "heading") {
		for i := 1; i <= 9; i++ {
			if strings.Contains(name, strconv.Itoa(i)) {
				return true, i
			}
		}
		return true, 1
	}

	if level := parseOutlineLevel(def.PPr.OutlineLvl.Val); level >= 0 {
		return true, level + 1 // OutlineLvl is 0-based
	}

	return false, 0
}

// detectBuiltInHeading checks for Word's built-in heading style IDs.
func detectBuiltInHeading(styleID string) (bool, int) {
	id := strings.ToLower(styleID)
	if !strings.HasPrefix(id, "heading") {
		return false, 0
	}
	level, err := strconv.Atoi(strings.TrimPrefix(id, "heading"))
	if err != nil || level < 1 || level > 9 {
		return false, 0
	}
	return true, level
}

// isTitleStyle reports whether a paragraph style is the document title style.
func (sr *StyleResolver) isTitleStyle(styleID string) bool {
	if strings.EqualFold(styleID, "title") {
		return true
	}
	if def, ok := sr.styles[styleID]; ok {
		return strings.EqualFold(def.Name.Val, "title")
	}
	return false
}

// ResolveRun resolves run properties, combining paragraph style with direct formatting.
func (sr *StyleResolver) ResolveRun(paragraphStyle string, runProps runPropsXML) model.Run {
	base := sr.Resolve(paragraphStyle)

	run := model.Run{
		FontName: base.FontName,
		FontSize: base.FontSize,
		Style: model.TextStyle{
			Bold:      base.Bold,
			Italic:    base.Italic,
			Underline: base.Underline,
		},
	}
	applyRunProps(&run.FontName, &run.FontSize, &run.Style.Bold, &run.Style.Italic, &run.Style.Underline, runProps)
	if c, ok := parseHexColor(runProps.Color.Val); ok {
		run.Style.Color = c
	}

	return run
}

// parseOutlineLevel parses an outline level string; -1 means absent or invalid.
func parseOutlineLevel(s string) int {
	if s == "" {
		return -1
	}
	level, err := strconv.Atoi(s)
	if err != nil || level < 0 || level > 8 {
		return -1
	}
	return level
}

// parseHalfPoints parses a size in half-points to points.
// Word uses half-points for font sizes (e.g., "24" = 12pt).
func parseHalfPoints(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 2
}

// parseTwips parses a size in twips.
func parseTwips(s string) int64 {
	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

// parseLineSpacing converts auto line spacing (240ths of a line) to a
// multiple. Exact and at-least spacing have no multiple and return 0.
func parseLineSpacing(sp spacingXML) float64 {
	if sp.Line == "" || (sp.LineRule != "" && sp.LineRule != "auto") {
		return 0
	}
	val, err := strconv.ParseFloat(sp.Line, 64)
	if err != nil {
		return 0
	}
	return val / 240
}

// parseHexColor parses an RRGGBB color value.
func parseHexColor(s string) (model.Color, bool) {
	if len(s) != 6 {
		return model.Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return model.Color{}, false
	}
	return model.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// parseAlignment maps a w:jc value to a model alignment.
func parseAlignment(jc string) model.TextAlignment {
	switch jc {
	case "center":
		return model.AlignCenter
	case "right", "end":
		return model.AlignRight
	case "both", "distribute":
		return model.AlignJustify
	default:
		return model.AlignLeft
	}
}
