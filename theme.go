package brandpdf

import (
	"encoding/json"
	"fmt"
)

// ThemeParameters maps the diagram engine's named visual roles to concrete
// colors. Derived once per run from the brand colors, then treated as
// immutable.
type ThemeParameters map[string]string

// DeriveDiagramTheme fans the six brand colors out to every visual role the
// mermaid theming schema exposes. It is a pure function: the same ColorSet
// always yields the same parameters, and every role resolves to a color.
//
// Mapping policy:
//   - accent          -> filled shapes: node fills, task bars, pie slice 1
//   - primary         -> text, borders, lines, arrows, actor fills
//   - secondary       -> tertiary elements, completed-state fills
//   - warning         -> critical path, today line, error surfaces
//   - lightBackground -> cluster/section/note backgrounds, text on fills
//   - borderColor     -> secondary borders, gridlines
func DeriveDiagramTheme(colors ColorSet) ThemeParameters {
	return ThemeParameters{
		// General
		"primaryColor":       colors.Accent,
		"primaryTextColor":   colors.LightBackground,
		"primaryBorderColor": colors.Primary,
		"secondaryColor":     colors.Secondary,
		"tertiaryColor":      colors.LightBackground,
		"background":         colors.LightBackground,
		"mainBkg":            colors.Accent,
		"secondBkg":          colors.Secondary,
		"lineColor":          colors.Primary,
		"textColor":          colors.Primary,
		"border1":            colors.Primary,
		"border2":            colors.BorderColor,
		"arrowheadColor":     colors.Primary,

		// Flowchart
		"nodeBorder":          colors.Primary,
		"nodeTextColor":       colors.LightBackground,
		"clusterBkg":          colors.LightBackground,
		"clusterBorder":       colors.BorderColor,
		"defaultLinkColor":    colors.Primary,
		"titleColor":          colors.Primary,
		"edgeLabelBackground": colors.LightBackground,

		// Sequence
		"actorBkg":              colors.Primary,
		"actorBorder":           colors.BorderColor,
		"actorTextColor":        colors.LightBackground,
		"actorLineColor":        colors.BorderColor,
		"signalColor":           colors.Primary,
		"signalTextColor":       colors.Primary,
		"labelBoxBkgColor":      colors.LightBackground,
		"labelBoxBorderColor":   colors.BorderColor,
		"labelTextColor":        colors.Primary,
		"loopTextColor":         colors.Primary,
		"noteBkgColor":          colors.LightBackground,
		"noteBorderColor":       colors.BorderColor,
		"noteTextColor":         colors.Primary,
		"activationBkgColor":    colors.Secondary,
		"activationBorderColor": colors.Primary,
		"sequenceNumberColor":   colors.LightBackground,

		// Gantt / timeline
		"sectionBkgColor":       colors.LightBackground,
		"altSectionBkgColor":    colors.LightBackground,
		"sectionBkgColor2":      colors.LightBackground,
		"taskBkgColor":          colors.Accent,
		"taskBorderColor":       colors.Primary,
		"taskTextColor":         colors.LightBackground,
		"taskTextLightColor":    colors.LightBackground,
		"taskTextDarkColor":     colors.Primary,
		"taskTextOutsideColor":  colors.Primary,
		"activeTaskBkgColor":    colors.Accent,
		"activeTaskBorderColor": colors.Primary,
		"doneTaskBkgColor":      colors.Secondary,
		"doneTaskBorderColor":   colors.BorderColor,
		"critBkgColor":          colors.Warning,
		"critBorderColor":       colors.Warning,
		"gridColor":             colors.BorderColor,
		"todayLineColor":        colors.Warning,

		// State / architecture
		"transitionColor":          colors.Primary,
		"labelColor":               colors.Primary,
		"altBackground":            colors.LightBackground,
		"compositeBackground":      colors.LightBackground,
		"compositeTitleBackground": colors.LightBackground,
		"archEdgeColor":            colors.Primary,
		"archEdgeArrowColor":       colors.Primary,
		"archGroupBorderColor":     colors.BorderColor,

		// Pie
		"pie1":                colors.Accent,
		"pie2":                colors.Primary,
		"pie3":                colors.Secondary,
		"pie4":                colors.Warning,
		"pie5":                colors.LightBackground,
		"pie6":                colors.BorderColor,
		"pieTitleTextColor":   colors.Primary,
		"pieSectionTextColor": colors.LightBackground,
		"pieLegendTextColor":  colors.Primary,
		"pieStrokeColor":      colors.BorderColor,
		"pieOuterStrokeColor": colors.Primary,

		// Error surfaces
		"errorBkgColor":  colors.Warning,
		"errorTextColor": colors.LightBackground,
	}
}

// mermaidConfig is the JSON document handed to the mermaid CLI via its
// config flag.
type mermaidConfig struct {
	Theme          string          `json:"theme"`
	ThemeVariables ThemeParameters `json:"themeVariables"`
}

// MarshalMermaidConfig serializes theme parameters into a mermaid CLI
// config document. encoding/json sorts map keys, so the output is
// byte-identical for identical parameters.
func MarshalMermaidConfig(theme ThemeParameters) ([]byte, error) {
	data, err := json.Marshal(mermaidConfig{Theme: "base", ThemeVariables: theme})
	if err != nil {
		return nil, fmt.Errorf("serializing diagram theme: %w", err)
	}
	return data, nil
}
