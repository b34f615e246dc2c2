package parser

import (
	"regexp"
	"strings"
)

var (
	instructionSectionPattern = regexp.MustCompile(`Anleitung für[^:\n]*:`)
	stepMarkerPattern         = regexp.MustCompile(`\d+\.\s*`)
)

// instructionSentinels end the instruction section when present.
var instructionSentinels = []string{"Lass es dir schmecken", "#YAZIO"}

// ParseInstructions returns the numbered steps of the "Anleitung für ...:"
// section in source order.
func ParseInstructions(text string) []string {
	instructions := []string{}

	loc := instructionSectionPattern.FindStringIndex(text)
	if loc == nil {
		return instructions
	}
	section := text[loc[1]:]
	for _, sentinel := range instructionSentinels {
		if end := strings.Index(section, sentinel); end >= 0 {
			section = section[:end]
		}
	}

	fragments := stepMarkerPattern.Split(section, -1)
	// fragments[0] precedes the first marker.
	for _, fragment := range fragments[1:] {
		if step := strings.TrimSpace(fragment); step != "" {
			instructions = append(instructions, step)
		}
	}
	return instructions
}
