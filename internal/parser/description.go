package parser

import (
	"strings"
	"unicode/utf8"
)

const minDescriptionLength = 50

// sectionMarkers identify lines that belong to a section rather than the
// free-text description.
var sectionMarkers = []string{"Zutaten für", "Anleitung für", "#YAZIO"}

// ExtractDescription returns the first long, non-header line after the title
// and metadata lines, or "" if there is none.
func ExtractDescription(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= 2 {
		return ""
	}
	for _, line := range lines[2:] {
		if utf8.RuneCountInString(line) <= minDescriptionLength {
			continue
		}
		if containsAny(line, sectionMarkers) {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line
	}
	return ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
