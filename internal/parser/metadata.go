package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Metadata holds the summary line fields. Each field is nil when absent.
type Metadata struct {
	Calories   *int
	Time       *string
	Difficulty *string
}

// The separator is U+30FB KATAKANA MIDDLE DOT.
var metadataPattern = regexp.MustCompile(`(\d+)[ \t]*(?i:kcal)[ \t]*・[ \t]*([^・\n]+?)[ \t]*・[ \t]*([^\n]+)`)

// ExtractMetadata finds a "<kcal> ・ <time> ・ <difficulty>" line. ok is
// false when no such line exists.
func ExtractMetadata(text string) (meta Metadata, ok bool) {
	m := metadataPattern.FindStringSubmatch(text)
	if m == nil {
		return Metadata{}, false
	}

	// Digits that overflow int leave calories unset.
	if kcal, err := strconv.Atoi(m[1]); err == nil {
		meta.Calories = &kcal
	}
	timeText := strings.TrimSpace(m[2])
	difficulty := strings.TrimSpace(m[3])
	meta.Time = &timeText
	meta.Difficulty = &difficulty
	return meta, true
}
