package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	ingredientHeader  = "Zutaten für"
	instructionHeader = "Anleitung für"
)

var (
	// Matches "Zutaten für 2 Portionen:"; the count is validated separately
	// so that "Zutaten für zwei Portionen:" still opens the section.
	ingredientSectionPattern = regexp.MustCompile(`Zutaten für[ \t]*(\S*)[ \t]*Portion[^:\n]*:`)
	entrySeparatorPattern    = regexp.MustCompile(`[・•\n]+`)
	parenthesizedPattern     = regexp.MustCompile(`^(.+?)\s*\(([^)]*)\)`)
)

// minBareEntryLength is the length an entry without parentheses must exceed
// to be kept as an ingredient.
const minBareEntryLength = 2

// ParseIngredients reads the "Zutaten für N Portionen:" section. Without
// that section it returns no ingredients and DefaultPortions.
func ParseIngredients(text string) ([]Ingredient, int) {
	ingredients := []Ingredient{}

	loc := ingredientSectionPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return ingredients, DefaultPortions
	}
	portions := parsePortions(text[loc[2]:loc[3]])

	section := text[loc[1]:]
	if end := strings.Index(section, instructionHeader); end >= 0 {
		section = section[:end]
	}

	i := 0
	for _, entry := range entrySeparatorPattern.Split(section, -1) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if ingredient, ok := parseIngredientEntry(entry); ok {
			ingredient.ID = ingredientID(i)
			ingredients = append(ingredients, ingredient)
		}
		i++
	}
	return ingredients, portions
}

func parsePortions(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return DefaultPortions
	}
	return n
}

// parseIngredientEntry converts one list entry. ok is false for entries too
// short to be an ingredient.
func parseIngredientEntry(entry string) (Ingredient, bool) {
	if m := parenthesizedPattern.FindStringSubmatch(entry); m != nil {
		ingredient := Ingredient{
			Name:     strings.TrimSpace(m[1]),
			Quantity: DefaultQuantity,
			Unit:     DefaultUnit,
		}
		if quantity, unit, ok := parseQuantity(m[2]); ok {
			ingredient.Quantity = quantity
			ingredient.Unit = unit
		}
		return ingredient, true
	}

	if utf8.RuneCountInString(entry) <= minBareEntryLength {
		return Ingredient{}, false
	}
	return Ingredient{
		Name:     entry,
		Quantity: DefaultQuantity,
		Unit:     DefaultUnit,
	}, true
}
