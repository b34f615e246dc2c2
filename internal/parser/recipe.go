// Package parser turns recipe text pasted from diet-tracking apps into a
// structured recipe. Every function in this package is total: malformed or
// partial input degrades to documented defaults instead of returning errors.
package parser

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultUnit is used when an ingredient carries no unit ("Stück").
	DefaultUnit = "Stk"
	// DefaultQuantity is used when no quantity could be read.
	DefaultQuantity = 1.0
	// DefaultPortions is used when the ingredient header has no usable count.
	DefaultPortions = 1
)

// ParsedRecipe is the result of parsing one pasted recipe.
type ParsedRecipe struct {
	Title        string       `json:"title"`
	Calories     *int         `json:"calories,omitempty"`
	Time         *string      `json:"time,omitempty"`
	Difficulty   *string      `json:"difficulty,omitempty"`
	Description  string       `json:"description"`
	Portions     int          `json:"portions"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Steps        []RecipeStep `json:"steps"`
}

// Ingredient is a single entry of the ingredient section.
type Ingredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// RecipeStep is an instruction with its position. Image is never set by the
// parser.
type RecipeStep struct {
	ID          string  `json:"id"`
	Instruction string  `json:"instruction"`
	Order       int     `json:"order"`
	Image       *string `json:"image,omitempty"`
}

// ParseRecipe runs every extractor against text and assembles the result.
// It is safe for concurrent use and always returns a well-formed recipe.
func ParseRecipe(text string) ParsedRecipe {
	text = norm.NFC.String(text)

	ingredients, portions := ParseIngredients(text)
	instructions := ParseInstructions(text)

	recipe := ParsedRecipe{
		Title:        ExtractTitle(text),
		Description:  ExtractDescription(text),
		Portions:     portions,
		Ingredients:  ingredients,
		Instructions: instructions,
		Steps:        BuildSteps(instructions),
	}

	if meta, ok := ExtractMetadata(text); ok {
		recipe.Calories = meta.Calories
		recipe.Time = meta.Time
		recipe.Difficulty = meta.Difficulty
	}

	return recipe
}

// BuildSteps derives one RecipeStep per instruction.
func BuildSteps(instructions []string) []RecipeStep {
	steps := make([]RecipeStep, 0, len(instructions))
	for i, instruction := range instructions {
		steps = append(steps, RecipeStep{
			ID:          stepID(i),
			Instruction: instruction,
			Order:       i + 1,
		})
	}
	return steps
}

func stepID(i int) string {
	return fmt.Sprintf("step-%d", i+1)
}

func ingredientID(i int) string {
	return fmt.Sprintf("ingredient-%d", i+1)
}
