package service

import (
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
)

// embeddingVowels includes umlauts so German titles embed sensibly.
const embeddingVowels = "aeiouyäöü"

// TextEmbedding maps text onto the 3-dimensional vector stored with each
// recipe: rune count, vowel count and count of other letters. Similar
// texts land close together under L2 distance.
func TextEmbedding(text string) pgvector.Vector {
	var runes, vowels, letters int
	for _, r := range strings.ToLower(text) {
		runes++
		switch {
		case strings.ContainsRune(embeddingVowels, r):
			vowels++
		case unicode.IsLetter(r):
			letters++
		}
	}
	return pgvector.NewVector([]float32{float32(runes), float32(vowels), float32(letters)})
}

func recipeEmbedding(title, description string) pgvector.Vector {
	return TextEmbedding(title + " " + description)
}
