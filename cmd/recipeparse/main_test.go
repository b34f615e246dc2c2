package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

const omeletteText = "Omelette\n" +
	"300 kcal ・ 10 Min ・ Einfach\n" +
	"Zutaten für 1 Portion:\n" +
	"Ei (3 Stk)・Milch (2 EL)\n" +
	"Anleitung für 1 Portion:\n" +
	"1. Eier verquirlen\n" +
	"2. In der Pfanne stocken lassen"

func run(t *testing.T, stdin string, args ...string) []parser.ParsedRecipe {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand(zap.NewNop(), strings.NewReader(stdin), &out)
	require.NoError(t, cmd.Run(context.Background(), append([]string{"recipeparse"}, args...)))

	var recipes []parser.ParsedRecipe
	require.NoError(t, json.Unmarshal(out.Bytes(), &recipes))
	return recipes
}

func TestRecipeParseStdin(t *testing.T) {
	recipes := run(t, omeletteText)

	require.Len(t, recipes, 1)
	assert.Equal(t, "Omelette", recipes[0].Title)
	assert.Equal(t, 1, recipes[0].Portions)
	require.Len(t, recipes[0].Ingredients, 2)
	assert.Equal(t, "Milch", recipes[0].Ingredients[1].Name)
	assert.Equal(t, "EL", recipes[0].Ingredients[1].Unit)
}

func TestRecipeParseFilesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(first, []byte(omeletteText), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("Nur ein Titel"), 0o600))

	recipes := run(t, "", "--concurrency", "2", "--pretty", first, second)

	require.Len(t, recipes, 2)
	assert.Equal(t, "Omelette", recipes[0].Title)
	assert.Equal(t, "Nur ein Titel", recipes[1].Title)
	assert.Empty(t, recipes[1].Ingredients)
}

func TestRecipeParseMissingFile(t *testing.T) {
	cmd := newCommand(zap.NewNop(), strings.NewReader(""), &bytes.Buffer{})
	err := cmd.Run(context.Background(), []string{"recipeparse", filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestReadInputs(t *testing.T) {
	texts, err := readInputs(nil, strings.NewReader("Titel"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Titel"}, texts)
}
