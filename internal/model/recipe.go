package model

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

// ImportedRecipe is a recipe pasted by a user, stored together with the
// text it was parsed from.
type ImportedRecipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Calories     *int             `json:"calories,omitempty"`
	Time         *string          `gorm:"size:100" json:"time,omitempty"`
	Difficulty   *string          `gorm:"size:100" json:"difficulty,omitempty"`
	Description  string           `gorm:"type:text" json:"description"`
	Portions     int              `gorm:"not null;default:1" json:"portions"`
	Ingredients  IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Steps        StepList         `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	RawText      string           `gorm:"type:text;not null" json:"raw_text"`
	SourceHash   string           `gorm:"size:64;index" json:"source_hash"`
	Embedding    pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}

func (ImportedRecipe) TableName() string {
	return "imported_recipes"
}

// BeforeCreate assigns an id when none is set.
func (r *ImportedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ApplyParsed copies the parser output onto the stored record.
func (r *ImportedRecipe) ApplyParsed(p *parser.ParsedRecipe) {
	r.Title = p.Title
	r.Calories = p.Calories
	r.Time = p.Time
	r.Difficulty = p.Difficulty
	r.Description = p.Description
	r.Portions = p.Portions
	r.Ingredients = IngredientList(p.Ingredients)
	r.Instructions = JSONBStringArray(p.Instructions)
	r.Steps = StepList(p.Steps)
}

// Parsed returns the record in parser form.
func (r *ImportedRecipe) Parsed() parser.ParsedRecipe {
	p := parser.ParsedRecipe{
		Title:        r.Title,
		Calories:     r.Calories,
		Time:         r.Time,
		Difficulty:   r.Difficulty,
		Description:  r.Description,
		Portions:     r.Portions,
		Ingredients:  []parser.Ingredient(r.Ingredients),
		Instructions: []string(r.Instructions),
		Steps:        []parser.RecipeStep(r.Steps),
	}
	if p.Ingredients == nil {
		p.Ingredients = []parser.Ingredient{}
	}
	if p.Instructions == nil {
		p.Instructions = []string{}
	}
	if p.Steps == nil {
		p.Steps = []parser.RecipeStep{}
	}
	return p
}
