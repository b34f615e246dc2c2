package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	return jsonValue(a, len(a))
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	*a = JSONBStringArray{}
	return jsonScan(value, a)
}

// IngredientList stores parsed ingredients as a JSON array.
type IngredientList []parser.Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	return jsonValue(l, len(l))
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	*l = IngredientList{}
	return jsonScan(value, l)
}

// StepList stores recipe steps, including attached image URLs, as a JSON
// array.
type StepList []parser.RecipeStep

// Value implements the driver.Valuer interface
func (l StepList) Value() (driver.Value, error) {
	return jsonValue(l, len(l))
}

// Scan implements the sql.Scanner interface
func (l *StepList) Scan(value interface{}) error {
	*l = StepList{}
	return jsonScan(value, l)
}

func jsonValue(v any, n int) (driver.Value, error) {
	if n == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(value, dst any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	return json.Unmarshal(data, dst)
}
