package validation

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"skinscout/internal/analysis"
	"skinscout/internal/models"
)

// Limits on a single analyze request.
const (
	MaxIngredients      = 100
	MaxIngredientLength = 500
)

// Client-facing validation messages.
var (
	MsgMissingIngredients = "Missing ingredients in request body"
	MsgEmptyIngredients   = "Ingredients must be a non-empty list"
	MsgIngredientNotText  = "Ingredients must be a list of strings"
	MsgTooManyIngredients = fmt.Sprintf("Too many ingredients (maximum %d)", MaxIngredients)
	MsgIngredientTooLong  = fmt.Sprintf("Ingredient names must be at most %d characters", MaxIngredientLength)
)

// Ingredients resolves the ingredient list of an analyze request.
// An explicit list wins over raw text; raw text is tokenized.
// Returns the list and an empty message when valid.
func Ingredients(req models.AnalyzeRequest) ([]string, string) {
	var list []string
	switch {
	case req.Ingredients != nil:
		var msg string
		if list, msg = decodeList(req.Ingredients); msg != "" {
			return nil, msg
		}
	case req.Text != nil:
		list = analysis.Tokenize(*req.Text)
	default:
		return nil, MsgMissingIngredients
	}
	return list, ValidateIngredients(list)
}

// decodeList parses a raw ingredients value. null and non-arrays count as
// an empty list; null or non-string entries are rejected.
func decodeList(raw json.RawMessage) ([]string, string) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		return nil, MsgEmptyIngredients
	}
	list := make([]string, len(entries))
	for i, entry := range entries {
		var item *string
		if err := json.Unmarshal(entry, &item); err != nil || item == nil {
			return nil, MsgIngredientNotText
		}
		list[i] = *item
	}
	return list, ""
}

// ValidateIngredients checks list size and entry length.
func ValidateIngredients(list []string) string {
	if len(list) == 0 {
		return MsgEmptyIngredients
	}
	if len(list) > MaxIngredients {
		return MsgTooManyIngredients
	}
	for _, item := range list {
		if utf8.RuneCountInString(item) > MaxIngredientLength {
			return MsgIngredientTooLong
		}
	}
	return ""
}
