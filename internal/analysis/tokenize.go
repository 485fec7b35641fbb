package analysis

import "strings"

// Tokenize splits raw ingredient text on commas, semicolons and newlines.
// Pieces are trimmed and empty pieces dropped; order and duplicates are kept.
func Tokenize(raw string) []string {
	tokens := []string{}
	pieces := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, piece := range pieces {
		if item := strings.TrimSpace(piece); item != "" {
			tokens = append(tokens, item)
		}
	}
	return tokens
}
