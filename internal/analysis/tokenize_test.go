package analysis

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"all delimiters", "A, B; C\nD", []string{"A", "B", "C", "D"}},
		{"only delimiters and spaces", "  , ; \n ", []string{}},
		{"empty string", "", []string{}},
		{"whitespace only", "   \t  ", []string{}},
		{"single item", "Retinol", []string{"Retinol"}},
		{"trims surrounding whitespace", "  Vitamin C  ,\tNiacinamide\t", []string{"Vitamin C", "Niacinamide"}},
		{"keeps duplicates", "Retinol, Retinol", []string{"Retinol", "Retinol"}},
		{"keeps inner spaces", "glycolic acid; lactic acid", []string{"glycolic acid", "lactic acid"}},
		{"windows newlines", "Water\r\nGlycerin\r\n", []string{"Water", "Glycerin"}},
		{"consecutive delimiters", "A,,;;\n\nB", []string{"A", "B"}},
		{"unicode", "Ácido hialurónico, 烟酰胺", []string{"Ácido hialurónico", "烟酰胺"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.raw)
			if got == nil {
				t.Fatalf("Tokenize(%q) returned nil, want non-nil slice", tt.raw)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
