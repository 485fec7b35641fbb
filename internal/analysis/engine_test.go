package analysis

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		tokens     []string
		status     Status
		score      int
		matchCount int
		summary    string
		rules      []string
	}{
		{
			name:       "retinol with acids prefers retinol summary",
			tokens:     []string{"Retinol", "AHA", "BHA"},
			status:     StatusDanger,
			score:      85,
			matchCount: 3,
			summary:    SummaryRetinolAcid,
			rules:      []string{RuleRetinolAcid, RuleMultipleActives},
		},
		{
			name:       "vitamin c with niacinamide",
			tokens:     []string{"Vitamin C", "Niacinamide"},
			status:     StatusDanger,
			score:      70,
			matchCount: 2,
			summary:    SummaryVitaminCNiacinamide,
			rules:      []string{RuleVitaminCNiacinamide, RuleMultipleActives},
		},
		{
			name:       "ascorbic acid counts as vitamin c",
			tokens:     []string{"L-Ascorbic Acid", "niacinamide 10%"},
			status:     StatusDanger,
			score:      70,
			matchCount: 2,
			summary:    SummaryVitaminCNiacinamide,
			rules:      []string{RuleVitaminCNiacinamide, RuleMultipleActives},
		},
		{
			name:       "volume rule alone",
			tokens:     []string{"Benzoyl Peroxide", "Salicylic Acid"},
			status:     StatusDanger,
			score:      70,
			matchCount: 2,
			summary:    SummaryMultipleActives,
			rules:      []string{RuleMultipleActives},
		},
		{
			name:       "retinol pair fires with a single catalog match",
			tokens:     []string{"Retinol", "Lactic"},
			status:     StatusDanger,
			score:      55,
			matchCount: 1,
			summary:    SummaryRetinolAcid,
			rules:      []string{RuleRetinolAcid},
		},
		{
			name:       "no actives",
			tokens:     []string{"Water", "Glycerin"},
			status:     StatusSafe,
			score:      0,
			matchCount: 0,
			summary:    SummarySafe,
		},
		{
			name:       "single active stays safe with nonzero score",
			tokens:     []string{"Niacinamide"},
			status:     StatusSafe,
			score:      5,
			matchCount: 1,
			summary:    SummarySafe,
		},
		{
			name:       "empty input",
			tokens:     []string{},
			status:     StatusSafe,
			score:      0,
			matchCount: 0,
			summary:    SummarySafe,
		},
		{
			name:       "nil input",
			tokens:     nil,
			status:     StatusSafe,
			score:      0,
			matchCount: 0,
			summary:    SummarySafe,
		},
		{
			name:       "duplicates each count",
			tokens:     []string{"Retinol", "retinol"},
			status:     StatusDanger,
			score:      70,
			matchCount: 2,
			summary:    SummaryMultipleActives,
			rules:      []string{RuleMultipleActives},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Classify(tt.tokens)
			assert.Equal(t, tt.status, v.Status)
			assert.Equal(t, tt.score, v.RiskScore)
			assert.Equal(t, tt.matchCount, v.MatchCount)
			assert.Equal(t, tt.summary, v.Summary)
			assert.Equal(t, tt.rules, v.Rules)
			assert.Equal(t, SourceLocal, v.Source)
		})
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	a := Classify([]string{"RETINOL", "salicylic acid"})
	b := Classify([]string{"retinol", "Salicylic Acid"})
	assert.Equal(t, a, b)
	assert.Equal(t, StatusDanger, a.Status)
	assert.Equal(t, SummaryRetinolAcid, a.Summary)
}

func TestClassifyIdempotent(t *testing.T) {
	inputs := [][]string{
		nil,
		{"Water"},
		{"Retinol", "AHA", "BHA"},
		{"Vitamin C", "Niacinamide", "Benzoyl"},
	}
	for _, in := range inputs {
		assert.Equal(t, Classify(in), Classify(in))
	}
}

func TestClassifyScoreClamped(t *testing.T) {
	tokens := make([]string, 20)
	for i := range tokens {
		tokens[i] = "retinol"
	}
	v := Classify(tokens)
	assert.Equal(t, StatusDanger, v.Status)
	assert.Equal(t, 20, v.MatchCount)
	assert.Equal(t, 100, v.RiskScore)
}

func TestClassifyAdversarialTokens(t *testing.T) {
	tokens := []string{
		strings.Repeat("x", 1<<16),
		"!!!,,,;;;",
		"\u200b\u200b",
		"🧴 serum",
		"",
		"   ",
	}
	v := Classify(tokens)
	assert.Equal(t, StatusSafe, v.Status)
	assert.Equal(t, 0, v.RiskScore)
	assert.Equal(t, SummarySafe, v.Summary)
}

func TestClassifyConcurrent(t *testing.T) {
	want := Classify([]string{"Retinol", "AHA"})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Classify([]string{"Retinol", "AHA"}))
		}()
	}
	wg.Wait()
}

func TestNewEngineCustomCatalog(t *testing.T) {
	catalog := &Catalog{
		Keywords: []Keyword{{Term: "Fragrance", Category: "irritant"}},
		Rules: []Rule{
			{ID: "fragrance", Kind: RuleCount, MinMatches: 1, Summary: "fragrance found"},
		},
		Scoring:     Scoring{DangerBase: 10, DangerPerMatch: 10, SafePerMatch: 1},
		SafeSummary: "fine",
	}
	e, err := NewEngine(catalog)
	require.NoError(t, err)

	v := e.Classify([]string{"Parfum / Fragrance"})
	assert.Equal(t, StatusDanger, v.Status)
	assert.Equal(t, 20, v.RiskScore)
	assert.Equal(t, "fragrance found", v.Summary)

	// Engine keeps its own copy of the catalog.
	catalog.Keywords[0].Term = "water"
	v = e.Classify([]string{"water"})
	assert.Equal(t, StatusSafe, v.Status)
	assert.Equal(t, "fine", v.Summary)
}

func TestNewEngineRejectsInvalidCatalog(t *testing.T) {
	tests := []struct {
		name    string
		catalog *Catalog
	}{
		{"nil catalog", nil},
		{"empty keyword", &Catalog{Keywords: []Keyword{{Term: " "}}, SafeSummary: "ok"}},
		{"missing safe summary", &Catalog{}},
		{"rule without id", &Catalog{Rules: []Rule{{Kind: RuleCount, MinMatches: 1, Summary: "s"}}, SafeSummary: "ok"}},
		{"duplicate rule", &Catalog{Rules: []Rule{
			{ID: "a", Kind: RuleCount, MinMatches: 1, Summary: "s"},
			{ID: "a", Kind: RuleCount, MinMatches: 1, Summary: "s"},
		}, SafeSummary: "ok"}},
		{"count rule without threshold", &Catalog{Rules: []Rule{{ID: "a", Kind: RuleCount, Summary: "s"}}, SafeSummary: "ok"}},
		{"pair rule without right side", &Catalog{Rules: []Rule{{ID: "a", Kind: RulePair, Left: []string{"x"}, Summary: "s"}}, SafeSummary: "ok"}},
		{"unknown kind", &Catalog{Rules: []Rule{{ID: "a", Kind: "regex", Summary: "s"}}, SafeSummary: "ok"}},
		{"rule without summary", &Catalog{Rules: []Rule{{ID: "a", Kind: RuleCount, MinMatches: 1}}, SafeSummary: "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.catalog)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestVerdictRule(t *testing.T) {
	assert.Equal(t, "", Classify([]string{"Water"}).Rule())
	assert.Equal(t, RuleRetinolAcid, Classify([]string{"Retinol", "BHA"}).Rule())
}
