package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog is returned when a catalog cannot be compiled into an engine.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Category groups reactive keywords by compound family.
type Category string

// Keyword categories used by the default catalog.
const (
	CategoryRetinoid    Category = "retinoid"
	CategoryExfoliant   Category = "exfoliant"
	CategoryBenzoyl     Category = "benzoyl_peroxide"
	CategoryVitaminC    Category = "vitamin_c"
	CategoryNiacinamide Category = "niacinamide"
)

// RuleKind selects how a rule is evaluated.
type RuleKind string

const (
	// RuleCount fires when at least MinMatches tokens matched a catalog keyword.
	RuleCount RuleKind = "count"
	// RulePair fires when some token contains a Left term and some token
	// contains a Right term.
	RulePair RuleKind = "pair"
)

// Rule identifiers of the default catalog.
const (
	RuleRetinolAcid         = "retinol_acid"
	RuleVitaminCNiacinamide = "vitamin_c_niacinamide"
	RuleMultipleActives     = "multiple_actives"
)

// Summary texts returned by the default catalog.
const (
	SummaryRetinolAcid         = "We detected a potential conflict: Retinol and acids (AHA/BHA) can cause excessive irritation and dryness when used together. Consider using them on alternate days or at different times (AM/PM)."
	SummaryVitaminCNiacinamide = "We detected a potential conflict: Vitamin C and Niacinamide may cause flushing and reduce effectiveness when combined at high concentrations. Consider applying them at different times of day."
	SummaryMultipleActives     = "We detected multiple active ingredients that may cause irritation or reduce effectiveness when combined. Please review the suggestions and consider spacing out active ingredients across different days."
	SummarySafe                = "Your ingredient combination appears to be safe! No significant conflicts were detected. You can proceed with confidence. Remember to patch test new products and use sunscreen daily, especially with active ingredients."
)

// Keyword is a reactive substring matched case-insensitively against tokens.
type Keyword struct {
	Term     string
	Category Category
}

// Rule is a declarative conflict predicate. Rules are listed in summary
// priority order: the first firing rule supplies the verdict summary.
type Rule struct {
	ID         string
	Kind       RuleKind
	MinMatches int      // count rules
	Left       []string // pair rules
	Right      []string // pair rules
	Summary    string
}

// Scoring holds the risk score formula parameters.
//
//	danger: min(100, DangerBase + DangerPerMatch*matchCount)
//	safe:   max(0, SafePerMatch*matchCount)
type Scoring struct {
	DangerBase     int
	DangerPerMatch int
	SafePerMatch   int
}

// Catalog is the full classification configuration.
type Catalog struct {
	Keywords    []Keyword
	Rules       []Rule
	Scoring     Scoring
	SafeSummary string
}

// DefaultKeywords returns the built-in reactive keyword list.
func DefaultKeywords() []Keyword {
	return []Keyword{
		{Term: "retinol", Category: CategoryRetinoid},
		{Term: "aha", Category: CategoryExfoliant},
		{Term: "bha", Category: CategoryExfoliant},
		{Term: "salicylic", Category: CategoryExfoliant},
		{Term: "benzoyl", Category: CategoryBenzoyl},
		{Term: "vitamin c", Category: CategoryVitaminC},
		{Term: "niacinamide", Category: CategoryNiacinamide},
		{Term: "ascorbic acid", Category: CategoryVitaminC},
		{Term: "glycolic acid", Category: CategoryExfoliant},
		{Term: "lactic acid", Category: CategoryExfoliant},
	}
}

// DefaultRules returns the built-in rules in summary priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:      RuleRetinolAcid,
			Kind:    RulePair,
			Left:    []string{"retinol"},
			Right:   []string{"aha", "bha", "salicylic", "glycolic", "lactic"},
			Summary: SummaryRetinolAcid,
		},
		{
			ID:      RuleVitaminCNiacinamide,
			Kind:    RulePair,
			Left:    []string{"vitamin c", "ascorbic"},
			Right:   []string{"niacinamide"},
			Summary: SummaryVitaminCNiacinamide,
		},
		{
			ID:         RuleMultipleActives,
			Kind:       RuleCount,
			MinMatches: 2,
			Summary:    SummaryMultipleActives,
		},
	}
}

// DefaultScoring returns the built-in score formula parameters.
func DefaultScoring() Scoring {
	return Scoring{DangerBase: 40, DangerPerMatch: 15, SafePerMatch: 5}
}

// DefaultCatalog returns a fresh copy of the built-in catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Keywords:    DefaultKeywords(),
		Rules:       DefaultRules(),
		Scoring:     DefaultScoring(),
		SafeSummary: SummarySafe,
	}
}

// Validate reports the first structural problem in the catalog.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: catalog is nil", ErrInvalidCatalog)
	}
	for i, k := range c.Keywords {
		if strings.TrimSpace(k.Term) == "" {
			return fmt.Errorf("%w: keyword %d has an empty term", ErrInvalidCatalog, i)
		}
	}
	seen := make(map[string]struct{}, len(c.Rules))
	for _, r := range c.Rules {
		if r.ID == "" {
			return fmt.Errorf("%w: rule without id", ErrInvalidCatalog)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate rule id %q", ErrInvalidCatalog, r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Summary == "" {
			return fmt.Errorf("%w: rule %q has no summary", ErrInvalidCatalog, r.ID)
		}
		switch r.Kind {
		case RuleCount:
			if r.MinMatches < 1 {
				return fmt.Errorf("%w: rule %q needs min_matches >= 1", ErrInvalidCatalog, r.ID)
			}
		case RulePair:
			if len(r.Left) == 0 || len(r.Right) == 0 {
				return fmt.Errorf("%w: rule %q needs left and right terms", ErrInvalidCatalog, r.ID)
			}
		default:
			return fmt.Errorf("%w: rule %q has unknown kind %q", ErrInvalidCatalog, r.ID, r.Kind)
		}
	}
	if c.SafeSummary == "" {
		return fmt.Errorf("%w: safe summary is empty", ErrInvalidCatalog)
	}
	return nil
}
