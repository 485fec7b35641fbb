package analysis

import "strings"

// Status is the verdict outcome.
type Status string

// Verdict statuses.
const (
	StatusSafe   Status = "safe"
	StatusDanger Status = "danger"
)

// Verdict sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Verdict is the result of classifying one ingredient list. Only status,
// summary and riskScore go on the wire; the remaining fields are diagnostics.
type Verdict struct {
	Status    Status `json:"status"`
	Summary   string `json:"summary"`
	RiskScore int    `json:"riskScore"`

	MatchCount int      `json:"-"`
	Rules      []string `json:"-"` // ids of fired rules, catalog order
	Source     string   `json:"-"`
}

// Rule returns the id of the rule that chose the summary, or "" when safe.
func (v Verdict) Rule() string {
	if len(v.Rules) == 0 {
		return ""
	}
	return v.Rules[0]
}

type compiledRule struct {
	Rule
	left  []string
	right []string
}

// Engine classifies token sequences against a compiled catalog.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	keywords    []string
	rules       []compiledRule
	scoring     Scoring
	safeSummary string
}

var defaultEngine = mustEngine(DefaultCatalog())

func mustEngine(c *Catalog) *Engine {
	e, err := NewEngine(c)
	if err != nil {
		panic(err)
	}
	return e
}

// NewEngine validates the catalog and lower-cases its terms for matching.
// The engine keeps its own copies, so later changes to c have no effect.
func NewEngine(c *Catalog) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		keywords:    make([]string, 0, len(c.Keywords)),
		rules:       make([]compiledRule, 0, len(c.Rules)),
		scoring:     c.Scoring,
		safeSummary: c.SafeSummary,
	}
	for _, k := range c.Keywords {
		e.keywords = append(e.keywords, strings.ToLower(k.Term))
	}
	for _, r := range c.Rules {
		e.rules = append(e.rules, compiledRule{
			Rule:  r,
			left:  lowerAll(r.Left),
			right: lowerAll(r.Right),
		})
	}
	return e, nil
}

// Default returns the engine built from DefaultCatalog.
func Default() *Engine {
	return defaultEngine
}

// Classify runs the default engine over tokens.
func Classify(tokens []string) Verdict {
	return defaultEngine.Classify(tokens)
}

// Classify returns the verdict for tokens. It is total: any slice,
// including nil, yields a well-formed verdict.
func (e *Engine) Classify(tokens []string) Verdict {
	lowered := lowerAll(tokens)

	matchCount := 0
	for _, tok := range lowered {
		if containsAny(tok, e.keywords) {
			matchCount++
		}
	}

	var fired []string
	summary := e.safeSummary
	for _, r := range e.rules {
		if !r.fires(lowered, matchCount) {
			continue
		}
		if len(fired) == 0 {
			summary = r.Summary
		}
		fired = append(fired, r.ID)
	}

	v := Verdict{
		Summary:    summary,
		MatchCount: matchCount,
		Rules:      fired,
		Source:     SourceLocal,
	}
	if len(fired) > 0 {
		v.Status = StatusDanger
		v.RiskScore = clampScore(e.scoring.DangerBase + matchCount*e.scoring.DangerPerMatch)
	} else {
		v.Status = StatusSafe
		v.RiskScore = clampScore(matchCount * e.scoring.SafePerMatch)
	}
	return v
}

func (r compiledRule) fires(tokens []string, matchCount int) bool {
	switch r.Kind {
	case RuleCount:
		return matchCount >= r.MinMatches
	case RulePair:
		return anyContains(tokens, r.left) && anyContains(tokens, r.right)
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func anyContains(tokens, terms []string) bool {
	for _, tok := range tokens {
		if containsAny(tok, terms) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
