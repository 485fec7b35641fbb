package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"skinscout/internal/analysis"
)

// CatalogFile represents the structure of the catalog YAML file.
// Every section is optional; omitted sections keep the built-in defaults.
type CatalogFile struct {
	Keywords    []KeywordConfig `yaml:"keywords"`
	Rules       []RuleConfig    `yaml:"rules"`
	Scoring     *ScoringConfig  `yaml:"scoring,omitempty"`
	SafeSummary string          `yaml:"safe_summary,omitempty"`
}

// KeywordConfig defines a reactive keyword.
type KeywordConfig struct {
	Term     string `yaml:"term"`
	Category string `yaml:"category,omitempty"`
}

// RuleConfig defines a conflict rule. Rules are listed in summary priority order.
type RuleConfig struct {
	ID         string   `yaml:"id"`
	Kind       string   `yaml:"kind"`                  // "pair" or "count"
	MinMatches int      `yaml:"min_matches,omitempty"` // count rules
	Left       []string `yaml:"left,omitempty"`        // pair rules
	Right      []string `yaml:"right,omitempty"`       // pair rules
	Summary    string   `yaml:"summary"`
}

// ScoringConfig defines the risk score formula.
type ScoringConfig struct {
	DangerBase     int `yaml:"danger_base"`
	DangerPerMatch int `yaml:"danger_per_match"`
	SafePerMatch   int `yaml:"safe_per_match"`
}

// LoadCatalogFile loads a catalog YAML file.
// Returns nil without error if the file doesn't exist.
func LoadCatalogFile(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Catalog file is optional
			return nil, nil
		}
		return nil, err
	}

	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cf, nil
}

// Catalog converts the file into an analysis catalog, filling omitted
// sections from the defaults. A nil file yields the default catalog.
func (f *CatalogFile) Catalog() *analysis.Catalog {
	c := analysis.DefaultCatalog()
	if f == nil {
		return c
	}

	if len(f.Keywords) > 0 {
		c.Keywords = make([]analysis.Keyword, 0, len(f.Keywords))
		for _, k := range f.Keywords {
			c.Keywords = append(c.Keywords, analysis.Keyword{
				Term:     k.Term,
				Category: analysis.Category(k.Category),
			})
		}
	}
	if len(f.Rules) > 0 {
		c.Rules = make([]analysis.Rule, 0, len(f.Rules))
		for _, r := range f.Rules {
			c.Rules = append(c.Rules, analysis.Rule{
				ID:         r.ID,
				Kind:       analysis.RuleKind(r.Kind),
				MinMatches: r.MinMatches,
				Left:       r.Left,
				Right:      r.Right,
				Summary:    r.Summary,
			})
		}
	}
	if f.Scoring != nil {
		c.Scoring = analysis.Scoring{
			DangerBase:     f.Scoring.DangerBase,
			DangerPerMatch: f.Scoring.DangerPerMatch,
			SafePerMatch:   f.Scoring.SafePerMatch,
		}
	}
	if f.SafeSummary != "" {
		c.SafeSummary = f.SafeSummary
	}
	return c
}

// LoadEngine builds the classification engine from the catalog file at path,
// or from the built-in catalog when the file doesn't exist.
func LoadEngine(path string) (*analysis.Engine, error) {
	cf, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return analysis.NewEngine(cf.Catalog())
}
