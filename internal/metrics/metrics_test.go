package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"skinscout/internal/analysis"
)

func TestObserveVerdict(t *testing.T) {
	danger := analysesTotal.WithLabelValues("danger", "local")
	retinol := ruleHitsTotal.WithLabelValues(analysis.RuleRetinolAcid)
	multiple := ruleHitsTotal.WithLabelValues(analysis.RuleMultipleActives)

	beforeDanger := testutil.ToFloat64(danger)
	beforeRetinol := testutil.ToFloat64(retinol)
	beforeMultiple := testutil.ToFloat64(multiple)

	ObserveVerdict(analysis.Classify([]string{"Retinol", "AHA", "BHA"}))

	if got := testutil.ToFloat64(danger) - beforeDanger; got != 1 {
		t.Errorf("danger analyses delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(retinol) - beforeRetinol; got != 1 {
		t.Errorf("retinol rule delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(multiple) - beforeMultiple; got != 1 {
		t.Errorf("multiple actives rule delta = %v, want 1", got)
	}
}

func TestObserveVerdictDefaultsSource(t *testing.T) {
	safe := analysesTotal.WithLabelValues("safe", "local")
	before := testutil.ToFloat64(safe)

	ObserveVerdict(analysis.Verdict{Status: analysis.StatusSafe})

	if got := testutil.ToFloat64(safe) - before; got != 1 {
		t.Errorf("safe analyses delta = %v, want 1", got)
	}
}

func TestRecordRemoteFallback(t *testing.T) {
	before := testutil.ToFloat64(remoteFallbacksTotal)
	RecordRemoteFallback()
	RecordRemoteFallback()
	if got := testutil.ToFloat64(remoteFallbacksTotal) - before; got != 2 {
		t.Errorf("fallbacks delta = %v, want 2", got)
	}
}

func TestRecordAnalysisWithoutDatabase(t *testing.T) {
	// No recorder configured; must not panic.
	RecordAnalysis([]string{"Water"}, analysis.Classify([]string{"Water"}))
}

func TestNewAnalysis(t *testing.T) {
	in := []string{"Vitamin C", "Niacinamide"}
	a := NewAnalysis(nil, in, analysis.Classify(in))

	if a.Status != "danger" || a.RiskScore != 70 || a.MatchCount != 2 {
		t.Errorf("unexpected analysis: %+v", a)
	}
	if a.Rule != analysis.RuleVitaminCNiacinamide {
		t.Errorf("Rule = %q, want %q", a.Rule, analysis.RuleVitaminCNiacinamide)
	}
	if a.Source != analysis.SourceLocal {
		t.Errorf("Source = %q, want local", a.Source)
	}

	in[0] = "Water"
	if a.Ingredients[0] != "Vitamin C" {
		t.Error("analysis must not alias the caller's slice")
	}
}

func TestNewAnalysisFillsRemoteDiagnostics(t *testing.T) {
	in := []string{"Retinol", "Glycolic Acid"}
	remote := analysis.Verdict{
		Status:    analysis.StatusDanger,
		Summary:   analysis.SummaryRetinolAcid,
		RiskScore: 70,
		Source:    analysis.SourceRemote,
	}

	a := NewAnalysis(analysis.Default(), in, remote)
	if a.MatchCount != 2 || a.Rule != analysis.RuleRetinolAcid {
		t.Errorf("diagnostics = %d %q, want 2 %q", a.MatchCount, a.Rule, analysis.RuleRetinolAcid)
	}
	if a.Source != analysis.SourceRemote || a.RiskScore != 70 {
		t.Errorf("remote fields changed: %+v", a)
	}

	remote.Status = analysis.StatusSafe
	if a := NewAnalysis(nil, in, remote); a.Rule != "" {
		t.Errorf("Rule = %q, want empty when local status disagrees", a.Rule)
	}
}
