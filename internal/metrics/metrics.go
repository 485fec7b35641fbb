package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skinscout/internal/analysis"
	"skinscout/internal/db"
	"skinscout/internal/models"
)

var (
	analysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_analyses_total",
		Help: "Total ingredient analyses by verdict status and classifier source",
	}, []string{"status", "source"})

	ruleHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_rule_hits_total",
		Help: "Total times each conflict rule fired",
	}, []string{"rule"})

	remoteFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scout_remote_fallbacks_total",
		Help: "Total analyses answered locally after the model service failed",
	})

	historyDesc = prometheus.NewDesc(
		"scout_analysis_history_total",
		"Persisted analysis count by status",
		[]string{"status"},
		nil,
	)
)

// HistoryCollector is a custom Prometheus collector that reads persisted
// analysis counts from the database on each scrape.
type HistoryCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *HistoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- historyDesc
}

// Collect queries the database for per-status totals and emits them as counters.
func (c *HistoryCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := c.db.CountAnalysesByStatus(ctx)
	if err != nil {
		slog.Error("failed to collect analysis history metrics", "error", err)
		return
	}
	for _, sc := range counts {
		ch <- prometheus.MustNewConstMetric(
			historyDesc,
			prometheus.CounterValue,
			float64(sc.Count),
			sc.Status,
		)
	}
}

// Recorder provides async analysis persistence.
type Recorder struct {
	db     *db.DB
	engine *analysis.Engine
}

var (
	recorder *Recorder
	initOnce sync.Once
)

// Init registers the collectors and, when database is non-nil, the history
// recorder. engine fills in diagnostics for remote verdicts; nil means the
// default catalog. Must be called once at startup.
func Init(database *db.DB, engine *analysis.Engine) {
	initOnce.Do(func() {
		prometheus.MustRegister(analysesTotal, ruleHitsTotal, remoteFallbacksTotal)
		if database != nil {
			recorder = &Recorder{db: database, engine: engine}
			prometheus.MustRegister(&HistoryCollector{db: database})
		}
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveVerdict counts a verdict and the rules that fired for it.
func ObserveVerdict(v analysis.Verdict) {
	source := v.Source
	if source == "" {
		source = analysis.SourceLocal
	}
	analysesTotal.WithLabelValues(string(v.Status), source).Inc()
	for _, rule := range v.Rules {
		ruleHitsTotal.WithLabelValues(rule).Inc()
	}
}

// RecordRemoteFallback counts a model service failure that was answered locally.
func RecordRemoteFallback() {
	remoteFallbacksTotal.Inc()
}

// RecordAnalysis asynchronously persists an analysis. No-op without a database.
func RecordAnalysis(ingredients []string, v analysis.Verdict) {
	if recorder == nil {
		return
	}
	a := NewAnalysis(recorder.engine, ingredients, v)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.db.CreateAnalysis(ctx, a); err != nil {
			slog.Error("failed to record analysis", "status", a.Status, "error", err)
		}
	}()
}

// NewAnalysis builds the persisted form of a verdict. Remote verdicts carry
// no match count or rule, so those are taken from engine's classification
// of the same list; the rule is kept only when both agree on the status.
func NewAnalysis(engine *analysis.Engine, ingredients []string, v analysis.Verdict) *models.Analysis {
	source := v.Source
	if source == "" {
		source = analysis.SourceLocal
	}
	matchCount, rule := v.MatchCount, v.Rule()
	if source == analysis.SourceRemote {
		if engine == nil {
			engine = analysis.Default()
		}
		local := engine.Classify(ingredients)
		matchCount = local.MatchCount
		if local.Status == v.Status {
			rule = local.Rule()
		}
	}
	return &models.Analysis{
		Ingredients: append([]string(nil), ingredients...),
		Status:      string(v.Status),
		RiskScore:   v.RiskScore,
		MatchCount:  matchCount,
		Rule:        rule,
		Source:      source,
	}
}
