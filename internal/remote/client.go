// Package remote calls a classification service that speaks the
// /api/analyze contract.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"skinscout/internal/analysis"
)

const maxResponseBytes = 1 << 20

// Client is an analysis.Classifier backed by a remote HTTP service.
// Successful verdicts are cached by exact ingredient list.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *lru.Cache[string, analysis.Verdict]
}

// Option configures a Client.
type Option func(*Client) error

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.http = hc
		return nil
	}
}

// WithCacheSize sets the verdict cache size. Zero disables caching.
func WithCacheSize(size int) Option {
	return func(c *Client) error {
		if size <= 0 {
			c.cache = nil
			return nil
		}
		cache, err := lru.New[string, analysis.Verdict](size)
		if err != nil {
			return err
		}
		c.cache = cache
		return nil
	}
}

// New creates a client for the service at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
	opts = append([]Option{WithCacheSize(1024)}, opts...)
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type analyzeRequest struct {
	Ingredients []string `json:"ingredients"`
}

type analyzeResponse struct {
	Status    string `json:"status"`
	Summary   string `json:"summary"`
	RiskScore *int   `json:"riskScore"`
}

// Classify implements analysis.Classifier.
func (c *Client) Classify(ctx context.Context, ingredients []string) (analysis.Verdict, error) {
	body, err := json.Marshal(analyzeRequest{Ingredients: ingredients})
	if err != nil {
		return analysis.Verdict{}, err
	}

	// The encoded body is an unambiguous key for the list.
	key := string(body)
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return analysis.Verdict{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return analysis.Verdict{}, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return analysis.Verdict{}, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	v, err := decodeVerdict(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return analysis.Verdict{}, err
	}

	if c.cache != nil {
		c.cache.Add(key, v)
	}
	return v, nil
}

// Health checks the service's /api/health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return nil
}

func decodeVerdict(r io.Reader) (analysis.Verdict, error) {
	var out analyzeResponse
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return analysis.Verdict{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	status := analysis.Status(out.Status)
	if status != analysis.StatusSafe && status != analysis.StatusDanger {
		return analysis.Verdict{}, fmt.Errorf("%w: status %q", ErrMalformedResponse, out.Status)
	}
	if out.RiskScore == nil || *out.RiskScore < 0 || *out.RiskScore > 100 {
		return analysis.Verdict{}, fmt.Errorf("%w: risk score missing or out of range", ErrMalformedResponse)
	}
	if out.Summary == "" {
		return analysis.Verdict{}, fmt.Errorf("%w: empty summary", ErrMalformedResponse)
	}

	return analysis.Verdict{
		Status:    status,
		Summary:   out.Summary,
		RiskScore: *out.RiskScore,
		Source:    analysis.SourceRemote,
	}, nil
}
