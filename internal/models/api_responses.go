package models

import "encoding/json"

// AnalyzeRequest is the body of POST /api/analyze. Either an already
// tokenized ingredient list or raw text to tokenize server-side.
// Ingredients is kept raw so a present-but-invalid value (null, a string,
// null entries) can be told apart from a missing key.
type AnalyzeRequest struct {
	Ingredients json.RawMessage `json:"ingredients"`
	Text        *string         `json:"text"`
}

// ServiceHealthResponse is returned by GET /api/health.
type ServiceHealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// AnalysisListResponse contains recent analyses.
type AnalysisListResponse struct {
	Analyses []Analysis `json:"analyses"`
	Count    int        `json:"count"`
}
