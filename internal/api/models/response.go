package models

import (
	"transformer-load/internal/analysis"
	"transformer-load/internal/diagnostics"
	"transformer-load/internal/model"
)

// AssessmentResponse represents the derived loading figures for one transformer
type AssessmentResponse struct {
	Name       string               `json:"name,omitempty"`
	Assessment model.LoadAssessment `json:"assessment"`
}

// DiagnosisResponse carries the assessment plus the ordered report.
// Findings are tagged by kind; Lines is the same report as plain text.
type DiagnosisResponse struct {
	ID         string                `json:"id"`
	Status     string                `json:"status"`
	Name       string                `json:"name,omitempty"`
	Assessment model.LoadAssessment  `json:"assessment"`
	Findings   []diagnostics.Finding `json:"findings"`
	Lines      []string              `json:"lines"`
}

// FleetRankResponse represents the response from ranking transformers
type FleetRankResponse struct {
	ID       string                   `json:"id"`
	Rankings []analysis.RankedSummary `json:"rankings"`
}

// TransformerInfo represents a transformer preset file
type TransformerInfo struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	File  string           `json:"file"`
	Specs TransformerSpecs `json:"specs"`
}

// TransformerSpecs contains nameplate details of a preset
type TransformerSpecs struct {
	RatingKVA float64 `json:"rating_kva"`
	RatedLoad float64 `json:"rated_load"`
	LegCount  int     `json:"leg_count"`
}

// ThresholdInfo describes one fixed constant used by the engine
type ThresholdInfo struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
