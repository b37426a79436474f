package models

import "transformer-load/internal/model"

// TransformerRequest is the body of the assessment and diagnosis endpoints.
type TransformerRequest struct {
	// Optional preset name under TRANSFORMER_DIR (without ".yaml"). Fields set
	// in Transformer override the preset.
	TransformerFile string           `json:"transformer_file,omitempty"`
	Transformer     TransformerInput `json:"transformer"`
}

// TransformerInput accepts leg currents as numbers, numeric strings or "".
type TransformerInput struct {
	Name       string            `json:"name,omitempty"`
	RatingKVA  model.Current     `json:"rating_kva"`
	FeederLegs []model.FeederLeg `json:"feeder_legs"`
}

// FleetRankRequest ranks several transformers in one call.
type FleetRankRequest struct {
	Transformers []TransformerRequest `json:"transformers" binding:"required,min=1"`
}
