package model

import (
	"errors"
	"math"
)

// KVAToRatedCurrent converts a nameplate rating in kVA to the per-phase rated
// current figure used by every threshold in this module. Keep the literal as is.
const KVAToRatedCurrent = 1.334

// MaxFeederLegs is the most outgoing circuits a survey form accepts.
const MaxFeederLegs = 8

// TransformerRating is the nameplate capacity of a distribution transformer.
// Units:
// - RatingKVA: kVA
type TransformerRating struct {
	RatingKVA Current
}

// Valid reports whether the rating can produce an assessment.
func (r TransformerRating) Valid() bool {
	v := float64(r.RatingKVA)
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// KVA returns the rating, or 0 when it is unusable.
func (r TransformerRating) KVA() float64 {
	if !r.Valid() {
		return 0
	}
	return float64(r.RatingKVA)
}

// RatedLoad is the per-phase rated current derived from the rating.
func (r TransformerRating) RatedLoad() float64 {
	return r.KVA() * KVAToRatedCurrent
}

// Transformer bundles a nameplate rating with the feeder legs surveyed on it.
type Transformer struct {
	Name   string
	Rating TransformerRating
	Legs   []FeederLeg
}

// Validate applies the survey form rules. The diagnostic engine never calls it;
// it accepts incomplete input and degrades to an empty assessment instead.
func (t *Transformer) Validate() error {
	if !t.Rating.Valid() {
		return errors.New("rating_kva must be > 0")
	}
	if len(t.Legs) == 0 {
		return errors.New("at least one feeder leg is required")
	}
	if len(t.Legs) > MaxFeederLegs {
		return errors.New("at most 8 feeder legs are allowed")
	}
	return nil
}
