package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Current is a non-negative reading in amperes (or kVA for ratings).
//
// Survey forms submit numbers, numeric strings or empty strings while a user is
// still typing. Current accepts all of them when decoding and normalizes anything
// absent, unparsable, negative or non-finite to 0.
type Current float64

// UnmarshalJSON accepts a JSON number, a numeric string, "" or null.
func (c *Current) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*c = 0
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*c = 0
			return nil
		}
		*c = Current(ParseCurrent(s))
		return nil
	}
	*c = Current(ParseCurrent(string(raw)))
	return nil
}

// UnmarshalYAML accepts scalars of any tag; non-numeric scalars become 0.
func (c *Current) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*c = 0
		return nil
	}
	*c = Current(ParseCurrent(node.Value))
	return nil
}

// Float returns the normalized value.
func (c Current) Float() float64 {
	return sanitize(float64(c))
}

// ParseCurrent converts form input to a definite non-negative number.
func ParseCurrent(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return sanitize(v)
}

// SafeNumber normalizes a loosely typed value (as decoded into map[string]any)
// using the same rules as ParseCurrent.
func SafeNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case Current:
		return x.Float()
	case float64:
		return sanitize(x)
	case float32:
		return sanitize(float64(x))
	case int:
		return sanitize(float64(x))
	case int64:
		return sanitize(float64(x))
	case int32:
		return sanitize(float64(x))
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		return ParseCurrent(x.String())
	case string:
		return ParseCurrent(x)
	default:
		return 0
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// FeederLeg is one outgoing three-phase-plus-neutral circuit with its measured
// currents, as submitted by a survey form.
type FeederLeg struct {
	RedPhaseCurrent    Current `json:"red_phase_current" yaml:"red_phase_current"`
	YellowPhaseCurrent Current `json:"yellow_phase_current" yaml:"yellow_phase_current"`
	BluePhaseCurrent   Current `json:"blue_phase_current" yaml:"blue_phase_current"`
	NeutralCurrent     Current `json:"neutral_current" yaml:"neutral_current"`
}

// Currents returns the normalized red, yellow and blue phase currents.
func (l FeederLeg) Currents() [3]float64 {
	return [3]float64{
		l.RedPhaseCurrent.Float(),
		l.YellowPhaseCurrent.Float(),
		l.BluePhaseCurrent.Float(),
	}
}

// Neutral returns the normalized neutral current.
func (l FeederLeg) Neutral() float64 {
	return l.NeutralCurrent.Float()
}

// Survey is the JSON document a field crew submits for one transformer.
type Survey struct {
	Name       string      `json:"name"`
	RatingKVA  Current     `json:"rating_kva"`
	FeederLegs []FeederLeg `json:"feeder_legs"`
}

// Transformer converts the survey into the engine's input shape.
func (s Survey) Transformer() Transformer {
	return Transformer{
		Name:   s.Name,
		Rating: TransformerRating{RatingKVA: s.RatingKVA},
		Legs:   s.FeederLegs,
	}
}
