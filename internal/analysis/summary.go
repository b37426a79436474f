package analysis

import (
	"transformer-load/internal/diagnostics"
	"transformer-load/internal/model"
)

// TransformerSummary is a transformer-level digest you can use for ranking a
// fleet. It flattens the assessment and counts the report's findings.
type TransformerSummary struct {
	Name      string  `json:"name"`
	RatingKVA float64 `json:"rating_kva"`
	LegCount  int     `json:"leg_count"`

	PercentageLoad      float64 `json:"percentage_load"`
	ImbalancePercentage float64 `json:"imbalance_percentage"`
	CalculatedNeutral   float64 `json:"calculated_neutral"`

	NeutralLevel   model.WarningLevel `json:"neutral_level"`
	ImbalanceLevel model.WarningLevel `json:"imbalance_level"`

	OverloadFindings  int `json:"overload_findings"`
	ImbalanceFindings int `json:"imbalance_findings"`
	NeutralFindings   int `json:"neutral_findings"`

	// Score orders transformers by urgency; higher is worse.
	Score int `json:"score"`
}

// Overloaded reports whether the average phase current exceeds the rating.
func (s TransformerSummary) Overloaded() bool {
	return s.PercentageLoad > 100
}

// Summarize runs the engine once for tx.
func Summarize(e *diagnostics.Engine, tx model.Transformer) TransformerSummary {
	res := e.Run(tx)
	a := res.Assessment
	s := TransformerSummary{
		Name:                tx.Name,
		RatingKVA:           tx.Rating.KVA(),
		LegCount:            len(tx.Legs),
		PercentageLoad:      a.PercentageLoad,
		ImbalancePercentage: a.ImbalancePercentage,
		CalculatedNeutral:   a.CalculatedNeutral,
		NeutralLevel:        a.NeutralWarningLevel,
		ImbalanceLevel:      a.ImbalanceWarningLevel,
		OverloadFindings:    res.Report.Count(diagnostics.KindOverload),
		ImbalanceFindings:   res.Report.Count(diagnostics.KindImbalance),
		NeutralFindings:     res.Report.Count(diagnostics.KindNeutral),
	}
	s.Score = score(s)
	return s
}

func score(s TransformerSummary) int {
	v := 100 * (s.NeutralLevel.Rank() + s.ImbalanceLevel.Rank())
	v += 10 * (s.OverloadFindings + s.ImbalanceFindings + s.NeutralFindings)
	if s.Overloaded() {
		v += 50
	}
	return v
}
