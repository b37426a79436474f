package diagnostics

import (
	"math"

	"transformer-load/internal/model"
)

const (
	// NeutralRatedFraction is the share of rated load tolerated on the neutral.
	NeutralRatedFraction = 0.1

	// Bulk imbalance thresholds (percent, strict).
	ImbalanceWarningPercent  = 30.0
	ImbalanceCriticalPercent = 50.0

	NeutralWarningMessage    = "Warning: Neutral current exceeds rated neutral"
	NeutralCriticalMessage   = "Critical: Neutral current exceeds 200% of rated neutral"
	ImbalanceWarningMessage  = "Warning: Phase imbalance exceeds 30%"
	ImbalanceCriticalMessage = "Critical: Phase imbalance exceeds 50%"
)

// ComputeAssessment derives the bulk loading figures for a transformer.
//
// An unusable rating or an empty leg list yields model.EmptyAssessment; the
// function never fails. Leg fields are normalized before summation.
func ComputeAssessment(rating model.TransformerRating, legs []model.FeederLeg) model.LoadAssessment {
	if !rating.Valid() || len(legs) == 0 {
		return model.EmptyAssessment()
	}

	a := model.EmptyAssessment()
	a.RatedLoad = rating.RatedLoad()

	for _, leg := range legs {
		c := leg.Currents()
		a.RedPhaseBulkLoad += c[0]
		a.YellowPhaseBulkLoad += c[1]
		a.BluePhaseBulkLoad += c[2]
	}
	r, y, b := a.RedPhaseBulkLoad, a.YellowPhaseBulkLoad, a.BluePhaseBulkLoad

	a.AverageCurrent = (r + y + b) / 3
	if a.RatedLoad > 0 {
		a.PercentageLoad = a.AverageCurrent / a.RatedLoad * 100
	}
	a.TenPercentFullLoadNeutral = NeutralRatedFraction * a.RatedLoad
	a.CalculatedNeutral = NeutralCurrent(r, y, b)

	st := phaseStats(a.BulkLoads())
	a.MaxPhaseCurrent = st.max
	a.MinPhaseCurrent = st.min
	a.AvgPhaseCurrent = st.mean
	a.ImbalancePercentage = st.imbalance

	a.NeutralWarningLevel, a.NeutralWarningMessage = ClassifyNeutral(a.CalculatedNeutral, a.TenPercentFullLoadNeutral)
	a.ImbalanceWarningLevel, a.ImbalanceWarningMessage = ClassifyImbalance(a.ImbalancePercentage)
	return a
}

// NeutralCurrent is the symmetrical-component neutral current of three phase
// currents 120 degrees apart. Rounding can push the radicand slightly below
// zero for balanced input, so it is clamped.
func NeutralCurrent(r, y, b float64) float64 {
	radicand := r*r + y*y + b*b - r*y - r*b - y*b
	return math.Sqrt(math.Max(0, radicand))
}

// ImbalancePercent is (max-min)/max*100 over the given currents, 0 when max is 0.
func ImbalancePercent(currents [3]float64) float64 {
	return phaseStats(currents).imbalance
}

// ClassifyNeutral grades the calculated neutral against the 10% rated neutral.
func ClassifyNeutral(neutral, tenPercentNeutral float64) (model.WarningLevel, string) {
	switch {
	case neutral > 2*tenPercentNeutral:
		return model.LevelCritical, NeutralCriticalMessage
	case neutral > tenPercentNeutral:
		return model.LevelWarning, NeutralWarningMessage
	default:
		return model.LevelNormal, ""
	}
}

// ClassifyImbalance grades a whole-transformer imbalance percentage.
func ClassifyImbalance(percent float64) (model.WarningLevel, string) {
	switch {
	case percent > ImbalanceCriticalPercent:
		return model.LevelCritical, ImbalanceCriticalMessage
	case percent > ImbalanceWarningPercent:
		return model.LevelWarning, ImbalanceWarningMessage
	default:
		return model.LevelNormal, ""
	}
}

type stats struct {
	max, min, mean, total, imbalance float64
}

func phaseStats(currents [3]float64) stats {
	st := stats{max: currents[0], min: currents[0]}
	for _, c := range currents {
		st.total += c
		if c > st.max {
			st.max = c
		}
		if c < st.min {
			st.min = c
		}
	}
	st.min = math.Max(0, st.min)
	st.mean = st.total / 3
	if st.max > 0 {
		st.imbalance = (st.max - st.min) / st.max * 100
	}
	return st
}
