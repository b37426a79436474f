package diagnostics

import (
	"fmt"
	"math"
	"strings"

	"transformer-load/internal/model"
)

const (
	// OverloadFactor scales the per-phase rated current to the overload threshold.
	OverloadFactor = 0.8

	// Per-leg imbalance thresholds (percent, inclusive).
	LegImbalancePercent         = 30.0
	LegCriticalImbalancePercent = 80.0

	// MinTransferAmps is the smallest excess over the mean worth moving.
	MinTransferAmps = 5.0
)

const (
	msgAddReadings = "Add feeder leg readings to see load diagnostics."
	msgNoIssues    = "✅ No issues detected. Phase loading is within acceptable limits."
)

var remediationSteps = []string{
	"1. Switch off some single-phase loads on the most heavily loaded phase.",
	"2. Reconnect those loads to the most lightly loaded phase.",
	"3. Aim for roughly equal current on all three phases.",
	"4. Check and tighten connections at the feeder pillar and transformer terminals.",
	"5. Monitor the neutral current after rebalancing.",
	"6. Consider installing load-balancing equipment if the imbalance persists.",
}

var hazardBullets = []string{
	"• Transformer overheating and shortened service life",
	"• Voltage unbalance damaging customer equipment",
	"• Neutral conductor overload and fire risk",
	"• Overheating and failure of three-phase motors",
}

// Diagnose produces the ordered findings and remediation report for a
// transformer. It never fails: unusable numbers are treated as 0.
//
// The overload threshold is derived from the whole transformer rating and is
// applied to each leg on its own.
func Diagnose(rating model.TransformerRating, legs []model.FeederLeg) Report {
	var r Report
	if len(legs) == 0 {
		r.add(KindInfo, msgAddReadings)
		return r
	}

	ratedPerPhase := rating.RatedLoad()
	threshold := ratedPerPhase * OverloadFactor

	currents := make([][3]float64, len(legs))
	legStats := make([]stats, len(legs))
	for i, leg := range legs {
		currents[i] = leg.Currents()
		legStats[i] = phaseStats(currents[i])
	}

	if threshold > 0 {
		for i, c := range currents {
			for p, cur := range c {
				if cur > threshold {
					r.add(KindOverload, fmt.Sprintf("🔴 OVERLOAD: %s phase on Leg %d is at %.1f%% of rated load (%.1fA)",
						model.Phases[p], i+1, cur/ratedPerPhase*100, cur))
				}
			}
		}
	}

	worst, worstImbalance := -1, -1.0
	for i, st := range legStats {
		if st.imbalance > worstImbalance {
			worst, worstImbalance = i, st.imbalance
		}
	}
	if worst >= 0 && worstImbalance >= LegImbalancePercent {
		r.add(KindImbalance, fmt.Sprintf("⚠️ IMBALANCE: Leg %d has %.1f%% phase imbalance", worst+1, worstImbalance))
	}

	neutralLimit := NeutralRatedFraction * ratedPerPhase / math.Max(1, float64(len(legs)))
	if neutralLimit > 0 {
		for i, leg := range legs {
			if n := leg.Neutral(); n > neutralLimit {
				r.add(KindNeutral, fmt.Sprintf("⚡ HIGH NEUTRAL: Leg %d neutral current is %.1fA (limit %.1fA)", i+1, n, neutralLimit))
			}
		}
	}

	if len(r) == 0 {
		r.add(KindInfo, msgNoIssues)
		return r
	}

	for i := range legs {
		st := legStats[i]
		overloaded := threshold > 0 && st.max > threshold
		if st.imbalance >= LegImbalancePercent || overloaded {
			r.legPlan(i+1, currents[i], st, threshold)
		}
	}

	r.add(KindPlain, "")
	r.add(KindInfo, "📋 Recommended actions:")
	for _, s := range remediationSteps {
		r.add(KindStep, s)
	}
	r.add(KindPlain, "")
	r.add(KindAlert, "⚠️ Risks of leaving the load unbalanced:")
	for _, b := range hazardBullets {
		r.add(KindBullet, b)
	}
	return r
}

// legPlan appends the distribution and rebalancing block for one leg.
func (r *Report) legPlan(leg int, c [3]float64, st stats, threshold float64) {
	r.add(KindPlain, "")
	r.add(KindInfo, fmt.Sprintf("📊 Leg %d current phase distribution:", leg))
	for p, cur := range c {
		r.add(KindBullet, fmt.Sprintf("• %s phase: %.1fA", model.Phases[p], cur))
	}

	if st.imbalance >= LegCriticalImbalancePercent {
		r.add(KindAlert, fmt.Sprintf("🚨 CRITICAL IMBALANCE on Leg %d (%.1f%%)", leg, st.imbalance))
		r.add(KindPlain, "The heaviest phase carries at least five times the load of the lightest.")
		r.add(KindPlain, "Rebalance this leg immediately to protect the neutral conductor and transformer windings.")
	}

	var over, under []int
	if threshold > 0 {
		for p, cur := range c {
			switch {
			case cur > threshold:
				over = append(over, p)
			case cur < threshold:
				under = append(under, p)
			}
		}
	}

	switch {
	case len(over) > 0 && len(under) > 0:
		r.shiftToSpare(leg, c, over, under, threshold)
	case len(over) == 0 && st.imbalance >= LegImbalancePercent:
		r.shiftToMean(c, st.mean)
	}
}

// shiftToSpare moves the excess of overloaded phases into the headroom of the
// underloaded ones, or asks for a load reduction when the headroom is too small.
func (r *Report) shiftToSpare(leg int, c [3]float64, over, under []int, threshold float64) {
	var excess, spare float64
	for _, p := range over {
		excess += c[p] - threshold
	}
	for _, p := range under {
		spare += threshold - c[p]
	}

	if excess <= spare {
		targets := phaseList(under)
		for _, p := range over {
			r.add(KindAction, fmt.Sprintf("🔧 Move %.1fA from %s phase to %s", c[p]-threshold, model.Phases[p], targets))
		}
		return
	}

	total := c[0] + c[1] + c[2]
	target := total / 3
	r.add(KindAlert, fmt.Sprintf("❌ Leg %d cannot be balanced by moving load: %.1fA excess exceeds %.1fA spare capacity", leg, excess, spare))
	r.add(KindAction, fmt.Sprintf("🔧 Reduce total load on Leg %d by %.1fA", leg, excess-spare))
	r.add(KindInfo, fmt.Sprintf("Target load per phase: %.1fA", target))
	for _, p := range over {
		if cut := c[p] - target; cut > 0 {
			r.add(KindAction, fmt.Sprintf("🔧 Reduce %s phase by %.1fA (from %.1fA to %.1fA)", model.Phases[p], cut, c[p], target))
		}
	}
}

// shiftToMean levels a leg that is unbalanced but not overloaded by moving each
// phase's excess over the mean onto the phases below it.
func (r *Report) shiftToMean(c [3]float64, mean float64) {
	var below []int
	for p, cur := range c {
		if cur < mean {
			below = append(below, p)
		}
	}
	if len(below) == 0 {
		return
	}

	for p, cur := range c {
		excess := cur - mean
		if excess <= MinTransferAmps {
			continue
		}
		from := model.Phases[p]
		switch len(below) {
		case 1:
			r.add(KindAction, fmt.Sprintf("🔧 Move %.1fA from %s phase to %s phase", excess, from, model.Phases[below[0]]))
		case 2:
			first := math.Ceil(excess / 2)
			second := excess - first
			r.add(KindAction, fmt.Sprintf("🔧 Move %.1fA from %s phase to %s phase", first, from, model.Phases[below[0]]))
			r.add(KindAction, fmt.Sprintf("🔧 Move %.1fA from %s phase to %s phase", second, from, model.Phases[below[1]]))
		default:
			r.add(KindAction, fmt.Sprintf("🔧 Move %.1fA from %s phase, shared between %s", excess, from, phaseList(below)))
		}
	}
}

// phaseList renders "Yellow phase" or "Yellow and Blue phases".
func phaseList(idx []int) string {
	names := make([]string, len(idx))
	for i, p := range idx {
		names[i] = string(model.Phases[p])
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0] + " phase"
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1] + " phases"
	}
}
