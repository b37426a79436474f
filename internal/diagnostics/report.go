package diagnostics

// Kind tags a report entry so that presentation layers can style it without
// inspecting the text.
type Kind string

const (
	KindOverload  Kind = "overload"
	KindImbalance Kind = "imbalance"
	KindNeutral   Kind = "neutral"
	KindInfo      Kind = "info"
	KindAction    Kind = "action"
	KindStep      Kind = "step"
	KindAlert     Kind = "alert"
	KindBullet    Kind = "bullet"
	KindPlain     Kind = "plain"
)

// Finding is one line of a diagnostic report.
type Finding struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Report is an ordered diagnostic report.
type Report []Finding

// Lines returns the report text in order, one entry per finding.
func (r Report) Lines() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Text
	}
	return out
}

// Count returns how many findings carry the given kind.
func (r Report) Count(kind Kind) int {
	n := 0
	for _, f := range r {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Issues counts overload, imbalance and neutral findings.
func (r Report) Issues() int {
	return r.Count(KindOverload) + r.Count(KindImbalance) + r.Count(KindNeutral)
}

func (r *Report) add(kind Kind, text string) {
	*r = append(*r, Finding{Kind: kind, Text: text})
}
