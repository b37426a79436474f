package analysis

import (
	"sort"

	"transformer-load/internal/diagnostics"
	"transformer-load/internal/model"
)

type RankedSummary struct {
	Rank int `json:"rank"`
	TransformerSummary
}

// RankBySeverity summarizes each transformer and sorts by Score descending,
// then by percentage load descending, then by name.
func RankBySeverity(transformers []model.Transformer) []RankedSummary {
	e := diagnostics.New()
	out := make([]RankedSummary, 0, len(transformers))
	for _, tx := range transformers {
		out = append(out, RankedSummary{TransformerSummary: Summarize(e, tx)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.PercentageLoad != b.PercentageLoad {
			return a.PercentageLoad > b.PercentageLoad
		}
		return a.Name < b.Name
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
