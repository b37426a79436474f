package main

import (
	"flag"
	"fmt"
	"os"

	"transformer-load/internal/config"
	"transformer-load/internal/data"
	"transformer-load/internal/diagnostics"
	"transformer-load/internal/model"
)

// Demo:
// - Build a few sample transformers (or load one via --config)
// - Run the diagnostic engine on each
// - Print the assessment and the report, optionally saving it as JSON
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional, replaces the samples)")
	outJSON := flag.String("out", "", "Optional path to write results as JSON (e.g. results/demo.json)")
	flag.Parse()

	transformers := samples()
	if *cfgPath != "" {
		cfg, err := config.LoadUnchecked(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		transformers = []model.Transformer{cfg.Transformer.ToModel()}
	}

	engine := diagnostics.New()
	results := make([]*diagnostics.Result, 0, len(transformers))
	for _, tx := range transformers {
		res := engine.Run(tx)
		results = append(results, res)

		a := res.Assessment
		fmt.Printf("=== %s (%.0f kVA, %d legs) ===\n", tx.Name, tx.Rating.KVA(), len(tx.Legs))
		fmt.Printf("rated=%.1fA  R/Y/B=%.1f/%.1f/%.1fA  load=%.2f%%  neutral=%.1fA(%s)  imbalance=%.1f%%(%s)\n\n",
			a.RatedLoad,
			a.RedPhaseBulkLoad, a.YellowPhaseBulkLoad, a.BluePhaseBulkLoad,
			a.PercentageLoad,
			a.CalculatedNeutral, a.NeutralWarningLevel,
			a.ImbalancePercentage, a.ImbalanceWarningLevel,
		)
		for _, line := range res.Report.Lines() {
			fmt.Println(line)
		}
		fmt.Printf("\n%d issue(s)\n\n", res.Report.Issues())
	}

	if *outJSON != "" {
		if err := data.SaveJSON(results, *outJSON); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote JSON: %s\n", *outJSON)
	}
}

func samples() []model.Transformer {
	leg := func(r, y, b, n float64) model.FeederLeg {
		return model.FeederLeg{
			RedPhaseCurrent:    model.Current(r),
			YellowPhaseCurrent: model.Current(y),
			BluePhaseCurrent:   model.Current(b),
			NeutralCurrent:     model.Current(n),
		}
	}
	rating := func(kva float64) model.TransformerRating {
		return model.TransformerRating{RatingKVA: model.Current(kva)}
	}
	return []model.Transformer{
		{Name: "balanced-200", Rating: rating(200), Legs: []model.FeederLeg{leg(100, 100, 100, 0)}},
		{Name: "red-heavy-200", Rating: rating(200), Legs: []model.FeederLeg{leg(250, 50, 50, 0)}},
		{Name: "uneven-500", Rating: rating(500), Legs: []model.FeederLeg{
			leg(180, 120, 90, 25),
			leg(60, 140, 70, 40),
		}},
	}
}
