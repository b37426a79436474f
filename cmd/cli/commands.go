package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"transformer-load/internal/analysis"
	"transformer-load/internal/config"
	"transformer-load/internal/data"
	"transformer-load/internal/diagnostics"
	"transformer-load/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type inputFlags struct {
	configPath string
	surveyPath string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to YAML config with a transformer section")
	cmd.Flags().StringVar(&f.surveyPath, "survey", "", "Path to a JSON survey document")
}

// load reads the transformer from --config or --survey. Incomplete surveys are
// accepted; the engine reports on whatever is there.
func (f *inputFlags) load() (model.Transformer, error) {
	switch {
	case f.configPath != "" && f.surveyPath != "":
		return model.Transformer{}, errors.New("use either --config or --survey, not both")
	case f.configPath != "":
		cfg, err := config.LoadUnchecked(f.configPath)
		if err != nil {
			return model.Transformer{}, err
		}
		return cfg.Transformer.ToModel(), nil
	case f.surveyPath != "":
		s, err := data.LoadSurveyJSON(f.surveyPath)
		if err != nil {
			return model.Transformer{}, err
		}
		return s.Transformer(), nil
	default:
		return model.Transformer{}, errors.New("--config or --survey is required")
	}
}

func newAssessCmd() *cobra.Command {
	var in inputFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Print the derived load assessment",
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := in.load()
			if err != nil {
				return err
			}
			a := diagnostics.ComputeAssessment(tx.Rating, tx.Legs)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), a)
			}
			printAssessment(cmd.OutOrStdout(), tx, a)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}

func newDiagnoseCmd() *cobra.Command {
	var in inputFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Print findings and remediation actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := in.load()
			if err != nil {
				return err
			}
			res := diagnostics.New().Run(tx)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.Report)
			}
			for _, line := range res.Report.Lines() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tagged findings as JSON")
	return cmd
}

// FleetReport is the document written by "rank --out".
type FleetReport struct {
	ID          string                   `json:"id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Rankings    []analysis.RankedSummary `json:"rankings"`
}

func newRankCmd() *cobra.Command {
	var dataPaths, outPath string
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank surveyed transformers by severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			surveys, err := data.LoadSurveys(cmd.Context(), splitPaths(dataPaths))
			if err != nil {
				return err
			}
			fleet := make([]model.Transformer, len(surveys))
			for i, s := range surveys {
				fleet[i] = s.Transformer()
			}
			ranked := analysis.RankBySeverity(fleet)
			printRanking(cmd.OutOrStdout(), ranked)

			if outPath != "" {
				report := FleetReport{ID: uuid.NewString(), GeneratedAt: time.Now().UTC(), Rankings: ranked}
				if err := data.SaveJSON(report, outPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %d rankings to %s\n", len(ranked), outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPaths, "data", "surveys", "Comma-separated JSON survey files or directories")
	cmd.Flags().StringVar(&outPath, "out", "", "Optional path for a JSON fleet report")
	return cmd
}

func printAssessment(w io.Writer, tx model.Transformer, a model.LoadAssessment) {
	name := tx.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "Transformer %s: %.0f kVA, %d feeder legs\n", name, tx.Rating.KVA(), len(tx.Legs))
	fmt.Fprintf(w, "  rated load          %8.1f A\n", a.RatedLoad)
	fmt.Fprintf(w, "  bulk R/Y/B          %8.1f / %.1f / %.1f A\n", a.RedPhaseBulkLoad, a.YellowPhaseBulkLoad, a.BluePhaseBulkLoad)
	fmt.Fprintf(w, "  average current     %8.1f A\n", a.AverageCurrent)
	fmt.Fprintf(w, "  percentage load     %8.2f %%\n", a.PercentageLoad)
	fmt.Fprintf(w, "  calculated neutral  %8.1f A (limit %.1f A) %s\n", a.CalculatedNeutral, a.TenPercentFullLoadNeutral, a.NeutralWarningLevel)
	fmt.Fprintf(w, "  imbalance           %8.1f %% %s\n", a.ImbalancePercentage, a.ImbalanceWarningLevel)
	for _, msg := range []string{a.NeutralWarningMessage, a.ImbalanceWarningMessage} {
		if msg != "" {
			fmt.Fprintf(w, "  ! %s\n", msg)
		}
	}
}

func printRanking(w io.Writer, ranked []analysis.RankedSummary) {
	fmt.Fprintf(w, "%-4s %-24s %-8s %-5s %-8s %-10s %-9s %-9s %-5s\n",
		"rank", "transformer", "kva", "legs", "load%", "imbalance%", "neutral", "balance", "score")
	for _, r := range ranked {
		fmt.Fprintf(w, "%-4d %-24s %-8.0f %-5d %-8.1f %-10.1f %-9s %-9s %-5d\n",
			r.Rank, r.Name, r.RatingKVA, r.LegCount, r.PercentageLoad, r.ImbalancePercentage,
			r.NeutralLevel, r.ImbalanceLevel, r.Score)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
