package main

import (
	"fmt"
	"os"

	"transformer-load/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.GetLogger().WithError(err).Warn("error loading .env file")
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cli",
		Short: "Transformer load assessment and diagnostics",
		Long: `Assess three-phase transformer loading from feeder leg readings.

  cli assess   --config examples/config.yaml
  cli diagnose --survey surveys/tx-07.json --json
  cli rank     --data surveys/ --out results/fleet.json`,
		SilenceUsage: true,
	}
	root.AddCommand(newAssessCmd(), newDiagnoseCmd(), newRankCmd())
	return root
}
