package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexshd/steinbench"
)

var (
	studyReplications int
	studyGroups       int
	studySamples      int
	studySigma        float64
	studySpread       float64
	studySeed         uint64
)

// studyCmd repeats the simulation and aggregates estimator risk.
var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Run a repeated-replication risk study",
	Long: `Repeats the shrinkage simulation with a fresh seed per replication and
reports each estimator's mean and median error, its win rate against the
raw sample means, and a plain-language verdict.

Example:
  steinbench study
  steinbench study --replications 5000 --spread 2`,
	RunE: runStudy,
}

func init() {
	studyCmd.Flags().IntVar(&studyReplications, "replications", 1000, "Number of replications")
	studyCmd.Flags().IntVar(&studyGroups, "groups", steinbench.DefaultGroups, "Number of groups")
	studyCmd.Flags().IntVar(&studySamples, "samples", steinbench.DefaultSamples, "Observations per group")
	studyCmd.Flags().Float64Var(&studySigma, "sigma", steinbench.DefaultSigma, "Observation noise standard deviation")
	studyCmd.Flags().Float64Var(&studySpread, "spread", steinbench.DefaultTrueMeanStd, "Standard deviation of the true means")
	studyCmd.Flags().Uint64Var(&studySeed, "seed", steinbench.DefaultSeed, "Master PRNG seed")

	rootCmd.AddCommand(studyCmd)
}

func runStudy(cmd *cobra.Command, args []string) error {
	scenario := scenarioFromEnv()
	cfg := steinbench.StudyConfig{
		Scenario:     scenario,
		Replications: params.Replications,
		Seed:         scenario.Seed,
	}

	flags := cmd.Flags()
	if flags.Changed("replications") {
		cfg.Replications = studyReplications
	}
	if flags.Changed("groups") {
		cfg.Scenario.Groups = studyGroups
	}
	if flags.Changed("samples") {
		cfg.Scenario.Samples = studySamples
	}
	if flags.Changed("sigma") {
		cfg.Scenario.Sigma = studySigma
	}
	if flags.Changed("spread") {
		cfg.Scenario.TrueMeanStd = studySpread
	}
	if flags.Changed("seed") {
		cfg.Seed = studySeed
	}

	slog.Info("running risk study", "replications", cfg.Replications, "seed", cfg.Seed)

	result, err := steinbench.RunStudy(cfg)
	if err != nil {
		return err
	}

	printStudyReport(cfg, result)
	return nil
}

func printStudyReport(cfg steinbench.StudyConfig, r *steinbench.StudyResult) {
	fmt.Println("=== Shrinkage Risk Study ===")
	fmt.Printf("Replications: %d, groups: %d, samples per group: %d, noise σ: %g, true-mean spread: %g\n",
		r.Replications, cfg.Scenario.Groups, cfg.Scenario.Samples, cfg.Scenario.Sigma, cfg.Scenario.TrueMeanStd)
	fmt.Println()

	fmt.Println("  Estimator       Mean MSE  Median MSE  Win rate  Improvement")
	fmt.Println("  -------------  ---------  ----------  --------  -----------")
	fmt.Printf("  sample means   %9.4f  %10.4f  %8s  %11s\n",
		r.MeanMSESample, r.MedianMSESample, "-", "-")
	fmt.Printf("  single factor  %9.4f  %10.4f  %7.1f%%  %+10.2f%%\n",
		r.MeanMSEShrunken, r.MedianMSEShrunken, 100*r.WinRate, r.Improvement)
	fmt.Printf("  positive part  %9.4f  %10.4f  %7.1f%%  %+10.2f%%\n",
		r.MeanMSEPositivePart, r.MedianMSEPositivePart, 100*r.PositivePartWinRate, r.PositivePartImprovement)

	fmt.Println()
	fmt.Printf("Mean f  (single factor): %.4f\n", r.MeanShrinkage)
	fmt.Printf("Mean w⁺ (positive part): %.4f\n", r.MeanPositivePartWeight)
	fmt.Println()
	fmt.Printf("Single factor:  %s %s\n", verdictGlyph(r.Improvement), steinbench.RiskVerdict(r.Improvement))
	fmt.Printf("Positive part:  %s %s\n", verdictGlyph(r.PositivePartImprovement), r.Verdict())
}

func verdictGlyph(improvement float64) string {
	switch {
	case improvement >= 3:
		return "✓"
	case improvement > -3:
		return "⚠"
	default:
		return "✗"
	}
}
