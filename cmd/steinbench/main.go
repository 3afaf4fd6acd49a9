package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/alexshd/steinbench"
)

// envParams mirrors the scenario knobs as STEINBENCH_* environment
// variables. Flags beat environment, environment beats these defaults,
// and the defaults are the reference scenario.
type envParams struct {
	Groups       int     `env:"STEINBENCH_GROUPS, default=10"`
	Samples      int     `env:"STEINBENCH_SAMPLES, default=5"`
	Sigma        float64 `env:"STEINBENCH_SIGMA, default=5"`
	Spread       float64 `env:"STEINBENCH_SPREAD, default=10"`
	Seed         uint64  `env:"STEINBENCH_SEED, default=42"`
	Replications int     `env:"STEINBENCH_REPLICATIONS, default=1000"`
}

var (
	verbose bool
	params  envParams
)

var rootCmd = &cobra.Command{
	Use:   "steinbench",
	Short: "Deterministic shrinkage estimation demonstrations",
	Long: `steinbench runs small, fully reproducible numerical experiments:
a James-Stein style shrinkage simulation on Gaussian group means, a
repeated-replication risk study of the same, and a ridge regression
path on a deliberately collinear design.

Every command is a pure function of its parameters. The same seed
always produces the same report, bit for bit.

Configuration comes from flags, STEINBENCH_* environment variables, or
a .env file, in that order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		})))

		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file, using process environment")
		}

		if err := envconfig.Process(cmd.Context(), &params); err != nil {
			return fmt.Errorf("reading STEINBENCH_* environment: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// scenarioFromEnv builds the shrinkage scenario the environment asks for.
// Commands apply their own flag overrides on top.
func scenarioFromEnv() steinbench.ScenarioConfig {
	return steinbench.ScenarioConfig{
		Groups:      params.Groups,
		Samples:     params.Samples,
		Sigma:       params.Sigma,
		TrueMeanStd: params.Spread,
		Seed:        params.Seed,
	}
}
