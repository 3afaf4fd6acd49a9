package steinbench

import "fmt"

// Reference scenario constants. These are the fixed parameters of the
// shrinkage demonstration: ten groups of five observations each, observation
// noise σ = 5, true group means drawn from N(0, 10²), seeded at 42.
const (
	// DefaultGroups is P, the number of estimated means.
	// The James-Stein effect requires P ≥ 3; below that the factor
	// degenerates and the estimator reduces to the overall mean.
	DefaultGroups = 10

	// DefaultSamples is N, observations drawn per group.
	// N ≥ 2 is a hard requirement: the unbiased variance divides by N-1.
	DefaultSamples = 5

	// DefaultSigma is σ, the known standard deviation of each observation
	// around its group's true mean.
	DefaultSigma = 5.0

	// DefaultTrueMeanStd is the spread of the true group means around zero.
	DefaultTrueMeanStd = 10.0

	// DefaultSeed fixes the PRNG so every run of the reference scenario
	// reproduces the same draws bit for bit.
	DefaultSeed uint64 = 42
)

// ScenarioConfig describes one shrinkage simulation: how many groups, how
// many observations per group, the two spreads, and the seed.
type ScenarioConfig struct {
	Groups      int     // P: number of groups (true means estimated jointly)
	Samples     int     // N: observations per group
	Sigma       float64 // σ: known observation noise
	TrueMeanStd float64 // spread of true means around 0
	Seed        uint64  // PCG seed; identical seed ⇒ identical run
}

// DefaultScenario returns the reference scenario.
func DefaultScenario() ScenarioConfig {
	return ScenarioConfig{
		Groups:      DefaultGroups,
		Samples:     DefaultSamples,
		Sigma:       DefaultSigma,
		TrueMeanStd: DefaultTrueMeanStd,
		Seed:        DefaultSeed,
	}
}

// Validate rejects parameter combinations the simulation cannot run on.
// It is called before any draw or variance computation happens, so a bad N
// never reaches the N-1 divisor.
func (c ScenarioConfig) Validate() error {
	if c.Samples < 2 {
		return fmt.Errorf(
			"invalid samples per group: N = %d (need N ≥ 2)\n"+
				"  The unbiased group variance divides by N-1.\n"+
				"  A single observation per group has no within-group spread to estimate.",
			c.Samples,
		)
	}

	if c.Groups < 1 {
		return fmt.Errorf("invalid group count: P = %d (need P ≥ 1)", c.Groups)
	}

	if c.Sigma <= 0 {
		return fmt.Errorf("invalid observation noise: σ = %g (need σ > 0)", c.Sigma)
	}

	if c.TrueMeanStd <= 0 {
		return fmt.Errorf("invalid true-mean spread: %g (need > 0)", c.TrueMeanStd)
	}

	return nil
}
