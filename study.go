package steinbench

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// StudyConfig controls a repeated-replication risk study.
type StudyConfig struct {
	// Scenario is the per-replication setup. Its Seed field is ignored:
	// every replication gets a fresh seed drawn from the study's master
	// stream, so replications are independent but the study as a whole is
	// reproducible.
	Scenario ScenarioConfig

	Replications int
	Seed         uint64 // master seed for the per-replication seed stream
}

// DefaultStudyConfig returns the reference scenario at 1000 replications.
func DefaultStudyConfig() StudyConfig {
	return StudyConfig{
		Scenario:     DefaultScenario(),
		Replications: 1000,
		Seed:         DefaultSeed,
	}
}

// Validate rejects studies that cannot run.
func (c StudyConfig) Validate() error {
	if c.Replications < 1 {
		return fmt.Errorf("invalid replication count: %d (need ≥ 1)", c.Replications)
	}

	if err := c.Scenario.Validate(); err != nil {
		return fmt.Errorf("study scenario: %w", err)
	}

	return nil
}

// StudyResult aggregates estimator risk across replications. Every MSE
// column exists in three flavors: raw sample means, the demonstration's
// single-factor shrinkage, and the textbook positive-part estimator.
type StudyResult struct {
	Replications int

	MeanShrinkage          float64 // average single-factor weight f
	MeanPositivePartWeight float64 // average positive-part weight w⁺

	MeanMSESample       float64
	MeanMSEShrunken     float64
	MeanMSEPositivePart float64

	MedianMSESample       float64
	MedianMSEShrunken     float64
	MedianMSEPositivePart float64

	// Fraction of replications where the estimator's MSE did not exceed
	// the sample means' MSE. Equal MSEs count: a fully clamped factor
	// leaves the means untouched, which is a non-loss.
	WinRate             float64
	PositivePartWinRate float64

	// Percent reduction of mean MSE relative to the sample means.
	// Negative means the estimator increased risk.
	Improvement             float64
	PositivePartImprovement float64
}

// RunStudy executes cfg.Replications independent simulations sequentially
// and aggregates their risk. The loop is deliberately serial: replications
// are cheap (≤ 50 draws each), and a serial loop keeps the replication order,
// and with it the aggregate, bit-reproducible for a given master seed.
func RunStudy(cfg StudyConfig) (*StudyResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("risk study: %w", err)
	}

	master := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	var (
		mseSample    = make([]float64, cfg.Replications)
		mseShrunken  = make([]float64, cfg.Replications)
		msePositive  = make([]float64, cfg.Replications)
		factors      = make([]float64, cfg.Replications)
		weights      = make([]float64, cfg.Replications)
		wins         int
		positiveWins int
	)

	for i := 0; i < cfg.Replications; i++ {
		scenario := cfg.Scenario
		scenario.Seed = master.Uint64()

		res, err := RunSimulation(scenario)
		if err != nil {
			return nil, fmt.Errorf("replication %d: %w", i, err)
		}

		mseSample[i] = res.MSESample
		mseShrunken[i] = res.MSEShrunken
		msePositive[i] = res.MSEPositivePart
		factors[i] = res.ShrinkageFactor
		weights[i] = res.PositivePartWeight

		if res.MSEShrunken <= res.MSESample {
			wins++
		}
		if res.MSEPositivePart <= res.MSESample {
			positiveWins++
		}
	}

	n := float64(cfg.Replications)

	result := &StudyResult{
		Replications:           cfg.Replications,
		MeanShrinkage:          stat.Mean(factors, nil),
		MeanPositivePartWeight: stat.Mean(weights, nil),
		MeanMSESample:          stat.Mean(mseSample, nil),
		MeanMSEShrunken:        stat.Mean(mseShrunken, nil),
		MeanMSEPositivePart:    stat.Mean(msePositive, nil),
		MedianMSESample:        median(mseSample),
		MedianMSEShrunken:      median(mseShrunken),
		MedianMSEPositivePart:  median(msePositive),
		WinRate:                float64(wins) / n,
		PositivePartWinRate:    float64(positiveWins) / n,
	}

	result.Improvement = improvementPercent(result.MeanMSESample, result.MeanMSEShrunken)
	result.PositivePartImprovement = improvementPercent(result.MeanMSESample, result.MeanMSEPositivePart)

	return result, nil
}

// Verdict classifies the positive-part estimator's measured risk reduction.
func (r StudyResult) Verdict() string {
	return RiskVerdict(r.PositivePartImprovement)
}

// RiskVerdict maps a percent MSE reduction to a plain-language judgment.
func RiskVerdict(improvement float64) string {
	switch {
	case improvement >= 15:
		return "strong risk reduction"
	case improvement >= 3:
		return "clear risk reduction"
	case improvement > -3:
		return "no material change"
	default:
		return "risk increased"
	}
}

// improvementPercent is positive when the estimator beat the sample means.
func improvementPercent(baseline, estimator float64) float64 {
	if baseline == 0 {
		return 0
	}
	return 100 * (1 - estimator/baseline)
}

// median copies and sorts so the caller's slice stays in replication order.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
