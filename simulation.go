package steinbench

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// SimulationResult holds every value a single shrinkage run produces. The
// slices are indexed by group, all of length P.
type SimulationResult struct {
	Config ScenarioConfig

	TrueMeans      []float64   // drawn once from N(0, TrueMeanStd²)
	Observations   [][]float64 // P groups × N draws from N(TrueMeans[i], σ²)
	SampleMeans    []float64   // per-group arithmetic mean
	GroupVariances []float64   // unbiased per-group variance, divisor N-1

	OverallMean    float64 // arithmetic mean of the sample means
	TotalDeviation float64 // S = Σ (SampleMeans[i] - OverallMean)²

	// The demonstration's single-factor shrinkage.
	ShrinkageFactor   float64
	ShrunkenEstimates []float64

	// The textbook positive-part estimator on the same draws, for comparison.
	PositivePartWeight    float64
	PositivePartEstimates []float64

	MSESample       float64 // sample means vs true means
	MSEShrunken     float64 // shrunken estimates vs true means
	MSEPositivePart float64 // positive-part estimates vs true means
}

// RunSimulation executes one shrinkage simulation: draw true means, draw
// grouped observations, average, shrink, score.
//
// Randomness is a single PCG stream (math/rand/v2) seeded with
// (Seed, Seed), consumed in a fixed order: the P true means first, then
// group 0's N observations, then group 1's, and so on. The normal variates
// come from gonum's distuv ziggurat sampler on top of that stream. The
// combination is the reproducibility contract: identical config ⇒
// bit-identical result. Different generators produce different literal
// numbers for the same seed, so downstream checks assert properties of the
// result, not literal values.
func RunSimulation(cfg ScenarioConfig) (*SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("shrinkage simulation: %w", err)
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)

	trueDist := distuv.Normal{Mu: 0, Sigma: cfg.TrueMeanStd, Src: src}
	trueMeans := make([]float64, cfg.Groups)
	for i := range trueMeans {
		trueMeans[i] = trueDist.Rand()
	}

	observations := make([][]float64, cfg.Groups)
	sampleMeans := make([]float64, cfg.Groups)
	groupVariances := make([]float64, cfg.Groups)

	for i, mu := range trueMeans {
		noise := distuv.Normal{Mu: mu, Sigma: cfg.Sigma, Src: src}

		group := make([]float64, cfg.Samples)
		for j := range group {
			group[j] = noise.Rand()
		}

		observations[i] = group
		sampleMeans[i] = arithmeticMean(group)
		groupVariances[i] = sampleVariance(group, sampleMeans[i])
	}

	overall := arithmeticMean(sampleMeans)
	totalDev := TotalSquaredDeviation(sampleMeans, overall)

	factor := ShrinkageFactor(cfg.Sigma, cfg.Groups, totalDev)
	shrunken := ShrinkTowardMean(sampleMeans, overall, factor)

	meanVariance := cfg.Sigma * cfg.Sigma / float64(cfg.Samples)
	weight := PositivePartWeight(meanVariance, cfg.Groups, totalDev)
	positivePart := ShrinkTowardMean(sampleMeans, overall, weight)

	return &SimulationResult{
		Config:                cfg,
		TrueMeans:             trueMeans,
		Observations:          observations,
		SampleMeans:           sampleMeans,
		GroupVariances:        groupVariances,
		OverallMean:           overall,
		TotalDeviation:        totalDev,
		ShrinkageFactor:       factor,
		ShrunkenEstimates:     shrunken,
		PositivePartWeight:    weight,
		PositivePartEstimates: positivePart,
		MSESample:             MeanSquaredError(sampleMeans, trueMeans),
		MSEShrunken:           MeanSquaredError(shrunken, trueMeans),
		MSEPositivePart:       MeanSquaredError(positivePart, trueMeans),
	}, nil
}

// arithmeticMean is the plain sum/n mean. Written out so the computation the
// report describes is visible here rather than buried in a library call.
func arithmeticMean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleVariance is the unbiased estimator with the explicit N-1 divisor:
//
//	s² = Σ (x_j - mean)² / (N-1)
//
// Validate guarantees N ≥ 2 before this runs.
func sampleVariance(xs []float64, mean float64) float64 {
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss / float64(len(xs)-1)
}
