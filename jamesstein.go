package steinbench

import "math"

// ShrinkageFactor computes the single scalar weight the shrinkage
// demonstration applies to each sample mean's deviation from the overall mean:
//
//	f = clamp( σ²·(P-3) / S, 0, 1 )
//
// Where:
//   - σ: known observation noise
//   - P: number of groups
//   - S: total squared deviation of the sample means from their overall mean
//
// Degenerate case: S = 0 means every sample mean coincides with the overall
// mean. The ratio is undefined there, but shrinking a constant is a no-op, so
// the factor is defined as 1 (keep the means as they are) instead of
// surfacing an error or a NaN.
//
// The clamp guarantees 0 ≤ f ≤ 1 for every input, including P < 3 where the
// raw ratio goes negative and the factor collapses to 0.
func ShrinkageFactor(sigma float64, groups int, totalDev float64) float64 {
	if totalDev == 0 {
		return 1
	}

	raw := sigma * sigma * float64(groups-3) / totalDev
	return clamp01(raw)
}

// PositivePartWeight computes the textbook positive-part James-Stein weight
// for means with known variance:
//
//	w⁺ = clamp( 1 - v·(P-3) / S, 0, 1 )
//
// Where v is the variance of each sample mean (σ²/N for N averaged
// observations) and S is the total squared deviation of the sample means from
// their overall mean. This is the form with the proven risk guarantee: for
// P ≥ 4 the resulting estimator never has higher aggregate MSE than the raw
// sample means, whatever the true means are.
//
// S = 0 follows the same convention as ShrinkageFactor: weight 1, because
// there is no deviation to shrink.
func PositivePartWeight(meanVariance float64, groups int, totalDev float64) float64 {
	if totalDev == 0 {
		return 1
	}

	raw := 1 - meanVariance*float64(groups-3)/totalDev
	return clamp01(raw)
}

// TotalSquaredDeviation returns S = Σ (x_i - center)².
func TotalSquaredDeviation(xs []float64, center float64) float64 {
	var s float64
	for _, x := range xs {
		d := x - center
		s += d * d
	}
	return s
}

// ShrinkTowardMean forms the convex combination
//
//	shrunken_i = center + factor·(means_i - center)
//
// for every mean. factor = 0 returns the center everywhere and factor = 1
// returns the means unchanged; both limits are handled explicitly so they
// hold exactly, not merely to rounding.
func ShrinkTowardMean(means []float64, center, factor float64) []float64 {
	out := make([]float64, len(means))

	switch factor {
	case 0:
		for i := range out {
			out[i] = center
		}
	case 1:
		copy(out, means)
	default:
		for i, m := range means {
			out[i] = center + factor*(m-center)
		}
	}

	return out
}

// MeanSquaredError returns the average squared difference between estimates
// and the known truth. Mismatched or empty inputs yield NaN rather than a
// panic; the caller is comparing like against like or the number is
// meaningless anyway.
func MeanSquaredError(estimates, truth []float64) float64 {
	if len(estimates) == 0 || len(estimates) != len(truth) {
		return math.NaN()
	}

	var sum float64
	for i, e := range estimates {
		d := e - truth[i]
		sum += d * d
	}
	return sum / float64(len(estimates))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
