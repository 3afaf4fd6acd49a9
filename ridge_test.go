package steinbench

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TestAnalyzeCollinearity_DefaultScenario walks the full demonstration:
// a near-duplicate predictor pair, the λ path, and the shrinkage
// properties along it.
func TestAnalyzeCollinearity_DefaultScenario(t *testing.T) {
	analysis, err := AnalyzeCollinearity(DefaultCollinearScenario(), DefaultLambdaPath())
	require.NoError(t, err)

	require.Len(t, analysis.Fits, len(DefaultLambdaPath()))
	require.Len(t, analysis.CoeffErrors, len(analysis.Fits))

	for i, fit := range analysis.Fits {
		require.Len(t, fit.Coeffs, len(analysis.Scenario.TrueCoeffs),
			"fit %d has the wrong coefficient count", i)
		assert.False(t, math.IsNaN(analysis.CoeffErrors[i]),
			"coefficient error %d is NaN", i)
		assert.GreaterOrEqual(t, analysis.CoeffErrors[i], 0.0)
	}

	// BestLambda must be one of the requested path points.
	assert.Contains(t, DefaultLambdaPath(), analysis.BestLambda)

	// A 0.01 perturbation on a duplicated predictor leaves the unpenalized
	// normal equations badly conditioned.
	unpenalized := analysis.Fits[0]
	assert.Greater(t, unpenalized.Cond, 1e3,
		"near-duplicate predictors should show up in the condition number")

	// Heavy penalty shrinks the coefficients below the truth's own norm.
	trueNorm := floats.Norm(analysis.Scenario.TrueCoeffs, 2)
	heaviest := analysis.Fits[len(analysis.Fits)-1]
	assert.Less(t, heaviest.CoeffNorm, trueNorm,
		"λ = %g should over-shrink well below ‖β*‖ = %.2f", heaviest.Lambda, trueNorm)

	AssertRidgeShrinkage(t, analysis.Fits)
	PrintCollinearity(t, analysis)
}

// TestFitRidge_ExactDuplicateFallsBackToSVD verifies the rank-deficient
// path: with an exact duplicate column the normal equations are singular,
// the solve falls back to SVD, and the minimum-norm solution splits the
// shared coefficient evenly across the duplicate pair.
func TestFitRidge_ExactDuplicateFallsBackToSVD(t *testing.T) {
	scenario := DefaultCollinearScenario()
	scenario.CollinearNoise = 0

	x, y, err := scenario.Generate()
	require.NoError(t, err)

	fit, err := FitRidge(x, y, 0)
	require.NoError(t, err, "singular design must fall back, not fail")

	assert.True(t, math.IsInf(fit.Cond, 1),
		"exact duplicates should report an infinite condition number, got %g", fit.Cond)
	assert.InDelta(t, fit.Coeffs[0], fit.Coeffs[1], 1e-6,
		"minimum-norm solution should split the duplicated coefficient evenly")

	// Any positive penalty restores a unique, finite solve.
	penalized, err := FitRidge(x, y, 0.1)
	require.NoError(t, err)
	assert.False(t, math.IsInf(penalized.Cond, 1))
	assert.InDelta(t, penalized.Coeffs[0], penalized.Coeffs[1], 1e-6,
		"ridge treats exact duplicates symmetrically")

	t.Logf("✓ Singular fallback: cond=%v, pair split %.4f / %.4f",
		fit.Cond, fit.Coeffs[0], fit.Coeffs[1])
}

// TestFitRidge_Errors verifies input rejection before any algebra runs.
func TestFitRidge_Errors(t *testing.T) {
	x, y, err := DefaultCollinearScenario().Generate()
	require.NoError(t, err)

	_, err = FitRidge(x, y, -0.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative penalty")

	_, err = FitRidge(x, y[:10], 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

// TestRidgePath_EmptyPath verifies an empty λ list is rejected.
func TestRidgePath_EmptyPath(t *testing.T) {
	x, y, err := DefaultCollinearScenario().Generate()
	require.NoError(t, err)

	_, err = RidgePath(x, y, nil)
	require.Error(t, err)
}

// TestCollinearScenario_GenerateDeterminism verifies data generation is a
// pure function of the scenario.
func TestCollinearScenario_GenerateDeterminism(t *testing.T) {
	scenario := DefaultCollinearScenario()

	x1, y1, err := scenario.Generate()
	require.NoError(t, err)
	x2, y2, err := scenario.Generate()
	require.NoError(t, err)

	assert.True(t, mat.Equal(x1, x2), "design matrices differ between identical generations")
	assert.Equal(t, y1, y2, "responses differ between identical generations")

	scenario.Seed = DefaultSeed + 1
	x3, _, err := scenario.Generate()
	require.NoError(t, err)
	assert.False(t, mat.Equal(x1, x3), "different seeds should draw different designs")
}

// TestCollinearScenario_CenteredOutput verifies Generate centers what it
// returns, which is what lets the fits skip an intercept.
func TestCollinearScenario_CenteredOutput(t *testing.T) {
	x, y, err := DefaultCollinearScenario().Generate()
	require.NoError(t, err)

	n, p := x.Dims()
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		assert.InDelta(t, 0, floats.Sum(col), 1e-9, "column %d not centered", j)
	}
	assert.InDelta(t, 0, floats.Sum(y), 1e-9, "response not centered")
}

// TestCollinearScenario_Validate exercises every rejection branch.
func TestCollinearScenario_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CollinearScenario)
	}{
		{"single predictor", func(s *CollinearScenario) { s.TrueCoeffs = []float64{1} }},
		{"no predictors", func(s *CollinearScenario) { s.TrueCoeffs = nil }},
		{"underdetermined", func(s *CollinearScenario) { s.Observations = 3 }},
		{"negative perturbation", func(s *CollinearScenario) { s.CollinearNoise = -0.01 }},
		{"zero response noise", func(s *CollinearScenario) { s.NoiseStd = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := DefaultCollinearScenario()
			tt.mutate(&scenario)

			err := scenario.Validate()
			require.Error(t, err)
			t.Logf("✓ Rejected: %v", err)
		})
	}
}
