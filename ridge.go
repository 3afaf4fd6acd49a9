package steinbench

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CollinearScenario describes the synthetic regression used to demonstrate
// ridge shrinkage under multicollinearity: the second predictor is a
// near-copy of the first, so ordinary least squares cannot tell their
// coefficients apart while the penalized fit stays stable.
type CollinearScenario struct {
	Observations   int       // rows in the design matrix
	CollinearNoise float64   // spread of the perturbation on the duplicated predictor; 0 = exact copy
	NoiseStd       float64   // response noise
	TrueCoeffs     []float64 // one per predictor; the first two share the collinear pair
	Seed           uint64
}

// DefaultCollinearScenario returns the demonstration setup: fifty rows,
// three predictors with an almost exact duplicate pair.
func DefaultCollinearScenario() CollinearScenario {
	return CollinearScenario{
		Observations:   50,
		CollinearNoise: 0.01,
		NoiseStd:       1.0,
		TrueCoeffs:     []float64{3, 1.5, -2},
		Seed:           DefaultSeed,
	}
}

// Validate rejects scenarios the demonstration cannot run on.
func (s CollinearScenario) Validate() error {
	if len(s.TrueCoeffs) < 2 {
		return fmt.Errorf("need at least 2 predictors for a collinear pair, got %d", len(s.TrueCoeffs))
	}

	if s.Observations <= len(s.TrueCoeffs) {
		return fmt.Errorf(
			"underdetermined design: %d observations for %d predictors (need more rows than columns)",
			s.Observations, len(s.TrueCoeffs),
		)
	}

	if s.CollinearNoise < 0 {
		return fmt.Errorf("invalid collinear perturbation: %g (need ≥ 0)", s.CollinearNoise)
	}

	if s.NoiseStd <= 0 {
		return fmt.Errorf("invalid response noise: %g (need > 0)", s.NoiseStd)
	}

	return nil
}

// Generate draws the design matrix and response. Predictor 0 is standard
// normal, predictor 1 is predictor 0 plus a CollinearNoise perturbation,
// remaining predictors are independent standard normals. The response is
// X·TrueCoeffs plus NoiseStd noise. Columns and response come back centered,
// which is why no intercept column appears anywhere in this file.
//
// Draws share one PCG stream seeded with (Seed, Seed), row by row, so a
// scenario reproduces bit for bit like the shrinkage simulation does.
func (s CollinearScenario) Generate() (*mat.Dense, []float64, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, fmt.Errorf("collinear scenario: %w", err)
	}

	src := rand.NewPCG(s.Seed, s.Seed)
	standard := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	response := distuv.Normal{Mu: 0, Sigma: s.NoiseStd, Src: src}

	// Sigma = 0 is rejected by distuv, so an exact duplicate skips the
	// perturbation draw entirely.
	var perturb distuv.Normal
	if s.CollinearNoise > 0 {
		perturb = distuv.Normal{Mu: 0, Sigma: s.CollinearNoise, Src: src}
	}

	n, p := s.Observations, len(s.TrueCoeffs)
	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)

	for i := 0; i < n; i++ {
		x.Set(i, 0, standard.Rand())

		dup := x.At(i, 0)
		if s.CollinearNoise > 0 {
			dup += perturb.Rand()
		}
		x.Set(i, 1, dup)

		for j := 2; j < p; j++ {
			x.Set(i, j, standard.Rand())
		}

		var signal float64
		for j := 0; j < p; j++ {
			signal += x.At(i, j) * s.TrueCoeffs[j]
		}
		y[i] = signal + response.Rand()
	}

	centerColumns(x)
	center(y)

	return x, y, nil
}

// RidgeFit is one point on the regularization path.
type RidgeFit struct {
	Lambda    float64
	Coeffs    []float64
	CoeffNorm float64 // ‖β̂‖₂: shrinks as λ grows
	Cond      float64 // 2-norm condition number of XᵀX + λI; +Inf when the unpenalized system was singular
}

// FitRidge solves the penalized normal equations
//
//	(XᵀX + λI) β = Xᵀy
//
// by direct linear solve. λ = 0 is ordinary least squares; if the design is
// rank deficient there (an exact duplicate column), the solve falls back to
// SVD least squares with small singular values truncated, which returns the
// minimum-norm solution instead of failing.
func FitRidge(x *mat.Dense, y []float64, lambda float64) (RidgeFit, error) {
	n, p := x.Dims()
	if len(y) != n {
		return RidgeFit{}, fmt.Errorf("response length %d does not match %d design rows", len(y), n)
	}
	if lambda < 0 {
		return RidgeFit{}, fmt.Errorf("negative penalty λ = %g: ridge requires λ ≥ 0", lambda)
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for i := 0; i < p; i++ {
		xtx.Set(i, i, xtx.At(i, i)+lambda)
	}

	yv := mat.NewVecDense(n, y)
	var xty mat.VecDense
	xty.MulVec(x.T(), yv)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		if lambda > 0 {
			// A positive penalty makes XᵀX + λI positive definite;
			// a failure here is numerical breakage worth surfacing.
			return RidgeFit{}, fmt.Errorf("ridge solve failed at λ = %g: %w", lambda, err)
		}

		coeffs, svdErr := minimumNormLeastSquares(x, yv)
		if svdErr != nil {
			return RidgeFit{}, fmt.Errorf("least squares on singular design: %w", svdErr)
		}

		return RidgeFit{
			Lambda:    0,
			Coeffs:    coeffs,
			CoeffNorm: floats.Norm(coeffs, 2),
			Cond:      math.Inf(1),
		}, nil
	}

	coeffs := make([]float64, p)
	for i := range coeffs {
		coeffs[i] = beta.AtVec(i)
	}

	return RidgeFit{
		Lambda:    lambda,
		Coeffs:    coeffs,
		CoeffNorm: floats.Norm(coeffs, 2),
		Cond:      mat.Cond(&xtx, 2),
	}, nil
}

// minimumNormLeastSquares solves X β ≈ y by SVD, truncating singular values
// below 1e-12 of the largest. Of all least-squares solutions of a rank
// deficient system it returns the one with the smallest ‖β‖₂.
func minimumNormLeastSquares(x *mat.Dense, y *mat.VecDense) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDFullU|mat.SVDFullV); !ok {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	rank := svd.Rank(1e-12)
	if rank == 0 {
		return nil, fmt.Errorf("design matrix is numerically zero")
	}

	var sol mat.Dense
	svd.SolveTo(&sol, y, rank)

	_, p := x.Dims()
	coeffs := make([]float64, p)
	for i := range coeffs {
		coeffs[i] = sol.At(i, 0)
	}

	return coeffs, nil
}

// RidgePath fits every λ in order on the same data.
func RidgePath(x *mat.Dense, y []float64, lambdas []float64) ([]RidgeFit, error) {
	if len(lambdas) == 0 {
		return nil, fmt.Errorf("empty λ path")
	}

	fits := make([]RidgeFit, 0, len(lambdas))
	for _, lambda := range lambdas {
		fit, err := FitRidge(x, y, lambda)
		if err != nil {
			return nil, fmt.Errorf("λ = %g: %w", lambda, err)
		}
		fits = append(fits, fit)
	}

	return fits, nil
}

// DefaultLambdaPath spans no penalty to heavy penalty on a log scale.
func DefaultLambdaPath() []float64 {
	return []float64{0, 0.001, 0.01, 0.1, 1, 10, 100}
}

// CollinearAnalysis is the full demonstration: the path of fits on one
// collinear draw, with the distance of each coefficient vector from the
// truth, and the λ that got closest.
type CollinearAnalysis struct {
	Scenario    CollinearScenario
	Fits        []RidgeFit
	CoeffErrors []float64 // ‖β̂(λ) - β*‖₂ per path entry
	BestLambda  float64   // path λ minimizing the coefficient error
}

// AnalyzeCollinearity generates the scenario and fits the λ path on it.
func AnalyzeCollinearity(s CollinearScenario, lambdas []float64) (*CollinearAnalysis, error) {
	x, y, err := s.Generate()
	if err != nil {
		return nil, err
	}

	fits, err := RidgePath(x, y, lambdas)
	if err != nil {
		return nil, err
	}

	coeffErrors := make([]float64, len(fits))
	best := 0
	for i, fit := range fits {
		coeffErrors[i] = floats.Distance(fit.Coeffs, s.TrueCoeffs, 2)
		if coeffErrors[i] < coeffErrors[best] {
			best = i
		}
	}

	return &CollinearAnalysis{
		Scenario:    s,
		Fits:        fits,
		CoeffErrors: coeffErrors,
		BestLambda:  fits[best].Lambda,
	}, nil
}

// AssertRidgeShrinkage verifies the two monotone properties of the
// regularization path: the coefficient norm never grows with λ and the
// condition number never grows with λ.
//
// Mathematical property:
//
//	λ₁ < λ₂ ⇒ ‖β̂(λ₂)‖₂ ≤ ‖β̂(λ₁)‖₂ and cond(XᵀX+λ₂I) ≤ cond(XᵀX+λ₁I)
func AssertRidgeShrinkage(t *testing.T, fits []RidgeFit) {
	t.Helper()

	if len(fits) < 2 {
		t.Fatalf("need at least 2 path points, got %d", len(fits))
	}

	const slack = 1e-8 // relative slack for floating-point wiggle

	for i := 1; i < len(fits); i++ {
		prev, curr := fits[i-1], fits[i]
		if curr.Lambda <= prev.Lambda {
			t.Fatalf("path not in increasing λ order: λ[%d]=%g after λ[%d]=%g",
				i, curr.Lambda, i-1, prev.Lambda)
		}

		if curr.CoeffNorm > prev.CoeffNorm*(1+slack) {
			t.Errorf("coefficient norm grew along the path: ‖β‖=%.6f at λ=%g but %.6f at λ=%g",
				prev.CoeffNorm, prev.Lambda, curr.CoeffNorm, curr.Lambda)
		}

		if curr.Cond > prev.Cond*(1+slack) {
			t.Errorf("condition number grew along the path: %.4g at λ=%g but %.4g at λ=%g",
				prev.Cond, prev.Lambda, curr.Cond, curr.Lambda)
		}
	}

	first, last := fits[0], fits[len(fits)-1]
	t.Logf("✓ Coefficient norm: %.4f → %.4f as λ: %g → %g",
		first.CoeffNorm, last.CoeffNorm, first.Lambda, last.Lambda)
	t.Logf("✓ Condition number: %.4g → %.4g", first.Cond, last.Cond)
}

// PrintCollinearity outputs the regularization path to the test log.
func PrintCollinearity(t *testing.T, analysis *CollinearAnalysis) {
	t.Helper()

	t.Logf("\n=== Ridge Path on Collinear Design ===")
	t.Logf("Observations: %d, predictors: %d, duplicate perturbation: %g",
		analysis.Scenario.Observations, len(analysis.Scenario.TrueCoeffs), analysis.Scenario.CollinearNoise)
	t.Logf("True coefficients: %.2f", analysis.Scenario.TrueCoeffs)

	t.Logf("\n  λ         cond(XᵀX+λI)   ‖β̂‖      ‖β̂-β*‖")
	t.Logf("  --------  -------------  --------  --------")
	for i, fit := range analysis.Fits {
		t.Logf("  %-8g  %13.4g  %8.4f  %8.4f",
			fit.Lambda, fit.Cond, fit.CoeffNorm, analysis.CoeffErrors[i])
	}

	t.Logf("\nBest λ (closest coefficients): %g", analysis.BestLambda)

	unpenalized := analysis.Fits[0]
	switch {
	case math.IsInf(unpenalized.Cond, 1):
		t.Logf("  ✗ Unpenalized system singular: exact duplicate predictors")
	case unpenalized.Cond > 1e6:
		t.Logf("  ✗ Severe multicollinearity (cond > 1e6): OLS coefficients unstable")
	case unpenalized.Cond > 1e3:
		t.Logf("  ⚠ Noticeable multicollinearity (cond > 1e3)")
	default:
		t.Logf("  ✓ Well conditioned design")
	}
}

// centerColumns subtracts each column's mean in place.
func centerColumns(x *mat.Dense) {
	r, c := x.Dims()
	col := make([]float64, r)

	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		floats.AddConst(-stat.Mean(col, nil), col)
		x.SetCol(j, col)
	}
}

// center subtracts the mean in place.
func center(xs []float64) {
	floats.AddConst(-stat.Mean(xs, nil), xs)
}
