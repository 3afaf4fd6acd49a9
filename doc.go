// Package steinbench measures risk properties of shrinkage estimators.
//
// # Overview
//
// steinbench makes the classic James-Stein demonstration executable: draw a
// handful of group means, estimate each one from a few noisy observations,
// then pull every estimate toward the overall mean and watch what happens to
// the aggregate error. The package also carries the companion ridge
// regression demonstration, where the same shrinkage idea stabilizes a
// regression with nearly duplicate predictors.
//
// # Architecture
//
// The package components:
//
//   - scenario.go    - Simulation parameters and validation
//   - simulation.go  - One seeded shrinkage run (draw, average, shrink, score)
//   - jamesstein.go  - Pure estimator primitives (weights, convex shrinkage, MSE)
//   - study.go       - Repeated-replication risk study
//   - ridge.go       - Ridge path on a collinear design
//   - assertions.go  - Test helpers for estimator properties
//
// # Quick Start
//
// Run the reference scenario and inspect the estimates:
//
//	result, err := steinbench.RunSimulation(steinbench.DefaultScenario())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("shrinkage factor: %.4f\n", result.ShrinkageFactor)
//	for i, m := range result.SampleMeans {
//	    fmt.Printf("group %d: sample %.2f → shrunken %.2f (true %.2f)\n",
//	        i, m, result.ShrunkenEstimates[i], result.TrueMeans[i])
//	}
//
//	fmt.Printf("mse(sample) = %.3f, mse(shrunken) = %.3f\n",
//	    result.MSESample, result.MSEShrunken)
//
// # The Two Weights
//
// Each run computes two shrinkage weights on the same draws:
//
//	f  = clamp( σ²·(P-3) / S, 0, 1 )         (single-factor demonstration)
//	w⁺ = clamp( 1 - (σ²/N)·(P-3) / S, 0, 1 ) (textbook positive part)
//
// Where:
//   - P: number of groups, N: observations per group
//   - σ: known observation noise
//   - S: total squared deviation of the sample means from their overall mean
//
// Both estimates are convex combinations of the overall mean m̄ and the
// per-group sample mean:
//
//	estimate_i = m̄ + weight·(m_i - m̄)
//
// The two weights behave very differently. w⁺ carries the James-Stein
// guarantee: with four or more groups its aggregate MSE never exceeds the
// sample means' on average, whatever the true means are. f is the simpler
// single-factor variant from the written demonstration; it helps when the
// true means huddle together and over-shrinks badly when they are dispersed.
// RunStudy measures both, which is the honest way to show the difference.
//
// # Determinism
//
// Every draw flows from one PCG stream (math/rand/v2) seeded with the
// scenario seed, consumed in a documented order: true means first, then each
// group's observations in group order. Identical configuration reproduces
// results bit for bit. Literal values are still generator-specific, so tests
// assert properties (bounds, convexity, risk ordering) rather than golden
// numbers.
//
// # Ridge Regression
//
// The second demonstration applies the shrinkage idea to regression
// coefficients. On a design where one predictor nearly duplicates another,
// ordinary least squares is unstable; the penalized solve
//
//	(XᵀX + λI) β = Xᵀy
//
// trades a little bias for a large variance reduction:
//
//	analysis, err := steinbench.AnalyzeCollinearity(
//	    steinbench.DefaultCollinearScenario(), steinbench.DefaultLambdaPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("best λ: %g\n", analysis.BestLambda)
//
// Along the λ path the coefficient norm and the condition number both fall
// monotonically; AssertRidgeShrinkage checks exactly that.
//
// # Testing
//
// Use assertions to validate estimator properties:
//
//	func TestMyScenario(t *testing.T) {
//	    result, err := steinbench.RunSimulation(myScenario)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    // Bounds, convexity, finite risk
//	    steinbench.AssertEstimator(t, result)
//
//	    // Same seed ⇒ bit-identical output
//	    steinbench.AssertDeterminism(t, myScenario)
//	}
//
// # Philosophy
//
// A printed table of estimates answers: "What did this run produce?"
// steinbench answers: "What are the estimator's properties?"
//
//   - Is the weight always inside [0, 1]?
//   - Do the estimates stay between the overall mean and the sample mean?
//   - Does the same seed reproduce the same bits?
//   - Does shrinkage actually reduce risk, and in which regime?
//
// The distinction matters because the most interesting fact about shrinkage
// is not any single run but the property that holds across runs.
package steinbench
