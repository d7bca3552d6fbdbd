package logreg

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Diagnostics summarizes one kernel invocation. Non-convergence is
// reported here, never as an error: callers compare Gap against their
// tolerance.
type Diagnostics struct {
	Gap       float64
	PrimalObj float64
	Norm1Beta float64
	DualScale float64
	NIter     int
	NActive   int
}

// Kernel is the arithmetic collaborator of the path driver. Solve
// refines the iterate in place at one penalty until the duality gap
// drops below tol or maxIter coordinate passes are spent. In
// warm-start-only mode it must keep the incoming active mask, apply no
// screening and leave State.DualScale untouched; the driver treats such
// a call as iterate refinement, not as the definitive solve.
type Kernel interface {
	Solve(prob *Problem, s *State, active *ActiveSet, lambda, tol float64,
		maxIter, screenFreq int, policy Policy, warmStartOnly bool) Diagnostics
}

// CDKernel is the built-in cyclic coordinate descent kernel with the
// gap-safe sphere test.
//
// Each coordinate step majorizes the logistic curvature by the Lipschitz
// bound L_j = ||X_j||^2/4 and applies
//
//	beta_j <- ST(beta_j + XTR_j/L_j, lambda/L_j).
//
// Every screenFreq passes the duality gap is evaluated at the dual point
// theta = Residual/dualScale with dualScale = max(lambda, max_j |XTR_j|)
// over the enabled features. The safe sphere around theta has radius
// r = sqrt(gap/2)/lambda, and feature j is eliminated when
//
//	|XTR_j|/dualScale + r*||X_j|| < 1,
//
// which certifies beta_j = 0 at the optimum. Under SequentialSafe the
// test runs only at the first gap evaluation (the certificate inherited
// from the previous penalty); SequentialAndDynamicSafe re-runs it at
// every evaluation.
type CDKernel struct{}

// Solve implements Kernel.
func (k CDKernel) Solve(prob *Problem, s *State, active *ActiveSet, lambda, tol float64,
	maxIter, screenFreq int, policy Policy, warmStartOnly bool) Diagnostics {
	if screenFreq < 1 {
		screenFreq = 1
	}
	if !warmStartOnly {
		// The definitive solve starts from the full feature set; only
		// its own safe test may eliminate features.
		active.Reset()
	}

	var (
		gap       = math.Inf(1)
		dualScale float64
		passes    int
		converged bool
		tested    bool
	)

	for pass := 0; pass < maxIter; pass++ {
		if pass%screenFreq == 0 {
			gap, dualScale = k.dualityGap(prob, s, active, lambda)
			if !warmStartOnly {
				s.DualScale = dualScale
			}
			// Screen before the convergence break: the sphere shrinks to
			// the certified active set as the gap vanishes, so even a
			// solve that converges on its first check reports a tight
			// active count.
			if !warmStartOnly && policy != NoScreening &&
				(policy == SequentialAndDynamicSafe || !tested) {
				k.screenFeatures(prob, s, active, lambda, gap, dualScale)
				tested = true
			}
			if gap <= tol {
				converged = true
				break
			}
		}
		k.coordinatePass(prob, s, active, lambda)
		passes = pass + 1
	}

	if !converged {
		// Certify the terminal iterate so the reported gap matches the
		// state actually handed back.
		gap, dualScale = k.dualityGap(prob, s, active, lambda)
		if !warmStartOnly {
			s.DualScale = dualScale
		}
	}

	return Diagnostics{
		Gap:       gap,
		PrimalObj: s.PrimalObj,
		Norm1Beta: s.Norm1Beta,
		DualScale: dualScale,
		NIter:     passes,
		NActive:   active.NActive,
	}
}

// dualityGap refreshes the gradient entries of the enabled features,
// recomputes the primal objective from the caches and evaluates the dual
// objective at theta = Residual/dualScale. Weak duality makes the
// difference a certificate of suboptimality.
func (k CDKernel) dualityGap(prob *Problem, s *State, active *ActiveSet, lambda float64) (gap, dualScale float64) {
	maxXTR := 0.0
	for j, col := range prob.Cols {
		if active.Disabled[j] {
			continue
		}
		v := floats.Dot(col, s.Residual)
		s.XTR[j] = v
		if a := math.Abs(v); a > maxXTR {
			maxXTR = a
		}
	}
	dualScale = math.Max(lambda, maxXTR)

	s.PrimalObj = -floats.Dot(prob.Y, s.Xbeta) +
		logisticLogTerm(s.Xbeta, s.ExpXbeta) + lambda*s.Norm1Beta

	dualObj := 0.0
	scale := lambda / dualScale
	for i, r := range s.Residual {
		dualObj -= negEntropy(prob.Y[i] - scale*r)
	}

	return s.PrimalObj - dualObj, dualScale
}

// screenFeatures applies the gap-safe sphere test to every enabled
// feature, zeroing and disabling those certified inactive.
func (k CDKernel) screenFeatures(prob *Problem, s *State, active *ActiveSet, lambda, gap, dualScale float64) {
	r := math.Sqrt(gap/2) / lambda
	for j := range prob.Cols {
		if active.Disabled[j] {
			continue
		}
		if math.Abs(s.XTR[j])/dualScale+r*prob.ColNorms[j] < 1 {
			if s.Beta[j] != 0 {
				s.setCoefficient(prob, j, 0)
			}
			active.Disable(j)
		}
	}
}

// coordinatePass runs one cycle of proximal updates over the enabled
// features.
func (k CDKernel) coordinatePass(prob *Problem, s *State, active *ActiveSet, lambda float64) {
	for j, col := range prob.Cols {
		if active.Disabled[j] {
			continue
		}
		lj := prob.SqColNorms[j] / 4
		if lj == 0 {
			// A zero column can never enter the model.
			continue
		}
		grad := floats.Dot(col, s.Residual)
		old := s.Beta[j]
		next := softThreshold(old+grad/lj, lambda/lj)
		if next != old {
			s.setCoefficient(prob, j, next)
		}
	}
}

// negEntropy is x*log x + (1-x)*log(1-x), extended by continuity to 0 at
// the endpoints. Feasible dual points keep the argument inside [0, 1];
// the clamp only absorbs floating-point spill.
func negEntropy(x float64) float64 {
	if x <= 0 || x >= 1 {
		return 0
	}
	return x*math.Log(x) + (1-x)*math.Log(1-x)
}

func softThreshold(x, t float64) float64 {
	if x > t {
		return x - t
	}
	if x < -t {
		return x + t
	}
	return 0
}
