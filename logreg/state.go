package logreg

import (
	"math"

	"gonum.org/v1/gonum/floats"

	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
)

// State is the mutable iterate threaded across penalty steps. The path
// driver owns it exclusively and hands it to the kernel for in-place
// refinement; warm starting depends on the buffers surviving between
// penalties, so nothing else may mutate them.
type State struct {
	// Beta holds the coefficients (length p).
	Beta []float64

	// Xbeta caches the linear predictor X*Beta (length n).
	Xbeta []float64

	// ExpXbeta caches exp(Xbeta); +Inf entries mark overflow and are
	// handled by the objective and link evaluations.
	ExpXbeta []float64

	// Residual caches y - sigmoid(Xbeta) (length n).
	Residual []float64

	// XTR caches the gradient correlations X^T * Residual (length p).
	// Entries of screened-out features go stale until the feature is
	// re-enabled; only enabled entries are refreshed during a solve.
	XTR []float64

	// Norm1Beta is ||Beta||_1, maintained incrementally.
	Norm1Beta float64

	// PrimalObj is the penalized negative log-likelihood at Beta for the
	// penalty of the most recent objective evaluation.
	PrimalObj float64

	// DualScale is the normalization that turns Residual into a feasible
	// dual point; updated by each definitive solve.
	DualScale float64
}

// NewState builds the iterate for a path starting at penalty lambda0.
// A nil beta starts from the all-zero solution, whose objective, residual
// and predictor caches have closed forms; otherwise every cache is
// computed from the supplied coefficients.
func NewState(prob *Problem, beta []float64, lambda0 float64) (*State, error) {
	n, p := prob.NSamples, prob.NFeatures

	s := &State{
		Beta:      make([]float64, p),
		Xbeta:     make([]float64, n),
		ExpXbeta:  make([]float64, n),
		Residual:  make([]float64, n),
		XTR:       make([]float64, p),
		DualScale: lambda0,
	}

	if beta == nil {
		for i := range s.ExpXbeta {
			s.ExpXbeta[i] = 1
			s.Residual[i] = prob.Y[i] - 0.5
		}
		s.PrimalObj = float64(n) * math.Ln2
	} else {
		if len(beta) != p {
			return nil, gserrors.NewDimensionError("NewState", p, len(beta), 0)
		}
		copy(s.Beta, beta)
		s.Norm1Beta = floats.Norm(s.Beta, 1)

		for j, bj := range s.Beta {
			if bj == 0 {
				continue
			}
			floats.AddScaled(s.Xbeta, bj, prob.Cols[j])
		}
		for i, v := range s.Xbeta {
			e := math.Exp(v)
			s.ExpXbeta[i] = e
			s.Residual[i] = prob.Y[i] - sigmoidFromExp(e)
		}
		s.PrimalObj = -floats.Dot(prob.Y, s.Xbeta) + logisticLogTerm(s.Xbeta, s.ExpXbeta) + lambda0*s.Norm1Beta
	}

	for j := 0; j < p; j++ {
		s.XTR[j] = floats.Dot(prob.Cols[j], s.Residual)
	}

	return s, nil
}

// setCoefficient moves Beta[j] to next and keeps the predictor, link and
// residual caches consistent in one sweep over the samples.
func (s *State) setCoefficient(prob *Problem, j int, next float64) {
	old := s.Beta[j]
	if next == old {
		return
	}
	delta := next - old
	col := prob.Cols[j]
	for i, v := range col {
		s.Xbeta[i] += delta * v
		e := math.Exp(s.Xbeta[i])
		s.ExpXbeta[i] = e
		s.Residual[i] = prob.Y[i] - sigmoidFromExp(e)
	}
	s.Norm1Beta += math.Abs(next) - math.Abs(old)
	s.Beta[j] = next
}

// sigmoidFromExp evaluates the logistic link from a cached exp(z),
// saturating to 1 when the cache overflowed.
func sigmoidFromExp(e float64) float64 {
	if math.IsInf(e, 1) {
		return 1
	}
	return e / (1 + e)
}

// logisticLogTerm sums log(1+exp(z_i)) using the exp cache, falling back
// to the asymptote z_i where the cache overflowed.
func logisticLogTerm(xbeta, expXbeta []float64) float64 {
	total := 0.0
	for i, e := range expXbeta {
		if math.IsInf(e, 1) {
			total += xbeta[i]
		} else {
			total += math.Log1p(e)
		}
	}
	return total
}

// ActiveSet tracks which features are provisionally excluded from a
// solve. Disabled features are never inspected by the kernel's
// arithmetic loops.
type ActiveSet struct {
	Disabled []bool
	NActive  int
}

// NewActiveSet returns a fully enabled set over p features.
func NewActiveSet(p int) *ActiveSet {
	return &ActiveSet{
		Disabled: make([]bool, p),
		NActive:  p,
	}
}

// Reset re-enables every feature.
func (a *ActiveSet) Reset() {
	for j := range a.Disabled {
		a.Disabled[j] = false
	}
	a.NActive = len(a.Disabled)
}

// Disable marks feature j excluded.
func (a *ActiveSet) Disable(j int) {
	if !a.Disabled[j] {
		a.Disabled[j] = true
		a.NActive--
	}
}
