package sgl

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
)

// GroupLayout partitions the feature range [0, p) into contiguous,
// non-overlapping groups covering every feature exactly once.
type GroupLayout struct {
	// Starts holds the first feature index of each group.
	Starts []int
	// Sizes holds the number of features in each group.
	Sizes []int
}

// NewContiguousGroups builds a GroupLayout from group sizes laid out back
// to back starting at feature 0.
func NewContiguousGroups(sizes []int) (GroupLayout, error) {
	if len(sizes) == 0 {
		return GroupLayout{}, gserrors.NewValueError("NewContiguousGroups", "at least one group is required")
	}

	starts := make([]int, len(sizes))
	offset := 0
	for i, size := range sizes {
		if size <= 0 {
			return GroupLayout{}, gserrors.NewValidationError("sizes", "group sizes must be positive", size)
		}
		starts[i] = offset
		offset += size
	}

	layout := GroupLayout{
		Starts: starts,
		Sizes:  append([]int(nil), sizes...),
	}
	return layout, nil
}

// NGroups returns the number of groups.
func (g GroupLayout) NGroups() int {
	return len(g.Sizes)
}

// TotalFeatures returns the number of features the layout covers.
func (g GroupLayout) TotalFeatures() int {
	total := 0
	for _, size := range g.Sizes {
		total += size
	}
	return total
}

// Validate checks that the layout is a contiguous partition of [0, p).
func (g GroupLayout) Validate(p int) error {
	if len(g.Starts) != len(g.Sizes) {
		return gserrors.NewDimensionError("GroupLayout.Validate", len(g.Sizes), len(g.Starts), 1)
	}
	if len(g.Sizes) == 0 {
		return gserrors.NewValueError("GroupLayout.Validate", "layout has no groups")
	}

	offset := 0
	for i, size := range g.Sizes {
		if size <= 0 {
			return gserrors.NewValidationError("sizes", "group sizes must be positive", size)
		}
		if g.Starts[i] != offset {
			return gserrors.NewValueError("GroupLayout.Validate", "groups must be contiguous and non-overlapping")
		}
		offset += size
	}
	if offset != p {
		return gserrors.NewDimensionError("GroupLayout.Validate", p, offset, 1)
	}
	return nil
}

// SqrtGroupSizes returns the conventional group weights omega_g =
// sqrt(|g|), the default choice for the sparse-group lasso penalty.
func SqrtGroupSizes(layout GroupLayout) []float64 {
	omega := make([]float64, layout.NGroups())
	for i, size := range layout.Sizes {
		omega[i] = math.Sqrt(float64(size))
	}
	return omega
}

// BuildLambdas computes a geometrically decreasing grid of sparse-group
// lasso penalties. The first grid entry is lambdaMax, the smallest penalty
// whose solution is identically zero, obtained by maximizing a per-group
// epsilon-norm of the group's correlation with the target. It returns the
// grid and the index of the group attaining the maximum.
//
// omega holds one mixing weight per group (SqrtGroupSizes gives the usual
// choice), tau in [0, 1] blends the per-feature L1 penalty (tau=1) with
// the group-L2 penalty (tau=0), and delta sets the decay: the last grid
// entry is lambdaMax * 10^-delta.
func BuildLambdas(X mat.Matrix, y []float64, omega []float64, layout GroupLayout, nLambdas int, delta, tau float64) ([]float64, int, error) {
	n, p := X.Dims()

	if n == 0 || p == 0 {
		return nil, 0, gserrors.NewModelError("BuildLambdas", "empty data", gserrors.ErrEmptyData)
	}
	if len(y) != n {
		return nil, 0, gserrors.NewDimensionError("BuildLambdas", n, len(y), 0)
	}
	if err := layout.Validate(p); err != nil {
		return nil, 0, err
	}
	if len(omega) != layout.NGroups() {
		return nil, 0, gserrors.NewDimensionError("BuildLambdas", layout.NGroups(), len(omega), 1)
	}
	if nLambdas < 1 {
		return nil, 0, gserrors.NewValidationError("nLambdas", "must be at least 1", nLambdas)
	}
	if delta <= 0 {
		return nil, 0, gserrors.NewValidationError("delta", "must be positive", delta)
	}
	if tau < 0 || tau > 1 {
		return nil, 0, gserrors.NewValidationError("tau", "must be in [0, 1]", tau)
	}
	for _, w := range omega {
		if w <= 0 {
			return nil, 0, gserrors.NewValidationError("omega", "group weights must be positive", w)
		}
	}

	col := make([]float64, n)
	nrm := make([]float64, layout.NGroups())
	for g := 0; g < layout.NGroups(); g++ {
		scale := tau + (1-tau)*omega[g]
		epsG := (1 - tau) * omega[g] / scale

		// Correlation of this group's features with the target.
		xty := make([]float64, layout.Sizes[g])
		for jj := 0; jj < layout.Sizes[g]; jj++ {
			mat.Col(col, layout.Starts[g]+jj, X)
			xty[jj] = floats.Dot(col, y)
		}

		nrm[g] = EpsilonNorm(xty, 1-epsG, epsG) / scale
	}

	imax := floats.MaxIdx(nrm)
	lambdaMax := nrm[imax]

	if nLambdas == 1 {
		return []float64{lambdaMax}, imax, nil
	}

	lambdas := make([]float64, nLambdas)
	for i := 0; i < nLambdas; i++ {
		lambdas[i] = lambdaMax * math.Pow(10, -delta*float64(i)/float64(nLambdas-1))
	}
	return lambdas, imax, nil
}
