// Package sgl provides the penalty-grid machinery for the sparse-group
// lasso: the epsilon-norm root finder and the construction of a
// data-dependent sequence of regularization strengths starting at the
// smallest penalty with an all-zero solution.
//
// The method follows Ndiaye, Fercoq, Gramfort and Salmon,
// "GAP Safe Screening Rules for Sparse-Group Lasso"
// (https://arxiv.org/abs/1602.06225).
package sgl

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// EpsilonNorm computes the unique non-negative root z of
//
//	norm2(ST(x, alpha*z)) = R*z
//
// where ST(x, t) = sign(x) * max(|x|-t, 0) is element-wise
// soft-thresholding. With alpha = 1-eps and R = eps this is the
// epsilon-norm, which interpolates between the infinity norm (eps -> 0)
// and the L2 norm scaled by 1/eps (eps -> 1).
//
// Special cases: alpha = 0 with R != 0 degenerates to norm2(x)/R, and
// R = 0 degenerates to normInf(x)/alpha. The zero vector has norm 0 for
// every parameter choice.
//
// The general case sorts the candidate magnitudes once and scans prefix
// sums until the breakpoint bracketing R^2/alpha^2 is found, then solves
// the resulting quadratic in closed form. No iteration budget is needed.
func EpsilonNorm(x []float64, alpha, R float64) float64 {
	if alpha == 0 && R != 0 {
		return floats.Norm(x, 2) / R
	}

	normInf := floats.Norm(x, math.Inf(1))
	if normInf == 0 {
		return 0
	}

	// j0 = 0 iff R = 0, which in practice means alpha = 1.
	if R == 0 {
		return normInf / alpha
	}

	// Only entries above this threshold can be left nonzero by the
	// soft-thresholding at the root.
	threshold := alpha * normInf / (alpha + R)
	zx := make([]float64, 0, len(x))
	for _, v := range x {
		if math.Abs(v) > threshold {
			zx = append(zx, math.Abs(v))
		}
	}
	nInf := len(zx)

	if nInf == 1 {
		return zx[0]
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(zx)))

	R2 := R * R
	alpha2 := alpha * alpha
	R2OnAlpha2 := R2 / alpha2

	var aK, s, s2 float64
	j0 := nInf
	found := false
	for k := 0; k < nInf-1; k++ {
		s += zx[k]
		s2 += zx[k] * zx[k]
		bK := s2/(zx[k+1]*zx[k+1]) - 2*s/zx[k+1] + float64(k+1)
		if aK <= R2OnAlpha2 && R2OnAlpha2 < bK {
			j0 = k + 1
			found = true
			break
		}
		aK = bK
	}
	if !found {
		// Every prefix bound stayed below the target: the root keeps all
		// candidate entries active.
		s += zx[nInf-1]
		s2 += zx[nInf-1] * zx[nInf-1]
	}

	alphaS := alpha * s
	j0Alpha2R2 := float64(j0)*alpha2 - R2

	if j0Alpha2R2 == 0 {
		// The quadratic degenerates to a linear equation.
		return s2 / (2 * alphaS)
	}

	delta := alphaS*alphaS - s2*j0Alpha2R2
	return (alphaS - math.Sqrt(delta)) / j0Alpha2R2
}

// SoftThreshold applies scalar soft-thresholding at level t:
// sign(x) * max(|x|-t, 0).
func SoftThreshold(x, t float64) float64 {
	if x > t {
		return x - t
	}
	if x < -t {
		return x + t
	}
	return 0
}
