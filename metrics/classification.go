// Package metrics provides evaluation metrics for the classifiers in
// this module.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
)

// probaClip bounds predicted probabilities away from {0, 1} so the log
// loss stays finite.
const probaClip = 1e-15

// Accuracy computes the fraction of exactly matching labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validatePair("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyMatrix computes Accuracy on the first column of matrix inputs.
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tVec, err := firstColumn("AccuracyMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pVec, err := firstColumn("AccuracyMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(tVec, pVec)
}

// ClassificationError computes the fraction of mismatching labels,
// 1 - Accuracy.
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// BinaryLogLoss computes the binary cross-entropy between {0, 1} targets
// and predicted positive-class probabilities. Probabilities are clipped
// to [probaClip, 1-probaClip] before taking logs.
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validatePair("BinaryLogLoss", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	total := 0.0
	for i := 0; i < n; i++ {
		y := yTrue.AtVec(i)
		if y != 0 && y != 1 {
			return 0, gserrors.NewValidationError("yTrue", "targets must be 0 or 1", y)
		}
		p := gserrors.ClipValue(yPred.AtVec(i), probaClip, 1-probaClip)
		if y == 1 {
			total -= math.Log(p)
		} else {
			total -= math.Log(1 - p)
		}
	}
	return total / float64(n), nil
}

// BinaryLogLossMatrix computes BinaryLogLoss on the first column of
// matrix inputs.
func BinaryLogLossMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tVec, err := firstColumn("BinaryLogLossMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pVec, err := firstColumn("BinaryLogLossMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return BinaryLogLoss(tVec, pVec)
}

// AUC computes the area under the ROC curve for {0, 1} targets and
// real-valued scores. Ties contribute half. A single-class target leaves
// the area undefined and yields 0.5, the value of an uninformative
// classifier.
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validatePair("AUC", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	nPos := 0
	for i := 0; i < n; i++ {
		switch yTrue.AtVec(i) {
		case 1:
			nPos++
		case 0:
		default:
			return 0, gserrors.NewValidationError("yTrue", "targets must be 0 or 1", yTrue.AtVec(i))
		}
	}
	nNeg := n - nPos
	if nPos == 0 || nNeg == 0 {
		return 0.5, nil
	}

	// Pairwise comparison: the AUC is the probability that a random
	// positive outranks a random negative.
	wins := 0.0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != 1 {
			continue
		}
		for j := 0; j < n; j++ {
			if yTrue.AtVec(j) != 0 {
				continue
			}
			switch {
			case yPred.AtVec(i) > yPred.AtVec(j):
				wins++
			case yPred.AtVec(i) == yPred.AtVec(j):
				wins += 0.5
			}
		}
	}
	return wins / float64(nPos*nNeg), nil
}

// AUCMatrix computes AUC on the first column of matrix inputs.
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tVec, err := firstColumn("AUCMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pVec, err := firstColumn("AUCMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return AUC(tVec, pVec)
}

// validatePair rejects nil, empty and length-mismatched vectors.
func validatePair(op string, yTrue, yPred *mat.VecDense) error {
	if yTrue == nil || yPred == nil {
		return gserrors.NewValueError(op, "nil vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return gserrors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return gserrors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return nil
}

// firstColumn copies the first column of m into a VecDense.
func firstColumn(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, gserrors.NewValueError(op, "nil matrix")
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, gserrors.NewValueError(op, "empty matrix")
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}
