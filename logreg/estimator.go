package logreg

import (
	"bytes"
	"encoding/gob"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gapsafe/core/model"
	"github.com/YuminosukeSato/gapsafe/metrics"
	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
	"github.com/YuminosukeSato/gapsafe/pkg/log"
)

// LogisticLasso is a binary classifier backed by the gap-safe path
// solver. Fit computes the whole regularization path; predictions use
// the final (weakest) penalty's coefficients, and the full path stays
// available through Coefs, Gaps and ActiveCounts.
type LogisticLasso struct {
	state *model.StateManager

	// Hyperparameters
	lambdas         []float64 // explicit grid; nil selects the automatic one
	nLambdas        int
	delta           float64
	eps             float64
	maxIter         int
	screenFreq      int
	policy          Policy
	strongWarmStart bool
	gapWarmStart    bool
	logger          log.Logger

	// Learned state
	path      *PathResult
	coefs     []float64
	classes   []float64
	nFeatures int
}

// Interface conformance.
var (
	_ model.Classifier      = (*LogisticLasso)(nil)
	_ model.LinearModel     = (*LogisticLasso)(nil)
	_ model.Persistable     = (*LogisticLasso)(nil)
	_ model.WeightExporter  = (*LogisticLasso)(nil)
	_ model.ParameterGetter = (*LogisticLasso)(nil)
	_ model.ParameterSetter = (*LogisticLasso)(nil)
)

// LassoOption is a functional option for LogisticLasso.
type LassoOption func(*LogisticLasso)

// NewLogisticLasso creates a LogisticLasso classifier.
func NewLogisticLasso(opts ...LassoOption) *LogisticLasso {
	ll := &LogisticLasso{
		state:      model.NewStateManager(),
		nLambdas:   10,
		delta:      3,
		eps:        1e-4,
		maxIter:    3000,
		screenFreq: 10,
		policy:     SequentialAndDynamicSafe,
	}
	for _, opt := range opts {
		opt(ll)
	}
	return ll
}

// WithLassoLambdas sets an explicit penalty grid, overriding the
// automatic one. The slice is copied.
func WithLassoLambdas(lambdas []float64) LassoOption {
	return func(ll *LogisticLasso) {
		ll.lambdas = append([]float64(nil), lambdas...)
	}
}

// WithLassoNLambdas sets the size of the automatic grid (default 10).
func WithLassoNLambdas(n int) LassoOption {
	return func(ll *LogisticLasso) {
		ll.nLambdas = n
	}
}

// WithLassoDelta sets how many decades below lambdaMax the automatic
// grid reaches (default 3).
func WithLassoDelta(delta float64) LassoOption {
	return func(ll *LogisticLasso) {
		ll.delta = delta
	}
}

// WithLassoEps sets the duality-gap accuracy (default 1e-4).
func WithLassoEps(eps float64) LassoOption {
	return func(ll *LogisticLasso) {
		ll.eps = eps
	}
}

// WithLassoMaxIter caps coordinate passes per penalty (default 3000).
func WithLassoMaxIter(maxIter int) LassoOption {
	return func(ll *LogisticLasso) {
		ll.maxIter = maxIter
	}
}

// WithLassoScreenFreq sets the gap-evaluation frequency (default 10).
func WithLassoScreenFreq(f int) LassoOption {
	return func(ll *LogisticLasso) {
		ll.screenFreq = f
	}
}

// WithLassoScreening selects the safe-screening policy
// (default SequentialAndDynamicSafe).
func WithLassoScreening(policy Policy) LassoOption {
	return func(ll *LogisticLasso) {
		ll.policy = policy
	}
}

// WithLassoStrongWarmStart toggles the strong-rule active warm start.
func WithLassoStrongWarmStart(enabled bool) LassoOption {
	return func(ll *LogisticLasso) {
		ll.strongWarmStart = enabled
	}
}

// WithLassoGapWarmStart toggles the gap-based active warm start.
func WithLassoGapWarmStart(enabled bool) LassoOption {
	return func(ll *LogisticLasso) {
		ll.gapWarmStart = enabled
	}
}

// WithLassoLogger routes solver progress to the given logger.
func WithLassoLogger(l log.Logger) LassoOption {
	return func(ll *LogisticLasso) {
		ll.logger = l
	}
}

// Fit computes the regularization path for the given training data.
// y must be an n x 1 matrix with exactly two distinct label values;
// labels other than {0, 1} are coerced (the smaller value becomes the
// negative class) with a DataConversionWarning.
func (ll *LogisticLasso) Fit(X, y mat.Matrix) (err error) {
	defer gserrors.Recover(&err, "LogisticLasso.Fit")

	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return gserrors.NewModelError("LogisticLasso.Fit", "empty data", gserrors.ErrEmptyData)
	}
	if yRows != nSamples {
		return gserrors.NewDimensionError("LogisticLasso.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return gserrors.NewValueError("LogisticLasso.Fit", "y must be a column vector")
	}
	if ll.lambdas == nil && ll.nLambdas < 1 {
		return gserrors.NewValidationError("nLambdas", "must be at least 1", ll.nLambdas)
	}
	if ll.lambdas == nil && ll.delta <= 0 {
		return gserrors.NewValidationError("delta", "must be positive", ll.delta)
	}

	classes, y01, err := encodeLabels(y, nSamples)
	if err != nil {
		return err
	}

	prob, err := NewProblem(X, y01)
	if err != nil {
		return err
	}

	lambdas := ll.lambdas
	if lambdas == nil {
		lambdas = penaltyGrid(prob.lambdaMax(), ll.nLambdas, ll.delta)
	}

	cfg := defaultPathConfig()
	cfg.eps = ll.eps
	cfg.maxIter = ll.maxIter
	cfg.screenFreq = ll.screenFreq
	cfg.policy = ll.policy
	cfg.strongWarmStart = ll.strongWarmStart
	cfg.gapWarmStart = ll.gapWarmStart
	cfg.logger = ll.logger

	res, err := solvePath(prob, lambdas, cfg)
	if err != nil {
		return err
	}

	final := res.Coefs[len(res.Coefs)-1]
	if err := gserrors.CheckNumericalStability("LogisticLasso.Fit", final, res.NIters[len(res.NIters)-1]); err != nil {
		return err
	}

	ll.path = res
	ll.coefs = final
	ll.classes = classes
	ll.nFeatures = nFeatures
	ll.state.SetDimensions(nFeatures, nSamples)
	ll.state.SetFitted()
	return nil
}

// encodeLabels maps the two distinct values of y onto {0, 1} in sorted
// order and reports the mapping.
func encodeLabels(y mat.Matrix, n int) (classes, y01 []float64, err error) {
	seen := make(map[float64]struct{}, 2)
	raw := make([]float64, n)
	for i := 0; i < n; i++ {
		v := y.At(i, 0)
		raw[i] = v
		seen[v] = struct{}{}
		if len(seen) > 2 {
			return nil, nil, gserrors.NewValueError("LogisticLasso.Fit",
				"only binary classification is supported")
		}
	}
	if len(seen) < 2 {
		return nil, nil, gserrors.NewValueError("LogisticLasso.Fit",
			"training data must contain two classes")
	}

	classes = make([]float64, 0, 2)
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Float64s(classes)

	if classes[0] != 0 || classes[1] != 1 {
		gserrors.Warn(gserrors.NewDataConversionWarning(
			"labels", "{0, 1}", "binary targets are coerced for the logistic loss"))
	}

	y01 = make([]float64, n)
	for i, v := range raw {
		if v == classes[1] {
			y01[i] = 1
		}
	}
	return classes, y01, nil
}

// penaltyGrid builds the automatic geometric grid from lambdaMax down
// delta decades.
func penaltyGrid(lambdaMax float64, nLambdas int, delta float64) []float64 {
	if nLambdas == 1 {
		return []float64{lambdaMax}
	}
	grid := make([]float64, nLambdas)
	for i := range grid {
		grid[i] = lambdaMax * math.Pow(10, -delta*float64(i)/float64(nLambdas-1))
	}
	return grid
}

// IsFitted reports whether Fit has completed successfully.
func (ll *LogisticLasso) IsFitted() bool {
	return ll.state.IsFitted()
}

// PredictProba returns an n x 2 matrix of class probabilities, columns
// ordered as Classes().
func (ll *LogisticLasso) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !ll.state.IsFitted() {
		return nil, gserrors.NewNotFittedError("LogisticLasso", "PredictProba")
	}
	n, p := X.Dims()
	if p != ll.nFeatures {
		return nil, gserrors.NewDimensionError("LogisticLasso.PredictProba", ll.nFeatures, p, 1)
	}

	probas := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		z := 0.0
		for j := 0; j < p; j++ {
			z += X.At(i, j) * ll.coefs[j]
		}
		p1 := sigmoid(z)
		probas.Set(i, 0, 1-p1)
		probas.Set(i, 1, p1)
	}
	return probas, nil
}

// Predict returns an n x 1 matrix of predicted labels in the original
// label alphabet.
func (ll *LogisticLasso) Predict(X mat.Matrix) (mat.Matrix, error) {
	probas, err := ll.PredictProba(X)
	if err != nil {
		return nil, err
	}
	n, _ := probas.Dims()
	preds := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		if probas.At(i, 1) >= 0.5 {
			preds.Set(i, 0, ll.classes[1])
		} else {
			preds.Set(i, 0, ll.classes[0])
		}
	}
	return preds, nil
}

// Score returns the mean accuracy on the given test data and labels.
func (ll *LogisticLasso) Score(X, y mat.Matrix) (float64, error) {
	preds, err := ll.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, preds)
}

// Classes returns the class labels in the order used by PredictProba.
func (ll *LogisticLasso) Classes() []float64 {
	return append([]float64(nil), ll.classes...)
}

// Weights returns the coefficients of the final (weakest) penalty.
func (ll *LogisticLasso) Weights() []float64 {
	return append([]float64(nil), ll.coefs...)
}

// Intercept returns 0: the path solver fits no intercept term.
func (ll *LogisticLasso) Intercept() float64 {
	return 0
}

// Path returns the full path result, or nil before Fit.
func (ll *LogisticLasso) Path() *PathResult {
	return ll.path
}

// Lambdas returns the penalty grid of the fitted path.
func (ll *LogisticLasso) Lambdas() []float64 {
	if ll.path == nil {
		return nil
	}
	return ll.path.Lambdas
}

// Coefs returns one coefficient vector per penalty.
func (ll *LogisticLasso) Coefs() [][]float64 {
	if ll.path == nil {
		return nil
	}
	return ll.path.Coefs
}

// Gaps returns the final duality gap per penalty.
func (ll *LogisticLasso) Gaps() []float64 {
	if ll.path == nil {
		return nil
	}
	return ll.path.Gaps
}

// ActiveCounts returns the surviving feature count per penalty.
func (ll *LogisticLasso) ActiveCounts() []int {
	if ll.path == nil {
		return nil
	}
	return ll.path.NActive
}

// ExportWeights exports the final coefficients in the portable format.
func (ll *LogisticLasso) ExportWeights() (*model.ModelWeights, error) {
	if !ll.state.IsFitted() {
		return nil, gserrors.NewNotFittedError("LogisticLasso", "ExportWeights")
	}
	hyper := map[string]interface{}{
		"eps":         ll.eps,
		"max_iter":    ll.maxIter,
		"screen_freq": ll.screenFreq,
		"screening":   ll.policy.String(),
	}
	if ll.path != nil {
		grid := ll.path.Lambdas
		hyper["n_lambdas"] = len(grid)
		hyper["lambda"] = grid[len(grid)-1]
	}
	return &model.ModelWeights{
		ModelType:       "LogisticLasso",
		Version:         "1.0",
		Coefficients:    append([]float64(nil), ll.coefs...),
		Intercept:       0,
		Hyperparameters: hyper,
		Metadata: map[string]interface{}{
			"n_features": ll.nFeatures,
			"classes":    ll.Classes(),
		},
		IsFitted: true,
	}, nil
}

// ImportWeights restores previously exported coefficients. Only the
// final model is restored, not the path; targets are assumed {0, 1}.
func (ll *LogisticLasso) ImportWeights(w *model.ModelWeights) error {
	if w == nil {
		return gserrors.NewValueError("LogisticLasso.ImportWeights", "weights must not be nil")
	}
	if err := w.Validate(); err != nil {
		return gserrors.Wrap(err, "LogisticLasso.ImportWeights")
	}
	if w.ModelType != "LogisticLasso" {
		return gserrors.NewValueError("LogisticLasso.ImportWeights",
			"weights were exported from a different model type")
	}

	ll.coefs = append([]float64(nil), w.Coefficients...)
	ll.classes = []float64{0, 1}
	ll.nFeatures = len(w.Coefficients)
	ll.path = nil
	ll.state.SetDimensions(ll.nFeatures, 0)
	ll.state.SetFitted()
	return nil
}

// Save writes the model to a file in gob format.
func (ll *LogisticLasso) Save(path string) error {
	return model.SaveModel(ll, path)
}

// Load restores a model written by Save.
func (ll *LogisticLasso) Load(path string) error {
	return model.LoadModel(ll, path)
}

// lassoSnapshot is the gob wire form of a LogisticLasso.
type lassoSnapshot struct {
	Lambdas         []float64
	NLambdas        int
	Delta           float64
	Eps             float64
	MaxIter         int
	ScreenFreq      int
	Policy          int
	StrongWarmStart bool
	GapWarmStart    bool
	Path            *PathResult
	Coefs           []float64
	Classes         []float64
	NFeatures       int
	Fitted          bool
}

// GobEncode implements gob.GobEncoder.
func (ll *LogisticLasso) GobEncode() ([]byte, error) {
	snap := lassoSnapshot{
		Lambdas:         ll.lambdas,
		NLambdas:        ll.nLambdas,
		Delta:           ll.delta,
		Eps:             ll.eps,
		MaxIter:         ll.maxIter,
		ScreenFreq:      ll.screenFreq,
		Policy:          int(ll.policy),
		StrongWarmStart: ll.strongWarmStart,
		GapWarmStart:    ll.gapWarmStart,
		Path:            ll.path,
		Coefs:           ll.coefs,
		Classes:         ll.classes,
		NFeatures:       ll.nFeatures,
		Fitted:          ll.state != nil && ll.state.IsFitted(),
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (ll *LogisticLasso) GobDecode(data []byte) error {
	var snap lassoSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return err
	}

	ll.lambdas = snap.Lambdas
	ll.nLambdas = snap.NLambdas
	ll.delta = snap.Delta
	ll.eps = snap.Eps
	ll.maxIter = snap.MaxIter
	ll.screenFreq = snap.ScreenFreq
	ll.policy = Policy(snap.Policy)
	ll.strongWarmStart = snap.StrongWarmStart
	ll.gapWarmStart = snap.GapWarmStart
	ll.path = snap.Path
	ll.coefs = snap.Coefs
	ll.classes = snap.Classes
	ll.nFeatures = snap.NFeatures

	if ll.state == nil {
		ll.state = model.NewStateManager()
	}
	if snap.Fitted {
		ll.state.SetDimensions(snap.NFeatures, 0)
		ll.state.SetFitted()
	} else {
		ll.state.Reset()
	}
	return nil
}

// GetParams returns the model hyperparameters.
func (ll *LogisticLasso) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"lambdas":           append([]float64(nil), ll.lambdas...),
		"n_lambdas":         ll.nLambdas,
		"delta":             ll.delta,
		"eps":               ll.eps,
		"max_iter":          ll.maxIter,
		"screen_freq":       ll.screenFreq,
		"screening":         ll.policy,
		"strong_warm_start": ll.strongWarmStart,
		"gap_warm_start":    ll.gapWarmStart,
	}
}

// SetParams sets model hyperparameters by name.
func (ll *LogisticLasso) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		ok := true
		switch key {
		case "lambdas":
			var v []float64
			if v, ok = value.([]float64); ok {
				ll.lambdas = append([]float64(nil), v...)
			}
		case "n_lambdas":
			var v int
			if v, ok = value.(int); ok {
				ll.nLambdas = v
			}
		case "delta":
			var v float64
			if v, ok = value.(float64); ok {
				ll.delta = v
			}
		case "eps":
			var v float64
			if v, ok = value.(float64); ok {
				ll.eps = v
			}
		case "max_iter":
			var v int
			if v, ok = value.(int); ok {
				ll.maxIter = v
			}
		case "screen_freq":
			var v int
			if v, ok = value.(int); ok {
				ll.screenFreq = v
			}
		case "screening":
			var v Policy
			if v, ok = value.(Policy); ok {
				ll.policy = v
			}
		case "strong_warm_start":
			var v bool
			if v, ok = value.(bool); ok {
				ll.strongWarmStart = v
			}
		case "gap_warm_start":
			var v bool
			if v, ok = value.(bool); ok {
				ll.gapWarmStart = v
			}
		default:
			return gserrors.NewValidationError(key, "unknown parameter", value)
		}
		if !ok {
			return gserrors.NewValidationError(key, "unexpected value type", value)
		}
	}
	return nil
}

// sigmoid is the logistic link.
func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
