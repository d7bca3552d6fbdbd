// Package log defines standard attribute keys for solver operations.
//
// This file contains predefined attribute keys that provide consistency
// across all logging operations in gapsafe. Using these standard keys
// enables better log analysis, monitoring, and debugging of regularization
// path solves.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Solver Progress
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g. "model.name",
// "solver.gap") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the model type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of estimator.
	// Examples: "LogisticLasso", "StandardScaler"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific model instance.
	// This is useful for tracking multiple instances of the same model type.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "path", "lambda_grid"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "logreg", "sgl", "preprocessing", "metrics"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	// Examples: "training", "inference", "validation", "preprocessing"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	// Important for dimensionality tracking and debugging shape mismatches.
	FeaturesKey = "data.features"

	// GroupsKey indicates the number of feature groups for group-structured
	// penalties.
	GroupsKey = "data.groups"

	// DataTypeKey specifies the type of data being processed.
	// Examples: "float64", "int32", "categorical"
	DataTypeKey = "data.type"
)

// Solver Progress
// These attributes trace a regularization path solve from the outermost
// penalty loop down to individual coordinate descent passes.
const (
	// LambdaKey records the regularization strength currently being solved.
	LambdaKey = "solver.lambda"

	// LambdaIndexKey records the position of the current penalty on the grid.
	LambdaIndexKey = "solver.lambda_index"

	// NLambdasKey records the total number of penalties on the grid.
	NLambdasKey = "solver.n_lambdas"

	// DualGapKey records the duality gap at the last convergence check.
	// The solve stops once the gap drops below the tolerance.
	DualGapKey = "solver.gap"

	// ToleranceKey records the duality gap tolerance for the solve.
	ToleranceKey = "solver.tol"

	// PassesKey records the number of full coordinate descent passes performed.
	PassesKey = "solver.passes"

	// ActiveFeaturesKey records the number of features still in the problem
	// after screening.
	ActiveFeaturesKey = "solver.active_features"

	// ScreenedOutKey records the number of features eliminated by safe
	// screening so far.
	ScreenedOutKey = "solver.screened_out"

	// ScreeningPolicyKey records which screening rule the solver runs with.
	// Examples: "none", "sequential", "sequential+dynamic"
	ScreeningPolicyKey = "solver.screening"

	// WarmStartKey reports whether the solve reused coefficients from the
	// previous penalty.
	WarmStartKey = "solver.warm_start"
)

// Performance Metrics
// These attributes capture timing, accuracy, and convergence information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// DurationSecondsKey records the execution time in seconds for longer operations.
	// Useful for full path solves over large grids.
	DurationSecondsKey = "perf.duration_seconds"

	// AccuracyKey records classification accuracy for evaluation operations.
	// Range typically [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// LossKey records loss value during training or evaluation.
	// Lower values typically indicate better model performance.
	LossKey = "metrics.loss"

	// IterationKey records the current iteration number during iterative processes.
	// Useful for tracking convergence in iterative algorithms.
	IterationKey = "training.iteration"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "CONVERGENCE_FAILURE"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValidationError", "ConvergenceWarning", "DimensionError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "Check input data shape", "Increase max_iter"
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
// These attributes capture model configuration and hyperparameters.
const (
	// RegularizationKey records the regularization strength for penalized models.
	RegularizationKey = "hyperparams.regularization"

	// EpsKey records the duality gap accuracy parameter of a path solve.
	EpsKey = "hyperparams.eps"

	// MaxIterKey records the iteration budget per penalty.
	MaxIterKey = "hyperparams.max_iter"

	// TauKey records the sparse-group-lasso mixing parameter.
	// tau=1 is the pure lasso, tau=0 the pure group lasso.
	TauKey = "hyperparams.tau"

	// RandomSeedKey records the random seed for reproducibility.
	// Essential for debugging and ensuring reproducible results.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard operations
	OperationFit        = "fit"
	OperationPredict    = "predict"
	OperationTransform  = "transform"
	OperationScore      = "score"
	OperationPath       = "path"
	OperationLambdaGrid = "lambda_grid"

	// Standard phases
	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	// Standard error codes
	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
)
