package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gapsafe/datasets"
	"github.com/YuminosukeSato/gapsafe/logreg"
	"github.com/YuminosukeSato/gapsafe/preprocessing"
	"github.com/YuminosukeSato/gapsafe/viz"
)

var pathOpts struct {
	samples   int
	groups    int
	groupSize int
	rho       float64
	seed      int64

	nLambdas    int
	delta       float64
	eps         float64
	maxIter     int
	screening   string
	standardize bool

	plot string
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Solve a screened logistic lasso path on synthetic data",
	Long: `Generates a binary classification dataset, fits the full logistic
lasso path with the selected screening policy and prints one line per
penalty: the penalty value, the features surviving screening, the
coordinate passes spent and the final duality gap.`,
	Args: cobra.NoArgs,
	RunE: runPath,
}

func init() {
	f := pathCmd.Flags()
	f.IntVar(&pathOpts.samples, "samples", 500, "Number of samples")
	f.IntVar(&pathOpts.groups, "groups", 10, "Number of feature groups")
	f.IntVar(&pathOpts.groupSize, "group-size", 10, "Features per group")
	f.Float64Var(&pathOpts.rho, "rho", 0.5, "Correlation decay between adjacent features")
	f.Int64Var(&pathOpts.seed, "seed", 42, "Random seed")
	f.IntVar(&pathOpts.nLambdas, "n-lambdas", 10, "Number of penalties on the grid")
	f.Float64Var(&pathOpts.delta, "delta", 3, "Decades spanned below the largest penalty")
	f.Float64Var(&pathOpts.eps, "eps", 1e-4, "Duality gap accuracy")
	f.IntVar(&pathOpts.maxIter, "max-iter", 3000, "Coordinate passes per penalty")
	f.StringVar(&pathOpts.screening, "screening", "sequential+dynamic",
		"Screening policy: none, sequential or sequential+dynamic")
	f.BoolVar(&pathOpts.standardize, "standardize", false, "Center and scale features before fitting")
	f.StringVar(&pathOpts.plot, "plot", "", "Write a coefficient-path figure to this file")
}

func parsePolicy(s string) (logreg.Policy, error) {
	switch s {
	case "none":
		return logreg.NoScreening, nil
	case "sequential":
		return logreg.SequentialSafe, nil
	case "sequential+dynamic":
		return logreg.SequentialAndDynamicSafe, nil
	}
	return 0, fmt.Errorf("unknown screening policy %q", s)
}

func runPath(cmd *cobra.Command, args []string) error {
	policy, err := parsePolicy(pathOpts.screening)
	if err != nil {
		return err
	}

	ds, err := datasets.MakeClassification(datasets.Config{
		NSamples:   pathOpts.samples,
		GroupSizes: uniformGroups(pathOpts.groups, pathOpts.groupSize),
		Rho:        pathOpts.rho,
		Seed:       pathOpts.seed,
	})
	if err != nil {
		return err
	}
	y := mat.NewVecDense(len(ds.Y), ds.Y)

	X := mat.Matrix(ds.X)
	if pathOpts.standardize {
		X, err = preprocessing.NewStandardScalerDefault().FitTransform(X)
		if err != nil {
			return err
		}
	}

	clf := logreg.NewLogisticLasso(
		logreg.WithLassoNLambdas(pathOpts.nLambdas),
		logreg.WithLassoDelta(pathOpts.delta),
		logreg.WithLassoEps(pathOpts.eps),
		logreg.WithLassoMaxIter(pathOpts.maxIter),
		logreg.WithLassoScreening(policy),
		logreg.WithLassoGapWarmStart(true),
	)

	start := time.Now()
	if err := clf.Fit(X, y); err != nil {
		return err
	}
	elapsed := time.Since(start)

	score, err := clf.Score(X, y)
	if err != nil {
		return err
	}

	res := clf.Path()
	n, p := X.Dims()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "n=%d p=%d screening=%s accuracy=%.4f elapsed=%s\n\n",
		n, p, policy, score, elapsed.Round(time.Millisecond))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "lambda\tactive\tpasses\tgap\t")
	for t := range res.Lambdas {
		fmt.Fprintf(tw, "%.6g\t%d\t%d\t%.3e\t\n",
			res.Lambdas[t], res.NActive[t], res.NIters[t], res.Gaps[t])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if pathOpts.plot != "" {
		if err := viz.SavePathPlot(res.Lambdas, res.Coefs, pathOpts.plot); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nwrote %s\n", pathOpts.plot)
	}
	return nil
}
