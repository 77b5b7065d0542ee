package gametree

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Analysis is the normal form of a game, with its pure strategies
// described in human-readable form.
type Analysis struct {
	NumNodes         int
	FirstStrategies  []string
	SecondStrategies []string
	// Payoffs[i][j] is the first player's expected payoff when playing
	// FirstStrategies[i] against SecondStrategies[j].
	Payoffs [][]float64
	// CFR is set when AnalyzeOptions.CFRIterations > 0.
	CFR *CFRReport
}

// CFRReport is the outcome of SolveCFR, with each information set's
// move probabilities in human-readable form.
type CFRReport struct {
	Iterations     int
	Value          float64
	FirstStrategy  []string
	SecondStrategy []string
}

// AnalyzeOptions configures Analyze.
type AnalyzeOptions struct {
	Build BuildOptions
	// Workers > 1 computes the payoff matrix concurrently.
	Workers int
	// CFRIterations > 0 also solves the tree with that many iterations of CFR.
	CFRIterations int
}

// Analyze builds the tree of the given rules, enumerates both players'
// pure strategies and computes the payoff matrix.
func Analyze[M, F, S comparable](ctx context.Context, rules Rules[M, F, S], opts AnalyzeOptions) (*Analysis, error) {
	tree, err := NewWithOptions(rules, opts.Build)
	if err != nil {
		return nil, errors.Wrap(err, "building game tree")
	}

	glog.Infof("%v", tree)
	first, err := tree.EnumerateFirstStrategiesContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "enumerating first player strategies")
	}

	second, err := tree.EnumerateSecondStrategiesContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "enumerating second player strategies")
	}

	glog.Infof("%d x %d pure strategies", len(first), len(second))
	var payoffs [][]float64
	if opts.Workers > 1 {
		payoffs, err = tree.PayoffMatrixParallel(ctx, AsStrategies(first), AsStrategies(second), opts.Workers)
		if err != nil {
			return nil, errors.Wrap(err, "computing payoff matrix")
		}
	} else {
		payoffs = tree.PayoffMatrix(AsStrategies(first), AsStrategies(second))
	}

	analysis := &Analysis{
		NumNodes:         tree.NumNodes(),
		FirstStrategies:  describe(first),
		SecondStrategies: describe(second),
		Payoffs:          payoffs,
	}

	if opts.CFRIterations > 0 {
		solution, err := tree.SolveCFR(ctx, opts.CFRIterations)
		if err != nil {
			return nil, errors.Wrap(err, "running CFR")
		}

		analysis.CFR = &CFRReport{
			Iterations:     opts.CFRIterations,
			Value:          solution.Value,
			FirstStrategy:  describeBehavior(tree, FirstToMove, tree.FirstInfoSets(), solution.First),
			SecondStrategy: describeBehavior(tree, SecondToMove, tree.SecondInfoSets(), solution.Second),
		}
	}

	return analysis, nil
}

func describe[M, O comparable](strategies []*PureStrategy[M, O]) []string {
	result := make([]string, len(strategies))
	for i, s := range strategies {
		result[i] = s.String()
	}

	return result
}
