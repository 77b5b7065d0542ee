package gametree

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// PayoffMatrix simulates every pair of strategies. Row i, column j holds
// the first player's expected payoff when first[i] plays second[j].
func (t *GameTree[M, F, S]) PayoffMatrix(first []Strategy[M, F], second []Strategy[M, S]) [][]float64 {
	result := make([][]float64, len(first))
	for i, f := range first {
		result[i] = t.payoffRow(f, second)
	}

	return result
}

// FullMatrix is the normal form of the game: the payoff matrix over all
// enumerated pure strategies of both players.
func (t *GameTree[M, F, S]) FullMatrix() [][]float64 {
	return t.PayoffMatrix(
		AsStrategies(t.EnumerateFirstStrategies()),
		AsStrategies(t.EnumerateSecondStrategies()))
}

// PayoffMatrixParallel is PayoffMatrix with rows computed concurrently
// by up to workers goroutines (runtime.NumCPU() if workers <= 0).
// Strategies must be safe for concurrent use.
func (t *GameTree[M, F, S]) PayoffMatrixParallel(ctx context.Context, first []Strategy[M, F], second []Strategy[M, S], workers int) ([][]float64, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	result := make([][]float64, len(first))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range first {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			row := make([]float64, len(second))
			for j, s := range second {
				v, err := t.SimulateChecked(f, s)
				if err != nil {
					return err
				}

				row[j] = v
			}

			result[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (t *GameTree[M, F, S]) payoffRow(f Strategy[M, F], second []Strategy[M, S]) []float64 {
	row := make([]float64, len(second))
	for j, s := range second {
		row[j] = t.Simulate(f, s)
	}

	return row
}

// AsStrategies converts enumerated pure strategies to the Strategy interface.
func AsStrategies[M, O comparable](strategies []*PureStrategy[M, O]) []Strategy[M, O] {
	result := make([]Strategy[M, O], len(strategies))
	for i, s := range strategies {
		result[i] = s
	}

	return result
}
