package rps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikgaevoy/monty-hall/gametree"
	"github.com/nikgaevoy/monty-hall/matrixgame"
)

const delta = 1e-6

func fullMatrix(t *testing.T, rules Rules) [][]float64 {
	tree, err := gametree.New[Move, Intent, Intent](rules)
	require.NoError(t, err)
	return tree.FullMatrix()
}

func TestObserve(t *testing.T) {
	r := New()
	m := Move{First, Paper}
	assert.Equal(t, intentOf(Paper), r.ObserveFirst(m))
	assert.Equal(t, Unknown, r.ObserveSecond(m))

	g, ok := r.ObserveFirst(m).Gesture()
	assert.True(t, ok)
	assert.Equal(t, Paper, g)
	assert.Equal(t, "Unknown", Unknown.String())
}

func TestStrategies(t *testing.T) {
	tree, err := gametree.New[Move, Intent, Intent](New())
	require.NoError(t, err)

	// The second player cannot tell the first player's gestures apart.
	assert.Len(t, tree.EnumerateFirstStrategies(), 3)
	assert.Len(t, tree.EnumerateSecondStrategies(), 3)
	assert.Equal(t, 1+3+9, tree.NumNodes())
}

func TestFullMatrix(t *testing.T) {
	expected := [][]float64{
		{0, -1, 1},
		{1, 0, -1},
		{-1, 1, 0},
	}

	assert.Equal(t, expected, fullMatrix(t, New()))
}

func TestSolve(t *testing.T) {
	eq, err := matrixgame.SolveBoth(fullMatrix(t, New()))
	require.NoError(t, err)

	assert.InDelta(t, 0, eq.Value, delta)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, eq.First, delta)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, eq.Second, delta)
}

func TestTwisted_MatchesStandardAtZero(t *testing.T) {
	assert.Equal(t, fullMatrix(t, New()), fullMatrix(t, NewTwisted(0)))

	standard, err := matrixgame.Solve(fullMatrix(t, New()))
	require.NoError(t, err)
	twisted, err := matrixgame.Solve(fullMatrix(t, NewTwisted(0)))
	require.NoError(t, err)
	assert.Equal(t, standard, twisted)
}

func TestTwisted_DoublePaper(t *testing.T) {
	matrix := fullMatrix(t, NewTwisted(0.5))
	assert.Equal(t, 0.5, matrix[Paper][Paper])
	assert.Equal(t, 0.0, matrix[Rock][Rock])
	assert.Equal(t, 0.0, matrix[Scissors][Scissors])
}

func TestTwisted_ValueIsContinuous(t *testing.T) {
	const step = 0.01
	prev := 0.0
	for i := -100; i <= 100; i++ {
		twist := float64(i) * step
		solution, err := matrixgame.Solve(fullMatrix(t, NewTwisted(twist)))
		require.NoError(t, err)

		if i > -100 {
			// The value is nondecreasing in the twist, and moves at most
			// as much as the payoff that changed.
			assert.GreaterOrEqual(t, solution.Value, prev-delta, "twist %v", twist)
			assert.LessOrEqual(t, solution.Value-prev, step+delta, "twist %v", twist)
		}

		if i == 0 {
			assert.InDelta(t, 0, solution.Value, delta)
		}

		prev = solution.Value
	}
}

func TestCFR_MatchesMinimax(t *testing.T) {
	for _, twist := range []float64{0, 0.5, -1} {
		opts := gametree.AnalyzeOptions{CFRIterations: 10000}
		analysis, err := gametree.Analyze[Move, Intent, Intent](context.Background(), NewTwisted(twist), opts)
		require.NoError(t, err)
		require.NotNil(t, analysis.CFR)

		eq, err := matrixgame.SolveBoth(analysis.Payoffs)
		require.NoError(t, err)
		assert.InDelta(t, eq.Value, analysis.CFR.Value, 0.05, "twist %v", twist)
		assert.Len(t, analysis.CFR.FirstStrategy, 1)
		assert.Len(t, analysis.CFR.SecondStrategy, 1)
	}
}
