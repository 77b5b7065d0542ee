package guess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikgaevoy/monty-hall/gametree"
	"github.com/nikgaevoy/monty-hall/matrixgame"
)

func TestFullMatrix(t *testing.T) {
	tree, err := gametree.New[Move, Move, Move](Rules{})
	require.NoError(t, err)

	first := tree.EnumerateFirstStrategies()
	second := tree.EnumerateSecondStrategies()
	require.Len(t, first, len(guesses))
	require.Len(t, second, 1)

	expected := map[Move]float64{0: -0.5, 1: -1, 2: 0.5}
	matrix := tree.FullMatrix()
	for i, s := range first {
		guess, ok := s.Move(nil)
		require.True(t, ok)
		assert.Equal(t, expected[guess], matrix[i][0], "guessing %d", guess)
	}
}

func TestGuessingOneNeverWins(t *testing.T) {
	tree, err := gametree.New[Move, Move, Move](Rules{})
	require.NoError(t, err)

	always := func(m Move) gametree.StrategyFunc[Move, Move] {
		return func([]Move) (Move, bool) { return m, true }
	}

	assert.Equal(t, -1.0, tree.Simulate(always(1), always(0)))
}

func TestSolve(t *testing.T) {
	tree, err := gametree.New[Move, Move, Move](Rules{})
	require.NoError(t, err)

	eq, err := matrixgame.SolveBoth(tree.FullMatrix())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, eq.Value, 1e-6)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, eq.First, 1e-6)
}

func TestRulesReturnCopies(t *testing.T) {
	r := Rules{}
	moves := r.FirstMoves(nil)
	moves[0] = 1
	outcomes := r.ChanceOutcomes(nil)
	outcomes[0].Probability = 1

	assert.Equal(t, []Move{0, 1, 2}, r.FirstMoves(nil))
	assert.Equal(t, 0.25, r.ChanceOutcomes(nil)[0].Probability)

	tree, err := gametree.New[Move, Move, Move](r)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-0.5}, {-1}, {0.5}}, tree.FullMatrix())
}
