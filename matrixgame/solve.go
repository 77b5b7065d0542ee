// Package matrixgame solves two-player zero-sum games in normal form.
//
// A game is given as a payoff matrix whose rows are the first player's
// pure strategies and whose columns are the second player's. Entries
// are the first player's payoffs. Rows may be of unequal length: missing
// entries count as 0.
package matrixgame

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Tolerance used by the simplex solver.
const simplexTolerance = 1e-10

// Solution of the minimax linear program of a game.
type Solution struct {
	// Value is the smallest cost the column player can guarantee.
	Value float64
	// Distribution is the optimal mixed strategy over columns.
	Distribution []float64
}

// Solve finds the mixed strategy x over the columns of game that
// minimizes cost subject to:
//
//	sum(x) = 1, 0 <= x[j] <= 1,
//	sum_j game[i][j] * x[j] <= cost for every row i.
//
// That is, the minimizing (second) player's optimal strategy, and the
// value of the game to the first player. Use ReverseGame to solve for
// the first player. An empty game has a zero Solution.
func Solve(game [][]float64) (Solution, error) {
	if len(game) == 0 {
		return Solution{}, nil
	}

	nRows, nCols := len(game), numCols(game)
	if nCols == 0 {
		return Solution{}, errors.New("game has no columns")
	}

	// Standard form: minimize c^T z subject to A z = b, z >= 0 with
	//   z = [x_0 .. x_{n-1}, cost+, cost-, slack_0 .. slack_{m-1}].
	// Row i:  sum_j game[i][j] x_j - cost+ + cost- + slack_i = 0.
	// Last:   sum_j x_j = 1, which also bounds each x_j by 1.
	nVars := nCols + 2 + nRows
	costPos, costNeg := nCols, nCols+1
	a := mat.NewDense(nRows+1, nVars, nil)
	b := make([]float64, nRows+1)
	for i, row := range game {
		for j, v := range row {
			a.Set(i, j, v)
		}

		a.Set(i, costPos, -1)
		a.Set(i, costNeg, 1)
		a.Set(i, nCols+2+i, 1)
	}

	for j := 0; j < nCols; j++ {
		a.Set(nRows, j, 1)
	}
	b[nRows] = 1

	c := make([]float64, nVars)
	c[costPos] = 1
	c[costNeg] = -1

	value, z, err := lp.Simplex(c, a, b, simplexTolerance, nil)
	if err != nil {
		return Solution{}, errors.Wrapf(err, "solving %dx%d game", nRows, nCols)
	}

	distribution := make([]float64, nCols)
	copy(distribution, z[:nCols])
	glog.V(1).Infof("Solved %dx%d game: value %v, distribution %v", nRows, nCols, value, distribution)
	return Solution{Value: value, Distribution: distribution}, nil
}

// ReverseGame returns the game as seen by the column player: transposed
// and negated. The result is rectangular, with missing entries as 0.
func ReverseGame(game [][]float64) [][]float64 {
	result := make([][]float64, numCols(game))
	for j := range result {
		result[j] = make([]float64, len(game))
	}

	for i, row := range game {
		for j, v := range row {
			result[j][i] = -v
		}
	}

	return result
}

// Equilibrium is a solution of a game for both players.
type Equilibrium struct {
	// Value of the game to the first (row) player.
	Value float64
	// First is the row player's optimal mixed strategy.
	First []float64
	// Second is the column player's optimal mixed strategy.
	Second []float64
}

// SolveBoth solves the game for both players.
func SolveBoth(game [][]float64) (Equilibrium, error) {
	second, err := Solve(game)
	if err != nil {
		return Equilibrium{}, errors.Wrap(err, "column player")
	}

	first, err := Solve(ReverseGame(game))
	if err != nil {
		return Equilibrium{}, errors.Wrap(err, "row player")
	}

	return Equilibrium{
		Value:  second.Value,
		First:  first.Distribution,
		Second: second.Distribution,
	}, nil
}

// ExpectedPayoff is the first player's payoff when the players mix
// over rows and columns with the given distributions.
func ExpectedPayoff(game [][]float64, first, second []float64) float64 {
	total := 0.0
	for i, row := range game {
		if i >= len(first) {
			break
		}

		for j, v := range row {
			if j >= len(second) {
				break
			}

			total += first[i] * second[j] * v
		}
	}

	return total
}

func numCols(game [][]float64) int {
	n := 0
	for _, row := range game {
		n = max(n, len(row))
	}

	return n
}
