package matrixgame

import (
	"github.com/golang/glog"
	"golang.org/x/exp/rand"
)

// FictitiousPlay approximates an equilibrium of the game by having each
// player repeatedly best-respond to the empirical play of the other.
// With probability mixingLambda a player instead plays uniformly at random.
// It returns the empirical distributions of the row and column player.
func FictitiousPlay(game [][]float64, nIter int, mixingLambda float64, rng *rand.Rand) ([]float64, []float64) {
	game = rectangular(game)
	if len(game) == 0 || len(game[0]) == 0 {
		return nil, nil
	}

	rows := newFPPlayer(len(game))
	cols := newFPPlayer(len(game[0]))
	logEvery := max(nIter/10, 1)
	for iter := 1; iter <= nIter; iter++ {
		i := rows.respond(mixingLambda, rng)
		j := cols.respond(mixingLambda, rng)
		rows.counts[i]++
		cols.counts[j]++
		for k := range rows.payoffs {
			rows.payoffs[k] += game[k][j]
		}
		for k := range cols.payoffs {
			cols.payoffs[k] -= game[i][k]
		}

		if iter%logEvery == 0 {
			glog.V(2).Infof("[iter=%d] Row weights: %v, column weights: %v",
				iter, rows.distribution(), cols.distribution())
		}
	}

	return rows.distribution(), cols.distribution()
}

// fpPlayer is one side of fictitious play.
type fpPlayer struct {
	// How often each pure strategy was played.
	counts []int
	// Total payoff of each pure strategy against everything the
	// opponent has played so far.
	payoffs []float64
}

func newFPPlayer(n int) *fpPlayer {
	return &fpPlayer{
		counts:  make([]int, n),
		payoffs: make([]float64, n),
	}
}

func (p *fpPlayer) respond(mixingLambda float64, rng *rand.Rand) int {
	if rng.Float64() < mixingLambda {
		return rng.Intn(len(p.counts))
	}

	return bestResponse(p.payoffs, rng)
}

func (p *fpPlayer) distribution() []float64 {
	total := 0
	for _, c := range p.counts {
		total += c
	}

	result := make([]float64, len(p.counts))
	if total == 0 {
		return result
	}

	for i, c := range p.counts {
		result[i] = float64(c) / float64(total)
	}

	return result
}

// bestResponse picks uniformly among the maxima of payoffs.
func bestResponse(payoffs []float64, rng *rand.Rand) int {
	best, ties := 0, 1
	for i := 1; i < len(payoffs); i++ {
		switch {
		case payoffs[i] > payoffs[best]:
			best, ties = i, 1
		case payoffs[i] == payoffs[best]:
			ties++
			if rng.Intn(ties) == 0 {
				best = i
			}
		}
	}

	return best
}

// rectangular pads short rows with zeros.
func rectangular(game [][]float64) [][]float64 {
	n := numCols(game)
	result := make([][]float64, len(game))
	for i, row := range game {
		result[i] = make([]float64, n)
		copy(result[i], row)
	}

	return result
}
