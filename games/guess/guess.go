// Package guess implements a game in which one player guesses the
// outcome of a biased random draw.
package guess

import (
	"slices"

	"github.com/nikgaevoy/monty-hall/gametree"
)

// Move is a guess of the first player, or the drawn value.
type Move uint8

// Values the first player may guess.
var guesses = []Move{0, 1, 2}

// Possible random outcomes. 1 is never drawn.
var draws = []gametree.Outcome[Move]{
	{Move: 0, Probability: 0.25},
	{Move: 2, Probability: 0.75},
}

// Rules of the guessing game: the first player guesses, then a value is
// drawn. A correct guess wins 1, otherwise the first player loses 1.
// The second player never moves; both players see everything.
type Rules struct{}

// Verify that we implement the interface.
var _ gametree.Rules[Move, Move, Move] = Rules{}

func (Rules) ObserveFirst(m Move) Move  { return m }
func (Rules) ObserveSecond(m Move) Move { return m }

// TurnState implements gametree.Rules.
func (Rules) TurnState(history []Move) gametree.Turn {
	switch len(history) {
	case 0:
		return gametree.FirstTurn
	case 1:
		return gametree.ChanceTurn
	}

	if history[0] == history[1] {
		return gametree.Terminal(1)
	}

	return gametree.Terminal(-1)
}

// FirstMoves implements gametree.Rules. The result is a fresh copy.
func (Rules) FirstMoves(history []Move) []Move {
	return slices.Clone(guesses)
}

// SecondMoves implements gametree.Rules. It is never consulted.
func (Rules) SecondMoves(history []Move) []Move {
	return nil
}

// ChanceOutcomes implements gametree.Rules. The result is a fresh copy.
func (Rules) ChanceOutcomes(history []Move) []gametree.Outcome[Move] {
	return slices.Clone(draws)
}
