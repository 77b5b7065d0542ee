// Package gametree builds the full extensive-form tree of a two-player
// zero-sum game from an abstract rule set, enumerates every pure strategy
// of each player and computes the induced normal-form payoff matrix.
package gametree

// TurnType is what happens next at a given point in the game.
type TurnType uint8

const (
	_ TurnType = iota
	RandomEvent
	FirstToMove
	SecondToMove
	GameOver
)

var turnTypeStr = [...]string{
	"Invalid",
	"RandomEvent",
	"FirstToMove",
	"SecondToMove",
	"GameOver",
}

func (tt TurnType) String() string {
	if int(tt) >= len(turnTypeStr) {
		return turnTypeStr[0]
	}

	return turnTypeStr[tt]
}

// Turn is the arbiter's decision for a history. Payoff is only
// meaningful when Type is GameOver, and is given from the first
// player's perspective.
type Turn struct {
	Type   TurnType
	Payoff float64
}

var (
	ChanceTurn = Turn{Type: RandomEvent}
	FirstTurn  = Turn{Type: FirstToMove}
	SecondTurn = Turn{Type: SecondToMove}
)

// Terminal ends the game with the given payoff to the first player.
func Terminal(payoff float64) Turn {
	return Turn{Type: GameOver, Payoff: payoff}
}

// Outcome is one possible result of a random event.
type Outcome[M comparable] struct {
	Move        M
	Probability float64
}

// Observer projects a move onto what each player gets to see of it.
// The projection may lose information, e.g. the opponent's private
// choice may be replaced by an "unknown" value.
type Observer[M, F, S comparable] interface {
	ObserveFirst(m M) F
	ObserveSecond(m M) S
}

// Rules is the contract a game must satisfy to be expanded into a tree.
// All methods must be pure functions of their arguments.
//
// FirstMoves and SecondMoves receive the acting player's observation
// history and must return a non-empty list of moves whenever TurnState
// reports that player to move for a history with that projection.
// ChanceOutcomes must return non-negative probabilities summing to 1.
//
// History slices are only valid for the duration of the call: they
// are reused as play proceeds, so implementations must copy them to
// retain them.
type Rules[M, F, S comparable] interface {
	Observer[M, F, S]

	TurnState(history []M) Turn
	FirstMoves(history []F) []M
	SecondMoves(history []S) []M
	ChanceOutcomes(history []M) []Outcome[M]
}
