package gametree

// Rule sets shared by the tests in this package.

// guessRules: the first player guesses 0, 1 or 2, then chance reveals
// 0 (p=0.25) or 2 (p=0.75). A correct guess wins 1, otherwise loses 1.
type guessRules struct{}

func (guessRules) ObserveFirst(m int) int  { return m }
func (guessRules) ObserveSecond(m int) int { return m }

func (guessRules) TurnState(history []int) Turn {
	switch len(history) {
	case 0:
		return FirstTurn
	case 1:
		return ChanceTurn
	}

	if history[0] == history[1] {
		return Terminal(1)
	}

	return Terminal(-1)
}

func (guessRules) FirstMoves(history []int) []int  { return []int{0, 1, 2} }
func (guessRules) SecondMoves(history []int) []int { return nil }

func (guessRules) ChanceOutcomes(history []int) []Outcome[int] {
	return []Outcome[int]{{Move: 0, Probability: 0.25}, {Move: 2, Probability: 0.75}}
}

// penniesRules: the first player shows 0 or 1, then the second player
// shows 10 or 11. The first player wins 1 on a match, else loses 1.
// If hidden, the second player does not see the first player's choice.
type penniesRules struct {
	hidden bool
}

const unknown = -1

func (penniesRules) ObserveFirst(m int) int { return m }

func (r penniesRules) ObserveSecond(m int) int {
	if r.hidden && m < 10 {
		return unknown
	}

	return m
}

func (penniesRules) TurnState(history []int) Turn {
	switch len(history) {
	case 0:
		return FirstTurn
	case 1:
		return SecondTurn
	}

	if history[0] == history[1]-10 {
		return Terminal(1)
	}

	return Terminal(-1)
}

func (penniesRules) FirstMoves(history []int) []int  { return []int{0, 1} }
func (penniesRules) SecondMoves(history []int) []int { return []int{10, 11} }
func (penniesRules) ChanceOutcomes(history []int) []Outcome[int] {
	return nil
}

// bluffRules: chance deals the first player a low (0) or high (1) card
// with equal probability, hidden from the second player. The first player
// folds (losing 1) or bets; the second player then folds (losing 1) or
// calls, in which case the first player wins 2 with a high card and
// loses 2 with a low one.
type bluffRules struct{}

const (
	low = iota
	high
	fold
	bet
	call
	concede
)

func (bluffRules) ObserveFirst(m int) int { return m }

func (bluffRules) ObserveSecond(m int) int {
	if m == low || m == high {
		return unknown
	}

	return m
}

func (bluffRules) TurnState(history []int) Turn {
	switch {
	case len(history) == 0:
		return ChanceTurn
	case len(history) == 1:
		return FirstTurn
	case history[1] == fold:
		return Terminal(-1)
	case len(history) == 2:
		return SecondTurn
	case history[2] == concede:
		return Terminal(1)
	case history[0] == high:
		return Terminal(2)
	default:
		return Terminal(-2)
	}
}

func (bluffRules) FirstMoves(history []int) []int  { return []int{fold, bet} }
func (bluffRules) SecondMoves(history []int) []int { return []int{call, concede} }

func (bluffRules) ChanceOutcomes(history []int) []Outcome[int] {
	return []Outcome[int]{{Move: low, Probability: 0.5}, {Move: high, Probability: 0.5}}
}

// sequenceRules: the first player makes depth decisions in a row, each
// among branching moves. A blind player does not see their own moves.
type sequenceRules struct {
	branching int
	depth     int
	blind     bool
}

func (r sequenceRules) ObserveFirst(m int) int {
	if r.blind {
		return unknown
	}

	return m
}

func (sequenceRules) ObserveSecond(m int) int { return m }

func (r sequenceRules) TurnState(history []int) Turn {
	if len(history) < r.depth {
		return FirstTurn
	}

	payoff := 0
	for _, m := range history {
		payoff = payoff*r.branching + m
	}

	return Terminal(float64(payoff))
}

func (r sequenceRules) FirstMoves(history []int) []int {
	moves := make([]int, r.branching)
	for i := range moves {
		moves[i] = i
	}

	return moves
}

func (sequenceRules) SecondMoves(history []int) []int { return nil }
func (sequenceRules) ChanceOutcomes(history []int) []Outcome[int] {
	return nil
}
