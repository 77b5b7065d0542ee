// Package rps implements rock-paper-scissors as a sequential game in
// which the second player does not see the first player's gesture.
package rps

import (
	"fmt"

	"github.com/nikgaevoy/monty-hall/gametree"
)

// Player identifies who made a gesture.
type Player uint8

const (
	First Player = iota
	Second
)

var playerStr = [...]string{
	"First",
	"Second",
}

func (p Player) String() string {
	return playerStr[p]
}

// Gesture is one of the three hand shapes.
type Gesture uint8

const (
	Rock Gesture = iota
	Paper
	Scissors
)

var gestureStr = [...]string{
	"Rock",
	"Paper",
	"Scissors",
}

func (g Gesture) String() string {
	return gestureStr[g]
}

// Beats reports whether g wins against other.
func (g Gesture) Beats(other Gesture) bool {
	return g == (other+1)%3
}

// Move is a gesture shown by a player.
type Move struct {
	Player  Player
	Gesture Gesture
}

func (m Move) String() string {
	return fmt.Sprintf("%v:%v", m.Player, m.Gesture)
}

// Intent is what a player observes of a move: the gesture if it is
// their own, Unknown otherwise.
type Intent uint8

const Unknown Intent = 0

func intentOf(g Gesture) Intent {
	return Intent(g + 1)
}

// Gesture returns the observed gesture, if known.
func (i Intent) Gesture() (Gesture, bool) {
	if i == Unknown {
		return 0, false
	}

	return Gesture(i - 1), true
}

func (i Intent) String() string {
	if g, ok := i.Gesture(); ok {
		return g.String()
	}

	return "Unknown"
}

func observe(m Move, p Player) Intent {
	if m.Player != p {
		return Unknown
	}

	return intentOf(m.Gesture)
}

// Rules of rock-paper-scissors. A tie in which both players show Paper
// pays Twist to the first player; every other tie pays 0. The standard
// game has Twist 0.
type Rules struct {
	Twist float64
}

// Verify that we implement the interface.
var _ gametree.Rules[Move, Intent, Intent] = Rules{}

// New returns the rules of standard rock-paper-scissors.
func New() Rules {
	return Rules{}
}

// NewTwisted returns rules in which a double-Paper tie pays twist.
func NewTwisted(twist float64) Rules {
	return Rules{Twist: twist}
}

func (Rules) ObserveFirst(m Move) Intent  { return observe(m, First) }
func (Rules) ObserveSecond(m Move) Intent { return observe(m, Second) }

// TurnState implements gametree.Rules.
func (r Rules) TurnState(history []Move) gametree.Turn {
	switch len(history) {
	case 0:
		return gametree.FirstTurn
	case 1:
		return gametree.SecondTurn
	}

	return gametree.Terminal(r.Payoff(history[0].Gesture, history[1].Gesture))
}

// Payoff to the first player showing a against b.
func (r Rules) Payoff(a, b Gesture) float64 {
	switch {
	case a == b && a == Paper:
		return r.Twist
	case a == b:
		return 0
	case a.Beats(b):
		return 1
	default:
		return -1
	}
}

func (Rules) FirstMoves(history []Intent) []Move {
	return movesFor(First)
}

func (Rules) SecondMoves(history []Intent) []Move {
	return movesFor(Second)
}

// ChanceOutcomes implements gametree.Rules. There are no random events.
func (Rules) ChanceOutcomes(history []Move) []gametree.Outcome[Move] {
	return nil
}

func movesFor(p Player) []Move {
	return []Move{{p, Rock}, {p, Paper}, {p, Scissors}}
}
