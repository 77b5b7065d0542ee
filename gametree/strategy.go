package gametree

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Strategy chooses a move for a player given their observation history.
// It must be a pure function of the history. ok is false if the strategy
// has no move for the history.
type Strategy[M, O comparable] interface {
	Move(history []O) (m M, ok bool)
}

// StrategyFunc adapts a decision procedure to the Strategy interface.
type StrategyFunc[M, O comparable] func(history []O) (M, bool)

// Move implements Strategy.
func (f StrategyFunc[M, O]) Move(history []O) (M, bool) {
	return f(history)
}

// PureStrategy is a table from information set to move.
// Partial tables are produced during enumeration; the tables returned
// by enumeration decide every information set the player can reach.
type PureStrategy[M, O comparable] struct {
	infoSets *InfoSets[O]
	moves    map[InfoSetID]M
}

// Verify that we implement the interface.
var _ Strategy[int, int] = &PureStrategy[int, int]{}

func newPureStrategy[M, O comparable](infoSets *InfoSets[O]) *PureStrategy[M, O] {
	return &PureStrategy[M, O]{
		infoSets: infoSets,
		moves:    make(map[InfoSetID]M),
	}
}

// Move implements Strategy.
func (s *PureStrategy[M, O]) Move(history []O) (M, bool) {
	id, ok := s.infoSets.Lookup(history)
	if !ok {
		var zero M
		return zero, false
	}

	return s.Get(id)
}

// Get returns the move decided for the given information set.
func (s *PureStrategy[M, O]) Get(id InfoSetID) (M, bool) {
	m, ok := s.moves[id]
	return m, ok
}

// Len returns the number of decided information sets.
func (s *PureStrategy[M, O]) Len() int {
	return len(s.moves)
}

// with returns a copy of s that additionally plays m at id.
func (s *PureStrategy[M, O]) with(id InfoSetID, m M) *PureStrategy[M, O] {
	moves := make(map[InfoSetID]M, len(s.moves)+1)
	maps.Copy(moves, s.moves)
	moves[id] = m
	return &PureStrategy[M, O]{infoSets: s.infoSets, moves: moves}
}

// Decision is a single entry of a PureStrategy.
type Decision[M, O comparable] struct {
	InfoSet InfoSetID
	History []O
	Move    M
}

// Decisions lists the entries of the strategy ordered by information set.
func (s *PureStrategy[M, O]) Decisions() []Decision[M, O] {
	ids := slices.Sorted(maps.Keys(s.moves))
	result := make([]Decision[M, O], len(ids))
	for i, id := range ids {
		result[i] = Decision[M, O]{
			InfoSet: id,
			History: s.infoSets.History(id),
			Move:    s.moves[id],
		}
	}

	return result
}

// String implements fmt.Stringer.
func (s *PureStrategy[M, O]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, d := range s.Decisions() {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%v -> %v", d.History, d.Move)
	}

	sb.WriteByte('}')
	return sb.String()
}
