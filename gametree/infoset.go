package gametree

import (
	"fmt"
)

// InfoSetID identifies an information set of one player: a distinct
// observation history. Two histories receive the same ID if and only
// if they are element-wise equal.
type InfoSetID int32

// EmptyHistory is the ID of the empty observation history.
const EmptyHistory InfoSetID = 0

type infoSetEdge[O comparable] struct {
	parent InfoSetID
	obs    O
}

// InfoSets interns the observation histories of one player into dense
// IDs. It is a trie keyed on (parent history, next observation), so every
// prefix of an interned history is also interned.
//
// InfoSets is populated while the tree is built and is read-only afterwards.
type InfoSets[O comparable] struct {
	children map[infoSetEdge[O]]InfoSetID
	parents  []InfoSetID
	last     []O
}

func newInfoSets[O comparable]() *InfoSets[O] {
	var zero O
	return &InfoSets[O]{
		children: make(map[infoSetEdge[O]]InfoSetID),
		parents:  []InfoSetID{-1},
		last:     []O{zero},
	}
}

// Len returns the number of interned histories, including the empty one.
func (s *InfoSets[O]) Len() int {
	return len(s.parents)
}

func (s *InfoSets[O]) intern(history []O) InfoSetID {
	id := EmptyHistory
	for _, obs := range history {
		e := infoSetEdge[O]{id, obs}
		child, ok := s.children[e]
		if !ok {
			child = InfoSetID(len(s.parents))
			s.children[e] = child
			s.parents = append(s.parents, id)
			s.last = append(s.last, obs)
		}

		id = child
	}

	return id
}

// Lookup returns the ID of the given history, if it occurs in the tree.
func (s *InfoSets[O]) Lookup(history []O) (InfoSetID, bool) {
	id := EmptyHistory
	for _, obs := range history {
		child, ok := s.children[infoSetEdge[O]{id, obs}]
		if !ok {
			return -1, false
		}

		id = child
	}

	return id, true
}

// History reconstructs the observation history with the given ID.
func (s *InfoSets[O]) History(id InfoSetID) []O {
	if id < 0 || int(id) >= len(s.parents) {
		panic(fmt.Errorf("info set %d out of range [0, %d)", id, len(s.parents)))
	}

	n := 0
	for v := id; v != EmptyHistory; v = s.parents[v] {
		n++
	}

	result := make([]O, n)
	for v := id; v != EmptyHistory; v = s.parents[v] {
		n--
		result[n] = s.last[v]
	}

	return result
}
