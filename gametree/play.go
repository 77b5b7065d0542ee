package gametree

// Play tracks the sequence of moves along the current path of a tree
// walk, together with each player's view of that sequence.
//
// Every Push must be matched by a Pop before the walk returns to
// the level that pushed.
type Play[M, F, S comparable] struct {
	observer Observer[M, F, S]

	moves  []M
	first  []F
	second []S
}

// NewPlay returns an empty Play that projects moves with the given observer.
func NewPlay[M, F, S comparable](observer Observer[M, F, S]) *Play[M, F, S] {
	return &Play[M, F, S]{observer: observer}
}

// Push appends the move to the full history and its projection
// to each player's observation history.
func (p *Play[M, F, S]) Push(m M) {
	p.moves = append(p.moves, m)
	p.first = append(p.first, p.observer.ObserveFirst(m))
	p.second = append(p.second, p.observer.ObserveSecond(m))
}

// Pop removes and returns the last move.
func (p *Play[M, F, S]) Pop() M {
	if len(p.moves) == 0 {
		panic("pop from empty play")
	}

	n := len(p.moves) - 1
	m := p.moves[n]
	p.moves = p.moves[:n]
	p.first = p.first[:n]
	p.second = p.second[:n]
	return m
}

// Moves is the full history, as seen by the arbiter.
// The returned slice is only valid until the next Push or Pop.
func (p *Play[M, F, S]) Moves() []M {
	return p.moves
}

// First is the first player's observation history.
// The returned slice is only valid until the next Push or Pop.
func (p *Play[M, F, S]) First() []F {
	return p.first
}

// Second is the second player's observation history.
// The returned slice is only valid until the next Push or Pop.
func (p *Play[M, F, S]) Second() []S {
	return p.second
}

func (p *Play[M, F, S]) Len() int {
	return len(p.moves)
}
