package gametree

import (
	"github.com/pkg/errors"
)

// Simulate returns the first player's expected payoff when the players
// follow the given strategies. Random events are averaged over, not
// sampled, so the result is deterministic.
//
// Simulate panics if a strategy has no move for an information set it
// reaches, or chooses a move that is not legal there.
func (t *GameTree[M, F, S]) Simulate(first Strategy[M, F], second Strategy[M, S]) float64 {
	v, err := t.SimulateChecked(first, second)
	if err != nil {
		panic(err)
	}

	return v
}

// SimulateChecked is Simulate, but reports incomplete or inconsistent
// strategies as an error.
func (t *GameTree[M, F, S]) SimulateChecked(first Strategy[M, F], second Strategy[M, S]) (float64, error) {
	sim := simulation[M, F, S]{
		tree:   t,
		first:  first,
		second: second,
		play:   NewPlay[M, F, S](t.rules),
	}

	return sim.dfs(0)
}

type simulation[M, F, S comparable] struct {
	tree   *GameTree[M, F, S]
	first  Strategy[M, F]
	second Strategy[M, S]
	play   *Play[M, F, S]
}

func (sim *simulation[M, F, S]) dfs(v int) (float64, error) {
	n := &sim.tree.nodes[v]
	switch n.turn {
	case RandomEvent:
		sum := 0.0
		for _, e := range n.edges {
			sim.play.Push(e.move)
			x, err := sim.dfs(e.child)
			sim.play.Pop()
			if err != nil {
				return 0, err
			}

			sum += x * e.probability
		}

		return sum, nil
	case FirstToMove:
		m, ok := sim.first.Move(sim.play.First())
		if !ok {
			return 0, errors.Errorf("first player strategy has no move for %v", sim.play.First())
		}

		return sim.follow(n, m)
	case SecondToMove:
		m, ok := sim.second.Move(sim.play.Second())
		if !ok {
			return 0, errors.Errorf("second player strategy has no move for %v", sim.play.Second())
		}

		return sim.follow(n, m)
	case GameOver:
		return n.payoff, nil
	}

	return 0, errors.Errorf("corrupt node %d of type %v", v, n.turn)
}

func (sim *simulation[M, F, S]) follow(n *node[M], m M) (float64, error) {
	child, ok := n.childFor(m)
	if !ok {
		return 0, errors.Errorf("move %v is not legal after %v", m, sim.play.Moves())
	}

	sim.play.Push(m)
	x, err := sim.dfs(child)
	sim.play.Pop()
	return x, err
}
