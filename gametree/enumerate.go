package gametree

import (
	"context"
	"expvar"
	"fmt"

	"github.com/golang/glog"
)

var (
	strategiesEnumerated = expvar.NewInt("gametree/strategies_enumerated")
	partialStrategies    = expvar.NewInt("gametree/strategies_enumerated/partial")
)

// EnumerateFirstStrategies lists every pure strategy of the first player.
//
// The number of pure strategies is exponential in the number of
// information sets; use EnumerateFirstStrategiesContext to bound the
// time spent on large games.
func (t *GameTree[M, F, S]) EnumerateFirstStrategies() []*PureStrategy[M, F] {
	result, _ := t.EnumerateFirstStrategiesContext(context.Background())
	return result
}

// EnumerateSecondStrategies lists every pure strategy of the second player.
func (t *GameTree[M, F, S]) EnumerateSecondStrategies() []*PureStrategy[M, S] {
	result, _ := t.EnumerateSecondStrategiesContext(context.Background())
	return result
}

// EnumerateFirstStrategiesContext is EnumerateFirstStrategies,
// stopping early with ctx.Err() if the context is done.
func (t *GameTree[M, F, S]) EnumerateFirstStrategiesContext(ctx context.Context) ([]*PureStrategy[M, F], error) {
	e := enumerator[M, F]{nodes: t.nodes, own: FirstToMove}
	return e.run(ctx, newPureStrategy[M](t.first))
}

// EnumerateSecondStrategiesContext is EnumerateSecondStrategies,
// stopping early with ctx.Err() if the context is done.
func (t *GameTree[M, F, S]) EnumerateSecondStrategiesContext(ctx context.Context) ([]*PureStrategy[M, S], error) {
	e := enumerator[M, S]{nodes: t.nodes, own: SecondToMove}
	return e.run(ctx, newPureStrategy[M](t.second))
}

// enumerator discovers the pure strategies of the player moving at
// nodes of type own by backtracking over that player's information sets.
type enumerator[M, O comparable] struct {
	nodes []node[M]
	own   TurnType
}

func (e *enumerator[M, O]) run(ctx context.Context, empty *PureStrategy[M, O]) ([]*PureStrategy[M, O], error) {
	var result []*PureStrategy[M, O]
	stack := []*PureStrategy[M, O]{empty}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		extensions := e.undecided(s, 0)
		if extensions == nil {
			result = append(result, s)
			strategiesEnumerated.Add(1)
			if len(result)%10000 == 0 {
				glog.V(2).Infof("Enumerated %d %v strategies, %d pending", len(result), e.own, len(stack))
			}

			continue
		}

		partialStrategies.Add(1)
		// Reversed so that the first legal move is explored first.
		for i := len(extensions) - 1; i >= 0; i-- {
			stack = append(stack, extensions[i])
		}
	}

	glog.V(1).Infof("Enumerated %d %v strategies", len(result), e.own)
	return result, nil
}

// undecided walks the subtree at v under s, following s at the player's
// own nodes and every edge elsewhere. At the first information set that
// s does not decide it returns one extension of s per legal move there.
// It returns nil if s decides every information set reachable from v.
func (e *enumerator[M, O]) undecided(s *PureStrategy[M, O], v int) []*PureStrategy[M, O] {
	n := &e.nodes[v]
	switch n.turn {
	case GameOver:
		return nil
	case e.own:
		m, ok := s.Get(n.infoSet)
		if !ok {
			extensions := make([]*PureStrategy[M, O], len(n.edges))
			for i, edge := range n.edges {
				extensions[i] = s.with(n.infoSet, edge.move)
			}

			return extensions
		}

		child, ok := n.childFor(m)
		if !ok {
			// Every node of an information set offers the same moves.
			panic(fmt.Errorf("move %v missing from node %d of information set %d", m, v, n.infoSet))
		}

		return e.undecided(s, child)
	default:
		for _, edge := range n.edges {
			if extensions := e.undecided(s, edge.child); extensions != nil {
				return extensions
			}
		}

		return nil
	}
}
