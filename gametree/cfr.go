package gametree

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/timpalpant/go-cfr"
)

// Information set key of the single-move nodes inserted between two
// consecutive decisions of the same player.
const passInfoSet = "pass"

// cfrNode implements cfr.GameTreeNode over the arena of a GameTree.
//
// The CFR traversal negates the value of every child of a player node,
// so it expects players to alternate, and it averages the children of
// a chance node with equal weight. To stay exact on any tree:
//   - a decision whose actor is not the player the parent expects is
//     preceded by a pass node of the other player with a single move;
//   - chance children are reported as equally likely and their
//     utilities are scaled by n*p, which keeps both the returned
//     expectation and the counterfactual regrets unchanged.
type cfrNode[M comparable] struct {
	nodes []node[M]
	index int
	// perspective is the player whose utility this node reports.
	perspective int
	scale       float64
}

var _ cfr.GameTreeNode = &cfrNode[int]{}

func actor(tt TurnType) int {
	if tt == SecondToMove {
		return 1
	}

	return 0
}

func (n *cfrNode[M]) node() *node[M] {
	return &n.nodes[n.index]
}

func (n *cfrNode[M]) isDecision() bool {
	tt := n.node().turn
	return tt == FirstToMove || tt == SecondToMove
}

func (n *cfrNode[M]) isPass() bool {
	return n.isDecision() && actor(n.node().turn) != n.perspective
}

// Type implements cfr.GameTreeNode.
func (n *cfrNode[M]) Type() cfr.NodeType {
	switch n.node().turn {
	case GameOver:
		return cfr.TerminalNode
	case RandomEvent:
		return cfr.ChanceNode
	default:
		return cfr.PlayerNode
	}
}

// BuildChildren implements cfr.GameTreeNode. Children are already in the arena.
func (n *cfrNode[M]) BuildChildren() {}

// FreeChildren implements cfr.GameTreeNode.
func (n *cfrNode[M]) FreeChildren() {}

// NumChildren implements cfr.GameTreeNode.
func (n *cfrNode[M]) NumChildren() int {
	if n.isPass() {
		return 1
	}

	return len(n.node().edges)
}

// GetChild implements cfr.GameTreeNode.
func (n *cfrNode[M]) GetChild(i int) cfr.GameTreeNode {
	if n.isPass() {
		return &cfrNode[M]{nodes: n.nodes, index: n.index, perspective: 1 - n.perspective, scale: n.scale}
	}

	nd := n.node()
	e := nd.edges[i]
	if nd.turn == RandomEvent {
		scale := n.scale * float64(len(nd.edges)) * e.probability
		return &cfrNode[M]{nodes: n.nodes, index: e.child, perspective: n.perspective, scale: scale}
	}

	return &cfrNode[M]{nodes: n.nodes, index: e.child, perspective: 1 - n.perspective, scale: n.scale}
}

// GetChildProbability implements cfr.GameTreeNode.
func (n *cfrNode[M]) GetChildProbability(i int) float64 {
	return 1 / float64(len(n.node().edges))
}

// Player implements cfr.GameTreeNode.
func (n *cfrNode[M]) Player() int {
	return n.perspective
}

// InfoSet implements cfr.GameTreeNode. Only the acting player's
// information set is known.
func (n *cfrNode[M]) InfoSet(player int) string {
	if n.isPass() {
		return passInfoSet
	}

	return strconv.Itoa(int(n.node().infoSet))
}

// Utility implements cfr.GameTreeNode.
func (n *cfrNode[M]) Utility(player int) float64 {
	u := n.scale * n.node().payoff
	if player == 1 {
		return -u
	}

	return u
}

// String implements fmt.Stringer.
func (n *cfrNode[M]) String() string {
	return fmt.Sprintf("node %d (%v, player %d, scale %v)", n.index, n.node().turn, n.perspective, n.scale)
}

// BehaviorStrategy assigns to each information set of a player a
// probability for every legal move there, in the order the rules list
// the moves.
type BehaviorStrategy map[InfoSetID][]float64

// CFRSolution is the average strategy profile found by counterfactual
// regret minimization.
type CFRSolution struct {
	First  BehaviorStrategy
	Second BehaviorStrategy
	// Value is the first player's expected payoff under First and Second.
	Value float64
}

// SolveCFR runs nIter iterations of vanilla CFR on the tree and returns
// both players' average strategies.
func (t *GameTree[M, F, S]) SolveCFR(ctx context.Context, nIter int) (*CFRSolution, error) {
	root := &cfrNode[M]{nodes: t.nodes, perspective: 0, scale: 1}
	solver := cfr.NewVanilla()
	logEvery := max(nIter/10, 1)
	total := 0.0
	for i := 1; i <= nIter; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		total += solver.Run(root)
		if i%logEvery == 0 {
			glog.V(2).Infof("[iter=%d] Expected game value: %.4f", i, total/float64(i))
		}
	}

	first := make(BehaviorStrategy)
	second := make(BehaviorStrategy)
	for i := range t.nodes {
		nd := &t.nodes[i]
		var strategy BehaviorStrategy
		switch nd.turn {
		case FirstToMove:
			strategy = first
		case SecondToMove:
			strategy = second
		default:
			continue
		}

		if _, ok := strategy[nd.infoSet]; ok {
			continue
		}

		key := strconv.Itoa(int(nd.infoSet))
		p := solver.GetStrategy(actor(nd.turn), key)
		if len(p) != len(nd.edges) {
			p = uniform(len(nd.edges))
		}

		strategy[nd.infoSet] = p
	}

	value, err := t.BehaviorValue(first, second)
	if err != nil {
		return nil, err
	}

	glog.V(1).Infof("CFR after %d iterations: value %v", nIter, value)
	return &CFRSolution{First: first, Second: second, Value: value}, nil
}

// BehaviorValue returns the first player's expected payoff when both
// players randomize at every information set as given.
func (t *GameTree[M, F, S]) BehaviorValue(first, second BehaviorStrategy) (float64, error) {
	return t.behaviorValue(0, first, second)
}

func (t *GameTree[M, F, S]) behaviorValue(v int, first, second BehaviorStrategy) (float64, error) {
	n := &t.nodes[v]
	var p []float64
	switch n.turn {
	case GameOver:
		return n.payoff, nil
	case RandomEvent:
	case FirstToMove:
		p = first[n.infoSet]
	case SecondToMove:
		p = second[n.infoSet]
	default:
		return 0, errors.Errorf("corrupt node %d of type %v", v, n.turn)
	}

	if n.turn != RandomEvent && len(p) != len(n.edges) {
		return 0, errors.Errorf("%v information set %d has %d probabilities for %d moves",
			n.turn, n.infoSet, len(p), len(n.edges))
	}

	sum := 0.0
	for i, e := range n.edges {
		w := e.probability
		if n.turn != RandomEvent {
			w = p[i]
		}

		if w == 0 {
			continue
		}

		x, err := t.behaviorValue(e.child, first, second)
		if err != nil {
			return 0, err
		}

		sum += w * x
	}

	return sum, nil
}

// describeBehavior renders a player's behavior strategy as one line per
// information set, in the order the information sets occur in the tree.
func describeBehavior[M, F, S, O comparable](t *GameTree[M, F, S], turn TurnType, infoSets *InfoSets[O], strategy BehaviorStrategy) []string {
	var result []string
	seen := make(map[InfoSetID]bool)
	for i := range t.nodes {
		nd := &t.nodes[i]
		if nd.turn != turn || seen[nd.infoSet] {
			continue
		}

		seen[nd.infoSet] = true
		p := strategy[nd.infoSet]
		var sb strings.Builder
		fmt.Fprintf(&sb, "%v -> {", infoSets.History(nd.infoSet))
		for j, e := range nd.edges {
			if j > 0 {
				sb.WriteString(", ")
			}

			if j < len(p) {
				fmt.Fprintf(&sb, "%v: %.3f", e.move, p[j])
			}
		}

		sb.WriteByte('}')
		result = append(result, sb.String())
	}

	return result
}

func uniform(n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = 1 / float64(n)
	}

	return result
}
