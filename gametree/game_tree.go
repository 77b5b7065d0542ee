package gametree

import (
	"expvar"
	"fmt"
	"math"
	"slices"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ProbabilityTolerance is how far the outcome probabilities of a random
// event may sum away from 1.
const ProbabilityTolerance = 1e-6

// Child index of an edge that has not been expanded yet.
const unresolved = -1

var (
	nodesBuilt         = expvar.NewInt("gametree/nodes_built")
	terminalNodesBuilt = expvar.NewInt("gametree/nodes_built/terminal")
	playerNodesBuilt   = expvar.NewInt("gametree/nodes_built/player")
	chanceNodesBuilt   = expvar.NewInt("gametree/nodes_built/chance")
)

// ErrTreeTooLarge is returned when construction exceeds BuildOptions.MaxNodes.
var ErrTreeTooLarge = errors.New("game tree exceeds node limit")

type edge[M comparable] struct {
	move  M
	child int
	// probability is only set on edges of RandomEvent nodes.
	probability float64
}

// node is one state of play. Its kind is the TurnType the arbiter
// reported for the history leading to it.
type node[M comparable] struct {
	turn  TurnType
	edges []edge[M]
	// infoSet is the acting player's information set on
	// FirstToMove and SecondToMove nodes.
	infoSet InfoSetID
	payoff  float64
}

func (n *node[M]) childFor(m M) (int, bool) {
	for _, e := range n.edges {
		if e.move == m {
			return e.child, true
		}
	}

	return unresolved, false
}

// GameTree is the explicit extensive-form tree of a game.
// Nodes live in an append-only arena indexed by position; the root is
// node 0 and the children of a node always follow it.
//
// A GameTree is immutable once built, and may be shared by
// concurrent read-only traversals.
type GameTree[M, F, S comparable] struct {
	rules  Rules[M, F, S]
	nodes  []node[M]
	first  *InfoSets[F]
	second *InfoSets[S]
}

// BuildOptions limits tree construction.
type BuildOptions struct {
	// MaxNodes bounds the size of the tree. Zero means no limit.
	MaxNodes int
}

// New expands the given rules into a complete game tree.
func New[M, F, S comparable](rules Rules[M, F, S]) (*GameTree[M, F, S], error) {
	return NewWithOptions(rules, BuildOptions{})
}

// NewWithOptions is New with construction limits.
func NewWithOptions[M, F, S comparable](rules Rules[M, F, S], opts BuildOptions) (*GameTree[M, F, S], error) {
	t := &GameTree[M, F, S]{
		rules:  rules,
		first:  newInfoSets[F](),
		second: newInfoSets[S](),
	}

	b := &builder[M, F, S]{
		tree:        t,
		play:        NewPlay[M, F, S](rules),
		maxNodes:    opts.MaxNodes,
		firstLegal:  make(map[InfoSetID][]M),
		secondLegal: make(map[InfoSetID][]M),
	}

	if err := b.build(); err != nil {
		return nil, err
	}

	if b.play.Len() != 0 {
		return nil, errors.Errorf("history not empty after construction: %v", b.play.Moves())
	}

	glog.V(1).Infof("Built game tree with %d nodes, %d/%d observation histories",
		len(t.nodes), t.first.Len(), t.second.Len())
	return t, nil
}

// Rules returns the rules the tree was built from.
func (t *GameTree[M, F, S]) Rules() Rules[M, F, S] {
	return t.rules
}

// NumNodes returns the number of nodes in the tree.
func (t *GameTree[M, F, S]) NumNodes() int {
	return len(t.nodes)
}

// FirstInfoSets returns the interned observation histories of the first player.
func (t *GameTree[M, F, S]) FirstInfoSets() *InfoSets[F] {
	return t.first
}

// SecondInfoSets returns the interned observation histories of the second player.
func (t *GameTree[M, F, S]) SecondInfoSets() *InfoSets[S] {
	return t.second
}

// Stats counts the nodes of each TurnType.
func (t *GameTree[M, F, S]) Stats() map[TurnType]int {
	result := make(map[TurnType]int)
	for i := range t.nodes {
		result[t.nodes[i].turn]++
	}

	return result
}

// String implements fmt.Stringer.
func (t *GameTree[M, F, S]) String() string {
	stats := t.Stats()
	return fmt.Sprintf("GameTree(%d nodes: %d chance, %d first, %d second, %d terminal)",
		len(t.nodes), stats[RandomEvent], stats[FirstToMove], stats[SecondToMove], stats[GameOver])
}

type builder[M, F, S comparable] struct {
	tree     *GameTree[M, F, S]
	play     *Play[M, F, S]
	maxNodes int

	// Legal moves reported for each information set, to check that
	// every node of an information set offers the same moves.
	firstLegal  map[InfoSetID][]M
	secondLegal map[InfoSetID][]M
}

func (b *builder[M, F, S]) build() error {
	t := b.tree
	if b.maxNodes > 0 && len(t.nodes) >= b.maxNodes {
		return errors.Wrapf(ErrTreeTooLarge, "limit %d", b.maxNodes)
	}

	index := len(t.nodes)
	turn := t.rules.TurnState(b.play.Moves())
	switch turn.Type {
	case RandomEvent:
		outcomes := t.rules.ChanceOutcomes(b.play.Moves())
		if err := validateOutcomes(outcomes); err != nil {
			return errors.Wrapf(err, "random event after %v", b.play.Moves())
		}

		edges := make([]edge[M], len(outcomes))
		for i, o := range outcomes {
			edges[i] = edge[M]{move: o.Move, child: unresolved, probability: o.Probability}
		}

		t.nodes = append(t.nodes, node[M]{turn: RandomEvent, edges: edges})
		chanceNodesBuilt.Add(1)
	case FirstToMove:
		id := t.first.intern(b.play.First())
		moves := t.rules.FirstMoves(b.play.First())
		if err := checkLegalMoves(b.firstLegal, id, moves); err != nil {
			return errors.Wrapf(err, "first player to move after %v", b.play.Moves())
		}

		t.nodes = append(t.nodes, node[M]{turn: FirstToMove, edges: playerEdges(moves), infoSet: id})
		playerNodesBuilt.Add(1)
	case SecondToMove:
		id := t.second.intern(b.play.Second())
		moves := t.rules.SecondMoves(b.play.Second())
		if err := checkLegalMoves(b.secondLegal, id, moves); err != nil {
			return errors.Wrapf(err, "second player to move after %v", b.play.Moves())
		}

		t.nodes = append(t.nodes, node[M]{turn: SecondToMove, edges: playerEdges(moves), infoSet: id})
		playerNodesBuilt.Add(1)
	case GameOver:
		if math.IsNaN(turn.Payoff) {
			return errors.Errorf("NaN payoff after %v", b.play.Moves())
		}

		t.nodes = append(t.nodes, node[M]{turn: GameOver, payoff: turn.Payoff})
		terminalNodesBuilt.Add(1)
		nodesBuilt.Add(1)
		return nil
	default:
		return errors.Errorf("unknown turn type %d after %v", turn.Type, b.play.Moves())
	}

	nodesBuilt.Add(1)
	// Children are appended right after this node, so the arena length
	// at the time each child is expanded is that child's index.
	for j := range t.nodes[index].edges {
		e := &t.nodes[index].edges[j]
		e.child = len(t.nodes)
		b.play.Push(e.move)
		err := b.build()
		b.play.Pop()
		if err != nil {
			return err
		}
	}

	return nil
}

func playerEdges[M comparable](moves []M) []edge[M] {
	edges := make([]edge[M], len(moves))
	for i, m := range moves {
		edges[i] = edge[M]{move: m, child: unresolved}
	}

	return edges
}

func validateOutcomes[M comparable](outcomes []Outcome[M]) error {
	if len(outcomes) == 0 {
		return errors.New("no possible outcomes")
	}

	seen := make(map[M]struct{}, len(outcomes))
	total := 0.0
	for _, o := range outcomes {
		if o.Probability < 0 || math.IsNaN(o.Probability) {
			return errors.Errorf("invalid probability %v for outcome %v", o.Probability, o.Move)
		}

		if _, ok := seen[o.Move]; ok {
			return errors.Errorf("duplicate outcome %v", o.Move)
		}

		seen[o.Move] = struct{}{}
		total += o.Probability
	}

	if math.Abs(total-1) > ProbabilityTolerance {
		return errors.Errorf("outcome probabilities sum to %v", total)
	}

	return nil
}

func checkLegalMoves[M comparable](legal map[InfoSetID][]M, id InfoSetID, moves []M) error {
	if len(moves) == 0 {
		return errors.New("no legal moves")
	}

	seen := make(map[M]struct{}, len(moves))
	for _, m := range moves {
		if _, ok := seen[m]; ok {
			return errors.Errorf("duplicate legal move %v", m)
		}

		seen[m] = struct{}{}
	}

	if prev, ok := legal[id]; ok {
		if !slices.Equal(prev, moves) {
			return errors.Errorf("information set %d offers %v, previously %v", id, moves, prev)
		}

		return nil
	}

	legal[id] = slices.Clone(moves)
	return nil
}
