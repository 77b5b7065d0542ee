package gametree

import (
	"context"
	"math"
	"testing"

	"github.com/timpalpant/go-cfr"
	"github.com/timpalpant/go-cfr/tree"

	"github.com/nikgaevoy/monty-hall/matrixgame"
)

func TestSolveCFR_MatchesMinimax(t *testing.T) {
	testCases := []struct {
		name  string
		rules Rules[int, int, int]
	}{
		{"guess", guessRules{}},
		{"hidden pennies", penniesRules{hidden: true}},
		{"observed pennies", penniesRules{}},
		{"bluff", bluffRules{}},
		{"perfect recall 2x2", sequenceRules{branching: 2, depth: 2}},
		{"blind 3x2", sequenceRules{branching: 3, depth: 2, blind: true}},
	}

	for _, tc := range testCases {
		tr := mustBuild(t, tc.rules)
		eq, err := matrixgame.SolveBoth(tr.FullMatrix())
		if err != nil {
			t.Fatal(err)
		}

		solution, err := tr.SolveCFR(context.Background(), 10000)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(solution.Value-eq.Value) > 0.05 {
			t.Errorf("%s: expected value %v, got %v", tc.name, eq.Value, solution.Value)
		}
	}
}

func TestSolveCFR_Bluff(t *testing.T) {
	tr := mustBuild(t, bluffRules{})
	solution, err := tr.SolveCFR(context.Background(), 10000)
	if err != nil {
		t.Fatal(err)
	}

	if len(solution.Second) != 1 {
		t.Fatalf("expected a single information set, got %v", solution.Second)
	}

	// The second player calls 2/3 of the time.
	for _, p := range solution.Second {
		if math.Abs(p[0]-2.0/3) > 0.1 {
			t.Errorf("expected to call with probability 2/3, got %v", p)
		}
	}

	for id, p := range solution.First {
		total := 0.0
		for _, x := range p {
			total += x
		}

		if math.Abs(total-1) > 1e-9 {
			t.Errorf("information set %d: probabilities %v sum to %v", id, p, total)
		}
	}
}

func TestSolveCFR_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mustBuild(t, bluffRules{}).SolveCFR(ctx, 10); err != context.Canceled {
		t.Errorf("expected %v, got %v", context.Canceled, err)
	}
}

func TestCFRNode_Alternates(t *testing.T) {
	// The first player moves twice in a row: a pass node of the second
	// player must sit between the two decisions.
	tr := mustBuild(t, sequenceRules{branching: 2, depth: 2})
	root := &cfrNode[int]{nodes: tr.nodes, scale: 1}
	if root.Type() != cfr.PlayerNode || root.Player() != 0 || root.NumChildren() != 2 {
		t.Fatalf("unexpected root: %v", root)
	}

	pass := root.GetChild(0)
	if pass.Player() != 1 || pass.NumChildren() != 1 || pass.InfoSet(1) != passInfoSet {
		t.Errorf("expected a pass node, got %v", pass)
	}

	next := pass.GetChild(0)
	if next.Player() != 0 || next.NumChildren() != 2 || next.InfoSet(0) == passInfoSet {
		t.Errorf("expected the first player's second decision, got %v", next)
	}

	// 1 + 2*(pass + decision + 2 terminals).
	if n := tree.CountNodes(root); n != 9 {
		t.Errorf("expected 9 nodes, got %d", n)
	}
}

func TestCFRNode_ChanceScale(t *testing.T) {
	tr := mustBuild(t, guessRules{})
	root := &cfrNode[int]{nodes: tr.nodes, scale: 1}
	chance := root.GetChild(2)
	if chance.Type() != cfr.ChanceNode {
		t.Fatalf("expected chance node, got %v", chance)
	}

	// Averaging the scaled children with equal weight is the expectation.
	total := 0.0
	for i := 0; i < chance.NumChildren(); i++ {
		if p := chance.GetChildProbability(i); p != 0.5 {
			t.Errorf("expected probability 0.5, got %v", p)
		}

		leaf := chance.GetChild(i)
		total += leaf.Utility(leaf.Player())
	}

	// Payoffs are reported to the second player below the first player's move.
	if got := -total / float64(chance.NumChildren()); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected expectation 0.5, got %v", got)
	}
}

func TestBehaviorValue(t *testing.T) {
	tr := mustBuild(t, bluffRules{})
	betHigh := BehaviorStrategy{}
	for i := range tr.nodes {
		nd := &tr.nodes[i]
		if nd.turn != FirstToMove {
			continue
		}

		history := tr.first.History(nd.infoSet)
		if history[0] == high {
			betHigh[nd.infoSet] = []float64{0, 1}
		} else {
			betHigh[nd.infoSet] = []float64{1, 0}
		}
	}

	callID, ok := tr.second.Lookup([]int{unknown, bet})
	if !ok {
		t.Fatal("missing second player information set")
	}

	v, err := tr.BehaviorValue(betHigh, BehaviorStrategy{callID: {0.5, 0.5}})
	if err != nil {
		t.Fatal(err)
	}

	// Low card folds: -1/2. High card bets: 1/2 * (1/2*2 + 1/2*1).
	if expected := -0.5 + 0.75; math.Abs(v-expected) > 1e-12 {
		t.Errorf("expected %v, got %v", expected, v)
	}

	if _, err := tr.BehaviorValue(betHigh, BehaviorStrategy{callID: {1}}); err == nil {
		t.Error("expected error for wrong number of probabilities")
	}
}
