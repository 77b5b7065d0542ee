// Computes the normal form of a game and solves it for both players.
package main

import (
	"context"
	"encoding/gob"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	gzip "github.com/klauspost/pgzip"
	"golang.org/x/exp/rand"

	"github.com/nikgaevoy/monty-hall/games"
	"github.com/nikgaevoy/monty-hall/gametree"
	"github.com/nikgaevoy/monty-hall/matrixgame"
)

// Report is what gets saved with -output.
type Report struct {
	Game        string
	Twist       float64
	Analysis    gametree.Analysis
	Equilibrium matrixgame.Equilibrium
}

func main() {
	game := flag.String("game", "rps", "Game to solve")
	list := flag.Bool("list", false, "List available games and exit")
	twist := flag.Float64("twist", 0, "Payoff of the double-Paper tie in twisted_rps")
	solver := flag.String("solver", "lp", "Equilibrium solver: lp, fp (fictitious play) or cfr")
	fpIter := flag.Int("fp_iter", 100000, "Number of fictitious play iterations")
	fpLambda := flag.Float64("fp_lambda", 0, "Probability of a uniform random move in fictitious play")
	cfrIter := flag.Int("cfr_iter", 10000, "Number of CFR iterations")
	seed := flag.Uint64("seed", 123, "Random seed for fictitious play")
	parallel := flag.Int("parallel", 1, "Number of goroutines computing the payoff matrix")
	maxNodes := flag.Int("max_nodes", 0, "Maximum number of game tree nodes (0 for no limit)")
	timeout := flag.Duration("timeout", 0, "Give up on strategy enumeration after this long (0 for no limit)")
	output := flag.String("output", "", "File to save the report to")
	input := flag.String("input", "", "Print a previously saved report instead of solving")
	httpAddr := flag.String("http", "", "Address to serve pprof and expvar on")
	flag.Parse()

	if *httpAddr != "" {
		go http.ListenAndServe(*httpAddr, nil)
	}

	if *input != "" {
		report, err := loadReport(*input)
		if err != nil {
			glog.Fatal(err)
		}

		fmt.Printf("Game: %s (twist %v)\n", report.Game, report.Twist)
		printReport(&report.Analysis, report.Equilibrium)
		return
	}

	registry := games.Builtin()
	if *list {
		for _, info := range registry.List() {
			fmt.Printf("%-12s %s\n", info.Name, info.Description)
		}
		return
	}

	g, ok := registry.Get(*game)
	if !ok {
		glog.Fatalf("Unknown game %q", *game)
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()
	config := games.Config{
		AnalyzeOptions: gametree.AnalyzeOptions{
			Build:   gametree.BuildOptions{MaxNodes: *maxNodes},
			Workers: *parallel,
		},
		Twist: *twist,
	}
	if *solver == "cfr" {
		config.CFRIterations = *cfrIter
	}
	analysis, err := g.Analyze(ctx, config)
	if err != nil {
		glog.Fatal(err)
	}
	glog.Infof("Analyzed %s in %v", *game, time.Since(start))

	var eq matrixgame.Equilibrium
	switch *solver {
	case "lp":
		eq, err = matrixgame.SolveBoth(analysis.Payoffs)
		if err != nil {
			glog.Fatal(err)
		}
	case "fp":
		rng := rand.New(rand.NewSource(*seed))
		eq.First, eq.Second = matrixgame.FictitiousPlay(analysis.Payoffs, *fpIter, *fpLambda, rng)
		eq.Value = matrixgame.ExpectedPayoff(analysis.Payoffs, eq.First, eq.Second)
	case "cfr":
		eq.Value = analysis.CFR.Value
	default:
		glog.Fatalf("Unknown solver %q", *solver)
	}

	printReport(analysis, eq)

	if *output != "" {
		report := Report{Game: *game, Twist: *twist, Analysis: *analysis, Equilibrium: eq}
		if err := saveReport(*output, &report); err != nil {
			glog.Fatal(err)
		}
	}
}

func printReport(analysis *gametree.Analysis, eq matrixgame.Equilibrium) {
	fmt.Printf("%d nodes, %d x %d pure strategies\n",
		analysis.NumNodes, len(analysis.FirstStrategies), len(analysis.SecondStrategies))
	for i, row := range analysis.Payoffs {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%6.3f", v)
		}
		fmt.Printf("%s  %s\n", strings.Join(cells, " "), analysis.FirstStrategies[i])
	}

	fmt.Printf("Game value: %.6f\n", eq.Value)
	if cfr := analysis.CFR; cfr != nil {
		fmt.Printf("Average strategies after %d CFR iterations:\n", cfr.Iterations)
		printBehavior("First player", cfr.FirstStrategy)
		printBehavior("Second player", cfr.SecondStrategy)
		return
	}

	printDistribution("First player", analysis.FirstStrategies, eq.First)
	printDistribution("Second player", analysis.SecondStrategies, eq.Second)
}

func printBehavior(name string, infoSets []string) {
	fmt.Printf("%s:\n", name)
	for _, s := range infoSets {
		fmt.Printf("  %s\n", s)
	}
}

func printDistribution(name string, strategies []string, p []float64) {
	fmt.Printf("%s:\n", name)
	for i, v := range p {
		if v > 1e-9 {
			fmt.Printf("  %.6f  %s\n", v, strategies[i])
		}
	}
}

func saveReport(filename string, report *Report) error {
	glog.Infof("Saving report to: %v", filename)
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := gzip.NewWriter(f)
	enc := gob.NewEncoder(w)
	if err := enc.Encode(report); err != nil {
		w.Close()
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	return f.Close()
}

func loadReport(filename string) (*Report, error) {
	glog.Infof("Loading report from: %v", filename)
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var report Report
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&report); err != nil {
		return nil, err
	}

	return &report, nil
}
