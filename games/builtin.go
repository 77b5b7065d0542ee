package games

import (
	"context"

	"github.com/nikgaevoy/monty-hall/games/guess"
	"github.com/nikgaevoy/monty-hall/games/rps"
	"github.com/nikgaevoy/monty-hall/gametree"
)

// Builtin returns a registry with every game in this module.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(gameFunc{
		info: Info{"guess", "Guess a draw of 0 (p=1/4) or 2 (p=3/4) among 0, 1, 2"},
		analyze: func(ctx context.Context, config Config) (*gametree.Analysis, error) {
			return gametree.Analyze[guess.Move, guess.Move, guess.Move](ctx, guess.Rules{}, config.AnalyzeOptions)
		},
	})
	r.Register(gameFunc{
		info: Info{"rps", "Rock-paper-scissors"},
		analyze: func(ctx context.Context, config Config) (*gametree.Analysis, error) {
			return gametree.Analyze[rps.Move, rps.Intent, rps.Intent](ctx, rps.New(), config.AnalyzeOptions)
		},
	})
	r.Register(gameFunc{
		info: Info{"twisted_rps", "Rock-paper-scissors where a double-Paper tie pays the twist"},
		analyze: func(ctx context.Context, config Config) (*gametree.Analysis, error) {
			return gametree.Analyze[rps.Move, rps.Intent, rps.Intent](ctx, rps.NewTwisted(config.Twist), config.AnalyzeOptions)
		},
	})
	return r
}

type gameFunc struct {
	info    Info
	analyze func(ctx context.Context, config Config) (*gametree.Analysis, error)
}

func (g gameFunc) Info() Info {
	return g.info
}

func (g gameFunc) Analyze(ctx context.Context, config Config) (*gametree.Analysis, error) {
	return g.analyze(ctx, config)
}
