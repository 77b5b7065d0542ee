// Package games maps game names to the rule sets that implement them.
package games

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nikgaevoy/monty-hall/gametree"
)

// Info describes a game.
type Info struct {
	Name        string
	Description string
}

// Config holds settings for analyzing a game.
type Config struct {
	gametree.AnalyzeOptions
	// Twist is the payoff of the tie that twisted games change.
	Twist float64
}

// Game computes the normal form of a rule set.
type Game interface {
	Info() Info
	Analyze(ctx context.Context, config Config) (*gametree.Analysis, error)
}

// Registry holds all registered games.
type Registry struct {
	mu    sync.RWMutex
	games map[string]Game
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]Game)}
}

// Register adds a game. Panics on duplicate names.
func (r *Registry) Register(g Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := g.Info().Name
	if _, exists := r.games[name]; exists {
		panic(fmt.Sprintf("game %q already registered", name))
	}
	r.games[name] = g
}

// Get returns a game by name.
func (r *Registry) Get(name string) (Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[name]
	return g, ok
}

// List returns info for all registered games, sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.games))
	for _, g := range r.games {
		infos = append(infos, g.Info())
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
