package engine

import (
	"runtime"

	"github.com/rs/zerolog"
)

// config collects the values every engine.Option mutates, following the
// functional-options idiom the teacher's builder package uses for its own
// construction surface: options never reach into Engine directly; each
// Option mutates only this struct, and New applies them in order without
// further validation.
type config struct {
	logger          zerolog.Logger
	workers         int
	uniformColoring bool
	alignment       int
	seed            int64
}

func defaultConfig() config {
	return config{
		logger:    zerolog.Nop(),
		workers:   runtime.GOMAXPROCS(0),
		alignment: 32,
		seed:      1,
	}
}

// Option configures an Engine at construction time.
type Option func(*config)

// WithLogger injects a structured logger for sweep/lifecycle telemetry.
// Unset, the engine is silent (zerolog.Nop()).
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithWorkers sets the number of goroutines each kernel phase partitions its
// species population across. n <= 0 is ignored (keeps the default of
// runtime.GOMAXPROCS(0)).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithColoring selects whether Initialize rebalances the greedy coloring
// toward uniform species populations (spec's "uniform colors" flag, resolved
// as color.Balance's swap-to-median heuristic).
func WithColoring(uniform bool) Option {
	return func(c *config) { c.uniformColoring = uniform }
}

// WithAlignment overrides the species-region padding alignment (default 32).
func WithAlignment(a int) Option {
	return func(c *config) {
		if a > 0 {
			c.alignment = a
		}
	}
}

// WithSeed sets the construction seed for the engine's per-substep species
// and direction-hash seed stream (default 1).
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}
