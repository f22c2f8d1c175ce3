package engine

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
)

// Config controls a tree build.
type Config struct {
	Threads   int       // workers for the parallel path; 1 forces the sequential path
	Depth     int       // plies below the root, 0..MaxDepth
	Evaluator Evaluator // leaf scoring; Material when nil
	Logger    zerolog.Logger
}

// DefaultConfig searches five plies on every CPU with the material evaluator.
func DefaultConfig() Config {
	return Config{
		Threads:   runtime.NumCPU(),
		Depth:     5,
		Evaluator: Material,
		Logger:    zerolog.Nop(),
	}
}

// Validate checks the thread count and depth.
func (c Config) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidThreads, c.Threads)
	}
	if c.Depth < 0 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidDepth, c.Depth, MaxDepth)
	}
	return nil
}

func (c Config) evaluator() Evaluator {
	if c.Evaluator == nil {
		return Material
	}
	return c.Evaluator
}
