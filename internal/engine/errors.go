package engine

import "errors"

var (
	ErrInvalidDepth    = errors.New("engine: depth out of range")
	ErrInvalidThreads  = errors.New("engine: thread count must be positive")
	ErrBranchingFactor = errors.New("engine: branching factor above ceiling")
)
