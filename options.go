package wordsearchx

import (
	"log/slog"
	"runtime"
)

// SolveOption represents a solve configuration option.
type SolveOption interface {
	Apply(*SolveConfig)
}

// SolveConfig holds all solve configuration parameters.
type SolveConfig struct {
	// Threads is the maximum number of workers used for one solve.
	Threads int

	// Logger receives debug output from solvers. Nil disables logging.
	Logger *slog.Logger
}

// NewSolveConfig applies opts over the defaults: one worker per CPU, no logger.
func NewSolveConfig(opts ...SolveOption) *SolveConfig {
	cfg := &SolveConfig{}
	for _, opt := range opts {
		opt.Apply(cfg)
	}

	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	return cfg
}

// optionFunc is a function that implements SolveOption.
type optionFunc func(*SolveConfig)

// Apply implements the SolveOption interface for optionFunc.
func (f optionFunc) Apply(cfg *SolveConfig) {
	f(cfg)
}

// WithThreads sets the worker count. Values below one select the default.
func WithThreads(n int) SolveOption {
	return optionFunc(func(cfg *SolveConfig) {
		cfg.Threads = n
	})
}

// WithLogger sets the logger used for solve diagnostics.
func WithLogger(l *slog.Logger) SolveOption {
	return optionFunc(func(cfg *SolveConfig) {
		cfg.Logger = l
	})
}
