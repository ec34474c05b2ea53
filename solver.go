package wordsearchx

import "context"

// Solver solves stored puzzles by ID.
type Solver interface {
	// Solve finds every word of the puzzle and reports their paths.
	Solve(ctx context.Context, puzzleID string, opts ...SolveOption) (*Solution, error)
}

// SolverFunc is a function type that implements the Solver interface.
// This allows using a function as a Solver, similar to http.HandlerFunc.
type SolverFunc func(context.Context, string, ...SolveOption) (*Solution, error)

// Solve implements the Solver interface for SolverFunc.
func (f SolverFunc) Solve(ctx context.Context, puzzleID string, opts ...SolveOption) (*Solution, error) {
	return f(ctx, puzzleID, opts...)
}
