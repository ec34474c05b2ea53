package inmemory

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/wordsearchx"
	"github.com/letmevibethatforyou/wordsearchx/board"
)

// Puzzle is a grid together with the words to look for in it.
type Puzzle struct {
	// ID is the unique identifier for the puzzle.
	ID string
	// Grid is the letter board. It must not be modified once added.
	Grid wordsearchx.Grid
	// Words lists the words to find, in report order.
	Words []string
}

// puzzleJSON is the wire form accepted by AddJSON. Either Rows or Cells
// describes the board; Rows wins when both are present.
type puzzleJSON struct {
	Rows  []string   `json:"rows"`
	Cells [][]string `json:"cells"`
	Words []string   `json:"words"`
}

// Store implements the wordsearchx.Solver interface over puzzles held in memory.
type Store struct {
	mu      sync.RWMutex
	puzzles []Puzzle
	idIndex map[string]int // maps puzzle ID to index in puzzles slice
}

// New creates a new in-memory puzzle store.
// The store is ready to use and is safe for concurrent operations.
func New() *Store {
	return &Store{
		puzzles: make([]Puzzle, 0),
		idIndex: make(map[string]int),
	}
}

// AddPuzzle adds a puzzle to the store.
// If a puzzle with the same ID already exists, it will be replaced.
// This method is safe for concurrent use.
func (s *Store) AddPuzzle(p Puzzle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, exists := s.idIndex[p.ID]; exists {
		s.puzzles[idx] = p
	} else {
		s.idIndex[p.ID] = len(s.puzzles)
		s.puzzles = append(s.puzzles, p)
	}
}

// AddJSON decodes a puzzle of the form {"rows": [...], "words": [...]} and adds it.
// A 2-D "cells" array of single characters is accepted in place of "rows".
// This method is safe for concurrent use.
func (s *Store) AddJSON(id string, jsonData []byte) error {
	var raw puzzleJSON
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to unmarshal puzzle JSON"), wordsearchx.ErrInvalidPuzzle)
	}

	var (
		g   wordsearchx.Grid
		err error
	)
	if len(raw.Rows) > 0 {
		g, err = board.FromRows(raw.Rows)
	} else {
		g, err = board.FromCells(raw.Cells)
	}
	if err != nil {
		return errors.Wrapf(err, "puzzle %s", id)
	}

	s.AddPuzzle(Puzzle{
		ID:    id,
		Grid:  g,
		Words: raw.Words,
	})
	return nil
}

// Get returns the puzzle stored under id.
func (s *Store) Get(id string) (Puzzle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, exists := s.idIndex[id]
	if !exists {
		return Puzzle{}, false
	}
	return s.puzzles[idx], true
}

// RemovePuzzle removes a puzzle by ID from the store.
// Returns true if the puzzle was found and removed, false if it was not found.
// This method is safe for concurrent use.
func (s *Store) RemovePuzzle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.idIndex[id]
	if !exists {
		return false
	}

	s.puzzles = append(s.puzzles[:idx], s.puzzles[idx+1:]...)

	// Rebuild index
	delete(s.idIndex, id)
	for i := idx; i < len(s.puzzles); i++ {
		s.idIndex[s.puzzles[i].ID] = i
	}

	return true
}

// Clear removes all puzzles from the store.
// This method is safe for concurrent use.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.puzzles = make([]Puzzle, 0)
	s.idIndex = make(map[string]int)
}

// Size returns the number of puzzles currently stored.
// This method is safe for concurrent use.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.puzzles)
}

// Solve implements the wordsearchx.Solver interface.
// The store lock is only held while the puzzle is looked up, so long solves
// do not block writers.
func (s *Store) Solve(ctx context.Context, puzzleID string, opts ...wordsearchx.SolveOption) (*wordsearchx.Solution, error) {
	startTime := time.Now()

	// Check context
	select {
	case <-ctx.Done():
		return nil, wordsearchx.ErrCanceled
	default:
	}

	cfg := wordsearchx.NewSolveConfig(opts...)

	p, ok := s.Get(puzzleID)
	if !ok {
		return nil, errors.Mark(errors.Newf("no puzzle with id %q", puzzleID), wordsearchx.ErrPuzzleNotFound)
	}

	results := board.AllocateResults(p.Words)
	found, err := wordsearchx.Solve(ctx, p.Grid, p.Words, results, cfg.Threads)
	if err != nil {
		return nil, errors.Wrapf(err, "solve puzzle %s", puzzleID)
	}

	sol := wordsearchx.NewSolution(p.Grid, p.Words, results, found)
	sol.PuzzleID = puzzleID
	sol.Threads = cfg.Threads
	sol.Took = time.Since(startTime).Milliseconds()

	if cfg.Logger != nil {
		cfg.Logger.DebugContext(ctx, "solved puzzle",
			slog.String("puzzle_id", puzzleID),
			slog.Int("words", len(p.Words)),
			slog.Uint64("found", found.GetCardinality()),
			slog.Int("threads", cfg.Threads),
			slog.Int64("took_ms", sol.Took),
		)
	}

	return sol, nil
}
