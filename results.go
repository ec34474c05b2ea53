package wordsearchx

import "github.com/RoaringBitmap/roaring/v2"

// Match is the outcome of searching for a single word.
type Match struct {
	// Word is the word that was searched for.
	Word string `json:"word"`

	// Found reports whether the word occurs in the grid.
	Found bool `json:"found"`

	// Path holds one coordinate per character when Found is true.
	Path []Coord `json:"path,omitempty"`
}

// Solution represents the outcome of solving a whole puzzle.
type Solution struct {
	// PuzzleID identifies the solved puzzle, if it came from a store.
	PuzzleID string `json:"puzzle_id,omitempty"`

	// Rows and Cols are the grid extents.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Matches is index-aligned with the puzzle's word list.
	Matches []Match `json:"matches"`

	// Threads is the worker count the solve was run with.
	Threads int `json:"threads"`

	// Took is the time taken to solve in milliseconds.
	Took int64 `json:"took_ms"`
}

// NewSolution assembles a Solution from the buffers passed to Solve and the
// returned found set. Paths of words that were not found are dropped.
func NewSolution(g Grid, words []string, results [][]Coord, found *roaring.Bitmap) *Solution {
	s := &Solution{
		Rows:    g.Rows,
		Cols:    g.Cols,
		Matches: make([]Match, len(words)),
	}
	for i, w := range words {
		s.Matches[i].Word = w
		if found != nil && found.Contains(uint32(i)) {
			s.Matches[i].Found = true
			s.Matches[i].Path = results[i]
		}
	}
	return s
}

// Missing returns the words that were not found, in word-list order.
func (s *Solution) Missing() []string {
	var missing []string
	for _, m := range s.Matches {
		if !m.Found {
			missing = append(missing, m.Word)
		}
	}
	return missing
}

// FoundCount returns the number of words that were found.
func (s *Solution) FoundCount() int {
	n := 0
	for _, m := range s.Matches {
		if m.Found {
			n++
		}
	}
	return n
}
