package wordsearchx

import "bytes"

// FindWord locates the first straight-line occurrence of word in g and writes
// its path into result, which must hold exactly len(word) coordinates.
//
// Candidate start cells are visited in row-major order and, for each one, the
// Directions are tried in order; the first full match is accepted. result is
// written only when a match is confirmed, so on a false return it is untouched.
// An empty word, or a result buffer shorter than word, reports false.
func FindWord(g Grid, word string, result []Coord) bool {
	n := len(word)
	if n == 0 || len(result) < n || g.Cols == 0 {
		return false
	}

	first := word[0]
	for off := 0; off < len(g.Cells); {
		i := bytes.IndexByte(g.Cells[off:], first)
		if i < 0 {
			return false
		}
		off += i

		start := Coord{Row: off / g.Cols, Col: off % g.Cols}
		for _, d := range Directions {
			if matchesAlong(g, word, start, d) {
				for k := 0; k < n; k++ {
					result[k] = start.Step(d, k)
				}
				return true
			}
		}
		off++
	}
	return false
}

// matchesAlong checks word[1:] against the cells following start along d.
func matchesAlong(g Grid, word string, start Coord, d Direction) bool {
	for k := 1; k < len(word); k++ {
		c := start.Step(d, k)
		if !g.InBounds(c.Row, c.Col) || g.At(c.Row, c.Col) != word[k] {
			return false
		}
	}
	return true
}
