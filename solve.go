package wordsearchx

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// Solve searches g for every word in parallel, writing the path of words[i]
// into results[i]. results[i] must be pre-sized to len(words[i]); Solve never
// allocates, resizes or replaces a result buffer.
//
// The word list is split with Partition and each span runs on its own
// goroutine, so no two workers ever touch the same result buffer. Solve
// blocks until every worker returns and reports the indices of the words that
// were found. Buffers of words that were not found are left as the caller
// supplied them.
//
// Shape problems are rejected before any work starts: ErrInvalidGrid,
// ErrShapeMismatch or ErrInvalidThreadCount. If ctx is canceled the workers
// stop between words and ErrCanceled is returned.
func Solve(ctx context.Context, g Grid, words []string, results [][]Coord, threads int) (*roaring.Bitmap, error) {
	if err := validateShapes(g, words, results, threads); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, errors.WithSecondaryError(ErrCanceled, ctx.Err())
	default:
	}

	spans := Partition(len(words), threads)
	if len(spans) == 0 {
		return roaring.New(), nil
	}

	// One bitmap per worker; they are only merged after Wait.
	found := make([]*roaring.Bitmap, len(spans))

	eg, egCtx := errgroup.WithContext(ctx)
	for t, span := range spans {
		eg.Go(func() error {
			local := roaring.New()
			found[t] = local
			for i := span.From; i < span.To; i++ {
				if err := egCtx.Err(); err != nil {
					return errors.WithSecondaryError(ErrCanceled, err)
				}
				if FindWord(g, words[i], results[i]) {
					local.Add(uint32(i))
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return roaring.FastOr(found...), nil
}

func validateShapes(g Grid, words []string, results [][]Coord, threads int) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if threads < 1 {
		return markf(ErrInvalidThreadCount, "thread count must be at least 1, got %d", threads)
	}
	if len(words) != len(results) {
		return markf(ErrShapeMismatch, "%d words but %d result buffers", len(words), len(results))
	}
	for i, w := range words {
		if len(results[i]) != len(w) {
			return markf(ErrShapeMismatch, "result %d holds %d coordinates for word %q of length %d", i, len(results[i]), w, len(w))
		}
	}
	return nil
}
