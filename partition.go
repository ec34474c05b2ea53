package wordsearchx

// Span is a half-open range [From, To) of word indices handled by one worker.
type Span struct {
	From int
	To   int
}

// Len returns the number of indices in the span.
func (s Span) Len() int {
	return s.To - s.From
}

// Partition splits wordCount indices into contiguous spans of
// ceil(wordCount/threads) words each. Spans are never empty, so fewer than
// threads spans are returned when there are not enough words to go round.
// A non-positive threads value is treated as one.
func Partition(wordCount, threads int) []Span {
	if wordCount <= 0 {
		return nil
	}
	if threads < 1 {
		threads = 1
	}

	per := wordCount / threads
	if wordCount%threads != 0 {
		per++
	}

	spans := make([]Span, 0, (wordCount+per-1)/per)
	for from := 0; from < wordCount; from += per {
		spans = append(spans, Span{From: from, To: min(from+per, wordCount)})
	}
	return spans
}
