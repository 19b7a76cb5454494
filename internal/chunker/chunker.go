// Package chunker splits document text into overlapping chunks for embedding.
package chunker

import (
	"fmt"
	"iter"
	"unicode"
)

// Policy bounds chunk size and neighbor overlap, both counted in runes.
type Policy struct {
	MaxChars int
	Overlap  int
}

// Validate checks 0 < Overlap < MaxChars.
func (p Policy) Validate() error {
	if p.MaxChars <= 0 {
		return fmt.Errorf("max chars must be positive, got %d", p.MaxChars)
	}
	if p.Overlap <= 0 || p.Overlap >= p.MaxChars {
		return fmt.Errorf("overlap must be between 1 and %d, got %d", p.MaxChars-1, p.Overlap)
	}
	return nil
}

// Stride is the distance in runes between the starts of consecutive chunks.
func (p Policy) Stride() int {
	return p.MaxChars - p.Overlap
}

// Splitter produces overlapping chunks under a fixed policy.
type Splitter struct {
	policy Policy
}

// New creates a splitter, validating the policy.
func New(p Policy) (*Splitter, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("chunk policy: %w", err)
	}
	return &Splitter{policy: p}, nil
}

// Policy returns the splitter's chunk policy.
func (s *Splitter) Policy() Policy {
	return s.policy
}

// Split returns a lazy, restartable sequence of non-empty chunks covering
// text with no gaps. Chunk i+1 begins Stride runes after chunk i begins.
// A non-final chunk may end early at a whitespace rune found inside its
// overlap tail; the cut never moves before the next chunk's start, so the
// first Stride runes of every non-final chunk stay intact and the input can
// be reconstructed exactly from the chunks. Empty text yields no chunks;
// text shorter than MaxChars yields a single chunk equal to the text.
func (s *Splitter) Split(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		runes := []rune(text)
		if len(runes) == 0 {
			return
		}
		stride := s.policy.Stride()
		for start := 0; ; start += stride {
			end := start + s.policy.MaxChars
			if end >= len(runes) {
				yield(string(runes[start:]))
				return
			}
			cut := boundaryCut(runes, start+stride, end)
			if !yield(string(runes[start:cut])) {
				return
			}
		}
	}
}

// SplitAll collects the full chunk sequence into a slice.
func (s *Splitter) SplitAll(text string) []string {
	var chunks []string
	for c := range s.Split(text) {
		chunks = append(chunks, c)
	}
	return chunks
}

// boundaryCut finds the cut position for a non-final chunk: just after the
// last whitespace rune in runes[lo:hi], or hi when the tail has none.
// The result is always in (lo, hi], keeping coverage gap-free.
func boundaryCut(runes []rune, lo, hi int) int {
	for i := hi - 1; i >= lo; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return hi
}
