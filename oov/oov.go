// Package oov measures how much of a corpus a vocabulary covers.
package oov

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ieee0824/morpholm-go/internal/modelfile"
	"github.com/ieee0824/morpholm-go/language"
	"github.com/ieee0824/morpholm-go/morph"
	"github.com/ieee0824/morpholm-go/vocab"
)

// Vocabulary is a set of interned words.
type Vocabulary struct {
	words *roaring.Bitmap
}

// FromModel returns the unigram vocabulary of m.
func FromModel(m *language.Model) *Vocabulary {
	return &Vocabulary{words: m.Trie().Vocabulary()}
}

// FromCorpus collects every whitespace-separated word of r.
func FromCorpus(r io.Reader, opts ...Option) (*Vocabulary, error) {
	o := newOptions(opts)
	v := &Vocabulary{words: roaring.New()}
	err := eachLine(r, o, func(words []string) {
		for _, w := range words {
			v.words.Add(uint32(vocab.Intern(w)))
		}
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Contains reports whether w is in the vocabulary.
func (v *Vocabulary) Contains(w string) bool {
	id, ok := vocab.Default.Find(w)
	return ok && v.words.Contains(uint32(id))
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int { return int(v.words.GetCardinality()) }

// Report holds token and type counts of a measured corpus.
type Report struct {
	Tokens    int
	OOVTokens int
	Types     int
	OOVTypes  int
}

// Rate returns the fraction of tokens not in the vocabulary.
func (r Report) Rate() float64 {
	if r.Tokens == 0 {
		return 0
	}
	return float64(r.OOVTokens) / float64(r.Tokens)
}

// TypeRate returns the fraction of distinct words not in the vocabulary.
func (r Report) TypeRate() float64 {
	if r.Types == 0 {
		return 0
	}
	return float64(r.OOVTypes) / float64(r.Types)
}

type options struct {
	marker string
}

// Option configures corpus reading.
type Option func(*options)

// WithMarker stitches marked morphemes into words before counting.
func WithMarker(marker string) Option {
	return func(o *options) { o.marker = marker }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// tally is the per-corpus result before types are merged.
type tally struct {
	tokens, oovTokens int
	types, oovTypes   *roaring.Bitmap
}

func (v *Vocabulary) count(r io.Reader, o options) (*tally, error) {
	t := &tally{types: roaring.New(), oovTypes: roaring.New()}
	err := eachLine(r, o, func(words []string) {
		for _, w := range words {
			id := uint32(vocab.Intern(w))
			t.tokens++
			t.types.Add(id)
			if !v.words.Contains(id) {
				t.oovTokens++
				t.oovTypes.Add(id)
			}
		}
	})
	return t, err
}

func (t *tally) report() Report {
	return Report{
		Tokens:    t.tokens,
		OOVTokens: t.oovTokens,
		Types:     int(t.types.GetCardinality()),
		OOVTypes:  int(t.oovTypes.GetCardinality()),
	}
}

// Measure counts the words of r that v does not contain.
func Measure(v *Vocabulary, r io.Reader, opts ...Option) (Report, error) {
	t, err := v.count(r, newOptions(opts))
	if err != nil {
		return Report{}, err
	}
	return t.report(), nil
}

// MeasureFiles measures several corpus files concurrently and merges the
// counts. Types are counted once across all files.
func MeasureFiles(ctx context.Context, v *Vocabulary, paths []string, opts ...Option) (Report, error) {
	o := newOptions(opts)
	tallies := make([]*tally, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			rc, err := modelfile.Open(ctx, path)
			if err != nil {
				return fmt.Errorf("open corpus: %w", err)
			}
			defer rc.Close()
			t, err := v.count(rc, o)
			if err != nil {
				return fmt.Errorf("read corpus %s: %w", path, err)
			}
			tallies[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	merged := &tally{types: roaring.New(), oovTypes: roaring.New()}
	for _, t := range tallies {
		merged.tokens += t.tokens
		merged.oovTokens += t.oovTokens
		merged.types.Or(t.types)
		merged.oovTypes.Or(t.oovTypes)
	}
	return merged.report(), nil
}

func eachLine(r io.Reader, o options, fn func(words []string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}
		if o.marker != "" {
			words = morph.Join(words, o.marker)
		}
		fn(words)
	}
	return scanner.Err()
}
