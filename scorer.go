package morpholm

import (
	"context"
	"fmt"
	"time"

	"github.com/ieee0824/morpholm-go/language"
	"github.com/ieee0824/morpholm-go/morph"
	"github.com/ieee0824/morpholm-go/vocab"
)

// Scorer is the surface a decoder uses to score its hypotheses.
type Scorer interface {
	// EmptyState returns the state of a hypothesis that has produced
	// nothing yet. Its context is <s>.
	EmptyState() State

	// Tokenize turns raw decoder output into tokens for Extend.
	Tokenize(raw ...string) []morph.Token

	// Extend scores tokens appended to the hypothesis in prev. When
	// complete is set the hypothesis covers the whole input and </s> is
	// scored as well.
	Extend(prev State, tokens []morph.Token, complete bool) (float64, State)

	// Compare orders states for hypothesis recombination.
	Compare(a, b State) int
}

type options struct {
	logger   *Logger
	metrics  MetricsCollector
	features FeatureScorer
}

// Option configures a Scorer.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithFeatureScorer sets the collaborator used by StrategySubWord.
func WithFeatureScorer(f FeatureScorer) Option {
	return func(o *options) {
		if f != nil {
			o.features = f
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   NoopLogger(),
		metrics:  NoopMetricsCollector{},
		features: ConstantFeatureScorer(1.0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New loads the model named by cfg.Path and returns the configured scorer.
// A subword scorer without a path runs on its feature scorer alone.
func New(ctx context.Context, cfg Config, opts ...Option) (Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	var model *language.Model
	switch {
	case cfg.Path != "":
		var err error
		model, err = language.LoadFile(ctx, cfg.Path,
			language.WithLogger(o.logger.Logger),
			language.WithFormat(cfg.Format),
		)
		if err != nil {
			o.logger.LogLoad(ctx, cfg.Path, language.LoadStats{}, err)
			return nil, err
		}
		o.logger.LogLoad(ctx, cfg.Path, model.Stats, nil)
	case cfg.Strategy != StrategySubWord:
		return nil, &ConfigError{Key: "path", cause: ErrMissingPath}
	}
	return NewWithModel(cfg, model, opts...)
}

// NewWithModel returns the configured scorer over an already loaded model.
// model may be nil only for StrategySubWord.
func NewWithModel(cfg Config, model *language.Model, opts ...Option) (Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	if model == nil && cfg.Strategy != StrategySubWord {
		return nil, &ConfigError{Key: "path", cause: ErrMissingPath}
	}

	e := engine{
		order:   cfg.Order,
		history: max(cfg.Order-1, 1),
		factor:  cfg.Factor,
		marker:  cfg.Marker,
		model:   model,
		metrics: o.metrics,
	}

	modelOrder := 0
	if model != nil {
		modelOrder = model.Order
	}
	o.logger.WithStrategy(cfg.Strategy).LogScorer(context.Background(), cfg, modelOrder)

	switch cfg.Strategy {
	case StrategyNGram:
		e.marker = ""
		s := &NGramScorer{engine: e}
		s.scoreWord = s.modelScore
		return s, nil
	case StrategyMorpheme:
		s := &MorphemeScorer{engine: e}
		s.scoreWord = s.modelScore
		return s, nil
	case StrategySubWord:
		s := &SubWordScorer{engine: e, features: o.features}
		s.scoreWord = s.featureScore
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
}

// engine holds the stitching and bookkeeping shared by every strategy.
// Strategies differ in how a word is scored in its window.
type engine struct {
	order     int
	history   int // completed words kept in State
	factor    int
	marker    string // "" disables stitching
	model     *language.Model
	metrics   MetricsCollector
	scoreWord func(window []vocab.WordId, pieces []string) float64
}

func (e *engine) EmptyState() State {
	return State{context: []vocab.WordId{vocab.SentenceStart}}
}

func (e *engine) Tokenize(raw ...string) []morph.Token {
	out := make([]morph.Token, len(raw))
	for i, r := range raw {
		out[i] = morph.Parse(morph.SelectFactor(r, e.factor), e.marker)
	}
	return out
}

func (e *engine) Compare(a, b State) int { return a.Compare(b) }

func (e *engine) Extend(prev State, tokens []morph.Token, complete bool) (float64, State) {
	start := time.Now()

	ctx := make([]vocab.WordId, len(prev.context), max(len(prev.context), e.history)+1)
	copy(ctx, prev.context)
	unfinished := prev.unfinished
	pending := prev.pending
	window := make([]vocab.WordId, 0, e.order)
	delta := 0.0

	for _, tok := range tokens {
		if e.marker == "" {
			// Whole-word scoring: markers are part of the word.
			tok = morph.Token{Surface: tok.Surface, Stem: tok.Surface, Kind: morph.None}
		}
		tr := morph.Step(unfinished, tok)
		if tr.Word == "" {
			continue
		}
		if !tr.Valid {
			e.metrics.RecordInvalid()
		}
		if tr.Retract {
			delta -= pending
			e.metrics.RecordRetraction()
		}

		id := vocab.Intern(tr.Word)
		window = e.window(window[:0], ctx, id)
		score := e.scoreWord(window, tr.Pieces)
		delta += score
		pending = score

		// An open word is speculative and stays out of the context.
		if !tr.Open() {
			ctx = e.commit(ctx, id)
		}
		unfinished = tr.Next
	}

	if complete {
		// A word still open at the end of the sentence counts as finished;
		// its score is already in the total.
		if unfinished != "" {
			ctx = e.commit(ctx, vocab.Intern(unfinished))
			unfinished = ""
		}
		window = e.window(window[:0], ctx, vocab.SentenceEnd)
		delta += e.scoreWord(window, []string{vocab.EndSymbol})
		ctx = e.commit(ctx, vocab.SentenceEnd)
		pending = 0
	}

	e.metrics.RecordExtend(len(tokens), time.Since(start))
	return delta, State{context: ctx, unfinished: unfinished, pending: pending}
}

// window appends to dst the last order-1 words of ctx followed by id.
func (e *engine) window(dst, ctx []vocab.WordId, id vocab.WordId) []vocab.WordId {
	keep := min(len(ctx), e.order-1)
	dst = append(dst, ctx[len(ctx)-keep:]...)
	return append(dst, id)
}

// commit appends id to ctx and drops the oldest words past the history length.
func (e *engine) commit(ctx []vocab.WordId, id vocab.WordId) []vocab.WordId {
	ctx = append(ctx, id)
	if over := len(ctx) - e.history; over > 0 {
		ctx = append(ctx[:0], ctx[over:]...)
	}
	return ctx
}

func (e *engine) modelScore(window []vocab.WordId, _ []string) float64 {
	score, backoffs, oov := e.model.Trace(window)
	e.metrics.RecordLookup(backoffs, oov)
	return score
}

// NGramScorer scores each token as a complete word.
type NGramScorer struct {
	engine
}

// MorphemeScorer stitches marked morphemes into words and scores the words
// with the n-gram model.
type MorphemeScorer struct {
	engine
}

// Model returns the language model.
func (s *MorphemeScorer) Model() *language.Model { return s.model }

// Model returns the language model.
func (s *NGramScorer) Model() *language.Model { return s.model }
