package language

import (
	"github.com/ieee0824/morpholm-go/vocab"
)

// DefaultOOVPenalty is used when a model does not define <unk>.
const DefaultOOVPenalty = -1e10

// Model is a backoff n-gram language model over interned words.
type Model struct {
	Order int     // longest n-gram in the model
	OOV   float64 // log10 penalty for words missing from the unigrams
	Stats LoadStats

	trie *Trie
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		OOV:  DefaultOOVPenalty,
		trie: NewTrie(),
	}
}

// Trie returns the underlying store.
func (m *Model) Trie() *Trie { return m.trie }

// Add interns words and stores e for them.
func (m *Model) Add(words []string, e Entry) {
	ctx := make([]vocab.WordId, len(words))
	for i, w := range words {
		ctx[i] = vocab.Intern(w)
	}
	m.trie.Insert(ctx, e)
	if len(ctx) > m.Order {
		m.Order = len(ctx)
	}
}

// Score returns the log10 probability of the last word of ctx given the
// words before it. Unseen contexts back off by dropping the oldest word
// and adding the backoff weight of the history, down to the unigram, where a
// miss costs the OOV penalty. ctx must not be empty.
func (m *Model) Score(ctx []vocab.WordId) float64 {
	score, _, _ := m.Trace(ctx)
	return score
}

// Trace is Score that also reports how many backoff steps were taken and
// whether the unigram lookup missed.
func (m *Model) Trace(ctx []vocab.WordId) (score float64, backoffs int, oov bool) {
	if len(ctx) == 0 {
		panic("language: score of empty context")
	}
	for len(ctx) > 1 {
		if e, ok := m.trie.Lookup(ctx); ok {
			return score + e.Prob, backoffs, false
		}
		if e, ok := m.trie.Lookup(ctx[:len(ctx)-1]); ok {
			score += e.Backoff
		}
		ctx = ctx[1:]
		backoffs++
	}
	if e, ok := m.trie.Lookup(ctx); ok {
		return score + e.Prob, backoffs, false
	}
	return score + m.OOV, backoffs, true
}

// LogProb returns the log10 probability of word given its history.
// Only the last Order-1 history words are used.
func (m *Model) LogProb(history []string, word string) float64 {
	n := min(len(history), max(m.Order-1, 0))
	ctx := make([]vocab.WordId, 0, n+1)
	for _, h := range history[len(history)-n:] {
		ctx = append(ctx, vocab.Intern(h))
	}
	ctx = append(ctx, vocab.Intern(word))
	return m.Score(ctx)
}

// SentenceLogProb returns the total log10 probability of a sentence.
// <s> and </s> are added automatically.
func (m *Model) SentenceLogProb(words []string) float64 {
	total := 0.0
	history := []string{vocab.StartSymbol}
	for _, w := range words {
		total += m.LogProb(history, w)
		history = append(history, w)
	}
	total += m.LogProb(history, vocab.EndSymbol)
	return total
}

// Vocab returns all words in the unigram vocabulary.
func (m *Model) Vocab() []string {
	bm := m.trie.Vocabulary()
	words := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		words = append(words, vocab.String(vocab.WordId(it.Next())))
	}
	return words
}
