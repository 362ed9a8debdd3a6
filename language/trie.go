package language

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/ieee0824/morpholm-go/vocab"
)

// Entry is the payload stored for an observed n-gram.
// Both values are log10, exactly as written in the model file.
type Entry struct {
	Prob    float64
	Backoff float64
}

type trieNode struct {
	children map[vocab.WordId]*trieNode
	entry    *Entry
}

// Trie maps word sequences (oldest first, most recent last) to entries.
// It is built once and must not be modified while it is being read.
type Trie struct {
	root     trieNode
	size     int
	maxOrder int
}

// NewTrie creates an empty trie. The root represents the empty context.
func NewTrie() *Trie {
	return &Trie{}
}

// Insert stores e for ctx, creating intermediate nodes as needed.
// Inserting the same context twice keeps the last entry.
func (t *Trie) Insert(ctx []vocab.WordId, e Entry) {
	cur := &t.root
	for _, w := range ctx {
		if cur.children == nil {
			cur.children = make(map[vocab.WordId]*trieNode)
		}
		next, ok := cur.children[w]
		if !ok {
			next = &trieNode{}
			cur.children[w] = next
		}
		cur = next
	}
	if cur.entry == nil {
		t.size++
	}
	entry := e
	cur.entry = &entry
	if len(ctx) > t.maxOrder {
		t.maxOrder = len(ctx)
	}
}

// Lookup returns the entry stored for exactly ctx.
func (t *Trie) Lookup(ctx []vocab.WordId) (Entry, bool) {
	cur := &t.root
	for _, w := range ctx {
		next, ok := cur.children[w]
		if !ok {
			return Entry{}, false
		}
		cur = next
	}
	if cur.entry == nil {
		return Entry{}, false
	}
	return *cur.entry, true
}

// Len returns the number of stored entries.
func (t *Trie) Len() int { return t.size }

// MaxOrder returns the length of the longest stored context.
func (t *Trie) MaxOrder() int { return t.maxOrder }

// Vocabulary returns the ids of all words that have a unigram entry.
func (t *Trie) Vocabulary() *roaring.Bitmap {
	bm := roaring.New()
	for w, child := range t.root.children {
		if child.entry != nil {
			bm.Add(uint32(w))
		}
	}
	return bm
}
