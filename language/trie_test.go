package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrieInsertLookup(t *testing.T) {
	tr := NewTrie()
	tr.Insert(ids("a"), Entry{Prob: -1})
	tr.Insert(ids("a", "b"), Entry{Prob: -2, Backoff: -0.1})

	e, ok := tr.Lookup(ids("a", "b"))
	require.True(t, ok)
	assert.Equal(t, Entry{Prob: -2, Backoff: -0.1}, e)

	// "b" exists only as an intermediate of nothing; "b a" was never inserted.
	_, ok = tr.Lookup(ids("b"))
	assert.False(t, ok)
	_, ok = tr.Lookup(ids("b", "a"))
	assert.False(t, ok)

	// Root carries no payload.
	_, ok = tr.Lookup(nil)
	assert.False(t, ok)

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, 2, tr.MaxOrder())
}

func TestTrieIntermediateNodesHaveNoPayload(t *testing.T) {
	tr := NewTrie()
	tr.Insert(ids("p", "q", "r"), Entry{Prob: -3})

	_, ok := tr.Lookup(ids("p"))
	assert.False(t, ok)
	_, ok = tr.Lookup(ids("p", "q"))
	assert.False(t, ok)
	_, ok = tr.Lookup(ids("p", "q", "r"))
	assert.True(t, ok)
	assert.Equal(t, 1, tr.Len())
}

func TestTrieOverwrite(t *testing.T) {
	tr := NewTrie()
	tr.Insert(ids("a"), Entry{Prob: -1})
	tr.Insert(ids("a"), Entry{Prob: -4})

	e, ok := tr.Lookup(ids("a"))
	require.True(t, ok)
	assert.Equal(t, -4.0, e.Prob)
	assert.Equal(t, 1, tr.Len())
}

func TestTrieLookupDoesNotAllocate(t *testing.T) {
	tr := NewTrie()
	key := ids("x", "y", "z")
	tr.Insert(key, Entry{Prob: -1})
	miss := ids("x", "q")

	allocs := testing.AllocsPerRun(100, func() {
		tr.Lookup(key)
		tr.Lookup(miss)
	})
	assert.Zero(t, allocs)
}

func TestTrieVocabulary(t *testing.T) {
	tr := NewTrie()
	tr.Insert(ids("v1"), Entry{Prob: -1})
	tr.Insert(ids("v2", "v3"), Entry{Prob: -1})

	bm := tr.Vocabulary()
	assert.Equal(t, uint64(1), bm.GetCardinality())
	assert.True(t, bm.Contains(uint32(ids("v1")[0])))
	assert.False(t, bm.Contains(uint32(ids("v2")[0])))
}
