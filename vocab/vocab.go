// Package vocab interns word and morpheme surfaces into compact identifiers.
//
// A single process-wide table (Default) is shared by the loader and every
// scorer so that ids produced while loading a model match the ids produced
// while stitching morphemes at decode time.
package vocab

import "sync"

// WordId identifies an interned surface string. Ids are assigned in
// first-intern order; ordering between ids is by that identity.
type WordId uint32

// Reserved surfaces.
const (
	StartSymbol   = "<s>"
	EndSymbol     = "</s>"
	UnknownSymbol = "<unk>"
)

// Table maps surfaces to ids and back. It is safe for concurrent use.
type Table struct {
	mu    sync.RWMutex
	ids   map[string]WordId
	words []string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{ids: make(map[string]WordId)}
}

// Default is the process-wide table.
var Default = NewTable()

// Reserved ids in Default.
var (
	SentenceStart = Default.Intern(StartSymbol)
	SentenceEnd   = Default.Intern(EndSymbol)
	Unknown       = Default.Intern(UnknownSymbol)
)

// Intern returns the id for s, adding it if needed.
func (t *Table) Intern(s string) WordId {
	t.mu.RLock()
	id, ok := t.ids[s]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[s]; ok {
		return id
	}
	id = WordId(len(t.words))
	t.ids[s] = id
	t.words = append(t.words, s)
	return id
}

// Find returns the id for s without adding it.
func (t *Table) Find(s string) (WordId, bool) {
	t.mu.RLock()
	id, ok := t.ids[s]
	t.mu.RUnlock()
	return id, ok
}

// String returns the surface for id, or "" if id was never issued.
func (t *Table) String(id WordId) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) >= len(t.words) {
		return ""
	}
	return t.words[id]
}

// Len returns the number of interned surfaces.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.words)
}

// Intern interns s in Default.
func Intern(s string) WordId { return Default.Intern(s) }

// String looks up id in Default.
func String(id WordId) string { return Default.String(id) }

// Strings converts ids to their surfaces using Default.
func Strings(ids []WordId) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = Default.String(id)
	}
	return out
}

// Compare orders two id sequences element-wise, shorter first on a common prefix.
func Compare(a, b []WordId) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return +1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return +1
	}
	return 0
}
