package language

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTab = `# comment
-1.0	a b	-0.3
-2.0	b
-1.5	a	-0.2
-4.25	<unk>

only-one-field
nan-ish	c
-3.0		-0.1
-2.5	d	zz
-0.5	<s> a
`

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(testTab))
	require.NoError(t, err)

	assert.Equal(t, 2, m.Order)
	assert.Equal(t, -4.25, m.OOV)
	assert.Equal(t, 4, m.Stats.Entries)
	assert.Equal(t, 4, m.Stats.Skipped)
	assert.Equal(t, 11, m.Stats.Lines)
	assert.True(t, m.Stats.OOV)

	e, ok := m.Trie().Lookup(ids("a", "b"))
	require.True(t, ok)
	assert.Equal(t, Entry{Prob: -1.0, Backoff: -0.3}, e)

	e, ok = m.Trie().Lookup(ids("b"))
	require.True(t, ok)
	assert.Equal(t, Entry{Prob: -2.0}, e)

	// <unk> is a penalty, not an entry.
	_, ok = m.Trie().Lookup(ids("<unk>"))
	assert.False(t, ok)
}

func TestLoadWithoutUnk(t *testing.T) {
	m, err := Load(strings.NewReader("-1.0\tw\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOOVPenalty, m.OOV)
	assert.False(t, m.Stats.OOV)
}

func TestLoadLogsSkippedLines(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Load(strings.NewReader("garbage\n-1.0\tw\n"), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "skipping model line")
	assert.Contains(t, buf.String(), "too few fields")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	tabPath := filepath.Join(dir, "lm.txt.gz")
	f, err := os.Create(tabPath)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(testTab))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	m, err := LoadFile(context.Background(), tabPath)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Stats.Entries)

	arpaPath := filepath.Join(dir, "lm.arpa")
	require.NoError(t, os.WriteFile(arpaPath, []byte(testARPA), 0o644))
	m, err = LoadFile(context.Background(), arpaPath)
	require.NoError(t, err)
	assert.Equal(t, -6.0, m.OOV)

	// Forcing the tab reader on an ARPA file keeps the unigrams and skips
	// the headers. The bigram words are tab-separated, so the second word
	// lands in the backoff column and those lines are skipped too.
	m, err = LoadFile(context.Background(), arpaPath, WithFormat(FormatTab))
	require.NoError(t, err)
	assert.Equal(t, 4, m.Stats.Entries)
	assert.Equal(t, 9, m.Stats.Skipped)

	_, err = LoadFile(context.Background(), arpaPath, WithFormat("binary"))
	assert.Error(t, err)

	_, err = LoadFile(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
