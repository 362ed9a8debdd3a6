package morpholm

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogScorerStrategyOnce(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, nil))

	cfg := DefaultConfig()
	cfg.Order = 3
	l.WithStrategy(cfg.Strategy).LogScorer(context.Background(), cfg, 2)

	out := buf.String()
	assert.Contains(t, out, "scorer ready")
	assert.Equal(t, 1, strings.Count(out, "strategy="), out)
}

func TestLogScorerWarnsOnLongerModel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, nil))

	cfg := DefaultConfig()
	cfg.Order = 2
	l.LogScorer(context.Background(), cfg, 4)
	assert.Contains(t, buf.String(), "longer n-grams")
}

func TestNewJSONLogger(t *testing.T) {
	l := NewJSONLogger(slog.LevelWarn)
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))
}
