package language

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ieee0824/morpholm-go/internal/modelfile"
	"github.com/ieee0824/morpholm-go/vocab"
)

// Model file formats.
const (
	FormatAuto = "auto"
	FormatTab  = "tab"
	FormatARPA = "arpa"
)

// LoadStats summarises a model load.
type LoadStats struct {
	Lines    int  // lines read, including skipped ones
	Entries  int  // n-gram entries inserted
	Skipped  int  // malformed lines ignored
	MaxOrder int  // longest n-gram seen
	OOV      bool // true if the model defined <unk>
}

type loadOptions struct {
	logger *slog.Logger
	format string
}

// LoadOption configures a model load.
type LoadOption func(*loadOptions)

// WithLogger sets the logger used to report skipped lines.
func WithLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFormat forces a file format for LoadFile.
func WithFormat(format string) LoadOption {
	return func(o *loadOptions) {
		if format != "" {
			o.format = format
		}
	}
}

func newLoadOptions(opts []LoadOption) loadOptions {
	o := loadOptions{
		logger: slog.New(slog.DiscardHandler),
		format: FormatAuto,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// loader accumulates entries and statistics while a file is parsed.
type loader struct {
	model  *Model
	logger *slog.Logger
}

func (l *loader) skip(lineNum int, line, reason string) {
	l.model.Stats.Skipped++
	l.logger.Debug("skipping model line", "line", lineNum, "reason", reason, "text", line)
}

func (l *loader) add(words []string, e Entry) {
	if len(words) == 1 && words[0] == vocab.UnknownSymbol {
		l.model.OOV = e.Prob
		l.model.Stats.OOV = true
		return
	}
	l.model.Add(words, e)
	l.model.Stats.Entries++
	l.model.Stats.MaxOrder = l.model.Order
}

// Load reads a model in the tab-separated format
//
//	prob<TAB>w1 w2 ... wn[<TAB>backoff]
//
// Words are ordered oldest first. The <unk> line sets the OOV penalty
// instead of adding an entry. Malformed lines are skipped.
func Load(r io.Reader, opts ...LoadOption) (*Model, error) {
	o := newLoadOptions(opts)
	l := &loader{model: NewModel(), logger: o.logger}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		l.model.Stats.Lines++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			l.skip(lineNum, line, "too few fields")
			continue
		}
		prob, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			l.skip(lineNum, line, "bad probability")
			continue
		}
		words := strings.Fields(parts[1])
		if len(words) == 0 {
			l.skip(lineNum, line, "empty n-gram")
			continue
		}
		var backoff float64
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			backoff, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			if err != nil {
				l.skip(lineNum, line, "bad backoff")
				continue
			}
		}
		l.add(words, Entry{Prob: prob, Backoff: backoff})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return l.model, nil
}

// LoadFile opens path (local or s3://, optionally compressed) and loads it.
// With FormatAuto, a name ending in .arpa selects the ARPA reader.
func LoadFile(ctx context.Context, path string, opts ...LoadOption) (*Model, error) {
	o := newLoadOptions(opts)

	rc, err := modelfile.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open language model: %w", err)
	}
	defer rc.Close()

	format := o.format
	if format == FormatAuto {
		format = FormatTab
		if strings.HasSuffix(modelfile.Base(path), ".arpa") {
			format = FormatARPA
		}
	}

	var m *Model
	switch format {
	case FormatTab:
		m, err = Load(rc, opts...)
	case FormatARPA:
		m, err = LoadARPA(rc, opts...)
	default:
		return nil, fmt.Errorf("unknown model format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("load language model %s: %w", path, err)
	}
	o.logger.Info("language model loaded",
		"path", path,
		"format", format,
		"entries", m.Stats.Entries,
		"skipped", m.Stats.Skipped,
		"order", m.Order,
	)
	return m, nil
}
