package language

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ieee0824/morpholm-go/vocab"
)

// LoadARPA reads a language model in ARPA format.
// Log probabilities stay base-10 so that they combine with the tab format.
// Entries that do not parse are skipped, not reported as errors.
func LoadARPA(r io.Reader, opts ...LoadOption) (*Model, error) {
	o := newLoadOptions(opts)
	l := &loader{model: NewModel(), logger: o.logger}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	next := func() bool {
		if !scanner.Scan() {
			return false
		}
		lineNum++
		l.model.Stats.Lines++
		return true
	}

	// Skip until \data\ section
	for next() {
		if strings.TrimSpace(scanner.Text()) == "\\data\\" {
			break
		}
	}

	// The "ngram N=count" header lines are informational only.
	order := 0
	for next() {
		line := strings.TrimSpace(scanner.Text())
		if line == "\\end\\" {
			break
		}
		if strings.HasPrefix(line, "\\") && strings.HasSuffix(line, "-grams:") {
			n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(line, "\\"), "-grams:"))
			if err != nil || n < 1 {
				l.skip(lineNum, line, "bad section header")
				order = 0
				continue
			}
			order = n
			continue
		}
		if order == 0 || line == "" {
			continue
		}
		parseARPAEntry(l, order, lineNum, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ARPA model: %w", err)
	}
	return l.model, nil
}

func parseARPAEntry(l *loader, order, lineNum int, line string) {
	fields := strings.Fields(line)
	if len(fields) < order+1 {
		l.skip(lineNum, line, fmt.Sprintf("too few fields for %d-gram", order))
		return
	}

	prob, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		l.skip(lineNum, line, "bad probability")
		return
	}
	words := fields[1 : order+1]

	var backoff float64
	if len(fields) > order+1 {
		backoff, err = strconv.ParseFloat(fields[order+1], 64)
		if err != nil {
			l.skip(lineNum, line, "bad backoff")
			return
		}
	}

	e := Entry{Prob: prob, Backoff: backoff}
	if order == 1 && words[0] == vocab.UnknownSymbol {
		// ARPA lists <unk> as a regular unigram; keep it and use it as the penalty.
		l.model.Add(words, e)
		l.model.Stats.Entries++
	}
	l.add(words, e)
}
