package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	morpholm "github.com/ieee0824/morpholm-go"
	"github.com/ieee0824/morpholm-go/internal/mathutil"
	"github.com/ieee0824/morpholm-go/language"
	"github.com/ieee0824/morpholm-go/morph"
)

type result struct {
	score float64
	words int
	state morpholm.State
}

func main() {
	feature := flag.String("config", "", `feature line, e.g. "MorphoLM path=lm.txt order=3"`)
	path := flag.String("lm", "", "language model file (local, s3://, .gz/.zst/.lz4)")
	order := flag.Int("order", 0, "n-gram order")
	marker := flag.String("marker", morph.DefaultMarker, "join marker")
	strategy := flag.String("strategy", string(morpholm.StrategyMorpheme), "ngram, morpheme or subword")
	factor := flag.Int("factor", 0, "factor index of factored tokens")
	format := flag.String("format", "auto", "model format: auto, tab or arpa")
	step := flag.Int("step", 1, "tokens per Extend call")
	workers := flag.Int("workers", 4, "sentences scored in parallel")
	natural := flag.Bool("ln", false, "print natural-log scores instead of log10")
	check := flag.Bool("check", false, "warn when a sentence score differs from the whole-sentence model score")
	jsonLog := flag.Bool("json", false, "JSON logs")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: morpholm [options] [input-files...]")
		fmt.Fprintln(os.Stderr, "  Scores tokenized sentences incrementally, stitching marked morphemes into words.")
		fmt.Fprintln(os.Stderr, "  Input: one sentence per line, tokens separated by spaces.")
		fmt.Fprintln(os.Stderr, "  Output: score<TAB>perplexity<TAB>stitched words, one line per sentence.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := morpholm.NewTextLogger(level)
	if *jsonLog {
		logger = morpholm.NewJSONLogger(level)
	}

	cfg := morpholm.DefaultConfig()
	if *feature != "" {
		var err error
		cfg, err = morpholm.ParseConfig(*feature)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg.Path = *path
		cfg.Order = *order
		cfg.Marker = *marker
		cfg.Strategy = morpholm.Strategy(*strategy)
		cfg.Factor = *factor
		cfg.Format = *format
	}

	metrics := &morpholm.BasicMetricsCollector{}
	ctx := context.Background()
	scorer, err := morpholm.New(ctx, cfg, morpholm.WithLogger(logger), morpholm.WithMetrics(metrics))
	if err != nil {
		fmt.Fprintf(os.Stderr, "morpholm: %v\n", err)
		os.Exit(1)
	}

	var lines []string
	if flag.NArg() == 0 {
		lines, err = readLines(os.Stdin)
	} else {
		for _, p := range flag.Args() {
			f, openErr := os.Open(p)
			if openErr != nil {
				fmt.Fprintf(os.Stderr, "open %s: %v\n", p, openErr)
				continue
			}
			var more []string
			more, err = readLines(f)
			f.Close()
			if err != nil {
				break
			}
			lines = append(lines, more...)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	results := make([]result, len(lines))
	var g errgroup.Group
	g.SetLimit(max(*workers, 1))
	for i, line := range lines {
		g.Go(func() error {
			raw := strings.Fields(line)
			results[i] = scoreSentence(scorer, raw, *step)
			results[i].words = len(stitched(cfg, raw)) + 1
			return nil
		})
	}
	g.Wait()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	total, words := 0.0, 0
	for i, r := range results {
		total += r.score
		words += r.words
		score := r.score
		if *natural {
			score = mathutil.Log10ToLn(score)
		}
		joined := strings.Join(stitched(cfg, strings.Fields(lines[i])), " ")
		fmt.Fprintf(w, "%.6f\t%.4f\t%s\n", score, mathutil.Perplexity(r.score, r.words), joined)
		logger.Debug("sentence scored", "line", i+1, "state", r.state.String())
		if *check {
			if want, ok := sentenceScore(scorer, stitched(cfg, strings.Fields(lines[i]))); ok && math.Abs(want-r.score) > 1e-6 {
				logger.Warn("incremental score differs from sentence score",
					"line", i+1,
					"incremental", r.score,
					"sentence", want,
				)
			}
		}
	}

	snap := metrics.Snapshot()
	logger.Info("scoring done",
		"sentences", len(lines),
		"words", words,
		"perplexity", mathutil.Perplexity(total, words),
		"lookups", snap.Lookups,
		"backoffs", snap.Backoffs,
		"oov", snap.OOV,
		"retractions", snap.Retractions,
		"avg_extend", snap.AvgExtend,
	)
}

// scoreSentence feeds tokens to the scorer step tokens at a time, the way a
// decoder extends a hypothesis phrase by phrase.
func scoreSentence(s morpholm.Scorer, raw []string, step int) result {
	step = max(step, 1)
	st := s.EmptyState()
	total := 0.0
	for start := 0; start < len(raw); start += step {
		end := min(start+step, len(raw))
		delta, next := s.Extend(st, s.Tokenize(raw[start:end]...), end == len(raw))
		total += delta
		st = next
	}
	if len(raw) == 0 {
		delta, next := s.Extend(st, nil, true)
		total += delta
		st = next
	}
	return result{score: total, state: st}
}

// sentenceScore scores words in one pass with the scorer's model. It
// reports false for scorers without a model.
func sentenceScore(s morpholm.Scorer, words []string) (float64, bool) {
	ms, ok := s.(interface{ Model() *language.Model })
	if !ok || ms.Model() == nil {
		return 0, false
	}
	return ms.Model().SentenceLogProb(words), true
}

// stitched returns the words a sentence contributes under cfg.
func stitched(cfg morpholm.Config, raw []string) []string {
	surfaces := make([]string, len(raw))
	for i, r := range raw {
		surfaces[i] = morph.SelectFactor(r, cfg.Factor)
	}
	if cfg.Strategy == morpholm.StrategyNGram {
		return surfaces
	}
	return morph.Join(surfaces, cfg.Marker)
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
