package morpholm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ieee0824/morpholm-go/language"
	"github.com/ieee0824/morpholm-go/morph"
)

// Strategy selects how tokens are turned into scored words.
type Strategy string

const (
	// StrategyNGram scores every token as a whole word, ignoring markers.
	StrategyNGram Strategy = "ngram"
	// StrategyMorpheme stitches marked morphemes into words before scoring.
	StrategyMorpheme Strategy = "morpheme"
	// StrategySubWord stitches like StrategyMorpheme but scores with a FeatureScorer.
	StrategySubWord Strategy = "subword"
)

// Config holds the parameters of a scorer.
type Config struct {
	Name     string   // feature name, informational
	Path     string   // model file, local or s3://
	Order    int      // maximum n-gram length, required
	Factor   int      // factor index read from factored tokens
	Marker   string   // join marker
	Strategy Strategy // scoring strategy
	Format   string   // model format: auto, tab or arpa
	Binary   bool     // binary trie backend, rejected by Validate
}

// DefaultConfig returns a configuration with every optional parameter set.
// Order and Path still have to be provided.
func DefaultConfig() Config {
	return Config{
		Name:     "MorphoLM",
		Marker:   morph.DefaultMarker,
		Strategy: StrategyMorpheme,
		Format:   language.FormatAuto,
	}
}

// ParseConfig parses a feature line such as
//
//	MorphoLM path=lm.txt order=3 factor=0 marker=+
//
// A leading word without '=' names the feature. The result is validated.
func ParseConfig(line string) (Config, error) {
	cfg := DefaultConfig()
	for i, field := range strings.Fields(line) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			if i == 0 {
				cfg.Name = field
				continue
			}
			return cfg, &ConfigError{Key: field, cause: fmt.Errorf("expected key=value")}
		}
		if err := cfg.Set(key, value); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Set assigns one parameter by name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "name":
		c.Name = value
	case "path":
		c.Path = value
	case "order":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return &ConfigError{Key: key, Value: value, cause: fmt.Errorf("not a non-negative integer")}
		}
		c.Order = n
	case "factor":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return &ConfigError{Key: key, Value: value, cause: fmt.Errorf("not a non-negative integer")}
		}
		c.Factor = n
	case "marker":
		c.Marker = value
	case "strategy":
		c.Strategy = Strategy(value)
	case "format":
		c.Format = value
	case "binary":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ConfigError{Key: key, Value: value, cause: err}
		}
		c.Binary = b
	case "num-features", "tuneable", "tuneable-components", "weight", "verbosity":
		// Host feature parameters, handled by the decoder.
	default:
		return &ConfigError{Key: key, Value: value, cause: ErrUnknownParameter}
	}
	return nil
}

// Validate checks that the configuration can build a scorer.
func (c Config) Validate() error {
	if c.Order == 0 {
		return &ConfigError{Key: "order", cause: ErrMissingOrder}
	}
	if c.Marker == "" {
		return &ConfigError{Key: "marker", cause: ErrEmptyMarker}
	}
	if c.Binary {
		return &ConfigError{Key: "binary", Value: "true", cause: ErrBinaryUnsupported}
	}
	switch c.Strategy {
	case StrategyNGram, StrategyMorpheme, StrategySubWord:
	default:
		return &ConfigError{Key: "strategy", Value: string(c.Strategy), cause: ErrUnknownStrategy}
	}
	switch c.Format {
	case language.FormatAuto, language.FormatTab, language.FormatARPA:
	default:
		return &ConfigError{Key: "format", Value: c.Format, cause: fmt.Errorf("unknown model format")}
	}
	return nil
}
