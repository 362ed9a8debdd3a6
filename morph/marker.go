// Package morph reassembles marker-tagged morphemes into words.
//
// A decoder emits tokens such as "un+", "+happy+" and "+ness". A leading
// marker joins the token to the word before it; a trailing marker leaves the
// word open for the next token.
package morph

import (
	"strings"
)

// DefaultMarker is the join marker used when none is configured.
const DefaultMarker = "+"

// Kind encodes which join markers a token carries.
// Bit 1 is the leading marker, bit 2 the trailing one.
type Kind int

const (
	None   Kind = 0 // "x": a complete word
	Prefix Kind = 1 // "+x": continues the unfinished word
	Suffix Kind = 2 // "x+": opens a new unfinished word
	Both   Kind = 3 // "+x+": continues and stays open
)

// Leading reports whether the token carries a leading marker.
func (k Kind) Leading() bool { return k&Prefix != 0 }

// Trailing reports whether the token carries a trailing marker.
func (k Kind) Trailing() bool { return k&Suffix != 0 }

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Both:
		return "both"
	}
	return "invalid"
}

// Token is a decoder output unit with its markers removed.
type Token struct {
	Surface string // as emitted, markers included
	Stem    string // markers stripped
	Kind    Kind
}

// Parse strips a leading marker, then a trailing marker from what is left.
// A token that is exactly the marker parses as Prefix with an empty stem.
func Parse(raw, marker string) Token {
	if marker == "" {
		return Token{Surface: raw, Stem: raw, Kind: None}
	}
	tok := Token{Surface: raw, Stem: raw}
	if rest, ok := strings.CutPrefix(tok.Stem, marker); ok {
		tok.Stem = rest
		tok.Kind |= Prefix
	}
	if rest, ok := strings.CutSuffix(tok.Stem, marker); ok {
		tok.Stem = rest
		tok.Kind |= Suffix
	}
	return tok
}

// FactorDelimiter separates the factors of a factored token ("word|lemma|pos").
const FactorDelimiter = "|"

// SelectFactor returns the factor-th factor of raw. An index past the last
// factor selects the surface factor 0.
func SelectFactor(raw string, factor int) string {
	if factor == 0 {
		surface, _, _ := strings.Cut(raw, FactorDelimiter)
		return surface
	}
	parts := strings.Split(raw, FactorDelimiter)
	if factor < 0 || factor >= len(parts) {
		return parts[0]
	}
	return parts[factor]
}
