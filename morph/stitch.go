package morph

import "fmt"

// Transition is the result of feeding one token to the stitcher.
type Transition struct {
	// Word is the surface to score for this token. It is empty when the
	// token carries no stem and must be ignored.
	Word string
	// Next is the unfinished word after the token, empty once closed.
	Next string
	// Retract is set when the score given to the previous partial word
	// must be taken back because Word extends it.
	Retract bool
	// Valid is false for marker combinations a well-formed decoder does
	// not produce. They are still scored, as standalone words.
	Valid bool
	// Pieces are the morphemes Word was built from.
	Pieces []string
}

// Open reports whether the word is still being assembled after the token.
func (t Transition) Open() bool { return t.Next != "" }

// Step applies tok to the unfinished word and returns the transition.
// It panics on a Kind outside None..Both.
func Step(unfinished string, tok Token) Transition {
	if tok.Kind < None || tok.Kind > Both {
		panic(fmt.Sprintf("morph: invalid marker kind %d for token %q", int(tok.Kind), tok.Surface))
	}
	if tok.Stem == "" {
		return Transition{Next: unfinished, Valid: true}
	}
	stem := tok.Stem

	if unfinished == "" || !tok.Kind.Leading() {
		// a b, a b+, a+ b, a+ b+: stem starts a word of its own. A leading
		// marker with nothing open, or an open word abandoned without one,
		// is not something a well-formed decoder emits.
		tr := Transition{
			Word:   stem,
			Valid:  unfinished == "" && !tok.Kind.Leading(),
			Pieces: []string{stem},
		}
		if tok.Kind.Trailing() {
			tr.Next = stem
		}
		return tr
	}

	// a+ +b, a+ +b+
	word := unfinished + stem
	tr := Transition{Word: word, Retract: true, Valid: true, Pieces: []string{unfinished, stem}}
	if tok.Kind.Trailing() {
		tr.Next = word
	}
	return tr
}

// Join stitches a token sequence into words. A word still open at the end
// is emitted as it stands; bare markers are dropped.
func Join(raw []string, marker string) []string {
	var (
		out        []string
		unfinished string
	)
	for _, r := range raw {
		tr := Step(unfinished, Parse(r, marker))
		if tr.Word == "" {
			continue
		}
		if !tr.Open() {
			out = append(out, tr.Word)
		}
		unfinished = tr.Next
	}
	if unfinished != "" {
		out = append(out, unfinished)
	}
	return out
}
