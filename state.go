package morpholm

import (
	"fmt"
	"strings"

	"github.com/ieee0824/morpholm-go/vocab"
)

// State is the scoring state carried by a decoder hypothesis.
// It is immutable; Extend always returns a new State.
type State struct {
	context    []vocab.WordId
	unfinished string
	pending    float64
}

// Context returns a copy of the trailing completed words, oldest first.
func (s State) Context() []vocab.WordId {
	out := make([]vocab.WordId, len(s.context))
	copy(out, s.context)
	return out
}

// Unfinished returns the word still being assembled, or "".
func (s State) Unfinished() string { return s.unfinished }

// IsUnfinished reports whether a word is still being assembled.
func (s State) IsUnfinished() bool { return s.unfinished != "" }

// Pending returns the score given to the last scored word, which is taken
// back if that word turns out to be a partial one that gets extended.
func (s State) Pending() float64 { return s.pending }

// Compare orders states by context, then by unfinished word.
//
// Pending is not compared: two hypotheses that differ only in the score
// they may later retract are recombined. This is an approximation.
func (s State) Compare(other State) int {
	if c := vocab.Compare(s.context, other.context); c != 0 {
		return c
	}
	return strings.Compare(s.unfinished, other.unfinished)
}

// Compare is a.Compare(b).
func Compare(a, b State) int { return a.Compare(b) }

func (s State) String() string {
	return fmt.Sprintf("[%s] unfinished=%q pending=%g",
		strings.Join(vocab.Strings(s.context), " "), s.unfinished, s.pending)
}
