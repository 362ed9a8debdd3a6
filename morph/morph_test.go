package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw    string
		marker string
		stem   string
		kind   Kind
	}{
		{"happy", "+", "happy", None},
		{"+happy", "+", "happy", Prefix},
		{"un+", "+", "un", Suffix},
		{"+ness+", "+", "ness", Both},
		{"+", "+", "", Prefix},
		{"++", "+", "", Both},
		{"@@ab@@", "@@", "ab", Both},
		{"ab@@", "@@", "ab", Suffix},
		{"a+b", "+", "a+b", None},
		{"+x", "", "+x", None},
	}
	for _, tt := range tests {
		got := Parse(tt.raw, tt.marker)
		if got.Stem != tt.stem || got.Kind != tt.kind || got.Surface != tt.raw {
			t.Errorf("Parse(%q, %q) = %+v, want stem %q kind %v", tt.raw, tt.marker, got, tt.stem, tt.kind)
		}
	}
}

func TestKindBits(t *testing.T) {
	assert.False(t, None.Leading())
	assert.False(t, None.Trailing())
	assert.True(t, Prefix.Leading())
	assert.False(t, Prefix.Trailing())
	assert.True(t, Suffix.Trailing())
	assert.True(t, Both.Leading() && Both.Trailing())
	assert.Equal(t, "invalid", Kind(7).String())
}

func TestSelectFactor(t *testing.T) {
	assert.Equal(t, "Haus", SelectFactor("Haus|haus|NN", 0))
	assert.Equal(t, "haus", SelectFactor("Haus|haus|NN", 1))
	assert.Equal(t, "NN", SelectFactor("Haus|haus|NN", 2))
	assert.Equal(t, "Haus", SelectFactor("Haus|haus|NN", 3))
	assert.Equal(t, "plain", SelectFactor("plain", 2))
}

func TestStepTable(t *testing.T) {
	tests := []struct {
		name       string
		unfinished string
		raw        string
		word       string
		next       string
		retract    bool
		valid      bool
	}{
		{"closed none", "", "cat", "cat", "", false, true},
		{"closed prefix", "", "+cat", "cat", "", false, false},
		{"closed suffix", "", "un+", "un", "un", false, true},
		{"closed both", "", "+ha+", "ha", "ha", false, false},
		{"open none", "un", "cat", "cat", "", false, false},
		{"open prefix", "un", "+happy", "unhappy", "", true, true},
		{"open suffix", "un", "re+", "re", "re", false, false},
		{"open both", "un", "+happi+", "unhappi", "unhappi", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Step(tt.unfinished, Parse(tt.raw, DefaultMarker))
			assert.Equal(t, tt.word, tr.Word)
			assert.Equal(t, tt.next, tr.Next)
			assert.Equal(t, tt.retract, tr.Retract)
			assert.Equal(t, tt.valid, tr.Valid)
			assert.Equal(t, tt.next != "", tr.Open())
		})
	}
}

func TestStepPieces(t *testing.T) {
	tr := Step("un", Parse("+happy", DefaultMarker))
	assert.Equal(t, []string{"un", "happy"}, tr.Pieces)

	tr = Step("", Parse("cat", DefaultMarker))
	assert.Equal(t, []string{"cat"}, tr.Pieces)
}

func TestStepEmptyStemIsNoop(t *testing.T) {
	for _, raw := range []string{"+", "++"} {
		tr := Step("un", Parse(raw, DefaultMarker))
		assert.Empty(t, tr.Word, raw)
		assert.Equal(t, "un", tr.Next, raw)
		assert.False(t, tr.Retract, raw)
	}
}

func TestStepInvalidKindPanics(t *testing.T) {
	assert.Panics(t, func() {
		Step("", Token{Surface: "x", Stem: "x", Kind: Kind(4)})
	})
	assert.Panics(t, func() {
		Step("un", Token{Surface: "", Stem: "", Kind: Kind(-1)})
	})
}

func TestJoin(t *testing.T) {
	tests := []struct {
		raw  []string
		want []string
	}{
		{[]string{"un+", "+happy"}, []string{"unhappy"}},
		{[]string{"the", "un+", "+happi+", "+ness", "ends"}, []string{"the", "unhappiness", "ends"}},
		{[]string{"un+"}, []string{"un"}},
		{[]string{"un+", "cat"}, []string{"cat"}},
		{[]string{"+", "a"}, []string{"a"}},
		{nil, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Join(tt.raw, DefaultMarker), "%v", tt.raw)
	}
}
