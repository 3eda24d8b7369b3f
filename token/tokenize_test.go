package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeEmpty(t *testing.T) {
	tok := NewDefault()
	assert.Empty(t, tok.Tokenize(""))
	assert.Empty(t, tok.Tokenize("   \t  "))
}

func TestTokenizeDeterministic(t *testing.T) {
	tok := NewDefault()
	a := tok.Tokenize("Flat Ridge 4 Wind, LLC")
	b := tok.Tokenize("Flat Ridge 4 Wind, LLC")
	assert.Equal(t, a, b)
}

func TestTokenizeNumericIDFourDigitsReplicated(t *testing.T) {
	tok := New(DefaultProfile())
	tokens := tok.Tokenize("1234")

	count := 0
	for _, tk := range tokens {
		if tk == "1234" {
			count++
		}
	}
	assert.Equal(t, 3, count)
}

func TestTokenizeNumericIDThreeDigitsShredded(t *testing.T) {
	tok := New(DefaultProfile())
	tokens := tok.Tokenize("123")

	count := 0
	for _, tk := range tokens {
		if tk == "123" {
			count++
		}
	}
	// Below the numeric-id threshold, "123" is only ever emitted via the
	// sentinel wrappers, not replicated.
	assert.Zero(t, count)
}

func TestTokenizeStopWordPruning(t *testing.T) {
	tok := NewDefault()
	tokens := tok.Tokenize("Sociedad Anonima de Construcciones")

	joined := strings.Join(tokens, " ")
	assert.NotContains(t, joined, "$sociedad$")
	assert.NotContains(t, joined, "$anonima$")
	assert.NotContains(t, joined, "$de$")
	assert.Contains(t, joined, "$construcciones$")
}

func TestTokenizeSlidingWindowPhrase(t *testing.T) {
	tok := NewDefault()
	tokens := tok.Tokenize("Flat Ridge 4 Wind")

	for _, want := range []string{
		"flat ridge", "ridge 4", "4 wind",
		"flat ridge 4", "ridge 4 wind",
		"flat ridge 4 wind",
	} {
		assert.Contains(t, tokens, want, "expected phrase %q", want)
	}
}

func TestTokenizeLongInputSentinelDuplication(t *testing.T) {
	tok := NewDefault()

	short := "abcdefgh" // length 8, > 7 threshold, <= 10
	tokens := tok.Tokenize(short)
	count := 0
	for _, tk := range tokens {
		if tk == "$"+short+"$" {
			count++
		}
	}
	// 100 whole-input sentinels plus the per-word "$w$" sentinel, which
	// is the same string for a one-word input.
	assert.Equal(t, 101, count)

	long := "abcdefghijk" // length 11, > 10 threshold
	tokens = tok.Tokenize(long)
	count = 0
	for _, tk := range tokens {
		if tk == "$"+long+"$" {
			count++
		}
	}
	assert.Equal(t, 401, count)
}

func TestShredEvenOffsets(t *testing.T) {
	tok := New(DefaultProfile())
	cuts := tok.shred("abcdefgh")
	// cut size 4, step 2, word length 8 -> offsets 0,2,4 (4 fits at 4..8)
	assert.Contains(t, cuts, "abcd")
	assert.Contains(t, cuts, "cdef")
	assert.Contains(t, cuts, "efgh")
}
