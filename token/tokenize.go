// Package token turns a cell string into the bag of tokens the index and
// the query pipeline operate on.
//
// The pipeline intentionally duplicates evidence that is both exact and
// long (the sentinel-wrapped whole input, repeated many times for long
// inputs) and captures multi-word phrases via sliding n-grams, while
// length-sliced cuts of each word give partial-match recall for
// misspellings. See Profile for the tunable constants.
package token

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var numericIDPattern = regexp.MustCompile(`^\d+$`)

// Tokenizer turns a cell value into a bag of tokens, stable for equal
// inputs. It holds no mutable state and is safe for concurrent use.
type Tokenizer struct {
	profile Profile
}

// New creates a Tokenizer using the given Profile.
func New(profile Profile) *Tokenizer {
	return &Tokenizer{profile: profile}
}

// NewDefault creates a Tokenizer using DefaultProfile.
func NewDefault() *Tokenizer {
	return New(DefaultProfile())
}

// Tokenize implements the pipeline described in the tokenizer contract.
// An empty or whitespace-only input returns an empty, non-nil slice.
func (t *Tokenizer) Tokenize(input string) []string {
	trimmed := trimPunctAndSpace(strings.ToLower(input))
	if trimmed == "" {
		return []string{}
	}

	var tokens []string

	switch {
	case len([]rune(trimmed)) > t.profile.VeryLongInputThreshold:
		tokens = appendN(tokens, sentinel(trimmed), t.profile.LongInputDuplicates)
	case len([]rune(trimmed)) > t.profile.LongInputThreshold:
		tokens = appendN(tokens, sentinel(trimmed), t.profile.ShortInputDuplicates)
	}

	words := splitWords(stripPunctuation(trimmed))
	filtered := t.filterStopWords(words)

	for _, w := range filtered {
		tokens = append(tokens, fmt.Sprintf("$%s$", w), fmt.Sprintf("$#%s#$", w))

		if t.isNumericID(w) {
			tokens = appendN(tokens, w, t.profile.NumericIDDuplicates)
			continue
		}

		tokens = append(tokens, t.shred(w)...)
	}

	tokens = append(tokens, t.ngrams(filtered)...)

	return tokens
}

func (t *Tokenizer) filterStopWords(words []string) []string {
	out := make([]string, 0, len(words))

	for _, w := range words {
		if _, stop := t.profile.StopWords[strings.ToLower(w)]; stop {
			continue
		}

		out = append(out, w)
	}

	return out
}

func (t *Tokenizer) isNumericID(w string) bool {
	return len(w) >= t.profile.NumericIDMinDigits && numericIDPattern.MatchString(w)
}

// shred produces every substring of each configured cut size, starting at
// even offsets, skipping cut sizes longer than the word.
func (t *Tokenizer) shred(w string) []string {
	runes := []rune(w)

	var cuts []string

	for _, size := range t.profile.CutSizes {
		if size > len(runes) {
			continue
		}

		for i := 0; i+size <= len(runes); i += t.profile.CutStep {
			cuts = append(cuts, string(runes[i:i+size]))
		}
	}

	return cuts
}

// ngrams joins sliding windows of the filtered word list, for each
// configured window size.
func (t *Tokenizer) ngrams(words []string) []string {
	var grams []string

	for _, n := range t.profile.NGramWindows {
		if n > len(words) {
			continue
		}

		for i := 0; i+n <= len(words); i++ {
			grams = append(grams, strings.Join(words[i:i+n], " "))
		}
	}

	return grams
}

func sentinel(s string) string {
	return fmt.Sprintf("$%s$", s)
}

func appendN(dst []string, s string, n int) []string {
	for i := 0; i < n; i++ {
		dst = append(dst, s)
	}

	return dst
}

// trimPunctAndSpace trims leading/trailing punctuation and whitespace.
func trimPunctAndSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

// stripPunctuation removes all punctuation and collapses whitespace.
func stripPunctuation(s string) string {
	var b strings.Builder

	lastWasSpace := false

	for _, r := range s {
		switch {
		case unicode.IsPunct(r):
			continue
		case unicode.IsSpace(r):
			if !lastWasSpace {
				b.WriteRune(' ')
			}

			lastWasSpace = true
		default:
			b.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

func splitWords(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Fields(s)
}
