package token

// Profile holds the tuning parameters of the Tokenizer. Treating the
// magic constants of the tokenizer as a value (rather than inlining them)
// is what makes them testable and swappable (see the teacher's own
// ScoringProfile-shaped MetricsCollector/Options pattern).
type Profile struct {
	// LongInputThreshold and VeryLongInputThreshold gate the sentinel
	// duplication in step 3 of Tokenize.
	LongInputThreshold     int
	VeryLongInputThreshold int

	// LongInputDuplicates is how many times the whole-input sentinel is
	// emitted when the trimmed input exceeds VeryLongInputThreshold.
	LongInputDuplicates int
	// ShortInputDuplicates is how many times it is emitted when the
	// trimmed input exceeds LongInputThreshold but not VeryLongInputThreshold.
	ShortInputDuplicates int

	// NumericIDMinDigits is the minimum run length matched by the numeric
	// identifier fast path (the word is replicated, never shredded).
	NumericIDMinDigits int
	// NumericIDDuplicates is how many times a numeric identifier is emitted.
	NumericIDDuplicates int

	// CutSizes is the schedule of substring lengths produced for each
	// non-numeric word, in order.
	CutSizes []int
	// CutStep is the offset step between successive substrings of a given
	// cut size.
	CutStep int

	// NGramWindows are the sliding window sizes (in words) used to build
	// phrase tokens from the filtered word list.
	NGramWindows []int

	// StopWords is the case-insensitive set of words dropped before
	// shredding and n-gramming.
	StopWords map[string]struct{}
}

// DefaultProfile returns the tokenizer tuning the specification freezes as
// part of the external interface: duplicate counts 100/400, the cut-size
// schedule {4,5,7,8,10,10,13,14,15,17,17}, n-gram windows {2,3,4}, and the
// stop-word set of corporate suffixes plus a small frequency blacklist.
func DefaultProfile() Profile {
	return Profile{
		LongInputThreshold:     7,
		VeryLongInputThreshold: 10,
		LongInputDuplicates:    400,
		ShortInputDuplicates:   100,
		NumericIDMinDigits:     4,
		NumericIDDuplicates:    3,
		CutSizes:               []int{4, 5, 7, 8, 10, 10, 13, 14, 15, 17, 17},
		CutStep:                2,
		NGramWindows:           []int{2, 3, 4},
		StopWords:              defaultStopWords(),
	}
}

func defaultStopWords() map[string]struct{} {
	words := []string{
		// English corporate suffixes.
		"inc", "incorporated", "llc", "ltd", "limited", "corp", "corporation",
		"co", "company", "plc", "llp", "lp", "group", "holdings", "holding",
		"enterprises", "enterprise", "international", "intl", "industries",
		// Spanish corporate suffixes.
		"sa", "sociedad", "anonima", "anónima", "sl", "slu", "sau", "srl",
		"cia", "compania", "compañia", "compañía", "sc", "scl", "coop",
		"cooperativa",
		// Small frequency-based blacklist.
		"the", "of", "and", "de", "la", "el", "los", "las", "del",
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	return set
}
