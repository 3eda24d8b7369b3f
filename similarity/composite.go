package similarity

import (
	"sort"
	"strings"

	"fuzzylink/model"
)

// Composite blend weights for combining Damerau, Jaccard, and
// Levenshtein-with-transposition similarities into one score (spec.md
// §4.8, grounded on FuzzyDatabase.java's candidate comparator).
const (
	alphaDamerau = 0.6
	betaJaccard  = 0.15
	gammaLevTran = 0.25
)

// RowDamerau compares two rows by joining their values, sorted for
// order-independence, and computing the normalized Damerau-Levenshtein
// similarity of the two joined strings.
func RowDamerau(a, b model.Row) float64 {
	return Damerau(joinedSortedValues(a), joinedSortedValues(b))
}

func joinedSortedValues(row model.Row) string {
	values := rowValues(row)
	sort.Strings(values)
	return strings.Join(values, "\x1f")
}

// Composite blends the three row comparators into a single similarity
// score in [0, 1]: alpha*damerau + beta*jaccard + gamma*levTransSim,
// where levTransSim is the normalized (1 - d/maxlen) form of the
// Levenshtein-with-transposition distance between the same joined
// strings.
func Composite(a, b model.Row) float64 {
	damerauSim := RowDamerau(a, b)
	jaccardSim := RowJaccard(a, b)

	sa, sb := joinedSortedValues(a), joinedSortedValues(b)
	la, lb := len([]rune(sa)), len([]rune(sb))

	levTranSim := 1.0
	if la > 0 || lb > 0 {
		d := editDistanceTransposition(sa, sb)
		levTranSim = 1.0 - float64(d)/float64(maxInt(la, lb))
	}

	return alphaDamerau*damerauSim + betaJaccard*jaccardSim + gammaLevTran*levTranSim
}
