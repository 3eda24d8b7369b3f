package similarity

import "fuzzylink/model"

// Jaccard returns the Jaccard similarity between two sets of row
// values: |intersection| / |union|. Two empty sets are defined as
// identical (similarity 1).
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	intersection := 0
	for v := range setA {
		if setB[v] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1.0
	}

	return float64(intersection) / float64(union)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}

	return set
}

// rowValues extracts a row's values, skipping the index column. The
// order follows map iteration and is not defined.
func rowValues(row model.Row) []string {
	values := make([]string, 0, len(row))
	for k, v := range row {
		if k == "index" {
			continue
		}

		values = append(values, v)
	}

	return values
}

// RowJaccard compares two rows by the Jaccard similarity of their
// value sets (spec.md §4.8, grounded on FuzzyDatabase.java's row
// comparison).
func RowJaccard(a, b model.Row) float64 {
	return Jaccard(rowValues(a), rowValues(b))
}
