package rearrange

import (
	"fuzzylink/model"
	"fuzzylink/query"
	"fuzzylink/similarity"
)

// Rearranger resolves top-candidate collisions among a batch of lookup
// results, grounded on CollisionRearranger.java.
type Rearranger struct {
	reference model.Table
	nameCol   string
	diffPct   float64
}

// New builds a Rearranger over a reference table. diffPercent controls
// how much worse a second-best candidate's distance may be relative to
// a collision's winner and still be promoted: a loser is promoted when
// its distance to its second-best candidate is at most
// winnerDistance*(1+diffPercent). A diffPercent of 0 only promotes
// losers whose second choice is at least as close as the winner.
func New(reference model.Table, diffPercent float64) *Rearranger {
	return &Rearranger{
		reference: reference,
		nameCol:   findNameCol(reference.Columns),
		diffPct:   diffPercent,
	}
}

// Resolve runs the collision rearrangement fixed-point loop over a
// batch of lookup results until a pass changes nothing. In each
// collision the winner keeps the contested reference row and stays
// OPEN; a loser is promoted to its second-best candidate when that is
// close enough, and is otherwise marked VERIFIED so later passes leave
// it alone. Tuples that never collide stay OPEN. queryRows must be
// indexed the same way as tuples (queryRows[i] is the source row for
// tuples[i]).
func (r *Rearranger) Resolve(tuples []query.ResultTuple, queryRows []model.Row) []query.ResultTuple {
	if r.nameCol == "" {
		// No name column to tiebreak on: every tuple keeps its current
		// candidate and is simply marked resolved.
		for i := range tuples {
			tuples[i] = tuples[i].Verify()
		}

		return tuples
	}

	for {
		collisions := r.groupByTopIdx(tuples)
		changed := false

		for topIdx, members := range collisions {
			if len(members) < 2 {
				continue
			}

			winner := r.closest(members, queryRows, topIdx)
			winnerDist := r.distanceTo(queryRows[winner], topIdx)

			for _, m := range members {
				if m == winner {
					continue
				}

				if r.tryPromote(&tuples[m], queryRows[m], winnerDist) {
					changed = true
					continue
				}

				tuples[m] = tuples[m].Verify()
			}
		}

		if !changed {
			break
		}
	}

	return tuples
}

// groupByTopIdx partitions the indices of OPEN tuples by their current
// top candidate.
func (r *Rearranger) groupByTopIdx(tuples []query.ResultTuple) map[model.RowIndex][]int {
	groups := make(map[model.RowIndex][]int)

	for i, t := range tuples {
		if t.Status != query.StatusOpen || !t.HasCandidate() {
			continue
		}

		groups[t.TopIdx] = append(groups[t.TopIdx], i)
	}

	return groups
}

// closest returns the member index whose query row has the smallest
// name-column distance to the contested reference row.
func (r *Rearranger) closest(members []int, queryRows []model.Row, refIdx model.RowIndex) int {
	best := members[0]
	bestDist := r.distanceTo(queryRows[members[0]], refIdx)

	for _, m := range members[1:] {
		d := r.distanceTo(queryRows[m], refIdx)
		if d < bestDist {
			bestDist = d
			best = m
		}
	}

	return best
}

// distanceTo returns the name-column edit distance between a query row
// and a reference row.
func (r *Rearranger) distanceTo(queryRow model.Row, refIdx model.RowIndex) int {
	refRow, ok := r.reference.At(refIdx)
	if !ok {
		return 0
	}

	return similarity.LevenshteinTransposition(queryRow[r.nameCol], refRow[r.nameCol])
}

// tryPromote moves a losing tuple's second-best candidate to the top
// and clears the second-best slot if the second-best candidate's
// distance is within diffPercent of winnerDist. It reports whether the
// promotion happened.
func (r *Rearranger) tryPromote(tuple *query.ResultTuple, queryRow model.Row, winnerDist int) bool {
	if !tuple.HasSecondCandidate() {
		return false
	}

	secondDist := r.distanceTo(queryRow, tuple.SecondIdx)
	threshold := float64(winnerDist) * (1 + r.diffPct)

	if float64(secondDist) <= threshold {
		*tuple = tuple.Promote()
		tuple.SecondIdx = query.NoCandidate
		tuple.SecondWeight = 0
		return true
	}

	return false
}
