package query

import "fuzzylink/model"

// Status is the CollisionRearranger state of a ResultTuple (spec.md
// §4.9). Every tuple starts OPEN; rearrangement can promote it to
// VERIFIED but never demotes it back.
type Status int

const (
	// StatusOpen means the rearranger may still act on the tuple: it
	// has not collided, it won its collisions, or it was promoted.
	StatusOpen Status = iota
	// StatusVerified means the tuple lost a collision and could not be
	// promoted (no second-best candidate, or one too far from the
	// winner's distance), or the reference table has no name column to
	// compare on; the rearranger leaves it alone from then on.
	StatusVerified
)

func (s Status) String() string {
	if s == StatusVerified {
		return "VERIFIED"
	}

	return "OPEN"
}

// NoCandidate is the sentinel index used in place of a real RowIndex
// when a query row has no second-best candidate, or no candidate at
// all.
const NoCandidate model.RowIndex = -1

// ResultTuple is one query row's lookup result: its top and
// second-best reference candidates, the similarity scores used to
// compare them, whether the query row already carried a matching ID,
// and the row's current rearrangement status (spec.md §4.6, §4.9).
type ResultTuple struct {
	QueryIdx model.RowIndex

	TopIdx    model.RowIndex
	TopWeight float64

	SecondIdx    model.RowIndex
	SecondWeight float64

	DamerauSim float64
	JaccardSim float64

	SameID bool
	Status Status
}

// NewResultTuple builds an OPEN ResultTuple for a query row with no
// candidates found yet.
func NewResultTuple(queryIdx model.RowIndex) ResultTuple {
	return ResultTuple{
		QueryIdx:  queryIdx,
		TopIdx:    NoCandidate,
		SecondIdx: NoCandidate,
		Status:    StatusOpen,
	}
}

// HasCandidate reports whether the tuple found any reference match.
func (t ResultTuple) HasCandidate() bool { return t.TopIdx != NoCandidate }

// HasSecondCandidate reports whether the tuple found a distinct
// second-best reference match, eligible for collision rearrangement.
func (t ResultTuple) HasSecondCandidate() bool { return t.SecondIdx != NoCandidate }

// Verify promotes the tuple to VERIFIED. It is a no-op if the tuple is
// already VERIFIED, keeping the transition one-way.
func (t ResultTuple) Verify() ResultTuple {
	t.Status = StatusVerified
	return t
}

// Promote swaps the top and second-best candidates, used when
// collision rearrangement decides the second-best candidate is the
// correct match for this query row instead.
func (t ResultTuple) Promote() ResultTuple {
	t.TopIdx, t.SecondIdx = t.SecondIdx, t.TopIdx
	t.TopWeight, t.SecondWeight = t.SecondWeight, t.TopWeight
	return t
}
