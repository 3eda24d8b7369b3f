package backbone

// Side distinguishes the clean reference table from the messy target
// (query) table that is being looked up against it.
type Side int

const (
	// Reference is the clean lookup table side.
	Reference Side = iota
	// Target is the messy query table side.
	Target
)

func (s Side) String() string {
	if s == Reference {
		return "reference"
	}

	return "target"
}

// Backbone owns every GroupBlock on both the reference and target sides,
// the header-to-groups inversions needed to route an incoming column to
// every group that consumes it, and the group-to-group links that
// connect the two sides (spec.md §4.3, §4.4; grounded on
// BidirectionalGroupMap.java). A header may legitimately belong to more
// than one group on the same side — e.g. a "Customer_Name" column
// contributing to both an ID group and a Name group — so the
// inversions fan out to every matching GroupBlock, not just one.
type Backbone struct {
	refGroups map[string]*GroupBlock
	tgtGroups map[string]*GroupBlock

	refByHeader map[string][]*GroupBlock
	tgtByHeader map[string][]*GroupBlock

	refToTgt map[string][]*GroupBlock // ref group name -> linked target groups
	tgtToRef map[string][]*GroupBlock // target group name -> linked ref groups

	refKeyHeader string
	tgtKeyHeader string
}

// newBackbone assembles a Backbone from already-constructed groups and
// link name lists. It is unexported: callers build a Backbone through
// RawConfig.Build, which is responsible for parsing the raw configuration
// into these pieces first.
func newBackbone(
	refGroups, tgtGroups map[string]*GroupBlock,
	refToTgtNames, tgtToRefNames map[string][]string,
	refKeyHeader, tgtKeyHeader string,
) (*Backbone, error) {
	b := &Backbone{
		refGroups:    refGroups,
		tgtGroups:    tgtGroups,
		refByHeader:  invert(refGroups),
		tgtByHeader:  invert(tgtGroups),
		refToTgt:     make(map[string][]*GroupBlock),
		tgtToRef:     make(map[string][]*GroupBlock),
		refKeyHeader: refKeyHeader,
		tgtKeyHeader: tgtKeyHeader,
	}

	for refName, names := range refToTgtNames {
		for _, n := range names {
			if g, ok := tgtGroups[n]; ok {
				b.refToTgt[refName] = append(b.refToTgt[refName], g)
			}
			// A name that does not resolve on the target side is
			// silently dropped (spec.md §4.4, §9 open question).
		}
	}

	for tgtName, names := range tgtToRefNames {
		for _, n := range names {
			if g, ok := refGroups[n]; ok {
				b.tgtToRef[tgtName] = append(b.tgtToRef[tgtName], g)
			}
		}
	}

	return b, nil
}

// invert builds a header -> []GroupBlock lookup from a name -> GroupBlock
// map, fanning a header out to every group that lists it.
func invert(groups map[string]*GroupBlock) map[string][]*GroupBlock {
	out := make(map[string][]*GroupBlock)
	for _, g := range groups {
		for _, h := range g.Headers() {
			out[h] = append(out[h], g)
		}
	}

	return out
}

// Restore rebuilds a Backbone from already-constructed groups and
// resolved link name lists. Used by the persistence package when
// reloading a previously built engine, where groups and links were
// already resolved at save time.
func Restore(
	refGroups, tgtGroups map[string]*GroupBlock,
	refToTgtNames, tgtToRefNames map[string][]string,
	refKeyHeader, tgtKeyHeader string,
) (*Backbone, error) {
	return newBackbone(refGroups, tgtGroups, refToTgtNames, tgtToRefNames, refKeyHeader, tgtKeyHeader)
}

// Groups returns every GroupBlock on the given side, keyed by group
// name. The returned map must not be mutated by the caller.
func (b *Backbone) Groups(side Side) map[string]*GroupBlock {
	if side == Reference {
		return b.refGroups
	}

	return b.tgtGroups
}

// GroupsFromHeader returns every group a header belongs to on the given
// side, or nil if the header is not routed anywhere (spec.md §4.4's
// groups_from_header).
func (b *Backbone) GroupsFromHeader(side Side, header string) []*GroupBlock {
	if side == Reference {
		return b.refByHeader[header]
	}

	return b.tgtByHeader[header]
}

// InputHeaders returns every header that is routed to some group on the
// given side. The returned slice is not ordered.
func (b *Backbone) InputHeaders(side Side) []string {
	var by map[string][]*GroupBlock
	if side == Reference {
		by = b.refByHeader
	} else {
		by = b.tgtByHeader
	}

	headers := make([]string, 0, len(by))
	for h := range by {
		headers = append(headers, h)
	}

	return headers
}

// LinksFrom returns the groups on the opposite side that a named group
// is linked to. Passing a reference group name returns linked target
// groups and vice versa. An unknown or unlinked group name returns nil.
func (b *Backbone) LinksFrom(side Side, groupName string) []*GroupBlock {
	if side == Reference {
		return b.refToTgt[groupName]
	}

	return b.tgtToRef[groupName]
}

// ReferenceKeyHeader returns the header in the reference table that
// carries the unique row identifier (spec.md §4.3's reference_key_col).
func (b *Backbone) ReferenceKeyHeader() string { return b.refKeyHeader }

// TargetKeyHeader returns the header in the target table that carries a
// preexisting identifier, if the target table has one. It is empty when
// the target table has no key column.
func (b *Backbone) TargetKeyHeader() string { return b.tgtKeyHeader }

// ResetPayloads clears every group's payload on the given side. It is
// not used by Lookup/LookupBatch, which score through per-call scratch
// state rather than the shared GroupBlocks to stay safe under
// concurrent queries (spec.md §5, §9); it remains useful for tests and
// for single-threaded callers that drive GroupBlock payloads directly.
func (b *Backbone) ResetPayloads(side Side) {
	for _, g := range b.Groups(side) {
		g.Reset()
	}
}
