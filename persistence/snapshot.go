package persistence

import (
	"fmt"

	"fuzzylink/backbone"
	"fuzzylink/index"
	"fuzzylink/model"
)

// Manifest identifies one saved snapshot independently of its file
// name: a random build ID stamped at save time, plus the row counts the
// engine was built from (spec.md §4.10).
type Manifest struct {
	BuildID       string
	ReferenceRows int
}

// postingSnapshot is the on-disk shape of an index.Posting.
type postingSnapshot struct {
	Idx    model.RowIndex
	Weight float64
}

// bucketSnapshot is the on-disk shape of an index.Bucket: a token and
// its postings.
type bucketSnapshot struct {
	Token    string
	Postings []postingSnapshot
}

// groupSnapshot is the on-disk shape of a backbone.GroupBlock: its
// headers, already-softmax-normalized weights, and — on the reference
// side — its Pool's buckets. Target-side groups never carry a payload
// worth persisting since it is query-scoped scratch state.
type groupSnapshot struct {
	Name    string
	Headers []string
	Weights map[string]float64
	Buckets []bucketSnapshot // nil for target-side groups
}

// backboneSnapshot is the on-disk shape of a backbone.Backbone: its
// groups on both sides and the resolved group-name links between them.
type backboneSnapshot struct {
	RefGroups    []groupSnapshot
	TgtGroups    []groupSnapshot
	RefToTgt     map[string][]string
	TgtToRef     map[string][]string
	RefKeyHeader string
	TgtKeyHeader string
}

// Snapshot is the full on-disk payload: everything needed to
// reconstruct a built engine except its stateless Tokenizer.
type Snapshot struct {
	Manifest  Manifest
	Backbone  backboneSnapshot
	Reference model.Table
}

// BuildSnapshot captures a Backbone and its source reference Table into
// a Snapshot ready to be written by Save.
func BuildSnapshot(bb *backbone.Backbone, reference model.Table, buildID string) Snapshot {
	return Snapshot{
		Manifest:  Manifest{BuildID: buildID, ReferenceRows: reference.Len()},
		Backbone:  snapshotBackbone(bb),
		Reference: reference,
	}
}

func snapshotBackbone(bb *backbone.Backbone) backboneSnapshot {
	snap := backboneSnapshot{
		RefToTgt:     make(map[string][]string),
		TgtToRef:     make(map[string][]string),
		RefKeyHeader: bb.ReferenceKeyHeader(),
		TgtKeyHeader: bb.TargetKeyHeader(),
	}

	for name, g := range bb.Groups(backbone.Reference) {
		snap.RefGroups = append(snap.RefGroups, snapshotGroup(g, true))

		var linked []string
		for _, tgt := range bb.LinksFrom(backbone.Reference, name) {
			linked = append(linked, tgt.Name())
		}
		if linked != nil {
			snap.RefToTgt[name] = linked
		}
	}

	for name, g := range bb.Groups(backbone.Target) {
		snap.TgtGroups = append(snap.TgtGroups, snapshotGroup(g, false))

		var linked []string
		for _, ref := range bb.LinksFrom(backbone.Target, name) {
			linked = append(linked, ref.Name())
		}
		if linked != nil {
			snap.TgtToRef[name] = linked
		}
	}

	return snap
}

func snapshotGroup(g *backbone.GroupBlock, includePool bool) groupSnapshot {
	snap := groupSnapshot{Name: g.Name(), Headers: g.Headers(), Weights: make(map[string]float64)}
	for _, h := range g.Headers() {
		snap.Weights[h] = g.Weight(h)
	}

	if !includePool {
		return snap
	}

	pool := g.Pool()
	if pool == nil {
		return snap
	}

	for _, token := range pool.Tokens() {
		bucket := pool.Get(token)
		postings := make([]postingSnapshot, 0, bucket.Size())
		for _, p := range bucket.Entries() {
			postings = append(postings, postingSnapshot{Idx: p.Idx, Weight: p.Weight})
		}

		snap.Buckets = append(snap.Buckets, bucketSnapshot{Token: token, Postings: postings})
	}

	return snap
}

// Restore rebuilds a Backbone and its reference Table from a Snapshot.
func (s Snapshot) Restore() (*backbone.Backbone, model.Table, error) {
	refGroups := make(map[string]*backbone.GroupBlock, len(s.Backbone.RefGroups))
	for _, g := range s.Backbone.RefGroups {
		block := backbone.RestoreGroupBlock(g.Name, g.Headers, g.Weights)
		if g.Buckets != nil {
			block.SetPool(restorePool(g.Buckets))
		}

		refGroups[g.Name] = block
	}

	tgtGroups := make(map[string]*backbone.GroupBlock, len(s.Backbone.TgtGroups))
	for _, g := range s.Backbone.TgtGroups {
		tgtGroups[g.Name] = backbone.RestoreGroupBlock(g.Name, g.Headers, g.Weights)
	}

	bb, err := backbone.Restore(refGroups, tgtGroups, s.Backbone.RefToTgt, s.Backbone.TgtToRef, s.Backbone.RefKeyHeader, s.Backbone.TgtKeyHeader)
	if err != nil {
		return nil, model.Table{}, fmt.Errorf("persistence: restoring backbone: %w", err)
	}

	return bb, s.Reference, nil
}

func restorePool(buckets []bucketSnapshot) *index.Pool {
	pool := index.NewPool()
	for _, b := range buckets {
		for _, p := range b.Postings {
			pool.Place(b.Token, index.Posting{Idx: p.Idx, Weight: p.Weight})
		}
	}

	return pool
}
