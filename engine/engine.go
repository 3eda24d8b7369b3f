package engine

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"fuzzylink/backbone"
	"fuzzylink/index"
	"fuzzylink/model"
	"fuzzylink/query"
	"fuzzylink/similarity"
	"fuzzylink/token"
)

// Engine is the built matching engine over one reference table: it owns
// the backbone's GroupBlocks, populated with Pools during Build, and the
// source reference table itself (spec.md §4.5, §4.6).
type Engine struct {
	bb        *backbone.Backbone
	reference model.Table
	tokenizer *token.Tokenizer
	weights   Weights
	logger    *Logger
	metrics   MetricsCollector

	built bool
}

// New creates an unbuilt Engine over a Backbone. Call Build with the
// reference table before Lookup or LookupBatch.
func New(bb *backbone.Backbone, opts ...Option) *Engine {
	e := &Engine{
		bb:        bb,
		tokenizer: token.NewDefault(),
		weights:   DefaultWeights(),
		logger:    NewLogger(nil),
		metrics:   NoopMetricsCollector{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Build indexes every row of the reference table into the backbone's
// reference GroupBlocks (spec.md §4.5). It may be called at most once.
func (e *Engine) Build(ref model.Table) error {
	if e.built {
		return ErrAlreadyBuilt
	}

	if ref.Len() == 0 {
		return ErrEmptyReference
	}

	if keyHeader := e.bb.ReferenceKeyHeader(); keyHeader != "" && !hasColumn(ref.Columns, keyHeader) {
		return &ErrMissingKeyHeader{Header: keyHeader}
	}

	groups := e.bb.Groups(backbone.Reference)
	pools := make(map[string]*index.Pool, len(groups))
	for name := range groups {
		pools[name] = index.NewPool()
	}

	for i, row := range ref.Rows {
		idx := model.RowIndex(i)

		for header, value := range row {
			for _, g := range e.bb.GroupsFromHeader(backbone.Reference, header) {
				headerWeight := g.Weight(header)
				for _, tok := range e.tokenizer.Tokenize(value) {
					pools[g.Name()].Place(tok, index.Posting{Idx: idx, Weight: headerWeight})
				}
			}
		}
	}

	for name, g := range groups {
		g.SetPool(pools[name])
	}

	e.reference = ref
	e.built = true

	e.metrics.IncBuild(ref.Len())
	e.logger.LogBuild(ref.Len(), len(groups))

	return nil
}

// AdoptBuilt marks the engine built using a reference table and a
// Backbone whose reference GroupBlocks already carry their Pools
// (restored from a persisted snapshot), skipping the tokenize-and-place
// pass Build would otherwise do.
func (e *Engine) AdoptBuilt(ref model.Table) error {
	if e.built {
		return ErrAlreadyBuilt
	}

	if ref.Len() == 0 {
		return ErrEmptyReference
	}

	e.reference = ref
	e.built = true

	e.metrics.IncBuild(ref.Len())
	e.logger.LogBuild(ref.Len(), len(e.bb.Groups(backbone.Reference)))

	return nil
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}

	return false
}

// Lookup scores one target row against the reference index, returning
// its top and second-best candidates (spec.md §4.6). queryIdx is
// stamped onto the returned tuple as-is.
//
// Lookup never mutates the Backbone's shared GroupBlocks: both phases
// route through locally scoped scratch state, so concurrent calls from
// LookupBatch are safe without cloning or serializing against the
// Backbone (spec.md §5, §9's prescribed redesign of the per-query
// payload slot).
func (e *Engine) Lookup(queryIdx model.RowIndex, row model.Row) (query.ResultTuple, error) {
	if !e.built {
		return query.ResultTuple{}, ErrNotBuilt
	}

	if exact := e.lookupByID(row); exact != nil {
		tuple := e.buildExactResult(queryIdx, row, exact)

		e.metrics.IncLookup()
		e.metrics.IncExactHit()
		e.metrics.ObserveCandidates(int(exact.GetCardinality()))
		e.logger.LogLookup(int(queryIdx), int(exact.GetCardinality()), true)

		return tuple, nil
	}

	analyzer := query.NewAnalyzer()
	e.scoreFuzzy(row, analyzer)

	tuple, candidates := e.buildResult(queryIdx, row, analyzer)

	e.metrics.IncLookup()
	e.metrics.ObserveCandidates(candidates)
	e.logger.LogLookup(int(queryIdx), candidates, false)

	return tuple, nil
}

// lookupByID implements Phase A: if the query row carries a non-empty
// target key value, look that raw value up directly as a token in
// every reference GroupBlock that contains the reference key header.
// An all-digit key of at least the Tokenizer's NumericIDMinDigits is
// never shredded (spec.md §4.1 step 6), so such a key is itself one of
// the tokens placed during Build; any other key matches only where the
// raw value happens to equal one of the placed tokens. Returns nil if
// the key is absent, empty, or matches nothing (spec.md §4.6 Phase A).
func (e *Engine) lookupByID(row model.Row) *roaring.Bitmap {
	targetKey := e.bb.TargetKeyHeader()
	if targetKey == "" {
		return nil
	}

	key, ok := row[targetKey]
	if !ok || key == "" {
		return nil
	}

	refKeyHeader := e.bb.ReferenceKeyHeader()
	found := roaring.New()

	for _, g := range e.bb.GroupsFromHeader(backbone.Reference, refKeyHeader) {
		pool := g.Pool()
		if pool == nil {
			continue
		}

		bucket := pool.Get(key)
		if bucket == nil {
			continue
		}

		for _, posting := range bucket.Entries() {
			found.Add(uint32(posting.Idx))
		}
	}

	if found.IsEmpty() {
		return nil
	}

	return found
}

// scoreFuzzy implements Phase B: every query cell is tokenized and
// routed to its target group(s); each target group's accumulated token
// list is matched against the Pools of its linked reference groups,
// contributing headerWeight*L(len(token))*F(bucket.Size()) per match
// (spec.md §4.6 Phase B).
func (e *Engine) scoreFuzzy(row model.Row, analyzer *query.Analyzer) {
	groupTokens := make(map[string][]string)

	for header, value := range row {
		tokens := e.tokenizer.Tokenize(value)
		analyzer.SetCells(header, tokens)

		for _, g := range e.bb.GroupsFromHeader(backbone.Target, header) {
			groupTokens[g.Name()] = append(groupTokens[g.Name()], tokens...)
		}
	}

	for groupName, tokens := range groupTokens {
		for _, refGroup := range e.bb.LinksFrom(backbone.Target, groupName) {
			pool := refGroup.Pool()
			if pool == nil {
				continue
			}

			for _, tok := range tokens {
				bucket := pool.Get(tok)
				if bucket == nil {
					continue
				}

				size := bucket.Size()
				for _, posting := range bucket.Entries() {
					analyzer.Increase(posting.Idx, e.weights.contribution(posting.Weight, len([]rune(tok)), size))
				}
			}
		}
	}
}

// buildExactResult assembles a ResultTuple for a Phase A hit: every
// matched row carries the +∞ weight sentinel, and only the first
// (arbitrary but stable) match becomes the tuple's top candidate since
// Phase A's ranking is total rather than score-based (spec.md §4.6
// Phase A).
func (e *Engine) buildExactResult(queryIdx model.RowIndex, row model.Row, matches *roaring.Bitmap) query.ResultTuple {
	tuple := query.NewResultTuple(queryIdx)

	it := matches.Iterator()
	if !it.HasNext() {
		return tuple
	}

	tuple.TopIdx = model.RowIndex(it.Next())
	tuple.TopWeight = posInf

	if it.HasNext() {
		tuple.SecondIdx = model.RowIndex(it.Next())
		tuple.SecondWeight = posInf
	}

	if refRow, ok := e.reference.At(tuple.TopIdx); ok {
		tuple.DamerauSim = similarity.RowDamerau(row, refRow)
		tuple.JaccardSim = similarity.RowJaccard(row, refRow)
	}

	tuple.SameID = e.SameID(row, tuple.TopIdx)

	return tuple
}

// buildResult drains the analyzer's candidates into a ResultTuple and
// reports how many distinct candidates were found.
func (e *Engine) buildResult(queryIdx model.RowIndex, row model.Row, analyzer *query.Analyzer) (query.ResultTuple, int) {
	candidates := analyzer.DrainSorted()
	tuple := query.NewResultTuple(queryIdx)

	if len(candidates) == 0 {
		return tuple, 0
	}

	tuple.TopIdx = candidates[0].Idx
	tuple.TopWeight = candidates[0].Weight

	if refRow, ok := e.reference.At(tuple.TopIdx); ok {
		tuple.DamerauSim = similarity.RowDamerau(row, refRow)
		tuple.JaccardSim = similarity.RowJaccard(row, refRow)
	}

	if len(candidates) > 1 {
		tuple.SecondIdx = candidates[1].Idx
		tuple.SecondWeight = candidates[1].Weight
	}

	tuple.SameID = e.SameID(row, tuple.TopIdx)

	return tuple, len(candidates)
}

// SameID reports whether a query row's target key column already
// matches the reference key column of a candidate row, grounded on the
// original implementation's compareByID helper.
func (e *Engine) SameID(row model.Row, refIdx model.RowIndex) bool {
	tgtKey := e.bb.TargetKeyHeader()
	if tgtKey == "" {
		return false
	}

	refRow, ok := e.reference.At(refIdx)
	if !ok {
		return false
	}

	queryVal, ok := row[tgtKey]
	if !ok {
		return false
	}

	refVal, ok := refRow[e.bb.ReferenceKeyHeader()]
	if !ok {
		return false
	}

	return queryVal == refVal
}

// LookupBatch scores every row in a target table concurrently, using at
// most workers goroutines at once (0 means unlimited). Results are
// returned in the same order as rows.
func (e *Engine) LookupBatch(ctx context.Context, rows []model.Row, workers int) ([]query.ResultTuple, error) {
	if !e.built {
		return nil, ErrNotBuilt
	}

	results := make([]query.ResultTuple, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, row := range rows {
		i, row := i, row

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			tuple, err := e.Lookup(model.RowIndex(i), row)
			if err != nil {
				return err
			}

			results[i] = tuple
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, translateError(err)
	}

	e.logger.LogLookupBatch(len(rows), workers)

	return results, nil
}

// Reference returns the built reference table.
func (e *Engine) Reference() model.Table { return e.reference }

// Backbone returns the engine's backbone.
func (e *Engine) Backbone() *backbone.Backbone { return e.bb }
