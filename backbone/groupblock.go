package backbone

import (
	"math"

	"fuzzylink/index"
)

// PayloadKind tags what a GroupBlock is currently holding.
type PayloadKind int

const (
	// PayloadEmpty means the group has not been populated yet.
	PayloadEmpty PayloadKind = iota
	// PayloadPool means the group holds a reference-side inverted index.
	PayloadPool
	// PayloadTokens means the group holds a query row's tokenized cells.
	PayloadTokens
)

// GroupBlock is a named bundle of headers that participate together in
// scoring, each carrying a softmax-normalized weight. On the reference
// side a GroupBlock's payload is the Pool built from every reference row;
// on the query side it is the token list produced for one query row
// during lookup (spec.md §4.3).
type GroupBlock struct {
	name    string
	headers []string
	weights map[string]float64 // header -> softmax-normalized weight

	kind   PayloadKind
	pool   *index.Pool
	tokens []string
}

// NewGroupBlock builds a GroupBlock from parallel headers/rawWeights
// slices. Weights are softmax-normalized over the raw values so that
// weights within a group always sum to 1 regardless of the magnitudes
// written in the configuration file (spec.md §4.4, grounded on
// GroupBlock.java's softmaxWeights).
func NewGroupBlock(name string, headers []string, rawWeights []float64) (*GroupBlock, error) {
	if name == "" {
		return nil, ErrEmptyGroupName
	}

	if len(headers) == 0 {
		return nil, &ErrInvalidGroup{Group: name, cause: ErrEmptyHeaders}
	}

	if len(headers) != len(rawWeights) {
		return nil, &ErrInvalidGroup{Group: name, cause: ErrLengthMismatch}
	}

	var rawTotal float64
	for _, w := range rawWeights {
		rawTotal += w
	}

	if rawTotal <= 0 {
		return nil, &ErrInvalidGroup{Group: name, cause: ErrZeroTotalWeight}
	}

	normalized, err := softmax(rawWeights)
	if err != nil {
		return nil, &ErrInvalidGroup{Group: name, cause: err}
	}

	weights := make(map[string]float64, len(headers))
	for i, h := range headers {
		weights[h] += normalized[i]
	}

	return &GroupBlock{
		name:    name,
		headers: append([]string(nil), headers...),
		weights: weights,
		kind:    PayloadEmpty,
	}, nil
}

// softmax exponentiates and normalizes a slice of raw, non-negative
// header weights. Unlike a textbook softmax it is defined directly over
// the raw weights rather than over their logits, matching
// GroupBlock.java's normalization of the literal "Header(weight)" values
// from the configuration file.
func softmax(raw []float64) ([]float64, error) {
	exps := make([]float64, len(raw))
	var total float64
	for i, w := range raw {
		e := math.Exp(w)
		exps[i] = e
		total += e
	}

	if total <= 0 {
		return nil, ErrZeroTotalWeight
	}

	out := make([]float64, len(raw))
	for i, e := range exps {
		out[i] = e / total
	}

	return out, nil
}

// RestoreGroupBlock rebuilds a GroupBlock from already-normalized
// weights, bypassing softmax normalization. Used by the persistence
// package when reloading a previously built Backbone, where the
// weights on disk are already normalized.
func RestoreGroupBlock(name string, headers []string, weights map[string]float64) *GroupBlock {
	return &GroupBlock{
		name:    name,
		headers: headers,
		weights: weights,
		kind:    PayloadEmpty,
	}
}

// Name returns the group's name.
func (g *GroupBlock) Name() string { return g.name }

// Headers returns the headers that belong to this group, in
// configuration order.
func (g *GroupBlock) Headers() []string { return g.headers }

// Weight returns the softmax-normalized weight for a header in this
// group, or 0 if the header is not part of the group.
func (g *GroupBlock) Weight(header string) float64 { return g.weights[header] }

// Kind reports what the group's payload slot currently holds.
func (g *GroupBlock) Kind() PayloadKind { return g.kind }

// Pool returns the group's reference-side inverted index, or nil if the
// payload is not a Pool.
func (g *GroupBlock) Pool() *index.Pool {
	if g.kind != PayloadPool {
		return nil
	}

	return g.pool
}

// Tokens returns the group's query-side token list, or nil if the
// payload is not a token list.
func (g *GroupBlock) Tokens() []string {
	if g.kind != PayloadTokens {
		return nil
	}

	return g.tokens
}

// SetPool installs a reference-side Pool as the group's payload.
func (g *GroupBlock) SetPool(p *index.Pool) {
	g.pool = p
	g.tokens = nil
	g.kind = PayloadPool
}

// SetTokens installs a query-side token list as the group's payload,
// replacing whatever was previously held.
func (g *GroupBlock) SetTokens(tokens []string) {
	g.tokens = tokens
	g.pool = nil
	g.kind = PayloadTokens
}

// Reset clears the group's payload, returning it to PayloadEmpty. Used
// between queries so a GroupBlock can be reused across lookups without
// reallocating.
func (g *GroupBlock) Reset() {
	g.pool = nil
	g.tokens = nil
	g.kind = PayloadEmpty
}
