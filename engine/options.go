package engine

import "fuzzylink/token"

// Option configures an Engine at construction time, following the
// teacher's functional-options pattern.
type Option func(*Engine)

// WithLogger sets the Engine's logger. The default discards all log
// output.
func WithLogger(l *Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics sets the Engine's MetricsCollector. The default is
// NoopMetricsCollector.
func WithMetrics(m MetricsCollector) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTokenizer overrides the Engine's Tokenizer. The default is
// token.NewDefault().
func WithTokenizer(t *token.Tokenizer) Option {
	return func(e *Engine) { e.tokenizer = t }
}

// WithWeights overrides the length-weight and bucket-filter constants
// used during fuzzy scoring (spec.md §4.6). The default matches the
// specification's frozen constants.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// Weights holds the tunable constants of the fuzzy scoring formulas:
//
//	L(tokenLen) = max(0, exp((tokenLen+S)/C) - exp(S/C) - M)
//	F(bucketSize) = C2/(bucketSize+H) + 0.5
//
// contribution = headerWeight * L(len(token)) * F(bucket.Size())
type Weights struct {
	C  float64
	S  float64
	M  float64
	C2 float64
	H  float64
}

// DefaultWeights returns the specification's frozen scoring constants.
func DefaultWeights() Weights {
	return Weights{C: 2.0, S: -7.0, M: 0.2, C2: 10.0, H: 0.7}
}
