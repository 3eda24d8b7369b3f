package engine

import "log/slog"

// Logger wraps slog.Logger with the handful of domain events the
// engine reports, following the teacher's *Logger-wrapper idiom.
type Logger struct {
	inner *slog.Logger
}

// NewLogger wraps an *slog.Logger. A nil inner logger disables logging.
func NewLogger(inner *slog.Logger) *Logger {
	if inner == nil {
		inner = slog.New(slog.DiscardHandler)
	}

	return &Logger{inner: inner}
}

// LogBuild reports that the reference index finished building.
func (l *Logger) LogBuild(rows int, groups int) {
	l.inner.Info("engine: built reference index", "rows", rows, "groups", groups)
}

// LogLookup reports the outcome of scoring one target row.
func (l *Logger) LogLookup(queryIdx int, candidates int, exactHit bool) {
	l.inner.Debug("engine: lookup complete", "query_idx", queryIdx, "candidates", candidates, "exact_hit", exactHit)
}

// LogLookupBatch reports the outcome of a parallel batch lookup.
func (l *Logger) LogLookupBatch(rows int, workers int) {
	l.inner.Info("engine: lookup batch complete", "rows", rows, "workers", workers)
}
