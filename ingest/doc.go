// Package ingest loads reference and target tables from CSV files and
// applies an optional regex preprocessing pass before handing rows to
// the matching engine. It is a thin adapter: the core packages
// (backbone, index, engine, query, similarity, rearrange, persistence)
// never import it, so the engine stays usable against any model.Table
// regardless of where the data came from.
package ingest
