// Package fuzzylink links a messy target table against a clean
// reference table by weighted fuzzy token matching: Open builds the
// matching engine from a backbone configuration and the reference
// table, Lookup/LookupBatch score target rows against it (LookupBatch
// also resolves collisions among the batch's results), and Save/Load
// round-trip a built engine to and from a byte stream.
package fuzzylink

import (
	"context"
	"io"

	"fuzzylink/backbone"
	"fuzzylink/engine"
	"fuzzylink/model"
	"fuzzylink/persistence"
	"fuzzylink/query"
	"fuzzylink/rearrange"
)

// Database is a built matching engine over one reference table.
type Database struct {
	bb  *backbone.Backbone
	eng *engine.Engine
}

// Open parses a backbone configuration document, builds its groups and
// links, and indexes the reference table into them.
func Open(configYAML []byte, reference model.Table, opts ...engine.Option) (*Database, error) {
	cfg, err := backbone.ParseConfig(configYAML)
	if err != nil {
		return nil, err
	}

	bb, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	eng := engine.New(bb, opts...)
	if err := eng.Build(reference); err != nil {
		return nil, err
	}

	return &Database{bb: bb, eng: eng}, nil
}

// Load restores a previously saved Database from r. The restored
// backbone's GroupBlocks already carry their Pools, so no
// re-tokenizing of the reference table is needed.
func Load(r io.Reader, opts ...engine.Option) (*Database, error) {
	snap, err := persistence.Load(r)
	if err != nil {
		return nil, err
	}

	bb, reference, err := snap.Restore()
	if err != nil {
		return nil, err
	}

	eng := engine.New(bb, opts...)
	if err := eng.AdoptBuilt(reference); err != nil {
		return nil, err
	}

	return &Database{bb: bb, eng: eng}, nil
}

// Save writes a full snapshot of the database to w.
func (d *Database) Save(w io.Writer) error {
	return persistence.Save(w, d.bb, d.eng.Reference())
}

// Lookup scores a single target row against the reference table.
func (d *Database) Lookup(queryIdx model.RowIndex, row model.Row) (query.ResultTuple, error) {
	return d.eng.Lookup(queryIdx, row)
}

// LookupBatch scores every row of a target table concurrently and then
// resolves top-candidate collisions among the results, using
// diffPercent as the CollisionRearranger's promotion threshold (spec.md
// §4.9). workers caps the number of goroutines used for scoring; 0
// means unlimited.
func (d *Database) LookupBatch(ctx context.Context, target model.Table, workers int, diffPercent float64) ([]query.ResultTuple, error) {
	results, err := d.eng.LookupBatch(ctx, target.Rows, workers)
	if err != nil {
		return nil, err
	}

	rearranger := rearrange.New(d.eng.Reference(), diffPercent)
	return rearranger.Resolve(results, target.Rows), nil
}

// Backbone returns the database's routing configuration.
func (d *Database) Backbone() *backbone.Backbone { return d.bb }

// Reference returns the database's source reference table.
func (d *Database) Reference() model.Table { return d.eng.Reference() }
