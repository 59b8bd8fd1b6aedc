// Package engine wires the cooperating indices, the builder, and the query
// evaluator into the single-writer, single-reader indexing and query engine
// the rest of the module drives.
package engine

import (
	"context"

	"github.com/sinanm89/lexigraph/internal/engine/builder"
	"github.com/sinanm89/lexigraph/internal/engine/dictionary"
	"github.com/sinanm89/lexigraph/internal/engine/query"
	"github.com/sinanm89/lexigraph/internal/engine/snapshot"
)

// Config tunes the engine's resolved parameters; internal/config is the
// TOML-backed source of these values.
type Config struct {
	BKMaxDCap    int
	BKBatchSize  int
	DefaultMaxD  int
	BuildWorkers int
	Warn         func(string)
	BatchHint    func(int)
}

// Engine is the single-writer, single-reader indexing and query engine.
type Engine struct {
	ix   *builder.Indices
	eval *query.Evaluator
	cfg  Config
}

func New(cfg Config) *Engine {
	if cfg.BKMaxDCap <= 0 {
		cfg.BKMaxDCap = 10
	}
	if cfg.DefaultMaxD <= 0 {
		cfg.DefaultMaxD = 2
	}
	ix := builder.NewIndices(cfg.BKMaxDCap)
	if cfg.Warn != nil {
		ix.BK.SetWarn(cfg.Warn)
	}
	return &Engine{
		ix:   ix,
		eval: query.New(ix, cfg.DefaultMaxD),
		cfg:  cfg,
	}
}

// BulkBuild populates the engine from records loaded from the text log.
func (e *Engine) BulkBuild(ctx context.Context, records []dictionary.Record) error {
	return builder.BulkBuild(ctx, e.ix, records, builder.Config{
		Workers:     e.cfg.BuildWorkers,
		BKBatchSize: e.cfg.BKBatchSize,
		BKBatchHint: e.cfg.BatchHint,
	})
}

// BuildDictAndBK populates the dictionary and BK-tree from records loaded
// from the text log, leaving the prefix/suffix/2-gram/length indices
// untouched. Call this instead of BulkBuild after a successful
// LoadSnapshotIndices, so the snapshot's cold-start optimization is not
// defeated by redundantly recomputing those four indices from the text log.
func (e *Engine) BuildDictAndBK(ctx context.Context, records []dictionary.Record) error {
	return builder.BuildDictAndBK(ctx, e.ix, records, builder.Config{
		Workers:     e.cfg.BuildWorkers,
		BKBatchSize: e.cfg.BKBatchSize,
		BKBatchHint: e.cfg.BatchHint,
	})
}

// LoadSnapshotIndices restores the prefix/suffix/2-gram/length indices from
// a previously saved snapshot, skipping their build steps. The dictionary
// and BK-tree are still populated separately, from the text file (see
// BuildDictAndBK).
func (e *Engine) LoadSnapshotIndices(s snapshot.Snapshot) {
	e.ix.Prefix = s.Prefix
	e.ix.Suffix = s.Suffix
	if s.Grams != nil {
		e.ix.Grams = s.Grams
	}
	if s.Lengths != nil {
		e.ix.Lengths = s.Lengths
	}
	e.eval = query.New(e.ix, e.cfg.DefaultMaxD)
}

// BuildSnapshot captures the current prefix/suffix/2-gram/length state for
// the snapshot codec to serialize.
func (e *Engine) BuildSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Prefix:  e.ix.Prefix,
		Suffix:  e.ix.Suffix,
		Grams:   e.ix.Grams,
		Lengths: e.ix.Lengths,
	}
}

func (e *Engine) AddOrRestore(word string) (id int, created bool) {
	return e.ix.AddOrRestore(word)
}

func (e *Engine) Delete(id int) bool   { return e.ix.DeleteID(id) }
func (e *Engine) Undelete(id int) bool { return e.ix.RestoreID(id) }

func (e *Engine) Optimize() (removedGramIDs, removedGramKeys, droppedLenBuckets int) {
	return e.ix.Optimize()
}

func (e *Engine) Validate() builder.ValidationReport { return e.ix.Validate() }

// Rebuild discards every index and repopulates from records. The REPL's
// "rebuild" command passes the records held in the current dictionary; the
// text log is not reread.
func (e *Engine) Rebuild(ctx context.Context, records []dictionary.Record) error {
	ix := builder.NewIndices(e.cfg.BKMaxDCap)
	if e.cfg.Warn != nil {
		ix.BK.SetWarn(e.cfg.Warn)
	}
	e.ix = ix
	e.eval = query.New(e.ix, e.cfg.DefaultMaxD)
	return e.BulkBuild(ctx, records)
}

func (e *Engine) Exact(word string) query.Result { return e.eval.Exact(word) }
func (e *Engine) Prefix(p string) query.Result    { return e.eval.Prefix(p) }
func (e *Engine) Suffix(s string) query.Result    { return e.eval.Suffix(s) }
func (e *Engine) Substring(k string) query.Result { return e.eval.Substring(k) }
func (e *Engine) Similarity(word string, maxD int, exhaustive bool) query.Result {
	return e.eval.Similarity(word, maxD, exhaustive)
}
func (e *Engine) Length(n int) query.Result          { return e.eval.Length(n) }
func (e *Engine) LengthRange(lo, hi int) query.Result { return e.eval.LengthRange(lo, hi) }
func (e *Engine) IDRange(lo, hi int) query.Result     { return e.eval.IDRange(lo, hi) }
func (e *Engine) And(words []string) query.Result     { return e.eval.And(words) }
func (e *Engine) Or(words []string) query.Result      { return e.eval.Or(words) }
func (e *Engine) Not(word string) query.Result        { return e.eval.Not(word) }
func (e *Engine) Complex(input string) (query.Result, []string) {
	return e.eval.Complex(input)
}

func (e *Engine) Dictionary() *dictionary.Dictionary { return e.ix.Dict }
