// Package builder owns cross-index construction: bulk build from a record
// stream, the incremental add/delete/restore path, optimize, and validate.
// It is the one place that knows how the dictionary, interner, and five
// indices must move together to stay consistent.
package builder

import (
	"context"

	"github.com/sinanm89/lexigraph/internal/engine/bktree"
	"github.com/sinanm89/lexigraph/internal/engine/dictionary"
	"github.com/sinanm89/lexigraph/internal/engine/intern"
	"github.com/sinanm89/lexigraph/internal/engine/lenindex"
	"github.com/sinanm89/lexigraph/internal/engine/ngram"
	"github.com/sinanm89/lexigraph/internal/engine/ordindex"
)

// Indices bundles the dictionary, interner, and five cooperating indices
// that make up one engine generation.
type Indices struct {
	Dict    *dictionary.Dictionary
	Intern  *intern.Interner
	Prefix  *ordindex.Index
	Suffix  *ordindex.Index
	Grams   *ngram.Index
	Lengths *lenindex.Index
	BK      *bktree.Tree
}

// NewIndices creates an empty set of indices with the given BK-tree max_d cap.
func NewIndices(bkCap int) *Indices {
	return &Indices{
		Dict:    dictionary.New(),
		Intern:  intern.New(),
		Prefix:  ordindex.New(),
		Suffix:  ordindex.New(),
		Grams:   ngram.New(),
		Lengths: lenindex.New(),
		BK:      bktree.New(bkCap),
	}
}

func reverseWord(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// Config tunes the bulk build's parallel phase.
type Config struct {
	Workers     int
	BKBatchSize int
	BKBatchHint func(int)
}

// BulkBuild populates ix from records (active and deleted mixed), following
// the documented step order: filter to active, populate dictionary and
// interner, reserve length buckets, populate prefix/suffix and 2-gram in
// parallel, then populate the BK-tree serially in batches.
func BulkBuild(ctx context.Context, ix *Indices, records []dictionary.Record, cfg Config) error {
	active := make([]dictionary.Record, 0, len(records))
	for _, r := range records {
		ix.Dict.Bump(r.ID)
		if !r.Deleted {
			active = append(active, r)
		}
	}

	words := make([]string, 0, len(active))
	ids := make([]int, 0, len(active))
	for _, r := range active {
		word := ix.Intern.Intern(r.Word)
		ix.Dict.InsertNew(word, r.ID)
		ix.Lengths.Reserve(len(word))
		words = append(words, word)
		ids = append(ids, r.ID)
	}
	for i := range words {
		ix.Lengths.Add(len(words[i]), ids[i])
	}

	if err := parallelBuildOrdAndGrams(ctx, ix, words, ids, cfg); err != nil {
		return err
	}

	ix.BK.SetBatchHint(cfg.BKBatchHint)
	batch := cfg.BKBatchSize
	if batch <= 0 {
		batch = 1000
	}
	ix.BK.BatchInsert(words, ids, batch)
	return nil
}

// BuildDictAndBK populates only the dictionary, interner, and BK-tree from
// records, leaving the prefix/suffix/2-gram/length indices untouched. Used
// when those four have already been restored from a loaded snapshot, so the
// cold-start optimization the snapshot exists for is not defeated by
// redundantly recomputing them from the text log.
func BuildDictAndBK(ctx context.Context, ix *Indices, records []dictionary.Record, cfg Config) error {
	active := make([]dictionary.Record, 0, len(records))
	for _, r := range records {
		ix.Dict.Bump(r.ID)
		if !r.Deleted {
			active = append(active, r)
		}
	}

	words := make([]string, 0, len(active))
	ids := make([]int, 0, len(active))
	for _, r := range active {
		word := ix.Intern.Intern(r.Word)
		ix.Dict.InsertNew(word, r.ID)
		words = append(words, word)
		ids = append(ids, r.ID)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	ix.BK.SetBatchHint(cfg.BKBatchHint)
	batch := cfg.BKBatchSize
	if batch <= 0 {
		batch = 1000
	}
	ix.BK.BatchInsert(words, ids, batch)
	return nil
}

// AddOrRestore inserts a brand-new word, or restores it if it already exists
// and is deleted. Re-adding an already-active word is a no-op on the id
// counter (idempotence law).
func (ix *Indices) AddOrRestore(word string) (id int, created bool) {
	if r, ok := ix.Dict.GetByWord(word); ok {
		if r.Deleted {
			ix.RestoreID(r.ID)
		}
		return r.ID, false
	}
	id = ix.Dict.NextID()
	ix.insertNew(word, id)
	return id, true
}

func (ix *Indices) insertNew(word string, id int) {
	canon := ix.Intern.Intern(word)
	ix.Dict.InsertNew(canon, id)
	ix.Prefix.Insert(canon)
	ix.Suffix.Insert(reverseWord(canon))
	ix.Lengths.Add(len(canon), id)
	ix.Grams.Register(canon, id)
	ix.BK.Insert(canon, id)
}

// DeleteID removes id's footprint from prefix, suffix and length, and sets
// its deletion flag. The word is left in the 2-gram index and BK-tree until
// the next optimize/rebuild; those results must be re-filtered by the
// dictionary's active flag at query time.
func (ix *Indices) DeleteID(id int) bool {
	r, ok := ix.Dict.GetByID(id)
	if !ok || r.Deleted {
		return false
	}
	ix.Prefix.Remove(r.Word)
	ix.Suffix.Remove(reverseWord(r.Word))
	ix.Lengths.Remove(len(r.Word), id)
	ix.Dict.MarkDeleted(id)
	return true
}

// RestoreID clears id's deletion flag and re-inserts it into every index.
func (ix *Indices) RestoreID(id int) bool {
	r, ok := ix.Dict.GetByID(id)
	if !ok || !r.Deleted {
		return false
	}
	ix.Dict.MarkActive(id)
	ix.Prefix.Insert(r.Word)
	ix.Suffix.Insert(reverseWord(r.Word))
	ix.Lengths.Add(len(r.Word), id)
	ix.BK.Insert(r.Word, id)
	return true
}

// Optimize purges deleted ids from 2-gram postings and drops empty gram keys
// and empty length buckets. Never mutates the dictionary or BK-tree.
func (ix *Indices) Optimize() (removedGramIDs, removedGramKeys, droppedLenBuckets int) {
	removedGramIDs, removedGramKeys = ix.Grams.Purge(func(id int) bool {
		r, ok := ix.Dict.GetByID(id)
		return !ok || r.Deleted
	})
	droppedLenBuckets = ix.Lengths.DropEmpty()
	return
}
