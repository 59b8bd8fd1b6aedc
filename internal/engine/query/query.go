// Package query is the evaluator: it dispatches each query kind to the
// index best suited to it and never mutates engine state.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/sinanm89/lexigraph/internal/engine/builder"
	"github.com/sinanm89/lexigraph/internal/engine/ngram"
)

// Result is the outcome of a query: the active-record ids that satisfy it,
// plus elapsed time. Distances is populated only for similarity queries.
type Result struct {
	IDs        []int
	Distances  map[int]int
	Elapsed    time.Duration
	OutOfRange bool
}

// Evaluator answers queries against a fixed generation of indices.
type Evaluator struct {
	ix          *builder.Indices
	defaultMaxD int
}

func New(ix *builder.Indices, defaultMaxD int) *Evaluator {
	return &Evaluator{ix: ix, defaultMaxD: defaultMaxD}
}

func (e *Evaluator) active(id int) bool {
	r, ok := e.ix.Dict.GetByID(id)
	return ok && !r.Deleted
}

func timed(fn func() Result) Result {
	start := time.Now()
	res := fn()
	res.Elapsed = time.Since(start)
	return res
}

func sortedIDs(ids []int) []int {
	sort.Ints(ids)
	return ids
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// Exact is an O(1) by_word lookup.
func (e *Evaluator) Exact(word string) Result {
	return timed(func() Result {
		r, ok := e.ix.Dict.GetByWord(word)
		if !ok || r.Deleted {
			return Result{}
		}
		return Result{IDs: []int{r.ID}}
	})
}

// Prefix scans the ordered prefix index from p's lower bound.
func (e *Evaluator) Prefix(p string) Result {
	return timed(func() Result {
		var ids []int
		for _, w := range e.ix.Prefix.PrefixRange(p) {
			if r, ok := e.ix.Dict.GetByWord(w); ok && !r.Deleted {
				ids = append(ids, r.ID)
			}
		}
		return Result{IDs: sortedIDs(ids)}
	})
}

// Suffix runs the same algorithm on the suffix index over reverse(s).
func (e *Evaluator) Suffix(s string) Result {
	return timed(func() Result {
		rev := reverseString(s)
		var ids []int
		for _, w := range e.ix.Suffix.PrefixRange(rev) {
			orig := reverseString(w)
			if r, ok := e.ix.Dict.GetByWord(orig); ok && !r.Deleted {
				ids = append(ids, r.ID)
			}
		}
		return Result{IDs: sortedIDs(ids)}
	})
}

// Substring dispatches on key length: single bytes fall back to a linear
// scan; longer keys intersect 2-gram posting lists, then verify each
// survivor (the overlap is necessary but not sufficient).
func (e *Evaluator) Substring(k string) Result {
	return timed(func() Result {
		if len(k) == 0 {
			return Result{}
		}
		if len(k) == 1 {
			var ids []int
			for _, r := range e.ix.Dict.All() {
				if !r.Deleted && strings.Contains(r.Word, k) {
					ids = append(ids, r.ID)
				}
			}
			return Result{IDs: sortedIDs(ids)}
		}

		grams := ngram.Grams(k)
		posting := e.ix.Grams.Lookup(grams[0]).Clone()
		for _, g := range grams[1:] {
			posting.IntersectWith(e.ix.Grams.Lookup(g))
		}
		var ids []int
		for _, id := range posting.Iter() {
			r, ok := e.ix.Dict.GetByID(id)
			if !ok || r.Deleted {
				continue
			}
			if strings.Contains(r.Word, k) {
				ids = append(ids, id)
			}
		}
		return Result{IDs: sortedIDs(ids)}
	})
}

// Similarity runs a BK-tree search, standard (maxD < 0 selects the default)
// or exhaustive.
func (e *Evaluator) Similarity(word string, maxD int, exhaustive bool) Result {
	return timed(func() Result {
		if maxD < 0 {
			maxD = e.defaultMaxD
		}
		matches := e.ix.BK.Search(word, maxD, exhaustive)
		ids := make([]int, 0, len(matches))
		dist := make(map[int]int, len(matches))
		for _, m := range matches {
			if !e.active(m.ID) {
				continue
			}
			ids = append(ids, m.ID)
			dist[m.ID] = m.Distance
		}
		sort.Slice(ids, func(i, j int) bool {
			if dist[ids[i]] != dist[ids[j]] {
				return dist[ids[i]] < dist[ids[j]]
			}
			return ids[i] < ids[j]
		})
		return Result{IDs: ids, Distances: dist}
	})
}

func (e *Evaluator) filterActive(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if e.active(id) {
			out = append(out, id)
		}
	}
	return out
}

func (e *Evaluator) Length(n int) Result {
	return timed(func() Result {
		return Result{IDs: sortedIDs(e.filterActive(e.ix.Lengths.Lookup(n)))}
	})
}

func (e *Evaluator) LengthRange(lo, hi int) Result {
	return timed(func() Result {
		return Result{IDs: sortedIDs(e.filterActive(e.ix.Lengths.LookupRange(lo, hi)))}
	})
}

// IDRange enumerates active ids in [lo, hi]. If the request falls entirely
// outside the observed id envelope, OutOfRange is set instead.
func (e *Evaluator) IDRange(lo, hi int) Result {
	return timed(func() Result {
		min, max, ok := e.ix.Dict.IDEnvelope()
		if !ok || hi < min || lo > max {
			return Result{OutOfRange: true}
		}
		var ids []int
		for id := lo; id <= hi; id++ {
			if r, ok := e.ix.Dict.GetByID(id); ok && !r.Deleted {
				ids = append(ids, id)
			}
		}
		return Result{IDs: sortedIDs(ids)}
	})
}

// And, Or and Not are intentionally linear full scans for correctness; a
// 2-gram pre-filter is a documented future optimization, gated behind
// keyword length >= 2.
func (e *Evaluator) And(words []string) Result {
	return timed(func() Result {
		var ids []int
		for _, r := range e.ix.Dict.All() {
			if r.Deleted {
				continue
			}
			all := true
			for _, w := range words {
				if !strings.Contains(r.Word, w) {
					all = false
					break
				}
			}
			if all {
				ids = append(ids, r.ID)
			}
		}
		return Result{IDs: sortedIDs(ids)}
	})
}

func (e *Evaluator) Or(words []string) Result {
	return timed(func() Result {
		var ids []int
		for _, r := range e.ix.Dict.All() {
			if r.Deleted {
				continue
			}
			for _, w := range words {
				if strings.Contains(r.Word, w) {
					ids = append(ids, r.ID)
					break
				}
			}
		}
		return Result{IDs: sortedIDs(ids)}
	})
}

// Not returns every active word not containing word; this formula also
// serves as the base set when "not" appears first in a complex query.
func (e *Evaluator) Not(word string) Result {
	return timed(func() Result {
		var ids []int
		for _, r := range e.ix.Dict.All() {
			if !r.Deleted && !strings.Contains(r.Word, word) {
				ids = append(ids, r.ID)
			}
		}
		return Result{IDs: sortedIDs(ids)}
	})
}
