// Package bktree implements a BK-tree (Burkhard-Keller tree) over the
// bounded Damerau-Levenshtein kernel, supporting bounded edit-distance
// search via the triangle inequality.
//
// Nodes live in an arena addressed by uint32 index rather than as boxed
// pointers, so the whole tree can be discarded by resetting the arena and
// the structure stays cheap to eventually serialize.
package bktree

import (
	"sort"

	"github.com/sinanm89/lexigraph/internal/engine/kernel"
)

// depthGuard bounds the insert walk purely as a safety net against a
// pathological or corrupted tree; real dictionaries never approach it.
const depthGuard = 10000

type node struct {
	word     string
	id       int
	children map[int]uint32
}

// Match is one similarity-search hit.
type Match struct {
	ID       int
	Distance int
}

// Tree is an arena-addressed BK-tree. The zero value is not usable; use New.
type Tree struct {
	nodes   []node
	hasRoot bool
	maxDCap int
	warn    func(string)
	onBatch func(inserted int)
}

// New creates an empty tree whose similarity search clamps max_d to cap.
func New(cap int) *Tree {
	if cap <= 0 {
		cap = 10
	}
	return &Tree{maxDCap: cap}
}

// SetWarn installs the callback invoked when the insert depth guard trips.
func (t *Tree) SetWarn(fn func(string)) { t.warn = fn }

// SetBatchHint installs the callback invoked every batch during BatchInsert.
func (t *Tree) SetBatchHint(fn func(int)) { t.onBatch = fn }

// Reset discards every node, returning the tree to empty.
func (t *Tree) Reset() {
	t.nodes = nil
	t.hasRoot = false
}

func (t *Tree) Len() int { return len(t.nodes) }

// Insert adds (word, id). If word is already present (distance 0 from some
// node on the walk), that node's id is overwritten. Iterative, not
// recursive, so depth never threatens the call stack.
func (t *Tree) Insert(word string, id int) {
	if !t.hasRoot {
		t.nodes = append(t.nodes, node{word: word, id: id, children: make(map[int]uint32)})
		t.hasRoot = true
		return
	}
	cur := uint32(0)
	unbounded := len(word) + 1
	for depth := 0; depth < depthGuard; depth++ {
		n := &t.nodes[cur]
		d := kernel.Distance(word, n.word, unbounded+len(n.word))
		if d == 0 {
			n.id = id
			return
		}
		child, ok := n.children[d]
		if !ok {
			t.nodes = append(t.nodes, node{word: word, id: id, children: make(map[int]uint32)})
			t.nodes[cur].children[d] = uint32(len(t.nodes) - 1)
			return
		}
		cur = child
	}
	if t.warn != nil {
		t.warn("bktree: insert depth guard exceeded, dropping insert")
	}
}

// BatchInsert inserts aligned words/ids in order, invoking the batch hint
// every batchSize insertions so host runtimes can reclaim intermediates.
func (t *Tree) BatchInsert(words []string, ids []int, batchSize int) {
	for i := range words {
		t.Insert(words[i], ids[i])
		if batchSize > 0 && t.onBatch != nil && (i+1)%batchSize == 0 {
			t.onBatch(i + 1)
		}
	}
}

// Search returns every node within maxD of query. maxD is clamped to the
// tree's configured cap. In exhaustive mode the triangle-inequality pruning
// window widens by one on each side. Results sort by distance then id; an
// exact (distance 0) hit is always first.
func (t *Tree) Search(query string, maxD int, exhaustive bool) []Match {
	if !t.hasRoot {
		return nil
	}
	if maxD > t.maxDCap || maxD < 0 {
		maxD = t.maxDCap
	}
	widen := 0
	if exhaustive {
		widen = 1
	}

	var out []Match
	frontier := []uint32{0}
	for len(frontier) > 0 {
		var next []uint32
		for _, idx := range frontier {
			n := &t.nodes[idx]
			// The pruning window needs the exact distance: a cutoff sentinel
			// only bounds it from below and would skip reachable children.
			d := kernel.Distance(query, n.word, len(query)+len(n.word)+1)
			if d <= maxD {
				out = append(out, Match{ID: n.id, Distance: d})
			}
			lo := d - maxD - widen
			if lo < 1 {
				lo = 1
			}
			hi := d + maxD + widen
			for label, child := range n.children {
				if label >= lo && label <= hi {
					next = append(next, child)
				}
			}
		}
		frontier = next
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].ID < out[j].ID
	})
	return out
}
