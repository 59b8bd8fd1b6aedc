// Package ordindex is a lexicographically ordered set of byte strings used
// for the prefix and suffix indices.
//
// No balanced ordered-set library surfaced anywhere in the retrieved corpus,
// so this is built on a sorted slice plus sort.Search: locating the prefix
// lower bound is O(log n), and the subsequent scan costs O(matches), meeting
// the documented complexity requirement for range enumeration even though
// Insert/Remove themselves pay an O(n) shift.
package ordindex

import "sort"

// Index is an ordered set of strings.
type Index struct {
	items []string
}

func New() *Index { return &Index{} }

func (x *Index) find(s string) (int, bool) {
	i := sort.Search(len(x.items), func(i int) bool { return x.items[i] >= s })
	return i, i < len(x.items) && x.items[i] == s
}

// Insert adds s if not already present.
func (x *Index) Insert(s string) {
	i, found := x.find(s)
	if found {
		return
	}
	x.items = append(x.items, "")
	copy(x.items[i+1:], x.items[i:])
	x.items[i] = s
}

// InsertAll bulk-loads words, appending them all and sorting once, instead
// of paying Insert's O(n) shift per word. For the builder's merge phase,
// where every worker's local slice lands here in one shot, this turns an
// O(n²) bulk build into O(n log n). Duplicates across the combined set
// (pre-existing items and the new batch) are compacted away in the same
// pass, matching Insert's already-present no-op.
func (x *Index) InsertAll(words []string) {
	if len(words) == 0 {
		return
	}
	x.items = append(x.items, words...)
	sort.Strings(x.items)
	out := x.items[:0]
	for i, w := range x.items {
		if i == 0 || w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	x.items = out
}

// Remove deletes s if present.
func (x *Index) Remove(s string) {
	i, found := x.find(s)
	if !found {
		return
	}
	copy(x.items[i:], x.items[i+1:])
	x.items = x.items[:len(x.items)-1]
}

func (x *Index) Contains(s string) bool {
	_, found := x.find(s)
	return found
}

func (x *Index) Len() int { return len(x.items) }

// PrefixRange returns every stored string sharing prefix p, in order,
// starting from p's lexicographic lower bound and stopping at the first
// entry that no longer shares the prefix.
func (x *Index) PrefixRange(p string) []string {
	start, _ := x.find(p)
	var out []string
	for i := start; i < len(x.items); i++ {
		if !hasPrefix(x.items[i], p) {
			break
		}
		out = append(out, x.items[i])
	}
	return out
}

func hasPrefix(s, p string) bool {
	return len(s) >= len(p) && s[:len(p)] == p
}

// All returns every stored string in lexicographic order.
func (x *Index) All() []string {
	out := make([]string, len(x.items))
	copy(out, x.items)
	return out
}
