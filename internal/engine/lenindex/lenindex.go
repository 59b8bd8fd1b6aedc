// Package lenindex maps word length to the set of ids of active words of
// that length.
package lenindex

import "github.com/sinanm89/lexigraph/internal/engine/bitset"

type Index struct {
	buckets map[int]*bitset.BitSet
}

func New() *Index { return &Index{buckets: make(map[int]*bitset.BitSet)} }

// Reserve ensures a (possibly empty) bucket exists for length, so bulk build
// can pre-reserve keys ahead of the parallel phase.
func (x *Index) Reserve(length int) {
	if _, ok := x.buckets[length]; !ok {
		x.buckets[length] = bitset.New()
	}
}

func (x *Index) Add(length, id int) {
	x.Reserve(length)
	x.buckets[length].Add(id)
}

func (x *Index) Remove(length, id int) {
	if b, ok := x.buckets[length]; ok {
		b.Remove(id)
	}
}

func (x *Index) Lookup(length int) []int {
	if b, ok := x.buckets[length]; ok {
		return b.Iter()
	}
	return nil
}

func (x *Index) LookupRange(lo, hi int) []int {
	acc := bitset.New()
	for l := lo; l <= hi; l++ {
		if b, ok := x.buckets[l]; ok {
			acc.UnionWith(b)
		}
	}
	return acc.Iter()
}

// DropEmpty removes buckets left with no members and reports how many were dropped.
func (x *Index) DropEmpty() int {
	dropped := 0
	for l, b := range x.buckets {
		if b.IsEmpty() {
			delete(x.buckets, l)
			dropped++
		}
	}
	return dropped
}

// LengthEntry is a serializable length->ids bucket, used by the snapshot codec.
type LengthEntry struct {
	Length int
	IDs    []int
}

func (x *Index) Entries() []LengthEntry {
	out := make([]LengthEntry, 0, len(x.buckets))
	for l, b := range x.buckets {
		out = append(out, LengthEntry{Length: l, IDs: b.Iter()})
	}
	return out
}
