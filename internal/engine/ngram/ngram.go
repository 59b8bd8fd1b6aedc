// Package ngram is the 2-gram inverted index used for substring pre-
// filtering: each 2-byte substring maps to the posting list of ids whose
// word contains it.
package ngram

import "github.com/sinanm89/lexigraph/internal/engine/bitset"

// Index maps a 2-byte gram to its posting list.
type Index struct {
	postings map[string]*bitset.BitSet
}

func New() *Index { return &Index{postings: make(map[string]*bitset.BitSet)} }

// Grams returns the deduplicated set of 2-byte grams of word, in first-seen
// order. Words shorter than 2 bytes contribute nothing.
func Grams(word string) []string {
	if len(word) < 2 {
		return nil
	}
	seen := make(map[string]bool, len(word))
	var out []string
	for i := 0; i+2 <= len(word); i++ {
		g := word[i : i+2]
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

// Register adds id to the posting list of every gram of word.
func (x *Index) Register(word string, id int) {
	for _, g := range Grams(word) {
		x.AddGram(g, id)
	}
}

// AddGram adds id to gram's posting list directly, creating it on first sight.
func (x *Index) AddGram(gram string, id int) {
	b, ok := x.postings[gram]
	if !ok {
		b = bitset.New()
		x.postings[gram] = b
	}
	b.Add(id)
}

// Lookup returns gram's posting list, or an empty set if the gram was never seen.
func (x *Index) Lookup(gram string) *bitset.BitSet {
	if b, ok := x.postings[gram]; ok {
		return b
	}
	return bitset.New()
}

// Purge drops every id the deleted predicate flags from every posting list,
// then drops grams left with no postings. Used by optimize().
func (x *Index) Purge(deleted func(id int) bool) (removedIDs, removedGrams int) {
	for g, b := range x.postings {
		for _, id := range b.Iter() {
			if deleted(id) {
				b.Remove(id)
				removedIDs++
			}
		}
		if b.IsEmpty() {
			delete(x.postings, g)
			removedGrams++
		}
	}
	return
}

// GramEntry is a serializable gram->ids posting, used by the snapshot codec.
type GramEntry struct {
	Gram string
	IDs  []int
}

// Entries returns every posting for serialization. Order is unspecified.
func (x *Index) Entries() []GramEntry {
	out := make([]GramEntry, 0, len(x.postings))
	for g, b := range x.postings {
		out = append(out, GramEntry{Gram: g, IDs: b.Iter()})
	}
	return out
}
