package builder

import "github.com/sinanm89/lexigraph/internal/engine/ngram"

// ValidationReport counts cross-index mismatches found by Validate. It never
// mutates state; detected inconsistencies are reported, never silently fixed.
type ValidationReport struct {
	PrefixMismatches int
	SuffixMismatches int
	LengthMismatches int
	GramMismatches   int
	BKMismatches     int
}

// Clean reports whether every count is zero.
func (r ValidationReport) Clean() bool {
	return r.PrefixMismatches == 0 && r.SuffixMismatches == 0 &&
		r.LengthMismatches == 0 && r.GramMismatches == 0 && r.BKMismatches == 0
}

// Validate cross-checks the five indices against the dictionary for every
// active record.
func (ix *Indices) Validate() ValidationReport {
	var rep ValidationReport
	for _, r := range ix.Dict.All() {
		if r.Deleted {
			continue
		}
		if !ix.Prefix.Contains(r.Word) {
			rep.PrefixMismatches++
		}
		if !ix.Suffix.Contains(reverseWord(r.Word)) {
			rep.SuffixMismatches++
		}
		if !containsInt(ix.Lengths.Lookup(len(r.Word)), r.ID) {
			rep.LengthMismatches++
		}
		for _, g := range ngram.Grams(r.Word) {
			if !ix.Grams.Lookup(g).Contains(r.ID) {
				rep.GramMismatches++
			}
		}
		if !bkContainsExact(ix, r.Word, r.ID) {
			rep.BKMismatches++
		}
	}
	return rep
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func bkContainsExact(ix *Indices, word string, id int) bool {
	for _, m := range ix.BK.Search(word, 0, false) {
		if m.ID == id && m.Distance == 0 {
			return true
		}
	}
	return false
}
