package ngram

import "testing"

func TestGramsDedup(t *testing.T) {
	got := Grams("aaaa")
	if len(got) != 1 || got[0] != "aa" {
		t.Fatalf("expected single deduped gram 'aa', got %v", got)
	}
}

func TestGramsShortWord(t *testing.T) {
	if got := Grams(""); got != nil {
		t.Fatalf("empty word should contribute no grams, got %v", got)
	}
	if got := Grams("a"); got != nil {
		t.Fatalf("single-byte word should contribute no grams, got %v", got)
	}
}

func TestRegisterAndLookup(t *testing.T) {
	idx := New()
	idx.Register("cat", 1)
	idx.Register("car", 2)
	ca := idx.Lookup("ca")
	if !ca.Contains(1) || !ca.Contains(2) {
		t.Fatalf("expected both ids under gram 'ca'")
	}
	at := idx.Lookup("at")
	if !at.Contains(1) || at.Contains(2) {
		t.Fatalf("expected only id 1 under gram 'at'")
	}
}

func TestLookupMissingGram(t *testing.T) {
	idx := New()
	b := idx.Lookup("zz")
	if !b.IsEmpty() {
		t.Fatal("missing gram should return an empty set, not nil/panic")
	}
}

func TestPurgeDropsDeletedAndEmptyGrams(t *testing.T) {
	idx := New()
	idx.Register("cat", 1)
	deleted := map[int]bool{1: true}
	removedIDs, removedGrams := idx.Purge(func(id int) bool { return deleted[id] })
	if removedIDs != 2 { // "ca", "at"
		t.Fatalf("expected 2 removed ids, got %d", removedIDs)
	}
	if removedGrams != 2 {
		t.Fatalf("expected 2 removed grams, got %d", removedGrams)
	}
}
