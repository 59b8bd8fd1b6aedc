package builder

import (
	"context"
	"testing"

	"github.com/sinanm89/lexigraph/internal/engine/dictionary"
)

func sampleRecords() []dictionary.Record {
	return []dictionary.Record{
		{ID: 0, Word: "apple"},
		{ID: 1, Word: "aple"},
		{ID: 2, Word: "applet"},
		{ID: 3, Word: "banana"},
	}
}

func TestBulkBuildInvariants(t *testing.T) {
	ix := NewIndices(10)
	if err := BulkBuild(context.Background(), ix, sampleRecords(), Config{Workers: 2}); err != nil {
		t.Fatalf("BulkBuild: %v", err)
	}

	for _, r := range ix.Dict.All() {
		if !ix.Prefix.Contains(r.Word) {
			t.Errorf("word %q missing from prefix index", r.Word)
		}
		if !containsInt(ix.Lengths.Lookup(len(r.Word)), r.ID) {
			t.Errorf("id %d missing from length bucket %d", r.ID, len(r.Word))
		}
	}

	rep := ix.Validate()
	if !rep.Clean() {
		t.Fatalf("expected clean validation report, got %+v", rep)
	}
}

func TestBulkBuildFiltersDeleted(t *testing.T) {
	ix := NewIndices(10)
	records := []dictionary.Record{
		{ID: 0, Word: "apple"},
		{ID: 1, Word: "deleted-word", Deleted: true},
	}
	if err := BulkBuild(context.Background(), ix, records, Config{Workers: 1}); err != nil {
		t.Fatalf("BulkBuild: %v", err)
	}
	if _, ok := ix.Dict.GetByID(1); ok {
		t.Fatal("deleted record should not have been loaded into the dictionary")
	}
}

func TestBuildDictAndBKSkipsOrdAndGramIndices(t *testing.T) {
	ix := NewIndices(10)
	if err := BuildDictAndBK(context.Background(), ix, sampleRecords(), Config{}); err != nil {
		t.Fatalf("BuildDictAndBK: %v", err)
	}

	if ix.Dict.Len() != len(sampleRecords()) {
		t.Fatalf("expected dictionary populated, got %d records", ix.Dict.Len())
	}
	for _, r := range ix.Dict.All() {
		matches := ix.BK.Search(r.Word, 0, false)
		if len(matches) == 0 {
			t.Errorf("word %q missing from BK-tree", r.Word)
		}
		if ix.Prefix.Contains(r.Word) {
			t.Errorf("prefix index should stay untouched by BuildDictAndBK, found %q", r.Word)
		}
	}
	if ix.Lengths.Lookup(5) != nil {
		t.Fatal("length index should stay untouched by BuildDictAndBK")
	}
}

func TestIncrementalAddIdempotent(t *testing.T) {
	ix := NewIndices(10)
	id1, created1 := ix.AddOrRestore("apple")
	id2, created2 := ix.AddOrRestore("apple")
	if !created1 || created2 {
		t.Fatalf("expected create then no-op, got %v %v", created1, created2)
	}
	if id1 != id2 {
		t.Fatalf("expected same id on idempotent add, got %d vs %d", id1, id2)
	}
}

func TestIncrementalDeleteLeavesGramAndBKUntouched(t *testing.T) {
	ix := NewIndices(10)
	id, _ := ix.AddOrRestore("apple")
	if !ix.DeleteID(id) {
		t.Fatal("expected delete to succeed")
	}
	if ix.Prefix.Contains("apple") {
		t.Fatal("expected prefix index to drop the deleted word")
	}
	// 2-gram and BK-tree retain the deleted word's footprint until optimize/rebuild.
	if !ix.Grams.Lookup("ap").Contains(id) {
		t.Fatal("expected 2-gram index to still carry the deleted id")
	}
	matches := ix.BK.Search("apple", 0, false)
	if len(matches) == 0 || matches[0].ID != id {
		t.Fatal("expected BK-tree to still carry the deleted word")
	}
}

func TestIncrementalRestore(t *testing.T) {
	ix := NewIndices(10)
	id, _ := ix.AddOrRestore("apple")
	ix.DeleteID(id)
	if !ix.RestoreID(id) {
		t.Fatal("expected restore to succeed")
	}
	if !ix.Prefix.Contains("apple") {
		t.Fatal("expected prefix index to regain the restored word")
	}
	r, _ := ix.Dict.GetByID(id)
	if r.Deleted {
		t.Fatal("expected deleted flag cleared after restore")
	}
}

func TestOptimizePurgesDeletedFromGrams(t *testing.T) {
	ix := NewIndices(10)
	id, _ := ix.AddOrRestore("apple")
	ix.DeleteID(id)
	removedIDs, _, _ := ix.Optimize()
	if removedIDs == 0 {
		t.Fatal("expected optimize to purge the deleted id from 2-gram postings")
	}
	if ix.Grams.Lookup("ap").Contains(id) {
		t.Fatal("expected id purged from gram posting after optimize")
	}
}
