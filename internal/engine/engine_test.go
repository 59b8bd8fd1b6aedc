package engine

import (
	"context"
	"testing"

	"github.com/sinanm89/lexigraph/internal/engine/dictionary"
)

func TestEngineSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	records := make([]dictionary.Record, 0, 200)
	for i := 0; i < 200; i++ {
		records = append(records, dictionary.Record{ID: i, Word: syntheticWord(i)})
	}

	e1 := New(Config{})
	if err := e1.BulkBuild(ctx, records); err != nil {
		t.Fatalf("BulkBuild: %v", err)
	}
	before := e1.Prefix("wor").IDs

	snap := e1.BuildSnapshot()

	e2 := New(Config{})
	e2.LoadSnapshotIndices(snap)
	if err := e2.BuildDictAndBK(ctx, records); err != nil {
		t.Fatalf("BuildDictAndBK after snapshot load: %v", err)
	}
	after := e2.Prefix("wor").IDs

	if len(before) != len(after) {
		t.Fatalf("prefix query diverged after snapshot round trip: %v vs %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("prefix query diverged after snapshot round trip: %v vs %v", before, after)
		}
	}

	// The snapshot supplied the prefix index directly; exact lookups still
	// work because BuildDictAndBK populated the dictionary from records.
	if res := e2.Exact(syntheticWord(0)); len(res.IDs) != 1 {
		t.Fatalf("expected dictionary populated by BuildDictAndBK, got %v", res.IDs)
	}
}

func syntheticWord(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	out := make([]byte, 0, 6)
	out = append(out, 'w', 'o', 'r')
	n := i
	for j := 0; j < 3; j++ {
		out = append(out, letters[n%26])
		n /= 26
	}
	return string(out)
}

func TestEngineDeleteUndeleteCycle(t *testing.T) {
	e := New(Config{})
	id, created := e.AddOrRestore("apple")
	if !created {
		t.Fatal("expected first add to create a record")
	}
	if got := e.Exact("apple").IDs; len(got) != 1 || got[0] != id {
		t.Fatalf("expected exact hit, got %v", got)
	}
	if !e.Delete(id) {
		t.Fatal("expected delete to succeed")
	}
	if got := e.Exact("apple").IDs; len(got) != 0 {
		t.Fatalf("expected empty result after delete, got %v", got)
	}
	if !e.Undelete(id) {
		t.Fatal("expected undelete to succeed")
	}
	if got := e.Exact("apple").IDs; len(got) != 1 || got[0] != id {
		t.Fatalf("expected exact hit restored, got %v", got)
	}
}

func TestEngineValidateClean(t *testing.T) {
	ctx := context.Background()
	e := New(Config{})
	records := []dictionary.Record{{ID: 0, Word: "apple"}, {ID: 1, Word: "banana"}}
	if err := e.BulkBuild(ctx, records); err != nil {
		t.Fatalf("BulkBuild: %v", err)
	}
	rep := e.Validate()
	if !rep.Clean() {
		t.Fatalf("expected clean validation report, got %+v", rep)
	}
}
