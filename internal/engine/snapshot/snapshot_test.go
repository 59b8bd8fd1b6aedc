package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sinanm89/lexigraph/internal/engine/lenindex"
	"github.com/sinanm89/lexigraph/internal/engine/ngram"
	"github.com/sinanm89/lexigraph/internal/engine/ordindex"
)

func buildSample() Snapshot {
	prefix := ordindex.New()
	suffix := ordindex.New()
	for _, w := range []string{"apple", "banana", "cherry"} {
		prefix.Insert(w)
		suffix.Insert(reverse(w))
	}
	grams := ngram.New()
	grams.Register("apple", 0)
	grams.Register("banana", 1)
	lengths := lenindex.New()
	lengths.Add(5, 0)
	lengths.Add(6, 1)
	return Snapshot{Prefix: prefix, Suffix: suffix, Grams: grams, Lengths: lengths}
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func TestRoundTripLTC2(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.cache")
	snap := buildSample()

	if err := Save(path, snap, MagicV2); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, ok, err := Load(path)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}

	for _, w := range []string{"apple", "banana", "cherry"} {
		if !loaded.Prefix.Contains(w) {
			t.Errorf("expected %q in round-tripped prefix index", w)
		}
	}
	if !loaded.Grams.Lookup("ap").Contains(0) {
		t.Error("expected gram 'ap' to carry id 0 after round trip")
	}
	if got := loaded.Lengths.Lookup(5); len(got) != 1 || got[0] != 0 {
		t.Errorf("expected length bucket 5 to carry id 0, got %v", got)
	}
}

func TestRoundTripLTC1OmitsGramsAndLengths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.cache")
	snap := buildSample()

	if err := Save(path, snap, MagicV1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, ok, err := Load(path)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if loaded.Grams != nil || loaded.Lengths != nil {
		t.Error("LTC1 snapshots should not populate grams/lengths")
	}
	if !loaded.Prefix.Contains("apple") {
		t.Error("expected prefix index to survive LTC1 round trip")
	}
}

func TestLoadBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.cache")
	if err := os.WriteFile(path, []byte("XXXXnonsense"), 0644); err != nil {
		t.Fatal(err)
	}
	_, ok, err := Load(path)
	if ok || err != nil {
		t.Fatalf("expected ok=false err=nil on bad magic, got ok=%v err=%v", ok, err)
	}
}

func TestValidForMtimeRule(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "dict.txt")
	snapPath := filepath.Join(dir, "dict.txt.cache")

	if err := os.WriteFile(textPath, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(snapPath, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	if !ValidFor(textPath, snapPath) {
		t.Fatal("expected snapshot newer than text file to be valid")
	}

	older := time.Now().Add(-time.Hour)
	if err := os.Chtimes(snapPath, older, older); err != nil {
		t.Fatal(err)
	}
	if ValidFor(textPath, snapPath) {
		t.Fatal("expected snapshot older than text file to be rejected")
	}
}
