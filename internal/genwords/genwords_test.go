package genwords

import (
	"path/filepath"
	"testing"

	"github.com/sinanm89/lexigraph/internal/textlog"
)

func TestNormalizeWordFoldsToASCII(t *testing.T) {
	cases := map[string]string{
		"çare":    "care",
		"größe":   "grosse",
		"MERHABA": "merhaba",
		"naïve":   "naive",
	}
	for in, want := range cases {
		if got := NormalizeWord(in); got != want {
			t.Errorf("NormalizeWord(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	opts := Options{Count: 50, MinLength: 4, MaxLength: 8, Seed: 42}
	a := Generate(opts)
	b := Generate(opts)
	if len(a) != 50 || len(b) != 50 {
		t.Fatalf("expected 50 words each, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced divergent output at index %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestGenerateRespectsLengthBounds(t *testing.T) {
	words := Generate(Options{Count: 200, MinLength: 3, MaxLength: 5, Seed: 7})
	for _, w := range words {
		if len(w) < 3 || len(w) > 5 {
			t.Fatalf("word %q outside bounds [3,5]", w)
		}
	}
}

func TestWriteTextLogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")

	n, err := WriteTextLog(path, Options{Count: 20, MinLength: 3, MaxLength: 6, Seed: 1})
	if err != nil {
		t.Fatalf("WriteTextLog: %v", err)
	}
	if n != 20 {
		t.Fatalf("expected 20 words written, got %d", n)
	}

	records, err := textlog.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 20 {
		t.Fatalf("expected 20 records loaded back, got %d", len(records))
	}
}
