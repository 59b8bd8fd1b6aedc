package textlog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %v", records)
	}
}

func TestLoadReplaysLastLineWinsPerID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	content := Header + "\n" +
		"0,apple,0\n" +
		"1,banana,0\n" +
		"0,apple,1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(records), records)
	}
	if !records[0].Deleted {
		t.Fatalf("expected id 0 to end deleted after replay, got %+v", records[0])
	}
	if records[1].Word != "banana" || records[1].Deleted {
		t.Fatalf("unexpected record for id 1: %+v", records[1])
	}
}

func TestAppenderWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")

	a, err := OpenAppender(path)
	if err != nil {
		t.Fatalf("OpenAppender: %v", err)
	}
	if err := a.Append(0, "apple", false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	a2, err := OpenAppender(path)
	if err != nil {
		t.Fatalf("reopen OpenAppender: %v", err)
	}
	if err := a2.Append(1, "banana", false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := a2.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	headerCount := 0
	for _, line := range splitLines(string(raw)) {
		if line == Header {
			headerCount++
		}
	}
	if headerCount != 1 {
		t.Fatalf("expected exactly one header line, got %d", headerCount)
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
