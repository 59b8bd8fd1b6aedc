package genwords

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"

	"github.com/sinanm89/lexigraph/internal/textlog"
)

// Options controls synthetic word generation.
type Options struct {
	Count     int
	MinLength int
	MaxLength int
	Seed      int64
}

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Generate returns Options.Count pseudo-random lowercase words whose
// lengths fall within [MinLength, MaxLength], deterministic for a given
// Seed. Duplicate words are allowed; WriteTextLog writes each distinct word
// once, so the text log never gives one word two ids.
func Generate(opts Options) []string {
	if opts.MinLength <= 0 {
		opts.MinLength = 3
	}
	if opts.MaxLength < opts.MinLength {
		opts.MaxLength = opts.MinLength
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	words := make([]string, 0, opts.Count)
	span := opts.MaxLength - opts.MinLength + 1
	for i := 0; i < opts.Count; i++ {
		length := opts.MinLength + rng.Intn(span)
		buf := make([]byte, length)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		words = append(words, string(buf))
	}
	return words
}

// WriteTextLog generates words per opts and writes them to path as a fresh
// text log (header plus one add line per distinct word, ids assigned in
// order of first occurrence). It returns the number of lines written.
func WriteTextLog(path string, opts Options) (int, error) {
	words := Generate(opts)

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(textlog.Header + "\n"); err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(words))
	id := 0
	for _, word := range words {
		if seen[word] {
			continue
		}
		seen[word] = true
		if _, err := fmt.Fprintf(w, "%d,%s,0\n", id, word); err != nil {
			return 0, err
		}
		id++
	}
	if err := w.Flush(); err != nil {
		return 0, err
	}
	if err := f.Sync(); err != nil {
		return 0, err
	}
	return id, nil
}
