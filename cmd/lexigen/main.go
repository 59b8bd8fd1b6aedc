// lexigen is the generator sub-mode: it writes a fresh text log of N
// synthetic words, outside the core engine's own scope.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/sinanm89/lexigraph/internal/genwords"
)

func main() {
	var (
		count  = pflag.IntP("count", "n", 100000, "number of synthetic words to generate")
		minLen = pflag.Int("min-length", 3, "minimum word length")
		maxLen = pflag.Int("max-length", 12, "maximum word length")
		seed   = pflag.Int64("seed", 1, "random seed, for reproducible corpora")
		out    = pflag.StringP("out", "o", "dict.txt", "output text log path")
	)
	pflag.Parse()

	n, err := genwords.WriteTextLog(*out, genwords.Options{
		Count:     *count,
		MinLength: *minLen,
		MaxLength: *maxLen,
		Seed:      *seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexigen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d words to %s\n", n, *out)
}
