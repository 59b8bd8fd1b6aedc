package builder

import (
	"context"
	"runtime"
	"sync"

	"github.com/sinanm89/lexigraph/internal/engine/ngram"
)

type localBuild struct {
	prefix []string
	suffix []string
	grams  map[string][]int
}

// parallelBuildOrdAndGrams runs the prefix/suffix/2-gram construction phase
// across a worker pool, matching the corpus's chan-job + WaitGroup pattern.
// Each worker owns local slices and a local gram map; the merge phase runs
// serially after every worker returns, unioning local state into ix.
func parallelBuildOrdAndGrams(ctx context.Context, ix *Indices, words []string, ids []int, cfg Config) error {
	if len(words) == 0 {
		return nil
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > 8 {
		workers = 8
	}
	if workers > len(words) {
		workers = len(words)
	}
	if workers < 1 {
		workers = 1
	}

	type job struct {
		word string
		id   int
	}
	jobsChan := make(chan job, len(words))
	for i := range words {
		jobsChan <- job{word: words[i], id: ids[i]}
	}
	close(jobsChan)

	locals := make([]*localBuild, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		locals[w] = &localBuild{grams: make(map[string][]int)}
		wg.Add(1)
		go func(lb *localBuild) {
			defer wg.Done()
			for j := range jobsChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				lb.prefix = append(lb.prefix, j.word)
				lb.suffix = append(lb.suffix, reverseWord(j.word))
				for _, g := range ngram.Grams(j.word) {
					lb.grams[g] = append(lb.grams[g], j.id)
				}
			}
		}(locals[w])
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	allPrefix := make([]string, 0, len(words))
	allSuffix := make([]string, 0, len(words))
	for _, lb := range locals {
		allPrefix = append(allPrefix, lb.prefix...)
		allSuffix = append(allSuffix, lb.suffix...)
		for g, idList := range lb.grams {
			for _, id := range idList {
				ix.Grams.AddGram(g, id)
			}
		}
	}
	ix.Prefix.InsertAll(allPrefix)
	ix.Suffix.InsertAll(allSuffix)
	return nil
}
