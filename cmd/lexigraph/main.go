// lexigraph is the interactive in-memory string indexing engine: it loads
// (or rebuilds) its indices from a text log, serves the CLI commands in a
// loop, and writes back a snapshot and metrics report on clean shutdown.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/sinanm89/lexigraph/internal/config"
	"github.com/sinanm89/lexigraph/internal/engine"
	"github.com/sinanm89/lexigraph/internal/engine/snapshot"
	"github.com/sinanm89/lexigraph/internal/logx"
	"github.com/sinanm89/lexigraph/internal/metrics"
	"github.com/sinanm89/lexigraph/internal/repl"
	"github.com/sinanm89/lexigraph/internal/textlog"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		textPath = pflag.String("text-log", "", "path to the text log (defaults to config paths.text_log)")
		snapPath = pflag.String("snapshot", "", "path to the binary snapshot (defaults to config paths.snapshot)")
		quiet    = pflag.Bool("quiet", false, "suppress interactive UI output")
		logLevel = pflag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	pflag.Parse()

	log := logx.New(*logLevel)
	defer log.Sync()

	cfg := config.Load()
	if *textPath == "" {
		*textPath = cfg.Paths.TextLog
	}
	if *snapPath == "" {
		*snapPath = cfg.Paths.Snapshot
	}

	ui := repl.NewUI(*quiet)
	ui.Banner()

	collector := metrics.NewCollector()
	collector.SetConfig("bk_tree.max_d_cap", cfg.BKTree.MaxDCap)
	collector.SetConfig("builder.workers", cfg.Builder.Workers)
	collector.SetConfig("paths.text_log", *textPath)

	ctx := context.Background()

	eng := engine.New(engine.Config{
		BKMaxDCap:    cfg.BKTree.MaxDCap,
		BKBatchSize:  cfg.BKTree.BatchCollectHint,
		DefaultMaxD:  cfg.Query.DefaultMaxD,
		BuildWorkers: cfg.Builder.Workers,
		Warn:         func(msg string) { log.Warn(msg) },
	})

	collector.StartStage("load")
	records, err := textlog.Load(*textPath)
	if err != nil {
		log.Error("failed to load text log: %v", err)
		return 1
	}

	usedSnapshot := false
	if snapshot.ValidFor(*textPath, *snapPath) {
		if snap, ok, err := snapshot.Load(*snapPath); err != nil {
			log.Error("snapshot read error: %v", err)
		} else if ok && snap.Grams != nil && snap.Lengths != nil {
			eng.LoadSnapshotIndices(snap)
			usedSnapshot = true
		} else {
			log.Warn("snapshot %s unusable, rebuilding from text log", *snapPath)
		}
	}
	if usedSnapshot {
		if err := eng.BuildDictAndBK(ctx, records); err != nil {
			log.Error("dictionary/BK-tree build failed: %v", err)
			return 1
		}
	} else if err := eng.BulkBuild(ctx, records); err != nil {
		log.Error("bulk build failed: %v", err)
		return 1
	}
	collector.EndStage("load")
	collector.SetGauge("used_snapshot", boolToFloat(usedSnapshot))
	ui.Info("loaded %d records (snapshot used: %v)", len(records), usedSnapshot)

	appender, err := textlog.OpenAppender(*textPath)
	if err != nil {
		log.Error("failed to open text log for append: %v", err)
		return 1
	}
	defer appender.Close()

	session := repl.New(eng, ui, appender)
	queriesServed := int64(0)
	stage := ""
	session.OnMetric(func(cmd string) {
		stage = cmd
		collector.StartStage(cmd)
		queriesServed++
	})

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		stage = ""
		quit := session.Dispatch(ctx, line)
		if stage != "" {
			collector.EndStage(stage)
		}
		if quit {
			break
		}
	}

	snap := eng.BuildSnapshot()
	if err := snapshot.Save(*snapPath, snap, snapshot.MagicV2); err != nil {
		log.Warn("failed to write snapshot: %v", err)
	}

	run := collector.Finalize(int64(len(records)), queriesServed)
	reporter := metrics.NewReporter(".")
	if err := reporter.Write(run); err != nil {
		log.Warn("failed to write metrics report: %v", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	ui.Success("goodbye (run %s)", run.RunID)
	return 0
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
