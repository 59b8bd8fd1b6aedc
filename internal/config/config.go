// Package config provides centralized TOML-backed configuration for lexigraph.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// File mirrors the on-disk TOML layout.
type File struct {
	BKTree  BKTreeSection  `toml:"bk_tree"`
	Query   QuerySection   `toml:"query"`
	Builder BuilderSection `toml:"builder"`
	Paths   PathsSection   `toml:"paths"`
}

type BKTreeSection struct {
	MaxDCap          int `toml:"max_d_cap"`
	BatchCollectHint int `toml:"batch_collect_hint"`
}

type QuerySection struct {
	DefaultMaxD int `toml:"default_max_d"`
	TimeoutMs   int `toml:"timeout_ms"`
}

type BuilderSection struct {
	Workers int `toml:"workers"`
}

type PathsSection struct {
	TextLog  string `toml:"text_log"`
	Snapshot string `toml:"snapshot"`
}

// fallback holds the hardcoded defaults used when no config file is found.
var fallback = File{
	BKTree: BKTreeSection{
		MaxDCap:          10,
		BatchCollectHint: 1000,
	},
	Query: QuerySection{
		DefaultMaxD: 2,
		TimeoutMs:   30000,
	},
	Builder: BuilderSection{
		Workers: 0,
	},
	Paths: PathsSection{
		TextLog:  "dict.txt",
		Snapshot: "dict.txt.cache",
	},
}

var loaded *File

// Load reads engine.toml by walking candidate paths relative to the current
// directory and the executable, falling back to hardcoded defaults if none
// is found or parseable.
func Load() *File {
	if loaded != nil {
		return loaded
	}

	paths := []string{
		"engine.toml",
		"../engine.toml",
		"../../engine.toml",
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(dir, "engine.toml"),
			filepath.Join(dir, "..", "engine.toml"),
		)
	}

	for _, path := range paths {
		var cfg File
		if _, err := toml.DecodeFile(path, &cfg); err == nil {
			fillDefaults(&cfg)
			loaded = &cfg
			return loaded
		}
	}

	cfg := fallback
	loaded = &cfg
	return loaded
}

// fillDefaults backfills zero-valued fields left unset in a partial file
// with the hardcoded fallback, so a config that only overrides one section
// does not zero out the rest.
func fillDefaults(cfg *File) {
	if cfg.BKTree.MaxDCap <= 0 {
		cfg.BKTree.MaxDCap = fallback.BKTree.MaxDCap
	}
	if cfg.BKTree.BatchCollectHint <= 0 {
		cfg.BKTree.BatchCollectHint = fallback.BKTree.BatchCollectHint
	}
	if cfg.Query.DefaultMaxD <= 0 {
		cfg.Query.DefaultMaxD = fallback.Query.DefaultMaxD
	}
	if cfg.Query.TimeoutMs <= 0 {
		cfg.Query.TimeoutMs = fallback.Query.TimeoutMs
	}
	if cfg.Paths.TextLog == "" {
		cfg.Paths.TextLog = fallback.Paths.TextLog
	}
	if cfg.Paths.Snapshot == "" {
		cfg.Paths.Snapshot = cfg.Paths.TextLog + ".cache"
	}
}

// Reset clears the cached config, for tests that want Load to re-scan.
func Reset() {
	loaded = nil
}
