// Package repl implements the command dispatch loop described by the CLI
// table: plain words add/restore, typed prefixes (exact/pre/suf/sub/sim/
// sim+/and/or/not/len/id/complex) query, and delete/undelete/rebuild/list
// are mutation or enumeration commands.
package repl

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sinanm89/lexigraph/internal/engine"
	"github.com/sinanm89/lexigraph/internal/engine/dictionary"
	"github.com/sinanm89/lexigraph/internal/textlog"
)

// REPL drives the interactive command loop against one engine instance.
type REPL struct {
	eng      *engine.Engine
	ui       *UI
	appender *textlog.Appender
	onMetric func(cmd string)
}

// New creates a REPL bound to eng, rendering through ui and appending
// mutations through appender.
func New(eng *engine.Engine, ui *UI, appender *textlog.Appender) *REPL {
	return &REPL{eng: eng, ui: ui, appender: appender}
}

// OnMetric registers a callback invoked with the command name before each
// dispatch, for stage timing.
func (r *REPL) OnMetric(fn func(cmd string)) {
	r.onMetric = fn
}

// Dispatch parses and executes a single input line. It returns quit=true
// when the REPL should stop reading further commands.
func (r *REPL) Dispatch(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	fields := strings.Fields(line)
	cmd := fields[0]
	rest := fields[1:]

	if r.onMetric != nil {
		r.onMetric(cmd)
	}

	switch cmd {
	case "exit", "quit":
		return true
	case "exact":
		r.requireArg(rest, func(w string) { r.ui.Result(r.eng.Exact(w)) })
	case "pre":
		r.requireArg(rest, func(w string) { r.ui.Result(r.eng.Prefix(w)) })
	case "suf":
		r.requireArg(rest, func(w string) { r.ui.Result(r.eng.Suffix(w)) })
	case "sub":
		r.requireArg(rest, func(w string) { r.ui.Result(r.eng.Substring(w)) })
	case "sim", "sim+":
		r.dispatchSimilarity(rest, cmd == "sim+")
	case "and":
		if len(rest) == 0 {
			r.ui.Error("and requires at least one word")
			return false
		}
		r.ui.Result(r.eng.And(rest))
	case "or":
		if len(rest) == 0 {
			r.ui.Error("or requires at least one word")
			return false
		}
		r.ui.Result(r.eng.Or(rest))
	case "not":
		r.requireArg(rest, func(w string) { r.ui.Result(r.eng.Not(w)) })
	case "len":
		r.dispatchLen(rest)
	case "id":
		r.dispatchIDRange(rest)
	case "complex":
		if len(rest) == 0 {
			r.ui.Error("complex requires at least one term")
			return false
		}
		res, unknown := r.eng.Complex(strings.Join(rest, " "))
		for _, k := range unknown {
			r.ui.Warning("unrecognized complex term kind: %q", k)
		}
		r.ui.Result(res)
	case "delete":
		r.dispatchMutate(rest, "delete")
	case "undelete":
		r.dispatchMutate(rest, "undelete")
	case "rebuild":
		r.dispatchRebuild(ctx)
	case "list":
		r.dispatchList(false)
	case "list-all":
		r.dispatchList(true)
	case "alpha":
		r.dispatchAlpha()
	default:
		r.dispatchAdd(line)
	}
	return false
}

func (r *REPL) requireArg(rest []string, fn func(string)) {
	if len(rest) == 0 {
		r.ui.Error("missing argument")
		return
	}
	fn(rest[0])
}

func (r *REPL) dispatchSimilarity(rest []string, exhaustive bool) {
	if len(rest) == 0 {
		r.ui.Error("sim requires a word")
		return
	}
	word := rest[0]
	maxD := -1
	if len(rest) > 1 {
		d, err := strconv.Atoi(rest[1])
		if err != nil {
			r.ui.Error("invalid distance %q", rest[1])
			return
		}
		maxD = d
	}
	r.ui.Result(r.eng.Similarity(word, maxD, exhaustive))
}

func (r *REPL) dispatchLen(rest []string) {
	if len(rest) == 0 {
		r.ui.Error("len requires N or N-M")
		return
	}
	lo, hi, ok := parseRange(rest[0])
	if !ok {
		r.ui.Error("invalid length spec %q", rest[0])
		return
	}
	if lo > hi {
		r.ui.Error("inverted range %q", rest[0])
		return
	}
	if lo == hi {
		r.ui.Result(r.eng.Length(lo))
	} else {
		r.ui.Result(r.eng.LengthRange(lo, hi))
	}
}

func (r *REPL) dispatchIDRange(rest []string) {
	if len(rest) == 0 {
		r.ui.Error("id requires N-M")
		return
	}
	lo, hi, ok := parseRange(rest[0])
	if !ok {
		r.ui.Error("invalid id range %q", rest[0])
		return
	}
	if lo > hi {
		r.ui.Error("inverted range %q", rest[0])
		return
	}
	r.ui.Result(r.eng.IDRange(lo, hi))
}

func parseRange(spec string) (lo, hi int, ok bool) {
	if i := strings.IndexByte(spec, '-'); i > 0 {
		a, err1 := strconv.Atoi(spec[:i])
		b, err2 := strconv.Atoi(spec[i+1:])
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		return a, b, true
	}
	n, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, false
	}
	return n, n, true
}

func (r *REPL) dispatchMutate(rest []string, kind string) {
	if len(rest) == 0 {
		r.ui.Error("%s requires an id", kind)
		return
	}
	id, err := strconv.Atoi(rest[0])
	if err != nil {
		r.ui.Error("invalid id %q", rest[0])
		return
	}

	var deleted bool
	var okMutation bool
	switch kind {
	case "delete":
		okMutation = r.eng.Delete(id)
		deleted = true
	case "undelete":
		okMutation = r.eng.Undelete(id)
		deleted = false
	}
	if !okMutation {
		r.ui.Error("no such id %d", id)
		return
	}
	rec, found := r.eng.Dictionary().GetByID(id)
	if found && r.appender != nil {
		if err := r.appender.Append(id, rec.Word, deleted); err != nil {
			r.ui.Error("failed to append to text log: %v", err)
			return
		}
	}
	r.ui.Success("%s %d ok", kind, id)
}

func (r *REPL) dispatchAdd(line string) {
	for _, word := range strings.Fields(line) {
		id, created := r.eng.AddOrRestore(word)
		if r.appender != nil {
			if err := r.appender.Append(id, word, false); err != nil {
				r.ui.Error("failed to append to text log: %v", err)
				continue
			}
		}
		if created {
			r.ui.Success("added %q as id %d", word, id)
		} else {
			r.ui.Success("restored %q (id %d)", word, id)
		}
	}
}

func (r *REPL) dispatchRebuild(ctx context.Context) {
	spinner := r.ui.Spinner("rebuilding indices from the in-memory dictionary")
	ptrs := allRecords(r.eng.Dictionary())
	records := make([]dictionary.Record, len(ptrs))
	for i, p := range ptrs {
		records[i] = *p
	}
	err := r.eng.Rebuild(ctx, records)
	spinner.Stop()
	if err != nil {
		r.ui.Error("rebuild failed: %v", err)
		return
	}
	r.ui.Success("rebuild complete (%d records)", len(records))
}

func (r *REPL) dispatchList(includeDeleted bool) {
	recs := allRecords(r.eng.Dictionary())
	var words []string
	for _, rec := range recs {
		if rec.Deleted && !includeDeleted {
			continue
		}
		words = append(words, fmt.Sprintf("%d: %s%s", rec.ID, rec.Word, deletedSuffix(rec.Deleted)))
	}
	r.ui.WordTable(words)
}

func (r *REPL) dispatchAlpha() {
	recs := allRecords(r.eng.Dictionary())
	var words []string
	for _, rec := range recs {
		if !rec.Deleted {
			words = append(words, rec.Word)
		}
	}
	sort.Strings(words)
	r.ui.WordTable(words)
}

func deletedSuffix(deleted bool) string {
	if deleted {
		return " (deleted)"
	}
	return ""
}

func allRecords(dict *dictionary.Dictionary) []*dictionary.Record {
	return dict.All()
}
