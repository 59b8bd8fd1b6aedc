package query

import (
	"strconv"
	"strings"
)

// Complex parses whitespace-separated kind:value terms and AND-combines
// their per-term id sets left to right, short-circuiting once the
// intermediate set is empty. Unknown kinds are returned separately rather
// than failing the whole query.
func (e *Evaluator) Complex(input string) (Result, []string) {
	terms := strings.Fields(input)
	var unknown []string
	var acc map[int]bool
	first := true

	for _, term := range terms {
		kind, value, ok := splitTerm(term)
		if !ok {
			unknown = append(unknown, term)
			continue
		}

		termIDs, ok := e.evalTerm(kind, value)
		if !ok {
			unknown = append(unknown, term)
			continue
		}

		set := make(map[int]bool, len(termIDs))
		for _, id := range termIDs {
			set[id] = true
		}
		if first {
			acc = set
			first = false
		} else {
			for id := range acc {
				if !set[id] {
					delete(acc, id)
				}
			}
		}
		if len(acc) == 0 {
			break
		}
	}

	if acc == nil {
		return Result{}, unknown
	}
	ids := make([]int, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	return Result{IDs: sortedIDs(ids)}, unknown
}

func (e *Evaluator) evalTerm(kind, value string) ([]int, bool) {
	switch kind {
	case "pre":
		return e.Prefix(value).IDs, true
	case "suf":
		return e.Suffix(value).IDs, true
	case "sub":
		return e.Substring(value).IDs, true
	case "not":
		return e.Not(value).IDs, true
	case "len":
		lo, hi, ok := parseLenSpec(value)
		if !ok {
			return nil, false
		}
		if lo == hi {
			return e.Length(lo).IDs, true
		}
		return e.LengthRange(lo, hi).IDs, true
	case "id":
		lo, hi, ok := parseRange(value)
		if !ok {
			return nil, false
		}
		return e.IDRange(lo, hi).IDs, true
	case "sim":
		word, d := parseSimSpec(value, e.defaultMaxD)
		return e.Similarity(word, d, false).IDs, true
	default:
		return nil, false
	}
}

func splitTerm(term string) (kind, value string, ok bool) {
	i := strings.IndexByte(term, ':')
	if i < 0 {
		return "", "", false
	}
	return term[:i], term[i+1:], true
}

func parseRange(v string) (lo, hi int, ok bool) {
	i := strings.IndexByte(v, '-')
	if i < 0 {
		return 0, 0, false
	}
	lo, err1 := strconv.Atoi(v[:i])
	hi, err2 := strconv.Atoi(v[i+1:])
	if err1 != nil || err2 != nil || lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

func parseLenSpec(v string) (lo, hi int, ok bool) {
	if strings.IndexByte(v, '-') >= 0 {
		return parseRange(v)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, 0, false
	}
	return n, n, true
}

func parseSimSpec(v string, def int) (word string, d int) {
	if i := strings.IndexByte(v, ','); i >= 0 {
		if n, err := strconv.Atoi(v[i+1:]); err == nil {
			return v[:i], n
		}
		return v[:i], def
	}
	return v, def
}
