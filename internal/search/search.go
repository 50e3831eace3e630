// Package search ranks saved field values against a query.
package search

import (
	"sort"
	"strings"

	"github.com/marcus/dialog/internal/store"
	"github.com/sahilm/fuzzy"
)

// Hit is one field value that matched the query.
type Hit struct {
	Submission *store.Submission
	Key        string
	Value      string
	// Exact is set when Value contains the query as a case-insensitive substring.
	Exact bool
	Score int
	// Matched holds the byte offsets in Value that matched a fuzzy query.
	Matched []int
}

type candidate struct {
	sub   *store.Submission
	key   string
	value string
}

type candidates []candidate

func (c candidates) String(i int) string { return c[i].value }
func (c candidates) Len() int            { return len(c) }

// Find returns matching field values. Substring matches come first in
// submission order; fuzzy-only matches follow ranked by score.
func Find(subs []store.Submission, query string) []Hit {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var all candidates
	for i := range subs {
		sub := &subs[i]
		for _, k := range sub.Keys() {
			if v := sub.Values[k]; v != "" {
				all = append(all, candidate{sub: sub, key: k, value: v})
			}
		}
	}

	var hits []Hit
	exact := make(map[int]bool)
	lower := strings.ToLower(query)
	for i, c := range all {
		if idx := strings.Index(strings.ToLower(c.value), lower); idx >= 0 {
			exact[i] = true
			hits = append(hits, Hit{
				Submission: c.sub,
				Key:        c.key,
				Value:      c.value,
				Exact:      true,
				Matched:    span(idx, len(lower)),
			})
		}
	}

	var fuzzyHits []Hit
	for _, m := range fuzzy.FindFrom(query, all) {
		if exact[m.Index] {
			continue
		}
		c := all[m.Index]
		fuzzyHits = append(fuzzyHits, Hit{
			Submission: c.sub,
			Key:        c.key,
			Value:      c.value,
			Score:      m.Score,
			Matched:    m.MatchedIndexes,
		})
	}
	sort.SliceStable(fuzzyHits, func(i, j int) bool { return fuzzyHits[i].Score > fuzzyHits[j].Score })

	return append(hits, fuzzyHits...)
}

func span(start, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = start + i
	}
	return idx
}

// Snippet returns at most width runes of value around its first matched
// offset, with newlines flattened.
func Snippet(h Hit, width int) string {
	text := strings.ReplaceAll(h.Value, "\n", " ")
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text
	}

	start := 0
	if len(h.Matched) > 0 {
		// Byte offset to rune offset.
		start = len([]rune(text[:min(h.Matched[0], len(text))]))
		start = max(0, start-width/4)
	}
	if start+width > len(runes) {
		start = len(runes) - width
	}

	out := string(runes[start : start+width])
	if start > 0 {
		out = "…" + string(runes[start+1:start+width])
	}
	if start+width < len(runes) {
		r := []rune(out)
		out = string(r[:len(r)-1]) + "…"
	}
	return out
}
