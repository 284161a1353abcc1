// Package freq tabulates per-word occurrence counts for a song's lyrics.
// Counting is case-insensitive and literal: a token like "a.b" is one word,
// never a pattern.
package freq

import (
	"sort"
	"strings"
)

// Entry is one word with its occurrence count.
type Entry struct {
	Word  string
	Count int
}

// Table is an ordered word-count mapping. Order is the order in which each
// word was first encountered in the text.
type Table []Entry

// Count tabulates word frequencies in text. Words are lowercased tokens
// separated by whitespace runs; only words occurring at least minCount
// times are kept. Empty text yields an empty table. The table is rebuilt
// from scratch on every call; a single song's lyrics are small enough
// that memoization isn't worth carrying.
func Count(text string, minCount int) Table {
	if minCount < 1 {
		minCount = 1
	}

	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return Table{}
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	table := make(Table, 0, len(order))
	for _, word := range order {
		if n := counts[word]; n >= minCount {
			table = append(table, Entry{Word: word, Count: n})
		}
	}
	return table
}

// Max returns the largest count in the table, or 0 for an empty table.
func (t Table) Max() int {
	max := 0
	for _, e := range t {
		if e.Count > max {
			max = e.Count
		}
	}
	return max
}

// Top returns the n highest-count entries, preserving first-encounter
// order among them. n <= 0 returns the whole table.
func (t Table) Top(n int) Table {
	if n <= 0 || len(t) <= n {
		return t
	}

	sorted := make(Table, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return reorderLike(t, sorted[:n])
}

func reorderLike(ref, subset Table) Table {
	want := make(map[string]bool, len(subset))
	for _, e := range subset {
		want[e.Word] = true
	}
	out := make(Table, 0, len(subset))
	for _, e := range ref {
		if want[e.Word] {
			out = append(out, e)
		}
	}
	return out
}
