package freq

import (
	"reflect"
	"testing"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		minCount int
		expected Table
	}{
		{
			name:     "empty text yields empty table",
			text:     "",
			minCount: 1,
			expected: Table{},
		},
		{
			name:     "whitespace-only text yields empty table",
			text:     "  \n\t  ",
			minCount: 2,
			expected: Table{},
		},
		{
			name:     "counting is case-insensitive",
			text:     "Love love LOVE",
			minCount: 1,
			expected: Table{{Word: "love", Count: 3}},
		},
		{
			name:     "dotted tokens are counted literally",
			text:     "a.b a.b ab",
			minCount: 1,
			expected: Table{{Word: "a.b", Count: 2}, {Word: "ab", Count: 1}},
		},
		{
			name:     "threshold filters singletons",
			text:     "la la la oh oh hey",
			minCount: 2,
			expected: Table{{Word: "la", Count: 3}, {Word: "oh", Count: 2}},
		},
		{
			name:     "first-encounter order is preserved",
			text:     "night day night sun day night",
			minCount: 1,
			expected: Table{
				{Word: "night", Count: 3},
				{Word: "day", Count: 2},
				{Word: "sun", Count: 1},
			},
		},
		{
			name:     "whitespace runs and newlines split tokens",
			text:     "verse one\n\nverse   two",
			minCount: 1,
			expected: Table{
				{Word: "verse", Count: 2},
				{Word: "one", Count: 1},
				{Word: "two", Count: 1},
			},
		},
		{
			name:     "threshold below one behaves like one",
			text:     "solo",
			minCount: 0,
			expected: Table{{Word: "solo", Count: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.text, tt.minCount)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Count(%q, %d) = %v, want %v", tt.text, tt.minCount, got, tt.expected)
			}
		})
	}
}

func TestCountThresholdInvariant(t *testing.T) {
	text := "one two two three three three four four four four"

	for _, k := range []int{1, 2, 3, 4} {
		table := Count(text, k)
		for _, e := range table {
			if e.Count < k {
				t.Errorf("threshold %d: entry %q has count %d", k, e.Word, e.Count)
			}
		}
	}

	// Every word with true count >= k appears exactly once
	table := Count(text, 2)
	seen := map[string]int{}
	for _, e := range table {
		seen[e.Word]++
	}
	for _, w := range []string{"two", "three", "four"} {
		if seen[w] != 1 {
			t.Errorf("word %q appears %d times in table, want exactly 1", w, seen[w])
		}
	}
	if _, ok := seen["one"]; ok {
		t.Error("word \"one\" below threshold should be filtered")
	}
}

func TestTableMax(t *testing.T) {
	if got := (Table{}).Max(); got != 0 {
		t.Errorf("empty Table.Max() = %d, want 0", got)
	}

	table := Count("a a a b b c", 1)
	if got := table.Max(); got != 3 {
		t.Errorf("Max() = %d, want 3", got)
	}
}

func TestTableTop(t *testing.T) {
	table := Count("a a a b c c d", 1)

	top := table.Top(2)
	expected := Table{{Word: "a", Count: 3}, {Word: "c", Count: 2}}
	if !reflect.DeepEqual(top, expected) {
		t.Errorf("Top(2) = %v, want %v", top, expected)
	}

	// n larger than the table returns it unchanged
	if got := table.Top(100); !reflect.DeepEqual(got, table) {
		t.Errorf("Top(100) = %v, want full table", got)
	}

	// n <= 0 returns the whole table
	if got := table.Top(0); !reflect.DeepEqual(got, table) {
		t.Errorf("Top(0) = %v, want full table", got)
	}
}
