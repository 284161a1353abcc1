package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"

	"github.com/nvoss/verso/internal/storage"
)

// Engine scans the history store directly, without an index. It is the
// fallback when the bleve index can't be opened, and the reference
// behavior for ranking.
type Engine struct {
	store *storage.Store
}

func NewEngine(store *storage.Store) *Engine {
	return &Engine{store: store}
}

// Search scores every history entry against the query and returns the
// best matches, highest score first.
func (e *Engine) Search(query string, limit int) ([]*Result, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return []*Result{}, nil
	}

	songs, err := e.store.RecentSongs(0)
	if err != nil {
		return nil, err
	}

	var results []*Result
	for _, song := range songs {
		if r := scoreSong(song, query, terms); r != nil {
			results = append(results, r)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func scoreSong(song *storage.Song, query string, terms []string) *Result {
	score := scoreField(song.Title, terms, 4.0) +
		scoreField(song.Artist, terms, 3.0) +
		scoreField(song.AlbumTitle, terms, 2.0) +
		scoreField(song.Lyrics, terms, 1.0)

	// Near-miss titles and artists still rank: "nivrana" should find
	// Nirvana. Similarity below 0.6 is noise and is ignored.
	q := strings.ToLower(strings.TrimSpace(query))
	if sim := levenshtein.Similarity(strings.ToLower(song.Title), q, nil); sim >= 0.6 {
		score += sim * 2.0
	}
	if sim := levenshtein.Similarity(strings.ToLower(song.Artist), q, nil); sim >= 0.6 {
		score += sim * 2.0
	}

	if score <= 0 {
		return nil
	}
	return &Result{Song: song, Score: score}
}

// scoreField weighs how strongly a field matches the query terms.
func scoreField(text string, terms []string, weight float64) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	words := tokenize(text)

	var score float64
	for _, term := range terms {
		if strings.Contains(lower, term) {
			score += 2.0
		}
		for _, word := range words {
			switch {
			case word == term:
				score += 1.5
			case strings.HasPrefix(word, term):
				score += 1.0
			case strings.Contains(word, term):
				score += 0.5
			}
		}
	}

	return score * weight
}

// tokenize breaks text into lowercase search terms, dropping single
// characters.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len(term) > 1 {
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if current.Len() > 1 {
		terms = append(terms, current.String())
	}

	return terms
}
