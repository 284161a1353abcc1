package search

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/nvoss/verso/internal/debuglog"
	"github.com/nvoss/verso/internal/storage"
)

type bleveEngine struct {
	store *storage.Store
	idx   bleve.Index
}

// NewSearcher opens (or creates) the bleve index at indexPath and returns
// an index-backed engine. If the index can't be set up, it falls back to
// the store-scanning engine so history search keeps working.
func NewSearcher(store *storage.Store, indexPath string) Searcher {
	eng, err := newBleveEngine(store, indexPath)
	if err != nil {
		debuglog.Warnf("bleve index unavailable (%v); falling back to scan engine", err)
		return NewEngine(store)
	}
	return eng
}

func newBleveEngine(store *storage.Store, indexPath string) (Searcher, error) {
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return nil, err
	}

	idx, err := bleve.Open(indexPath)
	if err != nil {
		idx, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, err
		}
	}

	be := &bleveEngine{store: store, idx: idx}
	if err := be.reindexAll(); err != nil {
		return nil, err
	}
	return be, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true

	artist := bleve.NewTextFieldMapping()
	artist.Analyzer = standard.Name
	artist.Store = true

	album := bleve.NewTextFieldMapping()
	album.Analyzer = standard.Name
	album.Store = true

	lyrics := bleve.NewTextFieldMapping()
	lyrics.Analyzer = standard.Name
	lyrics.Store = false

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("artist", artist)
	dm.AddFieldMappingsAt("album", album)
	dm.AddFieldMappingsAt("lyrics", lyrics)

	im.DefaultMapping = dm
	return im
}

func songDoc(song *storage.Song) map[string]any {
	return map[string]any{
		"title":  song.Title,
		"artist": song.Artist,
		"album":  song.AlbumTitle,
		"lyrics": song.Lyrics,
	}
}

func (b *bleveEngine) reindexAll() error {
	songs, err := b.store.RecentSongs(0)
	if err != nil {
		return err
	}

	batch := b.idx.NewBatch()
	for _, s := range songs {
		_ = batch.Index(s.ID, songDoc(s))
	}
	return b.idx.Batch(batch)
}

func (b *bleveEngine) Search(query string, limit int) ([]*Result, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []*Result{}, nil
	}

	// OR of per-term match and prefix queries across fields, boosted the
	// same way the scan engine weighs them.
	var qs []bleveQuery.Query
	addField := func(tok, field string, boost float64) {
		mq := bleve.NewMatchQuery(tok)
		mq.SetField(field)
		mq.SetBoost(boost)
		qs = append(qs, mq)

		pq := bleve.NewPrefixQuery(strings.ToLower(tok))
		pq.SetField(field)
		pq.SetBoost(boost * 0.8)
		qs = append(qs, pq)
	}
	for _, tok := range tokens {
		addField(tok, "title", 4.0)
		addField(tok, "artist", 3.0)
		addField(tok, "album", 2.0)
		addField(tok, "lyrics", 1.0)
	}

	q := bleve.NewDisjunctionQuery(qs...)
	srch := bleve.NewSearchRequestOptions(q, limit, 0, false)
	srch.Fields = []string{"title", "artist", "album"}
	res, err := b.idx.Search(srch)
	if err != nil {
		return nil, err
	}

	out := make([]*Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		// Prefer the full store record; fall back to stored fields when
		// the entry was deleted underneath the index.
		song, err := b.store.GetSong(h.ID)
		if err != nil {
			song = &storage.Song{ID: h.ID}
			if v, ok := h.Fields["title"].(string); ok {
				song.Title = v
			}
			if v, ok := h.Fields["artist"].(string); ok {
				song.Artist = v
			}
			if v, ok := h.Fields["album"].(string); ok {
				song.AlbumTitle = v
			}
		}
		out = append(out, &Result{Song: song, Score: h.Score})
	}
	return out, nil
}

// OnSongSaved indexes a newly viewed song.
func (b *bleveEngine) OnSongSaved(song *storage.Song) {
	if song == nil {
		return
	}
	if err := b.idx.Index(song.ID, songDoc(song)); err != nil {
		debuglog.Warnf("indexing song %q failed: %v", song.ID, err)
	}
}

// OnSongDeleted removes a history entry from the index.
func (b *bleveEngine) OnSongDeleted(songID string) {
	_ = b.idx.Delete(songID)
}

// DocCount reports total documents in the index.
func (b *bleveEngine) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	return int(n), err
}
