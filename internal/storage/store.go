package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var songsBucket = []byte("songs")

// Store persists viewed songs in a bbolt database. The fetch paths never
// consult it; it only backs the history view.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(songsBucket)
		return createErr
	})
	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveSong(song *Song) error {
	if song.ID == "" {
		song.ID = SongID(song.Artist, song.Title)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(songsBucket)
		data, err := json.Marshal(song)
		if err != nil {
			return err
		}
		return b.Put([]byte(song.ID), data)
	})
}

func (s *Store) GetSong(id string) (*Song, error) {
	var song Song
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(songsBucket)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("song not found")
		}
		return json.Unmarshal(data, &song)
	})
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// RecentSongs returns history entries newest-first. limit <= 0 returns
// everything.
func (s *Store) RecentSongs(limit int) ([]*Song, error) {
	var songs []*Song
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(songsBucket)
		return b.ForEach(func(_ []byte, v []byte) error {
			var song Song
			if err := json.Unmarshal(v, &song); err != nil {
				return err
			}
			songs = append(songs, &song)
			return nil
		})
	})
	sort.Slice(songs, func(i, j int) bool {
		return songs[i].ViewedAt.After(songs[j].ViewedAt)
	})
	if limit > 0 && len(songs) > limit {
		songs = songs[:limit]
	}
	return songs, err
}

func (s *Store) DeleteSong(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(songsBucket).Delete([]byte(id))
	})
}
