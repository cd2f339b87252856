package history

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

const (
	storageKey = "gb_history"
	maxEntries = 20
)

// Entry is one recently viewed guide. ViewedAt is the client clock in
// unix milliseconds.
type Entry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	GameName   string `json:"gameName"`
	AuthorName string `json:"authorName"`
	ViewedAt   int64  `json:"viewedAt"`
}

// Store is a durable, client-local list of the most recently viewed
// guides, capped and deduplicated. It works without network or
// authentication, and swallows storage failures: a broken history file
// degrades to an empty history, never to an error.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Track records a view. A guide already present moves to the front
// instead of duplicating; the list keeps the newest maxEntries.
func (s *Store) Track(id, title, gameName, authorName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()

	filtered := make([]Entry, 0, len(entries)+1)
	filtered = append(filtered, Entry{
		ID:         id,
		Title:      title,
		GameName:   gameName,
		AuthorName: authorName,
		ViewedAt:   s.now().UnixMilli(),
	})
	for _, e := range entries {
		if e.ID == id {
			continue
		}
		filtered = append(filtered, e)
	}

	if len(filtered) > maxEntries {
		filtered = filtered[:maxEntries]
	}

	s.save(filtered)
}

// Entries returns the history, most recent first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.Remove(s.path)
}

func (s *Store) load() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var payload map[string][]Entry
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}

	return payload[storageKey]
}

func (s *Store) save(entries []Entry) {
	data, err := json.Marshal(map[string][]Entry{storageKey: entries})
	if err != nil {
		return
	}
	os.WriteFile(s.path, data, 0o644)
}
