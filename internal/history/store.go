package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/unkn0wn-root/richlist/internal/errdef"
)

// Entry is one pushed view URL.
type Entry struct {
	ID       string    `json:"id"`
	PushedAt time.Time `json:"pushedAt"`
	URL      string    `json:"url"`
	Path     string    `json:"path"`
	Query    string    `json:"query,omitempty"`
}

// Backend records pushed URLs, newest first.
type Backend interface {
	Push(rawURL string) error
	List(limit int) ([]Entry, error)
	ByPath(path string, limit int) ([]Entry, error)
	Delete(id string) (bool, error)
	Close() error
}

const DefaultMaxEntries = 200

// NewEntry splits rawURL into path and query for later lookups. URLs that
// do not parse are kept whole in Path.
func NewEntry(rawURL string, now time.Time) Entry {
	e := Entry{ID: uuid.NewString(), PushedAt: now, URL: rawURL, Path: rawURL}
	if u, err := url.Parse(rawURL); err == nil {
		e.Path = u.Path
		e.Query = u.RawQuery
	}
	return e
}

type Store struct {
	path       string
	maxEntries int
	entries    []Entry
	mu         sync.RWMutex
	loaded     bool
	now        func() time.Time
}

func NewStore(path string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{path: path, maxEntries: maxEntries, now: time.Now}
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked()
}

// Push records rawURL unless it equals the newest entry, so re-syncing an
// unchanged view does not grow the history.
func (s *Store) Push(rawURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}
	if len(s.entries) > 0 && s.entries[0].URL == rawURL {
		return nil
	}
	return s.appendLocked(NewEntry(rawURL, s.now()))
}

// appendLocked puts entry at the head. Entries stay in push order so two
// pushes within one clock tick keep their order.
func (s *Store) appendLocked(entry Entry) error {
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}
	return s.persist()
}

func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copies := make([]Entry, len(s.entries))
	copy(copies, s.entries)
	return copies
}

func (s *Store) List(limit int) ([]Entry, error) {
	if err := s.Load(); err != nil {
		return nil, err
	}
	entries := s.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return false, err
	}

	idx := -1
	for i, entry := range s.entries {
		if entry.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	copy(s.entries[idx:], s.entries[idx+1:])
	s.entries = s.entries[:len(s.entries)-1]

	if err := s.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// ByPath returns the entries for one list view, newest first.
func (s *Store) ByPath(path string, limit int) ([]Entry, error) {
	if path == "" {
		return nil, nil
	}
	if err := s.Load(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []Entry
	for _, entry := range s.entries {
		if entry.Path != path {
			continue
		}
		matched = append(matched, entry)
		if limit > 0 && len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create history dir")
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "encode history")
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write history")
	}
	return nil
}

func (s *Store) ensureLoadedLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.entries = []Entry{}
			s.loaded = true
			return nil
		}
		return errdef.Wrap(errdef.CodeHistory, err, "read history")
	}

	if len(data) == 0 {
		s.entries = []Entry{}
		s.loaded = true
		return nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "parse history")
	}
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}
	s.loaded = true
	return nil
}
