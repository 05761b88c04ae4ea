package entry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when no entry has the requested ID.
var ErrNotFound = errors.New("entry not found")

// ErrConflict is returned when creating an entry whose ID is taken.
var ErrConflict = errors.New("entry already exists")

// Store is the in-session, ordered list of entries. It is safe for
// concurrent use. Entries are copied in and out so callers never share
// state with the store.
type Store struct {
	mu      sync.RWMutex
	entries []*Entry
	now     func() time.Time
}

// NewStore creates a store seeded with entries, in order.
func NewStore(entries ...*Entry) *Store {
	store := &Store{now: time.Now}
	for _, e := range entries {
		store.entries = append(store.entries, e.Clone())
	}
	return store
}

// Create adds e at the end of the list. An empty Date defaults to today and
// an empty ID is generated from date and title, suffixed to stay unique.
func (s *Store) Create(e Entry) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := e.Clone()
	if created.Date == "" {
		created.Date = s.now().Format(DateLayout)
	}
	if created.ID == "" {
		created.ID = s.uniqueID(GenerateID(created.Title, created.Date))
	} else if s.indexOf(created.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrConflict, created.ID)
	}

	if err := created.Validate(); err != nil {
		return nil, err
	}

	s.entries = append(s.entries, created)
	return created.Clone(), nil
}

// Get returns a copy of the entry with id.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.entries[idx].Clone(), nil
}

// Update replaces the entry with the same ID, keeping its position.
func (s *Store) Update(e Entry) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(e.ID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}

	updated := e.Clone()
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	s.entries[idx] = updated
	return updated.Clone(), nil
}

// Delete removes the entry with id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.entries = slices.Delete(s.entries, idx, idx+1)
	return nil
}

// Move reorders the entry with id to position index. Indexes past either
// end are clamped.
func (s *Store) Move(id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.indexOf(id)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	moved := s.entries[from]
	s.entries = slices.Delete(s.entries, from, from+1)
	index = max(0, min(index, len(s.entries)))
	s.entries = slices.Insert(s.entries, index, moved)
	return nil
}

// List returns copies of all entries in order.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.entries, func(*Entry) bool { return true })
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Search returns entries whose title, text, description or tags contain
// query, case-insensitively. An empty query matches everything.
func (s *Store) Search(query string) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.entries, func(e *Entry) bool { return Matches(e, query) })
}

// OnDate returns entries dated date (YYYY-MM-DD).
func (s *Store) OnDate(date string) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.entries, func(e *Entry) bool { return e.Date == date })
}

// Matches reports whether e matches a search query.
func Matches(e *Entry, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}

	fields := append([]string{e.Title, e.Text, e.Description}, e.Tags...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// indexOf returns the position of id or -1. Caller holds s.mu.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(e *Entry) bool { return e.ID == id })
}

// uniqueID appends -2, -3, ... to base until it is unused. Caller holds s.mu.
func (s *Store) uniqueID(base string) string {
	id := base
	for n := 2; s.indexOf(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func cloneAll(entries []*Entry, keep func(*Entry) bool) []*Entry {
	result := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			result = append(result, e.Clone())
		}
	}
	return result
}
