// Package collection persists the characters a player has chosen to keep.
package collection

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/f3rmion/hanzcraft/internal/storage"
)

// Key is the storage key the collection is persisted under.
const Key = "hanzi-collection"

// Store is the player's collection of crafted characters, unique by
// character. The whole collection is rewritten on every change.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *log.Logger
	items  []hanzcraft.Composition
}

// NewStore loads the collection from kv. A missing or unreadable payload
// yields an empty collection; the problem is logged, never returned.
func NewStore(kv storage.KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{kv: kv, logger: logger}
	s.items = s.read()
	return s
}

func (s *Store) read() []hanzcraft.Composition {
	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		s.logger.Printf("collection: reading %s: %v; starting empty", Key, err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var items []hanzcraft.Composition
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Printf("collection: parsing %s: %v; starting empty", Key, err)
		return nil
	}

	// Older payloads may hold duplicates; keep the first of each character.
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, c := range items {
		if c.Character == "" || seen[c.Character] {
			continue
		}
		seen[c.Character] = true
		out = append(out, c)
	}
	return out
}

func (s *Store) write() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("marshaling collection: %w", err)
	}
	if err := s.kv.Set(Key, string(data)); err != nil {
		s.logger.Printf("collection: writing %s: %v; change kept in memory only", Key, err)
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

// Load returns a copy of the collection in the order characters were saved.
func (s *Store) Load() []hanzcraft.Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]hanzcraft.Composition, len(s.items))
	copy(out, s.items)
	return out
}

// Save adds c unless a composition with the same character is already
// present. It reports whether the collection changed. A storage error still
// leaves c in the in-memory collection.
func (s *Store) Save(c hanzcraft.Composition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(c.Character) >= 0 {
		return false, nil
	}
	s.items = append(s.items, c)
	return true, s.write()
}

// Remove deletes the character from the collection, reporting whether it
// was present.
func (s *Store) Remove(character string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(character)
	if i < 0 {
		return false, nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true, s.write()
}

// Contains reports whether character is in the collection.
func (s *Store) Contains(character string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(character) >= 0
}

// Len returns the number of collected characters.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) indexOf(character string) int {
	for i, c := range s.items {
		if c.Character == character {
			return i
		}
	}
	return -1
}
