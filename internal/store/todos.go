package store

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/amirbrooks/marc/internal/logging"
)

const (
	hashLength   = 7
	maxHashRolls = 16
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

type ListFilter struct {
	Tag    string
	Done   bool
	Undone bool
}

// Add appends a new open item. An empty tag means DefaultTag.
func (s *Store) Add(description string, tag string) (*Item, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalid)
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = DefaultTag
	}
	hash, err := s.newHash(description, tag)
	if err != nil {
		return nil, err
	}
	item := Item{Hash: hash, Description: description, Tag: tag}
	s.items = append(s.items, item)
	return &item, nil
}

// Match returns every item whose hash starts with prefix, in list order.
func (s *Store) Match(prefix string) []Item {
	var out []Item
	for _, it := range s.items {
		if strings.HasPrefix(it.Hash, prefix) {
			out = append(out, it)
		}
	}
	return out
}

// resolve finds the index of the single item matching prefix.
func (s *Store) resolve(prefix string) (int, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return -1, fmt.Errorf("%w: empty hash prefix", ErrInvalid)
	}
	if len(s.items) == 0 {
		return -1, ErrEmpty
	}
	idx := -1
	var matches []Item
	for i, it := range s.items {
		if strings.HasPrefix(it.Hash, prefix) {
			idx = i
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return -1, ErrNotFound
	case 1:
		return idx, nil
	default:
		return -1, &MatchConflictError{Prefix: prefix, Matches: matches}
	}
}

// Remove deletes the single item whose hash starts with prefix. Nothing is
// removed when the prefix is absent or ambiguous.
func (s *Store) Remove(prefix string) (*Item, error) {
	idx, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}
	item := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return &item, nil
}

// RemoveCompleted deletes every completed item and returns them.
func (s *Store) RemoveCompleted() []Item {
	var removed []Item
	kept := s.items[:0]
	for _, it := range s.items {
		if it.Completed {
			removed = append(removed, it)
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	return removed
}

// MarkDone completes the single item whose hash starts with prefix.
func (s *Store) MarkDone(prefix string) (*Item, error) {
	idx, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}
	if s.items[idx].Completed {
		item := s.items[idx]
		return &item, ErrAlreadyCompleted
	}
	s.items[idx].Completed = true
	item := s.items[idx]
	return &item, nil
}

// List returns the items accepted by f. Done and Undone together, or neither,
// select every completion state.
func (s *Store) List(f ListFilter) []Item {
	tag := strings.TrimSpace(f.Tag)
	out := []Item{}
	for _, it := range s.items {
		if tag != "" && it.Tag != tag {
			continue
		}
		if f.Done && !f.Undone && !it.Completed {
			continue
		}
		if f.Undone && !f.Done && it.Completed {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (s *Store) newHash(description, tag string) (string, error) {
	for attempt := 0; attempt < maxHashRolls; attempt++ {
		hash := hashItem(description, tag, newStamp())
		if !s.hasHash(hash) {
			return hash, nil
		}
		logging.Debug().Str("hash", hash).Int("attempt", attempt+1).Msg("hash collision, re-rolling")
	}
	return "", fmt.Errorf("%w: could not generate a unique hash", ErrConflict)
}

func (s *Store) hasHash(hash string) bool {
	for _, it := range s.items {
		if it.Hash == hash {
			return true
		}
	}
	return false
}

func hashItem(description, tag, stamp string) string {
	h := sha1.New()
	h.Write([]byte(description))
	h.Write([]byte{0})
	h.Write([]byte(tag))
	h.Write([]byte{0})
	h.Write([]byte(stamp))
	return hex.EncodeToString(h.Sum(nil))[:hashLength]
}

var (
	entropy  = ulid.Monotonic(randReader{}, 0)
	newStamp = newULID
)

// newULID encodes the current millisecond timestamp plus monotonic entropy,
// so two calls in the same millisecond still differ.
func newULID() string {
	id, err := ulid.New(ulid.Timestamp(timeNow()), entropy)
	if err != nil {
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return id.String()
}
