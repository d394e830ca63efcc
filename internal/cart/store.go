package cart

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
)

// StorageKey is the slot the cart lives in
const StorageKey = "bookdragons-cart"

// Store reads and writes the serialized cart. The decoded items are cached
// and reused until the stored value changes.
//
// A Store is not safe for concurrent use. Two processes sharing one
// Storage race and the last write wins.
type Store struct {
	storage Storage
	logger  *zap.Logger

	raw   string
	items []Item
}

func NewStore(storage Storage, logger *zap.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
	}
}

// Load returns the stored cart, or an empty cart when nothing is stored.
// A stored value that is not a JSON array of items is removed and an empty
// cart is returned in its place.
func (s *Store) Load() ([]Item, error) {
	raw, ok, err := s.storage.GetItem(StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		s.remember("", nil)
		return []Item{}, nil
	}
	if raw == s.raw && s.items != nil {
		return cloneItems(s.items), nil
	}

	items, decodeErr := decodeItems(raw)
	if decodeErr != nil {
		s.logger.Warn("Discarding corrupt cart data", zap.Error(decodeErr), zap.Int("bytes", len(raw)))
		if err := s.storage.RemoveItem(StorageKey); err != nil {
			return nil, err
		}
		s.remember("", nil)
		return []Item{}, nil
	}

	s.remember(raw, items)
	return cloneItems(items), nil
}

// Save overwrites the stored cart with items
func (s *Store) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(StorageKey, string(data)); err != nil {
		return err
	}
	s.remember(string(data), items)
	return nil
}

// Erase removes the stored cart
func (s *Store) Erase() error {
	if err := s.storage.RemoveItem(StorageKey); err != nil {
		return err
	}
	s.remember("", nil)
	return nil
}

func (s *Store) remember(raw string, items []Item) {
	s.raw = raw
	s.items = cloneItems(items)
}

type corruptCartError struct {
	reason string
}

func (e *corruptCartError) Error() string {
	return "corrupt cart: " + e.reason
}

func decodeItems(raw string) ([]Item, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &corruptCartError{reason: "stored value is not a JSON array"}
	}
	items := []Item{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &corruptCartError{reason: err.Error()}
	}
	return items, nil
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	return append(make([]Item, 0, len(items)), items...)
}
