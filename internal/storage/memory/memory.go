// Package memory provides an in-process implementation of storage.Store.
// It keeps the encoded document so every Load returns an independent copy.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmynk/gatherings/internal/models"
	"github.com/mmynk/gatherings/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store holds the document in memory.
type Store struct {
	mu   sync.Mutex
	blob []byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// NewFromBlob creates a store seeded with a raw persisted document.
func NewFromBlob(blob []byte) *Store {
	return &Store{blob: append([]byte(nil), blob...)}
}

// Blob returns a copy of the raw persisted document.
func (s *Store) Blob() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.blob...)
}

func (s *Store) Load(ctx context.Context) models.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Save(ctx context.Context, data models.AppData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(data)
}

func (s *Store) Update(ctx context.Context, fn func(*models.AppData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	if err := fn(&data); err != nil {
		return err
	}
	s.save(data)
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) load() models.AppData {
	if len(s.blob) == 0 {
		return models.NewAppData()
	}
	data, err := storage.Decode(s.blob)
	if err != nil {
		slog.Error("Failed to load stored data, using empty default", "error", err)
	}
	return data
}

func (s *Store) save(data models.AppData) {
	blob, err := storage.Encode(data)
	if err != nil {
		slog.Error("Failed to save data", "error", err)
		return
	}
	s.blob = blob
}
