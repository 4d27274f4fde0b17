// Package storage provides abstractions for persisting the whole application
// state as a single document.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/mmynk/gatherings/internal/models"
)

// DefaultKey is the key under which the document has always been stored.
const DefaultKey = "gatheringsDB_v2"

// Store defines the interface for application state persistence.
// This abstraction allows swapping storage backends (SQLite, memory)
// without changing the repository layer.
//
// The document is read and written whole. Store never reports read errors:
// a missing or unreadable document loads as the empty default.
type Store interface {
	// Load returns the current document, or the empty default.
	Load(ctx context.Context) models.AppData

	// Save replaces the document. Failures are logged, not returned.
	Save(ctx context.Context, data models.AppData)

	// Update performs a read-modify-write of the document. If fn returns an
	// error nothing is written and that error is returned unchanged.
	// Concurrent Updates on the same Store are serialized.
	Update(ctx context.Context, fn func(*models.AppData) error) error

	// Close releases any resources held by the store.
	Close() error
}

// Encode serializes the document in its persisted form.
func Encode(data models.AppData) ([]byte, error) {
	data.Normalize()
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode app data: %w", err)
	}
	return b, nil
}

// Decode parses a persisted document. Missing top-level lists decode as empty
// lists. A blob that is not a JSON object is an error.
func Decode(blob []byte) (models.AppData, error) {
	if !gjson.ValidBytes(blob) || !gjson.ParseBytes(blob).IsObject() {
		return models.NewAppData(), fmt.Errorf("stored document is not a JSON object")
	}
	var data models.AppData
	if err := json.Unmarshal(blob, &data); err != nil {
		return models.NewAppData(), fmt.Errorf("failed to decode app data: %w", err)
	}
	data.Normalize()
	return data, nil
}
