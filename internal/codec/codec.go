// Package codec converts the application state to and from the portable
// export token: the JSON document encoded as standard padded base64.
//
// Tokens produced by earlier releases encode the UTF-8 bytes of the same JSON
// document, so they decode unchanged.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mmynk/gatherings/internal/models"
)

// ErrInvalidFormat is returned for any token that does not decode to a store
// document.
var ErrInvalidFormat = errors.New("invalid data format")

// Export encodes the document as a single-line text token.
func Export(data models.AppData) (string, error) {
	data.Normalize()
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode app data: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Import decodes a token produced by Export. Surrounding whitespace is
// ignored. The decoded document must carry both top-level lists.
func Import(token string) (models.AppData, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return models.AppData{}, fmt.Errorf("%w: not base64: %v", ErrInvalidFormat, err)
	}
	if !gjson.ValidBytes(raw) {
		return models.AppData{}, fmt.Errorf("%w: not JSON", ErrInvalidFormat)
	}
	for _, field := range []string{"gatherings", "globalMembers"} {
		if !gjson.GetBytes(raw, field).IsArray() {
			return models.AppData{}, fmt.Errorf("%w: %s must be a list", ErrInvalidFormat, field)
		}
	}

	var data models.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.AppData{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	data.Normalize()
	return data, nil
}
