package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/username/vacation-planner/internal/planner"
)

// importDocument keeps each field raw so a missing key can be told apart
// from an explicit null
type importDocument struct {
	Users    json.RawMessage `json:"users" validate:"required"`
	Schedule json.RawMessage `json:"schedule" validate:"required"`
	Holidays json.RawMessage `json:"holidays" validate:"required"`
}

// EncodeDocument renders data the way exported files are written
func EncodeDocument(data planner.AppData) ([]byte, error) {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return content, nil
}

// DecodeDocument parses an exported document. The users, schedule and
// holidays keys must all be present; a null value is read as empty (or as
// the default holidays).
func DecodeDocument(raw []byte) (planner.AppData, error) {
	if !json.Valid(raw) {
		return planner.AppData{}, ErrImportParse
	}

	var doc importDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return planner.AppData{}, fmt.Errorf("%w: %w", ErrImportShape, err)
	}
	if err := planner.Validator().Struct(doc); err != nil {
		return planner.AppData{}, fmt.Errorf("%w: %w", ErrImportShape, err)
	}

	var data planner.AppData
	if err := decodeField("users", doc.Users, &data.Users); err != nil {
		return planner.AppData{}, err
	}
	if err := decodeField("schedule", doc.Schedule, &data.Schedule); err != nil {
		return planner.AppData{}, err
	}
	if err := decodeField("holidays", doc.Holidays, &data.Holidays); err != nil {
		return planner.AppData{}, err
	}

	data = planner.Normalize(data)
	if err := planner.Validate(data); err != nil {
		return planner.AppData{}, fmt.Errorf("%w: %w", ErrImportShape, err)
	}

	return data, nil
}

func decodeField(name string, raw json.RawMessage, v interface{}) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: field %q: %w", ErrImportShape, name, err)
	}
	return nil
}
