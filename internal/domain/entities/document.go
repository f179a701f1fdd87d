package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Document is an opaque string-keyed JSON payload (booking service details,
// minimal-write blobs). It stores the raw bytes so a read returns exactly
// what was written, including key order.
type Document struct {
	raw json.RawMessage
}

// NewDocument builds a Document from raw JSON. Empty input yields the empty
// object so a Document column is never NULL on write.
func NewDocument(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{raw: json.RawMessage("{}")}, nil
	}
	if !json.Valid(raw) {
		return Document{}, errors.New("document is not valid JSON")
	}
	return Document{raw: append(json.RawMessage(nil), raw...)}, nil
}

// MustDocument is NewDocument for literals in tests and defaults.
func MustDocument(raw string) Document {
	d, err := NewDocument([]byte(raw))
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether the document carries no payload at all.
func (d Document) IsZero() bool {
	return len(d.raw) == 0
}

// String returns the raw JSON text.
func (d Document) String() string {
	if len(d.raw) == 0 {
		return "{}"
	}
	return string(d.raw)
}

// MarshalJSON returns the stored bytes untouched.
func (d Document) MarshalJSON() ([]byte, error) {
	if len(d.raw) == 0 {
		return []byte("{}"), nil
	}
	return d.raw, nil
}

// UnmarshalJSON keeps the incoming bytes untouched.
func (d *Document) UnmarshalJSON(data []byte) error {
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Value implements driver.Valuer so GORM can bind a Document parameter.
func (d Document) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner for TEXT/JSON columns.
func (d *Document) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.raw = json.RawMessage("{}")
	case []byte:
		d.raw = append(json.RawMessage(nil), v...)
	case string:
		d.raw = json.RawMessage(v)
	default:
		return fmt.Errorf("cannot scan %T into Document", src)
	}
	return nil
}
