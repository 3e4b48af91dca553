package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// Document is a free-form annotation payload. Only "entry_id" and
// "username" carry meaning; everything else is stored as submitted.
type Document map[string]any

// Username returns the "username" field when it is a string.
func (d Document) Username() string {
	s, _ := d["username"].(string)
	return s
}

// EntryID renders the "entry_id" field as a string. Strings are used
// verbatim and numbers in their shortest decimal form. ok is false when the
// field is absent, null, or not a scalar.
func (d Document) EntryID() (id string, ok bool) {
	switch v := d["entry_id"].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// AnnotationKey derives the per-user mapping key for an entry.
func AnnotationKey(entryID string) string {
	return entryID + ".json"
}

// Lookup is the result of a point read of one annotation.
type Lookup struct {
	Exists bool     `json:"exists"`
	Data   Document `json:"data"`
}

// Progress summarizes how much of the dataset a user has annotated.
type Progress struct {
	Username          string   `json:"username"`
	Total             int      `json:"total"`
	Annotated         int      `json:"annotated"`
	AnnotatedEntryIDs []string `json:"annotated_entry_ids"`
}

// DecodeJSON decodes a stored payload into v, keeping numbers as
// json.Number so that integers beyond float64 precision are written back
// exactly. Trailing data after the value is an error.
func DecodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
