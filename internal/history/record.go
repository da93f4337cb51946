// Package history records theme apply runs in an append-only JSONL file.
package history

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Source values for Record.Source.
const (
	SourceCatalog = "catalog"
	SourcePath    = "path"
)

// Record is one apply run.
type Record struct {
	ID        string   `json:"id"`
	Timestamp int64    `json:"timestamp"`
	Palette   string   `json:"palette"`
	Source    string   `json:"source"`
	Path      string   `json:"path,omitempty"`
	Templates []string `json:"templates,omitempty"`
	Warnings  int      `json:"warnings,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Validation errors.
var (
	ErrEmptyID      = errors.New("id cannot be empty")
	ErrEmptySource  = errors.New("source cannot be empty")
	ErrBadTimestamp = errors.New("timestamp must be greater than 0")
)

// NewRecord creates a record with a generated ULID and the current time.
func NewRecord(palette, source string) (*Record, error) {
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &Record{
		ID:        id.String(),
		Timestamp: now.Unix(),
		Palette:   palette,
		Source:    source,
	}, nil
}

// Validate checks the required fields.
func (r *Record) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if r.Source == "" {
		return ErrEmptySource
	}
	if r.Timestamp <= 0 {
		return ErrBadTimestamp
	}
	return nil
}

// Time returns the record timestamp.
func (r *Record) Time() time.Time {
	return time.Unix(r.Timestamp, 0)
}

// Failed reports whether the run ended with an error.
func (r *Record) Failed() bool {
	return r.Error != ""
}
