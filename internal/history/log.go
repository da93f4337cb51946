package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SchemaVersion is the current history file schema version.
const SchemaVersion = 1

// schemaHeader is the first line of the JSONL file.
type schemaHeader struct {
	ClrsyncSchemaVersion int   `json:"clrsync_schema_version"`
	CreatedAt            int64 `json:"created_at"`
}

// ErrClosed is returned when operations are attempted on a closed log.
var ErrClosed = errors.New("history log is closed")

// Log is an append-only JSONL file of apply records.
type Log struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	closed bool
}

// Open opens or creates the log at path, creating parent directories.
func Open(path string) (*Log, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	l := &Log{path: path, file: file}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if err := l.writeHeader(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return l, nil
}

// Path returns the backing file path.
func (l *Log) Path() string {
	return l.path
}

func (l *Log) writeHeader() error {
	data, err := json.Marshal(schemaHeader{
		ClrsyncSchemaVersion: SchemaVersion,
		CreatedAt:            time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	_, err = l.file.Write(append(data, '\n'))
	return err
}

// Append validates r and writes it.
func (l *Log) Append(r *Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return err
	}
	return l.file.Sync()
}

// Load returns every record in file order. Malformed lines are skipped.
func (l *Log) Load() ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrClosed
	}

	if _, err := l.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", l.path, err)
	}

	var records []Record
	scanner := bufio.NewScanner(l.file)
	const maxLineSize = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if lineNum == 1 {
			var header schemaHeader
			if err := json.Unmarshal(line, &header); err == nil && header.ClrsyncSchemaVersion > 0 {
				if header.ClrsyncSchemaVersion > SchemaVersion {
					return nil, fmt.Errorf("unsupported schema version %d (max: %d)",
						header.ClrsyncSchemaVersion, SchemaVersion)
				}
				continue
			}
		}

		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			continue
		}
		if r.Validate() == nil {
			records = append(records, r)
		}
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("error reading file: %w", err)
	}

	if _, err := l.file.Seek(0, io.SeekEnd); err != nil {
		return records, err
	}
	return records, nil
}

// Recent returns up to n records, newest first. n <= 0 returns all.
func (l *Log) Recent(n int) ([]Record, error) {
	records, err := l.Load()
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i])
		if n > 0 && len(out) == n {
			break
		}
	}
	return out, nil
}

// Clear removes every record, leaving only a fresh header.
func (l *Log) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}

	if err := l.file.Close(); err != nil {
		return err
	}

	file, err := os.OpenFile(l.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND, 0600)
	if err != nil {
		l.file = nil
		l.closed = true
		return err
	}
	l.file = file

	if err := l.writeHeader(); err != nil {
		return err
	}
	return l.file.Sync()
}

// Close releases the file handle.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}
