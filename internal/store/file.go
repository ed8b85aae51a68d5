package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps the record in a small JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend at path, creating parent directories
// as needed.
func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create record directory: %w", err)
	}
	return &FileBackend{path: path}, nil
}

// Load reads the record. A missing file yields the zero record.
func (f *FileBackend) Load() (Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, nil
		}
		return Record{}, fmt.Errorf("read record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}

// Save writes the record atomically (write tmp, then rename).
func (f *FileBackend) Save(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write tmp record: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename record: %w", err)
	}
	return nil
}
