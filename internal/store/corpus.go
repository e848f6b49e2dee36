// Package store loads, persists, and hot-reloads the reasons dataset.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kindled/noaas/internal/reason"
)

// Load reads the dataset at path. A missing file yields an empty corpus,
// not an error: the service degrades to its empty state rather than failing
// to start. Entries may be bare strings or labeled objects; both come back
// normalized.
func Load(path string) (reason.Corpus, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return reason.Corpus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw []reason.Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	corpus, err := reason.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", path, err)
	}
	return corpus, nil
}

// Save validates and persists a corpus. Validation failure aborts before
// anything touches disk; the write itself goes through a temp file and
// rename so readers never observe a partial dataset.
func Save(path string, corpus reason.Corpus) error {
	if err := reason.Validate(corpus); err != nil {
		return err
	}

	data, err := json.MarshalIndent(corpus, "", "  ")
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".reasons-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
