package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MergeSave overlays fields onto the record stored at path and writes the
// result back atomically. A missing file counts as an empty record; keys
// not named in fields are left untouched. The setup wizard calls this
// right after each value is obtained, so an interrupted run keeps every
// answer given so far.
func MergeSave(path string, fields map[string]any) error {
	record, err := readRecord(path)
	if err != nil {
		return err
	}

	for key, value := range fields {
		record[key] = value
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return writeFileAtomic(path, data)
}

// readRecord loads the stored record as a raw map. A missing file is an
// empty record; unparseable content is ErrInvalid so a hand-edited file
// with a typo never gets silently overwritten.
func readRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	record := map[string]any{}
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return record, nil
}

// writeFileAtomic writes data to path through a temp file and rename so a
// crash never leaves a half-written record behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}
