package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileStore keeps one JSON document per key inside a state directory.
// Writes go through a temp file and rename, so a crash mid-write leaves
// the previous value intact.
type fileStore struct {
	dir string
}

func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}

	return &fileStore{dir: dir}, nil
}

func (f *fileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *fileStore) Get(_ context.Context, key string, dest any) (bool, error) {

	data, err := os.ReadFile(f.path(key))
	if err != nil {

		if os.IsNotExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal stored data for key %s: %w", key, err)
	}

	return true, nil
}

func (f *fileStore) Set(_ context.Context, key string, value any) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for key %s: %w", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to close temp file for key %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to persist key %s: %w", key, err)
	}

	return nil
}

func (f *fileStore) Delete(_ context.Context, key string) error {

	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}

func (f *fileStore) Clear(ctx context.Context, keys ...string) error {

	for _, key := range keys {
		if err := f.Delete(ctx, key); err != nil {
			return err
		}
	}

	return nil
}

func (f *fileStore) Close() error {
	return nil
}
