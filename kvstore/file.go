package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// File persists all entries as one JSON object in a single file, rewritten
// in full on every Set. This is the default backend: a local, single-user
// stand-in for browser storage.
type File struct {
	path string
	m    map[string]string
}

func NewFile(path string) (*File, error) {
	f := &File{path: path, m: map[string]string{}}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &f.m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	v, ok := f.m[key]
	if !ok {
		return "", ErrNoKey
	}
	return v, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.m[key] = value
	b, err := json.Marshal(f.m)
	if err != nil {
		return err
	}
	// write-then-rename so a crash never leaves a half-written file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Close() error { return nil }
