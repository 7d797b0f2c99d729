package memory

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"pasika/internal/core"
	"pasika/internal/dataset"
)

//go:embed sample.yaml
var sampleYAML []byte

// Store serves a dataset held entirely in memory.
type Store struct {
	ds core.Dataset
}

func New(ds core.Dataset) *Store {
	return &Store{ds: ds}
}

// NewSample returns a store seeded with the built-in sample dataset.
func NewSample() (*Store, error) {
	ds, err := dataset.Decode(bytes.NewReader(sampleYAML))
	if err != nil {
		return nil, fmt.Errorf("decode built-in sample: %w", err)
	}
	return New(ds), nil
}

// NewFromFile reads a YAML dataset from path. An empty path or a missing
// file falls back to the built-in sample.
func NewFromFile(path string) (*Store, error) {
	if path == "" {
		return NewSample()
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSample()
	}
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	ds, err := dataset.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return New(ds), nil
}

// Load implements dataset.Source.
func (s *Store) Load(_ context.Context) (core.Dataset, error) {
	return s.ds, nil
}

// SampleYAML returns a copy of the embedded sample document.
func SampleYAML() []byte {
	return append([]byte(nil), sampleYAML...)
}
