// Package backend picks the dataset source named by DATA_BACKEND.
package backend

import (
	"context"

	"pasika/internal/dataset"
)

// CleanupFunc releases whatever the backend opened.
type CleanupFunc func() error

// BackendResult is a ready dataset source plus its cleanup.
type BackendResult struct {
	Source  dataset.Source
	Cleanup CleanupFunc
}

// Factory creates dataset sources from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Memory specific; empty means the built-in sample.
	DatasetFile string
}

type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
