package dataset

import (
	"context"

	"pasika/internal/core"
)

// Source loads the dashboard dataset once at startup.
type Source interface {
	Load(ctx context.Context) (core.Dataset, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) (core.Dataset, error)

func (f SourceFunc) Load(ctx context.Context) (core.Dataset, error) {
	return f(ctx)
}
