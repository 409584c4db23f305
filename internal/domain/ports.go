package domain

import (
	"context"
	"io"
)

// DatasetSource opens a named reference file (regions_countries.json, spots.json, ...).
type DatasetSource interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DatasetLoader produces a complete Dataset snapshot.
type DatasetLoader interface {
	LoadDataset(ctx context.Context) (Dataset, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// CompareStore keeps the per-session compare list in insertion order.
type CompareStore interface {
	Append(ctx context.Context, sessionID string, item CompareItem) error
	List(ctx context.Context, sessionID string) ([]CompareItem, error)
	Clear(ctx context.Context, sessionID string) error
}
