package commands

import (
	"context"
	"encoding/json"

	"roomstay-admin/internal/domain/resource"
	"roomstay-admin/internal/fallback"
)

// RecordWriter is the slice of the upstream client a coordinator
// drives.
type RecordWriter[T resource.Mutable[T]] interface {
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id int64, payload T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// FallbackStore is the write slice of the local overlay.
type FallbackStore interface {
	Get(ctx context.Context, kind resource.Kind, id int64) (*fallback.Entry, error)
	Upsert(ctx context.Context, kind resource.Kind, id int64, origin fallback.Origin, payload json.RawMessage) error
	Remove(ctx context.Context, kind resource.Kind, id int64) error
	NextLocalID(ctx context.Context, kind resource.Kind) (int64, error)
}

// RefreshFunc forces the resource's cached collections to reflect a
// settled mutation: invalidate derived sub-collections and refetch the
// main one immediately.
type RefreshFunc func(ctx context.Context) error
