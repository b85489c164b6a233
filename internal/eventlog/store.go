package eventlog

import (
	"context"
	"time"
)

// Stores are interface-driven so the service and worker stay testable and
// the postgres, in-memory, and cached implementations remain swappable
// without rewiring callers.

// Store persists flattened event records and serves the indexed lookups.
// Append must enforce id uniqueness at the storage layer: concurrent
// appends of the same id resolve to exactly one success, the rest failing
// with sentinel.ErrConflict. Implementations never retry.
type Store interface {
	Append(ctx context.Context, record Record) error
	LookupByEmail(ctx context.Context, email string) ([]Record, error)
	LookupByType(ctx context.Context, eventType string) ([]Record, error)
	// LookupByTimeRange returns records with start <= event_datetime < end.
	LookupByTimeRange(ctx context.Context, start, end time.Time) ([]Record, error)
	CountByType(ctx context.Context) (map[string]int64, error)
	Bounds(ctx context.Context) (Bounds, error)
}

// RawStore persists full event payloads keyed by event id, with the same
// conflict semantics as Store.Append.
type RawStore interface {
	Put(ctx context.Context, event RawEvent) error
	// ListByObjectSince returns raw events for the object type with
	// event_unixtimestamp >= minUnix, ordered ascending by event time.
	ListByObjectSince(ctx context.Context, object string, minUnix int64) ([]RawEvent, error)
}

// Bounds summarizes the log for operators: how many records it holds and
// the event times it spans. Oldest/Newest are zero when the log is empty.
type Bounds struct {
	Total  int64
	Oldest time.Time
	Newest time.Time
}
