// Package memory holds an in-memory event log store for unit tests and
// lightweight wiring. It mirrors the postgres store's error contract
// exactly, intentionally favoring clarity over performance.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stripelog/internal/eventlog"
	"stripelog/pkg/platform/sentinel"
)

// Store implements eventlog.Store and eventlog.RawStore over maps.
type Store struct {
	mu      sync.RWMutex
	records map[string]eventlog.Record
	raw     map[string]eventlog.RawEvent
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string]eventlog.Record),
		raw:     make(map[string]eventlog.RawEvent),
	}
}

// Append stores one record, failing with sentinel.ErrConflict when the id
// is already present. The stored copy is detached from the caller's so
// later mutation of pointer fields cannot alter the log.
func (s *Store) Append(_ context.Context, record eventlog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; exists {
		return fmt.Errorf("append event %s: %w", record.ID, sentinel.ErrConflict)
	}
	s.records[record.ID] = cloneRecord(record)
	return nil
}

// LookupByEmail returns records for one email, oldest first.
func (s *Store) LookupByEmail(_ context.Context, email string) ([]eventlog.Record, error) {
	return s.filter(func(r eventlog.Record) bool { return r.Email == email }), nil
}

// LookupByType returns records of one event type, oldest first.
func (s *Store) LookupByType(_ context.Context, eventType string) ([]eventlog.Record, error) {
	return s.filter(func(r eventlog.Record) bool { return r.EventType == eventType }), nil
}

// LookupByTimeRange returns records with start <= event_datetime < end,
// oldest first.
func (s *Store) LookupByTimeRange(_ context.Context, start, end time.Time) ([]eventlog.Record, error) {
	return s.filter(func(r eventlog.Record) bool {
		return !r.EventDatetime.Before(start) && r.EventDatetime.Before(end)
	}), nil
}

// CountByType returns how many records exist per event type.
func (s *Store) CountByType(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int64)
	for _, record := range s.records {
		counts[record.EventType]++
	}
	return counts, nil
}

// Bounds returns the total record count and the event-time span of the log.
func (s *Store) Bounds(_ context.Context) (eventlog.Bounds, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bounds eventlog.Bounds
	for _, record := range s.records {
		bounds.Total++
		if bounds.Oldest.IsZero() || record.EventDatetime.Before(bounds.Oldest) {
			bounds.Oldest = record.EventDatetime
		}
		if record.EventDatetime.After(bounds.Newest) {
			bounds.Newest = record.EventDatetime
		}
	}
	return bounds, nil
}

// Put stores one raw event with Append's conflict semantics.
func (s *Store) Put(_ context.Context, event eventlog.RawEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.raw[event.ID]; exists {
		return fmt.Errorf("put raw event %s: %w", event.ID, sentinel.ErrConflict)
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	event.Payload = append([]byte(nil), event.Payload...)
	s.raw[event.ID] = event
	return nil
}

// ListByObjectSince returns raw events of one object type observed at or
// after minUnix, oldest first.
func (s *Store) ListByObjectSince(_ context.Context, object string, minUnix int64) ([]eventlog.RawEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var events []eventlog.RawEvent
	for _, event := range s.raw {
		if event.Object == object && event.EventUnixTimestamp >= minUnix {
			copied := event
			copied.Payload = append([]byte(nil), event.Payload...)
			events = append(events, copied)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].EventUnixTimestamp != events[j].EventUnixTimestamp {
			return events[i].EventUnixTimestamp < events[j].EventUnixTimestamp
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// Reset wipes everything, matching the postgres store's destructive
// Initialize. Administrative use only.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]eventlog.Record)
	s.raw = make(map[string]eventlog.RawEvent)
	return nil
}

func (s *Store) filter(keep func(eventlog.Record) bool) []eventlog.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []eventlog.Record
	for _, record := range s.records {
		if keep(record) {
			records = append(records, cloneRecord(record))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].EventUnixTimestamp != records[j].EventUnixTimestamp {
			return records[i].EventUnixTimestamp < records[j].EventUnixTimestamp
		}
		return records[i].ID < records[j].ID
	})
	return records
}

func cloneRecord(record eventlog.Record) eventlog.Record {
	record.Amount = cloneInt64(record.Amount)
	record.AmountDue = cloneInt64(record.AmountDue)
	record.AmountRefunded = cloneInt64(record.AmountRefunded)
	return record
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
