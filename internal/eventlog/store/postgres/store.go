// Package postgres persists the event log in PostgreSQL. Uniqueness of the
// event id is enforced by the primary key, so concurrent appends of the
// same id resolve to exactly one success without application-level locking.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"stripelog/internal/eventlog"
	"stripelog/pkg/platform/sentinel"
	txcontext "stripelog/pkg/platform/tx"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// Store implements eventlog.Store and eventlog.RawStore over database/sql.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL-backed event log store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execer joins a caller transaction when one travels in the context, so the
// summary row and raw payload of one event commit or roll back together.
func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append inserts one record. A duplicate id fails with sentinel.ErrConflict
// and leaves the stored row untouched; the insert is a single statement, so
// a failure never leaves a partial record visible.
func (s *Store) Append(ctx context.Context, record eventlog.Record) error {
	query := `
		INSERT INTO event_log (
			id, event_type, object_event_id, object, customer_id, email,
			amount, amount_due, amount_refunded,
			event_datetime, event_unixtimestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.execer(ctx).ExecContext(ctx, query,
		record.ID,
		record.EventType,
		nullString(record.ObjectEventID),
		nullString(record.Object),
		nullString(record.CustomerID),
		nullString(record.Email),
		record.Amount,
		record.AmountDue,
		record.AmountRefunded,
		record.EventDatetime,
		record.EventUnixTimestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("append event %s: %w", record.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// LookupByEmail returns records for one email, oldest first.
func (s *Store) LookupByEmail(ctx context.Context, email string) ([]eventlog.Record, error) {
	return s.lookup(ctx, `WHERE email = $1`, email)
}

// LookupByType returns records of one event type, oldest first.
func (s *Store) LookupByType(ctx context.Context, eventType string) ([]eventlog.Record, error) {
	return s.lookup(ctx, `WHERE event_type = $1`, eventType)
}

// LookupByTimeRange returns records with start <= event_datetime < end,
// oldest first.
func (s *Store) LookupByTimeRange(ctx context.Context, start, end time.Time) ([]eventlog.Record, error) {
	return s.lookup(ctx, `WHERE event_datetime >= $1 AND event_datetime < $2`, start, end)
}

func (s *Store) lookup(ctx context.Context, where string, args ...any) ([]eventlog.Record, error) {
	query := `
		SELECT id, event_type, object_event_id, object, customer_id, email,
			   amount, amount_due, amount_refunded,
			   event_datetime, event_unixtimestamp
		FROM event_log
		` + where + `
		ORDER BY event_unixtimestamp, id
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query event log: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// CountByType returns how many records exist per event type.
func (s *Store) CountByType(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT event_type, COUNT(*) FROM event_log GROUP BY event_type`)
	if err != nil {
		return nil, fmt.Errorf("count events by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var eventType string
		var count int64
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		counts[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate type counts: %w", err)
	}
	return counts, nil
}

// Bounds returns the total record count and the event-time span of the log.
func (s *Store) Bounds(ctx context.Context) (eventlog.Bounds, error) {
	var bounds eventlog.Bounds
	var oldest, newest sql.NullTime

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(event_datetime), MAX(event_datetime) FROM event_log`,
	).Scan(&bounds.Total, &oldest, &newest)
	if err != nil {
		return eventlog.Bounds{}, fmt.Errorf("query event log bounds: %w", err)
	}

	if oldest.Valid {
		bounds.Oldest = oldest.Time
	}
	if newest.Valid {
		bounds.Newest = newest.Time
	}
	return bounds, nil
}

// Put inserts one raw event payload, with Append's conflict semantics.
func (s *Store) Put(ctx context.Context, event eventlog.RawEvent) error {
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO event_object_raw (id, object, event_unixtimestamp, data, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		event.ID,
		event.Object,
		event.EventUnixTimestamp,
		[]byte(event.Payload),
		createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("put raw event %s: %w", event.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert raw event: %w", err)
	}
	return nil
}

// ListByObjectSince returns raw events of one object type observed at or
// after minUnix, oldest first.
func (s *Store) ListByObjectSince(ctx context.Context, object string, minUnix int64) ([]eventlog.RawEvent, error) {
	query := `
		SELECT id, object, event_unixtimestamp, data, created_at
		FROM event_object_raw
		WHERE object = $1 AND event_unixtimestamp >= $2
		ORDER BY event_unixtimestamp, id
	`

	rows, err := s.db.QueryContext(ctx, query, object, minUnix)
	if err != nil {
		return nil, fmt.Errorf("query raw events: %w", err)
	}
	defer rows.Close()

	var events []eventlog.RawEvent
	for rows.Next() {
		var event eventlog.RawEvent
		var payload []byte
		if err := rows.Scan(&event.ID, &event.Object, &event.EventUnixTimestamp, &payload, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan raw event: %w", err)
		}
		event.Payload = payload
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate raw events: %w", err)
	}
	return events, nil
}

func scanRecords(rows *sql.Rows) ([]eventlog.Record, error) {
	var records []eventlog.Record

	for rows.Next() {
		var (
			record                            eventlog.Record
			objectEventID, object             sql.NullString
			customerID, email                 sql.NullString
			amount, amountDue, amountRefunded sql.NullInt64
		)

		err := rows.Scan(
			&record.ID,
			&record.EventType,
			&objectEventID,
			&object,
			&customerID,
			&email,
			&amount,
			&amountDue,
			&amountRefunded,
			&record.EventDatetime,
			&record.EventUnixTimestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event record: %w", err)
		}

		record.ObjectEventID = objectEventID.String
		record.Object = object.String
		record.CustomerID = customerID.String
		record.Email = email.String
		record.Amount = nullableInt64(amount)
		record.AmountDue = nullableInt64(amountDue)
		record.AmountRefunded = nullableInt64(amountRefunded)

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event records: %w", err)
	}
	return records, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
