// Package eventlog is the durable, indexed log of payment-platform webhook
// events. Records are append-only: written once when the external ingest
// collaborator hands them over, never updated, and only removed wholesale
// through the administrative reset.
package eventlog

import (
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "stripelog/pkg/errors"
)

// Column width limits. They mirror the persisted schema so validation
// rejects what the store could not hold, instead of letting the driver
// truncate or error later.
const (
	MaxIDLen            = 50
	MaxEventTypeLen     = 50
	MaxObjectEventIDLen = 50
	MaxObjectLen        = 20
	MaxCustomerIDLen    = 50
	// MaxEmailLen is intentionally small for compatibility with the
	// historical 32-character email slot. Longer addresses are rejected,
	// never silently truncated.
	MaxEmailLen = 32
)

// Record is one observed upstream event, flattened for reporting lookups.
// Monetary fields are pointers because most event types carry no amount;
// a nil amount persists as NULL and round-trips as nil.
type Record struct {
	ID                 string
	EventType          string
	ObjectEventID      string
	Object             string
	CustomerID         string
	Email              string
	Amount             *int64
	AmountDue          *int64
	AmountRefunded     *int64
	EventDatetime      time.Time
	EventUnixTimestamp int64
}

// Normalize fills whichever of the two event-time representations is
// missing from the other. Both are persisted: the calendar timestamp for
// human-readable range queries, the unix timestamp for stable ordering.
func (r *Record) Normalize() {
	if r.EventUnixTimestamp == 0 && !r.EventDatetime.IsZero() {
		r.EventUnixTimestamp = r.EventDatetime.Unix()
	}
	if r.EventDatetime.IsZero() && r.EventUnixTimestamp != 0 {
		r.EventDatetime = time.Unix(r.EventUnixTimestamp, 0).UTC()
	}
}

// Validate rejects records the store must never see. The event id, not the
// timestamp, is the uniqueness key: two events in the same second are both
// valid as long as their ids differ.
func (r Record) Validate() error {
	if r.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id is required")
	}
	if len(r.ID) > MaxIDLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("event id exceeds %d characters", MaxIDLen))
	}
	if r.EventType == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "event type is required")
	}
	if len(r.EventType) > MaxEventTypeLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("event type exceeds %d characters", MaxEventTypeLen))
	}
	if len(r.ObjectEventID) > MaxObjectEventIDLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("object event id exceeds %d characters", MaxObjectEventIDLen))
	}
	if len(r.Object) > MaxObjectLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("object exceeds %d characters", MaxObjectLen))
	}
	if len(r.CustomerID) > MaxCustomerIDLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("customer id exceeds %d characters", MaxCustomerIDLen))
	}
	if len(r.Email) > MaxEmailLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("email exceeds %d characters", MaxEmailLen))
	}
	if r.EventDatetime.IsZero() && r.EventUnixTimestamp == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "event time is required")
	}
	for _, amount := range []struct {
		name  string
		value *int64
	}{
		{"amount", r.Amount},
		{"amount_due", r.AmountDue},
		{"amount_refunded", r.AmountRefunded},
	} {
		if amount.value != nil && *amount.value < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, amount.name+" must not be negative")
		}
	}
	return nil
}

// RawEvent is the unflattened companion row: the full object payload of an
// event, kept for reporting pulls that re-read objects by type from a given
// point in time onward.
type RawEvent struct {
	ID                 string
	Object             string
	EventUnixTimestamp int64
	Payload            json.RawMessage
	CreatedAt          time.Time
}

// Validate rejects raw events the store must never see.
func (r RawEvent) Validate() error {
	if r.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id is required")
	}
	if len(r.ID) > MaxIDLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("event id exceeds %d characters", MaxIDLen))
	}
	if r.Object == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "object is required")
	}
	if len(r.Object) > MaxObjectLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("object exceeds %d characters", MaxObjectLen))
	}
	if r.EventUnixTimestamp <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "event unix timestamp is required")
	}
	if len(r.Payload) == 0 || !json.Valid(r.Payload) {
		return pkgerrors.New(pkgerrors.CodeValidation, "payload must be valid JSON")
	}
	return nil
}
