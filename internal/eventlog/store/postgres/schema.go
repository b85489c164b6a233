package postgres

import (
	"context"
	"fmt"

	pkgerrors "stripelog/pkg/errors"
)

// The persisted layout. Column names and widths are load-bearing: reporting
// consumers read these tables directly. Uniqueness binds to the event id;
// event_unixtimestamp is an ordinary indexed column because two distinct
// events can share a second. The email slot keeps its historical 32-char
// maximum but is variable-length: fixed-width padding breaks equality
// lookups, so over-long values are rejected at validation instead.
var schemaStatements = []string{
	`DROP TABLE IF EXISTS event_log`,
	`DROP TABLE IF EXISTS event_object_raw`,
	`CREATE TABLE event_log (
		id                  VARCHAR(50) PRIMARY KEY,
		event_type          VARCHAR(50) NOT NULL,
		object_event_id     VARCHAR(50),
		object              VARCHAR(20),
		customer_id         VARCHAR(50),
		email               VARCHAR(32),
		amount              BIGINT,
		amount_due          BIGINT,
		amount_refunded     BIGINT,
		event_datetime      TIMESTAMPTZ NOT NULL,
		event_unixtimestamp BIGINT NOT NULL
	)`,
	`CREATE INDEX idx_event_log_email ON event_log (email)`,
	`CREATE INDEX idx_event_log_event_type ON event_log (event_type)`,
	`CREATE INDEX idx_event_log_event_datetime ON event_log (event_datetime)`,
	`CREATE INDEX idx_event_log_event_unixtimestamp ON event_log (event_unixtimestamp)`,
	`CREATE TABLE event_object_raw (
		id                  VARCHAR(50) PRIMARY KEY,
		object              VARCHAR(20) NOT NULL,
		event_unixtimestamp BIGINT NOT NULL,
		data                JSONB NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX idx_event_object_raw_object_ts ON event_object_raw (object, event_unixtimestamp)`,
}

// Initialize drops and recreates the event log schema. Destructive: every
// previously recorded event is lost. It exists for the administrative reset
// path only and is never reachable from Append or the lookups. The whole
// reset runs in one transaction so a failure partway through leaves the old
// schema intact.
func (s *Store) Initialize(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeSchemaInit, "begin schema reset")
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeSchemaInit, fmt.Sprintf("apply schema statement: %.40s", stmt))
		}
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeSchemaInit, "commit schema reset")
	}
	return nil
}
