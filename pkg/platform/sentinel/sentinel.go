package sentinel

import "errors"

// Sentinel errors for storage facts. Store implementations return these
// (optionally wrapped) so the service layer can translate them into coded
// domain errors without knowing which backend produced them.
//
// These represent factual states about the log, not validation failures:
// - ErrConflict: a record with the same event id is already persisted
// - ErrNotFound: the requested record does not exist
// - ErrUnavailable: the backing store could not be reached
//
// Validation of record contents happens above the store, in pkg/errors terms.
var (
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
