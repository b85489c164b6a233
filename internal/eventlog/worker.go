package eventlog

import (
	"context"
	"io"
	"log/slog"

	pkgerrors "stripelog/pkg/errors"
)

// Worker drains records handed over by the external ingest collaborator and
// persists them through the service. It owns no network I/O and no retry
// policy. Duplicate ids are a normal occurrence when the upstream redelivers
// a webhook, so conflicts are logged and skipped rather than treated as
// failures; anything else stops the worker and surfaces to the operator.
type Worker struct {
	service *Service
	inbox   <-chan Record
	logger  *slog.Logger
}

// NewWorker builds a worker reading from inbox until the context ends.
func NewWorker(service *Service, inbox <-chan Record, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Worker{service: service, inbox: inbox, logger: logger}
}

// Run consumes the inbox until the context is canceled or a non-conflict
// append failure occurs.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case record := <-w.inbox:
			err := w.service.Append(ctx, record)
			switch {
			case err == nil:
			case pkgerrors.HasCode(err, pkgerrors.CodeConflict):
				w.logger.Warn("duplicate event redelivered", "event_id", record.ID)
			default:
				return err
			}
		}
	}
}
