package eventlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"stripelog/internal/eventlog/metrics"
	pkgerrors "stripelog/pkg/errors"
	"stripelog/pkg/platform/sentinel"
)

// Service is the write and lookup surface of the event log. It validates
// records, translates store sentinels into coded errors, and records
// metrics and trace spans. It performs no retries: a Conflict tells the
// caller the event was already recorded, anything transient is theirs to
// retry.
type Service struct {
	store   Store
	raw     RawStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRawStore enables persistence of full event payloads alongside the
// flattened summary rows.
func WithRawStore(raw RawStore) Option {
	return func(s *Service) {
		s.raw = raw
	}
}

// NewService constructs the event log service over a Store.
func NewService(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "store is required")
	}
	s := &Service{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer: otel.Tracer("stripelog/eventlog"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Append records one event. The record is normalized (missing event-time
// representation derived from the other), validated, and written in a
// single atomic statement. Duplicate ids fail with a conflict-coded error
// and leave the stored record untouched.
func (s *Service) Append(ctx context.Context, record Record) error {
	ctx, span := s.tracer.Start(ctx, "eventlog.Append")
	defer span.End()

	record.Normalize()
	if err := record.Validate(); err != nil {
		s.metrics.RecordValidationReject()
		span.RecordError(err)
		return err
	}

	if err := s.store.Append(ctx, record); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.RecordConflict()
			return pkgerrors.Wrap(err, pkgerrors.CodeConflict, "event "+record.ID+" already recorded")
		}
		return pkgerrors.Wrap(err, pkgerrors.CodeUnavailable, "append event "+record.ID)
	}

	s.metrics.RecordAppend()
	s.logger.Debug("event appended", "event_id", record.ID, "event_type", record.EventType)
	return nil
}

// PutRaw records the full payload of one event, with the same conflict
// semantics as Append.
func (s *Service) PutRaw(ctx context.Context, event RawEvent) error {
	ctx, span := s.tracer.Start(ctx, "eventlog.PutRaw")
	defer span.End()

	if s.raw == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "raw store not configured")
	}
	if err := event.Validate(); err != nil {
		s.metrics.RecordValidationReject()
		span.RecordError(err)
		return err
	}

	if err := s.raw.Put(ctx, event); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.RecordConflict()
			return pkgerrors.Wrap(err, pkgerrors.CodeConflict, "raw event "+event.ID+" already recorded")
		}
		return pkgerrors.Wrap(err, pkgerrors.CodeUnavailable, "put raw event "+event.ID)
	}
	return nil
}

// LookupByEmail returns the time-ordered records for one customer email.
func (s *Service) LookupByEmail(ctx context.Context, email string) ([]Record, error) {
	ctx, span := s.tracer.Start(ctx, "eventlog.LookupByEmail")
	defer span.End()

	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(email) > MaxEmailLen {
		// An over-long email can never have been stored; reject rather
		// than scan for a value that cannot exist.
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email exceeds stored width")
	}

	start := time.Now()
	records, err := s.store.LookupByEmail(ctx, email)
	s.metrics.ObserveLookup("email", time.Since(start))
	if err != nil {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeUnavailable, "lookup by email")
	}
	return records, nil
}

// LookupByType returns the time-ordered records for one event type.
func (s *Service) LookupByType(ctx context.Context, eventType string) ([]Record, error) {
	ctx, span := s.tracer.Start(ctx, "eventlog.LookupByType")
	defer span.End()

	if eventType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event type is required")
	}

	start := time.Now()
	records, err := s.store.LookupByType(ctx, eventType)
	s.metrics.ObserveLookup("event_type", time.Since(start))
	if err != nil {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeUnavailable, "lookup by type")
	}
	return records, nil
}

// LookupByTimeRange returns records with start <= event_datetime < end.
func (s *Service) LookupByTimeRange(ctx context.Context, from, to time.Time) ([]Record, error) {
	ctx, span := s.tracer.Start(ctx, "eventlog.LookupByTimeRange")
	defer span.End()

	if from.IsZero() || to.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "both range bounds are required")
	}
	if !from.Before(to) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "range start must precede range end")
	}

	start := time.Now()
	records, err := s.store.LookupByTimeRange(ctx, from, to)
	s.metrics.ObserveLookup("event_datetime", time.Since(start))
	if err != nil {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeUnavailable, "lookup by time range")
	}
	return records, nil
}

// ListRawByObjectSince returns raw payloads for one object type from a
// minimum unix timestamp onward, the shape reporting pulls consume.
func (s *Service) ListRawByObjectSince(ctx context.Context, object string, minUnix int64) ([]RawEvent, error) {
	ctx, span := s.tracer.Start(ctx, "eventlog.ListRawByObjectSince")
	defer span.End()

	if s.raw == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "raw store not configured")
	}
	if object == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "object is required")
	}

	events, err := s.raw.ListByObjectSince(ctx, object, minUnix)
	if err != nil {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeUnavailable, "list raw events")
	}
	return events, nil
}

// Summary describes the current content of the log for operators.
type Summary struct {
	Bounds       Bounds
	CountsByType map[string]int64
}

// Summarize gathers log-wide counts and time bounds. The two queries are
// independent, so they run concurrently and share cancellation.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	ctx, span := s.tracer.Start(ctx, "eventlog.Summarize")
	defer span.End()

	var summary Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.store.CountByType(ctx)
		if err != nil {
			return err
		}
		summary.CountsByType = counts
		return nil
	})
	g.Go(func() error {
		bounds, err := s.store.Bounds(ctx)
		if err != nil {
			return err
		}
		summary.Bounds = bounds
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return Summary{}, pkgerrors.Wrap(err, pkgerrors.CodeUnavailable, "summarize event log")
	}
	return summary, nil
}
