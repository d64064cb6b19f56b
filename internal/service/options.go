package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/innkeeper/internal/metrics"
	"github.com/mmynk/innkeeper/internal/storage"
)

// CorruptionHandler is called when a store finds its persisted data
// unreadable and continues with an empty mapping.
type CorruptionHandler func(*storage.CorruptError)

// Option configures a HotelStore or CustomerStore.
type Option func(*options)

type options struct {
	metrics   *metrics.Metrics
	onCorrupt CorruptionHandler
}

// WithMetrics records operation counts and durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithCorruptionHandler lets the caller inspect corruption warnings.
// They are always logged.
func WithCorruptionHandler(h CorruptionHandler) Option {
	return func(o *options) { o.onCorrupt = h }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// observe records a finished operation; call it deferred with a pointer to
// the named error result.
func (o *options) observe(store, operation string, start time.Time, errp *error) {
	o.metrics.ObserveOperation(store, operation, Kind(*errp), time.Since(start))
}

// load reads the full mapping for store. Corrupt data degrades to an empty
// mapping plus a warning instead of failing the operation.
func load[T any](ctx context.Context, backend storage.Backend[T], store string, o *options) (map[string]T, error) {
	records, err := backend.Load(ctx)

	var corrupt *storage.CorruptError
	if errors.As(err, &corrupt) {
		slog.Warn("Store data corrupted, continuing with empty store",
			"store", store,
			"location", corrupt.Location,
			"error", corrupt.Err,
		)
		o.metrics.ObserveCorruption(store)
		if o.onCorrupt != nil {
			o.onCorrupt(corrupt)
		}
		return map[string]T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", store, err)
	}

	if records == nil {
		records = map[string]T{}
	}
	return records, nil
}

func save[T any](ctx context.Context, backend storage.Backend[T], store string, records map[string]T) error {
	if err := backend.Save(ctx, records); err != nil {
		return fmt.Errorf("failed to save %s: %w", store, err)
	}
	return nil
}
