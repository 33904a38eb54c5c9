package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/metrics"
)

// MultiStore writes the deployment record to a primary store and then to
// any number of mirrors. Only the primary is authoritative: its failure fails
// Save, mirror failures are logged.
type MultiStore struct {
	primary interfaces.RecordStore
	mirrors []interfaces.RecordStore
	log     *slog.Logger
}

// NewMultiStore creates a multi-store around primary.
func NewMultiStore(primary interfaces.RecordStore, mirrors []interfaces.RecordStore, logger *slog.Logger) *MultiStore {
	// If no logger is provided, create a default one
	if logger == nil {
		logger = slog.Default()
	}

	return &MultiStore{
		primary: primary,
		mirrors: mirrors,
		log:     logger,
	}
}

// Save writes the record to the primary store, then to every available mirror.
// Mirrors are not attempted when the primary fails.
func (m *MultiStore) Save(ctx context.Context, record *interfaces.DeploymentRecord) error {
	start := time.Now()

	err := m.primary.Save(ctx, record)
	metrics.RecordSaves.WithLabelValues(m.primary.Name(), metrics.Result(err)).Inc()
	if err != nil {
		m.log.Error("Failed to store deployment record",
			slog.String("backend_name", m.primary.Name()),
			"err", err)
		return fmt.Errorf("%s: %w", m.primary.Name(), err)
	}

	var failed int
	for _, mirror := range m.mirrors {
		if !mirror.Available(ctx) {
			m.log.Warn("Mirror unavailable, skipping", slog.String("backend_name", mirror.Name()))
			metrics.RecordSaves.WithLabelValues(mirror.Name(), "unavailable").Inc()
			failed++
			continue
		}

		err := mirror.Save(ctx, record)
		metrics.RecordSaves.WithLabelValues(mirror.Name(), metrics.Result(err)).Inc()
		if err != nil {
			m.log.Warn("Failed to mirror deployment record",
				slog.String("backend_name", mirror.Name()),
				"err", err)
			failed++
		}
	}

	m.log.Info("Stored deployment record",
		slog.String("primary", m.primary.LocationURI()),
		slog.Int("mirrors", len(m.mirrors)),
		slog.Int("failed_mirrors", failed),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Load returns the record from the first store that can read it back,
// trying the primary first.
func (m *MultiStore) Load(ctx context.Context) (*interfaces.DeploymentRecord, error) {
	var errs []error
	for _, store := range append([]interfaces.RecordStore{m.primary}, m.mirrors...) {
		loader, ok := store.(interfaces.RecordLoader)
		if !ok {
			continue
		}

		record, err := loader.Load(ctx)
		if err == nil {
			return record, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", store.Name(), err))
		m.log.Debug("Failed to load from backend",
			slog.String("backend_name", store.Name()),
			"err", err)
	}

	if len(errs) == 0 {
		return nil, interfaces.ErrRecordNotFound
	}
	return nil, fmt.Errorf("all backends failed to load the deployment record: %w", errors.Join(errs...))
}

// Available reports whether the primary store is available.
func (m *MultiStore) Available(ctx context.Context) bool {
	return m.primary.Available(ctx)
}

// Name returns the name of this store
func (m *MultiStore) Name() string {
	return "multi-store"
}

// LocationURI returns the combined URI of the primary and all mirrors.
func (m *MultiStore) LocationURI() string {
	locations := []string{m.primary.LocationURI()}
	for _, mirror := range m.mirrors {
		locations = append(locations, mirror.LocationURI())
	}
	return "multi:[" + strings.Join(locations, ",") + "]"
}
