// Package register orchestrates distribution assessments and the append-only
// pressure register. It owns the ports the storage and export adapters plug
// into, so the medium behind the register (flat file, database, remote
// service) is swappable without touching the calculator or the HTTP layer.
package register

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/jacket-load-service/internal/domain"
	"github.com/couchcryptid/jacket-load-service/internal/observability"
)

// RecordStore is the append-only log behind the pressure register.
type RecordStore interface {
	// Append durably persists one reading, preserving all prior rows.
	// Must be safe to call when no storage exists yet.
	Append(ctx context.Context, reading domain.Reading) error

	// LoadAll returns every stored reading in insertion order. An empty
	// register yields an empty slice, not an error.
	LoadAll(ctx context.Context) ([]domain.Reading, error)
}

// Publisher exports a saved reading to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, reading domain.Reading) error
}

// Assessment is one evaluation of a pressure set against a jacket's minimum
// targets.
type Assessment struct {
	JacketID     string                 `json:"jacket_id"`
	Case         domain.Case            `json:"case"`
	Targets      map[domain.Leg]float64 `json:"targets"`
	Distribution domain.Distribution    `json:"distribution"`
	Pass         bool                   `json:"pass"`
}

// Service wires the calculator, the record store, and the optional export
// publisher together.
type Service struct {
	store     RecordStore
	publisher Publisher // nil when Kafka export is disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Service. Pass a nil publisher to disable reading export.
func New(store RecordStore, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Evaluate computes the load distribution for the given pressures against
// the jacket's minimum targets. No side effects beyond metrics.
func (s *Service) Evaluate(jacketID string, c domain.Case, pressures map[domain.Leg]float64) (Assessment, error) {
	targets, err := domain.Targets(jacketID, c)
	if err != nil {
		return Assessment{}, err
	}

	dist, err := domain.ComputeDistribution(pressures, targets)
	if err != nil {
		return Assessment{}, err
	}

	s.metrics.Assessments.Inc()
	if !dist.Pass() {
		s.metrics.AssessmentsFailed.Inc()
		s.logger.Info("legs below minimum target",
			"jacket", jacketID,
			"case", c,
			"legs", dist.LegsBelowMinimum,
			"total_pressure", dist.TotalPressure,
		)
	}

	return Assessment{
		JacketID:     jacketID,
		Case:         c,
		Targets:      targets,
		Distribution: dist,
		Pass:         dist.Pass(),
	}, nil
}

// Save evaluates the pressures, stamps a reading with the current time, and
// appends it to the register. The append failure propagates to the caller;
// a failed Kafka export does not — the register is the system of record and
// export is best-effort.
func (s *Service) Save(ctx context.Context, jacketID string, c domain.Case, pressures map[domain.Leg]float64) (domain.Reading, Assessment, error) {
	assessment, err := s.Evaluate(jacketID, c, pressures)
	if err != nil {
		return domain.Reading{}, Assessment{}, err
	}

	reading := domain.NewReading(jacketID, c, pressures)

	start := time.Now()
	if err := s.store.Append(ctx, reading); err != nil {
		s.metrics.AppendErrors.Inc()
		return domain.Reading{}, Assessment{}, fmt.Errorf("save reading: %w", err)
	}
	s.metrics.AppendDuration.Observe(time.Since(start).Seconds())
	s.metrics.ReadingsAppended.Inc()

	s.export(ctx, reading)

	return reading, assessment, nil
}

// History returns every stored reading in register order.
func (s *Service) History(ctx context.Context) ([]domain.Reading, error) {
	readings, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load register history: %w", err)
	}
	s.metrics.HistoryReads.Inc()
	return readings, nil
}

// CheckReadiness probes the register storage. Used by /readyz.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if _, err := s.store.LoadAll(ctx); err != nil {
		return fmt.Errorf("register storage not reachable: %w", err)
	}
	return nil
}

func (s *Service) export(ctx context.Context, reading domain.Reading) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, reading); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("reading export failed",
			"error", err,
			"jacket", reading.JacketID,
			"case", reading.Case,
		)
		return
	}
	s.metrics.ReadingsPublished.Inc()
}
