// Package sampler runs the background loop that pulls a snapshot from the
// metrics provider once per second and stores it in the shared state.
package sampler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/telemetry"
)

// Interval is the fixed time between samples. Not configurable.
const Interval = time.Second

// Store is the write side of the shared state.
type Store interface {
	Update(snap *telemetry.Snapshot) error
}

// Sampler pulls snapshots from a Provider into a Store.
type Sampler struct {
	provider telemetry.Provider
	store    Store
	log      logger.Logger

	// After a failure is logged, identical reports are suppressed for a while
	// so a persistently broken provider doesn't flood the log.
	throttle rate.Sometimes

	interval time.Duration
	samples  atomic.Uint64
	skipped  atomic.Uint64
}

// New creates a sampler. A nil logger discards output.
func New(provider telemetry.Provider, store Store, log logger.Logger) *Sampler {
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{
		provider: provider,
		store:    store,
		log:      log,
		throttle: rate.Sometimes{First: 3, Interval: 30 * time.Second},
		interval: Interval,
	}
}

// Run samples immediately and then once per interval until ctx is done.
// Failed cycles are logged and skipped; there is no retry.
func (s *Sampler) Run(ctx context.Context) {
	s.log.Debug("sampler started, interval %s", s.interval)
	defer s.log.Debug("sampler stopped after %d samples (%d skipped)", s.samples.Load(), s.skipped.Load())

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := s.Step(ctx); err != nil && ctx.Err() == nil {
			s.skipped.Add(1)
			s.throttle.Do(func() {
				s.log.Warn("skipping sample: %v", err)
			})
		}

		timer.Reset(s.interval)
	}
}

// Step takes one sample and stores it. A provider that panics fails the
// cycle like any other provider error.
func (s *Sampler) Step(ctx context.Context) error {
	snap, err := s.sample(ctx)
	if err != nil {
		return errors.Wrap(err, "Failed to sample host metrics")
	}
	if snap == nil {
		return errors.New(errors.ErrProvider, "Metrics provider returned no data", "")
	}
	if err := s.store.Update(snap); err != nil {
		return err
	}
	s.samples.Add(1)
	return nil
}

func (s *Sampler) sample(ctx context.Context) (snap *telemetry.Snapshot, err error) {
	defer func() {
		if p := recover(); p != nil {
			snap, err = nil, fmt.Errorf("provider panicked: %v", p)
		}
	}()
	return s.provider.Sample(ctx)
}

// Stats reports how many cycles stored a snapshot and how many were skipped.
func (s *Sampler) Stats() (samples, skipped uint64) {
	return s.samples.Load(), s.skipped.Load()
}
