/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sync

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

var (
	errMissingRunner     = errors.New("service requires a cycle runner")
	errMissingCollectors = errors.New("service requires a collector source")
	errInvalidInterval   = errors.New("poll interval must be positive")
	errAlreadyStarted    = errors.New("service already started")
)

// CollectorSource returns the collector identity for the next cycle. It is
// called once per cycle so configuration changes are picked up between
// cycles.
type CollectorSource func(ctx context.Context) (*models.Collector, error)

// Service runs collection cycles on a fixed interval. One cycle runs as soon
// as the service starts. A tick that arrives while a cycle is still running
// is skipped.
type Service struct {
	runner     CycleRunner
	collectors CollectorSource
	interval   time.Duration
	clock      Clock
	logger     logger.Logger

	running atomic.Bool
	skipped atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService returns a Service. clock may be nil.
func NewService(
	runner CycleRunner, collectors CollectorSource, interval time.Duration, clock Clock, log logger.Logger,
) (*Service, error) {
	if runner == nil {
		return nil, errMissingRunner
	}

	if collectors == nil {
		return nil, errMissingCollectors
	}

	if interval <= 0 {
		return nil, errInvalidInterval
	}

	if clock == nil {
		clock = realClock{}
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Service{
		runner:     runner,
		collectors: collectors,
		interval:   interval,
		clock:      clock,
		logger:     log,
	}, nil
}

// Start launches the polling loop and returns. The loop stops when ctx is
// cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return errAlreadyStarted
	}

	ctx, s.cancel = context.WithCancel(ctx)

	s.logger.Info().Dur("interval", s.interval).Msg("Starting qualitysync service")

	ticker := s.clock.Ticker(s.interval)

	s.trigger(ctx)

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				s.trigger(ctx)
			}
		}
	}()

	return nil
}

// Stop cancels the polling loop and any running cycle, then waits for both
// to return or for ctx to expire.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	s.logger.Info().Msg("Stopping qualitysync service")

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SkippedTicks returns how many ticks were skipped because a cycle was
// still running.
func (s *Service) SkippedTicks() int64 {
	return s.skipped.Load()
}

// trigger starts a cycle in the background unless one is running.
func (s *Service) trigger(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.skipped.Add(1)
		s.logger.Warn().Msg("Previous cycle still running, skipping tick")

		return
	}

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer s.running.Store(false)

		s.runOnce(ctx)
	}()
}

func (s *Service) runOnce(ctx context.Context) {
	collector, err := s.collectors(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load collector configuration")
		return
	}

	start := s.clock.Now()

	if err := s.runner.RunCycle(ctx, collector); err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Info().Str("collector_id", collector.ID).Msg("Cycle cancelled")
			return
		}

		s.logger.Error().
			Err(err).
			Str("collector_id", collector.ID).
			Dur("elapsed", s.clock.Now().Sub(start)).
			Msg("Cycle failed")

		return
	}

	s.logger.Info().
		Str("collector_id", collector.ID).
		Dur("elapsed", s.clock.Now().Sub(start)).
		Msg("Cycle completed")
}
