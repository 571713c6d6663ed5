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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

type serviceHarness struct {
	runner *MockCycleRunner
	clock  *MockClock
	ticks  chan time.Time
}

func newServiceHarness(t *testing.T, interval time.Duration) *serviceHarness {
	t.Helper()

	ctrl := gomock.NewController(t)

	h := &serviceHarness{
		runner: NewMockCycleRunner(ctrl),
		clock:  NewMockClock(ctrl),
		ticks:  make(chan time.Time),
	}

	ticker := NewMockTicker(ctrl)

	var recv <-chan time.Time = h.ticks

	h.clock.EXPECT().Ticker(interval).Return(ticker)
	h.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	ticker.EXPECT().Chan().Return(recv).AnyTimes()
	ticker.EXPECT().Stop()

	return h
}

func staticSource(id string) CollectorSource {
	return func(context.Context) (*models.Collector, error) {
		return &models.Collector{ID: id}, nil
	}
}

func TestNewServiceValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := NewMockCycleRunner(ctrl)
	log := logger.NewTestLogger()

	_, err := NewService(nil, staticSource("c"), time.Minute, nil, log)
	require.ErrorIs(t, err, errMissingRunner)

	_, err = NewService(runner, nil, time.Minute, nil, log)
	require.ErrorIs(t, err, errMissingCollectors)

	_, err = NewService(runner, staticSource("c"), 0, nil, log)
	require.ErrorIs(t, err, errInvalidInterval)

	svc, err := NewService(runner, staticSource("c"), time.Minute, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc.clock)
}

func TestServiceRunsImmediatelyAndOnEveryTick(t *testing.T) {
	h := newServiceHarness(t, time.Hour)

	calls := make(chan string, 4)

	h.runner.EXPECT().
		RunCycle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Collector) error {
			calls <- c.ID
			return nil
		}).
		Times(2)

	svc, err := NewService(h.runner, staticSource("collector-1"), time.Hour, h.clock, logger.NewTestLogger())
	require.NoError(t, err)

	require.NoError(t, svc.Start(context.Background()))

	select {
	case id := <-calls:
		assert.Equal(t, "collector-1", id)
	case <-time.After(time.Second):
		t.Fatal("no cycle on start")
	}

	h.ticks <- time.Now()

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("no cycle on tick")
	}

	require.NoError(t, svc.Stop(context.Background()))
	assert.Zero(t, svc.SkippedTicks())
}

func TestServiceSkipsTicksWhileCycleRuns(t *testing.T) {
	h := newServiceHarness(t, time.Minute)

	started := make(chan struct{}, 1)
	release := make(chan struct{})

	h.runner.EXPECT().
		RunCycle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *models.Collector) error {
			started <- struct{}{}
			<-release

			return nil
		}).
		Times(1)

	svc, err := NewService(h.runner, staticSource("collector-1"), time.Minute, h.clock, logger.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))

	<-started

	h.ticks <- time.Now()

	require.Eventually(t, func() bool { return svc.SkippedTicks() == 1 }, time.Second, 5*time.Millisecond)

	close(release)
	require.NoError(t, svc.Stop(context.Background()))
}

func TestServiceStopCancelsRunningCycle(t *testing.T) {
	h := newServiceHarness(t, time.Minute)

	started := make(chan struct{})

	h.runner.EXPECT().
		RunCycle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *models.Collector) error {
			close(started)
			<-ctx.Done()

			return ctx.Err()
		})

	svc, err := NewService(h.runner, staticSource("collector-1"), time.Minute, h.clock, logger.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	require.ErrorIs(t, svc.Start(context.Background()), errAlreadyStarted)

	<-started

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, svc.Stop(ctx))
}

func TestServiceSkipsCycleWhenCollectorUnavailable(t *testing.T) {
	h := newServiceHarness(t, time.Minute)

	loaded := make(chan struct{})
	source := func(context.Context) (*models.Collector, error) {
		close(loaded)
		return nil, errors.New("config unreadable")
	}

	svc, err := NewService(h.runner, source, time.Minute, h.clock, logger.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))

	<-loaded

	require.NoError(t, svc.Stop(context.Background()))
}
