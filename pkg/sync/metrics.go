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
	"sync"
	"time"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
	"github.com/carverauto/qualitysync/pkg/sonar"
)

// Metrics defines the interface for collecting sync service metrics
type Metrics interface {
	// Per-server discovery
	RecordDiscoveryAttempt(server string)
	RecordDiscoverySuccess(server string, projectCount int, duration time.Duration)
	RecordDiscoveryFailure(server string, err error, duration time.Duration)

	// Per-server phases
	RecordProjectsIngested(server string, created, updated int)
	RecordQualityUpdated(server string, count int)
	RecordConfigChanges(server string, count int)
	RecordChangeHistoryFailure(server string, err error)

	// Reconciliation
	RecordStateChanges(collectorID string, count int)
	RecordProjectsDeleted(collectorID string, count int)
	RecordCycle(summary *models.CycleSummary, duration time.Duration, err error)

	// API and circuit breaker metrics
	sonar.APIMetrics

	// Export metrics for monitoring systems
	GetMetrics() map[string]interface{}
}

// NoOpMetrics provides a no-op implementation of the Metrics interface
type NoOpMetrics struct{}

func (*NoOpMetrics) RecordDiscoveryAttempt(string)                          {}
func (*NoOpMetrics) RecordDiscoverySuccess(string, int, time.Duration)      {}
func (*NoOpMetrics) RecordDiscoveryFailure(string, error, time.Duration)    {}
func (*NoOpMetrics) RecordProjectsIngested(string, int, int)                {}
func (*NoOpMetrics) RecordQualityUpdated(string, int)                       {}
func (*NoOpMetrics) RecordConfigChanges(string, int)                        {}
func (*NoOpMetrics) RecordChangeHistoryFailure(string, error)               {}
func (*NoOpMetrics) RecordStateChanges(string, int)                         {}
func (*NoOpMetrics) RecordProjectsDeleted(string, int)                      {}
func (*NoOpMetrics) RecordCycle(*models.CycleSummary, time.Duration, error) {}
func (*NoOpMetrics) RecordAPICall(string, string)                           {}
func (*NoOpMetrics) RecordAPISuccess(string, string, time.Duration)         {}
func (*NoOpMetrics) RecordAPIFailure(string, string, int, time.Duration)    {}
func (*NoOpMetrics) RecordCircuitBreakerStateChange(string, string, string) {}
func (*NoOpMetrics) GetMetrics() map[string]interface{}                     { return map[string]interface{}{} }

// InMemoryMetrics keeps counters in memory and logs notable events. It backs
// status reporting when no OTel exporter is configured.
type InMemoryMetrics struct {
	mu     sync.RWMutex
	logger logger.Logger

	// Discovery metrics
	discoveryAttempts map[string]int
	discoverySuccess  map[string]int
	discoveryFailures map[string]int
	discoveryDuration map[string]time.Duration
	projectsFetched   map[string]int

	// Phase metrics
	projectsCreated  map[string]int
	projectsUpdated  map[string]int
	qualityUpdated   map[string]int
	configChanges    map[string]int
	historyFailures  map[string]int
	stateChanges     map[string]int
	projectsDeleted  map[string]int
	cycles           int
	cycleFailures    int
	deletesSkipped   int
	lastCycleElapsed time.Duration

	// API metrics
	apiCalls    map[string]int
	apiSuccess  map[string]int
	apiFailures map[string]int
	apiDuration map[string]time.Duration

	// Circuit breaker metrics
	circuitBreakerStates map[string]string

	lastUpdated time.Time
}

// NewInMemoryMetrics creates a new in-memory metrics collector
func NewInMemoryMetrics(log logger.Logger) *InMemoryMetrics {
	return &InMemoryMetrics{
		logger:               log,
		discoveryAttempts:    make(map[string]int),
		discoverySuccess:     make(map[string]int),
		discoveryFailures:    make(map[string]int),
		discoveryDuration:    make(map[string]time.Duration),
		projectsFetched:      make(map[string]int),
		projectsCreated:      make(map[string]int),
		projectsUpdated:      make(map[string]int),
		qualityUpdated:       make(map[string]int),
		configChanges:        make(map[string]int),
		historyFailures:      make(map[string]int),
		stateChanges:         make(map[string]int),
		projectsDeleted:      make(map[string]int),
		apiCalls:             make(map[string]int),
		apiSuccess:           make(map[string]int),
		apiFailures:          make(map[string]int),
		apiDuration:          make(map[string]time.Duration),
		circuitBreakerStates: make(map[string]string),
		lastUpdated:          time.Now(),
	}
}

func (m *InMemoryMetrics) RecordDiscoveryAttempt(server string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discoveryAttempts[server]++
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordDiscoverySuccess(server string, projectCount int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discoverySuccess[server]++
	m.discoveryDuration[server] = duration
	m.projectsFetched[server] = projectCount
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordDiscoveryFailure(server string, err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discoveryFailures[server]++
	m.discoveryDuration[server] = duration
	m.lastUpdated = time.Now()

	m.logger.Error().
		Str("server", server).
		Err(err).
		Dur("duration", duration).
		Msg("Discovery failed")
}

func (m *InMemoryMetrics) RecordProjectsIngested(server string, created, updated int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projectsCreated[server] += created
	m.projectsUpdated[server] += updated
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordQualityUpdated(server string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.qualityUpdated[server] += count
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordConfigChanges(server string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configChanges[server] += count
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordChangeHistoryFailure(server string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyFailures[server]++
	m.lastUpdated = time.Now()

	m.logger.Warn().
		Str("server", server).
		Err(err).
		Msg("Change history tracking failed")
}

func (m *InMemoryMetrics) RecordStateChanges(collectorID string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stateChanges[collectorID] += count
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordProjectsDeleted(collectorID string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projectsDeleted[collectorID] += count
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordCycle(summary *models.CycleSummary, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles++
	m.lastCycleElapsed = duration

	if err != nil {
		m.cycleFailures++
	}

	if summary != nil && summary.DeleteSkipped {
		m.deletesSkipped++
	}

	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordAPICall(server, endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiCalls[server+":"+endpoint]++
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordAPISuccess(server, endpoint string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := server + ":" + endpoint
	m.apiSuccess[key]++
	m.apiDuration[key] = duration
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordAPIFailure(server, endpoint string, statusCode int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := server + ":" + endpoint
	m.apiFailures[key]++
	m.apiDuration[key] = duration
	m.lastUpdated = time.Now()

	m.logger.Warn().
		Str("server", server).
		Str("endpoint", endpoint).
		Int("status_code", statusCode).
		Dur("duration", duration).
		Msg("API call failed")
}

func (m *InMemoryMetrics) RecordCircuitBreakerStateChange(name, oldState, newState string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.circuitBreakerStates[name] = newState
	m.lastUpdated = time.Now()

	m.logger.Info().
		Str("circuit_breaker", name).
		Str("old_state", oldState).
		Str("new_state", newState).
		Msg("Circuit breaker state changed")
}

// GetMetrics returns a snapshot of all counters.
func (m *InMemoryMetrics) GetMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"discovery": map[string]interface{}{
			"attempts":           copyIntMap(m.discoveryAttempts),
			"successes":          copyIntMap(m.discoverySuccess),
			"failures":           copyIntMap(m.discoveryFailures),
			"projects_by_server": copyIntMap(m.projectsFetched),
			"durations":          copyDurationMap(m.discoveryDuration),
		},
		"phases": map[string]interface{}{
			"created":          copyIntMap(m.projectsCreated),
			"updated":          copyIntMap(m.projectsUpdated),
			"quality_updated":  copyIntMap(m.qualityUpdated),
			"config_changes":   copyIntMap(m.configChanges),
			"history_failures": copyIntMap(m.historyFailures),
		},
		"reconciliation": map[string]interface{}{
			"state_changes":      copyIntMap(m.stateChanges),
			"deleted":            copyIntMap(m.projectsDeleted),
			"cycles":             m.cycles,
			"cycle_failures":     m.cycleFailures,
			"deletes_skipped":    m.deletesSkipped,
			"last_cycle_elapsed": m.lastCycleElapsed,
		},
		"api": map[string]interface{}{
			"calls":     copyIntMap(m.apiCalls),
			"successes": copyIntMap(m.apiSuccess),
			"failures":  copyIntMap(m.apiFailures),
			"durations": copyDurationMap(m.apiDuration),
		},
		"circuit_breakers": copyStringMap(m.circuitBreakerStates),
		"last_updated":     m.lastUpdated,
	}
}

func copyIntMap(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}

func copyDurationMap(src map[string]time.Duration) map[string]time.Duration {
	dst := make(map[string]time.Duration, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}

func copyStringMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}
