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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/carverauto/qualitysync/pkg/models"
)

const meterName = "github.com/carverauto/qualitysync/pkg/sync"

// OTelMetrics exports sync metrics through an OpenTelemetry meter and keeps
// the in-memory view for GetMetrics.
type OTelMetrics struct {
	*InMemoryMetrics

	discoveries    metric.Int64Counter
	discoveryTime  metric.Float64Histogram
	projects       metric.Int64Counter
	quality        metric.Int64Counter
	configChanges  metric.Int64Counter
	historyErrors  metric.Int64Counter
	stateChanges   metric.Int64Counter
	deleted        metric.Int64Counter
	cycles         metric.Int64Counter
	cycleTime      metric.Float64Histogram
	apiCalls       metric.Int64Counter
	apiTime        metric.Float64Histogram
	breakerChanges metric.Int64Counter
}

// NewOTelMetrics registers the sync instruments on provider.
func NewOTelMetrics(provider metric.MeterProvider, inMemory *InMemoryMetrics) (*OTelMetrics, error) {
	meter := provider.Meter(meterName)

	m := &OTelMetrics{InMemoryMetrics: inMemory}

	var err, e error

	m.discoveries, e = meter.Int64Counter("qualitysync.discovery.runs",
		metric.WithDescription("Project discovery runs per server and outcome"))
	err = errors.Join(err, e)

	m.discoveryTime, e = meter.Float64Histogram("qualitysync.discovery.duration",
		metric.WithDescription("Project discovery duration"), metric.WithUnit("s"))
	err = errors.Join(err, e)

	m.projects, e = meter.Int64Counter("qualitysync.projects.ingested",
		metric.WithDescription("Project records created or updated"))
	err = errors.Join(err, e)

	m.quality, e = meter.Int64Counter("qualitysync.quality.observations",
		metric.WithDescription("Quality observations stored"))
	err = errors.Join(err, e)

	m.configChanges, e = meter.Int64Counter("qualitysync.config_history.events",
		metric.WithDescription("Quality profile change events stored"))
	err = errors.Join(err, e)

	m.historyErrors, e = meter.Int64Counter("qualitysync.config_history.failures",
		metric.WithDescription("Change history tracking failures per server"))
	err = errors.Join(err, e)

	m.stateChanges, e = meter.Int64Counter("qualitysync.projects.state_changes",
		metric.WithDescription("Project records enabled or disabled"))
	err = errors.Join(err, e)

	m.deleted, e = meter.Int64Counter("qualitysync.projects.deleted",
		metric.WithDescription("Project records deleted"))
	err = errors.Join(err, e)

	m.cycles, e = meter.Int64Counter("qualitysync.cycles",
		metric.WithDescription("Collection cycles per outcome"))
	err = errors.Join(err, e)

	m.cycleTime, e = meter.Float64Histogram("qualitysync.cycle.duration",
		metric.WithDescription("Collection cycle duration"), metric.WithUnit("s"))
	err = errors.Join(err, e)

	m.apiCalls, e = meter.Int64Counter("qualitysync.api.calls",
		metric.WithDescription("Remote API calls per server, endpoint and outcome"))
	err = errors.Join(err, e)

	m.apiTime, e = meter.Float64Histogram("qualitysync.api.duration",
		metric.WithDescription("Remote API call duration"), metric.WithUnit("s"))
	err = errors.Join(err, e)

	m.breakerChanges, e = meter.Int64Counter("qualitysync.circuit_breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions"))
	err = errors.Join(err, e)

	if err != nil {
		return nil, err
	}

	return m, nil
}

func serverAttr(server string) attribute.KeyValue {
	return attribute.String("server", server)
}

func outcomeAttr(ok bool) attribute.KeyValue {
	if ok {
		return attribute.String("outcome", "success")
	}

	return attribute.String("outcome", "failure")
}

func (m *OTelMetrics) RecordDiscoverySuccess(server string, projectCount int, duration time.Duration) {
	m.InMemoryMetrics.RecordDiscoverySuccess(server, projectCount, duration)

	attrs := metric.WithAttributes(serverAttr(server), outcomeAttr(true))
	m.discoveries.Add(context.Background(), 1, attrs)
	m.discoveryTime.Record(context.Background(), duration.Seconds(), attrs)
}

func (m *OTelMetrics) RecordDiscoveryFailure(server string, err error, duration time.Duration) {
	m.InMemoryMetrics.RecordDiscoveryFailure(server, err, duration)

	attrs := metric.WithAttributes(serverAttr(server), outcomeAttr(false))
	m.discoveries.Add(context.Background(), 1, attrs)
	m.discoveryTime.Record(context.Background(), duration.Seconds(), attrs)
}

func (m *OTelMetrics) RecordProjectsIngested(server string, created, updated int) {
	m.InMemoryMetrics.RecordProjectsIngested(server, created, updated)

	m.projects.Add(context.Background(), int64(created),
		metric.WithAttributes(serverAttr(server), attribute.String("action", "created")))
	m.projects.Add(context.Background(), int64(updated),
		metric.WithAttributes(serverAttr(server), attribute.String("action", "updated")))
}

func (m *OTelMetrics) RecordQualityUpdated(server string, count int) {
	m.InMemoryMetrics.RecordQualityUpdated(server, count)
	m.quality.Add(context.Background(), int64(count), metric.WithAttributes(serverAttr(server)))
}

func (m *OTelMetrics) RecordConfigChanges(server string, count int) {
	m.InMemoryMetrics.RecordConfigChanges(server, count)
	m.configChanges.Add(context.Background(), int64(count), metric.WithAttributes(serverAttr(server)))
}

func (m *OTelMetrics) RecordChangeHistoryFailure(server string, err error) {
	m.InMemoryMetrics.RecordChangeHistoryFailure(server, err)
	m.historyErrors.Add(context.Background(), 1, metric.WithAttributes(serverAttr(server)))
}

func (m *OTelMetrics) RecordStateChanges(collectorID string, count int) {
	m.InMemoryMetrics.RecordStateChanges(collectorID, count)
	m.stateChanges.Add(context.Background(), int64(count),
		metric.WithAttributes(attribute.String("collector_id", collectorID)))
}

func (m *OTelMetrics) RecordProjectsDeleted(collectorID string, count int) {
	m.InMemoryMetrics.RecordProjectsDeleted(collectorID, count)
	m.deleted.Add(context.Background(), int64(count),
		metric.WithAttributes(attribute.String("collector_id", collectorID)))
}

func (m *OTelMetrics) RecordCycle(summary *models.CycleSummary, duration time.Duration, err error) {
	m.InMemoryMetrics.RecordCycle(summary, duration, err)

	attrs := []attribute.KeyValue{outcomeAttr(err == nil)}
	if summary != nil {
		attrs = append(attrs,
			attribute.String("collector_id", summary.CollectorID),
			attribute.Bool("delete_skipped", summary.DeleteSkipped))
	}

	opt := metric.WithAttributes(attrs...)
	m.cycles.Add(context.Background(), 1, opt)
	m.cycleTime.Record(context.Background(), duration.Seconds(), opt)
}

func (m *OTelMetrics) RecordAPISuccess(server, endpoint string, duration time.Duration) {
	m.InMemoryMetrics.RecordAPISuccess(server, endpoint, duration)

	attrs := metric.WithAttributes(serverAttr(server), attribute.String("endpoint", endpoint), outcomeAttr(true))
	m.apiCalls.Add(context.Background(), 1, attrs)
	m.apiTime.Record(context.Background(), duration.Seconds(), attrs)
}

func (m *OTelMetrics) RecordAPIFailure(server, endpoint string, statusCode int, duration time.Duration) {
	m.InMemoryMetrics.RecordAPIFailure(server, endpoint, statusCode, duration)

	attrs := metric.WithAttributes(
		serverAttr(server),
		attribute.String("endpoint", endpoint),
		attribute.Int("status_code", statusCode),
		outcomeAttr(false),
	)
	m.apiCalls.Add(context.Background(), 1, attrs)
	m.apiTime.Record(context.Background(), duration.Seconds(), attrs)
}

func (m *OTelMetrics) RecordCircuitBreakerStateChange(name, oldState, newState string) {
	m.InMemoryMetrics.RecordCircuitBreakerStateChange(name, oldState, newState)
	m.breakerChanges.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("circuit_breaker", name),
		attribute.String("from", oldState),
		attribute.String("to", newState),
	))
}
