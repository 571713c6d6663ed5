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

package sonar

import (
	"net/http"
	"time"
)

// APIMetrics receives per-request measurements. pkg/sync implements it.
type APIMetrics interface {
	RecordAPICall(server, endpoint string)
	RecordAPISuccess(server, endpoint string, duration time.Duration)
	RecordAPIFailure(server, endpoint string, statusCode int, duration time.Duration)
	RecordCircuitBreakerStateChange(name, oldState, newState string)
}

// MetricsHTTPClient wraps an HTTP client to collect API metrics
type MetricsHTTPClient struct {
	client  HTTPClient
	metrics APIMetrics
	server  string
}

func NewMetricsHTTPClient(client HTTPClient, server string, metrics APIMetrics) *MetricsHTTPClient {
	return &MetricsHTTPClient{
		client:  client,
		metrics: metrics,
		server:  server,
	}
}

func (m *MetricsHTTPClient) Do(req *http.Request) (*http.Response, error) {
	endpoint := req.URL.Path

	start := time.Now()
	m.metrics.RecordAPICall(m.server, endpoint)

	resp, err := m.client.Do(req)
	duration := time.Since(start)

	switch {
	case err != nil:
		m.metrics.RecordAPIFailure(m.server, endpoint, 0, duration)
	case resp.StatusCode >= http.StatusBadRequest:
		m.metrics.RecordAPIFailure(m.server, endpoint, resp.StatusCode, duration)
	default:
		m.metrics.RecordAPISuccess(m.server, endpoint, duration)
	}

	return resp, err
}
