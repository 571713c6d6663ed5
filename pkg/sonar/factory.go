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
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

type FactoryConfig struct {
	// RequestsPerSecond limits calls per server. Zero disables limiting.
	RequestsPerSecond float64
	Burst             int
	MaxTries          uint
	RetryInterval     time.Duration
	CircuitBreaker    CircuitBreakerConfig
}

func DefaultFactoryConfig() FactoryConfig {
	return FactoryConfig{
		RequestsPerSecond: 10,
		Burst:             5,
		MaxTries:          defaultMaxTries,
		RetryInterval:     defaultRetryInterval,
		CircuitBreaker:    DefaultCircuitBreakerConfig(),
	}
}

// Factory builds per-server clients. Circuit breakers and rate limiters are
// kept per server URL so their state survives across cycles.
type Factory struct {
	config     FactoryConfig
	httpClient HTTPClient
	metrics    APIMetrics
	logger     logger.Logger

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
	limiters map[string]*rate.Limiter
}

// NewFactory returns a Factory sending requests through httpClient. metrics
// may be nil.
func NewFactory(config FactoryConfig, httpClient HTTPClient, metrics APIMetrics, log logger.Logger) *Factory {
	return &Factory{
		config:     config,
		httpClient: httpClient,
		metrics:    metrics,
		logger:     log,
		breakers:   make(map[string]*CircuitBreaker),
		limiters:   make(map[string]*rate.Limiter),
	}
}

// ForServer returns a client for server with its capabilities resolved from
// the reported version.
func (f *Factory) ForServer(ctx context.Context, server models.ServerDescriptor) (*Client, error) {
	breaker, limiter := f.perServer(server.URL)

	var transport HTTPClient = NewCircuitBreakerHTTPClient(f.httpClient, breaker)
	if f.metrics != nil {
		transport = NewMetricsHTTPClient(transport, server.URL, f.metrics)
	}

	client, err := NewClient(server, transport, limiter, f.logger)
	if err != nil {
		return nil, err
	}

	if f.config.MaxTries > 0 {
		client.maxTries = f.config.MaxTries
	}

	if f.config.RetryInterval > 0 {
		client.retryInterval = f.config.RetryInterval
	}

	version, err := client.ServerVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get version of %s: %w", server.URL, err)
	}

	caps, err := CapabilitiesFor(version)
	if err != nil {
		return nil, err
	}

	client.capabilities = caps

	f.logger.Info().
		Str("server", server.URL).
		Str("version", version).
		Bool("change_history", caps.ChangeHistory).
		Msg("Resolved server capabilities")

	return client, nil
}

func (f *Factory) perServer(url string) (*CircuitBreaker, *rate.Limiter) {
	f.mu.Lock()
	defer f.mu.Unlock()

	breaker, ok := f.breakers[url]
	if !ok {
		var onChange StateChangeFunc
		if f.metrics != nil {
			onChange = func(name string, from, to CircuitBreakerState) {
				f.metrics.RecordCircuitBreakerStateChange(name, from.String(), to.String())
			}
		}

		breaker = NewCircuitBreaker(url, f.config.CircuitBreaker, onChange, f.logger)
		f.breakers[url] = breaker
	}

	if f.config.RequestsPerSecond <= 0 {
		return breaker, nil
	}

	limiter, ok := f.limiters[url]
	if !ok {
		burst := f.config.Burst
		if burst <= 0 {
			burst = 1
		}

		limiter = rate.NewLimiter(rate.Limit(f.config.RequestsPerSecond), burst)
		f.limiters[url] = limiter
	}

	return breaker, limiter
}
