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
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/carverauto/qualitysync/pkg/logger"
)

// CircuitBreakerState represents the current state of the circuit breaker
type CircuitBreakerState int

const (
	StateClosed CircuitBreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitBreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold int
	// SuccessThreshold is the number of half-open successes that closes it again.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before a probe is allowed.
	Timeout time.Duration
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

// StateChangeFunc is notified after every state transition.
type StateChangeFunc func(name string, from, to CircuitBreakerState)

// CircuitBreaker guards calls to one server. The same breaker is reused
// across cycles so a server that keeps failing is skipped quickly.
type CircuitBreaker struct {
	name         string
	config       CircuitBreakerConfig
	state        CircuitBreakerState
	failureCount int
	successCount int
	openedAt     time.Time
	mu           sync.Mutex
	now          func() time.Time
	onChange     StateChangeFunc
	logger       logger.Logger
}

func NewCircuitBreaker(name string, config CircuitBreakerConfig, onChange StateChangeFunc, log logger.Logger) *CircuitBreaker {
	return &CircuitBreaker{
		name:     name,
		config:   config,
		state:    StateClosed,
		now:      time.Now,
		onChange: onChange,
		logger:   log,
	}
}

// Execute runs fn unless the circuit is open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allowRequest() {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, cb.name)
	}

	err := fn()
	cb.recordResult(err)

	return err
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.config.Timeout {
			return false
		}

		cb.successCount = 0
		cb.transition(StateHalfOpen)

		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) recordResult(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failureCount++

		if cb.state == StateHalfOpen || (cb.state == StateClosed && cb.failureCount >= cb.config.FailureThreshold) {
			cb.openedAt = cb.now()
			cb.transition(StateOpen)
		}

		return
	}

	switch cb.state {
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.config.SuccessThreshold {
			cb.failureCount = 0
			cb.transition(StateClosed)
		}
	case StateClosed:
		cb.failureCount = 0
	case StateOpen:
	}
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(to CircuitBreakerState) {
	from := cb.state
	cb.state = to

	cb.logger.Info().
		Str("circuit_breaker", cb.name).
		Str("old_state", from.String()).
		Str("new_state", to.String()).
		Int("failure_count", cb.failureCount).
		Msg("Circuit breaker state changed")

	if cb.onChange != nil {
		cb.onChange(cb.name, from, to)
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// CircuitBreakerHTTPClient wraps an HTTPClient with a circuit breaker.
// Network errors and 5xx responses count as failures.
type CircuitBreakerHTTPClient struct {
	client  HTTPClient
	breaker *CircuitBreaker
}

func NewCircuitBreakerHTTPClient(client HTTPClient, breaker *CircuitBreaker) *CircuitBreakerHTTPClient {
	return &CircuitBreakerHTTPClient{client: client, breaker: breaker}
}

func (c *CircuitBreakerHTTPClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response

	err := c.breaker.Execute(func() error {
		var err error

		resp, err = c.client.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()

			return fmt.Errorf("%w: %d", ErrServerError, resp.StatusCode)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
