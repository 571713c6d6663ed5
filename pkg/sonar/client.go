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

// Package sonar is the HTTP client for the code-analysis servers a collector
// reconciles against.
package sonar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
	"github.com/carverauto/qualitysync/pkg/version"
)

// HTTPClient is the transport used by Client. *http.Client satisfies it, as
// do the circuit breaker and metrics wrappers.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	defaultMaxTries      = 3
	defaultRetryInterval = 500 * time.Millisecond
	maxErrorBodyLength   = 256
)

// Client talks to one server. It is created by Factory.ForServer, which also
// resolves the server's capabilities.
type Client struct {
	server        models.ServerDescriptor
	baseURL       string
	httpClient    HTTPClient
	limiter       *rate.Limiter
	maxTries      uint
	retryInterval time.Duration
	capabilities  models.ServerCapabilities
	logger        logger.Logger
}

// NewClient returns a client for server. limiter may be nil.
func NewClient(server models.ServerDescriptor, httpClient HTTPClient, limiter *rate.Limiter, log logger.Logger) (*Client, error) {
	if server.URL == "" {
		return nil, errMissingURL
	}

	return &Client{
		server:        server,
		baseURL:       strings.TrimRight(server.URL, "/"),
		httpClient:    httpClient,
		limiter:       limiter,
		maxTries:      defaultMaxTries,
		retryInterval: defaultRetryInterval,
		logger:        log,
	}, nil
}

// ServerURL returns the configured endpoint, unmodified.
func (c *Client) ServerURL() string {
	return c.server.URL
}

// Capabilities returns what was resolved by Factory.ForServer.
func (c *Client) Capabilities() models.ServerCapabilities {
	return c.capabilities
}

func (c *Client) authorize(req *http.Request) {
	switch {
	case c.server.Token != "":
		req.SetBasicAuth(c.server.Token, "")
	case c.server.Username != "":
		req.SetBasicAuth(c.server.Username, c.server.Password)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}

// get performs a GET with retries. Network errors and 5xx responses are
// retried with exponential backoff; anything else is returned immediately.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	operation := func() ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, backoff.Permanent(err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		c.authorize(req)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", version.UserAgent())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, ErrCircuitOpen) || ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}

			return nil, err
		}
		defer c.closeResponse(resp)

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		return body, checkStatus(path, resp.StatusCode, body)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.logger.Debug().
				Err(err).
				Str("server", c.server.URL).
				Str("path", path).
				Dur("retry_in", wait).
				Msg("Retrying request")
		}),
	)
}

func checkStatus(path string, statusCode int, body []byte) error {
	switch {
	case statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices:
		return nil
	case statusCode == http.StatusNotFound:
		return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, path))
	case statusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %d", ErrServerError, statusCode)
	default:
		snippet := string(body)
		if len(snippet) > maxErrorBodyLength {
			snippet = snippet[:maxErrorBodyLength]
		}

		return backoff.Permanent(fmt.Errorf("%w: %d, response: %s", ErrUnexpectedStatus, statusCode, snippet))
	}
}

func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to close response body")
	}
}
