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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	defaultPollInterval      = time.Hour
	defaultRequestTimeout    = 30 * time.Second
	defaultRequestsPerSecond = 10
	defaultMaxRetries        = 3
	defaultNATSStream        = "events"
	defaultNATSSubject       = "qualitysync"
)

var (
	errMissingCollectorID = errors.New("collector_id is required")
	errMissingServers     = errors.New("at least one server must be defined")
	errMissingServerURL   = errors.New("server url is required")
	errDuplicateServer    = errors.New("server url configured more than once")
	errMissingCNPG        = errors.New("cnpg database settings are required")
)

// Config is the configuration of the qualitysync service.
type Config struct {
	CollectorID       string                    `json:"collector_id"`
	CollectorName     string                    `json:"collector_name"`
	Servers           []models.ServerDescriptor `json:"servers"`
	PollInterval      models.Duration           `json:"poll_interval"`
	RequestTimeout    models.Duration           `json:"request_timeout"`
	RequestsPerSecond float64                   `json:"requests_per_second"`
	MaxRetries        uint                      `json:"max_retries"`
	CNPG              *models.CNPGDatabase      `json:"cnpg"`

	// NATSURL enables publishing of config changes and cycle summaries.
	// Publishing is off when it is empty.
	NATSURL       string                 `json:"nats_url,omitempty"`
	NATSDomain    string                 `json:"nats_domain,omitempty"`
	NATSStream    string                 `json:"nats_stream,omitempty"`
	NATSSubject   string                 `json:"nats_subject,omitempty"`
	NATSCredsFile string                 `json:"nats_creds_file,omitempty"`
	NATSSecurity  *models.SecurityConfig `json:"nats_security,omitempty"`

	Logging *logger.Config `json:"logging,omitempty"`
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.CollectorID == "" {
		return errMissingCollectorID
	}

	if c.CollectorName == "" {
		c.CollectorName = c.CollectorID
	}

	if len(c.Servers) == 0 {
		return errMissingServers
	}

	seen := make(map[string]struct{}, len(c.Servers))

	for i := range c.Servers {
		server := &c.Servers[i]
		server.URL = strings.TrimRight(strings.TrimSpace(server.URL), "/")

		if server.URL == "" {
			return fmt.Errorf("server %d: %w", i, errMissingServerURL)
		}

		if _, dup := seen[server.URL]; dup {
			return fmt.Errorf("%w: %s", errDuplicateServer, server.URL)
		}

		seen[server.URL] = struct{}{}
	}

	if c.CNPG == nil {
		return errMissingCNPG
	}

	if time.Duration(c.PollInterval) <= 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	if time.Duration(c.RequestTimeout) <= 0 {
		c.RequestTimeout = models.Duration(defaultRequestTimeout)
	}

	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = defaultRequestsPerSecond
	}

	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}

	if c.NATSURL != "" {
		if c.NATSStream == "" {
			c.NATSStream = defaultNATSStream
		}

		if c.NATSSubject == "" {
			c.NATSSubject = defaultNATSSubject
		}
	}

	return nil
}

// Collector builds the collector identity for one cycle. The servers are
// copied so a later config reload cannot change a running cycle.
func (c *Config) Collector() *models.Collector {
	return &models.Collector{
		ID:      c.CollectorID,
		Name:    c.CollectorName,
		Servers: append([]models.ServerDescriptor(nil), c.Servers...),
	}
}
