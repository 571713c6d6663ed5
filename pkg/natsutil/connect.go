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

package natsutil

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

// ConnectOptions configures Connect.
type ConnectOptions struct {
	URL       string
	Name      string
	CredsFile string
	Security  *models.SecurityConfig
}

// Connect creates a NATS connection with optional mTLS and user credentials.
// Connection state changes are logged through log.
func Connect(opts ConnectOptions, log logger.Logger, extraOpts ...nats.Option) (*nats.Conn, error) {
	if log == nil {
		log = logger.NewTestLogger()
	}

	natsOpts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
	}

	if opts.Name != "" {
		natsOpts = append(natsOpts, nats.Name(opts.Name))
	}

	if opts.Security != nil && opts.Security.Mode == models.SecurityModeMTLS {
		tlsConf, err := TLSConfig(opts.Security)
		if err != nil {
			return nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		natsOpts = append(natsOpts, nats.Secure(tlsConf))
	}

	if opts.CredsFile != "" {
		creds, err := loadUserCredentials(opts.CredsFile, time.Now())
		if err != nil {
			return nil, err
		}

		log.Info().
			Str("user", creds.claims.Subject).
			Str("issuer", creds.claims.Issuer).
			Msg("Using NATS user credentials")

		natsOpts = append(natsOpts, nats.UserJWT(
			func() (string, error) { return creds.jwt, nil },
			creds.sign,
		))
	}

	natsOpts = append(natsOpts,
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.ConnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("Connected to NATS")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)

	natsOpts = append(natsOpts, extraOpts...)

	nc, err := nats.Connect(opts.URL, natsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return nc, nil
}
