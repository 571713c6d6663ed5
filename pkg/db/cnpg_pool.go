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

package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	defaultCNPGPort        = 5432
	defaultApplicationName = "qualitysync"
)

// NewCNPGPool dials the configured cluster and returns a pgx pool.
func NewCNPGPool(ctx context.Context, cfg *models.CNPGDatabase, log logger.Logger) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, ErrDatabaseNotConfigured
	}

	cnpg := *cfg
	if cnpg.Port == 0 {
		cnpg.Port = defaultCNPGPort
	}

	poolConfig, err := pgxpool.ParseConfig(buildCNPGConnURL(&cnpg))
	if err != nil {
		return nil, fmt.Errorf("cnpg: failed to parse connection string: %w", err)
	}

	if cnpg.MaxConnections > 0 {
		poolConfig.MaxConns = cnpg.MaxConnections
	}

	if cnpg.MinConnections > 0 {
		poolConfig.MinConns = cnpg.MinConnections
	}

	if cnpg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cnpg.MaxConnLifetime)
	}

	if cnpg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = time.Duration(cnpg.HealthCheckPeriod)
	}

	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = make(map[string]string)
	}

	for k, v := range cnpg.ExtraRuntimeParams {
		if k == "" {
			continue
		}

		poolConfig.ConnConfig.RuntimeParams[k] = v
	}

	if cnpg.StatementTimeout > 0 {
		ms := time.Duration(cnpg.StatementTimeout).Milliseconds()
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(ms, 10)
	}

	tlsConfig, err := buildCNPGTLSConfig(&cnpg)
	if err != nil {
		return nil, err
	}

	if tlsConfig != nil {
		poolConfig.ConnConfig.TLSConfig = tlsConfig
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("cnpg: failed to initialize pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("cnpg: failed to reach %s:%d: %w", cnpg.Host, cnpg.Port, err)
	}

	log.Info().
		Str("host", cnpg.Host).
		Int("port", cnpg.Port).
		Str("database", cnpg.Database).
		Int32("max_conns", poolConfig.MaxConns).
		Msg("Connected to CNPG cluster")

	return pool, nil
}

func buildCNPGConnURL(cnpg *models.CNPGDatabase) string {
	connURL := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cnpg.Host, cnpg.Port),
		Path:   "/" + cnpg.Database,
	}

	if cnpg.Username != "" {
		if cnpg.Password != "" {
			connURL.User = url.UserPassword(cnpg.Username, cnpg.Password)
		} else {
			connURL.User = url.User(cnpg.Username)
		}
	}

	query := connURL.Query()
	query.Set("sslmode", resolveCNPGSSLMode(cnpg))

	appName := cnpg.ApplicationName
	if appName == "" {
		appName = defaultApplicationName
	}

	query.Set("application_name", appName)

	connURL.RawQuery = query.Encode()

	return connURL.String()
}

// resolveCNPGSSLMode keeps an explicit sslmode, otherwise verifies the
// server when client certificates are configured and disables TLS when not.
func resolveCNPGSSLMode(cnpg *models.CNPGDatabase) string {
	switch {
	case cnpg.SSLMode != "":
		return cnpg.SSLMode
	case cnpg.TLS != nil:
		return "verify-full"
	default:
		return "disable"
	}
}

func buildCNPGTLSConfig(cfg *models.CNPGDatabase) (*tls.Config, error) {
	if cfg == nil || cfg.TLS == nil {
		return nil, nil
	}

	resolve := func(path string) string {
		if path == "" || filepath.IsAbs(path) || cfg.CertDir == "" {
			return path
		}

		return filepath.Join(cfg.CertDir, path)
	}

	certFile := resolve(cfg.TLS.CertFile)
	keyFile := resolve(cfg.TLS.KeyFile)
	caFile := resolve(cfg.TLS.CAFile)

	if certFile == "" || keyFile == "" || caFile == "" {
		return nil, ErrCNPGTLSFilesRequired
	}

	clientCert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("cnpg tls: failed to load client keypair: %w", err)
	}

	caBytes, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("cnpg tls: failed to read CA file: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caBytes) {
		return nil, ErrCNPGAppendCA
	}

	return &tls.Config{
		Certificates: []tls.Certificate{clientCert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS12,
		ServerName:   cfg.Host,
	}, nil
}
