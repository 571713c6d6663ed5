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
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

func TestBuildCNPGConnURL(t *testing.T) {
	raw := buildCNPGConnURL(&models.CNPGDatabase{
		Host:     "cnpg-rw",
		Port:     5433,
		Database: "quality",
		Username: "collector",
		Password: "s3cr3t",
	})

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "cnpg-rw:5433", parsed.Host)
	assert.Equal(t, "/quality", parsed.Path)
	assert.Equal(t, "collector", parsed.User.Username())

	password, ok := parsed.User.Password()
	require.True(t, ok)
	assert.Equal(t, "s3cr3t", password)

	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, defaultApplicationName, parsed.Query().Get("application_name"))
}

func TestResolveCNPGSSLMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.CNPGDatabase
		want string
	}{
		{name: "explicit mode wins", cfg: models.CNPGDatabase{SSLMode: "require", TLS: &models.TLSConfig{}}, want: "require"},
		{name: "tls implies verify-full", cfg: models.CNPGDatabase{TLS: &models.TLSConfig{}}, want: "verify-full"},
		{name: "no tls disables", cfg: models.CNPGDatabase{}, want: "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveCNPGSSLMode(&tt.cfg))
		})
	}
}

func TestBuildCNPGTLSConfig(t *testing.T) {
	cfg, err := buildCNPGTLSConfig(&models.CNPGDatabase{})
	require.NoError(t, err)
	assert.Nil(t, cfg)

	_, err = buildCNPGTLSConfig(&models.CNPGDatabase{
		TLS: &models.TLSConfig{CertFile: "client.pem"},
	})
	require.ErrorIs(t, err, ErrCNPGTLSFilesRequired)

	_, err = buildCNPGTLSConfig(&models.CNPGDatabase{
		CertDir: t.TempDir(),
		TLS: &models.TLSConfig{
			CertFile: "client.pem",
			KeyFile:  "client-key.pem",
			CAFile:   "root.pem",
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load client keypair")
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(context.Background(), nil, logger.NewTestLogger())
	require.ErrorIs(t, err, ErrDatabaseNotConfigured)
}
