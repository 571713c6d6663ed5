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

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/qualitysync/pkg/models"
)

func TestOTelConfigDefaults(t *testing.T) {
	config := DefaultOTelConfig()

	assert.False(t, config.Enabled)
	assert.Equal(t, models.Duration(5*time.Second), config.BatchTimeout)
}

func TestOTelConfig_JSON(t *testing.T) {
	raw := `{
		"enabled": true,
		"endpoint": "localhost:4317",
		"service_name": "qs",
		"batch_timeout": "10s",
		"insecure": true,
		"headers": {"x-api-key": "k"}
	}`

	var config OTelConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &config))

	assert.True(t, config.Enabled)
	assert.Equal(t, "localhost:4317", config.Endpoint)
	assert.Equal(t, models.Duration(10*time.Second), config.BatchTimeout)
	assert.Equal(t, "k", config.Headers["x-api-key"])
}

func TestNewOTelWriter_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewOTelWriter(ctx, OTelConfig{})
	require.ErrorIs(t, err, ErrOTelLoggingDisabled)

	_, err = NewOTelWriter(ctx, OTelConfig{Enabled: true})
	require.ErrorIs(t, err, ErrOTelEndpointRequired)
}

func TestInitWithOTelEnabledButNoEndpoint(t *testing.T) {
	config := &Config{
		Level: "info",
		OTel:  OTelConfig{Enabled: true},
	}

	require.NoError(t, Init(context.Background(), config))
	Info().Str("test", "value").Msg("export stays off without an endpoint")
}

func TestMapZerologLevelToOTel(t *testing.T) {
	tests := map[string]string{
		"trace":   "TRACE",
		"debug":   "DEBUG",
		"info":    "INFO",
		"warn":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"fatal":   "FATAL",
		"panic":   "FATAL",
		"unknown": "INFO",
	}

	for level, want := range tests {
		assert.Equal(t, want, mapZerologLevelToOTel(level).String(), level)
	}
}

func TestRecordFromEntry(t *testing.T) {
	entry := map[string]interface{}{
		"time":    "2025-01-02T03:04:05Z",
		"level":   "warn",
		"message": "server unreachable",
		"server":  "https://sonar.example.com",
	}

	record := recordFromEntry(entry)

	assert.Equal(t, "warn", record.SeverityText())
	assert.Equal(t, "server unreachable", record.Body().AsString())
	assert.Equal(t, 2025, record.Timestamp().Year())
	assert.Equal(t, map[string]interface{}{"server": "https://sonar.example.com"}, entry)
}

func TestAttributeValue(t *testing.T) {
	assert.Equal(t, "null", attributeValue(nil))
	assert.Equal(t, "true", attributeValue(true))
	assert.Equal(t, "42", attributeValue(float64(42)))
	assert.Equal(t, `{"a":1}`, attributeValue(map[string]interface{}{"a": 1}))

	long := attributeValue(strings.Repeat("x", maxAttributeValueLength+10))
	assert.Len(t, long, maxAttributeValueLength)
	assert.True(t, strings.HasSuffix(long, "..."))
}

type failingWriter struct{}

var errWriteFailed = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWriteFailed }

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer

	n, err := NewMultiWriter(&a, &b).Write([]byte("line"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "line", a.String())
	assert.Equal(t, "line", b.String())

	_, err = NewMultiWriter(&a, failingWriter{}).Write([]byte("x"))
	require.ErrorIs(t, err, errWriteFailed)
}
