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

package lifecycle

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/qualitysync/pkg/logger"
)

func TestNewLoggerImplLevels(t *testing.T) {
	tests := []struct {
		name   string
		config *logger.Config
		want   zerolog.Level
	}{
		{name: "level", config: &logger.Config{Level: "warn", Output: "stderr"}, want: zerolog.WarnLevel},
		{name: "debug wins", config: &logger.Config{Level: "error", Debug: true}, want: zerolog.DebugLevel},
		{name: "empty level", config: &logger.Config{}, want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLoggerImpl(context.Background(), tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.logger.GetLevel())
		})
	}
}

func TestNewLoggerImplInvalidLevel(t *testing.T) {
	_, err := NewLoggerImpl(context.Background(), &logger.Config{Level: "loud"})
	require.Error(t, err)
}

func TestLoggerImplSetDebug(t *testing.T) {
	l, err := NewLoggerImpl(context.Background(), &logger.Config{Level: "info"})
	require.NoError(t, err)

	l.SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, l.logger.GetLevel())

	l.SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, l.logger.GetLevel())
}

func TestCreateComponentLogger(t *testing.T) {
	l, err := CreateComponentLogger(context.Background(), "sync", &logger.Config{Level: "info", Output: "stderr"})
	require.NoError(t, err)

	impl, ok := l.(*LoggerImpl)
	require.True(t, ok)
	assert.Equal(t, zerolog.InfoLevel, impl.logger.GetLevel())
}
