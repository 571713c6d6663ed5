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
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit(t *testing.T) {
	config := &Config{
		Level:  "warn",
		Debug:  true,
		Output: "stdout",
	}

	if err := Init(context.Background(), config); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	if GetLogger().GetLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug to win over level, got %v", GetLogger().GetLevel())
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	err := Init(context.Background(), &Config{Level: "loud"})
	if err == nil {
		t.Fatal("Expected error for unknown level")
	}
}

func TestSetDebug(t *testing.T) {
	SetDebug(true)

	if GetLogger().GetLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug level after SetDebug(true), got %v", GetLogger().GetLevel())
	}

	SetDebug(false)

	if GetLogger().GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level after SetDebug(false), got %v", GetLogger().GetLevel())
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_EXPORTER_OTLP_LOGS_HEADERS", "x-api-key=abc, x-tenant = t1")

	config := DefaultConfig()

	if config.Level != "debug" {
		t.Errorf("Expected level from LOG_LEVEL, got %q", config.Level)
	}

	if config.Output != "stdout" {
		t.Errorf("Expected default output stdout, got %q", config.Output)
	}

	if config.OTel.ServiceName != "qualitysync" {
		t.Errorf("Expected default service name, got %q", config.OTel.ServiceName)
	}

	if config.OTel.Headers["x-tenant"] != "t1" {
		t.Errorf("Expected trimmed header value, got %q", config.OTel.Headers["x-tenant"])
	}
}

func TestTestLoggerDiscards(t *testing.T) {
	l := NewTestLogger()
	l.Info().Str("k", "v").Msg("dropped")

	if l.WithComponent("sync").GetLevel() != zerolog.Disabled {
		t.Error("Expected test logger to stay disabled")
	}
}
