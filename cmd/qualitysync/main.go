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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/carverauto/qualitysync/pkg/config"
	"github.com/carverauto/qualitysync/pkg/db"
	"github.com/carverauto/qualitysync/pkg/lifecycle"
	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/natsutil"
	"github.com/carverauto/qualitysync/pkg/sonar"
	"github.com/carverauto/qualitysync/pkg/sync"
	"github.com/carverauto/qualitysync/pkg/version"
)

const serviceName = "qualitysync"

func main() {
	configPath := flag.String("config", "/etc/qualitysync/qualitysync.json", "Path to config file")
	envFile := flag.String("env-file", "", "Optional dotenv file read before the config is loaded")
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		log.Fatalf("qualitysync failed: %v", err)
	}
}

func run(configPath, envFile string) error {
	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)
	if envFile != "" {
		cfgLoader.SetEnvFile(envFile)
	}

	var cfg sync.Config

	if err := cfgLoader.LoadAndValidate(ctx, configPath, &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := lifecycle.InitializeLogger(ctx, cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	svcLog, err := lifecycle.CreateComponentLogger(ctx, serviceName, cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	if redacted, err := config.Redacted(&cfg); err == nil {
		svcLog.Debug().Interface("config", redacted).Msg("Loaded configuration")
	}

	var otelCfg *logger.OTelConfig
	if cfg.Logging != nil {
		otelCfg = &cfg.Logging.OTel
	}

	tp, ctx, rootSpan, err := logger.InitializeTracing(ctx, logger.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetVersion(),
		Logger:         svcLog,
		OTel:           otelCfg,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	hooks := []lifecycle.ShutdownHook{
		func(ctx context.Context) error {
			rootSpan.End()
			return tp.Shutdown(ctx)
		},
		func(context.Context) error { return lifecycle.ShutdownLogger() },
	}

	metrics, metricsHook, err := newMetrics(ctx, otelCfg, svcLog)
	if err != nil {
		return err
	}

	if metricsHook != nil {
		hooks = append(hooks, metricsHook)
	}

	store, err := db.New(ctx, cfg.CNPG, svcLog)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer store.Close()

	factoryCfg := sonar.DefaultFactoryConfig()
	factoryCfg.RequestsPerSecond = cfg.RequestsPerSecond
	factoryCfg.MaxTries = cfg.MaxRetries

	httpClient := &http.Client{Timeout: time.Duration(cfg.RequestTimeout)}
	factory := sonar.NewFactory(factoryCfg, httpClient, metrics, svcLog)

	var publisher sync.EventPublisher

	if cfg.NATSURL != "" {
		pub, drain, err := newPublisher(ctx, &cfg, svcLog)
		if err != nil {
			return err
		}

		publisher = pub
		hooks = append(hooks, drain)
	}

	engine, err := sync.NewEngine(&sync.EngineConfig{
		Projects:   store,
		Quality:    store,
		History:    store,
		Components: store,
		Fetchers:   sync.NewSonarFetcherFactory(factory),
		Publisher:  publisher,
		Metrics:    metrics,
		Logger:     svcLog,
	})
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	collectors := sync.ReloadingCollectorSource(cfgLoader, configPath, &cfg, svcLog)

	svc, err := sync.NewService(engine, collectors, time.Duration(cfg.PollInterval), nil, svcLog)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	return lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ServiceName:   serviceName,
		Service:       svc,
		Logger:        svcLog,
		ShutdownHooks: hooks,
	})
}

// newMetrics returns OTel-backed metrics when an exporter is configured and
// in-memory metrics otherwise.
func newMetrics(
	ctx context.Context, otelCfg *logger.OTelConfig, log logger.Logger,
) (sync.Metrics, lifecycle.ShutdownHook, error) {
	inMemory := sync.NewInMemoryMetrics(log)

	provider, err := logger.InitializeMetrics(ctx, logger.MetricsConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetVersion(),
		OTel:           otelCfg,
	})
	if errors.Is(err, logger.ErrOTelMetricsDisabled) {
		return inMemory, nil, nil
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	otelMetrics, err := sync.NewOTelMetrics(provider, inMemory)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return otelMetrics, provider.Shutdown, nil
}

func newPublisher(
	ctx context.Context, cfg *sync.Config, log logger.Logger,
) (*natsutil.EventPublisher, lifecycle.ShutdownHook, error) {
	nc, err := natsutil.Connect(natsutil.ConnectOptions{
		URL:       cfg.NATSURL,
		Name:      serviceName + "-" + cfg.CollectorID,
		CredsFile: cfg.NATSCredsFile,
		Security:  cfg.NATSSecurity,
	}, log)
	if err != nil {
		return nil, nil, err
	}

	pub, err := natsutil.CreateEventPublisher(ctx, nc, cfg.NATSDomain, cfg.NATSStream, cfg.NATSSubject, log)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	drain := func(context.Context) error {
		return nc.Drain()
	}

	return pub, drain, nil
}
