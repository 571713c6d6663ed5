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
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/qualitysync/pkg/logger"
)

const defaultShutdownTimeout = 10 * time.Second

var (
	errMissingOptions = errors.New("server options are required")
	errMissingService = errors.New("service is required")
)

// Service is a long-running component that starts without blocking.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// ShutdownHook releases a resource after the service stopped.
type ShutdownHook func(ctx context.Context) error

// ServerOptions configures RunServer.
type ServerOptions struct {
	ServiceName     string
	Service         Service
	ShutdownTimeout time.Duration
	Logger          logger.Logger

	// Signals ends the run when received. Defaults to SIGINT and SIGTERM.
	Signals []os.Signal

	// ShutdownHooks run concurrently once the service stopped, sharing
	// the shutdown deadline.
	ShutdownHooks []ShutdownHook
}

// RunServer starts the service and blocks until ctx is cancelled or a
// signal arrives, then stops the service and runs the shutdown hooks.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	if opts == nil {
		return errMissingOptions
	}

	if opts.Service == nil {
		return errMissingService
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	signals := opts.Signals
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	runCtx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()

	if err := opts.Service.Start(runCtx); err != nil {
		return fmt.Errorf("failed to start %s: %w", opts.ServiceName, err)
	}

	log.Info().Str("service", opts.ServiceName).Msg("Service started")

	<-runCtx.Done()

	log.Info().Str("service", opts.ServiceName).Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var errs []error

	if err := opts.Service.Stop(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop %s: %w", opts.ServiceName, err))
	}

	var g errgroup.Group

	for _, hook := range opts.ShutdownHooks {
		g.Go(func() error {
			return hook(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		errs = append(errs, fmt.Errorf("shutdown hook failed: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	log.Info().Str("service", opts.ServiceName).Msg("Service stopped")

	return nil
}
