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
	"context"
	"slices"
	"sync"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

// ConfigLoader loads and validates a configuration document into dst.
// config.Config satisfies it.
type ConfigLoader interface {
	LoadAndValidate(ctx context.Context, path string, dst interface{}) error
}

// ReloadingCollectorSource returns a CollectorSource that reloads the
// configuration at path before every cycle, so server endpoints, nice names
// and credentials can be changed without a restart. If a reload fails the
// last configuration that loaded is used. initial is the configuration
// loaded at startup.
func ReloadingCollectorSource(loader ConfigLoader, path string, initial *Config, log logger.Logger) CollectorSource {
	if log == nil {
		log = logger.NewTestLogger()
	}

	var mu sync.Mutex

	current := initial.Collector()

	return func(ctx context.Context) (*models.Collector, error) {
		mu.Lock()
		defer mu.Unlock()

		var next Config

		if err := loader.LoadAndValidate(ctx, path, &next); err != nil {
			log.Warn().
				Err(err).
				Str("path", path).
				Msg("Failed to reload configuration, keeping previous collector settings")

			return cloneCollector(current), nil
		}

		collector := next.Collector()

		if collector.ID != current.ID || !slices.Equal(collector.ServerURLs(), current.ServerURLs()) {
			log.Info().
				Str("collector_id", collector.ID).
				Strs("servers", collector.ServerURLs()).
				Msg("Collector configuration changed")
		}

		current = collector

		return cloneCollector(current), nil
	}
}

func cloneCollector(c *models.Collector) *models.Collector {
	out := *c
	out.Servers = append([]models.ServerDescriptor(nil), c.Servers...)

	return &out
}
