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

// Package sync reconciles the local record store with the projects, quality
// measures and profile history of the configured code-analysis servers.
package sync

import (
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

const tracerName = "github.com/carverauto/qualitysync/pkg/sync"

var (
	errMissingStore    = errors.New("engine requires project, quality, history and component stores")
	errMissingFetchers = errors.New("engine requires a fetcher factory")
)

// EngineConfig wires the collaborators of an Engine. Publisher, Metrics,
// Clock and Tracer are optional.
type EngineConfig struct {
	Projects   ProjectStore
	Quality    QualityStore
	History    ConfigHistoryStore
	Components ComponentStore
	Fetchers   FetcherFactory
	Publisher  EventPublisher
	Metrics    Metrics
	Clock      Clock
	Tracer     trace.Tracer
	Logger     logger.Logger
}

// Engine runs collection cycles for a collector.
type Engine struct {
	projects   ProjectStore
	quality    QualityStore
	history    ConfigHistoryStore
	components ComponentStore
	fetchers   FetcherFactory
	publisher  EventPublisher
	metrics    Metrics
	clock      Clock
	tracer     trace.Tracer
	logger     logger.Logger

	mu          sync.RWMutex
	lastSummary *models.CycleSummary
}

// NewEngine validates cfg and fills in defaults for the optional fields.
func NewEngine(cfg *EngineConfig) (*Engine, error) {
	if cfg.Projects == nil || cfg.Quality == nil || cfg.History == nil || cfg.Components == nil {
		return nil, errMissingStore
	}

	if cfg.Fetchers == nil {
		return nil, errMissingFetchers
	}

	e := &Engine{
		projects:   cfg.Projects,
		quality:    cfg.Quality,
		history:    cfg.History,
		components: cfg.Components,
		fetchers:   cfg.Fetchers,
		publisher:  cfg.Publisher,
		metrics:    cfg.Metrics,
		clock:      cfg.Clock,
		tracer:     cfg.Tracer,
		logger:     cfg.Logger,
	}

	if e.metrics == nil {
		e.metrics = &NoOpMetrics{}
	}

	if e.clock == nil {
		e.clock = realClock{}
	}

	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}

	if e.logger == nil {
		e.logger = logger.NewTestLogger()
	}

	return e, nil
}

// LastSummary returns the outcome of the most recent cycle, or nil before the
// first one finishes.
func (e *Engine) LastSummary() *models.CycleSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.lastSummary == nil {
		return nil
	}

	summary := *e.lastSummary
	summary.Servers = append([]models.ServerSummary(nil), e.lastSummary.Servers...)

	return &summary
}

func (e *Engine) setLastSummary(summary *models.CycleSummary) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastSummary = summary
}

// ProjectIndex groups project records by identity. Several records may share
// an identity when duplicates already exist in the store.
type ProjectIndex struct {
	records    []*models.ProjectRecord
	byIdentity map[models.ProjectIdentity][]*models.ProjectRecord
}

// NewProjectIndex indexes records.
func NewProjectIndex(records []*models.ProjectRecord) *ProjectIndex {
	idx := &ProjectIndex{
		records:    make([]*models.ProjectRecord, 0, len(records)),
		byIdentity: make(map[models.ProjectIdentity][]*models.ProjectRecord, len(records)),
	}

	for _, r := range records {
		idx.Add(r)
	}

	return idx
}

// Add indexes one more record.
func (idx *ProjectIndex) Add(record *models.ProjectRecord) {
	if record == nil {
		return
	}

	idx.records = append(idx.records, record)
	id := record.Identity()
	idx.byIdentity[id] = append(idx.byIdentity[id], record)
}

// Lookup returns every record with identity.
func (idx *ProjectIndex) Lookup(identity models.ProjectIdentity) []*models.ProjectRecord {
	return idx.byIdentity[identity]
}

// Records returns all indexed records in insertion order.
func (idx *ProjectIndex) Records() []*models.ProjectRecord {
	return idx.records
}

// Len returns the number of indexed records.
func (idx *ProjectIndex) Len() int {
	return len(idx.records)
}
