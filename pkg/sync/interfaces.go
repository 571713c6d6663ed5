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
	"time"

	"github.com/carverauto/qualitysync/pkg/models"
)

//go:generate mockgen -destination=mock_sync.go -package=sync github.com/carverauto/qualitysync/pkg/sync ProjectStore,QualityStore,ConfigHistoryStore,ComponentStore,ProjectFetcher,FetcherFactory,EventPublisher,CycleRunner,Clock,Ticker

// ProjectStore persists project records.
type ProjectStore interface {
	FindProjectsByCollector(ctx context.Context, collectorID string) ([]*models.ProjectRecord, error)
	FindEnabledProjects(ctx context.Context, collectorID, instanceURL string) ([]*models.ProjectRecord, error)
	FindProject(ctx context.Context, identity models.ProjectIdentity) (*models.ProjectRecord, error)
	SaveProjects(ctx context.Context, projects []*models.ProjectRecord) error
	DeleteProjects(ctx context.Context, projects []*models.ProjectRecord) error
}

// QualityStore persists quality observations. InsertQuality must enforce at
// most one observation per (collector item, timestamp) and report whether a
// row was written.
type QualityStore interface {
	FindQualityByItemAndTimestamp(ctx context.Context, collectorItemID string, timestamp int64) (*models.QualityObservation, error)
	InsertQuality(ctx context.Context, obs *models.QualityObservation) (bool, error)
}

// ConfigHistoryStore persists quality profile change events, at most one
// per ConfigChangeKey.
type ConfigHistoryStore interface {
	FindConfigChanges(ctx context.Context, key models.ConfigChangeKey) ([]*models.ConfigChangeEvent, error)
	InsertConfigChanges(ctx context.Context, events []*models.ConfigChangeEvent) (int, error)
}

// ComponentStore resolves which records dashboards reference.
type ComponentStore interface {
	FindAllComponents(ctx context.Context) ([]*models.Component, error)
	FindComponentsByItem(ctx context.Context, kind models.CollectorType, itemIDs []string) ([]*models.Component, error)
	SaveComponents(ctx context.Context, components []*models.Component) error
}

// ProjectFetcher reads one remote server.
type ProjectFetcher interface {
	ServerURL() string
	Capabilities() models.ServerCapabilities
	ListProjects(ctx context.Context) ([]models.ProjectSnapshot, error)
	CurrentQuality(ctx context.Context, project *models.ProjectRecord) (*models.QualityObservation, error)
	ListQualityProfiles(ctx context.Context) ([]models.QualityProfile, error)
	ProjectsForProfile(ctx context.Context, profileKey string) ([]string, error)
	ChangeEventsForProfile(ctx context.Context, profileKey string) ([]map[string]interface{}, error)
}

// FetcherFactory returns a fetcher for a server with its capabilities
// already resolved.
type FetcherFactory interface {
	ForServer(ctx context.Context, server models.ServerDescriptor) (ProjectFetcher, error)
}

// EventPublisher forwards persisted changes to downstream consumers.
type EventPublisher interface {
	PublishConfigChanges(ctx context.Context, collectorID, serverURL string, events []*models.ConfigChangeEvent) error
	PublishCycleSummary(ctx context.Context, summary *models.CycleSummary) error
}

// CycleRunner runs one collection cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context, collector *models.Collector) error
}

// Clock defines an interface for time-related operations (to mock ticker).
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker defines an interface for the ticker used in polling.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}
