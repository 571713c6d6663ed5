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
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/qualitysync/pkg/models"
)

// RunCycle runs one collection cycle for collector: refresh enabled state,
// process each server in configured order, then delete records that are no
// longer wanted. A server that cannot be read is logged and skipped, and its
// records are kept. If ctx is cancelled before every server was processed,
// nothing is deleted. Only store failures and cancellation are returned.
func (e *Engine) RunCycle(ctx context.Context, collector *models.Collector) (err error) {
	start := e.clock.Now()

	ctx, span := e.tracer.Start(ctx, "sync.RunCycle",
		trace.WithAttributes(
			attribute.String("collector.id", collector.ID),
			attribute.Int("collector.servers", len(collector.Servers)),
		))

	summary := &models.CycleSummary{
		CollectorID: collector.ID,
		StartedAt:   start.UTC(),
	}

	defer func() {
		summary.FinishedAt = e.clock.Now().UTC()
		elapsed := summary.FinishedAt.Sub(summary.StartedAt)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()

		e.setLastSummary(summary)
		e.metrics.RecordCycle(summary, elapsed, err)
		e.publishSummary(ctx, summary)
	}()

	existing, err := e.projects.FindProjectsByCollector(ctx, collector.ID)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	changed, err := e.CleanStaleState(ctx, collector, existing)
	if err != nil {
		return err
	}

	summary.StateChanges = len(changed)
	e.metrics.RecordStateChanges(collector.ID, len(changed))

	index := NewProjectIndex(existing)
	unreachable := make(map[string]bool)

	var latest []models.ProjectSnapshot

	for i := range collector.Servers {
		if ctx.Err() != nil {
			break
		}

		server := &collector.Servers[i]

		serverSummary, fetched, err := e.syncServer(ctx, collector, server, index)
		summary.Servers = append(summary.Servers, serverSummary)

		if err != nil {
			return err
		}

		if serverSummary.FetchFailed {
			unreachable[server.URL] = true
			continue
		}

		latest = append(latest, fetched...)
	}

	if err := ctx.Err(); err != nil {
		summary.DeleteSkipped = true

		e.logger.Warn().
			Str("collector_id", collector.ID).
			Int("servers_processed", len(summary.Servers)).
			Msg("Cycle interrupted, skipping deletion")

		return err
	}

	deleted, err := e.DeleteUnwanted(ctx, latest, index.Records(), collector, unreachable)
	if err != nil {
		return err
	}

	summary.Deleted = len(deleted)
	e.metrics.RecordProjectsDeleted(collector.ID, len(deleted))

	e.logger.Info().
		Str("collector_id", collector.ID).
		Int("servers", len(collector.Servers)).
		Int("projects", index.Len()-len(deleted)).
		Int("unreachable", len(unreachable)).
		Int("state_changes", summary.StateChanges).
		Int("deleted", summary.Deleted).
		Dur("elapsed", e.clock.Now().Sub(start)).
		Msg("Finished")

	return nil
}

// syncServer runs discovery, quality refresh and change tracking for one
// server. Fetch failures, including those of change tracking, are reported
// through the summary; the returned error is a store failure.
func (e *Engine) syncServer(
	ctx context.Context, collector *models.Collector, server *models.ServerDescriptor, index *ProjectIndex,
) (models.ServerSummary, []models.ProjectSnapshot, error) {
	start := e.clock.Now()
	summary := models.ServerSummary{URL: server.URL}

	ctx, span := e.tracer.Start(ctx, "sync.server", trace.WithAttributes(attribute.String("server.url", server.URL)))
	defer span.End()

	e.logger.Info().Str("server", server.URL).Msg("Collecting from server")
	e.metrics.RecordDiscoveryAttempt(server.URL)

	fail := func(err error) (models.ServerSummary, []models.ProjectSnapshot, error) {
		elapsed := e.clock.Now().Sub(start)
		e.metrics.RecordDiscoveryFailure(server.URL, err, elapsed)

		e.logger.Error().
			Err(err).
			Str("server", server.URL).
			Dur("elapsed", elapsed).
			Msg("Failed to fetch projects, server records kept this cycle")

		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")

		summary.FetchFailed = true
		summary.Error = err.Error()

		return summary, nil, nil
	}

	fetcher, err := e.fetchers.ForServer(ctx, *server)
	if err != nil {
		return fail(err)
	}

	caps := fetcher.Capabilities()
	summary.Version = caps.Version
	span.SetAttributes(attribute.String("server.version", caps.Version))

	fetched, err := fetcher.ListProjects(ctx)
	if err != nil {
		return fail(err)
	}

	summary.Fetched = len(fetched)
	e.metrics.RecordDiscoverySuccess(server.URL, len(fetched), e.clock.Now().Sub(start))

	e.logger.Info().
		Str("server", server.URL).
		Int("projects", len(fetched)).
		Dur("elapsed", e.clock.Now().Sub(start)).
		Msg("Fetched projects")

	created, updated, err := e.IngestProjects(ctx, fetched, index, collector)
	if err != nil {
		return summary, fetched, err
	}

	summary.Created, summary.Updated = created, updated
	e.metrics.RecordProjectsIngested(server.URL, created, updated)

	e.logger.Info().
		Str("server", server.URL).
		Int("created", created).
		Int("updated", updated).
		Dur("elapsed", e.clock.Now().Sub(start)).
		Msg("New projects")

	enabled, err := e.projects.FindEnabledProjects(ctx, collector.ID, server.URL)
	if err != nil {
		return summary, fetched, fmt.Errorf("failed to load enabled projects: %w", err)
	}

	refreshed, err := e.RefreshQuality(ctx, enabled, fetcher)
	summary.QualityUpdated = refreshed
	e.metrics.RecordQualityUpdated(server.URL, refreshed)

	if err != nil {
		return summary, fetched, err
	}

	e.logger.Info().
		Str("server", server.URL).
		Int("count", refreshed).
		Dur("elapsed", e.clock.Now().Sub(start)).
		Msg("Updated")

	if caps.ChangeHistory {
		changes, err := e.TrackProfileChanges(ctx, collector, server.URL, fetcher)
		summary.ConfigChanges = changes
		e.metrics.RecordConfigChanges(server.URL, changes)

		if err != nil {
			summary.HistoryFailed = true
			e.metrics.RecordChangeHistoryFailure(server.URL, err)

			if errors.Is(err, errHistoryStore) {
				return summary, fetched, err
			}

			e.logger.Error().
				Err(err).
				Str("server", server.URL).
				Msg("Failed to track quality profile changes")
		}
	} else {
		summary.HistorySkipped = true

		e.logger.Debug().
			Str("server", server.URL).
			Str("version", caps.Version).
			Msg("Server does not support change history")
	}

	e.logger.Info().
		Str("server", server.URL).
		Dur("elapsed", e.clock.Now().Sub(start)).
		Msg("Finished server")

	return summary, fetched, nil
}

func (e *Engine) publishSummary(ctx context.Context, summary *models.CycleSummary) {
	if e.publisher == nil {
		return
	}

	// The cycle context may already be cancelled; the summary is still
	// worth sending.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), summaryPublishTimeout)
	defer cancel()

	if err := e.publisher.PublishCycleSummary(pubCtx, summary); err != nil {
		e.logger.Warn().Err(err).Str("collector_id", summary.CollectorID).Msg("Failed to publish cycle summary")
	}
}

const summaryPublishTimeout = 5 * time.Second
