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

	"github.com/carverauto/qualitysync/pkg/models"
	"github.com/carverauto/qualitysync/pkg/sonar"
)

// ErrInvalidChangeDate is returned for a change event whose date cannot be
// parsed.
var ErrInvalidChangeDate = errors.New("invalid change event date")

// errHistoryStore marks change tracking failures caused by the store rather
// than the server. The cycle returns these instead of logging them.
var errHistoryStore = errors.New("config history store failure")

// OperationFromAction maps a changelog action to the recorded operation.
func OperationFromAction(action string) models.ConfigHistOperation {
	switch action {
	case "DEACTIVATED":
		return models.ConfigHistDeleted
	case "ACTIVATED":
		return models.ConfigHistCreated
	default:
		return models.ConfigHistChanged
	}
}

// ParseChangeTimestamp returns the epoch milliseconds of a changelog date
// such as 2024-03-01T10:00:00+0100, 2024-03-01T10:00:00+01:00 or
// 2024-03-01T09:00:00Z.
func ParseChangeTimestamp(date string) (int64, error) {
	t, err := sonar.ParseDate(date)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidChangeDate, err)
	}

	return t.UnixMilli(), nil
}

// ConfigChangeFromEvent translates one raw changelog event. The raw event is
// kept in the change map under "event".
func ConfigChangeFromEvent(collectorID string, raw map[string]interface{}) (*models.ConfigChangeEvent, error) {
	timestamp, err := ParseChangeTimestamp(stringField(raw, "date"))
	if err != nil {
		return nil, err
	}

	return &models.ConfigChangeEvent{
		CollectorID: collectorID,
		UserName:    stringField(raw, "authorName"),
		UserID:      stringField(raw, "authorLogin"),
		Operation:   OperationFromAction(stringField(raw, "action")),
		Timestamp:   timestamp,
		ChangeMap:   map[string]interface{}{"event": raw},
	}, nil
}

func stringField(raw map[string]interface{}, key string) string {
	s, _ := raw[key].(string)

	return s
}

// TrackProfileChanges records the change history of every quality profile
// on the server that has at least one project. An event whose date cannot be
// parsed drops the batch of its profile only. Events already stored are
// skipped. It returns the number of events written. Store failures wrap
// errHistoryStore.
func (e *Engine) TrackProfileChanges(
	ctx context.Context, collector *models.Collector, serverURL string, fetcher ProjectFetcher,
) (int, error) {
	profiles, err := fetcher.ListQualityProfiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list quality profiles: %w", err)
	}

	total := 0

	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		projects, err := fetcher.ProjectsForProfile(ctx, profile.Key)
		if err != nil {
			return total, fmt.Errorf("failed to list projects of profile %s: %w", profile.Key, err)
		}

		if len(projects) == 0 {
			continue
		}

		raw, err := fetcher.ChangeEventsForProfile(ctx, profile.Key)
		if err != nil {
			return total, fmt.Errorf("failed to fetch changelog of profile %s: %w", profile.Key, err)
		}

		events, err := translateChangeEvents(collector.ID, raw)
		if err != nil {
			e.logger.Warn().
				Err(err).
				Str("server", serverURL).
				Str("profile", profile.Key).
				Msg("Skipping profile changelog")

			continue
		}

		fresh, err := e.newConfigChanges(ctx, events)
		if err != nil {
			return total, err
		}

		if len(fresh) == 0 {
			continue
		}

		inserted, err := e.history.InsertConfigChanges(ctx, fresh)
		if err != nil {
			return total, fmt.Errorf("%w: failed to store changelog of profile %s: %w", errHistoryStore, profile.Key, err)
		}

		total += inserted

		e.publishConfigChanges(ctx, collector.ID, serverURL, fresh)
	}

	return total, nil
}

func translateChangeEvents(collectorID string, raw []map[string]interface{}) ([]*models.ConfigChangeEvent, error) {
	events := make([]*models.ConfigChangeEvent, 0, len(raw))

	for _, r := range raw {
		event, err := ConfigChangeFromEvent(collectorID, r)
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, nil
}

// newConfigChanges drops events whose key is already stored or repeats an
// earlier event of the batch.
func (e *Engine) newConfigChanges(ctx context.Context, events []*models.ConfigChangeEvent) ([]*models.ConfigChangeEvent, error) {
	seen := make(map[models.ConfigChangeKey]struct{}, len(events))
	fresh := make([]*models.ConfigChangeEvent, 0, len(events))

	for _, event := range events {
		key := event.Key()
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		stored, err := e.history.FindConfigChanges(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to look up config change: %w", errHistoryStore, err)
		}

		if len(stored) == 0 {
			fresh = append(fresh, event)
		}
	}

	return fresh, nil
}

func (e *Engine) publishConfigChanges(ctx context.Context, collectorID, serverURL string, events []*models.ConfigChangeEvent) {
	if e.publisher == nil {
		return
	}

	if err := e.publisher.PublishConfigChanges(ctx, collectorID, serverURL, events); err != nil {
		e.logger.Warn().
			Err(err).
			Str("server", serverURL).
			Int("events", len(events)).
			Msg("Failed to publish config changes")
	}
}
