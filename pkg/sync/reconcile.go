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
	"fmt"

	"github.com/carverauto/qualitysync/pkg/models"
)

// scanKind is the component collector type this collector's records are
// attached under.
const scanKind = models.CollectorTypeStaticSecurityScan

// referenceSet returns the ids of records of collectorID that at least one
// component references under scanKind.
func referenceSet(components []*models.Component, collectorID string) map[string]struct{} {
	refs := make(map[string]struct{})

	for _, c := range components {
		if c == nil {
			continue
		}

		for _, item := range c.CollectorItems[scanKind] {
			if item.CollectorID == collectorID {
				refs[item.ID] = struct{}{}
			}
		}
	}

	return refs
}

// CleanStaleState enables every existing record that a dashboard references
// and disables every one that none does. Only records whose flag changed are
// saved, in a single batch, and they are returned.
func (e *Engine) CleanStaleState(
	ctx context.Context, collector *models.Collector, existing []*models.ProjectRecord,
) ([]*models.ProjectRecord, error) {
	components, err := e.components.FindAllComponents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load components: %w", err)
	}

	refs := referenceSet(components, collector.ID)

	var changed []*models.ProjectRecord

	for _, record := range existing {
		_, referenced := refs[record.ID]
		if record.Enabled == referenced {
			continue
		}

		record.Enabled = referenced
		changed = append(changed, record)
	}

	if len(changed) == 0 {
		return nil, nil
	}

	if err := e.projects.SaveProjects(ctx, changed); err != nil {
		return nil, fmt.Errorf("failed to save enabled state: %w", err)
	}

	e.logger.Info().
		Str("collector_id", collector.ID).
		Int("references", len(refs)).
		Int("changed", len(changed)).
		Msg("Updated enabled state of projects")

	return changed, nil
}

// DeleteUnwanted deletes every non-pushed record that is no longer wanted:
// its server is not configured, it belongs to another collector, or no
// server listed it in latest. Records of a configured server in unreachable
// are kept, since an empty listing there says nothing about the projects.
// Enabled records are detached from their components before any record is
// deleted. The deleted records are returned.
func (e *Engine) DeleteUnwanted(
	ctx context.Context,
	latest []models.ProjectSnapshot,
	existing []*models.ProjectRecord,
	collector *models.Collector,
	unreachable map[string]bool,
) ([]*models.ProjectRecord, error) {
	current := make(map[models.ProjectIdentity]struct{}, len(latest))
	for i := range latest {
		current[latest[i].IdentityFor(collector.ID)] = struct{}{}
	}

	var (
		doomed   []*models.ProjectRecord
		attached []string
	)

	for _, record := range existing {
		if !e.unwanted(record, current, collector, unreachable) {
			continue
		}

		if record.Enabled {
			attached = append(attached, record.ID)
		}

		doomed = append(doomed, record)
	}

	if len(doomed) == 0 {
		return nil, nil
	}

	if err := e.detach(ctx, attached); err != nil {
		return nil, err
	}

	if err := e.projects.DeleteProjects(ctx, doomed); err != nil {
		return nil, fmt.Errorf("failed to delete projects: %w", err)
	}

	for _, record := range doomed {
		e.logger.Debug().
			Str("project", record.ProjectName).
			Str("server", record.InstanceURL).
			Bool("enabled", record.Enabled).
			Msg("Deleted project")
	}

	return doomed, nil
}

func (e *Engine) unwanted(
	record *models.ProjectRecord,
	current map[models.ProjectIdentity]struct{},
	collector *models.Collector,
	unreachable map[string]bool,
) bool {
	if record.Pushed {
		return false
	}

	configured := collector.HasServer(record.InstanceURL)
	if configured && unreachable[record.InstanceURL] {
		return false
	}

	if !configured || record.CollectorID != collector.ID {
		return true
	}

	_, listed := current[record.Identity()]

	return !listed
}

// detach removes the records from every component referencing them under
// scanKind and saves the components that changed.
func (e *Engine) detach(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	components, err := e.components.FindComponentsByItem(ctx, scanKind, ids)
	if err != nil {
		return fmt.Errorf("failed to find referencing components: %w", err)
	}

	var changed []*models.Component

	for _, c := range components {
		modified := false

		for _, id := range ids {
			if c.Detach(scanKind, id) {
				modified = true
			}
		}

		if modified {
			changed = append(changed, c)
		}
	}

	if len(changed) == 0 {
		return nil
	}

	if err := e.components.SaveComponents(ctx, changed); err != nil {
		return fmt.Errorf("failed to detach projects from components: %w", err)
	}

	e.logger.Info().
		Int("projects", len(ids)).
		Int("components", len(changed)).
		Msg("Detached projects from components")

	return nil
}
