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

// RefreshQuality stores the current quality observation of each enabled
// project unless one with the same timestamp is already stored, and returns
// how many were stored. A failed fetch skips that project; a failed store
// write is returned.
func (e *Engine) RefreshQuality(ctx context.Context, projects []*models.ProjectRecord, fetcher ProjectFetcher) (int, error) {
	count := 0

	for _, project := range projects {
		if !project.Enabled {
			continue
		}

		if err := ctx.Err(); err != nil {
			return count, err
		}

		obs, err := fetcher.CurrentQuality(ctx, project)
		if err != nil {
			e.logger.Warn().
				Err(err).
				Str("project", project.ProjectKey).
				Str("server", project.InstanceURL).
				Msg("Failed to fetch quality measures")

			continue
		}

		if obs == nil {
			continue
		}

		stored, err := e.quality.FindQualityByItemAndTimestamp(ctx, project.ID, obs.Timestamp)
		if err != nil {
			return count, fmt.Errorf("failed to look up quality of %s: %w", project.ProjectKey, err)
		}

		if stored != nil {
			continue
		}

		project.LastUpdated = e.clock.Now().UTC()
		if err := e.projects.SaveProjects(ctx, []*models.ProjectRecord{project}); err != nil {
			return count, fmt.Errorf("failed to save project %s: %w", project.ProjectKey, err)
		}

		obs.CollectorItemID = project.ID

		inserted, err := e.quality.InsertQuality(ctx, obs)
		if err != nil {
			return count, fmt.Errorf("failed to store quality of %s: %w", project.ProjectKey, err)
		}

		if inserted {
			count++
		}
	}

	return count, nil
}
