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

// IngestProjects merges fetched projects into the store. A project with no
// record of the same identity becomes a new, disabled record; every record
// that does match gets the fetched project id and, if it has none, the
// server's nice name. Creates and updates are saved in one batch each, and
// created records are added to existing.
func (e *Engine) IngestProjects(
	ctx context.Context,
	fetched []models.ProjectSnapshot,
	existing *ProjectIndex,
	collector *models.Collector,
) (created, updated int, err error) {
	var (
		creates []*models.ProjectRecord
		updates []*models.ProjectRecord
	)

	queued := make(map[*models.ProjectRecord]struct{})
	seen := make(map[models.ProjectIdentity]struct{}, len(fetched))

	for i := range fetched {
		snapshot := &fetched[i]
		identity := snapshot.IdentityFor(collector.ID)

		if _, dup := seen[identity]; dup {
			continue
		}

		seen[identity] = struct{}{}

		niceName := collector.NiceNameFor(snapshot.InstanceURL)
		matches := existing.Lookup(identity)

		if len(matches) == 0 {
			creates = append(creates, &models.ProjectRecord{
				CollectorID: collector.ID,
				InstanceURL: snapshot.InstanceURL,
				ProjectKey:  snapshot.ProjectKey,
				ProjectID:   snapshot.ProjectID,
				ProjectName: snapshot.ProjectName,
				Description: snapshot.ProjectName,
				NiceName:    niceName,
				Enabled:     false,
			})

			continue
		}

		for _, record := range matches {
			record.ProjectID = snapshot.ProjectID
			if record.NiceName == "" {
				record.NiceName = niceName
			}

			if _, ok := queued[record]; !ok {
				queued[record] = struct{}{}
				updates = append(updates, record)
			}
		}
	}

	if len(creates) > 0 {
		if err := e.projects.SaveProjects(ctx, creates); err != nil {
			return 0, 0, fmt.Errorf("failed to create projects: %w", err)
		}

		for _, record := range creates {
			existing.Add(record)
		}
	}

	if len(updates) > 0 {
		if err := e.projects.SaveProjects(ctx, updates); err != nil {
			return len(creates), 0, fmt.Errorf("failed to update projects: %w", err)
		}
	}

	return len(creates), len(updates), nil
}
