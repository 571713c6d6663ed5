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

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	selectProjectColumns = `
SELECT
	id::text,
	collector_id,
	instance_url,
	project_key,
	project_id,
	project_name,
	description,
	nice_name,
	enabled,
	pushed,
	last_updated
FROM sonar_projects`

	findProjectsByCollectorSQL = selectProjectColumns + `
WHERE collector_id = $1
ORDER BY instance_url, project_key, id`

	findProjectSQL = selectProjectColumns + `
WHERE collector_id = $1 AND instance_url = $2 AND project_key = $3
ORDER BY id
LIMIT 1`

	findEnabledProjectsSQL = selectProjectColumns + `
WHERE collector_id = $1 AND instance_url = $2 AND enabled
ORDER BY project_key, id`

	upsertProjectSQL = `
INSERT INTO sonar_projects (
	id,
	collector_id,
	instance_url,
	project_key,
	project_id,
	project_name,
	description,
	nice_name,
	enabled,
	pushed,
	last_updated
) VALUES (
	$1::uuid,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
)
ON CONFLICT (id) DO UPDATE SET
	collector_id = EXCLUDED.collector_id,
	instance_url = EXCLUDED.instance_url,
	project_key = EXCLUDED.project_key,
	project_id = EXCLUDED.project_id,
	project_name = EXCLUDED.project_name,
	description = EXCLUDED.description,
	nice_name = EXCLUDED.nice_name,
	enabled = EXCLUDED.enabled,
	pushed = EXCLUDED.pushed,
	last_updated = EXCLUDED.last_updated`

	deleteProjectSQL = `DELETE FROM sonar_projects WHERE id = $1::uuid`
)

// FindProjectsByCollector returns every project record owned by collectorID.
func (db *DB) FindProjectsByCollector(ctx context.Context, collectorID string) ([]*models.ProjectRecord, error) {
	return db.queryProjects(ctx, findProjectsByCollectorSQL, collectorID)
}

// FindEnabledProjects returns the enabled records of collectorID for one
// server.
func (db *DB) FindEnabledProjects(ctx context.Context, collectorID, instanceURL string) ([]*models.ProjectRecord, error) {
	return db.queryProjects(ctx, findEnabledProjectsSQL, collectorID, instanceURL)
}

// FindProject returns a record with the given identity, or nil when none
// exists.
func (db *DB) FindProject(ctx context.Context, identity models.ProjectIdentity) (*models.ProjectRecord, error) {
	row := db.executor.QueryRow(ctx, findProjectSQL, identity.CollectorID, identity.InstanceURL, identity.ProjectKey)

	project, err := scanProject(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}

		return nil, err
	}

	return project, nil
}

// SaveProjects inserts or updates records by id. Records without an id are
// assigned one in place.
func (db *DB) SaveProjects(ctx context.Context, projects []*models.ProjectRecord) error {
	if len(projects) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	for _, project := range projects {
		if project == nil {
			continue
		}

		if project.ID == "" {
			project.ID = uuid.NewString()
		}

		batch.Queue(upsertProjectSQL, buildProjectArgs(project)...)
	}

	if err := db.sendBatch(ctx, batch, "sonar projects"); err != nil {
		return fmt.Errorf("%w: projects: %w", ErrFailedToInsert, err)
	}

	return nil
}

// DeleteProjects removes the records in one batch.
func (db *DB) DeleteProjects(ctx context.Context, projects []*models.ProjectRecord) error {
	batch := &pgx.Batch{}

	for _, project := range projects {
		if project == nil || project.ID == "" {
			continue
		}

		batch.Queue(deleteProjectSQL, project.ID)
	}

	if err := db.sendBatch(ctx, batch, "sonar project delete"); err != nil {
		return fmt.Errorf("%w: projects: %w", ErrFailedToDelete, err)
	}

	return nil
}

func buildProjectArgs(project *models.ProjectRecord) []interface{} {
	var lastUpdated interface{}
	if !project.LastUpdated.IsZero() {
		lastUpdated = project.LastUpdated.UTC()
	}

	return []interface{}{
		project.ID,
		project.CollectorID,
		project.InstanceURL,
		project.ProjectKey,
		project.ProjectID,
		project.ProjectName,
		project.Description,
		project.NiceName,
		project.Enabled,
		project.Pushed,
		lastUpdated,
	}
}

func (db *DB) queryProjects(ctx context.Context, query string, args ...interface{}) ([]*models.ProjectRecord, error) {
	rows, err := db.executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: projects: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var projects []*models.ProjectRecord

	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}

		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: projects: %w", ErrFailedToQuery, err)
	}

	return projects, nil
}

func scanProject(row pgx.Row) (*models.ProjectRecord, error) {
	var (
		project     models.ProjectRecord
		lastUpdated *time.Time
	)

	err := row.Scan(
		&project.ID,
		&project.CollectorID,
		&project.InstanceURL,
		&project.ProjectKey,
		&project.ProjectID,
		&project.ProjectName,
		&project.Description,
		&project.NiceName,
		&project.Enabled,
		&project.Pushed,
		&lastUpdated,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: project: %w", ErrFailedToScan, err)
	}

	if lastUpdated != nil {
		project.LastUpdated = lastUpdated.UTC()
	}

	return &project, nil
}
