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
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	selectComponentColumns = `
SELECT
	id,
	name,
	collector_items
FROM components`

	findAllComponentsSQL = selectComponentColumns + `
ORDER BY id`

	// $1 is the collector type, $2 the record ids.
	findComponentsByItemSQL = selectComponentColumns + `
WHERE EXISTS (
	SELECT 1
	FROM jsonb_array_elements(
		CASE jsonb_typeof(collector_items -> $1::text)
			WHEN 'array' THEN collector_items -> $1::text
			ELSE '[]'::jsonb
		END
	) AS ref
	WHERE ref ->> 'id' = ANY($2::text[])
)
ORDER BY id`

	upsertComponentSQL = `
INSERT INTO components (
	id,
	name,
	collector_items
) VALUES ($1,$2,$3)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	collector_items = EXCLUDED.collector_items`
)

// FindAllComponents returns every dashboard component.
func (db *DB) FindAllComponents(ctx context.Context) ([]*models.Component, error) {
	return db.queryComponents(ctx, findAllComponentsSQL)
}

// FindComponentsByItem returns the components referencing any of itemIDs
// under kind.
func (db *DB) FindComponentsByItem(ctx context.Context, kind models.CollectorType, itemIDs []string) ([]*models.Component, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	return db.queryComponents(ctx, findComponentsByItemSQL, string(kind), itemIDs)
}

// SaveComponents writes the components in one batch.
func (db *DB) SaveComponents(ctx context.Context, components []*models.Component) error {
	batch := &pgx.Batch{}

	for _, component := range components {
		if component == nil {
			continue
		}

		args, err := buildComponentArgs(component)
		if err != nil {
			return err
		}

		batch.Queue(upsertComponentSQL, args...)
	}

	if err := db.sendBatch(ctx, batch, "components"); err != nil {
		return fmt.Errorf("%w: components: %w", ErrFailedToInsert, err)
	}

	return nil
}

func buildComponentArgs(component *models.Component) ([]interface{}, error) {
	items := component.CollectorItems
	if items == nil {
		items = map[models.CollectorType][]models.CollectorItemRef{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("%w: component collector items: %w", ErrFailedToInsert, err)
	}

	return []interface{}{
		component.ID,
		component.Name,
		json.RawMessage(raw),
	}, nil
}

func (db *DB) queryComponents(ctx context.Context, query string, args ...interface{}) ([]*models.Component, error) {
	rows, err := db.executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: components: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var components []*models.Component

	for rows.Next() {
		var (
			component models.Component
			items     []byte
		)

		if err := rows.Scan(&component.ID, &component.Name, &items); err != nil {
			return nil, fmt.Errorf("%w: component: %w", ErrFailedToScan, err)
		}

		component.CollectorItems = make(map[models.CollectorType][]models.CollectorItemRef)

		if len(items) > 0 {
			if err := json.Unmarshal(items, &component.CollectorItems); err != nil {
				return nil, fmt.Errorf("%w: component collector items: %w", ErrFailedToScan, err)
			}
		}

		components = append(components, &component)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: components: %w", ErrFailedToQuery, err)
	}

	return components, nil
}
