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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	findConfigChangesSQL = `
SELECT
	id::text,
	collector_id,
	user_id,
	user_name,
	operation,
	timestamp,
	change_map
FROM config_history
WHERE collector_id = $1 AND user_id = $2 AND operation = $3 AND timestamp = $4`

	insertConfigChangeSQL = `
INSERT INTO config_history (
	id,
	collector_id,
	user_id,
	user_name,
	operation,
	timestamp,
	change_map
) VALUES (
	$1::uuid,$2,$3,$4,$5,$6,$7
)
ON CONFLICT (collector_id, user_id, operation, timestamp) DO NOTHING`
)

// FindConfigChanges returns the stored events matching key.
func (db *DB) FindConfigChanges(ctx context.Context, key models.ConfigChangeKey) ([]*models.ConfigChangeEvent, error) {
	rows, err := db.executor.Query(ctx, findConfigChangesSQL,
		key.CollectorID, key.UserID, string(key.Operation), key.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: config history: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var events []*models.ConfigChangeEvent

	for rows.Next() {
		var (
			event     models.ConfigChangeEvent
			operation string
			changeMap []byte
		)

		if err := rows.Scan(
			&event.ID,
			&event.CollectorID,
			&event.UserID,
			&event.UserName,
			&operation,
			&event.Timestamp,
			&changeMap,
		); err != nil {
			return nil, fmt.Errorf("%w: config history: %w", ErrFailedToScan, err)
		}

		event.Operation = models.ConfigHistOperation(operation)

		if len(changeMap) > 0 {
			if err := json.Unmarshal(changeMap, &event.ChangeMap); err != nil {
				return nil, fmt.Errorf("%w: config history change map: %w", ErrFailedToScan, err)
			}
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: config history: %w", ErrFailedToQuery, err)
	}

	return events, nil
}

// InsertConfigChanges stores events in one batch, skipping any whose key is
// already present. It returns the number of rows written.
func (db *DB) InsertConfigChanges(ctx context.Context, events []*models.ConfigChangeEvent) (int, error) {
	batch := &pgx.Batch{}

	for _, event := range events {
		if event == nil {
			continue
		}

		if event.ID == "" {
			event.ID = uuid.NewString()
		}

		args, err := buildConfigChangeArgs(event)
		if err != nil {
			return 0, err
		}

		batch.Queue(insertConfigChangeSQL, args...)
	}

	inserted, err := sendBatchRowsAffected(ctx, batch, db.executor.SendBatch, "config history")
	if err != nil {
		return int(inserted), fmt.Errorf("%w: config history: %w", ErrFailedToInsert, err)
	}

	return int(inserted), nil
}

func buildConfigChangeArgs(event *models.ConfigChangeEvent) ([]interface{}, error) {
	changeMap := event.ChangeMap
	if changeMap == nil {
		changeMap = map[string]interface{}{}
	}

	raw, err := json.Marshal(changeMap)
	if err != nil {
		return nil, fmt.Errorf("%w: config history change map: %w", ErrFailedToInsert, err)
	}

	return []interface{}{
		event.ID,
		event.CollectorID,
		event.UserID,
		event.UserName,
		string(event.Operation),
		event.Timestamp,
		json.RawMessage(raw),
	}, nil
}
