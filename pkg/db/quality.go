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
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	findQualitySQL = `
SELECT
	id::text,
	collector_item_id::text,
	timestamp,
	name,
	url,
	version,
	metrics
FROM code_quality
WHERE collector_item_id = $1::uuid AND timestamp = $2
LIMIT 1`

	insertQualitySQL = `
INSERT INTO code_quality (
	id,
	collector_item_id,
	timestamp,
	name,
	url,
	version,
	metrics
) VALUES (
	$1::uuid,$2::uuid,$3,$4,$5,$6,$7
)
ON CONFLICT (collector_item_id, timestamp) DO NOTHING`
)

// FindQualityByItemAndTimestamp returns the observation stored for the
// record at timestamp, or nil when there is none.
func (db *DB) FindQualityByItemAndTimestamp(ctx context.Context, collectorItemID string, timestamp int64) (*models.QualityObservation, error) {
	var (
		obs     models.QualityObservation
		metrics []byte
	)

	err := db.executor.QueryRow(ctx, findQualitySQL, collectorItemID, timestamp).Scan(
		&obs.ID,
		&obs.CollectorItemID,
		&obs.Timestamp,
		&obs.Name,
		&obs.URL,
		&obs.Version,
		&metrics,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: code quality: %w", ErrFailedToQuery, err)
	}

	if len(metrics) > 0 {
		if err := json.Unmarshal(metrics, &obs.Metrics); err != nil {
			return nil, fmt.Errorf("%w: code quality metrics: %w", ErrFailedToScan, err)
		}
	}

	return &obs, nil
}

// InsertQuality stores obs unless an observation with the same record and
// timestamp already exists. It reports whether a row was written.
func (db *DB) InsertQuality(ctx context.Context, obs *models.QualityObservation) (bool, error) {
	if obs.ID == "" {
		obs.ID = uuid.NewString()
	}

	args, err := buildQualityArgs(obs)
	if err != nil {
		return false, err
	}

	tag, err := db.executor.Exec(ctx, insertQualitySQL, args...)
	if err != nil {
		return false, fmt.Errorf("%w: code quality: %w", ErrFailedToInsert, err)
	}

	return tag.RowsAffected() == 1, nil
}

func buildQualityArgs(obs *models.QualityObservation) ([]interface{}, error) {
	metrics := obs.Metrics
	if metrics == nil {
		metrics = []models.QualityMetric{}
	}

	raw, err := json.Marshal(metrics)
	if err != nil {
		return nil, fmt.Errorf("%w: code quality metrics: %w", ErrFailedToInsert, err)
	}

	return []interface{}{
		obs.ID,
		obs.CollectorItemID,
		obs.Timestamp,
		obs.Name,
		obs.URL,
		obs.Version,
		json.RawMessage(raw),
	}, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
