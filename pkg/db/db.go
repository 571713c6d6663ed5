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

// Package db is the record store: project records, quality observations,
// configuration history and dashboard components kept in PostgreSQL.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

// pgxExecutor is the subset of *pgxpool.Pool used by the store.
type pgxExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// DB is the PostgreSQL-backed record store.
type DB struct {
	pool     *pgxpool.Pool
	executor pgxExecutor
	logger   logger.Logger
}

// New connects to the configured cluster and applies pending migrations.
func New(ctx context.Context, cfg *models.CNPGDatabase, log logger.Logger) (*DB, error) {
	if cfg == nil {
		return nil, ErrDatabaseNotConfigured
	}

	pool, err := NewCNPGPool(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	if err := RunCNPGMigrations(ctx, pool, log); err != nil {
		pool.Close()

		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return &DB{
		pool:     pool,
		executor: pool,
		logger:   log,
	}, nil
}

// Close releases the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

func (db *DB) sendBatch(ctx context.Context, batch *pgx.Batch, operation string) error {
	return sendBatchExecAll(ctx, batch, db.executor.SendBatch, operation)
}
