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

	"github.com/jackc/pgx/v5"
)

type batchSender func(context.Context, *pgx.Batch) pgx.BatchResults

// sendBatchExecAll sends batch and reads the result of every queued command,
// so that a failure in any of them is reported rather than only the first.
func sendBatchExecAll(ctx context.Context, batch *pgx.Batch, send batchSender, operation string) error {
	_, err := sendBatchRowsAffected(ctx, batch, send, operation)

	return err
}

// sendBatchRowsAffected is sendBatchExecAll that also sums the rows affected
// by each command. Statements using ON CONFLICT DO NOTHING report 0 for a
// skipped row, so the sum is the number of rows actually written.
func sendBatchRowsAffected(ctx context.Context, batch *pgx.Batch, send batchSender, operation string) (affected int64, err error) {
	if batch == nil || batch.Len() == 0 {
		return 0, nil
	}

	br := send(ctx, batch)
	defer func() {
		if closeErr := br.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%s batch close: %w", operation, closeErr)
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		tag, execErr := br.Exec()
		if execErr != nil {
			return affected, fmt.Errorf("%s batch exec (command %d): %w", operation, i, execErr)
		}

		affected += tag.RowsAffected()
	}

	return affected, nil
}
