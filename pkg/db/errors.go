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

import "errors"

var (

	// Core database errors.

	ErrDatabaseNotConfigured = errors.New("database not configured")
	ErrFailedOpenDB          = errors.New("failed to open database")
	ErrFailedToInit          = errors.New("failed to initialize schema")

	// Operation errors.

	ErrFailedToScan   = errors.New("failed to scan")
	ErrFailedToQuery  = errors.New("failed to query")
	ErrFailedToInsert = errors.New("failed to insert")
	ErrFailedToDelete = errors.New("failed to delete")

	// TLS.

	ErrCNPGTLSFilesRequired = errors.New("cnpg tls: cert_file, key_file, and ca_file are required")
	ErrCNPGAppendCA         = errors.New("cnpg tls: unable to append CA certificate")
)
