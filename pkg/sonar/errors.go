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

package sonar

import "errors"

var (
	// ErrCircuitOpen is returned without contacting the server while its
	// circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")
	// ErrServerError marks a 5xx response.
	ErrServerError = errors.New("server error")
	// ErrUnexpectedStatus marks any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrNotFound marks a 404 response.
	ErrNotFound = errors.New("not found")
	// ErrInvalidVersion is returned when /api/server/version is unparseable.
	ErrInvalidVersion = errors.New("invalid server version")
	// ErrInvalidAnalysisDate is returned when an analysis date is unparseable.
	ErrInvalidAnalysisDate = errors.New("invalid analysis date")
	errMissingURL          = errors.New("server url is required")
)
