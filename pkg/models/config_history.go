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

package models

// ConfigHistOperation is the kind of change recorded for a quality profile.
type ConfigHistOperation string

const (
	ConfigHistCreated ConfigHistOperation = "CREATED"
	ConfigHistDeleted ConfigHistOperation = "DELETED"
	ConfigHistChanged ConfigHistOperation = "CHANGED"
)

// ConfigChangeEvent records one change made to a quality profile.
type ConfigChangeEvent struct {
	ID          string                 `json:"id"`
	CollectorID string                 `json:"collector_id"`
	UserName    string                 `json:"user_name"`
	UserID      string                 `json:"user_id"`
	Operation   ConfigHistOperation    `json:"operation"`
	Timestamp   int64                  `json:"timestamp"` // epoch milliseconds
	ChangeMap   map[string]interface{} `json:"change_map"`
}

// ConfigChangeKey is the deduplication key of a ConfigChangeEvent. Events
// with equal keys are the same event regardless of payload.
type ConfigChangeKey struct {
	CollectorID string
	UserID      string
	Operation   ConfigHistOperation
	Timestamp   int64
}

// Key returns the deduplication key of the event.
func (e *ConfigChangeEvent) Key() ConfigChangeKey {
	return ConfigChangeKey{
		CollectorID: e.CollectorID,
		UserID:      e.UserID,
		Operation:   e.Operation,
		Timestamp:   e.Timestamp,
	}
}

// QualityProfile describes a quality profile on a remote server.
type QualityProfile struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
}
