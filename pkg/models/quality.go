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

// QualityMetric is one named measure in a quality observation.
type QualityMetric struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Status string `json:"status,omitempty"`
}

// QualityObservation is a timestamped snapshot of security metrics for one
// project record. At most one observation exists per (CollectorItemID,
// Timestamp).
type QualityObservation struct {
	ID              string          `json:"id"`
	CollectorItemID string          `json:"collector_item_id"`
	Timestamp       int64           `json:"timestamp"` // epoch milliseconds of the analysis
	Name            string          `json:"name"`
	URL             string          `json:"url"`
	Version         string          `json:"version,omitempty"`
	Metrics         []QualityMetric `json:"metrics"`
}
