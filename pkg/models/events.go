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

import "time"

// CloudEvent represents a CloudEvents v1.0 envelope.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// ServerSummary holds the outcome of one server within a cycle.
type ServerSummary struct {
	URL            string `json:"url"`
	Version        string `json:"version,omitempty"`
	Fetched        int    `json:"fetched"`
	Created        int    `json:"created"`
	Updated        int    `json:"updated"`
	QualityUpdated int    `json:"quality_updated"`
	ConfigChanges  int    `json:"config_changes"`
	FetchFailed    bool   `json:"fetch_failed"`
	HistoryFailed  bool   `json:"history_failed,omitempty"`
	HistorySkipped bool   `json:"history_skipped,omitempty"`
	Error          string `json:"error,omitempty"`
}

// CycleSummary is the outcome of one collection cycle.
type CycleSummary struct {
	CollectorID   string          `json:"collector_id"`
	StartedAt     time.Time       `json:"started_at"`
	FinishedAt    time.Time       `json:"finished_at"`
	StateChanges  int             `json:"state_changes"`
	Deleted       int             `json:"deleted"`
	DeleteSkipped bool            `json:"delete_skipped"`
	Servers       []ServerSummary `json:"servers"`
}
