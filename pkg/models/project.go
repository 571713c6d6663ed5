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

// ProjectIdentity identifies a remote project for one collector and server.
// Two records describe the same project iff their identities are equal.
type ProjectIdentity struct {
	CollectorID string
	InstanceURL string
	ProjectKey  string
}

// ProjectRecord is the local representation of a remote project.
type ProjectRecord struct {
	ID          string `json:"id"`
	CollectorID string `json:"collector_id"`
	InstanceURL string `json:"instance_url"`
	// ProjectKey is the stable remote identifier used for identity.
	ProjectKey string `json:"project_key"`
	// ProjectID is the id the server currently assigns to the project. It is
	// refreshed on every discovery and is not part of the identity.
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Description string `json:"description"`
	NiceName    string `json:"nice_name"`
	Enabled     bool   `json:"enabled"`
	// Pushed records were written through the API rather than discovered
	// and are never deleted by the collector.
	Pushed      bool      `json:"pushed"`
	LastUpdated time.Time `json:"last_updated"`
}

// Identity returns the identity of the record.
func (p *ProjectRecord) Identity() ProjectIdentity {
	return ProjectIdentity{
		CollectorID: p.CollectorID,
		InstanceURL: p.InstanceURL,
		ProjectKey:  p.ProjectKey,
	}
}

// ProjectSnapshot is a project as returned by a remote server.
type ProjectSnapshot struct {
	InstanceURL string `json:"instance_url"`
	ProjectKey  string `json:"project_key"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
}

// IdentityFor returns the identity the snapshot has under collectorID.
func (s *ProjectSnapshot) IdentityFor(collectorID string) ProjectIdentity {
	return ProjectIdentity{
		CollectorID: collectorID,
		InstanceURL: s.InstanceURL,
		ProjectKey:  s.ProjectKey,
	}
}
