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

// CollectorType is the scan kind under which a component references records.
type CollectorType string

const (
	CollectorTypeStaticSecurityScan CollectorType = "StaticSecurityScan"
	CollectorTypeCodeQuality        CollectorType = "CodeQuality"
)

// CollectorItemRef is a reference from a dashboard component to a record.
type CollectorItemRef struct {
	ID          string `json:"id"`
	CollectorID string `json:"collector_id"`
}

// Component is a dashboard component and the records attached to it.
type Component struct {
	ID             string                               `json:"id"`
	Name           string                               `json:"name"`
	CollectorItems map[CollectorType][]CollectorItemRef `json:"collector_items"`
}

// Detach removes every reference to itemID under kind, dropping the kind
// entirely when no references remain. It reports whether anything changed.
func (c *Component) Detach(kind CollectorType, itemID string) bool {
	refs, ok := c.CollectorItems[kind]
	if !ok {
		return false
	}

	kept := refs[:0]
	for _, ref := range refs {
		if ref.ID != itemID {
			kept = append(kept, ref)
		}
	}

	if len(kept) == len(refs) {
		return false
	}

	if len(kept) == 0 {
		delete(c.CollectorItems, kind)
	} else {
		c.CollectorItems[kind] = kept
	}

	return true
}
