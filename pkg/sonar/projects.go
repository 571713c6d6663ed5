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

import (
	"context"
	"net/url"
	"strconv"

	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	componentsSearchPath = "/api/components/search"
	projectQualifier     = "TRK"
	searchPageSize       = 500
)

// ListProjects returns every project on the server, following pagination.
func (c *Client) ListProjects(ctx context.Context) ([]models.ProjectSnapshot, error) {
	var projects []models.ProjectSnapshot

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("qualifiers", projectQualifier)
		query.Set("ps", strconv.Itoa(searchPageSize))
		query.Set("p", strconv.Itoa(page))

		var resp ComponentSearchResponse
		if err := c.getJSON(ctx, componentsSearchPath, query, &resp); err != nil {
			return nil, err
		}

		for i := range resp.Components {
			component := &resp.Components[i]

			projects = append(projects, models.ProjectSnapshot{
				InstanceURL: c.server.URL,
				ProjectKey:  component.Key,
				ProjectID:   component.ID,
				ProjectName: component.Name,
			})
		}

		if len(resp.Components) == 0 || len(projects) >= resp.Paging.Total {
			break
		}
	}

	c.logger.Debug().
		Str("server", c.server.URL).
		Int("projects", len(projects)).
		Msg("Listed remote projects")

	return projects, nil
}
