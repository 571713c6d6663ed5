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
	"errors"
	"net/url"
	"strconv"

	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	profilesSearchPath   = "/api/qualityprofiles/search"
	profileProjectsPath  = "/api/qualityprofiles/projects"
	profileChangelogPath = "/api/qualityprofiles/changelog"
	changelogPageSize    = 100
)

// ListQualityProfiles returns every quality profile defined on the server.
func (c *Client) ListQualityProfiles(ctx context.Context) ([]models.QualityProfile, error) {
	var resp ProfilesResponse
	if err := c.getJSON(ctx, profilesSearchPath, nil, &resp); err != nil {
		return nil, err
	}

	profiles := make([]models.QualityProfile, 0, len(resp.Profiles))
	for _, p := range resp.Profiles {
		profiles = append(profiles, models.QualityProfile{Key: p.Key, Name: p.Name, Language: p.Language})
	}

	return profiles, nil
}

// ProjectsForProfile returns the keys of projects associated with the
// profile, or nil when the server does not know the profile.
func (c *Client) ProjectsForProfile(ctx context.Context, profileKey string) ([]string, error) {
	query := url.Values{}
	query.Set("key", profileKey)
	query.Set("ps", strconv.Itoa(searchPageSize))

	var resp ProfileProjectsResponse

	err := c.getJSON(ctx, profileProjectsPath, query, &resp)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		keys = append(keys, r.Key)
	}

	return keys, nil
}

// ChangeEventsForProfile returns the raw changelog of the profile, all pages.
func (c *Client) ChangeEventsForProfile(ctx context.Context, profileKey string) ([]map[string]interface{}, error) {
	var events []map[string]interface{}

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("profileKey", profileKey)
		query.Set("ps", strconv.Itoa(changelogPageSize))
		query.Set("p", strconv.Itoa(page))

		var resp ChangelogResponse
		if err := c.getJSON(ctx, profileChangelogPath, query, &resp); err != nil {
			return nil, err
		}

		events = append(events, resp.Events...)

		if len(resp.Events) == 0 || len(events) >= resp.Total {
			return events, nil
		}
	}
}
