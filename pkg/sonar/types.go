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

// Paging is the paging block returned by search endpoints.
type Paging struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

// ComponentSearchResponse is the body of /api/components/search.
type ComponentSearchResponse struct {
	Paging     Paging            `json:"paging"`
	Components []RemoteComponent `json:"components"`
}

// RemoteComponent is a project as listed by the server.
type RemoteComponent struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	Qualifier string `json:"qualifier"`
}

// MeasuresResponse is the body of /api/measures/component.
type MeasuresResponse struct {
	Component struct {
		Key      string    `json:"key"`
		Name     string    `json:"name"`
		Measures []Measure `json:"measures"`
	} `json:"component"`
}

// Measure is one metric value for a component.
type Measure struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
	// Period holds the leak-period value of "new_" metrics.
	Period *struct {
		Value string `json:"value"`
	} `json:"period,omitempty"`
}

// AnalysesResponse is the body of /api/project_analyses/search.
type AnalysesResponse struct {
	Paging   Paging     `json:"paging"`
	Analyses []Analysis `json:"analyses"`
}

type Analysis struct {
	Key            string `json:"key"`
	Date           string `json:"date"`
	ProjectVersion string `json:"projectVersion,omitempty"`
}

// ProfilesResponse is the body of /api/qualityprofiles/search.
type ProfilesResponse struct {
	Profiles []struct {
		Key      string `json:"key"`
		Name     string `json:"name"`
		Language string `json:"language"`
	} `json:"profiles"`
}

// ProfileProjectsResponse is the body of /api/qualityprofiles/projects.
type ProfileProjectsResponse struct {
	Paging  Paging `json:"paging"`
	Results []struct {
		ID       interface{} `json:"id"`
		Key      string      `json:"key"`
		Name     string      `json:"name"`
		Selected bool        `json:"selected"`
	} `json:"results"`
}

// ChangelogResponse is the body of /api/qualityprofiles/changelog. Events are
// kept raw so the payload can be stored unchanged.
type ChangelogResponse struct {
	Total  int                      `json:"total"`
	Page   int                      `json:"p"`
	Size   int                      `json:"ps"`
	Events []map[string]interface{} `json:"events"`
}
