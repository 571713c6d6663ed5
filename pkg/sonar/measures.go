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
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	measuresPath = "/api/measures/component"
	analysesPath = "/api/project_analyses/search"

	// dateLayout is the timestamp format the server API documents.
	dateLayout = "2006-01-02T15:04:05-0700"
)

// errUnknownDateFormat is returned when a date matches none of dateLayouts.
var errUnknownDateFormat = errors.New("unknown date format")

// dateLayouts lists the accepted API date forms: numeric offset without a
// colon, and RFC 3339 (colon offset or Z).
//
//nolint:gochecknoglobals // fixed list
var dateLayouts = []string{dateLayout, time.RFC3339}

// ParseDate parses an API timestamp in any of the accepted forms.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", errUnknownDateFormat, value)
}

// SecurityMetricKeys are the measures collected for each project.
//
//nolint:gochecknoglobals // fixed list
var SecurityMetricKeys = []string{
	"vulnerabilities",
	"security_rating",
	"security_hotspots",
	"security_review_rating",
	"security_hotspots_reviewed",
	"new_vulnerabilities",
}

// CurrentQuality returns the security measures of the project's latest
// analysis, or nil when the project has no analysis or no measures. The
// observation timestamp is the analysis date.
func (c *Client) CurrentQuality(ctx context.Context, project *models.ProjectRecord) (*models.QualityObservation, error) {
	var (
		measures MeasuresResponse
		analyses AnalysesResponse
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query := url.Values{}
		query.Set("component", project.ProjectKey)
		query.Set("metricKeys", strings.Join(SecurityMetricKeys, ","))

		return c.getJSON(gctx, measuresPath, query, &measures)
	})

	g.Go(func() error {
		query := url.Values{}
		query.Set("project", project.ProjectKey)
		query.Set("ps", "1")

		return c.getJSON(gctx, analysesPath, query, &analyses)
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if len(analyses.Analyses) == 0 || len(measures.Component.Measures) == 0 {
		return nil, nil
	}

	latest := analyses.Analyses[0]

	analyzedAt, err := ParseDate(latest.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnalysisDate, err)
	}

	metrics := make([]models.QualityMetric, 0, len(measures.Component.Measures))

	for _, m := range measures.Component.Measures {
		value := m.Value
		if value == "" && m.Period != nil {
			value = m.Period.Value
		}

		metrics = append(metrics, models.QualityMetric{Name: m.Metric, Value: value})
	}

	return &models.QualityObservation{
		CollectorItemID: project.ID,
		Timestamp:       analyzedAt.UnixMilli(),
		Name:            project.ProjectName,
		URL:             c.baseURL + "/dashboard?id=" + url.QueryEscape(project.ProjectKey),
		Version:         latest.ProjectVersion,
		Metrics:         metrics,
	}, nil
}
