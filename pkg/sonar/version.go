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
	"fmt"
	"strconv"
	"strings"

	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	versionPath = "/api/server/version"

	// changeHistoryMajor is the first major version with the
	// qualityprofiles changelog API.
	changeHistoryMajor = 5
)

// ServerVersion returns the version string reported by the server.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	body, err := c.get(ctx, versionPath, nil)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(body)), nil
}

// ParseVersion returns the major and minor components of a dotted version
// such as "9.9.1.69595".
func ParseVersion(version string) (major, minor int, err error) {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 3)

	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	if len(parts) > 1 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
		}
	}

	return major, minor, nil
}

// CapabilitiesFor selects the behavior for a server reporting version.
func CapabilitiesFor(version string) (models.ServerCapabilities, error) {
	major, _, err := ParseVersion(version)
	if err != nil {
		return models.ServerCapabilities{}, err
	}

	return models.ServerCapabilities{
		Version:       version,
		ChangeHistory: major >= changeHistoryMajor,
	}, nil
}
