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

package sync

import (
	"context"

	"github.com/carverauto/qualitysync/pkg/models"
	"github.com/carverauto/qualitysync/pkg/sonar"
)

type sonarFetcherFactory struct {
	factory *sonar.Factory
}

// NewSonarFetcherFactory adapts a sonar.Factory to FetcherFactory.
func NewSonarFetcherFactory(factory *sonar.Factory) FetcherFactory {
	return &sonarFetcherFactory{factory: factory}
}

func (f *sonarFetcherFactory) ForServer(ctx context.Context, server models.ServerDescriptor) (ProjectFetcher, error) {
	client, err := f.factory.ForServer(ctx, server)
	if err != nil {
		return nil, err
	}

	return client, nil
}

var _ ProjectFetcher = (*sonar.Client)(nil)
