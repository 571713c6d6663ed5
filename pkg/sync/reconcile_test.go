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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/qualitysync/pkg/models"
)

func newMockEngine(t *testing.T, ctrl *gomock.Controller) (*Engine, *MockProjectStore, *MockComponentStore) {
	t.Helper()

	projects := NewMockProjectStore(ctrl)
	components := NewMockComponentStore(ctrl)

	engine, err := NewEngine(&EngineConfig{
		Projects:   projects,
		Quality:    NewMockQualityStore(ctrl),
		History:    NewMockConfigHistoryStore(ctrl),
		Components: components,
		Fetchers:   NewMockFetcherFactory(ctrl),
	})
	require.NoError(t, err)

	return engine, projects, components
}

func component(id string, refs ...models.CollectorItemRef) *models.Component {
	return &models.Component{
		ID:             id,
		CollectorItems: map[models.CollectorType][]models.CollectorItemRef{scanKind: refs},
	}
}

func TestCleanStaleStateFlipsOnlyChangedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, projects, components := newMockEngine(t, ctrl)

	collector := &models.Collector{ID: "collector-1"}

	nowReferenced := &models.ProjectRecord{ID: "r1", CollectorID: "collector-1"}
	noLongerReferenced := &models.ProjectRecord{ID: "r2", CollectorID: "collector-1", Enabled: true}
	stillReferenced := &models.ProjectRecord{ID: "r3", CollectorID: "collector-1", Enabled: true}
	untouched := &models.ProjectRecord{ID: "r4", CollectorID: "collector-1"}
	otherCollectorRef := &models.ProjectRecord{ID: "r5", CollectorID: "collector-1"}

	components.EXPECT().FindAllComponents(gomock.Any()).Return([]*models.Component{
		component("dash-1",
			models.CollectorItemRef{ID: "r1", CollectorID: "collector-1"},
			models.CollectorItemRef{ID: "r3", CollectorID: "collector-1"},
			models.CollectorItemRef{ID: "r5", CollectorID: "collector-2"},
		),
		{
			ID: "dash-2",
			CollectorItems: map[models.CollectorType][]models.CollectorItemRef{
				models.CollectorTypeCodeQuality: {{ID: "r4", CollectorID: "collector-1"}},
			},
		},
		nil,
	}, nil)

	projects.EXPECT().
		SaveProjects(gomock.Any(), []*models.ProjectRecord{nowReferenced, noLongerReferenced}).
		Return(nil)

	changed, err := engine.CleanStaleState(context.Background(), collector,
		[]*models.ProjectRecord{nowReferenced, noLongerReferenced, stillReferenced, untouched, otherCollectorRef})
	require.NoError(t, err)

	assert.Len(t, changed, 2)
	assert.True(t, nowReferenced.Enabled)
	assert.False(t, noLongerReferenced.Enabled)
	assert.True(t, stillReferenced.Enabled)
	assert.False(t, untouched.Enabled)
	assert.False(t, otherCollectorRef.Enabled)
}

func TestCleanStaleStateIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, projects, components := newMockEngine(t, ctrl)

	collector := &models.Collector{ID: "collector-1"}
	record := &models.ProjectRecord{ID: "r1", CollectorID: "collector-1"}
	refs := []*models.Component{component("dash-1", models.CollectorItemRef{ID: "r1", CollectorID: "collector-1"})}

	components.EXPECT().FindAllComponents(gomock.Any()).Return(refs, nil).Times(2)
	projects.EXPECT().SaveProjects(gomock.Any(), gomock.Len(1)).Return(nil).Times(1)

	changed, err := engine.CleanStaleState(context.Background(), collector, []*models.ProjectRecord{record})
	require.NoError(t, err)
	assert.Len(t, changed, 1)

	changed, err = engine.CleanStaleState(context.Background(), collector, []*models.ProjectRecord{record})
	require.NoError(t, err)
	assert.Empty(t, changed)
}

func TestCleanStaleStatePropagatesStoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, _, components := newMockEngine(t, ctrl)

	boom := errors.New("query failed")
	components.EXPECT().FindAllComponents(gomock.Any()).Return(nil, boom)

	_, err := engine.CleanStaleState(context.Background(), &models.Collector{ID: "c"}, nil)
	require.ErrorIs(t, err, boom)
}

func TestDeleteUnwantedDetachesBeforeDeleting(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, projects, components := newMockEngine(t, ctrl)

	collector := &models.Collector{ID: "collector-1", Servers: []models.ServerDescriptor{{URL: serverA}}}

	enabledGone := &models.ProjectRecord{ID: "r1", CollectorID: "collector-1", InstanceURL: serverA, ProjectKey: "E", Enabled: true}
	disabledGone := &models.ProjectRecord{ID: "r2", CollectorID: "collector-1", InstanceURL: serverA, ProjectKey: "D"}
	kept := &models.ProjectRecord{ID: "r3", CollectorID: "collector-1", InstanceURL: serverA, ProjectKey: "K", Enabled: true}

	dash := component("dash-1",
		models.CollectorItemRef{ID: "r1", CollectorID: "collector-1"},
		models.CollectorItemRef{ID: "r3", CollectorID: "collector-1"},
	)

	gomock.InOrder(
		components.EXPECT().
			FindComponentsByItem(gomock.Any(), scanKind, []string{"r1"}).
			Return([]*models.Component{dash}, nil),
		components.EXPECT().
			SaveComponents(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, saved []*models.Component) error {
				require.Len(t, saved, 1)
				assert.False(t, references(saved[0], scanKind, "r1"))
				assert.True(t, references(saved[0], scanKind, "r3"))

				return nil
			}),
		projects.EXPECT().
			DeleteProjects(gomock.Any(), []*models.ProjectRecord{enabledGone, disabledGone}).
			Return(nil),
	)

	latest := []models.ProjectSnapshot{snapshot(serverA, "K")}

	deleted, err := engine.DeleteUnwanted(context.Background(), latest,
		[]*models.ProjectRecord{enabledGone, disabledGone, kept}, collector, nil)
	require.NoError(t, err)
	assert.Len(t, deleted, 2)
}

func TestDeleteUnwantedDropsEmptyScanKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, projects, components := newMockEngine(t, ctrl)

	record := &models.ProjectRecord{ID: "r1", CollectorID: "collector-1", InstanceURL: serverA, ProjectKey: "E", Enabled: true}
	dash := component("dash-1", models.CollectorItemRef{ID: "r1", CollectorID: "collector-1"})
	dash.CollectorItems[models.CollectorTypeCodeQuality] = []models.CollectorItemRef{{ID: "q1"}}

	components.EXPECT().FindComponentsByItem(gomock.Any(), scanKind, []string{"r1"}).Return([]*models.Component{dash}, nil)
	components.EXPECT().SaveComponents(gomock.Any(), []*models.Component{dash}).Return(nil)
	projects.EXPECT().DeleteProjects(gomock.Any(), []*models.ProjectRecord{record}).Return(nil)

	_, err := engine.DeleteUnwanted(context.Background(), nil, []*models.ProjectRecord{record}, &models.Collector{ID: "collector-1"}, nil)
	require.NoError(t, err)

	assert.NotContains(t, dash.CollectorItems, scanKind)
	assert.Contains(t, dash.CollectorItems, models.CollectorTypeCodeQuality)
}

func TestDeleteUnwantedDoesNotDeleteWhenDetachFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine, _, components := newMockEngine(t, ctrl)

	boom := errors.New("save failed")
	record := &models.ProjectRecord{ID: "r1", CollectorID: "collector-1", InstanceURL: serverA, ProjectKey: "E", Enabled: true}

	components.EXPECT().FindComponentsByItem(gomock.Any(), scanKind, gomock.Any()).
		Return([]*models.Component{component("dash-1", models.CollectorItemRef{ID: "r1", CollectorID: "collector-1"})}, nil)
	components.EXPECT().SaveComponents(gomock.Any(), gomock.Any()).Return(boom)

	_, err := engine.DeleteUnwanted(context.Background(), nil, []*models.ProjectRecord{record}, &models.Collector{ID: "collector-1"}, nil)
	require.ErrorIs(t, err, boom)
}

func TestDeleteUnwantedCandidates(t *testing.T) {
	collector := &models.Collector{
		ID:      "collector-1",
		Servers: []models.ServerDescriptor{{URL: serverA}, {URL: serverB}},
	}

	latest := []models.ProjectSnapshot{snapshot(serverA, "LISTED")}

	tests := []struct {
		name        string
		record      models.ProjectRecord
		unreachable map[string]bool
		wantDelete  bool
	}{
		{
			name:   "listed on configured server",
			record: models.ProjectRecord{CollectorID: "collector-1", InstanceURL: serverA, ProjectKey: "LISTED"},
		},
		{
			name:       "not listed",
			record:     models.ProjectRecord{CollectorID: "collector-1", InstanceURL: serverA, ProjectKey: "GONE"},
			wantDelete: true,
		},
		{
			name:       "server no longer configured",
			record:     models.ProjectRecord{CollectorID: "collector-1", InstanceURL: "https://old.example.com", ProjectKey: "LISTED"},
			wantDelete: true,
		},
		{
			name:       "owned by another collector",
			record:     models.ProjectRecord{CollectorID: "collector-2", InstanceURL: serverA, ProjectKey: "LISTED"},
			wantDelete: true,
		},
		{
			name:   "pushed and not listed",
			record: models.ProjectRecord{CollectorID: "collector-1", InstanceURL: serverA, ProjectKey: "GONE", Pushed: true},
		},
		{
			name:   "pushed on removed server",
			record: models.ProjectRecord{CollectorID: "collector-1", InstanceURL: "https://old.example.com", ProjectKey: "X", Pushed: true},
		},
		{
			name:        "server unreachable this cycle",
			record:      models.ProjectRecord{CollectorID: "collector-1", InstanceURL: serverB, ProjectKey: "B1"},
			unreachable: map[string]bool{serverB: true},
		},
		{
			name:        "unreachable flag ignored for removed server",
			record:      models.ProjectRecord{CollectorID: "collector-1", InstanceURL: "https://old.example.com", ProjectKey: "X"},
			unreachable: map[string]bool{"https://old.example.com": true},
			wantDelete:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			engine, projects, _ := newMockEngine(t, ctrl)

			record := tt.record
			record.ID = "r1"

			if tt.wantDelete {
				projects.EXPECT().DeleteProjects(gomock.Any(), []*models.ProjectRecord{&record}).Return(nil)
			}

			deleted, err := engine.DeleteUnwanted(context.Background(), latest,
				[]*models.ProjectRecord{&record}, collector, tt.unreachable)
			require.NoError(t, err)

			if tt.wantDelete {
				assert.Len(t, deleted, 1)
			} else {
				assert.Empty(t, deleted)
			}
		})
	}
}
