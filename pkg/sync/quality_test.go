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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/qualitysync/pkg/models"
)

func TestRefreshQuality(t *testing.T) {
	store := newMemStore()
	engine := newMemEngine(store, &fakeFactory{})

	enabled := &models.ProjectRecord{ID: "r1", CollectorID: "c", InstanceURL: serverA, ProjectKey: "A", Enabled: true}
	disabled := &models.ProjectRecord{ID: "r2", CollectorID: "c", InstanceURL: serverA, ProjectKey: "B"}
	noAnalysis := &models.ProjectRecord{ID: "r3", CollectorID: "c", InstanceURL: serverA, ProjectKey: "C", Enabled: true}
	broken := &models.ProjectRecord{ID: "r4", CollectorID: "c", InstanceURL: serverA, ProjectKey: "D", Enabled: true}

	fetcher := &fakeFetcher{
		url: serverA,
		quality: map[string]*models.QualityObservation{
			"A": {Timestamp: 1000, Name: "A"},
			"B": {Timestamp: 1000, Name: "B"},
		},
		qualityErr: map[string]error{"D": errors.New("timeout")},
	}

	projects := []*models.ProjectRecord{enabled, disabled, noAnalysis, broken}

	count, err := engine.RefreshQuality(context.Background(), projects, fetcher)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, enabled.LastUpdated.IsZero())
	assert.True(t, disabled.LastUpdated.IsZero())

	require.Len(t, store.quality, 1)
	assert.Equal(t, "r1", store.quality[qualityKey{"r1", 1000}].CollectorItemID)

	// Same analysis again: nothing new.
	count, err = engine.RefreshQuality(context.Background(), projects, fetcher)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Len(t, store.quality, 1)

	// A new analysis is stored next to the old one.
	fetcher.quality["A"] = &models.QualityObservation{Timestamp: 2000, Name: "A"}

	count, err = engine.RefreshQuality(context.Background(), projects, fetcher)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, store.quality, 2)
}

func TestRefreshQualityCountsOnlyInsertedRows(t *testing.T) {
	ctrl := gomock.NewController(t)

	projects := NewMockProjectStore(ctrl)
	quality := NewMockQualityStore(ctrl)
	fetcher := NewMockProjectFetcher(ctrl)
	clock := NewMockClock(ctrl)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	engine, err := NewEngine(&EngineConfig{
		Projects:   projects,
		Quality:    quality,
		History:    NewMockConfigHistoryStore(ctrl),
		Components: NewMockComponentStore(ctrl),
		Fetchers:   NewMockFetcherFactory(ctrl),
		Clock:      clock,
	})
	require.NoError(t, err)

	record := &models.ProjectRecord{ID: "r1", ProjectKey: "A", Enabled: true}

	fetcher.EXPECT().CurrentQuality(gomock.Any(), record).Return(&models.QualityObservation{Timestamp: 7}, nil)
	quality.EXPECT().FindQualityByItemAndTimestamp(gomock.Any(), "r1", int64(7)).Return(nil, nil)
	clock.EXPECT().Now().Return(now)
	projects.EXPECT().SaveProjects(gomock.Any(), []*models.ProjectRecord{record}).Return(nil)
	// Another writer stored the same observation between lookup and insert.
	quality.EXPECT().
		InsertQuality(gomock.Any(), &models.QualityObservation{CollectorItemID: "r1", Timestamp: 7}).
		Return(false, nil)

	count, err := engine.RefreshQuality(context.Background(), []*models.ProjectRecord{record}, fetcher)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, now, record.LastUpdated)
}

func TestRefreshQualityReturnsStoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)

	quality := NewMockQualityStore(ctrl)
	fetcher := NewMockProjectFetcher(ctrl)

	engine, err := NewEngine(&EngineConfig{
		Projects:   NewMockProjectStore(ctrl),
		Quality:    quality,
		History:    NewMockConfigHistoryStore(ctrl),
		Components: NewMockComponentStore(ctrl),
		Fetchers:   NewMockFetcherFactory(ctrl),
	})
	require.NoError(t, err)

	boom := errors.New("connection reset")
	record := &models.ProjectRecord{ID: "r1", ProjectKey: "A", Enabled: true}
	second := &models.ProjectRecord{ID: "r2", ProjectKey: "B", Enabled: true}

	fetcher.EXPECT().CurrentQuality(gomock.Any(), record).Return(&models.QualityObservation{Timestamp: 7}, nil)
	quality.EXPECT().FindQualityByItemAndTimestamp(gomock.Any(), "r1", int64(7)).Return(nil, boom)

	_, err = engine.RefreshQuality(context.Background(), []*models.ProjectRecord{record, second}, fetcher)
	require.ErrorIs(t, err, boom)
}
