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
	"fmt"
	"sort"
	"sync"

	"github.com/carverauto/qualitysync/pkg/models"
)

// memStore is an in-memory record store that enforces the same uniqueness
// rules as the database. Records are copied in and out so the engine cannot
// mutate stored state without saving it.
type memStore struct {
	mu sync.Mutex

	nextID     int
	projects   map[string]models.ProjectRecord
	quality    map[qualityKey]models.QualityObservation
	history    map[models.ConfigChangeKey]models.ConfigChangeEvent
	components map[string]*models.Component

	saveProjectCalls   int
	deleteProjectCalls int
	saveComponentCalls int
	ops                []string

	saveErr    error
	historyErr error
}

type qualityKey struct {
	itemID    string
	timestamp int64
}

func newMemStore() *memStore {
	return &memStore{
		projects:   make(map[string]models.ProjectRecord),
		quality:    make(map[qualityKey]models.QualityObservation),
		history:    make(map[models.ConfigChangeKey]models.ConfigChangeEvent),
		components: make(map[string]*models.Component),
	}
}

func (s *memStore) FindProjectsByCollector(_ context.Context, collectorID string) ([]*models.ProjectRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selectProjects(func(p *models.ProjectRecord) bool { return p.CollectorID == collectorID }), nil
}

func (s *memStore) FindEnabledProjects(_ context.Context, collectorID, instanceURL string) ([]*models.ProjectRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selectProjects(func(p *models.ProjectRecord) bool {
		return p.Enabled && p.CollectorID == collectorID && p.InstanceURL == instanceURL
	}), nil
}

func (s *memStore) FindProject(_ context.Context, identity models.ProjectIdentity) (*models.ProjectRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := s.selectProjects(func(p *models.ProjectRecord) bool { return p.Identity() == identity })
	if len(matches) == 0 {
		return nil, nil
	}

	return matches[0], nil
}

func (s *memStore) selectProjects(match func(*models.ProjectRecord) bool) []*models.ProjectRecord {
	var out []*models.ProjectRecord

	for id := range s.projects {
		p := s.projects[id]
		if match(&p) {
			out = append(out, &p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func (s *memStore) SaveProjects(_ context.Context, projects []*models.ProjectRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveProjectCalls++
	s.ops = append(s.ops, "SaveProjects")

	if s.saveErr != nil {
		return s.saveErr
	}

	for _, p := range projects {
		if p.ID == "" {
			s.nextID++
			p.ID = fmt.Sprintf("rec-%03d", s.nextID)
		}

		s.projects[p.ID] = *p
	}

	return nil
}

func (s *memStore) DeleteProjects(_ context.Context, projects []*models.ProjectRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteProjectCalls++
	s.ops = append(s.ops, "DeleteProjects")

	for _, p := range projects {
		delete(s.projects, p.ID)
	}

	return nil
}

func (s *memStore) FindQualityByItemAndTimestamp(
	_ context.Context, collectorItemID string, timestamp int64,
) (*models.QualityObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obs, ok := s.quality[qualityKey{collectorItemID, timestamp}]
	if !ok {
		return nil, nil
	}

	return &obs, nil
}

func (s *memStore) InsertQuality(_ context.Context, obs *models.QualityObservation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := qualityKey{obs.CollectorItemID, obs.Timestamp}
	if _, exists := s.quality[key]; exists {
		return false, nil
	}

	s.quality[key] = *obs

	return true, nil
}

func (s *memStore) FindConfigChanges(_ context.Context, key models.ConfigChangeKey) ([]*models.ConfigChangeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.history[key]
	if !ok {
		return nil, nil
	}

	return []*models.ConfigChangeEvent{&event}, nil
}

func (s *memStore) InsertConfigChanges(_ context.Context, events []*models.ConfigChangeEvent) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.historyErr != nil {
		return 0, s.historyErr
	}

	inserted := 0

	for _, e := range events {
		if _, exists := s.history[e.Key()]; exists {
			continue
		}

		s.history[e.Key()] = *e
		inserted++
	}

	return inserted, nil
}

func (s *memStore) FindAllComponents(context.Context) ([]*models.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Component, 0, len(s.components))
	for _, c := range s.components {
		out = append(out, copyComponent(c))
	}

	return out, nil
}

func (s *memStore) FindComponentsByItem(
	_ context.Context, kind models.CollectorType, itemIDs []string,
) ([]*models.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Component

	for _, c := range s.components {
		for _, id := range itemIDs {
			if references(c, kind, id) {
				out = append(out, copyComponent(c))
				break
			}
		}
	}

	return out, nil
}

func (s *memStore) SaveComponents(_ context.Context, components []*models.Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveComponentCalls++
	s.ops = append(s.ops, "SaveComponents")

	for _, c := range components {
		s.components[c.ID] = copyComponent(c)
	}

	return nil
}

// attach makes a dashboard component reference the record.
func (s *memStore) attach(componentID string, record *models.ProjectRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.components[componentID]
	if !ok {
		c = &models.Component{ID: componentID, CollectorItems: map[models.CollectorType][]models.CollectorItemRef{}}
		s.components[componentID] = c
	}

	c.CollectorItems[scanKind] = append(c.CollectorItems[scanKind], models.CollectorItemRef{
		ID:          record.ID,
		CollectorID: record.CollectorID,
	})
}

func (s *memStore) put(records ...models.ProjectRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		s.projects[r.ID] = r
	}
}

func (s *memStore) project(identity models.ProjectIdentity) *models.ProjectRecord {
	p, _ := s.FindProject(context.Background(), identity)

	return p
}

func (s *memStore) component(id string) *models.Component {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.components[id]
	if !ok {
		return nil
	}

	return copyComponent(c)
}

func (s *memStore) projectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.projects)
}

func copyComponent(c *models.Component) *models.Component {
	out := &models.Component{
		ID:             c.ID,
		Name:           c.Name,
		CollectorItems: make(map[models.CollectorType][]models.CollectorItemRef, len(c.CollectorItems)),
	}

	for kind, refs := range c.CollectorItems {
		out.CollectorItems[kind] = append([]models.CollectorItemRef(nil), refs...)
	}

	return out
}

// fakeFetcher serves canned responses for one server.
type fakeFetcher struct {
	url      string
	caps     models.ServerCapabilities
	projects []models.ProjectSnapshot
	listErr  error

	quality         map[string]*models.QualityObservation
	qualityErr      map[string]error
	profiles        []models.QualityProfile
	profileProjects map[string][]string
	changelog       map[string][]map[string]interface{}
	profilesErr     error
}

func (f *fakeFetcher) ServerURL() string                       { return f.url }
func (f *fakeFetcher) Capabilities() models.ServerCapabilities { return f.caps }

func (f *fakeFetcher) ListProjects(context.Context) ([]models.ProjectSnapshot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return append([]models.ProjectSnapshot(nil), f.projects...), nil
}

func (f *fakeFetcher) CurrentQuality(_ context.Context, project *models.ProjectRecord) (*models.QualityObservation, error) {
	if err := f.qualityErr[project.ProjectKey]; err != nil {
		return nil, err
	}

	obs, ok := f.quality[project.ProjectKey]
	if !ok || obs == nil {
		return nil, nil
	}

	cp := *obs

	return &cp, nil
}

func (f *fakeFetcher) ListQualityProfiles(context.Context) ([]models.QualityProfile, error) {
	return f.profiles, f.profilesErr
}

func (f *fakeFetcher) ProjectsForProfile(_ context.Context, profileKey string) ([]string, error) {
	return f.profileProjects[profileKey], nil
}

func (f *fakeFetcher) ChangeEventsForProfile(_ context.Context, profileKey string) ([]map[string]interface{}, error) {
	return f.changelog[profileKey], nil
}

// fakeFactory hands out fakeFetchers by server URL.
type fakeFactory struct {
	fetchers map[string]*fakeFetcher
	errs     map[string]error
	calls    []string
	onCall   func(url string)
}

func (f *fakeFactory) ForServer(_ context.Context, server models.ServerDescriptor) (ProjectFetcher, error) {
	f.calls = append(f.calls, server.URL)

	if f.onCall != nil {
		f.onCall(server.URL)
	}

	if err := f.errs[server.URL]; err != nil {
		return nil, err
	}

	fetcher, ok := f.fetchers[server.URL]
	if !ok {
		return nil, fmt.Errorf("no fetcher for %s", server.URL)
	}

	return fetcher, nil
}

func newMemEngine(store *memStore, factory FetcherFactory) *Engine {
	e, err := NewEngine(&EngineConfig{
		Projects:   store,
		Quality:    store,
		History:    store,
		Components: store,
		Fetchers:   factory,
	})
	if err != nil {
		panic(err)
	}

	return e
}

func references(c *models.Component, kind models.CollectorType, itemID string) bool {
	for _, ref := range c.CollectorItems[kind] {
		if ref.ID == itemID {
			return true
		}
	}

	return false
}
