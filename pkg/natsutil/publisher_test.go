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

package natsutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	testStream  = "events"
	testSubject = "qualitysync"
	testServer  = "https://sonar.example.com"
)

func runJetStreamServer(t *testing.T) *server.Server {
	t.Helper()

	srv, err := server.NewServer(&server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	})
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatal("nats server not ready for connections")
	}

	require.Eventually(t, func() bool {
		return srv.JetStreamEnabled()
	}, 5*time.Second, 50*time.Millisecond)

	t.Cleanup(srv.Shutdown)

	return srv
}

type publisherHarness struct {
	ctx    context.Context
	js     jetstream.JetStream
	pub    *EventPublisher
	stream jetstream.Stream
}

func newPublisherHarness(t *testing.T) *publisherHarness {
	t.Helper()

	srv := runJetStreamServer(t)

	nc, err := Connect(ConnectOptions{URL: srv.ClientURL(), Name: "qualitysync-test"}, logger.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	t.Cleanup(cancel)

	pub, err := CreateEventPublisher(ctx, nc, "", testStream, testSubject, logger.NewTestLogger())
	require.NoError(t, err)

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	stream, err := js.Stream(ctx, testStream)
	require.NoError(t, err)

	return &publisherHarness{ctx: ctx, js: js, pub: pub, stream: stream}
}

func (h *publisherHarness) messages(t *testing.T) uint64 {
	t.Helper()

	info, err := h.stream.Info(h.ctx)
	require.NoError(t, err)

	return info.State.Msgs
}

func (h *publisherHarness) lastEvent(t *testing.T, subject string, data interface{}) models.CloudEvent {
	t.Helper()

	msg, err := h.stream.GetLastMsgForSubject(h.ctx, subject)
	require.NoError(t, err)

	var event models.CloudEvent
	require.NoError(t, json.Unmarshal(msg.Data, &event))

	raw, err := json.Marshal(event.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, data))

	return event
}

func TestCreateEventPublisherCreatesStream(t *testing.T) {
	h := newPublisherHarness(t)

	info, err := h.stream.Info(h.ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"qualitysync.>"}, info.Config.Subjects)
	assert.Equal(t, "qualitysync.config_changes", h.pub.ConfigChangesSubject())
	assert.Equal(t, "qualitysync.cycle", h.pub.CycleSubject())
}

func TestCreateEventPublisherExtendsExistingStream(t *testing.T) {
	srv := runJetStreamServer(t)

	nc, err := Connect(ConnectOptions{URL: srv.ClientURL()}, nil)
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{Name: testStream, Subjects: []string{"events.poller.*"}})
	require.NoError(t, err)

	_, err = CreateEventPublisher(ctx, nc, "", testStream, testSubject, nil)
	require.NoError(t, err)

	stream, err := js.Stream(ctx, testStream)
	require.NoError(t, err)

	info, err := stream.Info(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"events.poller.*", "qualitysync.>"}, info.Config.Subjects)

	// A second publisher leaves a covering stream alone.
	_, err = CreateEventPublisher(ctx, nc, "", testStream, testSubject, nil)
	require.NoError(t, err)

	info, err = stream.Info(ctx)
	require.NoError(t, err)
	assert.Len(t, info.Config.Subjects, 2)
}

func TestPublishConfigChanges(t *testing.T) {
	h := newPublisherHarness(t)

	changes := []*models.ConfigChangeEvent{
		{
			CollectorID: "collector-1",
			UserID:      "alice",
			UserName:    "Alice",
			Operation:   models.ConfigHistChanged,
			Timestamp:   1709283600000,
			ChangeMap:   map[string]interface{}{"event": map[string]interface{}{"action": "UPDATED"}},
		},
		{
			CollectorID: "collector-1",
			UserID:      "bob",
			UserName:    "Bob",
			Operation:   models.ConfigHistCreated,
			Timestamp:   1709287200000,
		},
	}

	require.NoError(t, h.pub.PublishConfigChanges(h.ctx, "collector-1", testServer, changes))
	assert.Equal(t, uint64(2), h.messages(t))

	// Republishing the same change within the duplicate window is dropped.
	require.NoError(t, h.pub.PublishConfigChanges(h.ctx, "collector-1", testServer, changes[:1]))
	assert.Equal(t, uint64(2), h.messages(t))

	var data ConfigChangeData

	event := h.lastEvent(t, h.pub.ConfigChangesSubject(), &data)

	assert.Equal(t, "1.0", event.SpecVersion)
	assert.Equal(t, EventTypeConfigChange, event.Type)
	assert.Equal(t, "qualitysync/collector-1", event.Source)
	assert.NotEmpty(t, event.ID)
	require.NotNil(t, event.Time)
	assert.True(t, event.Time.Equal(time.UnixMilli(1709287200000)))

	assert.Equal(t, testServer, data.ServerURL)
	require.NotNil(t, data.Change)
	assert.Equal(t, "bob", data.Change.UserID)
	assert.Equal(t, models.ConfigHistCreated, data.Change.Operation)
}

func TestPublishCycleSummary(t *testing.T) {
	h := newPublisherHarness(t)

	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	summary := &models.CycleSummary{
		CollectorID:  "collector-1",
		StartedAt:    started,
		FinishedAt:   started.Add(42 * time.Second),
		StateChanges: 1,
		Deleted:      2,
		Servers: []models.ServerSummary{
			{URL: testServer, Version: "9.9", Fetched: 3, Created: 1},
			{URL: "https://down.example.com", FetchFailed: true, Error: "connection refused"},
		},
	}

	require.NoError(t, h.pub.PublishCycleSummary(h.ctx, summary))

	var got models.CycleSummary

	event := h.lastEvent(t, h.pub.CycleSubject(), &got)

	assert.Equal(t, EventTypeCycleSummary, event.Type)
	assert.Equal(t, "qualitysync/collector-1", event.Source)
	assert.Equal(t, summary.CollectorID, got.CollectorID)
	assert.Equal(t, 2, got.Deleted)
	require.Len(t, got.Servers, 2)
	assert.True(t, got.Servers[1].FetchFailed)
	assert.Equal(t, "connection refused", got.Servers[1].Error)
}

func TestPublishAfterCloseFails(t *testing.T) {
	srv := runJetStreamServer(t)

	nc, err := Connect(ConnectOptions{URL: srv.ClientURL()}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pub, err := CreateEventPublisher(ctx, nc, "", testStream, testSubject, nil)
	require.NoError(t, err)

	nc.Close()

	err = pub.PublishCycleSummary(ctx, &models.CycleSummary{CollectorID: "collector-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EventTypeCycleSummary)
}

func TestConnectRejectsBrokenTLS(t *testing.T) {
	_, err := Connect(ConnectOptions{
		URL: "nats://127.0.0.1:4222",
		Security: &models.SecurityConfig{
			Mode: models.SecurityModeMTLS,
			TLS:  models.TLSConfig{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"},
		},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build NATS TLS config")
}
