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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

const (
	eventSourcePrefix = "qualitysync/"

	// EventTypeConfigChange is the CloudEvent type of a quality profile change.
	EventTypeConfigChange = "com.carverauto.qualitysync.config_change"
	// EventTypeCycleSummary is the CloudEvent type of a finished cycle.
	EventTypeCycleSummary = "com.carverauto.qualitysync.cycle_summary"

	configChangesSuffix = "config_changes"
	cycleSuffix         = "cycle"
)

// ConfigChangeData is the payload of a config change event.
type ConfigChangeData struct {
	ServerURL string                    `json:"server_url"`
	Change    *models.ConfigChangeEvent `json:"change"`
}

// EventPublisher publishes CloudEvents to a NATS JetStream stream.
type EventPublisher struct {
	js      jetstream.JetStream
	stream  string
	subject string
	logger  logger.Logger
}

// NewEventPublisher creates a publisher writing below subject on stream.
func NewEventPublisher(js jetstream.JetStream, streamName, subject string, log logger.Logger) *EventPublisher {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &EventPublisher{
		js:      js,
		stream:  streamName,
		subject: subject,
		logger:  log,
	}
}

// ConfigChangesSubject is the subject config change events are published on.
func (p *EventPublisher) ConfigChangesSubject() string {
	return p.subject + "." + configChangesSuffix
}

// CycleSubject is the subject cycle summaries are published on.
func (p *EventPublisher) CycleSubject() string {
	return p.subject + "." + cycleSuffix
}

// PublishConfigChanges publishes one event per change. The JetStream message
// id is derived from the change key, so a change republished within the
// stream's duplicate window is dropped by the server.
func (p *EventPublisher) PublishConfigChanges(
	ctx context.Context, collectorID, serverURL string, changes []*models.ConfigChangeEvent,
) error {
	var errs []error

	for _, change := range changes {
		ts := time.UnixMilli(change.Timestamp).UTC()

		event := models.CloudEvent{
			SpecVersion:     "1.0",
			ID:              uuid.New().String(),
			Source:          eventSourcePrefix + collectorID,
			Type:            EventTypeConfigChange,
			DataContentType: "application/json",
			Subject:         p.ConfigChangesSubject(),
			Time:            &ts,
			Data:            ConfigChangeData{ServerURL: serverURL, Change: change},
		}

		if err := p.publish(ctx, &event, configChangeMsgID(change)); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// PublishCycleSummary publishes the outcome of a cycle.
func (p *EventPublisher) PublishCycleSummary(ctx context.Context, summary *models.CycleSummary) error {
	ts := summary.FinishedAt

	event := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSourcePrefix + summary.CollectorID,
		Type:            EventTypeCycleSummary,
		DataContentType: "application/json",
		Subject:         p.CycleSubject(),
		Time:            &ts,
		Data:            summary,
	}

	msgID := fmt.Sprintf("%s:%d", summary.CollectorID, summary.StartedAt.UnixNano())

	return p.publish(ctx, &event, msgID)
}

func (p *EventPublisher) publish(ctx context.Context, event *models.CloudEvent, msgID string) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, eventBytes, jetstream.WithMsgID(msgID))
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", event.Subject).
		Uint64("seq", ack.Sequence).
		Bool("duplicate", ack.Duplicate).
		Msg("Published event")

	return nil
}

func configChangeMsgID(change *models.ConfigChangeEvent) string {
	return fmt.Sprintf("%s:%s:%s:%d", change.CollectorID, change.UserID, change.Operation, change.Timestamp)
}

// CreateEventPublisher creates an EventPublisher for an existing NATS
// connection. The stream is created when missing, and its subjects are
// extended when they do not cover subject.>.
func CreateEventPublisher(
	ctx context.Context, nc *nats.Conn, domain, streamName, subject string, log logger.Logger,
) (*EventPublisher, error) {
	var (
		js  jetstream.JetStream
		err error
	)

	if domain != "" {
		js, err = jetstream.NewWithDomain(nc, domain)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream context with domain %s: %w", domain, err)
		}
	} else {
		js, err = jetstream.New(nc)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream context: %w", err)
		}
	}

	if err := ensureStream(ctx, js, streamName, subject+".>", log); err != nil {
		return nil, err
	}

	return NewEventPublisher(js, streamName, subject, log), nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream, streamName, subject string, log logger.Logger) error {
	stream, err := js.Stream(ctx, streamName)
	if err != nil {
		if !isStreamMissingErr(err) {
			return fmt.Errorf("failed to look up stream %s: %w", streamName, err)
		}

		_, err = js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}

		log.Info().Str("stream", streamName).Str("subject", subject).Msg("Created NATS JetStream stream")

		return nil
	}

	cfg := stream.CachedInfo().Config

	subjects := ensureSubjectList(cfg.Subjects, subject)
	if len(subjects) == len(cfg.Subjects) {
		return nil
	}

	cfg.Subjects = subjects

	if _, err := js.UpdateStream(ctx, cfg); err != nil {
		return fmt.Errorf("failed to add subject %s to stream %s: %w", subject, streamName, err)
	}

	log.Info().Str("stream", streamName).Strs("subjects", subjects).Msg("Updated NATS JetStream stream subjects")

	return nil
}

// ensureSubjectList appends subject unless a pattern in subjects already
// covers it.
func ensureSubjectList(subjects []string, subject string) []string {
	for _, pattern := range subjects {
		if matchesSubject(pattern, subject) {
			return subjects
		}
	}

	return append(subjects, subject)
}

// matchesSubject reports whether the NATS subject pattern covers subject.
// A wildcard in subject only matches the same wildcard in pattern.
func matchesSubject(pattern, subject string) bool {
	if pattern == subject {
		return true
	}

	pTokens := strings.Split(pattern, ".")
	sTokens := strings.Split(subject, ".")

	for i, p := range pTokens {
		if p == ">" {
			return len(sTokens) > i
		}

		if i >= len(sTokens) {
			return false
		}

		if p != "*" && p != sTokens[i] {
			return false
		}

		if p == "*" && sTokens[i] == ">" {
			return false
		}
	}

	return len(pTokens) == len(sTokens)
}

func isStreamMissingErr(err error) bool {
	return errors.Is(err, jetstream.ErrStreamNotFound) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrStreamNotFound) ||
		errors.Is(err, nats.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrNoResponders)
}
