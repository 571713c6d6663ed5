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
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var errTestFixture = errors.New("fixture error")

func TestEnsureSubjectList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subjects []string
		subject  string
		want     []string
	}{
		{
			name:     "adds subject when list empty",
			subjects: nil,
			subject:  "qualitysync.>",
			want:     []string{"qualitysync.>"},
		},
		{
			name:     "keeps list when greater wildcard matches",
			subjects: []string{"qualitysync.>"},
			subject:  "qualitysync.cycle",
			want:     []string{"qualitysync.>"},
		},
		{
			name:     "keeps list when single wildcard matches",
			subjects: []string{"qualitysync.*"},
			subject:  "qualitysync.config_changes",
			want:     []string{"qualitysync.*"},
		},
		{
			name:     "appends when single wildcard cannot cover greater wildcard",
			subjects: []string{"qualitysync.*"},
			subject:  "qualitysync.>",
			want:     []string{"qualitysync.*", "qualitysync.>"},
		},
		{
			name:     "appends when unmatched",
			subjects: []string{"events.poller.*"},
			subject:  "qualitysync.>",
			want:     []string{"events.poller.*", "qualitysync.>"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := ensureSubjectList(append([]string(nil), tc.subjects...), tc.subject)

			if len(result) != len(tc.want) {
				t.Fatalf("expected %d subjects, got %d", len(tc.want), len(result))
			}

			for i := range tc.want {
				if tc.want[i] != result[i] {
					t.Fatalf("result[%d] = %q, want %q", i, result[i], tc.want[i])
				}
			}
		})
	}
}

func TestMatchesSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		subject  string
		expected bool
	}{
		{"exact match", "qualitysync.cycle", "qualitysync.cycle", true},
		{"single wildcard", "*.cycle", "qualitysync.cycle", true},
		{"greater wildcard", "qualitysync.>", "qualitysync.config_changes", true},
		{"greater wildcard needs a token", "qualitysync.>", "qualitysync", false},
		{"no match length", "qualitysync.*", "qualitysync.cycle.extra", false},
		{"no match tokens", "events.poller.*", "qualitysync.cycle", false},
		{"pattern longer than subject", "qualitysync.cycle.extra", "qualitysync.cycle", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := matchesSubject(tc.pattern, tc.subject); got != tc.expected {
				t.Fatalf("matchesSubject(%q, %q) = %t, want %t", tc.pattern, tc.subject, got, tc.expected)
			}
		})
	}
}

func TestIsStreamMissingErr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"jetstream no stream response", jetstream.ErrNoStreamResponse, true},
		{"jetstream stream not found", jetstream.ErrStreamNotFound, true},
		{"nats no stream response", nats.ErrNoStreamResponse, true},
		{"nats stream not found", nats.ErrStreamNotFound, true},
		{"nats no responders", nats.ErrNoResponders, true},
		{"other error", errTestFixture, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := isStreamMissingErr(tc.err); got != tc.expected {
				t.Fatalf("isStreamMissingErr(%v) = %t, want %t", tc.err, got, tc.expected)
			}
		})
	}
}
