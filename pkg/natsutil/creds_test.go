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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/jwt/v2"
	"github.com/nats-io/nkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	kp  nkeys.KeyPair
	pub string
	jwt string
}

func newTestUser(t *testing.T, expires time.Time) testUser {
	t.Helper()

	accountKP, err := nkeys.CreateAccount()
	require.NoError(t, err)

	userKP, err := nkeys.CreateUser()
	require.NoError(t, err)

	userPub, err := userKP.PublicKey()
	require.NoError(t, err)

	claims := jwt.NewUserClaims(userPub)
	claims.Name = "qualitysync"
	claims.Permissions.Pub.Allow.Add("qualitysync.>")

	if !expires.IsZero() {
		claims.Expires = expires.Unix()
	}

	token, err := claims.Encode(accountKP)
	require.NoError(t, err)

	return testUser{kp: userKP, pub: userPub, jwt: token}
}

func writeCredsFile(t *testing.T, token string, seedOf nkeys.KeyPair) string {
	t.Helper()

	seed, err := seedOf.Seed()
	require.NoError(t, err)

	content, err := jwt.FormatUserConfig(token, seed)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "qualitysync.creds")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestLoadUserCredentials(t *testing.T) {
	now := time.Now()
	user := newTestUser(t, now.Add(time.Hour))

	creds, err := loadUserCredentials(writeCredsFile(t, user.jwt, user.kp), now)
	require.NoError(t, err)

	assert.Equal(t, user.jwt, creds.jwt)
	assert.Equal(t, user.pub, creds.claims.Subject)
	assert.Equal(t, "qualitysync", creds.claims.Name)

	nonce := []byte("server-nonce")

	sig, err := creds.sign(nonce)
	require.NoError(t, err)
	require.NoError(t, user.kp.Verify(nonce, sig))
}

func TestLoadUserCredentialsWithoutExpiry(t *testing.T) {
	user := newTestUser(t, time.Time{})

	_, err := loadUserCredentials(writeCredsFile(t, user.jwt, user.kp), time.Now())
	require.NoError(t, err)
}

func TestLoadUserCredentialsRejects(t *testing.T) {
	now := time.Now()

	expired := newTestUser(t, now.Add(-time.Minute))
	valid := newTestUser(t, now.Add(time.Hour))
	other := newTestUser(t, now.Add(time.Hour))

	garbage := filepath.Join(t.TempDir(), "garbage.creds")
	require.NoError(t, os.WriteFile(garbage, []byte("not a creds file"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr error
		wantMsg string
	}{
		{name: "expired", path: writeCredsFile(t, expired.jwt, expired.kp), wantErr: errCredsExpired},
		{name: "seed of another user", path: writeCredsFile(t, valid.jwt, other.kp), wantErr: errCredsMismatch},
		{name: "missing file", path: filepath.Join(t.TempDir(), "absent.creds"), wantErr: os.ErrNotExist},
		{name: "malformed", path: garbage, wantMsg: "failed to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadUserCredentials(tt.path, now)
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}

			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
