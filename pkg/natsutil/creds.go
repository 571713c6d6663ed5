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
	"fmt"
	"os"
	"time"

	"github.com/nats-io/jwt/v2"
	"github.com/nats-io/nkeys"
)

var (
	errCredsExpired  = errors.New("nats user credentials expired")
	errCredsMismatch = errors.New("user seed does not match JWT subject")
)

// userCredentials is a decoded NATS .creds file.
type userCredentials struct {
	jwt     string
	keyPair nkeys.KeyPair
	claims  *jwt.UserClaims
}

// loadUserCredentials reads a .creds file and rejects it when the user JWT
// has expired at now.
func loadUserCredentials(path string, now time.Time) (*userCredentials, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	userJWT, err := jwt.ParseDecoratedJWT(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user JWT: %w", err)
	}

	claims, err := jwt.DecodeUserClaims(userJWT)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user claims: %w", err)
	}

	if claims.Expires != 0 && claims.Expires <= now.Unix() {
		return nil, fmt.Errorf("%w at %s", errCredsExpired, time.Unix(claims.Expires, 0).UTC().Format(time.RFC3339))
	}

	kp, err := jwt.ParseDecoratedUserNKey(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user seed: %w", err)
	}

	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive user public key: %w", err)
	}

	if pub != claims.Subject {
		return nil, fmt.Errorf("%w: %s != %s", errCredsMismatch, pub, claims.Subject)
	}

	return &userCredentials{jwt: userJWT, keyPair: kp, claims: claims}, nil
}

func (c *userCredentials) sign(nonce []byte) ([]byte, error) {
	return c.keyPair.Sign(nonce)
}
