// Copyright 2026 The MercadoPago Go SDK Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package oauth

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// DefaultExpiryBuffer is how long before its expiry a token is treated as
// expired by IsExpired.
const DefaultExpiryBuffer = 300 * time.Second

// TokenSet is the answer of the token endpoint for a seller who authorised
// the application. Persisting it is the caller's job.
type TokenSet struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	UserID       json.Number `json:"user_id"`
	PublicKey    string      `json:"public_key"`
	TokenType    string      `json:"token_type"`
	Scope        string      `json:"scope"`
	LiveMode     bool        `json:"live_mode"`

	// ExpiresAt is ExpiresIn made absolute when the answer was decoded.
	// Store this, not ExpiresIn.
	ExpiresAt time.Time `json:"-"`
}

// Token converts the set to an *oauth2.Token. The user id and public key are
// available through Extra.
func (t *TokenSet) Token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiresAt,
	}
	return tok.WithExtra(map[string]any{
		"user_id":    t.UserID.String(),
		"public_key": t.PublicKey,
		"scope":      t.Scope,
	})
}

// CalculateExpiry converts a relative expires_in to an absolute time. Call it
// as soon as a token is received; the relative value decays.
func CalculateExpiry(expiresInSeconds int64) time.Time {
	return expiryAt(time.Now(), expiresInSeconds)
}

func expiryAt(now time.Time, expiresInSeconds int64) time.Time {
	return now.Add(time.Duration(expiresInSeconds) * time.Second)
}

// IsExpired reports whether expiresAt falls within DefaultExpiryBuffer of
// now, or has passed.
func IsExpired(expiresAt time.Time) bool {
	return IsExpiredWithin(expiresAt, DefaultExpiryBuffer)
}

// IsExpiredWithin reports whether expiresAt < now + buffer.
func IsExpiredWithin(expiresAt time.Time, buffer time.Duration) bool {
	return expiresAt.Before(time.Now().Add(buffer))
}

// State is the life stage of a stored token.
type State int

const (
	StateUnissued State = iota
	StateActive
	StateNearExpiry
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateUnissued:
		return "unissued"
	case StateActive:
		return "active"
	case StateNearExpiry:
		return "near_expiry"
	case StateExpired:
		return "expired"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Evaluate places a token expiring at expiresAt in its life cycle. A zero
// expiresAt means no token was issued. Any state other than StateUnissued
// goes back to StateActive through RefreshToken.
func Evaluate(expiresAt time.Time, buffer time.Duration) State {
	return evaluateAt(time.Now(), expiresAt, buffer)
}

func evaluateAt(now, expiresAt time.Time, buffer time.Duration) State {
	switch {
	case expiresAt.IsZero():
		return StateUnissued
	case !now.Before(expiresAt):
		return StateExpired
	case expiresAt.Before(now.Add(buffer)):
		return StateNearExpiry
	default:
		return StateActive
	}
}
