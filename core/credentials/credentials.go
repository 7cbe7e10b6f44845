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

// Package credentials provides the application identity used by the request
// core and the OAuth manager: the client id and secret issued for the
// application and the application's own access token.
package credentials

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

// ErrMissingCredential is returned when a required credential is empty.
var ErrMissingCredential = errors.New("missing credential")

// Source supplies the application credentials. Implementations must be safe
// for concurrent use; the core only reads from them.
type Source interface {
	ClientID() string
	ClientSecret() string
	// AppToken returns the application's bearer token.
	AppToken() (string, error)
}

// Static holds credentials fixed at startup.
type Static struct {
	clientID     string
	clientSecret string
	accessToken  string
}

var _ Source = (*Static)(nil)

// NewStatic returns a Source over fixed values. Any of them may be empty:
// a client that only uses per-call tokens needs no app token, and a client
// that never runs OAuth flows needs no id or secret.
func NewStatic(clientID, clientSecret, accessToken string) *Static {
	return &Static{
		clientID:     strings.TrimSpace(clientID),
		clientSecret: strings.TrimSpace(clientSecret),
		accessToken:  strings.TrimSpace(accessToken),
	}
}

func (s *Static) ClientID() string     { return s.clientID }
func (s *Static) ClientSecret() string { return s.clientSecret }

func (s *Static) AppToken() (string, error) {
	if s.accessToken == "" {
		return "", fmt.Errorf("app access token: %w", ErrMissingCredential)
	}
	return s.accessToken, nil
}

// tokenSourceCredentials resolves the app token through an oauth2.TokenSource.
type tokenSourceCredentials struct {
	clientID     string
	clientSecret string
	source       oauth2.TokenSource
}

// FromTokenSource returns a Source whose app token is produced by ts. Token
// caching and rotation are the token source's concern.
func FromTokenSource(clientID, clientSecret string, ts oauth2.TokenSource) Source {
	return &tokenSourceCredentials{clientID: clientID, clientSecret: clientSecret, source: ts}
}

func (c *tokenSourceCredentials) ClientID() string     { return c.clientID }
func (c *tokenSourceCredentials) ClientSecret() string { return c.clientSecret }

func (c *tokenSourceCredentials) AppToken() (string, error) {
	if c.source == nil {
		return "", fmt.Errorf("app access token: %w", ErrMissingCredential)
	}
	token, err := c.source.Token()
	if err != nil {
		return "", fmt.Errorf("failed to resolve app access token: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("app access token: %w", ErrMissingCredential)
	}
	return token.AccessToken, nil
}

// appTokenSource exposes a Source as an oauth2.TokenSource.
type appTokenSource struct {
	src Source
}

// TokenSource adapts src to oauth2.TokenSource, for use with libraries that
// take one.
func TokenSource(src Source) oauth2.TokenSource {
	return &appTokenSource{src: src}
}

func (a *appTokenSource) Token() (*oauth2.Token, error) {
	token, err := a.src.AppToken()
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// Validate reports an error when the client id or secret is missing. OAuth
// flows cannot run without them.
func Validate(src Source) error {
	var missing []string
	if src.ClientID() == "" {
		missing = append(missing, "client_id")
	}
	if src.ClientSecret() == "" {
		missing = append(missing, "client_secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrMissingCredential)
	}
	return nil
}
