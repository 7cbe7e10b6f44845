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

// Package oauth implements the authorization-code flow used to act on
// behalf of sellers: building the authorization URL, exchanging the code for
// tokens, refreshing them and evaluating their expiry.
//
// The manager keeps no tokens. Callers store the returned TokenSet and pass
// the refresh token back when it is time to renew.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mercadopago-community/sdk-go/core/credentials"
	"github.com/mercadopago-community/sdk-go/core/transport"
	"github.com/mercadopago-community/sdk-go/core/transport/httptransport"
)

const (
	DefaultAuthorizationURL = "https://auth.mercadopago.com/authorization"
	DefaultTokenURL         = credentials.DefaultTokenURL

	ResponseTypeCode = "code"

	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
)

// Manager runs token requests against the token endpoint. It is safe for
// concurrent use.
type Manager struct {
	credentials      credentials.Source
	transport        transport.Transport
	authorizationURL string
	tokenURL         string
	logger           *zap.Logger
	now              func() time.Time

	refreshes singleflight.Group
}

// Option configures a Manager at creation time.
type Option func(*Manager) error

// WithTransport sets the transport used for token requests.
func WithTransport(t transport.Transport) Option {
	return func(m *Manager) error {
		if t == nil {
			return errors.New("WithTransport: transport is nil")
		}
		m.transport = t
		return nil
	}
}

// WithHTTPClient sends token requests through client.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) error {
		if client == nil {
			return errors.New("WithHTTPClient: http client is nil")
		}
		m.transport = httptransport.New(client)
		return nil
	}
}

// WithAuthorizationURL overrides DefaultAuthorizationURL, e.g. for a
// country-specific auth domain.
func WithAuthorizationURL(rawURL string) Option {
	return func(m *Manager) error {
		if err := checkAbsolute(rawURL); err != nil {
			return fmt.Errorf("WithAuthorizationURL: %w", err)
		}
		m.authorizationURL = rawURL
		return nil
	}
}

// WithTokenURL overrides DefaultTokenURL.
func WithTokenURL(rawURL string) Option {
	return func(m *Manager) error {
		if err := checkAbsolute(rawURL); err != nil {
			return fmt.Errorf("WithTokenURL: %w", err)
		}
		m.tokenURL = rawURL
		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			return errors.New("WithLogger: logger is nil")
		}
		m.logger = logger.Named("oauth")
		return nil
	}
}

func checkAbsolute(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", rawURL)
	}
	return nil
}

// New creates a manager for the application identified by creds. The
// client id and secret must be set.
func New(creds credentials.Source, opts ...Option) (*Manager, error) {
	if creds == nil {
		return nil, errors.New("oauth.New: credentials source is nil")
	}
	if err := credentials.Validate(creds); err != nil {
		return nil, fmt.Errorf("oauth.New: %w", err)
	}

	m := &Manager{
		credentials:      creds,
		authorizationURL: DefaultAuthorizationURL,
		tokenURL:         DefaultTokenURL,
		logger:           zap.NewNop(),
		now:              time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			return nil, errors.New("oauth.New: received a nil Option")
		}
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if m.transport == nil {
		m.transport = httptransport.New(nil)
	}
	return m, nil
}

// AuthorizationOptions are the optional parts of an authorization URL.
type AuthorizationOptions struct {
	// State is echoed back on the redirect. Omitted when empty.
	State string
	// ResponseType defaults to ResponseTypeCode.
	ResponseType string
}

// AuthorizationURL returns the URL a seller opens to authorise the
// application. It performs no I/O.
func (m *Manager) AuthorizationURL(redirectURI string, opts AuthorizationOptions) string {
	responseType := opts.ResponseType
	if responseType == "" {
		responseType = ResponseTypeCode
	}

	// The base URL was validated by New.
	u, _ := url.Parse(m.authorizationURL)
	q := u.Query()
	q.Set("client_id", m.credentials.ClientID())
	q.Set("response_type", responseType)
	q.Set("redirect_uri", redirectURI)
	if opts.State != "" {
		q.Set("state", opts.State)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ExchangeCode trades an authorization code for a token set. redirectURI
// must be the one used to build the authorization URL.
func (m *Manager) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenSet, error) {
	return m.requestToken(ctx, GrantAuthorizationCode, map[string]string{
		"code":         code,
		"redirect_uri": redirectURI,
	})
}

// RefreshToken trades a refresh token for a new token set. Concurrent calls
// for the same refresh token share one upstream request; each caller gets
// its own copy of the result. A caller whose ctx ends stops waiting without
// cancelling the shared request.
func (m *Manager) RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error) {
	ch := m.refreshes.DoChan(refreshToken, func() (any, error) {
		return m.requestToken(context.WithoutCancel(ctx), GrantRefreshToken, map[string]string{
			"refresh_token": refreshToken,
		})
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		ts := *res.Val.(*TokenSet)
		return &ts, nil
	case <-ctx.Done():
		return nil, &Error{
			Kind:    KindTransportFailure,
			Failure: failureForContext(ctx.Err()),
			Err:     ctx.Err(),
		}
	}
}

func failureForContext(err error) transport.FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return transport.FailureTimeout
	}
	return transport.FailureConnection
}

// errorBody is the error payload of the token endpoint.
type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

func (m *Manager) requestToken(ctx context.Context, grantType string, params map[string]string) (*TokenSet, error) {
	form := map[string]string{
		"client_id":     m.credentials.ClientID(),
		"client_secret": m.credentials.ClientSecret(),
		"grant_type":    grantType,
	}
	for k, v := range params {
		form[k] = v
	}

	resp, err := m.transport.Send(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    m.tokenURL,
		Header: transport.FormHeaders(),
		Body:   transport.EncodeForm(form),
	})
	if err != nil {
		kind := transport.KindOf(err)
		m.logger.Error("token request failed",
			zap.String("grant_type", grantType),
			zap.String("failure_kind", string(kind)),
			zap.Error(err))
		return nil, &Error{Kind: KindTransportFailure, Failure: kind, Err: err}
	}
	if resp == nil {
		return nil, &Error{Kind: KindTransportFailure, Failure: transport.FailureMalformed, Err: errors.New("transport returned neither a response nor an error")}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var ts TokenSet
		if err := json.Unmarshal(resp.Body, &ts); err != nil {
			m.logger.Error("token response could not be decoded", zap.String("grant_type", grantType))
			return nil, &Error{
				Kind:       KindUnexpectedResponse,
				StatusCode: resp.StatusCode,
				Body:       resp.Body,
				Err:        fmt.Errorf("failed to decode token response: %w", err),
			}
		}
		ts.ExpiresAt = expiryAt(m.now(), ts.ExpiresIn)
		m.logger.Debug("token issued",
			zap.String("grant_type", grantType),
			zap.String("user_id", ts.UserID.String()),
			zap.Time("expires_at", ts.ExpiresAt))
		return &ts, nil

	case http.StatusBadRequest, http.StatusUnauthorized:
		oerr := &Error{Kind: KindBadRequest, StatusCode: resp.StatusCode, Body: resp.Body}
		if resp.StatusCode == http.StatusUnauthorized {
			oerr.Kind = KindUnauthorized
		}
		var body errorBody
		if json.Unmarshal(resp.Body, &body) == nil {
			oerr.Code = body.Error
			oerr.Description = body.Description
		}
		m.logger.Warn("token request rejected",
			zap.String("grant_type", grantType),
			zap.Int("status", resp.StatusCode),
			zap.String("error_code", oerr.Code))
		return nil, oerr

	default:
		m.logger.Error("token request returned unexpected status",
			zap.String("grant_type", grantType),
			zap.Int("status", resp.StatusCode))
		return nil, &Error{Kind: KindUnexpectedResponse, StatusCode: resp.StatusCode, Body: resp.Body}
	}
}
