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

package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mercadopago-community/sdk-go/core/credentials"
	"github.com/mercadopago-community/sdk-go/core/transport"
	"github.com/mercadopago-community/sdk-go/core/transport/httptransport"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.mercadopago.com"

// Client is the authenticated request core. It holds no per-request state
// and is safe for concurrent use.
type Client struct {
	baseURL     string
	credentials credentials.Source
	transport   transport.Transport
	logger      *zap.Logger
}

// NewClient creates a client that authenticates with creds unless a call
// carries its own access token.
func NewClient(creds credentials.Source, opts ...ClientOption) (*Client, error) {
	if creds == nil {
		return nil, errors.New("NewClient: credentials source is nil")
	}

	c := &Client{
		baseURL:     DefaultBaseURL,
		credentials: creds,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		if opt == nil {
			return nil, fmt.Errorf("NewClient: received a nil ClientOption")
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.transport == nil {
		c.transport = httptransport.New(nil)
	}
	if !strings.HasPrefix(c.baseURL, "https://") {
		c.logger.Warn("base URL is not HTTPS; bearer tokens may be exposed", zap.String("base_url", c.baseURL))
	}
	return c, nil
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Credentials returns the credential source the client was built with.
func (c *Client) Credentials() credentials.Source { return c.credentials }

// Close closes idle connections of the underlying transport, if it keeps any.
func (c *Client) Close() {
	if closer, ok := c.transport.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// NewIdempotencyKey returns a random key for X-Idempotency-Key. Reuse the
// same key when retrying the same POST.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
