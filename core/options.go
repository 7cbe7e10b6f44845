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
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/mercadopago-community/sdk-go/core/transport"
	"github.com/mercadopago-community/sdk-go/core/transport/httptransport"
)

// ClientOption configures a Client at creation time.
type ClientOption func(*Client) error

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) error {
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("WithBaseURL: base URL must be absolute")
		}
		c.baseURL = strings.TrimRight(baseURL, "/")
		return nil
	}
}

// WithTransport sets the transport used to send requests.
func WithTransport(t transport.Transport) ClientOption {
	return func(c *Client) error {
		if t == nil {
			return errors.New("WithTransport: transport is nil")
		}
		c.transport = t
		return nil
	}
}

// WithHTTPClient sends requests through an http.Client, typically one
// carrying the caller's timeout.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) error {
		if client == nil {
			return errors.New("WithHTTPClient: http client is nil")
		}
		c.transport = httptransport.New(client)
		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) error {
		if logger == nil {
			return errors.New("WithLogger: logger is nil")
		}
		c.logger = logger.Named("mercadopago")
		return nil
	}
}
