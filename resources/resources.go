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

// Package resources maps the API's resources onto the request core. Each
// helper fixes a verb and a path template; bodies are passed through as
// given and every result is a core.Outcome.
package resources

import (
	"context"
	"net/url"

	"github.com/mercadopago-community/sdk-go/core"
)

// Executor runs a request spec. *core.Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, spec core.RequestSpec) core.Outcome
}

// Client exposes the resource helpers.
type Client struct {
	exec Executor
}

// New returns resource helpers that send through exec.
func New(exec Executor) *Client {
	return &Client{exec: exec}
}

// CallOption adjusts a single call.
type CallOption func(*core.RequestSpec)

// WithAccessToken authenticates the call with token instead of the
// application token, e.g. a seller token obtained through OAuth.
func WithAccessToken(token string) CallOption {
	return func(s *core.RequestSpec) { s.AccessToken = token }
}

// WithIdempotencyKey marks a POST as safe to retry with the same key.
func WithIdempotencyKey(key string) CallOption {
	return func(s *core.RequestSpec) { s.IdempotencyKey = key }
}

func (c *Client) do(ctx context.Context, spec core.RequestSpec, opts []CallOption) core.Outcome {
	for _, opt := range opts {
		if opt != nil {
			opt(&spec)
		}
	}
	return c.exec.Execute(ctx, spec)
}

// withQuery appends an encoded query to path when filters is not empty.
func withQuery(path string, filters url.Values) string {
	if len(filters) == 0 {
		return path
	}
	return path + "?" + filters.Encode()
}

func segment(id string) string {
	return url.PathEscape(id)
}
