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
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mercadopago-community/sdk-go/core/transport"
)

// RequestSpec describes one API call.
type RequestSpec struct {
	// Method is one of GET, POST, PUT or DELETE.
	Method string
	// Path is API-relative and may carry a query string, e.g.
	// "/v1/payments/search?status=approved".
	Path string
	// Body is encoded as JSON for POST and PUT and ignored otherwise.
	Body any
	// AccessToken, when set, is sent instead of the application token. Use
	// it to act on behalf of a seller authorised through OAuth.
	AccessToken string
	// IdempotencyKey is sent as X-Idempotency-Key on POST only.
	IdempotencyKey string
}

// Get returns a GET spec for path.
func Get(path string) RequestSpec { return RequestSpec{Method: http.MethodGet, Path: path} }

// Post returns a POST spec for path with body.
func Post(path string, body any) RequestSpec {
	return RequestSpec{Method: http.MethodPost, Path: path, Body: body}
}

// Put returns a PUT spec for path with body.
func Put(path string, body any) RequestSpec {
	return RequestSpec{Method: http.MethodPut, Path: path, Body: body}
}

// Delete returns a DELETE spec for path.
func Delete(path string) RequestSpec { return RequestSpec{Method: http.MethodDelete, Path: path} }

// Execute sends spec and classifies the answer. It never retries and never
// returns an error: every failure is carried in the Outcome. It panics if
// spec.Body cannot be encoded as JSON, or if a 200/201 answer is not JSON.
func (c *Client) Execute(ctx context.Context, spec RequestSpec) Outcome {
	start := time.Now()
	method := strings.ToUpper(spec.Method)

	token := spec.AccessToken
	if token == "" {
		appToken, err := c.credentials.AppToken()
		if err != nil {
			out := transportFailure(transport.FailureCredentials, err)
			logOutcome(c.logger, method, spec.Path, out, time.Since(start))
			return out
		}
		token = appToken
	}

	var body []byte
	if spec.Body != nil && (method == http.MethodPost || method == http.MethodPut) {
		body = mustMarshal(method, spec.Path, spec.Body)
	}

	var idempotencyKey string
	if method == http.MethodPost {
		idempotencyKey = spec.IdempotencyKey
	}

	req := &transport.Request{
		Method: method,
		URL:    transport.JoinURL(c.baseURL, spec.Path),
		Header: transport.BearerHeaders(token, idempotencyKey),
		Body:   body,
	}

	resp, err := c.transport.Send(ctx, req)
	out := Classify(method, resp, err)
	logOutcome(c.logger, method, spec.Path, out, time.Since(start))
	return out
}
