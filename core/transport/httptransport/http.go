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

package httptransport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/mercadopago-community/sdk-go/core/transport"
)

type HTTPTransport struct {
	httpClient *http.Client
}

// Ensure that HTTPTransport implements the Transport interface.
var _ transport.Transport = &HTTPTransport{}

// New returns a transport backed by client. A nil client gets a zero
// http.Client, which has no timeout; timeout policy belongs to the caller.
func New(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPTransport{httpClient: client}
}

// Client returns the underlying http.Client.
func (t *HTTPTransport) Client() *http.Client { return t.httpClient }

// Send executes req and returns the status code, headers and body whatever
// the status. Any error is a *transport.Error.
func (t *HTTPTransport) Send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	if req == nil {
		return nil, transport.NewError(transport.FailureMalformed, errors.New("nil request"))
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, transport.NewError(transport.FailureMalformed, fmt.Errorf("failed to create HTTP request: %w", err))
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, transport.NewError(classify(err), fmt.Errorf("HTTP %s %s failed: %w", req.Method, httpReq.URL.Path, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transport.NewError(classifyRead(err), fmt.Errorf("failed to read response body: %w", err))
	}

	headers := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &transport.Response{
		StatusCode: resp.StatusCode,
		Header:     headers,
		Body:       respBody,
	}, nil
}

// CloseIdleConnections closes idle connections held by the underlying
// client's transport.
func (t *HTTPTransport) CloseIdleConnections() {
	t.httpClient.CloseIdleConnections()
}

func classify(err error) transport.FailureKind {
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr):
		return transport.FailureDNS
	case errors.Is(err, context.DeadlineExceeded), os.IsTimeout(err):
		return transport.FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return transport.FailureTimeout
	}
	return transport.FailureConnection
}

// classifyRead maps body read failures. A truncated body is malformed
// rather than a connection problem.
func classifyRead(err error) transport.FailureKind {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return transport.FailureMalformed
	}
	return classify(err)
}
