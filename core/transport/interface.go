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

package transport

import (
	"context"
	"errors"
	"fmt"
)

// Request is a fully built outbound call. Header values are final; the
// transport must not add authentication of its own.
type Request struct {
	Method string
	URL    string
	Header map[string]string
	Body   []byte
}

// Response is the raw result of a call that reached the server.
type Response struct {
	StatusCode int
	Header     map[string]string
	Body       []byte
}

// Transport sends a request and returns the server's answer, whatever the
// status code. Only failures to obtain an answer are returned as errors.
// Implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// FailureKind names the reason no usable response was obtained.
type FailureKind string

const (
	FailureConnection  FailureKind = "connection"
	FailureTimeout     FailureKind = "timeout"
	FailureDNS         FailureKind = "dns"
	FailureMalformed   FailureKind = "malformed"
	FailureCredentials FailureKind = "credentials"
)

// Error is returned by a Transport when a request could not complete.
type Error struct {
	Kind FailureKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transport failure (%s)", e.Kind)
	}
	return fmt.Sprintf("transport failure (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err as a transport failure of the given kind.
func NewError(kind FailureKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the failure kind carried by err. Errors that did not come
// from a transport are reported as FailureConnection.
func KindOf(err error) FailureKind {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return FailureConnection
}
