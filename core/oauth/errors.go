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
	"errors"
	"fmt"
	"strings"

	"github.com/mercadopago-community/sdk-go/core/transport"
)

// ErrorKind classifies a failed token request.
type ErrorKind string

const (
	KindBadRequest         ErrorKind = "bad_request"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindUnexpectedResponse ErrorKind = "unexpected_response"
	KindTransportFailure   ErrorKind = "transport_failure"
)

var (
	ErrBadRequest         = errors.New("oauth: bad request")
	ErrUnauthorized       = errors.New("oauth: unauthorized")
	ErrUnexpectedResponse = errors.New("oauth: unexpected response")
	ErrTransportFailure   = errors.New("oauth: transport failure")
)

// Error is returned by every failed token request. It matches the sentinel
// of its Kind with errors.Is.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	// Code and Description are the upstream "error" and
	// "error_description" fields, when present.
	Code        string
	Description string
	Body        []byte
	Failure     transport.FailureKind
	Err         error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("oauth: ")
	b.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Code != "" {
		b.WriteString(": ")
		b.WriteString(e.Code)
	}
	if e.Description != "" {
		b.WriteString(": ")
		b.WriteString(e.Description)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrUnexpectedResponse:
		return e.Kind == KindUnexpectedResponse
	case ErrTransportFailure:
		return e.Kind == KindTransportFailure
	}
	return false
}

// Temporary reports whether the request never got a usable answer, so
// retrying with the same grant may succeed.
func (e *Error) Temporary() bool {
	return e.Kind == KindTransportFailure
}

// NeedsReauthorization reports whether the grant itself was rejected and the
// seller has to go through the authorization URL again.
func (e *Error) NeedsReauthorization() bool {
	return e.Kind == KindUnauthorized || (e.Kind == KindBadRequest && e.Code == "invalid_grant")
}
