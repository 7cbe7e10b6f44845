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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mercadopago-community/sdk-go/core/transport"
)

// Kind identifies which variant of Outcome a request produced.
type Kind int

const (
	// KindSuccess is a 2xx answer carrying a JSON body.
	KindSuccess Kind = iota + 1
	// KindNoContent is HTTP 204.
	KindNoContent
	// KindNotFound is HTTP 404, and HTTP 400 on GET and DELETE.
	KindNotFound
	// KindUnauthorised is HTTP 401.
	KindUnauthorised
	// KindBadRequest is HTTP 400 on POST and PUT.
	KindBadRequest
	// KindRawError is any other status; the body is kept as received.
	KindRawError
	// KindTransportFailure means no usable response was obtained.
	KindTransportFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNoContent:
		return "no_content"
	case KindNotFound:
		return "not_found"
	case KindUnauthorised:
		return "unauthorised"
	case KindBadRequest:
		return "bad_request"
	case KindRawError:
		return "raw_error"
	case KindTransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the typed result of one request. Exactly one Kind is set.
type Outcome struct {
	Kind       Kind
	StatusCode int
	Header     map[string]string
	// Body is the response body as received.
	Body json.RawMessage
	// Data is the decoded body of a KindSuccess outcome. Numbers are
	// json.Number so amounts keep their exact textual value.
	Data any

	// Failure and Cause describe a KindTransportFailure outcome.
	Failure transport.FailureKind
	Cause   error
}

// OK reports whether the request succeeded, with or without content.
func (o Outcome) OK() bool {
	return o.Kind == KindSuccess || o.Kind == KindNoContent
}

// Decode unmarshals the raw body into v.
func (o Outcome) Decode(v any) error {
	if len(strings.TrimSpace(string(o.Body))) == 0 {
		return fmt.Errorf("cannot decode %s outcome: %w", o.Kind, ErrEmptyBody)
	}
	if err := json.Unmarshal(o.Body, v); err != nil {
		return fmt.Errorf("failed to decode %s outcome body: %w", o.Kind, err)
	}
	return nil
}

// Err returns nil for successful outcomes and a *ResponseError otherwise.
func (o Outcome) Err() error {
	if o.OK() {
		return nil
	}
	return &ResponseError{
		Kind:       o.Kind,
		StatusCode: o.StatusCode,
		Body:       o.Body,
		Failure:    o.Failure,
		Cause:      o.Cause,
	}
}

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorised = errors.New("unauthorised")
	ErrBadRequest   = errors.New("bad request")
	ErrRawResponse  = errors.New("unexpected response")
	ErrTransport    = errors.New("transport failure")
	ErrEmptyBody    = errors.New("empty body")
)

// ResponseError is the error form of a non-successful Outcome. It matches
// the sentinel of its kind with errors.Is.
type ResponseError struct {
	Kind       Kind
	StatusCode int
	Body       []byte
	Failure    transport.FailureKind
	Cause      error
}

func (e *ResponseError) Error() string {
	if e.Kind == KindTransportFailure {
		if e.Cause != nil {
			return fmt.Sprintf("transport failure (%s): %v", e.Failure, e.Cause)
		}
		return fmt.Sprintf("transport failure (%s)", e.Failure)
	}
	if len(e.Body) > 0 {
		return fmt.Sprintf("%s: status %d, body: %s", e.Kind, e.StatusCode, string(e.Body))
	}
	return fmt.Sprintf("%s: status %d", e.Kind, e.StatusCode)
}

func (e *ResponseError) Unwrap() error { return e.Cause }

func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrUnauthorised:
		return e.Kind == KindUnauthorised
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	case ErrRawResponse:
		return e.Kind == KindRawError
	case ErrTransport:
		return e.Kind == KindTransportFailure
	}
	return false
}

// Classify maps the result of a transport call to an Outcome.
//
//	status | GET          POST        PUT         DELETE
//	200    | Success      Success     Success     Success
//	201    | RawError     Success     RawError    RawError
//	204    | NoContent    NoContent   NoContent   NoContent
//	400    | NotFound     BadRequest  BadRequest  NotFound
//	401    | Unauthorised Unauthorised Unauthorised Unauthorised
//	404    | NotFound     NotFound    NotFound    NotFound
//	other  | RawError     RawError    RawError    RawError
//
// A transport error always yields KindTransportFailure and the body is
// never looked at. Classify panics when a 200/201 body is not valid JSON:
// the upstream broke its contract and there is nothing sensible to return.
func Classify(method string, resp *transport.Response, err error) Outcome {
	if err != nil {
		return transportFailure(transport.KindOf(err), err)
	}
	if resp == nil {
		return transportFailure(transport.FailureMalformed, errors.New("transport returned neither a response nor an error"))
	}

	method = strings.ToUpper(method)
	out := Outcome{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}

	switch resp.StatusCode {
	case http.StatusOK:
		out.Kind = KindSuccess
	case http.StatusCreated:
		if method == http.MethodPost {
			out.Kind = KindSuccess
		} else {
			out.Kind = KindRawError
		}
	case http.StatusNoContent:
		out.Kind = KindNoContent
	case http.StatusBadRequest:
		if method == http.MethodGet || method == http.MethodDelete {
			out.Kind = KindNotFound
		} else {
			out.Kind = KindBadRequest
		}
	case http.StatusUnauthorized:
		out.Kind = KindUnauthorised
	case http.StatusNotFound:
		out.Kind = KindNotFound
	default:
		out.Kind = KindRawError
	}

	if out.Kind == KindSuccess {
		out.Data = mustDecode(method, resp.StatusCode, resp.Body)
	}
	return out
}

func transportFailure(kind transport.FailureKind, err error) Outcome {
	return Outcome{Kind: KindTransportFailure, Failure: kind, Cause: err}
}
