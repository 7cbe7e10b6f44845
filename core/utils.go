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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// mustMarshal encodes a request body. A value that cannot be encoded is a
// programming error, so it panics instead of sending a partial body.
func mustMarshal(method, path string, body any) []byte {
	payload, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Errorf("core: failed to marshal request body for %s %s: %w", method, path, err))
	}
	return payload
}

// mustDecode decodes a 2xx body. An empty body decodes to nil; anything that
// is not a single JSON value panics.
func mustDecode(method string, status int, body []byte) any {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		panic(fmt.Errorf("core: malformed %d response body for %s: %w", status, method, err))
	}
	if _, err := dec.Token(); err != io.EOF {
		panic(fmt.Errorf("core: malformed %d response body for %s: trailing data after JSON value", status, method))
	}
	return v
}

// logOutcome records one request. It only reads out and never changes what
// is returned to the caller.
func logOutcome(logger *zap.Logger, method, path string, out Outcome, latency time.Duration) {
	path, _, _ = strings.Cut(path, "?")
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Stringer("outcome", out.Kind),
		zap.Duration("latency", latency),
	}

	switch {
	case out.Kind == KindTransportFailure:
		fields = append(fields, zap.String("failure_kind", string(out.Failure)), zap.Error(out.Cause))
		logger.Error("request failed", fields...)
	case out.StatusCode >= 500:
		logger.Error("request returned server error", append(fields, zap.Int("status", out.StatusCode))...)
	case out.StatusCode >= 400:
		logger.Warn("request returned client error", append(fields, zap.Int("status", out.StatusCode))...)
	case out.Kind == KindRawError:
		logger.Warn("request returned unexpected status", append(fields, zap.Int("status", out.StatusCode))...)
	default:
		logger.Debug("request completed", append(fields, zap.Int("status", out.StatusCode))...)
	}
}
