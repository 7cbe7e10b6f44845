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
	"net/url"
	"strings"
)

const (
	HeaderAuthorization  = "Authorization"
	HeaderContentType    = "Content-Type"
	HeaderAccept         = "Accept"
	HeaderIdempotencyKey = "X-Idempotency-Key"

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// BearerHeaders returns the header set for an authenticated JSON call. The
// idempotency header is only present when key is non-empty; the API treats
// its presence as a retry marker, so it is never sent blank.
func BearerHeaders(token, idempotencyKey string) map[string]string {
	h := map[string]string{
		HeaderAuthorization: "Bearer " + token,
		HeaderContentType:   ContentTypeJSON,
	}
	if idempotencyKey != "" {
		h[HeaderIdempotencyKey] = idempotencyKey
	}
	return h
}

// FormHeaders returns the header set for an unauthenticated form post.
func FormHeaders() map[string]string {
	return map[string]string{
		HeaderContentType: ContentTypeForm,
		HeaderAccept:      ContentTypeJSON,
	}
}

// EncodeForm encodes values as an application/x-www-form-urlencoded body.
// Empty values are dropped.
func EncodeForm(values map[string]string) []byte {
	form := url.Values{}
	for k, v := range values {
		if v == "" {
			continue
		}
		form.Set(k, v)
	}
	return []byte(form.Encode())
}

// JoinURL appends an API-relative path, which may carry a query string, to
// base.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
