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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/oauth2"

	"github.com/mercadopago-community/sdk-go/core/credentials"
	"github.com/mercadopago-community/sdk-go/core/transport"
)

// Test Helpers & Mocks

// fakeTransport records requests and answers through respond.
type fakeTransport struct {
	mu       sync.Mutex
	requests []*transport.Request
	respond  func(req *transport.Request) (*transport.Response, error)
	closed   bool
}

func (f *fakeTransport) Send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.respond == nil {
		return &transport.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
	}
	return f.respond(req)
}

func (f *fakeTransport) CloseIdleConnections() { f.closed = true }

func (f *fakeTransport) last(t *testing.T) *transport.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request was sent")
	return f.requests[len(f.requests)-1]
}

// failingTokenSource is a token source that always returns an error, for testing failure paths.
type failingTokenSource struct{}

func (f *failingTokenSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("token source failed as designed")
}

func newTestClient(t *testing.T, tr transport.Transport, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{WithTransport(tr)}, opts...)
	client, err := NewClient(credentials.NewStatic("client-id", "client-secret", "APP_USR-app"), opts...)
	require.NoError(t, err)
	return client
}

// TestNewClient verifies the constructor's defaults and option handling.
func TestNewClient(t *testing.T) {
	t.Run("Creates client with default settings", func(t *testing.T) {
		client, err := NewClient(credentials.NewStatic("id", "secret", "tok"))
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.BaseURL())
		assert.NotNil(t, client.transport)
		assert.NotNil(t, client.logger)
	})

	t.Run("Returns error when credentials are nil", func(t *testing.T) {
		_, err := NewClient(nil)
		assert.Error(t, err)
	})

	t.Run("Returns error when a nil option is provided", func(t *testing.T) {
		_, err := NewClient(credentials.NewStatic("id", "secret", "tok"), nil)
		assert.Error(t, err)
	})

	t.Run("Returns error when an option fails", func(t *testing.T) {
		testCases := map[string]ClientOption{
			"relative base URL": WithBaseURL("/v1"),
			"nil transport":     WithTransport(nil),
			"nil http client":   WithHTTPClient(nil),
			"nil logger":        WithLogger(nil),
		}
		for name, opt := range testCases {
			t.Run(name, func(t *testing.T) {
				_, err := NewClient(credentials.NewStatic("id", "secret", "tok"), opt)
				assert.Error(t, err)
			})
		}
	})

	t.Run("Applies options", func(t *testing.T) {
		custom := &http.Client{Timeout: 30 * time.Second}
		client, err := NewClient(credentials.NewStatic("id", "secret", "tok"),
			WithBaseURL("https://sandbox.example.com/"),
			WithHTTPClient(custom),
		)
		require.NoError(t, err)
		assert.Equal(t, "https://sandbox.example.com", client.BaseURL())
	})

	t.Run("Warns about plain HTTP base URL", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		_, err := NewClient(credentials.NewStatic("id", "secret", "tok"),
			WithBaseURL("http://localhost:8080"),
			WithLogger(zap.New(core)),
		)
		require.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessageSnippet("not HTTPS").Len())
	})
}

func TestClose(t *testing.T) {
	tr := &fakeTransport{}
	client := newTestClient(t, tr)
	client.Close()
	assert.True(t, tr.closed)
}

func TestExecute_Headers(t *testing.T) {
	t.Run("Uses app token by default", func(t *testing.T) {
		tr := &fakeTransport{}
		client := newTestClient(t, tr)

		client.Execute(context.Background(), Get("/v1/payments/1"))

		req := tr.last(t)
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, DefaultBaseURL+"/v1/payments/1", req.URL)
		assert.Equal(t, "Bearer APP_USR-app", req.Header["Authorization"])
		assert.Equal(t, "application/json", req.Header["Content-Type"])
		assert.Nil(t, req.Body)
	})

	t.Run("Per-call token overrides app token", func(t *testing.T) {
		tr := &fakeTransport{}
		client := newTestClient(t, tr)

		spec := Get("/v1/payments/1")
		spec.AccessToken = "APP_USR-seller"
		client.Execute(context.Background(), spec)

		assert.Equal(t, "Bearer APP_USR-seller", tr.last(t).Header["Authorization"])
	})
}

func TestExecute_IdempotencyKey(t *testing.T) {
	t.Run("POST with key sends header", func(t *testing.T) {
		tr := &fakeTransport{}
		client := newTestClient(t, tr)

		spec := Post("/v1/payments", map[string]any{"transaction_amount": 100})
		spec.IdempotencyKey = "k1"
		client.Execute(context.Background(), spec)

		assert.Equal(t, "k1", tr.last(t).Header["X-Idempotency-Key"])
	})

	t.Run("POST without key omits header", func(t *testing.T) {
		tr := &fakeTransport{}
		client := newTestClient(t, tr)

		client.Execute(context.Background(), Post("/v1/payments", map[string]any{}))

		_, present := tr.last(t).Header["X-Idempotency-Key"]
		assert.False(t, present)
	})

	t.Run("Key is only carried on POST", func(t *testing.T) {
		for _, spec := range []RequestSpec{Get("/pos/1"), Put("/pos/1", map[string]any{}), Delete("/pos/1")} {
			tr := &fakeTransport{}
			client := newTestClient(t, tr)

			spec.IdempotencyKey = "k1"
			client.Execute(context.Background(), spec)

			_, present := tr.last(t).Header["X-Idempotency-Key"]
			assert.False(t, present, "%s must not carry an idempotency key", spec.Method)
		}
	})

	t.Run("Over the wire", func(t *testing.T) {
		var got []string
		var mu sync.Mutex
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			got = append(got, strings.Join(r.Header.Values("X-Idempotency-Key"), ","))
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":1}`))
		}))
		defer server.Close()

		client, err := NewClient(credentials.NewStatic("id", "secret", "tok"),
			WithBaseURL(server.URL), WithHTTPClient(server.Client()))
		require.NoError(t, err)

		withKey := Post("/v1/payments", map[string]any{"a": 1})
		withKey.IdempotencyKey = "k1"
		assert.Equal(t, KindSuccess, client.Execute(context.Background(), withKey).Kind)
		assert.Equal(t, KindSuccess, client.Execute(context.Background(), Post("/v1/payments", map[string]any{"a": 1})).Kind)

		assert.Equal(t, []string{"k1", ""}, got)
	})
}

func TestExecute_Body(t *testing.T) {
	t.Run("POST and PUT encode body", func(t *testing.T) {
		for _, spec := range []RequestSpec{
			Post("/checkout/preferences", map[string]any{"items": []any{}}),
			Put("/checkout/preferences/1", map[string]any{"items": []any{}}),
		} {
			tr := &fakeTransport{}
			newTestClient(t, tr).Execute(context.Background(), spec)
			assert.JSONEq(t, `{"items":[]}`, string(tr.last(t).Body))
		}
	})

	t.Run("Raw JSON is passed through", func(t *testing.T) {
		tr := &fakeTransport{}
		newTestClient(t, tr).Execute(context.Background(), Post("/pos", json.RawMessage(`{"name":"Caja 1"}`)))
		assert.Equal(t, `{"name":"Caja 1"}`, string(tr.last(t).Body))
	})

	t.Run("GET and DELETE send no body", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodDelete} {
			tr := &fakeTransport{}
			newTestClient(t, tr).Execute(context.Background(), RequestSpec{Method: method, Path: "/pos/1", Body: map[string]any{"x": 1}})
			assert.Nil(t, tr.last(t).Body)
		}
	})

	t.Run("Unencodable body panics before sending", func(t *testing.T) {
		tr := &fakeTransport{}
		client := newTestClient(t, tr)
		assert.Panics(t, func() {
			client.Execute(context.Background(), Post("/v1/payments", map[string]any{"ch": make(chan int)}))
		})
		assert.Empty(t, tr.requests)
	})
}

func TestExecute_Outcomes(t *testing.T) {
	t.Run("Transport error becomes transport failure", func(t *testing.T) {
		tr := &fakeTransport{respond: func(*transport.Request) (*transport.Response, error) {
			return nil, transport.NewError(transport.FailureDNS, errors.New("no such host"))
		}}
		out := newTestClient(t, tr).Execute(context.Background(), Get("/v1/payments/1"))
		assert.Equal(t, KindTransportFailure, out.Kind)
		assert.Equal(t, transport.FailureDNS, out.Failure)
		assert.ErrorIs(t, out.Err(), ErrTransport)
	})

	t.Run("App token failure sends nothing", func(t *testing.T) {
		tr := &fakeTransport{}
		client, err := NewClient(credentials.FromTokenSource("id", "secret", &failingTokenSource{}), WithTransport(tr))
		require.NoError(t, err)

		out := client.Execute(context.Background(), Get("/v1/payments/1"))
		assert.Equal(t, KindTransportFailure, out.Kind)
		assert.Equal(t, transport.FailureCredentials, out.Failure)
		assert.Empty(t, tr.requests)
	})

	t.Run("App token failure is skipped with per-call token", func(t *testing.T) {
		tr := &fakeTransport{}
		client, err := NewClient(credentials.FromTokenSource("id", "secret", &failingTokenSource{}), WithTransport(tr))
		require.NoError(t, err)

		spec := Get("/v1/payments/1")
		spec.AccessToken = "seller"
		assert.Equal(t, KindSuccess, client.Execute(context.Background(), spec).Kind)
	})

	t.Run("Statuses are classified", func(t *testing.T) {
		testCases := []struct {
			spec   RequestSpec
			status int
			want   Kind
		}{
			{Get("/v1/payments/1"), 200, KindSuccess},
			{Post("/v1/payments", map[string]any{}), 201, KindSuccess},
			{Delete("/pos/1"), 204, KindNoContent},
			{Get("/v1/payments/x"), 400, KindNotFound},
			{Put("/pos/1", map[string]any{}), 400, KindBadRequest},
			{Get("/v1/payments/1"), 401, KindUnauthorised},
			{Delete("/pos/1"), 404, KindNotFound},
			{Post("/v1/payments", map[string]any{}), 500, KindRawError},
		}
		for _, tc := range testCases {
			t.Run(fmt.Sprintf("%s %d", tc.spec.Method, tc.status), func(t *testing.T) {
				tr := &fakeTransport{respond: func(*transport.Request) (*transport.Response, error) {
					return &transport.Response{StatusCode: tc.status, Body: []byte(`{"message":"m"}`)}, nil
				}}
				assert.Equal(t, tc.want, newTestClient(t, tr).Execute(context.Background(), tc.spec).Kind)
			})
		}
	})
}

// TestExecute_Concurrent issues many calls at once and checks that each
// caller receives the answer for its own request.
func TestExecute_Concurrent(t *testing.T) {
	const n = 64

	tr := &fakeTransport{respond: func(req *transport.Request) (*transport.Response, error) {
		id := req.URL[strings.LastIndex(req.URL, "/")+1:]
		switch {
		case strings.HasSuffix(id, "0"):
			return &transport.Response{StatusCode: 404, Body: []byte(`{"id":"` + id + `"}`)}, nil
		case strings.HasSuffix(id, "5"):
			return nil, transport.NewError(transport.FailureTimeout, errors.New(id))
		}
		time.Sleep(time.Millisecond)
		return &transport.Response{StatusCode: 200, Body: []byte(`{"id":"` + id + `"}`)}, nil
	}}
	client := newTestClient(t, tr)

	outcomes := make([]Outcome, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			spec := Get(fmt.Sprintf("/v1/payments/%d", i))
			spec.AccessToken = fmt.Sprintf("token-%d", i)
			outcomes[i] = client.Execute(context.Background(), spec)
		}(i)
	}
	wg.Wait()

	for i, out := range outcomes {
		id := fmt.Sprintf("%d", i)
		switch {
		case i%10 == 0:
			assert.Equal(t, KindNotFound, out.Kind, id)
			assert.JSONEq(t, `{"id":"`+id+`"}`, string(out.Body))
		case i%10 == 5:
			assert.Equal(t, KindTransportFailure, out.Kind, id)
			assert.EqualError(t, errors.Unwrap(out.Cause), id)
		default:
			require.Equal(t, KindSuccess, out.Kind, id)
			assert.Equal(t, id, out.Data.(map[string]any)["id"])
		}
	}

	tokens := make(map[string]string)
	for _, req := range tr.requests {
		tokens[req.URL[strings.LastIndex(req.URL, "/")+1:]] = req.Header["Authorization"]
	}
	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprintf("Bearer token-%d", i), tokens[fmt.Sprintf("%d", i)])
	}
}

func TestExecute_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	statuses := map[string]int{"/ok": 200, "/missing": 404, "/boom": 502}
	tr := &fakeTransport{respond: func(req *transport.Request) (*transport.Response, error) {
		path, _, _ := strings.Cut(strings.TrimPrefix(req.URL, DefaultBaseURL), "?")
		if path == "/down" {
			return nil, transport.NewError(transport.FailureConnection, errors.New("refused"))
		}
		return &transport.Response{StatusCode: statuses[path], Body: []byte(`{}`)}, nil
	}}
	client := newTestClient(t, tr, WithLogger(zap.New(core)))

	spec := Get("/ok?access_token=secret")
	spec.AccessToken = "APP_USR-secret"
	client.Execute(context.Background(), spec)
	client.Execute(context.Background(), Get("/missing"))
	client.Execute(context.Background(), Get("/boom"))
	client.Execute(context.Background(), Get("/down"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)

	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, "connection", entries[3].ContextMap()["failure_kind"])
	for _, e := range entries {
		for _, v := range e.ContextMap() {
			assert.NotContains(t, fmt.Sprint(v), "secret")
		}
	}
}

func TestExecute_ReadsFromServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/checkout/preferences":
			assert.JSONEq(t, `{"items":[{"title":"Mug","quantity":1,"unit_price":10}]}`, string(body))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"pref-1","init_point":"https://mp/checkout"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		}
	}))
	defer server.Close()

	client, err := NewClient(credentials.NewStatic("id", "secret", "tok"),
		WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	out := client.Execute(context.Background(), Post("/checkout/preferences", map[string]any{
		"items": []map[string]any{{"title": "Mug", "quantity": 1, "unit_price": 10}},
	}))
	require.Equal(t, KindSuccess, out.Kind)

	var pref struct {
		ID        string `json:"id"`
		InitPoint string `json:"init_point"`
	}
	require.NoError(t, out.Decode(&pref))
	assert.Equal(t, "pref-1", pref.ID)

	out = client.Execute(context.Background(), Get("/checkout/preferences/nope"))
	assert.Equal(t, KindNotFound, out.Kind)
	assert.ErrorIs(t, out.Err(), ErrNotFound)
}

func TestNewIdempotencyKey(t *testing.T) {
	a, b := NewIdempotencyKey(), NewIdempotencyKey()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
