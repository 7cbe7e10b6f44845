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

package resources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadopago-community/sdk-go/core"
	"github.com/mercadopago-community/sdk-go/core/credentials"
)

type recordingExecutor struct {
	specs []core.RequestSpec
}

func (r *recordingExecutor) Execute(ctx context.Context, spec core.RequestSpec) core.Outcome {
	r.specs = append(r.specs, spec)
	return core.Outcome{Kind: core.KindSuccess, StatusCode: http.StatusOK}
}

func TestResourcePaths(t *testing.T) {
	body := map[string]any{"external_reference": "order-1"}
	filters := url.Values{"external_reference": {"order 1"}}

	testCases := []struct {
		name     string
		call     func(c *Client) core.Outcome
		method   string
		path     string
		withBody bool
	}{
		{"CreatePreference", func(c *Client) core.Outcome { return c.CreatePreference(context.Background(), body) }, http.MethodPost, "/checkout/preferences", true},
		{"GetPreference", func(c *Client) core.Outcome { return c.GetPreference(context.Background(), "123-abc") }, http.MethodGet, "/checkout/preferences/123-abc", false},
		{"UpdatePreference", func(c *Client) core.Outcome { return c.UpdatePreference(context.Background(), "123-abc", body) }, http.MethodPut, "/checkout/preferences/123-abc", true},
		{"CreateMerchantOrder", func(c *Client) core.Outcome { return c.CreateMerchantOrder(context.Background(), body) }, http.MethodPost, "/merchant_orders", true},
		{"GetMerchantOrder", func(c *Client) core.Outcome { return c.GetMerchantOrder(context.Background(), "42") }, http.MethodGet, "/merchant_orders/42", false},
		{"UpdateMerchantOrder", func(c *Client) core.Outcome { return c.UpdateMerchantOrder(context.Background(), "42", body) }, http.MethodPut, "/merchant_orders/42", true},
		{"CreatePOS", func(c *Client) core.Outcome { return c.CreatePOS(context.Background(), body) }, http.MethodPost, "/pos", true},
		{"GetPOS", func(c *Client) core.Outcome { return c.GetPOS(context.Background(), "7") }, http.MethodGet, "/pos/7", false},
		{"ListPOS", func(c *Client) core.Outcome { return c.ListPOS(context.Background(), nil) }, http.MethodGet, "/pos", false},
		{"ListPOS filtered", func(c *Client) core.Outcome { return c.ListPOS(context.Background(), url.Values{"store_id": {"9"}}) }, http.MethodGet, "/pos?store_id=9", false},
		{"UpdatePOS", func(c *Client) core.Outcome { return c.UpdatePOS(context.Background(), "7", body) }, http.MethodPut, "/pos/7", true},
		{"DeletePOS", func(c *Client) core.Outcome { return c.DeletePOS(context.Background(), "7") }, http.MethodDelete, "/pos/7", false},
		{"CreatePayment", func(c *Client) core.Outcome { return c.CreatePayment(context.Background(), body) }, http.MethodPost, "/v1/payments", true},
		{"GetPayment", func(c *Client) core.Outcome { return c.GetPayment(context.Background(), "1234567") }, http.MethodGet, "/v1/payments/1234567", false},
		{"SearchPayments", func(c *Client) core.Outcome { return c.SearchPayments(context.Background(), filters) }, http.MethodGet, "/v1/payments/search?external_reference=order+1", false},
		{"ListIdentificationTypes", func(c *Client) core.Outcome { return c.ListIdentificationTypes(context.Background()) }, http.MethodGet, "/v1/identification_types", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exec := &recordingExecutor{}
			out := tc.call(New(exec))
			assert.Equal(t, core.KindSuccess, out.Kind)

			require.Len(t, exec.specs, 1)
			spec := exec.specs[0]
			assert.Equal(t, tc.method, spec.Method)
			assert.Equal(t, tc.path, spec.Path)
			if tc.withBody {
				assert.Equal(t, body, spec.Body)
			} else {
				assert.Nil(t, spec.Body)
			}
		})
	}
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	exec := &recordingExecutor{}
	New(exec).GetPOS(context.Background(), "../v1/payments")
	assert.Equal(t, "/pos/..%2Fv1%2Fpayments", exec.specs[0].Path)
}

func TestCallOptions(t *testing.T) {
	exec := &recordingExecutor{}
	New(exec).CreatePayment(context.Background(), map[string]any{},
		WithAccessToken("APP_USR-seller"),
		WithIdempotencyKey("k1"),
		nil,
	)

	spec := exec.specs[0]
	assert.Equal(t, "APP_USR-seller", spec.AccessToken)
	assert.Equal(t, "k1", spec.IdempotencyKey)
}

func TestResourcesThroughCore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/identification_types":
			w.Write([]byte(`[{"id":"DNI","name":"DNI","type":"number","min_length":7,"max_length":8}]`))
		case r.Method == http.MethodDelete && r.URL.Path == "/pos/7":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/payments/bogus":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"invalid payment_id"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := core.NewClient(credentials.NewStatic("id", "secret", "tok"),
		core.WithBaseURL(server.URL), core.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	res := New(client)

	out := res.ListIdentificationTypes(context.Background())
	require.Equal(t, core.KindSuccess, out.Kind)
	var types []struct {
		ID string `json:"id"`
	}
	require.NoError(t, out.Decode(&types))
	assert.Equal(t, "DNI", types[0].ID)

	assert.Equal(t, core.KindNoContent, res.DeletePOS(context.Background(), "7").Kind)
	assert.Equal(t, core.KindNotFound, res.GetPayment(context.Background(), "bogus").Kind)
}
