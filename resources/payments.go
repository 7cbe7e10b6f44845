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
	"net/url"

	"github.com/mercadopago-community/sdk-go/core"
)

const (
	paymentsPath            = "/v1/payments"
	identificationTypesPath = "/v1/identification_types"
)

// CreatePayment posts a payment. Pass WithIdempotencyKey so a retried call
// cannot charge twice.
func (c *Client) CreatePayment(ctx context.Context, payment any, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Post(paymentsPath, payment), opts)
}

// GetPayment fetches a payment by id.
func (c *Client) GetPayment(ctx context.Context, id string, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Get(paymentsPath+"/"+segment(id)), opts)
}

// SearchPayments searches payments, e.g. by external_reference or status.
func (c *Client) SearchPayments(ctx context.Context, filters url.Values, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Get(withQuery(paymentsPath+"/search", filters)), opts)
}

// ListIdentificationTypes lists the document types accepted in the
// seller's country.
func (c *Client) ListIdentificationTypes(ctx context.Context, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Get(identificationTypesPath), opts)
}
