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

const posPath = "/pos"

// CreatePOS registers a point of sale.
func (c *Client) CreatePOS(ctx context.Context, pos any, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Post(posPath, pos), opts)
}

// GetPOS fetches a point of sale by id.
func (c *Client) GetPOS(ctx context.Context, id string, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Get(posPath+"/"+segment(id)), opts)
}

// ListPOS lists points of sale, optionally filtered (external_id,
// store_id, category, limit, offset).
func (c *Client) ListPOS(ctx context.Context, filters url.Values, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Get(withQuery(posPath, filters)), opts)
}

// UpdatePOS updates a point of sale.
func (c *Client) UpdatePOS(ctx context.Context, id string, pos any, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Put(posPath+"/"+segment(id), pos), opts)
}

// DeletePOS removes a point of sale.
func (c *Client) DeletePOS(ctx context.Context, id string, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Delete(posPath+"/"+segment(id)), opts)
}
