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

	"github.com/mercadopago-community/sdk-go/core"
)

const preferencesPath = "/checkout/preferences"

// CreatePreference creates a checkout preference.
func (c *Client) CreatePreference(ctx context.Context, preference any, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Post(preferencesPath, preference), opts)
}

// GetPreference fetches a checkout preference by id.
func (c *Client) GetPreference(ctx context.Context, id string, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Get(preferencesPath+"/"+segment(id)), opts)
}

// UpdatePreference replaces the mutable fields of a checkout preference.
func (c *Client) UpdatePreference(ctx context.Context, id string, preference any, opts ...CallOption) core.Outcome {
	return c.do(ctx, core.Put(preferencesPath+"/"+segment(id), preference), opts)
}
