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

package credentials

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTokenURL is the token endpoint of the API.
const DefaultTokenURL = "https://api.mercadopago.com/oauth/token"

// ClientCredentialsConfig configures the client_credentials grant used to
// obtain the application's own token.
type ClientCredentialsConfig struct {
	ClientID     string
	ClientSecret string
	// TokenURL defaults to DefaultTokenURL.
	TokenURL string
}

// ClientCredentials returns a Source whose app token is obtained with
// POST /oauth/token grant_type=client_credentials. The id and secret travel
// in the form body. The token is cached and fetched again shortly before it
// expires by the oauth2 library.
//
// ctx is used for every token fetch; an *http.Client stored under
// oauth2.HTTPClient in ctx is used as the transport.
func ClientCredentials(ctx context.Context, cfg ClientCredentialsConfig) Source {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	conf := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	return FromTokenSource(cfg.ClientID, cfg.ClientSecret, conf.TokenSource(ctx))
}
