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
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// SecretAccessor is the subset of the Secret Manager client used to read
// credentials. *secretmanager.Client satisfies it.
type SecretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// SecretNames holds full secret version resource names, for example
// "projects/my-project/secrets/mp-client-secret/versions/latest". Empty
// names are skipped.
type SecretNames struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
}

// FromSecretManager reads the named secret versions once and returns them as
// static credentials.
func FromSecretManager(ctx context.Context, accessor SecretAccessor, names SecretNames) (*Static, error) {
	read := func(name string) (string, error) {
		if name == "" {
			return "", nil
		}
		resp, err := accessor.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
		if err != nil {
			return "", fmt.Errorf("failed to access secret version %q: %w", name, err)
		}
		return strings.TrimSpace(string(resp.GetPayload().GetData())), nil
	}

	clientID, err := read(names.ClientID)
	if err != nil {
		return nil, err
	}
	clientSecret, err := read(names.ClientSecret)
	if err != nil {
		return nil, err
	}
	accessToken, err := read(names.AccessToken)
	if err != nil {
		return nil, err
	}
	return NewStatic(clientID, clientSecret, accessToken), nil
}

// LoadSecretManager opens a Secret Manager client with opts, reads names and
// closes the client.
func LoadSecretManager(ctx context.Context, names SecretNames, opts ...option.ClientOption) (*Static, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}
	defer client.Close()

	return FromSecretManager(ctx, client, names)
}
