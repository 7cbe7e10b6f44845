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
	"encoding/json"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// document is the JSON layout of a credentials file.
type document struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AccessToken  string `json:"access_token"`
}

// FromJSON decodes a credentials document of the form
//
//	{"client_id": "...", "client_secret": "...", "access_token": "..."}
func FromJSON(r io.Reader) (*Static, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to parse credentials document: %w", err)
	}
	return NewStatic(doc.ClientID, doc.ClientSecret, doc.AccessToken), nil
}

// FromStorageObject reads a credentials document from a Cloud Storage object.
func FromStorageObject(ctx context.Context, client *storage.Client, bucket, object string) (*Static, error) {
	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open gs://%s/%s: %w", bucket, object, err)
	}
	defer rc.Close()

	creds, err := FromJSON(rc)
	if err != nil {
		return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, err)
	}
	return creds, nil
}

// LoadStorageObject opens a Storage client with opts, reads the object and
// closes the client.
func LoadStorageObject(ctx context.Context, bucket, object string, opts ...option.ClientOption) (*Static, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	return FromStorageObject(ctx, client, bucket, object)
}
