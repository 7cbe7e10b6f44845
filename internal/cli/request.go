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

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mercadopago-community/sdk-go/core"
)

func newRequestCmd() *cobra.Command {
	var (
		data           string
		token          string
		idempotencyKey string
		newKey         bool
	)

	cmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "Send an authenticated request to any API path",
		Example: `  mpctl request GET /v1/payments/123
  mpctl request POST /checkout/preferences --data @preference.json --new-idempotency-key`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			method := strings.ToUpper(args[0])
			switch method {
			case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
			default:
				return fmt.Errorf("unsupported method %q", args[0])
			}

			path := args[1]
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			spec := core.RequestSpec{
				Method:         method,
				Path:           path,
				AccessToken:    token,
				IdempotencyKey: idempotencyKey,
			}
			if newKey && spec.IdempotencyKey == "" {
				spec.IdempotencyKey = core.NewIdempotencyKey()
			}
			if data != "" {
				body, err := readData(data)
				if err != nil {
					return err
				}
				spec.Body = body
			}

			return writeOutcome(cmd.OutOrStdout(), a.client.Execute(cmd.Context(), spec))
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body, or @file to read it from a file")
	cmd.Flags().StringVar(&token, "token", "", "Access token to use instead of the application token")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "X-Idempotency-Key for POST requests")
	cmd.Flags().BoolVar(&newKey, "new-idempotency-key", false, "Generate an X-Idempotency-Key for this POST")
	return cmd
}

// readData returns the body given inline or as @file. It must be JSON.
func readData(data string) (json.RawMessage, error) {
	raw := []byte(data)
	if name, ok := strings.CutPrefix(data, "@"); ok {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		raw = b
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid JSON")
	}
	return json.RawMessage(raw), nil
}
