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
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mercadopago-community/sdk-go/resources"
)

func newPaymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Read payments",
	}
	cmd.AddCommand(newPaymentsGetCmd(), newPaymentsSearchCmd())
	return cmd
}

func newPaymentsGetCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			return writeOutcome(cmd.OutOrStdout(), a.resources.GetPayment(cmd.Context(), args[0], callOptions(token)...))
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Seller access token")
	return cmd
}

func newPaymentsSearchCmd() *cobra.Command {
	var (
		token   string
		filters []string
	)

	cmd := &cobra.Command{
		Use:     "search",
		Short:   "Search payments",
		Example: "  mpctl payments search --filter external_reference=order-1 --filter status=approved",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			values := url.Values{}
			for _, f := range filters {
				key, value, ok := strings.Cut(f, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid filter %q, want key=value", f)
				}
				values.Add(key, value)
			}
			return writeOutcome(cmd.OutOrStdout(), a.resources.SearchPayments(cmd.Context(), values, callOptions(token)...))
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Seller access token")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Search filter as key=value, repeatable")
	return cmd
}

func newIdentificationTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identification-types",
		Short: "List the identification document types of the account's site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			return writeOutcome(cmd.OutOrStdout(), a.resources.ListIdentificationTypes(cmd.Context()))
		},
	}
}

func callOptions(token string) []resources.CallOption {
	if token == "" {
		return nil
	}
	return []resources.CallOption{resources.WithAccessToken(token)}
}
