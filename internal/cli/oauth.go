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
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mercadopago-community/sdk-go/core/oauth"
)

func newOAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oauth",
		Short: "Authorise sellers and manage their tokens",
	}
	cmd.AddCommand(newOAuthURLCmd(), newOAuthExchangeCmd(), newOAuthRefreshCmd())
	return cmd
}

func redirectURI(a *app, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if a.cfg.OAuth.RedirectURI != "" {
		return a.cfg.OAuth.RedirectURI, nil
	}
	return "", errors.New("a redirect URI is required (--redirect-uri or oauth.redirect_uri)")
}

func newOAuthURLCmd() *cobra.Command {
	var (
		redirect     string
		state        string
		responseType string
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the authorization URL a seller must open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			uri, err := redirectURI(a, redirect)
			if err != nil {
				return err
			}
			m, err := a.oauthManager()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), m.AuthorizationURL(uri, oauth.AuthorizationOptions{
				State:        state,
				ResponseType: responseType,
			}))
			return err
		},
	}

	cmd.Flags().StringVar(&redirect, "redirect-uri", "", "Registered redirect URI")
	cmd.Flags().StringVar(&state, "state", "", "Opaque value echoed back on the redirect")
	cmd.Flags().StringVar(&responseType, "response-type", "", "Response type (default code)")
	return cmd
}

func newOAuthExchangeCmd() *cobra.Command {
	var code, redirect string

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Trade an authorization code for a seller token set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			uri, err := redirectURI(a, redirect)
			if err != nil {
				return err
			}
			m, err := a.oauthManager()
			if err != nil {
				return err
			}
			tokens, err := m.ExchangeCode(cmd.Context(), code, uri)
			if err != nil {
				return err
			}
			return writeTokens(cmd, tokens)
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code from the redirect")
	cmd.Flags().StringVar(&redirect, "redirect-uri", "", "Redirect URI used for the authorization URL")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newOAuthRefreshCmd() *cobra.Command {
	var refreshToken string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Exchange a refresh token for a new token set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			m, err := a.oauthManager()
			if err != nil {
				return err
			}
			tokens, err := m.RefreshToken(cmd.Context(), refreshToken)
			if err != nil {
				return err
			}
			return writeTokens(cmd, tokens)
		},
	}

	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "Refresh token of the seller")
	_ = cmd.MarkFlagRequired("refresh-token")
	return cmd
}

// tokenOutput adds the computed expiry to the wire fields.
type tokenOutput struct {
	*oauth.TokenSet
	ExpiresAt string `json:"expires_at"`
	State     string `json:"state"`
}

func writeTokens(cmd *cobra.Command, tokens *oauth.TokenSet) error {
	return writeJSON(cmd.OutOrStdout(), tokenOutput{
		TokenSet:  tokens,
		ExpiresAt: tokens.ExpiresAt.UTC().Format(time.RFC3339),
		State:     oauth.Evaluate(tokens.ExpiresAt, oauth.DefaultExpiryBuffer).String(),
	})
}
