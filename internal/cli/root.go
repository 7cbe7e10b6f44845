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

// Package cli implements the mpctl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mercadopago-community/sdk-go/core"
	"github.com/mercadopago-community/sdk-go/core/credentials"
	"github.com/mercadopago-community/sdk-go/core/oauth"
	"github.com/mercadopago-community/sdk-go/internal/config"
	"github.com/mercadopago-community/sdk-go/internal/logger"
	"github.com/mercadopago-community/sdk-go/resources"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	httpClient *http.Client
	creds      credentials.Source
	client     *core.Client
	resources  *resources.Client
}

type appKey struct{}

func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok {
		return nil, errors.New("mpctl is not initialised")
	}
	return a, nil
}

// oauthManager is built on demand because plain API calls may run with an
// access token and no client secret.
func (a *app) oauthManager() (*oauth.Manager, error) {
	return oauth.New(a.creds,
		oauth.WithHTTPClient(a.httpClient),
		oauth.WithAuthorizationURL(a.cfg.OAuth.AuthorizationURL),
		oauth.WithTokenURL(a.cfg.OAuth.TokenURL),
		oauth.WithLogger(a.logger),
	)
}

// NewRootCmd creates the root cobra command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "mpctl",
		Short:         "Command-line client for the Mercado Pago API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			a, err := newApp(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, err := appFrom(cmd); err == nil {
				a.client.Close()
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (default ./mpctl.yaml)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: json or console")

	cmd.AddCommand(
		newRequestCmd(),
		newOAuthCmd(),
		newPaymentsCmd(),
		newIdentificationTypesCmd(),
	)
	return cmd
}

func newApp(ctx context.Context, cmd *cobra.Command, flags globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	creds, err := buildCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	client, err := core.NewClient(creds,
		core.WithBaseURL(cfg.API.BaseURL),
		core.WithHTTPClient(httpClient),
		core.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		logger:     log,
		httpClient: httpClient,
		creds:      creds,
		client:     client,
		resources:  resources.New(client),
	}, nil
}

func buildCredentials(ctx context.Context, cfg *config.Config) (credentials.Source, error) {
	cc := cfg.Credentials
	switch cc.Source {
	case config.SourceSecretManager:
		return credentials.LoadSecretManager(ctx, cc.SecretNames())
	case config.SourceStorage:
		return credentials.LoadStorageObject(ctx, cc.Storage.Bucket, cc.Storage.Object)
	case config.SourceClientCredentials:
		return credentials.ClientCredentials(ctx, credentials.ClientCredentialsConfig{
			ClientID:     cc.ClientID,
			ClientSecret: cc.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
		}), nil
	case config.SourceStatic:
		return credentials.NewStatic(cc.ClientID, cc.ClientSecret, cc.AccessToken), nil
	default:
		return nil, fmt.Errorf("unknown credentials source %q", cc.Source)
	}
}

// Execute runs mpctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
