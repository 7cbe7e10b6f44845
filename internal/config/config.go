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

// Package config loads mpctl settings from a config file and MP_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mercadopago-community/sdk-go/core"
	"github.com/mercadopago-community/sdk-go/core/credentials"
	"github.com/mercadopago-community/sdk-go/core/oauth"
)

// EnvPrefix prefixes every environment variable, e.g. MP_API_BASE_URL.
const EnvPrefix = "MP"

// Credential sources.
const (
	SourceStatic            = "static"
	SourceSecretManager     = "secretmanager"
	SourceStorage           = "gcs"
	SourceClientCredentials = "client_credentials"
)

type Config struct {
	API         APIConfig         `mapstructure:"api" validate:"required"`
	OAuth       OAuthConfig       `mapstructure:"oauth" validate:"required"`
	Credentials CredentialsConfig `mapstructure:"credentials" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type OAuthConfig struct {
	AuthorizationURL string `mapstructure:"authorization_url" validate:"required,url"`
	TokenURL         string `mapstructure:"token_url" validate:"required,url"`
	RedirectURI      string `mapstructure:"redirect_uri" validate:"omitempty,url"`
}

type CredentialsConfig struct {
	Source        string              `mapstructure:"source" validate:"oneof=static secretmanager gcs client_credentials"`
	ClientID      string              `mapstructure:"client_id"`
	ClientSecret  string              `mapstructure:"client_secret"`
	AccessToken   string              `mapstructure:"access_token"`
	SecretManager SecretManagerConfig `mapstructure:"secretmanager"`
	Storage       StorageConfig       `mapstructure:"gcs"`
}

// SecretManagerConfig holds full secret version names,
// e.g. projects/p/secrets/mp-client-id/versions/latest.
type SecretManagerConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	AccessToken  string `mapstructure:"access_token"`
}

type StorageConfig struct {
	Bucket string `mapstructure:"bucket"`
	Object string `mapstructure:"object"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

var defaults = map[string]any{
	"api.base_url":                            core.DefaultBaseURL,
	"api.timeout":                             30 * time.Second,
	"oauth.authorization_url":                 oauth.DefaultAuthorizationURL,
	"oauth.token_url":                         oauth.DefaultTokenURL,
	"oauth.redirect_uri":                      "",
	"credentials.source":                      SourceStatic,
	"credentials.client_id":                   "",
	"credentials.client_secret":               "",
	"credentials.access_token":                "",
	"credentials.secretmanager.client_id":     "",
	"credentials.secretmanager.client_secret": "",
	"credentials.secretmanager.access_token":  "",
	"credentials.gcs.bucket":                  "",
	"credentials.gcs.object":                  "",
	"log.level":                               "warn",
	"log.format":                              "json",
}

// Load reads path when it is set, otherwise looks for mpctl.yaml in the
// working directory and the user config directory. A missing default file
// is not an error. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mpctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "mpctl"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if path != "" || !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field formats and that the selected credential source
// has what it needs.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cc := c.Credentials
	switch cc.Source {
	case SourceStatic:
		if cc.AccessToken == "" && (cc.ClientID == "" || cc.ClientSecret == "") {
			return errors.New("invalid config: static credentials need an access_token or a client_id and client_secret")
		}
	case SourceSecretManager:
		sm := cc.SecretManager
		if sm.AccessToken == "" && (sm.ClientID == "" || sm.ClientSecret == "") {
			return errors.New("invalid config: secretmanager needs an access_token secret or client_id and client_secret secrets")
		}
	case SourceStorage:
		if cc.Storage.Bucket == "" || cc.Storage.Object == "" {
			return errors.New("invalid config: gcs needs a bucket and an object")
		}
	case SourceClientCredentials:
		if cc.ClientID == "" || cc.ClientSecret == "" {
			return errors.New("invalid config: client_credentials needs a client_id and client_secret")
		}
	}
	return nil
}

// SecretNames returns the Secret Manager names in the form the credentials
// package expects.
func (c CredentialsConfig) SecretNames() credentials.SecretNames {
	return credentials.SecretNames{
		ClientID:     c.SecretManager.ClientID,
		ClientSecret: c.SecretManager.ClientSecret,
		AccessToken:  c.SecretManager.AccessToken,
	}
}
