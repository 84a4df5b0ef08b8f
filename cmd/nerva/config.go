// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/CaptainMig/nerva-v8/internal/secrets"
	"github.com/CaptainMig/nerva-v8/pkg/types"
)

// setDefaults registers the default for every config key.
func setDefaults(v *viper.Viper) {
	ex := types.DefaultExtractorConfig()
	srv := types.DefaultServerConfig()

	v.SetDefault("model", ex.Model)
	v.SetDefault("temperature", ex.Temperature)
	v.SetDefault("base_url", "")
	v.SetDefault("range_policy", string(ex.RangePolicy))
	v.SetDefault("malformed_retries", ex.MalformedRetries)

	v.SetDefault("server.addr", srv.Addr)
	v.SetDefault("server.allowed_origin", srv.AllowedOrigin)
	v.SetDefault("server.max_body_bytes", srv.MaxBodyBytes)
	v.SetDefault("server.request_timeout", srv.RequestTimeout)
}

// bindEnv maps NERVA_* variables onto config keys (server.addr reads
// NERVA_SERVER_ADDR). The credential also answers to OPENAI_API_KEY.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("NERVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api_key", "NERVA_API_KEY", "OPENAI_API_KEY")
}

// loadConfig resolves the full configuration from v, falling back to the
// secrets directory for the credential, and validates it. A missing
// credential is left for the extractor to report per request.
func loadConfig(v *viper.Viper, s secrets.Secrets) (types.Config, error) {
	ex := types.ExtractorConfig{
		AIConfig: types.AIConfig{
			Model:       v.GetString("model"),
			APIKey:      s.Or(v.GetString("api_key"), secrets.OpenAIAPIKey),
			BaseURL:     v.GetString("base_url"),
			Temperature: v.GetFloat64("temperature"),
		},
		RangePolicy:      types.RangePolicy(strings.ToLower(v.GetString("range_policy"))),
		MalformedRetries: v.GetInt("malformed_retries"),
	}
	if err := ex.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	srv := types.ServerConfig{
		Addr:           v.GetString("server.addr"),
		AllowedOrigin:  v.GetString("server.allowed_origin"),
		MaxBodyBytes:   v.GetInt64("server.max_body_bytes"),
		RequestTimeout: v.GetDuration("server.request_timeout"),
	}
	if srv.MaxBodyBytes <= 0 {
		return types.Config{}, fmt.Errorf("invalid configuration: server.max_body_bytes must be positive, got %d", srv.MaxBodyBytes)
	}

	return types.Config{Extractor: ex, Server: srv}, nil
}
