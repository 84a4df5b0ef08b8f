// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

const (
	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "gpt-4.1-mini"

	// DefaultTemperature keeps extraction near-deterministic.
	DefaultTemperature = 0.2

	DefaultAddr           = ":8080"
	DefaultAllowedOrigin  = "*"
	DefaultMaxBodyBytes   = 64 << 10
	DefaultRequestTimeout = 60 * time.Second
)

// AIConfig holds settings for the upstream completion API.
type AIConfig struct {
	// Model is the completion model identifier (e.g. "gpt-4.1-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the credential for the completion API. An empty key is not a
	// configuration-time error; each extraction fails until one is supplied.
	APIKey string `json:"-" yaml:"-"`

	// BaseURL overrides the API endpoint (e.g. a proxy or a test server).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Temperature is the sampling temperature (default 0.2).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// ExtractorConfig holds settings for signal extraction.
type ExtractorConfig struct {
	AIConfig `yaml:",inline"`

	// RangePolicy decides how out-of-range or missing signals are handled
	// (default reject).
	RangePolicy RangePolicy `json:"range_policy" yaml:"range_policy"`

	// MalformedRetries is how many times a response that is not a valid
	// signal object is re-requested (default 0).
	MalformedRetries int `json:"malformed_retries" yaml:"malformed_retries"`
}

// DefaultExtractorConfig returns the extractor settings used when nothing is configured.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		AIConfig: AIConfig{
			Model:       DefaultModel,
			Temperature: DefaultTemperature,
		},
		RangePolicy: RangeReject,
	}
}

// Validate checks the settings that can be wrong independent of any request.
func (c ExtractorConfig) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0,2]", c.Temperature)
	}
	if !c.RangePolicy.Valid() {
		return fmt.Errorf("unknown range policy %q (want reject, clamp, or passthrough)", c.RangePolicy)
	}
	if c.MalformedRetries < 0 {
		return fmt.Errorf("malformed_retries must not be negative, got %d", c.MalformedRetries)
	}
	return nil
}

// ServerConfig holds settings for the HTTP binding.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigin is sent as Access-Control-Allow-Origin (default "*").
	AllowedOrigin string `json:"allowed_origin" yaml:"allowed_origin"`

	// MaxBodyBytes caps the inbound request body (default 64 KiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`

	// RequestTimeout bounds a whole extraction request, upstream call included
	// (default 60s).
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// DefaultServerConfig returns the HTTP settings used when nothing is configured.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           DefaultAddr,
		AllowedOrigin:  DefaultAllowedOrigin,
		MaxBodyBytes:   DefaultMaxBodyBytes,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Config groups every setting the nerva binary reads.
type Config struct {
	Extractor ExtractorConfig `json:"extractor" yaml:"extractor"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
