// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *ExtractorConfig)
		errMsg string
	}{
		{name: "defaults are valid", mutate: func(c *ExtractorConfig) {}},
		{name: "missing api key is still valid", mutate: func(c *ExtractorConfig) { c.APIKey = "" }},
		{name: "empty model", mutate: func(c *ExtractorConfig) { c.Model = "" }, errMsg: "model"},
		{name: "negative temperature", mutate: func(c *ExtractorConfig) { c.Temperature = -0.1 }, errMsg: "temperature"},
		{name: "temperature too high", mutate: func(c *ExtractorConfig) { c.Temperature = 2.5 }, errMsg: "temperature"},
		{name: "unknown policy", mutate: func(c *ExtractorConfig) { c.RangePolicy = "round" }, errMsg: "range policy"},
		{name: "empty policy", mutate: func(c *ExtractorConfig) { c.RangePolicy = "" }, errMsg: "range policy"},
		{name: "negative retries", mutate: func(c *ExtractorConfig) { c.MalformedRetries = -1 }, errMsg: "malformed_retries"},
		{name: "clamp policy", mutate: func(c *ExtractorConfig) { c.RangePolicy = RangeClamp }},
		{name: "passthrough policy", mutate: func(c *ExtractorConfig) { c.RangePolicy = RangePassthrough }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultExtractorConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDefaults(t *testing.T) {
	ex := DefaultExtractorConfig()
	assert.Equal(t, "gpt-4.1-mini", ex.Model)
	assert.Equal(t, 0.2, ex.Temperature)
	assert.Equal(t, RangeReject, ex.RangePolicy)
	assert.Zero(t, ex.MalformedRetries)

	srv := DefaultServerConfig()
	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, "*", srv.AllowedOrigin)
	assert.Equal(t, int64(64<<10), srv.MaxBodyBytes)
}
