// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWriteErrorOmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, ErrorBody{Error: "invalid_input"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_input"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteError(rec, http.StatusBadGateway, ErrorBody{Error: "upstream_error", Status: 401, Details: "bad key"})
	var got ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, ErrorBody{Error: "upstream_error", Status: 401, Details: "bad key"}, got)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Scenario string `json:"scenario"`
	}

	tests := []struct {
		name     string
		body     string
		maxBytes int64
		want     string
		errMsg   string
	}{
		{name: "valid", body: `{"scenario":"storm incoming"}`, maxBytes: 1024, want: "storm incoming"},
		{name: "trailing whitespace", body: "{\"scenario\":\"x\"}\n\n", maxBytes: 1024, want: "x"},
		{name: "empty", body: "", maxBytes: 1024, errMsg: "empty"},
		{name: "not json", body: "scenario=storm", maxBytes: 1024, errMsg: "invalid JSON"},
		{name: "trailing data", body: `{"scenario":"x"}{"scenario":"y"}`, maxBytes: 1024, errMsg: "unexpected data"},
		{name: "too large", body: `{"scenario":"` + strings.Repeat("a", 200) + `"}`, maxBytes: 64, errMsg: "exceeds 64 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var p payload
			err := DecodeJSON(rec, req, tt.maxBytes, &p)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Scenario)
		})
	}
}
