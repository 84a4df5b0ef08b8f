// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/CaptainMig/nerva-v8/pkg/types"
)

// openAIBaseURL is the Chat Completions API root used when no base URL is
// configured. Setting it explicitly keeps the SDK from reading OPENAI_BASE_URL.
const openAIBaseURL = "https://api.openai.com/v1/"

// maxErrorBody caps how much of an upstream error body is kept.
const maxErrorBody = 1 << 20

// OpenAIBackend calls the OpenAI Chat Completions API.
type OpenAIBackend struct {
	client openai.Client
}

// NewOpenAIBackend builds a backend from cfg. SDK retries are disabled; a
// nil httpClient uses the SDK default.
func NewOpenAIBackend(cfg types.AIConfig, httpClient *http.Client) *OpenAIBackend {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &OpenAIBackend{client: openai.NewClient(opts...)}
}

// Complete sends req as a system message plus a user message and returns the
// first choice's content.
func (b *OpenAIBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	completion, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Temperature: openai.Float(req.Temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &UpstreamError{Status: apiErr.StatusCode, Body: errorBody(apiErr), Err: err}
		}
		return "", &UpstreamError{Err: err}
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: completion API returned no choices", ErrInternal)
	}
	return completion.Choices[0].Message.Content, nil
}

// errorBody returns the raw body of a failed response. The SDK restores the
// body after decoding it, so it can be read here.
func errorBody(apiErr *openai.Error) string {
	if apiErr.Response != nil && apiErr.Response.Body != nil {
		data, err := io.ReadAll(io.LimitReader(apiErr.Response.Body, maxErrorBody))
		if err == nil && len(data) > 0 {
			return strings.TrimSpace(string(data))
		}
	}
	return apiErr.Error()
}
