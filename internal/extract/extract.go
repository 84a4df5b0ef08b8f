// Package extract turns a free-text scenario into a SignalVector by asking a
// completion model for a single JSON object and validating what comes back.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/CaptainMig/nerva-v8/pkg/types"
)

// AIBackend abstracts the completion API so tests can supply a stub. One
// call is one single-turn exchange; the returned string is the text of the
// first completion.
type AIBackend interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is a single-turn exchange with the completion model.
type CompletionRequest struct {
	Model       string
	Temperature float64
	System      string
	User        string
}

// Extractor derives signal vectors from scenarios. It holds no per-request
// state and is safe for concurrent use when its backend is.
type Extractor struct {
	cfg     types.ExtractorConfig
	backend AIBackend
}

// New returns an Extractor that sends requests through backend. An empty
// model or range policy falls back to the defaults.
func New(cfg types.ExtractorConfig, backend AIBackend) *Extractor {
	if cfg.Model == "" {
		cfg.Model = types.DefaultModel
	}
	if cfg.RangePolicy == "" {
		cfg.RangePolicy = types.RangeReject
	}
	return &Extractor{cfg: cfg, backend: backend}
}

// NewFromConfig validates cfg and returns an Extractor backed by the OpenAI
// Chat Completions API.
func NewFromConfig(cfg types.ExtractorConfig) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return New(cfg, NewOpenAIBackend(cfg.AIConfig, nil)), nil
}

// Model returns the completion model the extractor requests.
func (e *Extractor) Model() string {
	return e.cfg.Model
}

// Extract returns the signal vector for scenario. Input and credential
// checks happen before any upstream call. Upstream failures are returned as
// *UpstreamError and never retried; a malformed response is re-requested
// only when MalformedRetries is set.
func (e *Extractor) Extract(ctx context.Context, scenario string) (types.SignalVector, error) {
	scenario = strings.TrimSpace(scenario)
	if scenario == "" {
		return types.SignalVector{}, fmt.Errorf("%w: scenario is empty", ErrInvalidInput)
	}
	if e.cfg.APIKey == "" {
		return types.SignalVector{}, fmt.Errorf("%w: no API key configured for the completion API", ErrConfiguration)
	}

	req := CompletionRequest{
		Model:       e.cfg.Model,
		Temperature: e.cfg.Temperature,
		System:      SystemPrompt,
		User:        scenario,
	}

	var lastErr error
	for attempt := 0; attempt <= e.cfg.MalformedRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return types.SignalVector{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		v, err := e.extractOnce(ctx, req)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrMalformedResponse) {
			return types.SignalVector{}, err
		}
		lastErr = err
	}

	if e.cfg.MalformedRetries > 0 {
		return types.SignalVector{}, fmt.Errorf("after %d retries: %w", e.cfg.MalformedRetries, lastErr)
	}
	return types.SignalVector{}, lastErr
}

// backoffBase is the first wait before re-requesting a malformed response.
// Tests override this to avoid real sleeps.
var backoffBase = time.Second

func (e *Extractor) extractOnce(ctx context.Context, req CompletionRequest) (types.SignalVector, error) {
	text, err := e.backend.Complete(ctx, req)
	if err != nil {
		var upErr *UpstreamError
		if errors.As(err, &upErr) || errors.Is(err, ErrInternal) {
			return types.SignalVector{}, err
		}
		return types.SignalVector{}, fmt.Errorf("%w: calling completion API: %w", ErrInternal, err)
	}
	return parseSignalVector(stripCodeFence(text), e.cfg.RangePolicy)
}

// stripCodeFence removes one leading ``` fence (optionally tagged json) and
// one trailing ``` fence around the model's text.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		if len(rest) >= 4 && strings.EqualFold(rest[:4], "json") {
			rest = rest[4:]
		}
		s = strings.TrimSpace(rest)
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// wireVector mirrors SignalVector with pointers so missing fields are visible.
type wireVector struct {
	Urgency         *float64 `json:"urgency"`
	Strategy        *float64 `json:"strategy"`
	Risk            *float64 `json:"risk"`
	Support         *float64 `json:"support"`
	Stability       *float64 `json:"stability"`
	Irreversibility *float64 `json:"irreversibility"`
	Stakes          *float64 `json:"stakes"`
	TimePressure    *float64 `json:"time_pressure"`
	Reasoning       string   `json:"reasoning"`
}

type signalSlot struct {
	name string
	in   *float64
	out  *float64
}

// slots pairs each decoded field with its destination, in SignalFields order.
func (w *wireVector) slots(v *types.SignalVector) []signalSlot {
	return []signalSlot{
		{"urgency", w.Urgency, &v.Urgency},
		{"strategy", w.Strategy, &v.Strategy},
		{"risk", w.Risk, &v.Risk},
		{"support", w.Support, &v.Support},
		{"stability", w.Stability, &v.Stability},
		{"irreversibility", w.Irreversibility, &v.Irreversibility},
		{"stakes", w.Stakes, &v.Stakes},
		{"time_pressure", w.TimePressure, &v.TimePressure},
	}
}

// parseSignalVector decodes text as exactly one JSON object and applies the
// range policy. No partial recovery is attempted.
func parseSignalVector(text string, policy types.RangePolicy) (types.SignalVector, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return types.SignalVector{}, malformedf("parsing response JSON: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return types.SignalVector{}, malformedf("unexpected data after JSON object")
	}
	if len(raw) == 0 || raw[0] != '{' {
		return types.SignalVector{}, malformedf("response is not a JSON object")
	}

	var w wireVector
	if err := json.Unmarshal(raw, &w); err != nil {
		return types.SignalVector{}, malformedf("decoding signal vector: %v", err)
	}

	v := types.SignalVector{Reasoning: w.Reasoning}
	for _, s := range w.slots(&v) {
		if s.in == nil {
			if policy == types.RangePassthrough {
				continue
			}
			return types.SignalVector{}, malformedf("missing signal %q", s.name)
		}
		x := *s.in
		if x < 0 || x > 1 {
			switch policy {
			case types.RangeReject:
				return types.SignalVector{}, malformedf("signal %q = %v out of range [0,1]", s.name, x)
			case types.RangeClamp:
				x = math.Min(1, math.Max(0, x))
			}
		}
		*s.out = x
	}
	return v, nil
}
