// Package gemini is a thin client for the hosted generative-language API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/eletrodesk/eletrodesk-backend/pkg/config"
	"github.com/go-resty/resty/v2"
)

// Completion failures are classified so callers can map them to distinct
// user-facing fallbacks.
var (
	ErrNotConfigured      = errors.New("gemini: api key not configured")
	ErrTimeout            = errors.New("gemini: completion timed out")
	ErrInvalidCredentials = errors.New("gemini: invalid credentials")
	ErrQuotaExceeded      = errors.New("gemini: quota exceeded")
)

// GenerationOptions tunes a single completion call.
type GenerationOptions struct {
	Temperature     float64
	TopP            float64
	MaxOutputTokens int
}

// Client talks to the generateContent endpoint of a Gemini-style API.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
}

// NewClient builds a client from configuration. A client without an API key is
// still usable; Generate reports ErrNotConfigured.
func NewClient(cfg config.GeminiConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json")
	return &Client{
		http:   httpClient,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt and returns the first candidate's text. The
// caller's context bounds the call; when its deadline fires the in-flight
// request is cancelled and ErrTimeout is returned.
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     opts.Temperature,
			TopP:            opts.TopP,
			MaxOutputTokens: opts.MaxOutputTokens,
		},
	}

	var parsed generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(payload).
		SetResult(&parsed).
		SetError(&parsed).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("gemini request: %w", err)
	}

	if resp.IsError() {
		return "", classifyHTTPError(resp.StatusCode(), parsed)
	}

	text := firstCandidateText(parsed)
	if text == "" {
		return "", fmt.Errorf("gemini: empty completion")
	}
	return text, nil
}

func classifyHTTPError(status int, parsed generateResponse) error {
	message := ""
	if parsed.Error != nil {
		message = parsed.Error.Message
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidCredentials
	case http.StatusTooManyRequests:
		return ErrQuotaExceeded
	}
	if parsed.Error != nil {
		switch parsed.Error.Status {
		case "RESOURCE_EXHAUSTED":
			return ErrQuotaExceeded
		case "UNAUTHENTICATED", "PERMISSION_DENIED":
			return ErrInvalidCredentials
		}
	}
	if strings.Contains(strings.ToLower(message), "api key") {
		return ErrInvalidCredentials
	}
	return fmt.Errorf("gemini: completion failed with status %d: %s", status, message)
}

func firstCandidateText(parsed generateResponse) string {
	for _, cand := range parsed.Candidates {
		var sb strings.Builder
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text
		}
	}
	return ""
}
