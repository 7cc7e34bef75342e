package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"barangay-pet-registry/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("gemini client not configured")
	ErrUpstream      = errors.New("gemini upstream error")
	ErrEmptyResponse = errors.New("gemini empty response")
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
)

// Config del cliente Gemini. APIKey normalmente viene de GEMINI_API_KEY.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client llama a la API REST generateContent. Implementa ai.Summarizer.
type Client struct {
	http   *httpclient.Client
	apiKey string
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(base, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  model,
	}, nil
}

// NewFromEnv lee GEMINI_API_KEY / GEMINI_MODEL. Un client sin API key es
// válido pero IsConfigured() == false.
func NewFromEnv() (*Client, error) {
	return NewClient(Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  os.Getenv("GEMINI_MODEL"),
	})
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("gemini: empty prompt")
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	var resp generateResponse
	err := c.http.DoJSON(ctx, http.MethodPost, path, map[string]string{
		"x-goog-api-key": c.apiKey,
	}, req, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	for _, cand := range resp.Candidates {
		var b strings.Builder
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			return text, nil
		}
	}
	return "", ErrEmptyResponse
}
