// Package gemini is a minimal client for the Gemini generateContent endpoint.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"scriptureCircle/errs"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-1.5-flash"
	defaultTimeout = 10 * time.Second
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = fmt.Errorf("%w: ai generation is not configured", errs.ErrUpstreamUnavailable)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	http   *resty.Client
	apiKey string
	model  string
}

var _ Generator = (*Client)(nil)

func NewClient(http *resty.Client, apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{http: http, apiKey: apiKey, model: model}
}

// NewHTTPClient returns a resty client preconfigured for the Gemini API.
func NewHTTPClient(baseURL string) *resty.Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json")
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrDisabled
	}
	response := &generateResponse{}
	responseError := &apiError{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetPathParam("model", c.model).
		SetBody(generateRequest{Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}}}).
		SetResult(response).
		SetError(responseError).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrUpstreamUnavailable, err.Error())
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: gemini returned %d: %s", errs.ErrUpstreamUnavailable, resp.StatusCode(), responseError.Error.Message)
	}

	var sb strings.Builder
	for _, cand := range response.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.Join(errs.ErrUpstreamUnavailable, errors.New("gemini returned no text"))
	}
	return text, nil
}
