// Package gemini adapts the Generative Language REST API to eino's chat
// model interface.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 60 * time.Second

	roleUser  = "user"
	roleModel = "model"

	maxErrorBody = 4 << 10
)

var _ model.BaseChatModel = (*Client)(nil)

// Config describes how to reach the API.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls models/{model}:generateContent.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient validates cfg and fills defaults.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}

	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		modelName = DefaultModel
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		model:      modelName,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Part is a single text fragment of a content entry.
type Part struct {
	Text string `json:"text"`
}

// Content is one role-tagged entry of the conversation.
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// GenerateRequest is the request body for generateContent.
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini returned status %d: %s", e.StatusCode, e.Body)
}

// ToContents converts eino messages to API contents. The API only knows the
// user and model roles, so everything that is not a user message is sent as
// model.
func ToContents(input []*schema.Message) []Content {
	contents := make([]Content, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		role := roleModel
		if msg.Role == schema.User {
			role = roleUser
		}
		contents = append(contents, Content{Role: role, Parts: []Part{{Text: msg.Content}}})
	}
	return contents
}

// Generate sends the conversation and returns the first candidate's text as
// an assistant message. A response without text yields empty content.
func (c *Client) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	body, err := json.Marshal(GenerateRequest{Contents: ToContents(input)})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %s", redact(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := gjson.GetBytes(bodyBytes, "error.message").String()
		if detail == "" {
			detail = string(bodyBytes)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: detail}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if !gjson.ValidBytes(respBody) {
		return nil, errors.New("decoding response: body is not valid JSON")
	}

	parsed := gjson.ParseBytes(respBody)
	msg := schema.AssistantMessage(parsed.Get("candidates.0.content.parts.0.text").String(), nil)
	msg.ResponseMeta = &schema.ResponseMeta{
		FinishReason: parsed.Get("candidates.0.finishReason").String(),
	}
	if usage := parsed.Get("usageMetadata"); usage.Exists() {
		msg.ResponseMeta.Usage = &schema.TokenUsage{
			PromptTokens:     int(usage.Get("promptTokenCount").Int()),
			CompletionTokens: int(usage.Get("candidatesTokenCount").Int()),
			TotalTokens:      int(usage.Get("totalTokenCount").Int()),
		}
	}
	return msg, nil
}

// Stream delivers the Generate result as a single chunk.
func (c *Client) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := c.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// Model returns the configured model id.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

// redact keeps the key, which travels in the query string, out of transport
// errors that quote the URL.
func redact(text, secret string) string {
	if secret == "" {
		return text
	}
	text = strings.ReplaceAll(text, url.QueryEscape(secret), "REDACTED")
	return strings.ReplaceAll(text, secret, "REDACTED")
}
