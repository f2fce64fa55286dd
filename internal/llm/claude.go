package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultAnthropicBaseURL = "https://api.anthropic.com"

// ClaudeClient calls the Anthropic Messages API.
type ClaudeClient struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
}

func NewClaudeClient(apiKey, model, baseURL string, timeout time.Duration) *ClaudeClient {
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	return &ClaudeClient{
		apiKey:     apiKey,
		modelName:  model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage *struct {
		InputTokens  *int `json:"input_tokens"`
		OutputTokens *int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ClaudeClient) generate(ctx context.Context, req Request) (string, Usage, error) {
	reqBody := anthropicRequest{
		Model:       c.modelName,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      req.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.User},
		},
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	}

	var apiResp anthropicResponse
	if err := postJSON(ctx, c.httpClient, "claude", c.baseURL+"/v1/messages", headers, reqBody, &apiResp); err != nil {
		return "", Usage{}, err
	}
	if apiResp.Error != nil {
		return "", Usage{}, fmt.Errorf("claude error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	var text string
	for _, block := range apiResp.Content {
		if block.Type == "" || block.Type == "text" {
			text = block.Text
			break
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", Usage{}, fmt.Errorf("empty response from claude")
	}

	var usage Usage
	if apiResp.Usage != nil {
		usage.InputTokens = apiResp.Usage.InputTokens
		usage.OutputTokens = apiResp.Usage.OutputTokens
	}
	return text, usage, nil
}

func (c *ClaudeClient) model() string { return c.modelName }

// close releases idle connections.
func (c *ClaudeClient) close() {
	c.httpClient.CloseIdleConnections()
}
