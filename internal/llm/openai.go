package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

// OpenAIClient calls the Chat Completions API.
type OpenAIClient struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIClient(apiKey, model, baseURL string, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		modelName:  model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     *int `json:"prompt_tokens"`
		CompletionTokens *int `json:"completion_tokens"`
		TotalTokens      *int `json:"total_tokens"`
	} `json:"usage"`
}

func (c *OpenAIClient) generate(ctx context.Context, req Request) (string, Usage, error) {
	reqBody := chatRequest{
		Model: c.modelName,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var apiResp chatResponse
	if err := postJSON(ctx, c.httpClient, "openai", c.baseURL+"/v1/chat/completions", headers, reqBody, &apiResp); err != nil {
		return "", Usage{}, err
	}
	if len(apiResp.Choices) == 0 || strings.TrimSpace(apiResp.Choices[0].Message.Content) == "" {
		return "", Usage{}, fmt.Errorf("empty response from openai")
	}

	var usage Usage
	if u := apiResp.Usage; u != nil {
		usage = Usage{InputTokens: u.PromptTokens, OutputTokens: u.CompletionTokens, Total: u.TotalTokens}
	}
	return apiResp.Choices[0].Message.Content, usage, nil
}

func (c *OpenAIClient) model() string { return c.modelName }

func (c *OpenAIClient) close() {
	c.httpClient.CloseIdleConnections()
}
