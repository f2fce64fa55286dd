package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the generateContent endpoint. Gemini has no separate
// system role here, so the system prompt is prepended to the user turn.
type GeminiClient struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, model, baseURL string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &GeminiClient{
		apiKey:     apiKey,
		modelName:  model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     *int `json:"promptTokenCount"`
		CandidatesTokenCount *int `json:"candidatesTokenCount"`
		TotalTokenCount      *int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (c *GeminiClient) generate(ctx context.Context, req Request) (string, Usage, error) {
	var reqBody geminiRequest
	reqBody.Contents = []geminiContent{{
		Role:  "user",
		Parts: []geminiPart{{Text: req.System + "\n\n" + req.User}},
	}}
	reqBody.GenerationConfig.Temperature = req.Temperature
	reqBody.GenerationConfig.MaxOutputTokens = req.MaxTokens

	endpoint := c.baseURL + "/v1beta/models/" + url.PathEscape(c.modelName) + ":generateContent"
	headers := map[string]string{"x-goog-api-key": c.apiKey}

	var apiResp geminiResponse
	if err := postJSON(ctx, c.httpClient, "gemini", endpoint, headers, reqBody, &apiResp); err != nil {
		return "", Usage{}, err
	}
	if len(apiResp.Candidates) == 0 {
		return "", Usage{}, fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", Usage{}, fmt.Errorf("empty response from gemini")
	}

	var usage Usage
	if u := apiResp.UsageMetadata; u != nil {
		usage = Usage{InputTokens: u.PromptTokenCount, OutputTokens: u.CandidatesTokenCount, Total: u.TotalTokenCount}
	}
	return text, usage, nil
}

func (c *GeminiClient) model() string { return c.modelName }

func (c *GeminiClient) close() {
	c.httpClient.CloseIdleConnections()
}
