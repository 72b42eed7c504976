package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/verifact/internal/domain/ai"
	"github.com/bryanwahyu/verifact/internal/infra/ai/prompt"
)

const (
	maxTokens    = 1024
	defaultModel = "gpt-4o-mini"
)

// Client implements ai.Client over an OpenAI-compatible chat completion API.
type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a client; baseURL is optional and selects an
// OpenAI-compatible provider. A zero timeout leaves the HTTP client unbounded.
func NewClient(apiKey, model, baseURL string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) DetectLanguage(ctx context.Context, text string) (string, error) {
	var out prompt.LanguageAnswer
	if err := c.complete(ctx, prompt.GetLanguagePrompt(), prompt.GetUserPrompt("text", text), &out); err != nil {
		return "", err
	}
	if out.Language == "" {
		return "", fmt.Errorf("%w: language missing", ai.ErrMalformedResponse)
	}
	return out.Language, nil
}

func (c *Client) AnalyzeContent(ctx context.Context, text, language string) (ai.Analysis, error) {
	var out ai.Analysis
	if err := c.complete(ctx, prompt.GetContentPrompt(language), prompt.GetUserPrompt("text", text), &out); err != nil {
		return ai.Analysis{}, err
	}
	return out, out.Validate()
}

func (c *Client) AnalyzeURL(ctx context.Context, url, language string) (ai.Analysis, error) {
	var out ai.Analysis
	if err := c.complete(ctx, prompt.GetURLPrompt(language), prompt.GetUserPrompt("URL", url), &out); err != nil {
		return ai.Analysis{}, err
	}
	return out, out.Validate()
}

func (c *Client) FactCheck(ctx context.Context, text, language string) (ai.FactCheck, error) {
	var out ai.FactCheck
	if err := c.complete(ctx, prompt.GetFactCheckPrompt(language), prompt.GetUserPrompt("text", text), &out); err != nil {
		return ai.FactCheck{}, err
	}
	out.Verdict = ai.NormalizeVerdict(string(out.Verdict))
	return out, out.Validate()
}

// complete runs one JSON-mode chat completion and decodes the answer into out.
func (c *Client) complete(ctx context.Context, system, user string, out any) error {
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
		req.Temperature = 0.1
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return classify(err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("%w: no choices", ai.ErrMalformedResponse)
	}
	body := prompt.StripFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	return nil
}

// classify maps provider errors onto the collaborator taxonomy.
func classify(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%w: failed to create chat completion: %v", ai.ErrUnavailable, err)
}
