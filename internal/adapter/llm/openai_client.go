package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"exam-grader/internal/domain"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements domain.LLMClient with go-openai against any
// OpenAI-compatible endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, baseURL, model string, httpClient *http.Client) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("LLM API key cannot be empty")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, opts domain.CompletionOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: float32(opts.Temperature),
		MaxTokens:   opts.MaxTokens,
	}

	rsp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(rsp.Choices) == 0 {
		return "", errors.New("no response from LLM")
	}

	return rsp.Choices[0].Message.Content, nil
}

var _ domain.LLMClient = (*OpenAIClient)(nil)
