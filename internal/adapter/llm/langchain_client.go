package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"exam-grader/internal/domain"
	"exam-grader/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangchainClient implements domain.LLMClient over any langchaingo model.
type LangchainClient struct {
	model llms.Model
}

// NewLangchainClient builds an OpenAI-compatible langchaingo client, e.g. for Groq.
func NewLangchainClient(apiKey, baseURL, model string, httpClient *http.Client) (*LangchainClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("LLM API key cannot be empty")
	}
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, openai.WithHTTPClient(httpClient))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
	}
	return &LangchainClient{model: llm}, nil
}

// NewLangchainClientFromModel wraps an existing model.
func NewLangchainClientFromModel(model llms.Model) *LangchainClient {
	return &LangchainClient{model: model}
}

// Complete sends prompt as a single user message.
func (c *LangchainClient) Complete(ctx context.Context, prompt string, opts domain.CompletionOptions) (string, error) {
	l := logger.Get()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	callOpts := []llms.CallOption{
		llms.WithTemperature(opts.Temperature),
		llms.WithMaxTokens(opts.MaxTokens),
	}
	if opts.Model != "" {
		callOpts = append(callOpts, llms.WithModel(opts.Model))
	}

	resp, err := c.model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("no response from LLM")
	}
	return resp.Choices[0].Content, nil
}

var _ domain.LLMClient = (*LangchainClient)(nil)
