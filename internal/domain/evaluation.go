package domain

import (
	"context"
	"fmt"
)

// EvaluationRequest carries the four question/answer pairs of one exam.
// It is never persisted.
type EvaluationRequest struct {
	Question1 string
	Answer1   string
	Question2 string
	Answer2   string
	Question3 string
	Answer3   string
	Question4 string
	Answer4   string
}

// CompletionOptions are the sampling parameters sent with a prompt.
type CompletionOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// LLMClient sends a single-prompt chat completion and returns the raw text.
type LLMClient interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

// AnswerEvaluator grades an exam. It always returns feedback text; provider
// failures are reported inside the text rather than as an error.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, req *EvaluationRequest) string
}

// FallbackFeedback is the zero-score feedback returned in place of provider output.
func FallbackFeedback(err error) string {
	return fmt.Sprintf("Score: 0\nError: %v", err)
}
