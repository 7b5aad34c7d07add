package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"exam-grader/internal/cache"
	"exam-grader/internal/domain"
	"exam-grader/internal/logger"
	"exam-grader/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const evaluationPromptTemplate = `
You are an educational AI assistant evaluating a student's answers.
Evaluate these responses:

Question 1: %s
Answer 1: %s

Question 2: %s
Answer 2: %s

Question 3: %s
Answer 3: %s

Question 4: %s
Answer 4: %s

Scoring (100 points total):
1. Topic Understanding (25 points): Does Answer 1 show deep understanding?
2. Real-Time Focus (25 points): Does Answer 2 mention immediate/live applications?
3. Technology Impact (25 points): Does Answer 3 explain modern tech impact?
4. Challenges (25 points): Does Answer 4 identify specific implementation challenges?

Provide feedback in this format:
Score: [total score]
Topic Understanding: [feedback on Answer 1]
Real-Time Applications: [feedback on Answer 2]
Technology Impact: [feedback on Answer 3]
Challenges: [feedback on Answer 4]
Overall: [summary feedback]
`

// DefaultEvaluationCacheTTL applies when no TTL is configured.
const DefaultEvaluationCacheTTL = 24 * time.Hour

// BuildEvaluationPrompt embeds the eight values verbatim.
func BuildEvaluationPrompt(req *domain.EvaluationRequest) string {
	return fmt.Sprintf(evaluationPromptTemplate,
		req.Question1, req.Answer1,
		req.Question2, req.Answer2,
		req.Question3, req.Answer3,
		req.Question4, req.Answer4,
	)
}

type answerEvaluator struct {
	client   domain.LLMClient
	opts     domain.CompletionOptions
	cache    domain.Cache
	cacheTTL time.Duration
	sfGroup  singleflight.Group
}

// NewAnswerEvaluator creates the grading service. cache may be nil, which
// disables caching of provider output.
func NewAnswerEvaluator(client domain.LLMClient, opts domain.CompletionOptions, cache domain.Cache, cacheTTL time.Duration) domain.AnswerEvaluator {
	if cacheTTL <= 0 {
		cacheTTL = DefaultEvaluationCacheTTL
	}
	return &answerEvaluator{
		client:   client,
		opts:     opts,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Evaluate returns the provider's text unmodified, or a zero-score fallback
// when the provider cannot be reached.
func (e *answerEvaluator) Evaluate(ctx context.Context, req *domain.EvaluationRequest) string {
	l := logger.Get()
	prompt := BuildEvaluationPrompt(req)

	if e.cache == nil {
		feedback, err := e.complete(ctx, prompt)
		if err != nil {
			return e.fallback(err)
		}
		return e.succeeded(feedback, false)
	}

	cacheKey := e.cacheKey(prompt)
	cached, err := e.cache.Get(ctx, cacheKey)
	switch {
	case err == nil:
		l.Debug("Evaluation cache hit", zap.String("key", cacheKey))
		metrics.Evaluations.WithLabelValues(metrics.OutcomeCacheHit).Inc()
		return cached
	case !errors.Is(err, domain.ErrCacheMiss):
		l.Warn("Evaluation cache lookup failed", zap.Error(domain.NewCacheError(err)), zap.String("key", cacheKey))
	}

	// Identical in-flight requests share one provider call while a cache is configured.
	res, err, shared := e.sfGroup.Do(cacheKey, func() (interface{}, error) {
		feedback, callErr := e.complete(ctx, prompt)
		if callErr != nil {
			return nil, callErr
		}
		if setErr := e.cache.Set(ctx, cacheKey, feedback, e.cacheTTL); setErr != nil {
			l.Warn("Failed to cache evaluation", zap.Error(domain.NewCacheError(setErr)), zap.String("key", cacheKey))
		}
		return feedback, nil
	})
	if err != nil {
		return e.fallback(err)
	}
	return e.succeeded(res.(string), shared)
}

func (e *answerEvaluator) complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	feedback, err := e.client.Complete(ctx, prompt, e.opts)
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", domain.NewLLMServiceError(err)
	}
	return feedback, nil
}

func (e *answerEvaluator) fallback(err error) string {
	logger.Get().Error("LLM evaluation failed, returning fallback feedback", zap.Error(err))
	metrics.Evaluations.WithLabelValues(metrics.OutcomeFallback).Inc()
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Err != nil {
		return domain.FallbackFeedback(domainErr.Err)
	}
	return domain.FallbackFeedback(err)
}

func (e *answerEvaluator) succeeded(feedback string, shared bool) string {
	logger.Get().Info("Answer evaluated", zap.Bool("shared", shared), zap.Int("feedback_length", len(feedback)))
	metrics.Evaluations.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return feedback
}

// cacheKey identifies an evaluation by its prompt and sampling parameters.
func (e *answerEvaluator) cacheKey(prompt string) string {
	h := sha256.New()
	h.Write([]byte(prompt))
	h.Write([]byte{0})
	h.Write([]byte(e.opts.Model))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(e.opts.Temperature, 'f', -1, 64)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(e.opts.MaxTokens)))
	return cache.GenerateCacheKey("evaluation", "feedback", hex.EncodeToString(h.Sum(nil)))
}
