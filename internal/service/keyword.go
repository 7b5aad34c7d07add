package service

import (
	"strings"
	"unicode/utf8"

	"exam-grader/internal/config"
	"exam-grader/internal/domain"
	"exam-grader/internal/metrics"
)

type keywordExtractor struct {
	stopWords map[string]struct{}
	minLength int
	limit     int
}

// NewKeywordExtractor builds an extractor; zero-valued settings fall back to
// the domain defaults.
func NewKeywordExtractor(cfg config.KeywordConfig) domain.KeywordExtractor {
	words := cfg.StopWords
	if len(words) == 0 {
		words = domain.DefaultStopWords
	}
	stopWords := make(map[string]struct{}, len(words))
	for _, w := range words {
		stopWords[strings.ToLower(w)] = struct{}{}
	}

	minLength := cfg.MinLength
	if minLength <= 0 {
		minLength = domain.DefaultKeywordMinLength
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = domain.DefaultKeywordLimit
	}

	return &keywordExtractor{
		stopWords: stopWords,
		minLength: minLength,
		limit:     limit,
	}
}

// Extract lowercases text, splits it on whitespace and returns the first
// tokens that are neither stop-words nor shorter than minLength characters.
// Punctuation stays attached to its token.
func (k *keywordExtractor) Extract(text string) []string {
	metrics.KeywordExtractions.Inc()

	keywords := make([]string, 0, k.limit)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(keywords) == k.limit {
			break
		}
		if _, stop := k.stopWords[word]; stop {
			continue
		}
		if utf8.RuneCountInString(word) < k.minLength {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}
