package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeCacheHit = "cache_hit"
	OutcomeFailure  = "failure"
)

var (
	Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "examgrader", Name: "evaluations_total", Help: "Answer evaluations by outcome."},
		[]string{"outcome"},
	)
	EvaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "examgrader", Name: "llm_request_duration_seconds", Help: "Latency of LLM provider calls.", Buckets: prometheus.ExponentialBuckets(0.25, 2, 8)},
	)
	StoreWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "examgrader", Name: "exam_result_writes_total", Help: "Exam result inserts by outcome."},
		[]string{"outcome"},
	)
	KeywordExtractions = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "examgrader", Name: "keyword_extractions_total", Help: "Number of keyword extraction requests served."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Evaluations)
	reg.MustRegister(EvaluationDuration)
	reg.MustRegister(StoreWrites)
	reg.MustRegister(KeywordExtractions)
}
