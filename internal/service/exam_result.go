package service

import (
	"context"
	"time"

	"exam-grader/internal/domain"
	"exam-grader/internal/dto"
	"exam-grader/internal/logger"
	"exam-grader/internal/metrics"

	"go.uber.org/zap"
)

// ExamResultService persists exam results.
type ExamResultService interface {
	// StoreExamResult applies defaults and inserts the result. Storage
	// failures are logged and never returned to the caller.
	StoreExamResult(ctx context.Context, req *dto.StoreExamResultRequest) *domain.ExamResult
}

type examResultService struct {
	repo domain.ExamResultRepository
	now  func() time.Time
}

// NewExamResultService creates the result store. now may be nil.
func NewExamResultService(repo domain.ExamResultRepository, now func() time.Time) ExamResultService {
	if now == nil {
		now = time.Now
	}
	return &examResultService{repo: repo, now: now}
}

// StoreExamResult expects a request that already passed Validate.
func (s *examResultService) StoreExamResult(ctx context.Context, req *dto.StoreExamResultRequest) *domain.ExamResult {
	result := domain.NewExamResult(
		*req.StudentName,
		*req.Subject,
		*req.Topic,
		*req.Score,
		req.Cheated,
		req.EntryTime,
		s.now(),
	)

	if err := s.repo.Insert(ctx, result); err != nil {
		logger.Get().Error("Error storing exam details",
			zap.Error(domain.NewStoreError(err)),
			zap.String("student_name", result.StudentName),
			zap.String("subject", result.Subject),
		)
		metrics.StoreWrites.WithLabelValues(metrics.OutcomeFailure).Inc()
		return result
	}

	metrics.StoreWrites.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return result
}
