package repository

import (
	"context"
	"sync"

	"exam-grader/internal/domain"
)

// MemoryExamResultRepository keeps results in process memory. Used for local
// runs without a document store and in tests.
type MemoryExamResultRepository struct {
	mu      sync.RWMutex
	results []*domain.ExamResult
}

func NewMemoryExamResultRepository() *MemoryExamResultRepository {
	return &MemoryExamResultRepository{}
}

func (m *MemoryExamResultRepository) Insert(ctx context.Context, result *domain.ExamResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *result
	m.results = append(m.results, &stored)
	return nil
}

func (m *MemoryExamResultRepository) Ping(ctx context.Context) error {
	return nil
}

// All returns copies of the stored results in insertion order.
func (m *MemoryExamResultRepository) All() []*domain.ExamResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.ExamResult, 0, len(m.results))
	for _, r := range m.results {
		c := *r
		out = append(out, &c)
	}
	return out
}

var _ domain.ExamResultRepository = (*MemoryExamResultRepository)(nil)
