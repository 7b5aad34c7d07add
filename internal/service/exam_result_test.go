package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"exam-grader/internal/domain"
	"exam-grader/internal/dto"
	"exam-grader/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func scorePtr(s string) *json.Number {
	n := json.Number(s)
	return &n
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestExamResultService_StoreExamResult_Defaults(t *testing.T) {
	repo := new(MockExamResultRepository)
	now := time.Date(2024, 3, 9, 14, 5, 7, 250000000, time.Local)

	expected := &domain.ExamResult{
		StudentName: "Ravi",
		Subject:     "Physics",
		Topic:       "Optics",
		Score:       json.Number("67.5"),
		Cheated:     false,
		EntryTime:   "2024-03-09T14:05:07.250000",
	}
	repo.On("Insert", mock.Anything, expected).Return(nil).Once()

	svc := NewExamResultService(repo, fixedClock(now))
	stored := svc.StoreExamResult(context.Background(), &dto.StoreExamResultRequest{
		StudentName: strPtr("Ravi"),
		Subject:     strPtr("Physics"),
		Topic:       strPtr("Optics"),
		Score:       scorePtr("67.5"),
	})

	assert.Equal(t, expected, stored)
	repo.AssertExpectations(t)
}

func TestExamResultService_StoreExamResult_ExplicitValues(t *testing.T) {
	repo := new(MockExamResultRepository)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(r *domain.ExamResult) bool {
		return r.Cheated && r.EntryTime == "not-a-date"
	})).Return(nil).Once()

	svc := NewExamResultService(repo, nil)
	stored := svc.StoreExamResult(context.Background(), &dto.StoreExamResultRequest{
		StudentName: strPtr("Mina"),
		Subject:     strPtr("History"),
		Topic:       strPtr("Rome"),
		Score:       scorePtr("12"),
		Cheated:     boolPtr(true),
		EntryTime:   strPtr("not-a-date"),
	})

	assert.True(t, stored.Cheated)
	assert.Equal(t, "not-a-date", stored.EntryTime)
	repo.AssertExpectations(t)
}

func TestExamResultService_StoreExamResult_FailureIsLoggedOnly(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	previous := logger.Get()
	logger.Set(zap.New(core))
	defer logger.Set(previous)

	repo := new(MockExamResultRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("no reachable servers")).Once()

	svc := NewExamResultService(repo, nil)
	stored := svc.StoreExamResult(context.Background(), &dto.StoreExamResultRequest{
		StudentName: strPtr("Ola"),
		Subject:     strPtr("Math"),
		Topic:       strPtr("Limits"),
		Score:       scorePtr("99"),
	})

	assert.NotNil(t, stored)
	entries := logs.FilterMessage("Error storing exam details").All()
	if assert.Len(t, entries, 1) {
		assert.Contains(t, entries[0].ContextMap()["error"], "no reachable servers")
		assert.Equal(t, "Ola", entries[0].ContextMap()["student_name"])
	}
	repo.AssertExpectations(t)
}
