package domain

import (
	"context"
	"encoding/json"
	"time"
)

const (
	entryTimeLayout       = "2006-01-02T15:04:05"
	entryTimeLayoutMicros = "2006-01-02T15:04:05.000000"
)

// FormatEntryTime renders t as a local ISO-8601 timestamp. The fraction is
// always six digits and is omitted when the microseconds are zero.
func FormatEntryTime(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(entryTimeLayout)
	}
	return t.Format(entryTimeLayoutMicros)
}

// ExamResult is one stored exam outcome. There is no update or delete path
// and no uniqueness constraint.
type ExamResult struct {
	StudentName string `json:"student_name"`
	Subject     string `json:"subject"`
	Topic       string `json:"topic"`
	// Score is kept as the literal the client sent, so integers stay integers.
	Score   json.Number `json:"score"`
	Cheated bool        `json:"cheated"`
	// EntryTime is kept as the client sent it.
	EntryTime string `json:"entry_time"`
}

// NewExamResult fills the optional fields with their defaults.
func NewExamResult(studentName, subject, topic string, score json.Number, cheated *bool, entryTime *string, now time.Time) *ExamResult {
	result := &ExamResult{
		StudentName: studentName,
		Subject:     subject,
		Topic:       topic,
		Score:       score,
		EntryTime:   FormatEntryTime(now),
	}
	if cheated != nil {
		result.Cheated = *cheated
	}
	if entryTime != nil {
		result.EntryTime = *entryTime
	}
	return result
}

// ExamResultRepository persists exam results.
type ExamResultRepository interface {
	// Insert writes one result unconditionally.
	Insert(ctx context.Context, result *ExamResult) error

	// Ping checks the health of the backing store.
	Ping(ctx context.Context) error
}
