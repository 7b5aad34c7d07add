package models

import (
	"encoding/json"

	"exam-grader/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExamResult is the document stored in the exam_results collection.
type ExamResult struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	StudentName string             `bson:"student_name"`
	Subject     string             `bson:"subject"`
	Topic       string             `bson:"topic"`
	Score       interface{}        `bson:"score"`
	Cheated     bool               `bson:"cheated"`
	EntryTime   string             `bson:"entry_time"`
}

func ExamResultFromDomain(r *domain.ExamResult) *ExamResult {
	return &ExamResult{
		StudentName: r.StudentName,
		Subject:     r.Subject,
		Topic:       r.Topic,
		Score:       scoreValue(r.Score),
		Cheated:     r.Cheated,
		EntryTime:   r.EntryTime,
	}
}

// scoreValue stores integral scores as int64 and everything else as a double.
func scoreValue(n json.Number) interface{} {
	if i, err := n.Int64(); err == nil {
		return i
	}
	f, _ := n.Float64()
	return f
}
