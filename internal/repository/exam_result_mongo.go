package repository

import (
	"context"
	"fmt"

	"exam-grader/internal/domain"
	"exam-grader/internal/repository/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoExamResultRepository writes exam results into a MongoDB collection.
type MongoExamResultRepository struct {
	col *mongo.Collection
}

func NewMongoExamResultRepository(col *mongo.Collection) *MongoExamResultRepository {
	return &MongoExamResultRepository{col: col}
}

// Insert performs a plain InsertOne; duplicates are allowed.
func (m *MongoExamResultRepository) Insert(ctx context.Context, result *domain.ExamResult) error {
	if _, err := m.col.InsertOne(ctx, models.ExamResultFromDomain(result)); err != nil {
		return fmt.Errorf("insert exam result: %w", err)
	}
	return nil
}

func (m *MongoExamResultRepository) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, readpref.Primary())
}

var _ domain.ExamResultRepository = (*MongoExamResultRepository)(nil)
