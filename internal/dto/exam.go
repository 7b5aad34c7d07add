package dto

import (
	"encoding/json"

	"exam-grader/internal/domain"
)

// Request fields are pointers so that an absent (or null) key can be told
// apart from an empty value.

// EvaluateAnswerRequest represents the four question/answer pairs to grade
// @Description Request body for grading an exam
type EvaluateAnswerRequest struct {
	Question1 *string `json:"question1"`
	Answer1   *string `json:"answer1"`
	Question2 *string `json:"question2"`
	Answer2   *string `json:"answer2"`
	Question3 *string `json:"question3"`
	Answer3   *string `json:"answer3"`
	Question4 *string `json:"question4"`
	Answer4   *string `json:"answer4"`
}

// Validate reports the first missing key in question1, answer1, ... order.
func (r *EvaluateAnswerRequest) Validate() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"question1", r.Question1}, {"answer1", r.Answer1},
		{"question2", r.Question2}, {"answer2", r.Answer2},
		{"question3", r.Question3}, {"answer3", r.Answer3},
		{"question4", r.Question4}, {"answer4", r.Answer4},
	}
	for _, f := range fields {
		if f.value == nil {
			return domain.NewMissingFieldError(f.name)
		}
	}
	return nil
}

// ToDomain must only be called after Validate succeeded.
func (r *EvaluateAnswerRequest) ToDomain() *domain.EvaluationRequest {
	return &domain.EvaluationRequest{
		Question1: *r.Question1,
		Answer1:   *r.Answer1,
		Question2: *r.Question2,
		Answer2:   *r.Answer2,
		Question3: *r.Question3,
		Answer3:   *r.Answer3,
		Question4: *r.Question4,
		Answer4:   *r.Answer4,
	}
}

// EvaluateAnswerResponse carries the provider's raw feedback text
type EvaluateAnswerResponse struct {
	Feedback string `json:"feedback"`
}

// StoreExamResultRequest represents an exam result to persist
// @Description Request body for storing an exam result
type StoreExamResultRequest struct {
	StudentName *string      `json:"student_name"`
	Subject     *string      `json:"subject"`
	Topic       *string      `json:"topic"`
	Score       *json.Number `json:"score" swaggertype:"number"`
	Cheated     *bool        `json:"cheated,omitempty"`
	EntryTime   *string      `json:"entry_time,omitempty"`
}

func (r *StoreExamResultRequest) Validate() error {
	switch {
	case r.StudentName == nil:
		return domain.NewMissingFieldError("student_name")
	case r.Subject == nil:
		return domain.NewMissingFieldError("subject")
	case r.Topic == nil:
		return domain.NewMissingFieldError("topic")
	case r.Score == nil:
		return domain.NewMissingFieldError("score")
	}
	return nil
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractKeywordsRequest holds the free text to mine
type ExtractKeywordsRequest struct {
	Text *string `json:"text"`
}

func (r *ExtractKeywordsRequest) Validate() error {
	if r.Text == nil {
		return domain.NewMissingFieldError("text")
	}
	return nil
}

// ExtractKeywordsResponse lists at most two keywords
type ExtractKeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// HealthResponse reports dependency status
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
