package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"exam-grader/internal/config"
	"exam-grader/internal/domain"
	"exam-grader/internal/dto"
	"exam-grader/internal/handler"
	"exam-grader/internal/logger"
	"exam-grader/internal/middleware"
	"exam-grader/internal/repository"
	"exam-grader/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Mocks ---

type MockAnswerEvaluator struct {
	mock.Mock
}

func (m *MockAnswerEvaluator) Evaluate(ctx context.Context, req *domain.EvaluationRequest) string {
	args := m.Called(ctx, req)
	return args.String(0)
}

type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, prompt string, opts domain.CompletionOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

type failingRepository struct {
	err error
}

func (f *failingRepository) Insert(ctx context.Context, result *domain.ExamResult) error { return f.err }
func (f *failingRepository) Ping(ctx context.Context) error                              { return f.err }

// --- Helpers ---

func setupApp(evaluator domain.AnswerEvaluator, repo domain.ExamResultRepository) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewExamHandler(
		evaluator,
		service.NewExamResultService(repo, nil),
		service.NewKeywordExtractor(config.KeywordConfig{}),
	)
	app.Post("/evaluate-answer", h.EvaluateAnswer)
	app.Post("/store-exam-result", h.StoreExamResult)
	app.Post("/extract-keywords", h.ExtractKeywords)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	return resp, decoded
}

const fullEvaluationBody = `{
	"question1": "What is edge computing?", "answer1": "Computing near the data source.",
	"question2": "Give a real-time use.", "answer2": "Traffic control.",
	"question3": "How does 5G help?", "answer3": "Lower latency.",
	"question4": "Main challenge?", "answer4": "Security."
}`

// --- /evaluate-answer ---

func TestEvaluateAnswer_Success(t *testing.T) {
	evaluator := new(MockAnswerEvaluator)
	evaluator.On("Evaluate", mock.Anything, &domain.EvaluationRequest{
		Question1: "What is edge computing?", Answer1: "Computing near the data source.",
		Question2: "Give a real-time use.", Answer2: "Traffic control.",
		Question3: "How does 5G help?", Answer3: "Lower latency.",
		Question4: "Main challenge?", Answer4: "Security.",
	}).Return("Score: 88\nOverall: good").Once()

	resp, body := postJSON(t, setupApp(evaluator, repository.NewMemoryExamResultRepository()), "/evaluate-answer", fullEvaluationBody)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Score: 88\nOverall: good", body["feedback"])
	evaluator.AssertExpectations(t)
}

func TestEvaluateAnswer_ProviderFailureStillReturns200(t *testing.T) {
	client := new(MockLLMClient)
	client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("upstream unavailable")).Once()
	evaluator := service.NewAnswerEvaluator(client, domain.CompletionOptions{Model: "llama3-70b-8192"}, nil, 0)

	resp, body := postJSON(t, setupApp(evaluator, repository.NewMemoryExamResultRepository()), "/evaluate-answer", fullEvaluationBody)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Score: 0\nError: upstream unavailable", body["feedback"])
	client.AssertExpectations(t)
}

func TestEvaluateAnswer_MissingField(t *testing.T) {
	evaluator := new(MockAnswerEvaluator)
	body := `{"question1": "q", "answer1": "a", "question2": "q", "answer2": "a", "question3": "q", "answer3": "a", "question4": "q"}`

	resp, decoded := postJSON(t, setupApp(evaluator, repository.NewMemoryExamResultRepository()), "/evaluate-answer", body)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Score: 0\nError: missing required field: answer4", decoded["feedback"])
	assert.NotContains(t, decoded, "error")
	evaluator.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything)
}

func TestEvaluateAnswer_NullCountsAsMissing(t *testing.T) {
	evaluator := new(MockAnswerEvaluator)
	body := strings.Replace(fullEvaluationBody, `"Traffic control."`, `null`, 1)

	resp, decoded := postJSON(t, setupApp(evaluator, repository.NewMemoryExamResultRepository()), "/evaluate-answer", body)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Score: 0\nError: missing required field: answer2", decoded["feedback"])
}

func TestEvaluateAnswer_MalformedBody(t *testing.T) {
	resp, decoded := postJSON(t, setupApp(new(MockAnswerEvaluator), repository.NewMemoryExamResultRepository()), "/evaluate-answer", `{"question1":`)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Regexp(t, `^Score: 0\nError: malformed request body`, decoded["feedback"])
}

// --- /store-exam-result ---

func TestStoreExamResult_Success(t *testing.T) {
	repo := repository.NewMemoryExamResultRepository()
	body := `{"student_name": "Asha", "subject": "CS", "topic": "Edge", "score": 72.5}`

	resp, decoded := postJSON(t, setupApp(new(MockAnswerEvaluator), repo), "/store-exam-result", body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Exam result stored successfully", decoded["message"])

	stored := repo.All()
	require.Len(t, stored, 1)
	assert.Equal(t, "Asha", stored[0].StudentName)
	assert.Equal(t, json.Number("72.5"), stored[0].Score)
	assert.False(t, stored[0].Cheated)
	assert.NotEmpty(t, stored[0].EntryTime)
}

func TestStoreExamResult_KeepsOptionalFields(t *testing.T) {
	repo := repository.NewMemoryExamResultRepository()
	body := `{"student_name": "Asha", "subject": "CS", "topic": "Edge", "score": 40, "cheated": true, "entry_time": "2024-01-01T09:00:00"}`

	resp, _ := postJSON(t, setupApp(new(MockAnswerEvaluator), repo), "/store-exam-result", body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	stored := repo.All()
	require.Len(t, stored, 1)
	assert.Equal(t, json.Number("40"), stored[0].Score)
	assert.True(t, stored[0].Cheated)
	assert.Equal(t, "2024-01-01T09:00:00", stored[0].EntryTime)
}

func TestStoreExamResult_StoreFailureStillReturns200(t *testing.T) {
	repo := &failingRepository{err: errors.New("server selection timeout")}
	body := `{"student_name": "Asha", "subject": "CS", "topic": "Edge", "score": 10}`

	resp, decoded := postJSON(t, setupApp(new(MockAnswerEvaluator), repo), "/store-exam-result", body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Exam result stored successfully", decoded["message"])
}

func TestStoreExamResult_MissingField(t *testing.T) {
	repo := repository.NewMemoryExamResultRepository()
	body := `{"student_name": "Asha", "subject": "CS", "score": 10}`

	resp, decoded := postJSON(t, setupApp(new(MockAnswerEvaluator), repo), "/store-exam-result", body)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "missing required field: topic", decoded["error"])
	assert.Empty(t, repo.All())
}

func TestStoreExamResult_NonNumericScore(t *testing.T) {
	repo := repository.NewMemoryExamResultRepository()
	body := `{"student_name": "Asha", "subject": "CS", "topic": "Edge", "score": "high"}`

	resp, decoded := postJSON(t, setupApp(new(MockAnswerEvaluator), repo), "/store-exam-result", body)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, decoded["error"], "malformed request body")
	assert.Empty(t, repo.All())
}

// --- /extract-keywords ---

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []interface{}
	}{
		{"two keywords", `{"text": "This is a wonderful demonstration of keyword extraction"}`, []interface{}{"this", "wonderful"}},
		{"empty text", `{"text": ""}`, []interface{}{}},
		{"only stop-words", `{"text": "the is in on"}`, []interface{}{}},
	}

	app := setupApp(new(MockAnswerEvaluator), repository.NewMemoryExamResultRepository())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, decoded := postJSON(t, app, "/extract-keywords", tt.body)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.expected, decoded["keywords"])
		})
	}
}

func TestExtractKeywords_MissingText(t *testing.T) {
	resp, decoded := postJSON(t, setupApp(new(MockAnswerEvaluator), repository.NewMemoryExamResultRepository()), "/extract-keywords", `{"content": "hello world"}`)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "missing required field: text", decoded["error"])
}

func TestUnknownRouteUsesErrorHandler(t *testing.T) {
	app := setupApp(new(MockAnswerEvaluator), repository.NewMemoryExamResultRepository())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var decoded dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.NotEmpty(t, decoded.Error)
}
