package handler

import (
	"exam-grader/internal/domain"
	"exam-grader/internal/dto"
	"exam-grader/internal/logger"
	"exam-grader/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExamHandler handles grading, result storage and keyword extraction requests
type ExamHandler struct {
	evaluator domain.AnswerEvaluator
	results   service.ExamResultService
	keywords  domain.KeywordExtractor
}

// NewExamHandler creates a new ExamHandler instance
func NewExamHandler(evaluator domain.AnswerEvaluator, results service.ExamResultService, keywords domain.KeywordExtractor) *ExamHandler {
	return &ExamHandler{
		evaluator: evaluator,
		results:   results,
		keywords:  keywords,
	}
}

// EvaluateAnswer godoc
// @Summary Grade four exam answers
// @Description Sends the question/answer pairs to the LLM and returns its feedback verbatim
// @Tags exam
// @Accept json
// @Produce json
// @Param request body dto.EvaluateAnswerRequest true "Questions and answers"
// @Success 200 {object} dto.EvaluateAnswerResponse
// @Failure 500 {object} dto.EvaluateAnswerResponse
// @Router /evaluate-answer [post]
func (h *ExamHandler) EvaluateAnswer(c *fiber.Ctx) error {
	var req dto.EvaluateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return h.evaluationFailed(c, domain.NewInvalidInputError("malformed request body", err))
	}
	if err := req.Validate(); err != nil {
		return h.evaluationFailed(c, err)
	}

	feedback := h.evaluator.Evaluate(c.UserContext(), req.ToDomain())
	return c.JSON(dto.EvaluateAnswerResponse{Feedback: feedback})
}

func (h *ExamHandler) evaluationFailed(c *fiber.Ctx, err error) error {
	logger.Get().Warn("Rejected evaluation request",
		zap.Error(err),
		zap.String("code", string(domain.CodeOf(err))),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.EvaluateAnswerResponse{
		Feedback: domain.FallbackFeedback(err),
	})
}

// StoreExamResult godoc
// @Summary Store an exam result
// @Description Inserts the result into the document store. Storage failures are logged, not reported.
// @Tags exam
// @Accept json
// @Produce json
// @Param request body dto.StoreExamResultRequest true "Exam result"
// @Success 200 {object} dto.MessageResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /store-exam-result [post]
func (h *ExamHandler) StoreExamResult(c *fiber.Ctx) error {
	var req dto.StoreExamResultRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("malformed request body", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	h.results.StoreExamResult(c.UserContext(), &req)
	return c.JSON(dto.MessageResponse{Message: "Exam result stored successfully"})
}

// ExtractKeywords godoc
// @Summary Extract keywords
// @Description Returns up to two lower-cased tokens that are not stop-words and have at least four characters
// @Tags keywords
// @Accept json
// @Produce json
// @Param request body dto.ExtractKeywordsRequest true "Text to analyse"
// @Success 200 {object} dto.ExtractKeywordsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /extract-keywords [post]
func (h *ExamHandler) ExtractKeywords(c *fiber.Ctx) error {
	var req dto.ExtractKeywordsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("malformed request body", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	return c.JSON(dto.ExtractKeywordsResponse{Keywords: h.keywords.Extract(*req.Text)})
}
