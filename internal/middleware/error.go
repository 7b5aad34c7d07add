package middleware

import (
	"errors"
	"net/http"

	"exam-grader/internal/domain"
	"exam-grader/internal/dto"
	"exam-grader/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is the application-wide fiber error handler. Request errors
// (missing keys, undecodable bodies) arrive here as domain errors and are
// answered with 500 and {error}.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := logger.Get()

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
				zap.String("path", c.Path()),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{Error: fiberErr.Message})
		}

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.String("path", c.Path()),
				zap.Error(err),
			}
			if isRequestError(domainErr) {
				logger.Warn("Rejected request", fields...)
			} else {
				logger.Error("Domain error occurred", fields...)
			}
			return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{Error: domainErr.Error()})
		}

		logger.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}
}

func isRequestError(err *domain.DomainError) bool {
	return err.Code == domain.ErrInvalidInput || err.Code == domain.ErrMissingField
}
