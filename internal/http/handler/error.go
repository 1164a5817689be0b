package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"qrcut/internal/qrmask"
	"qrcut/internal/service"

	"qrcut/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
// It doubles as the swagger error schema.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "FILES_REQUIRED", "PROCESSING_FAILED", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

// writeProcessingError maps service and core errors to HTTP responses.
// Client mistakes carry their message; anything else is reported generically.
func writeProcessingError(c *fiber.Ctx, err error) error {
	var pe *qrmask.ProcessingError
	switch {
	case errors.Is(err, service.ErrEmptyBatch):
		return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "at least one image must be provided")
	case errors.Is(err, service.ErrEmptyFile):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_FILE", err.Error())
	case errors.Is(err, qrmask.ErrInvalidOptions):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_OPTIONS", err.Error())
	case errors.As(err, &pe),
		errors.Is(err, qrmask.ErrInvalidImage),
		errors.Is(err, qrmask.ErrUnsupportedColor),
		errors.Is(err, qrmask.ErrDetectionFailure):
		return writeError(c, fiber.StatusUnprocessableEntity, "PROCESSING_FAILED", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
