package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"taskboard/internal/http/middleware"
	"taskboard/internal/service"
)

// errorPayload is the body of every non-2xx response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeError sends the envelope. code is the stable machine-readable value
// clients switch on; message must be safe to show to the user.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorFields(c, status, code, message, nil)
}

func writeErrorFields(c *fiber.Ctx, status int, code, message string, fields map[string]string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error:     errorEnvelope{Code: code, Message: message, Fields: fields},
	})
}

func unauthorized(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid credentials")
}

// fail maps an error from binding or a service call to its response. Only
// unexpected errors are logged; their details never reach the client.
func fail(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		return writeErrorFields(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verr.fields)
	case errors.Is(err, errMalformed):
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", errMalformed.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrInvalidPlacement):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PLACEMENT", err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, service.ErrIDRequired),
		errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}

	log.WithFields(logrus.Fields{
		"request_id": middleware.RequestIDFrom(c),
		"path":       c.Path(),
	}).WithError(err).Error("request failed")
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

type statusText struct{ code, message string }

// fiberStatus covers the errors fiber raises before a handler runs.
var fiberStatus = map[int]statusText{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusUnauthorized:          {"UNAUTHORIZED", "missing or invalid credentials"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"PAYLOAD_TOO_LARGE", "request body too large"},
}

// ErrorHandler renders errors that escape the handlers in the common envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if st, ok := fiberStatus[fe.Code]; ok {
				return writeError(c, fe.Code, st.code, st.message)
			}
			return writeError(c, fe.Code, "INTERNAL_ERROR", "internal server error")
		}
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
