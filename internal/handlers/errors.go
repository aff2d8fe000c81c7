package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/middleware"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Internal server error"

var errInvalidBody = apperror.Validation("Invalid request body")

// ErrorHandler is the only place errors become HTTP responses. Messages of
// 5xx responses are replaced so storage details never reach clients.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	resp := dto.ErrorResponse{Error: true, Message: internalErrorMessage}

	var fe *fiber.Error
	switch e, ok := apperror.As(err); {
	case ok:
		status = middleware.StatusForKind(e.Kind)
		if e.Kind != apperror.KindInternal {
			resp.Message = e.Message
			resp.Details = e.Meta
		}
	case errors.As(err, &fe):
		status = fe.Code
		if status < fiber.StatusInternalServerError {
			resp.Message = fe.Message
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		status = fiber.StatusGatewayTimeout
		resp.Message = "Request timed out"
	}

	if status >= fiber.StatusInternalServerError {
		attrs := []any{
			"error", err.Error(),
			"request_id", requestID(c),
			"action", c.Method() + " " + c.Route().Path,
			"status", status,
		}
		if uid, err := middleware.GetUserID(c); err == nil {
			attrs = append(attrs, "user_id", uid.String())
		}
		slog.ErrorContext(c.UserContext(), "request failed", attrs...)

		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	return c.Status(status).JSON(resp)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return nil
}
