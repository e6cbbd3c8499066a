package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// RespondError writes err as a dto.ErrorResponse. Internal failures are
// logged and reported to Sentry; the caller only sees a generic message.
func RespondError(c *fiber.Ctx, err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Internal(err)
	}

	message := e.Message
	if e.Kind == apperr.KindInternal {
		message = apperr.MsgOperationFailed

		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"tenant", tenant.GetStoreID(c),
			"error", err.Error(),
		}
		if claims, cerr := tenant.GetClaims(c); cerr == nil {
			attrs = append(attrs, "principal_id", claims.PrincipalID, "role", string(claims.Role))
		}
		slog.Error("request failed", attrs...)

		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	return c.Status(StatusFor(e.Kind)).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
		Errors:  e.Fields,
	})
}

func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest:
		return fiber.StatusBadRequest
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
