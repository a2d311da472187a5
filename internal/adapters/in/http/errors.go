package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps application and domain errors to HTTP status codes:
// lookups to 404, authorization and actor-match failures to 403, state
// machine and ledger conflicts to 409, validation to 422. Everything else
// is a 500 with a generic message so internals do not leak.
func writeError(ctx echo.Context, err error) error {
	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, commands.ErrInvoiceNotFound),
		errors.Is(err, commands.ErrActorNotFound),
		errors.Is(err, commands.ErrCourierNotFound),
		errors.Is(err, commands.ErrStaffNotFound),
		errors.Is(err, commands.ErrNoActiveSession),
		errors.Is(err, commands.ErrDeliverySessionNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, commands.ErrNotPermitted),
		errors.Is(err, session.ErrActorMismatch),
		errors.Is(err, delivery.ErrActorMismatch):
		return http.StatusForbidden

	case errors.Is(err, commands.ErrDuplicateInvoice),
		errors.Is(err, session.ErrDuplicateActiveSession),
		errors.Is(err, delivery.ErrDuplicateDeliverySession),
		errors.Is(err, session.ErrSessionNotActive),
		errors.Is(err, delivery.ErrSessionNotConsiderable),
		errors.Is(err, delivery.ErrWrongDeliveryType),
		errors.Is(err, invoice.ErrInvalidStateForStage),
		errors.Is(err, invoice.ErrInvalidReturnState),
		errors.Is(err, invoice.ErrAlreadyReturned),
		errors.Is(err, invoice.ErrNotResubmittable),
		errors.Is(err, invoice.ErrStatusPairConflict):
		return http.StatusConflict

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, delivery.ErrInvalidPhoneFormat):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
