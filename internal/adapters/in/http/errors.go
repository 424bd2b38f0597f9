package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/version"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missingGates,omitempty"`
}

// respondError translates a domain or application error into an HTTP reply.
// Gate denials carry the missing gate names so a client can show the operator
// what to fix; everything else maps onto a plain status and message.
func respondError(ctx echo.Context, err error) error {
	var gateErr *services.GateRequiredError
	if errors.As(err, &gateErr) {
		missing := make([]string, 0, len(gateErr.Missing))
		for _, gate := range gateErr.Missing {
			missing = append(missing, string(gate))
		}

		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
			Missing: missing,
		})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ctx.JSON(httpErr.Code, ErrorResponse{
			Code:    httpErr.Code,
			Message: "invalid request body",
		})
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, services.ErrTransitionForbidden),
		errors.Is(err, commands.ErrApproverForbidden),
		errors.Is(err, changerequest.ErrCreatorForbidden):
		return respond(ctx, http.StatusForbidden, err)

	case errors.Is(err, services.ErrInvalidTransition):
		return respond(ctx, http.StatusUnprocessableEntity, err)

	case errors.Is(err, order.ErrOrderIsTerminal),
		errors.Is(err, changerequest.ErrChangeRequestNotPending),
		errors.Is(err, version.ErrVersionConflict):
		return respond(ctx, http.StatusConflict, err)

	case errors.Is(err, version.ErrVersionNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err)

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, changerequest.ErrUnknownEditKind),
		errors.As(err, &validationErrs):
		return respond(ctx, http.StatusBadRequest, err)
	}

	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}

func respond(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
