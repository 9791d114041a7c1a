package http

import (
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var statusByCode = map[errs.Code]int{
	errs.CodeNotFound:                   http.StatusNotFound,
	errs.CodeInvalidTransition:          http.StatusConflict,
	errs.CodeInsufficientStock:          http.StatusConflict,
	errs.CodeIncompleteItems:            http.StatusUnprocessableEntity,
	errs.CodeInsufficientPickedQuantity: http.StatusUnprocessableEntity,
	errs.CodeDomainInvariantViolation:   http.StatusUnprocessableEntity,
	errs.CodeValidation:                 http.StatusBadRequest,
	errs.CodeInternal:                   http.StatusInternalServerError,
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	if status, ok := statusByCode[errs.CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError renders err. Internal failures are logged and their text is not
// exposed to the client.
func writeError(ctx echo.Context, err error) error {
	code := errs.CodeOf(err)
	status := StatusOf(err)

	message := err.Error()
	if code == errs.CodeInternal {
		ctx.Logger().Error(err)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, Error{Code: status, Kind: string(code), Message: message})
}

func badRequest(ctx echo.Context, param string, cause error) error {
	return writeError(ctx, errs.NewValueIsInvalidErrorWithCause(param, cause))
}
