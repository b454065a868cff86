package http

import (
	"errors"
	"net/http"

	"listings-backend/internal/domain/asset"
	optionDomain "listings-backend/internal/domain/calloption"
	"listings-backend/internal/domain/custody"
	"listings-backend/internal/domain/fees"
	loanDomain "listings-backend/internal/domain/loan"
	"listings-backend/internal/domain/payment"
	rentalDomain "listings-backend/internal/domain/rental"

	"github.com/labstack/echo/v4"
)

// domainError maps usecase errors onto HTTP codes: 404 for missing
// agreements, 409 for custody conflicts and state races, 402 when the
// rail declines, 400 otherwise.
func domainError(c echo.Context, err error) error {
	code := http.StatusBadRequest
	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, rentalDomain.ErrNotFound),
		errors.Is(err, optionDomain.ErrNotFound),
		errors.Is(err, custody.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, custody.ErrLockConflict),
		errors.Is(err, custody.ErrAlreadyLocked),
		errors.Is(err, loanDomain.ErrInvalidState),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, rentalDomain.ErrInvalidState),
		errors.Is(err, optionDomain.ErrInvalidState):
		code = http.StatusConflict
	case errors.Is(err, payment.ErrInsufficientFunds):
		code = http.StatusPaymentRequired
	case errors.Is(err, loanDomain.ErrNotOverdue),
		errors.Is(err, optionDomain.ErrOptionExpired),
		errors.Is(err, asset.ErrInvalidMint),
		errors.Is(err, asset.ErrInvalidCreatorAddress),
		errors.Is(err, fees.ErrNumericalOverflow):
		code = http.StatusBadRequest
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
