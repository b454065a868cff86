package http

import (
	"net/http"

	"listings-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type listLoanReq struct {
	Borrower           string `json:"borrower"             validate:"required,hex32"`
	Mint               string `json:"mint"                 validate:"required,hex32"`
	Principal          uint64 `json:"principal"            validate:"required,gt=0"`
	BasisPoints        uint16 `json:"basis_points"         validate:"lte=10000"`
	CreatorBasisPoints uint16 `json:"creator_basis_points" validate:"lte=10000"`
	DurationSeconds    int64  `json:"duration_seconds"     validate:"required,gt=0"`
}

func (h *LoanHandler) ListLoan(c echo.Context) error {
	var req listLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.List(c.Request().Context(), loan.ListLoanInput(req))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type activateLoanReq struct {
	Lender string `json:"lender" validate:"required,hex32"`
}

func (h *LoanHandler) ActivateLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req activateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Activate(c.Request().Context(), loanID, req.Lender)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type repayLoanReq struct {
	// Optional: the creator addresses the payer expects to receive the
	// fee split, checked against the oracle's record.
	Creators []string `json:"creators" validate:"omitempty,dive,hex32"`
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req repayLoanReq
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: ToFieldErrors(err),
			})
		}
	}
	dto, err := h.uc.Repay(c.Request().Context(), loanID, req.Creators)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RepossessLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	dto, err := h.uc.Repossess(c.Request().Context(), loanID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
