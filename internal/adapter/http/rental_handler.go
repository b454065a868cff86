package http

import (
	"net/http"

	"listings-backend/internal/usecase/rental"

	"github.com/labstack/echo/v4"
)

type RentalHandler struct{ uc *rental.Usecase }

func NewRentalHandler(uc *rental.Usecase) *RentalHandler { return &RentalHandler{uc: uc} }

type listRentalReq struct {
	Lender             string `json:"lender"               validate:"required,hex32"`
	Mint               string `json:"mint"                 validate:"required,hex32"`
	AmountPerDay       uint64 `json:"amount_per_day"       validate:"required,gt=0"`
	CreatorBasisPoints uint16 `json:"creator_basis_points" validate:"lte=10000"`
}

func (h *RentalHandler) ListRental(c echo.Context) error {
	var req listRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.List(c.Request().Context(), rental.ListRentalInput(req))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type hireRentalReq struct {
	Borrower string `json:"borrower" validate:"required,hex32"`
	Days     uint16 `json:"days"     validate:"required,gt=0"`
}

func (h *RentalHandler) HireRental(c echo.Context) error {
	rentalID := c.Param("rental_id")
	if rentalID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing rental_id path param"})
	}
	var req hireRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.BeginPeriod(c.Request().Context(), rentalID, req.Borrower, req.Days)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RentalHandler) SettleRental(c echo.Context) error {
	rentalID := c.Param("rental_id")
	if rentalID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing rental_id path param"})
	}
	dto, err := h.uc.EndPeriod(c.Request().Context(), rentalID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RentalHandler) WithdrawRental(c echo.Context) error {
	rentalID := c.Param("rental_id")
	if rentalID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing rental_id path param"})
	}
	dto, err := h.uc.Withdraw(c.Request().Context(), rentalID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RentalHandler) CloseRental(c echo.Context) error {
	rentalID := c.Param("rental_id")
	if rentalID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing rental_id path param"})
	}
	dto, err := h.uc.Close(c.Request().Context(), rentalID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RentalHandler) GetRental(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("rental_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
