package http

import (
	"net/http"

	"listings-backend/internal/usecase/calloption"

	"github.com/labstack/echo/v4"
)

type OptionHandler struct{ uc *calloption.Usecase }

func NewOptionHandler(uc *calloption.Usecase) *OptionHandler { return &OptionHandler{uc: uc} }

type listOptionReq struct {
	Seller      string `json:"seller"       validate:"required,hex32"`
	Mint        string `json:"mint"         validate:"required,hex32"`
	StrikePrice uint64 `json:"strike_price" validate:"required,gt=0"`
	Expiry      int64  `json:"expiry"       validate:"required,gt=0"`
}

func (h *OptionHandler) ListOption(c echo.Context) error {
	var req listOptionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.List(c.Request().Context(), calloption.ListOptionInput(req))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type buyOptionReq struct {
	Buyer string `json:"buyer" validate:"required,hex32"`
}

func (h *OptionHandler) BuyOption(c echo.Context) error {
	optionID := c.Param("option_id")
	if optionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing option_id path param"})
	}
	var req buyOptionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Buy(c.Request().Context(), optionID, req.Buyer)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type exerciseOptionReq struct {
	// Optional: the creator addresses the buyer expects the royalty
	// split to pay, checked against the oracle's record.
	Creators []string `json:"creators" validate:"omitempty,dive,hex32"`
}

func (h *OptionHandler) ExerciseOption(c echo.Context) error {
	optionID := c.Param("option_id")
	if optionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing option_id path param"})
	}
	var req exerciseOptionReq
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
	dto, err := h.uc.Exercise(c.Request().Context(), optionID, req.Creators)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OptionHandler) CancelOption(c echo.Context) error {
	optionID := c.Param("option_id")
	if optionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing option_id path param"})
	}
	dto, err := h.uc.Cancel(c.Request().Context(), optionID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OptionHandler) GetOption(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("option_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
