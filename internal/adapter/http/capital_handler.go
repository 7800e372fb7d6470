package http

import (
	"net/http"

	"loanbook-backend/internal/usecase/capital"

	"github.com/labstack/echo/v4"
)

type CapitalHandler struct{ uc *capital.Usecase }

func NewCapitalHandler(uc *capital.Usecase) *CapitalHandler { return &CapitalHandler{uc: uc} }

func (h *CapitalHandler) GetCapital(c echo.Context) error {
	total, err := h.uc.Total(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, map[string]float64{"total": total})
}
