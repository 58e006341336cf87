package handler

import (
	"net/http"

	"cashtrail/internal/delivery/http/response"
	"cashtrail/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MCCHandler holds dependencies for merchant category code handlers.
type MCCHandler struct {
	uc usecase.MCCUsecase
}

// NewMCCHandler is the constructor for MCCHandler, injected by Fx.
func NewMCCHandler(uc usecase.MCCUsecase) *MCCHandler {
	return &MCCHandler{uc: uc}
}

// ListCodes handles listing the full merchant category code reference table.
func (h *MCCHandler) ListCodes(c echo.Context) error {
	codes, err := h.uc.ListCodes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, codes, "Merchant category codes retrieved successfully")
}
