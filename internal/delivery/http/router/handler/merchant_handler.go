package handler

import (
	"net/http"

	"cashtrail/internal/delivery/http/response"
	"cashtrail/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// upsertLocationInput is the body for merchant location replacement.
type upsertLocationInput struct {
	Location string `json:"location"`
}

// MerchantHandler holds dependencies for merchant handlers.
type MerchantHandler struct {
	uc usecase.MerchantUsecase
}

// NewMerchantHandler is the constructor for MerchantHandler, injected by Fx.
func NewMerchantHandler(uc usecase.MerchantUsecase) *MerchantHandler {
	return &MerchantHandler{uc: uc}
}

// CreateMerchant handles creating a new merchant, resolving its location.
func (h *MerchantHandler) CreateMerchant(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateMerchantInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid merchant input")
	}

	merchant, err := h.uc.CreateMerchant(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, merchant, "Merchant created successfully")
}

// GetMerchants handles listing the user's merchants.
func (h *MerchantHandler) GetMerchants(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	merchants, err := h.uc.GetMerchants(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, merchants, "Merchants retrieved successfully")
}

// GetMerchant handles retrieving a single merchant.
func (h *MerchantHandler) GetMerchant(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	merchantID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid merchant ID")
	}

	merchant, err := h.uc.GetMerchant(c.Request().Context(), userID, merchantID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, merchant, "Merchant retrieved successfully")
}

// UpdateMerchant handles a partial update of a merchant.
func (h *MerchantHandler) UpdateMerchant(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	merchantID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid merchant ID")
	}

	var input *usecase.UpdateMerchantInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid merchant input")
	}

	merchant, err := h.uc.UpdateMerchant(c.Request().Context(), userID, merchantID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, merchant, "Merchant updated successfully")
}

// UpsertLocation handles replacing a merchant's location text.
func (h *MerchantHandler) UpsertLocation(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	merchantID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid merchant ID")
	}

	var input *upsertLocationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}

	merchant, err := h.uc.UpsertLocation(c.Request().Context(), userID, merchantID, input.Location)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, merchant, "Merchant location updated successfully")
}

// DeleteMerchant handles removing a merchant.
func (h *MerchantHandler) DeleteMerchant(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	merchantID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid merchant ID")
	}

	if err := h.uc.DeleteMerchant(c.Request().Context(), userID, merchantID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Merchant deleted successfully")
}
