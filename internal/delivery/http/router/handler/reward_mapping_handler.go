package handler

import (
	"net/http"

	"cashtrail/internal/delivery/http/response"
	"cashtrail/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RewardMappingHandler holds dependencies for reward mapping handlers.
type RewardMappingHandler struct {
	uc usecase.RewardMappingUsecase
}

// NewRewardMappingHandler is the constructor for RewardMappingHandler, injected by Fx.
func NewRewardMappingHandler(uc usecase.RewardMappingUsecase) *RewardMappingHandler {
	return &RewardMappingHandler{uc: uc}
}

// CreateMapping handles creating a new card-merchant reward mapping.
func (h *RewardMappingHandler) CreateMapping(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateRewardMappingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reward mapping input")
	}

	mapping, err := h.uc.CreateMapping(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, mapping, "Reward mapping created successfully")
}

// GetMappings handles listing the user's reward mappings.
func (h *RewardMappingHandler) GetMappings(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	mappings, err := h.uc.GetMappings(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, mappings, "Reward mappings retrieved successfully")
}

// FindForPairing handles the lookup of the mapping for a (card, merchant) pair.
// A pairing without a mapping is a successful lookup with null data, not a 404.
func (h *RewardMappingHandler) FindForPairing(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cardID, err := uuid.Parse(c.QueryParam("card_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid card ID")
	}

	merchantID, err := uuid.Parse(c.QueryParam("merchant_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid merchant ID")
	}

	mapping, err := h.uc.FindForPairing(c.Request().Context(), userID, cardID, merchantID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, mapping, "Reward mapping lookup completed")
}

// UpdateMapping handles a partial update of a reward mapping.
func (h *RewardMappingHandler) UpdateMapping(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	mappingID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid reward mapping ID")
	}

	var input *usecase.UpdateRewardMappingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reward mapping input")
	}

	mapping, err := h.uc.UpdateMapping(c.Request().Context(), userID, mappingID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, mapping, "Reward mapping updated successfully")
}

// DeleteMapping handles removing a reward mapping.
func (h *RewardMappingHandler) DeleteMapping(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	mappingID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid reward mapping ID")
	}

	if err := h.uc.DeleteMapping(c.Request().Context(), userID, mappingID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reward mapping deleted successfully")
}
