package handler

import (
	"net/http"

	"cashtrail/internal/delivery/http/response"
	"cashtrail/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CardHandler holds dependencies for payment card handlers.
type CardHandler struct {
	uc usecase.CardUsecase
}

// NewCardHandler is the constructor for CardHandler, injected by Fx.
func NewCardHandler(uc usecase.CardUsecase) *CardHandler {
	return &CardHandler{uc: uc}
}

// CreateCard handles registering a new payment card.
func (h *CardHandler) CreateCard(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateCardInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid card input")
	}

	card, err := h.uc.CreateCard(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, card, "Card created successfully")
}

// GetCards handles listing the user's payment cards.
func (h *CardHandler) GetCards(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cards, err := h.uc.GetCards(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cards, "Cards retrieved successfully")
}

// UpdateCard handles a partial update of a payment card.
func (h *CardHandler) UpdateCard(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cardID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid card ID")
	}

	var input *usecase.UpdateCardInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid card input")
	}

	card, err := h.uc.UpdateCard(c.Request().Context(), userID, cardID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card, "Card updated successfully")
}

// DeleteCard handles removing a payment card.
func (h *CardHandler) DeleteCard(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cardID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid card ID")
	}

	if err := h.uc.DeleteCard(c.Request().Context(), userID, cardID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Card deleted successfully")
}
