package handler

import (
	"net/http"

	"cashtrail/internal/delivery/http/response"
	"cashtrail/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TransactionHandler holds dependencies for transaction handlers.
type TransactionHandler struct {
	uc usecase.TransactionUsecase
}

// NewTransactionHandler is the constructor for TransactionHandler, injected by Fx.
func NewTransactionHandler(uc usecase.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// CreateTransaction handles recording a new transaction.
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateTransactionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction input")
	}

	txn, err := h.uc.CreateTransaction(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, txn, "Transaction created successfully")
}

// GetTransactions handles listing the user's transactions, most recent first.
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	txns, err := h.uc.GetTransactions(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, txns, "Transactions retrieved successfully")
}

// GetTransaction handles retrieving a single transaction.
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	transactionID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid transaction ID")
	}

	txn, err := h.uc.GetTransaction(c.Request().Context(), userID, transactionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, txn, "Transaction retrieved successfully")
}

// UpdateTransaction handles a partial update of a transaction.
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	transactionID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid transaction ID")
	}

	var input *usecase.UpdateTransactionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction input")
	}

	txn, err := h.uc.UpdateTransaction(c.Request().Context(), userID, transactionID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, txn, "Transaction updated successfully")
}

// DeleteTransaction handles removing a transaction and its children.
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	transactionID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid transaction ID")
	}

	if err := h.uc.DeleteTransaction(c.Request().Context(), userID, transactionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Transaction deleted successfully")
}
