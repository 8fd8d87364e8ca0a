package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "teamspace/internal/errors"
	"teamspace/internal/services"
	"teamspace/internal/session"
)

// TransactionHandler handles transaction requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	queryService       services.QueryServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, queryService services.QueryServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, queryService: queryService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. UserID and Username default to the session's user.
type CreateTransactionRequest struct {
	SpendingCategoryID   string           `json:"spendingCategoryID" binding:"required,category_id"`
	SpendingCategoryName string           `json:"spendingCategoryName"`
	UserID               string           `json:"userID" binding:"omitempty,user_id"`
	Username             string           `json:"username"`
	TransactionName      string           `json:"transactionName" binding:"required"`
	TransactionAmount    *decimal.Decimal `json:"transactionAmount" binding:"required"`
}

// EditTransactionRequest carries the old name and image so the image is only
// searched again when the name changed.
type EditTransactionRequest struct {
	OldTransactionName   string           `json:"oldTransactionName"`
	NewTransactionName   string           `json:"newTransactionName" binding:"required"`
	NewTransactionAmount *decimal.Decimal `json:"newTransactionAmount" binding:"required"`
	OldImage             string           `json:"oldImage"`
}

// CreateTransaction appends a transaction dated today
// @Summary     Create a transaction
// @Description Appends the transaction and adds its amount to the category's amountUsed
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     200 {object} envelope.Envelope "status 201 with {transactionID}"
// @Router      /teamspaces/{teamSpaceID}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	const op = "createTransaction"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, op, err)
		return
	}

	if req.UserID == "" {
		sess := session.FromContext(c.Request.Context())
		req.UserID, req.Username = sess.UserID, sess.Username
	}
	if req.UserID == "" {
		respond(c, op, nil, apperrors.ErrNotLoggedIn)
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), services.NewTransaction{
		TeamSpaceID:          uri.TeamSpaceID,
		SpendingCategoryID:   req.SpendingCategoryID,
		SpendingCategoryName: req.SpendingCategoryName,
		UserID:               req.UserID,
		Username:             req.Username,
		Name:                 req.TransactionName,
		Amount:               *req.TransactionAmount,
	})
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"transactionID": tx.TransactionID}, nil)
}

// EditTransaction updates name, amount and image
// @Summary     Edit a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       teamSpaceID   path string true "Team space ID"
// @Param       transactionID path string true "Transaction ID"
// @Param       request body EditTransactionRequest true "Edit details"
// @Success     200 {object} envelope.Envelope "status 202"
// @Router      /teamspaces/{teamSpaceID}/transactions/{transactionID} [put]
func (h *TransactionHandler) EditTransaction(c *gin.Context) {
	const op = "editTransaction"

	var uri transactionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}
	var req EditTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, op, err)
		return
	}

	err := h.transactionService.EditTransaction(c.Request.Context(), uri.TeamSpaceID, uri.TransactionID,
		req.OldTransactionName, req.NewTransactionName, *req.NewTransactionAmount, req.OldImage)
	respond(c, op, nil, err)
}

// DeleteTransaction removes a transaction and returns it
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       teamSpaceID   path string true "Team space ID"
// @Param       transactionID path string true "Transaction ID"
// @Success     200 {object} envelope.Envelope "status 201 with {transaction}"
// @Router      /teamspaces/{teamSpaceID}/transactions/{transactionID} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	const op = "deleteTransaction"

	var uri transactionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	tx, err := h.transactionService.DeleteTransaction(c.Request.Context(), uri.TeamSpaceID, uri.TransactionID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"transaction": tx}, nil)
}

// GetAllTransactions lists every transaction, newest date first.
func (h *TransactionHandler) GetAllTransactions(c *gin.Context) {
	const op = "getAllTransactions"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	txs, err := h.queryService.AllTransactions(c.Request.Context(), uri.TeamSpaceID)
	respondList(c, op, txs, err)
}

// GetRecentTransactions lists transactions dated today or yesterday
// @Summary     Recent transactions
// @Tags        transactions
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Success     200 {object} envelope.Envelope "status 201 with {recentTransactions}"
// @Router      /teamspaces/{teamSpaceID}/transactions/recent [get]
func (h *TransactionHandler) GetRecentTransactions(c *gin.Context) {
	const op = "getRecentTransactions"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	txs, err := h.queryService.RecentTransactions(c.Request.Context(), uri.TeamSpaceID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"recentTransactions": txs}, nil)
}

// GetTransactionStyles returns the transaction's style object.
func (h *TransactionHandler) GetTransactionStyles(c *gin.Context) {
	const op = "getTransactionStyles"

	var uri transactionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	styles, err := h.transactionService.GetTransactionStyles(c.Request.Context(), uri.TeamSpaceID, uri.TransactionID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, styles, nil)
}
