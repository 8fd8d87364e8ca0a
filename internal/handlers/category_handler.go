package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"teamspace/internal/services"
)

// CategoryHandler handles spending category requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
	queryService    services.QueryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, queryService services.QueryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, queryService: queryService}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	SpendingCategoryName string           `json:"spendingCategoryName" binding:"required"`
	BudgetLimit          *decimal.Decimal `json:"budgetLimit" binding:"required"`
}

// EditCategoryRequest carries the old name and image so the image is only
// searched again when the name changed.
type EditCategoryRequest struct {
	OldSpendingCategoryName string           `json:"oldSpendingCategoryName"`
	NewSpendingCategoryName string           `json:"newSpendingCategoryName" binding:"required"`
	NewBudgetLimit          *decimal.Decimal `json:"newBudgetLimit" binding:"required"`
	OldImage                string           `json:"oldImage"`
}

// ChangeBudgetLimitRequest represents the request payload for a budget limit change.
type ChangeBudgetLimitRequest struct {
	BudgetLimit *decimal.Decimal `json:"budgetLimit" binding:"required"`
}

// CreateCategory handles the creation of a new spending category
// @Summary     Create a spending category
// @Description Appends an empty category with a searched landscape image
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     200 {object} envelope.Envelope "status 201 with {spendingCategoryID}"
// @Router      /teamspaces/{teamSpaceID}/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	const op = "createSpendingCategory"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, op, err)
		return
	}

	cat, err := h.categoryService.CreateSpendingCategory(c.Request.Context(), uri.TeamSpaceID, req.SpendingCategoryName, *req.BudgetLimit)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"spendingCategoryID": cat.SpendingCategoryID}, nil)
}

// GetCategories lists categories in creation order
// @Summary     List spending categories
// @Tags        categories
// @Produce     json
// @Param       teamSpaceID path  string true  "Team space ID"
// @Param       page        query int    false "Page number"
// @Param       page_size   query int    false "Items per page"
// @Success     200 {object} envelope.Envelope
// @Router      /teamspaces/{teamSpaceID}/categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	const op = "getAllSpendingCategories"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	cats, err := h.categoryService.GetAllSpendingCategories(c.Request.Context(), uri.TeamSpaceID)
	respondList(c, op, cats, err)
}

// GetCategoryByID returns one category.
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	const op = "getSpendingCategoryByID"

	var uri categoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	cat, err := h.categoryService.GetSpendingCategoryByID(c.Request.Context(), uri.TeamSpaceID, uri.CategoryID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, cat, nil)
}

// EditCategory updates name, budget limit and image
// @Summary     Edit a spending category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Param       categoryID  path string true "Category ID"
// @Param       request body EditCategoryRequest true "Edit details"
// @Success     200 {object} envelope.Envelope "status 202"
// @Router      /teamspaces/{teamSpaceID}/categories/{categoryID} [put]
func (h *CategoryHandler) EditCategory(c *gin.Context) {
	const op = "editSpendingCategory"

	var uri categoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}
	var req EditCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, op, err)
		return
	}

	err := h.categoryService.EditSpendingCategory(c.Request.Context(), uri.TeamSpaceID, uri.CategoryID,
		req.OldSpendingCategoryName, req.NewSpendingCategoryName, *req.NewBudgetLimit, req.OldImage)
	respond(c, op, nil, err)
}

// ChangeBudgetLimit replaces only the budget limit.
func (h *CategoryHandler) ChangeBudgetLimit(c *gin.Context) {
	const op = "changeBudgetLimit"

	var uri categoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}
	var req ChangeBudgetLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, op, err)
		return
	}

	err := h.categoryService.ChangeBudgetLimit(c.Request.Context(), uri.TeamSpaceID, uri.CategoryID, *req.BudgetLimit)
	respond(c, op, nil, err)
}

// DeleteCategory removes a category with all its transactions
// @Summary     Delete a spending category
// @Tags        categories
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Param       categoryID  path string true "Category ID"
// @Success     200 {object} envelope.Envelope "status 202"
// @Router      /teamspaces/{teamSpaceID}/categories/{categoryID} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	const op = "deleteSpendingCategory"

	var uri categoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	err := h.categoryService.DeleteSpendingCategory(c.Request.Context(), uri.TeamSpaceID, uri.CategoryID)
	respond(c, op, nil, err)
}

// GetCategoryStyles returns the category's style object.
func (h *CategoryHandler) GetCategoryStyles(c *gin.Context) {
	const op = "getSpendingCategoryStyles"

	var uri categoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	styles, err := h.categoryService.GetSpendingCategoryStyles(c.Request.Context(), uri.TeamSpaceID, uri.CategoryID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, styles, nil)
}

// GetCategoryTransactions lists one category's transactions, newest first.
func (h *CategoryHandler) GetCategoryTransactions(c *gin.Context) {
	const op = "getTransactionsByCategory"

	var uri categoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	txs, err := h.queryService.TransactionsByCategory(c.Request.Context(), uri.TeamSpaceID, uri.CategoryID)
	respondList(c, op, txs, err)
}
