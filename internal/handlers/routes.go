package handlers

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every handler mounted under /api/v1.
type Handlers struct {
	TeamSpaces   *TeamSpaceHandler
	Members      *MemberHandler
	Categories   *CategoryHandler
	Transactions *TransactionHandler
	Sessions     *SessionHandler
}

// RegisterRoutes mounts the API on v1.
func (h Handlers) RegisterRoutes(v1 gin.IRouter) {
	v1.POST("/sessions", h.Sessions.CreateSession)
	v1.GET("/sessions/guard", h.Sessions.Guard)

	teamSpaces := v1.Group("/teamspaces")
	teamSpaces.POST("", h.TeamSpaces.CreateTeamSpace)
	teamSpaces.GET("", h.TeamSpaces.GetAllTeamSpaces)
	teamSpaces.POST("/join", h.Members.AddUserToTeamSpace)

	teamSpace := teamSpaces.Group("/:teamSpaceID")
	teamSpace.GET("", h.TeamSpaces.GetTeamSpaceByID)
	teamSpace.PUT("", h.TeamSpaces.EditTeamSpace)
	teamSpace.GET("/styles", h.TeamSpaces.GetTeamSpaceStyles)
	teamSpace.GET("/join-code", h.TeamSpaces.GetJoinCode)
	teamSpace.POST("/join-code", h.TeamSpaces.GenerateNewJoinCode)
	teamSpace.GET("/total-budget", h.TeamSpaces.GetTotalBudget)
	teamSpace.GET("/total-amount-used", h.TeamSpaces.GetTotalAmountUsed)

	teamSpace.GET("/users", h.Members.GetAllTeamSpaceUsers)
	teamSpace.GET("/leader", h.Members.GetTeamSpaceLeader)
	teamSpace.DELETE("/users/:userID", h.Members.RemoveUserFromTeamSpace)

	categories := teamSpace.Group("/categories")
	categories.POST("", h.Categories.CreateCategory)
	categories.GET("", h.Categories.GetCategories)
	categories.GET("/:categoryID", h.Categories.GetCategoryByID)
	categories.PUT("/:categoryID", h.Categories.EditCategory)
	categories.DELETE("/:categoryID", h.Categories.DeleteCategory)
	categories.PUT("/:categoryID/budget-limit", h.Categories.ChangeBudgetLimit)
	categories.GET("/:categoryID/styles", h.Categories.GetCategoryStyles)
	categories.GET("/:categoryID/transactions", h.Categories.GetCategoryTransactions)

	transactions := teamSpace.Group("/transactions")
	transactions.POST("", h.Transactions.CreateTransaction)
	transactions.GET("", h.Transactions.GetAllTransactions)
	transactions.GET("/recent", h.Transactions.GetRecentTransactions)
	transactions.PUT("/:transactionID", h.Transactions.EditTransaction)
	transactions.DELETE("/:transactionID", h.Transactions.DeleteTransaction)
	transactions.GET("/:transactionID/styles", h.Transactions.GetTransactionStyles)

	users := v1.Group("/users/:userID")
	users.GET("", h.Members.GetUserByID)
	users.GET("/teamspace", h.Members.GetTeamSpaceByUserID)
	users.GET("/styles", h.Members.GetUserStyles)
	users.GET("/transactions", h.Members.GetTransactionsByUserID)
}
