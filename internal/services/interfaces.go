package services

import (
	"context"

	"github.com/shopspring/decimal"

	"teamspace/internal/imagesearch"
	"teamspace/internal/models"
)

// TeamSpaceServicer defines the contract for team-space-level operations.
type TeamSpaceServicer interface {
	CreateTeamSpace(ctx context.Context, name, leaderUserID, leaderUsername string) (*models.TeamSpace, error)
	EditTeamSpace(ctx context.Context, teamSpaceID, newName string, newTotalBudget decimal.Decimal) error
	GenerateNewJoinCode(ctx context.Context, teamSpaceID string) (string, error)
	GetAllTeamSpaces(ctx context.Context) ([]models.TeamSpace, error)
	GetTeamSpaceByID(ctx context.Context, teamSpaceID string) (*models.TeamSpace, error)
	GetJoinCode(ctx context.Context, teamSpaceID string) (string, error)
	GetTeamSpaceStyles(ctx context.Context, teamSpaceID string) (models.Styles, error)
}

// MemberServicer defines the contract for membership operations.
type MemberServicer interface {
	AddUserToTeamSpace(ctx context.Context, joinCode, userID, username string) (*models.TeamSpace, error)
	RemoveUserFromTeamSpace(ctx context.Context, teamSpaceID, userID string) (*models.Member, error)
	GetAllTeamSpaceUsers(ctx context.Context, teamSpaceID string) ([]models.Member, error)
	GetTeamSpaceLeader(ctx context.Context, teamSpaceID string) (*models.Member, error)
	GetTeamSpaceByUserID(ctx context.Context, userID string) (*models.TeamSpace, error)
	GetUserByID(ctx context.Context, userID string) (*models.Member, error)
	GetUserStyles(ctx context.Context, userID string) (models.Styles, error)
}

// CategoryServicer defines the contract for spending category operations.
type CategoryServicer interface {
	CreateSpendingCategory(ctx context.Context, teamSpaceID, name string, budgetLimit decimal.Decimal) (*models.SpendingCategory, error)
	EditSpendingCategory(ctx context.Context, teamSpaceID, categoryID, oldName, newName string, newBudgetLimit decimal.Decimal, oldImage string) error
	DeleteSpendingCategory(ctx context.Context, teamSpaceID, categoryID string) error
	ChangeBudgetLimit(ctx context.Context, teamSpaceID, categoryID string, newBudgetLimit decimal.Decimal) error
	GetAllSpendingCategories(ctx context.Context, teamSpaceID string) ([]models.SpendingCategory, error)
	GetSpendingCategoryByID(ctx context.Context, teamSpaceID, categoryID string) (*models.SpendingCategory, error)
	GetSpendingCategoryStyles(ctx context.Context, teamSpaceID, categoryID string) (models.Styles, error)
}

// NewTransaction holds the inputs of CreateTransaction.
type NewTransaction struct {
	TeamSpaceID          string
	SpendingCategoryID   string
	SpendingCategoryName string
	UserID               string
	Username             string
	Name                 string
	Amount               decimal.Decimal
}

// TransactionServicer defines the contract for transaction operations.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, in NewTransaction) (*models.Transaction, error)
	EditTransaction(ctx context.Context, teamSpaceID, transactionID, oldName, newName string, newAmount decimal.Decimal, oldImage string) error
	DeleteTransaction(ctx context.Context, teamSpaceID, transactionID string) (*models.Transaction, error)
	GetTransactionStyles(ctx context.Context, teamSpaceID, transactionID string) (models.Styles, error)
}

// QueryServicer defines the read-only projections over a team space.
type QueryServicer interface {
	AllTransactions(ctx context.Context, teamSpaceID string) ([]models.Transaction, error)
	TransactionsByCategory(ctx context.Context, teamSpaceID, categoryID string) ([]models.Transaction, error)
	RecentTransactions(ctx context.Context, teamSpaceID string) ([]models.Transaction, error)
	TotalAmountUsed(ctx context.Context, teamSpaceID string) (decimal.Decimal, error)
	TotalBudget(ctx context.Context, teamSpaceID string) (decimal.Decimal, error)
	TransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error)
}

// ImagePicker chooses an image URL for a name.
type ImagePicker interface {
	Pick(ctx context.Context, query string, orientation imagesearch.Orientation) (string, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, entry AuditEntry)
}
