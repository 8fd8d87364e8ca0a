// Package models holds the team space document and its nested elements.
// A team space is stored as one denormalized record; categories,
// transactions and members live inside it as ordered lists.
package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, matching the stored document.
	decimal.MarshalJSONWithoutQuotes = true
}

// Document field names used in store paths.
const (
	FieldTeamSpaceID        = "teamSpaceID"
	FieldTeamSpaceName      = "teamSpaceName"
	FieldTotalBudget        = "totalBudget"
	FieldJoinCode           = "teamSpaceJoinCode"
	FieldUserList           = "userList"
	FieldSpendingCategories = "spendingCategories"
	FieldTransactions       = "transactions"
	FieldAmountUsed         = "amountUsed"
	FieldBudgetLimit        = "budgetLimit"
	FieldCategoryName       = "spendingCategoryName"
	FieldTransactionName    = "transactionName"
	FieldTransactionAmount  = "transactionAmount"
	FieldStyles             = "styles"
)

// StyleImage is the styles key holding an element's picture URL.
const StyleImage = "image"

// Styles is free-form presentation metadata.
type Styles map[string]any

// Image returns the image URL stored in s, if any.
func (s Styles) Image() string {
	img, _ := s[StyleImage].(string)
	return img
}

// ImageStyles builds a Styles value holding only an image URL.
func ImageStyles(url string) Styles {
	return Styles{StyleImage: url}
}

// TeamSpace is the top-level shared budgeting workspace.
type TeamSpace struct {
	TeamSpaceID           string             `json:"teamSpaceID"`
	TeamSpaceName         string             `json:"teamSpaceName"`
	TeamSpaceLeaderUserID string             `json:"teamSpaceLeaderUserID"`
	TeamSpaceJoinCode     string             `json:"teamSpaceJoinCode"`
	TotalBudget           decimal.Decimal    `json:"totalBudget"`
	UserList              []Member           `json:"userList"`
	SpendingCategories    []SpendingCategory `json:"spendingCategories"`
	Styles                Styles             `json:"styles"`

	// Version is maintained by the store and bumped on every write.
	Version int64 `json:"-"`
}

// Member is one user attached to a team space.
type Member struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	IsTeamLeader bool   `json:"isTeamLeader"`
	Styles       Styles `json:"styles"`
}

// SpendingCategory is a named budget bucket. AmountUsed always equals the sum
// of TransactionAmount over Transactions.
type SpendingCategory struct {
	SpendingCategoryID   string          `json:"spendingCategoryID"`
	SpendingCategoryName string          `json:"spendingCategoryName"`
	BudgetLimit          decimal.Decimal `json:"budgetLimit"`
	AmountUsed           decimal.Decimal `json:"amountUsed"`
	Transactions         []Transaction   `json:"transactions"`
	Styles               Styles          `json:"styles"`
}

// Transaction is one dated monetary entry attributed to a member.
type Transaction struct {
	TransactionID        string          `json:"transactionID"`
	TransactionName      string          `json:"transactionName"`
	TransactionAmount    decimal.Decimal `json:"transactionAmount"`
	TransactionDate      Date            `json:"transactionDate"`
	UserID               string          `json:"userID"`
	Username             string          `json:"username"`
	SpendingCategoryID   string          `json:"spendingCategoryID"`
	SpendingCategoryName string          `json:"spendingCategoryName"`
	Styles               Styles          `json:"styles"`
}

// NewTeamSpace builds a team space whose only member is its leader.
func NewTeamSpace(id, name, joinCode, leaderUserID, leaderUsername string) *TeamSpace {
	return &TeamSpace{
		TeamSpaceID:           id,
		TeamSpaceName:         name,
		TeamSpaceLeaderUserID: leaderUserID,
		TeamSpaceJoinCode:     joinCode,
		TotalBudget:           decimal.Zero,
		UserList: []Member{{
			UserID:       leaderUserID,
			Username:     leaderUsername,
			IsTeamLeader: true,
			Styles:       Styles{},
		}},
		SpendingCategories: []SpendingCategory{},
		Styles:             Styles{},
	}
}

// NewSpendingCategory builds an empty category with nothing used.
func NewSpendingCategory(id, name string, budgetLimit decimal.Decimal, image string) SpendingCategory {
	return SpendingCategory{
		SpendingCategoryID:   id,
		SpendingCategoryName: name,
		BudgetLimit:          budgetLimit,
		AmountUsed:           decimal.Zero,
		Transactions:         []Transaction{},
		Styles:               ImageStyles(image),
	}
}

// Leader returns the first member flagged as team leader.
func (ts *TeamSpace) Leader() (Member, bool) {
	for _, m := range ts.UserList {
		if m.IsTeamLeader {
			return m, true
		}
	}
	return Member{}, false
}

// HasMember reports whether userID is in the user list.
func (ts *TeamSpace) HasMember(userID string) bool {
	for _, m := range ts.UserList {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// TotalAmountUsed sums AmountUsed over every category.
func (ts *TeamSpace) TotalAmountUsed() decimal.Decimal {
	total := decimal.Zero
	for _, c := range ts.SpendingCategories {
		total = total.Add(c.AmountUsed)
	}
	return total
}
