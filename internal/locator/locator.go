// Package locator finds the position of nested elements inside a team space.
// Every lookup is a left-to-right linear search, so when identifiers repeat
// the first occurrence wins.
package locator

import "teamspace/internal/models"

// NotFound is the index returned when no element matches.
const NotFound = -1

// CategoryIndex returns the index of the category with id in ts.SpendingCategories.
func CategoryIndex(ts *models.TeamSpace, categoryID string) int {
	for i, c := range ts.SpendingCategories {
		if c.SpendingCategoryID == categoryID {
			return i
		}
	}
	return NotFound
}

// TransactionPosition addresses a transaction by its category and its place
// within that category's list.
type TransactionPosition struct {
	Category    int
	Transaction int
}

// Found reports whether the position addresses a transaction.
func (p TransactionPosition) Found() bool {
	return p.Category != NotFound && p.Transaction != NotFound
}

// TransactionIndex scans every category in order for transactionID.
func TransactionIndex(ts *models.TeamSpace, transactionID string) TransactionPosition {
	for ci, c := range ts.SpendingCategories {
		if ti := TransactionIndexIn(c, transactionID); ti != NotFound {
			return TransactionPosition{Category: ci, Transaction: ti}
		}
	}
	return TransactionPosition{Category: NotFound, Transaction: NotFound}
}

// TransactionIndexIn returns the index of transactionID within one category.
func TransactionIndexIn(c models.SpendingCategory, transactionID string) int {
	for i, tx := range c.Transactions {
		if tx.TransactionID == transactionID {
			return i
		}
	}
	return NotFound
}

// MemberIndex returns the index of userID in ts.UserList.
func MemberIndex(ts *models.TeamSpace, userID string) int {
	for i, m := range ts.UserList {
		if m.UserID == userID {
			return i
		}
	}
	return NotFound
}

// LeaderIndex returns the index of the first member flagged as leader.
func LeaderIndex(ts *models.TeamSpace) int {
	for i, m := range ts.UserList {
		if m.IsTeamLeader {
			return i
		}
	}
	return NotFound
}
