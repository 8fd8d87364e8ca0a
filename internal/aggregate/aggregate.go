// Package aggregate keeps a category's amountUsed in step with its
// transactions. Each helper yields exactly one increment so the aggregate
// moves by a single combined delta inside the same update as the list change.
package aggregate

import (
	"github.com/shopspring/decimal"

	"teamspace/internal/models"
	"teamspace/internal/store"
)

// Added moves the aggregate of the category at catIdx by +amount.
func Added(catIdx int, amount decimal.Decimal) store.Op {
	return store.Increment(path(catIdx), amount)
}

// Edited moves the aggregate of the category at catIdx by newAmount-oldAmount.
func Edited(catIdx int, oldAmount, newAmount decimal.Decimal) store.Op {
	return store.Increment(path(catIdx), newAmount.Sub(oldAmount))
}

// Removed moves the aggregate of the category at catIdx by -amount.
func Removed(catIdx int, amount decimal.Decimal) store.Op {
	return store.Increment(path(catIdx), amount.Neg())
}

// Sum returns the total of every transaction amount in c.
func Sum(c models.SpendingCategory) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range c.Transactions {
		total = total.Add(tx.TransactionAmount)
	}
	return total
}

// Consistent reports whether c.AmountUsed equals the sum of its transactions.
func Consistent(c models.SpendingCategory) bool {
	return c.AmountUsed.Equal(Sum(c))
}

func path(catIdx int) string {
	return store.Path(models.FieldSpendingCategories, catIdx, models.FieldAmountUsed)
}
