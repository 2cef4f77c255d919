package testutil

import "github.com/Veraticus/expense-tracker/internal/model"

// SampleLedger returns four expenses across three categories. Seeded into an
// empty store they receive ids 1 through 4 in this order.
//
//	1  100.00  Transport  Bus ticket  2025-07-30
//	2   50.00  Food       Groceries   2025-07-31
//	3   20.00  Food       Snacks      2025-08-01
//	4  200.00  Shopping   Clothes     2025-08-02
func SampleLedger() []model.Expense {
	return []model.Expense{
		{Amount: 100, Category: "Transport", Description: "Bus ticket", Date: "2025-07-30"},
		{Amount: 50, Category: "Food", Description: "Groceries", Date: "2025-07-31"},
		{Amount: 20, Category: "Food", Description: "Snacks", Date: "2025-08-01"},
		{Amount: 200, Category: "Shopping", Description: "Clothes", Date: "2025-08-02"},
	}
}

// SampleLedgerTotal is the sum of SampleLedger amounts.
const SampleLedgerTotal = 370.0
