// Package model defines the core domain types of the expense tracker.
package model

import "time"

// DateLayout is the format of Expense.Date.
const DateLayout = "2006-01-02"

// Expense represents one recorded transaction in the ledger.
type Expense struct {
	Category    string
	Description string
	Date        string // YYYY-MM-DD, stored verbatim
	ID          int64  // Assigned by storage, zero until persisted
	Amount      float64
}

// NewExpense creates an expense, dating it now when date is empty.
// Amount and date are accepted as given; negative amounts and
// non-ISO dates are stored verbatim.
func NewExpense(amount float64, category, description, date string, now time.Time) Expense {
	if date == "" {
		date = FormatDate(now)
	}
	return Expense{
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}
}

// FormatDate renders t in the ledger's date layout using t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CategoryTotal is the summed amount of every expense sharing a category.
type CategoryTotal struct {
	Category string
	Total    float64
}
