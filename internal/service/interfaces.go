// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// ExpenseStore defines the contract for our persistence layer.
// Every call is a single autocommitted statement.
type ExpenseStore interface {
	// Write operations
	CreateExpense(ctx context.Context, expense model.Expense) (int64, error)
	UpdateExpense(ctx context.Context, id int64, expense model.Expense) error
	DeleteExpense(ctx context.Context, id int64) error

	// Queries. A missing id is reported through the bool, not an error.
	GetExpense(ctx context.Context, id int64) (model.Expense, bool, error)
	GetExpenses(ctx context.Context) ([]model.Expense, error)
	GetExpensesByCategory(ctx context.Context, category string) ([]model.Expense, error)
	GetExpensesByDateRange(ctx context.Context, start, end string) ([]model.Expense, error)
	GetCategories(ctx context.Context) ([]string, error)

	// Aggregates
	GetTotal(ctx context.Context) (float64, error)
	GetCategoryTotals(ctx context.Context) ([]model.CategoryTotal, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
