package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-tracker/internal/model"
)

func TestSQLiteStorage_GetTotal(t *testing.T) {
	forEachDriver(t, func(t *testing.T, store *SQLiteStorage) {
		ctx := context.Background()

		total, err := store.GetTotal(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0.0, total, "empty ledger sums to zero")

		ids := seedExpenses(t, store)

		total, err = store.GetTotal(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 370.0, total, 1e-9)

		// Total tracks every create, update and delete.
		require.NoError(t, store.UpdateExpense(ctx, ids[0], model.Expense{Amount: 10, Category: "Transport", Date: "2025-07-30"}))
		require.NoError(t, store.DeleteExpense(ctx, ids[3]))
		_, err = store.CreateExpense(ctx, model.Expense{Amount: -5.5, Category: "Refund", Date: "2025-08-03"})
		require.NoError(t, err)

		all, err := store.GetExpenses(ctx)
		require.NoError(t, err)
		var want float64
		for _, e := range all {
			want += e.Amount
		}

		total, err = store.GetTotal(ctx)
		require.NoError(t, err)
		assert.InDelta(t, want, total, 1e-9)
		assert.InDelta(t, 74.5, total, 1e-9)
	})
}

func TestSQLiteStorage_GetCategoryTotals(t *testing.T) {
	forEachDriver(t, func(t *testing.T, store *SQLiteStorage) {
		ctx := context.Background()

		empty, err := store.GetCategoryTotals(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty)

		seedExpenses(t, store)
		_, err = store.CreateExpense(ctx, model.Expense{Amount: 7, Category: "food", Date: "2025-08-03"})
		require.NoError(t, err)

		totals, err := store.GetCategoryTotals(ctx)
		require.NoError(t, err)

		assert.Equal(t, []model.CategoryTotal{
			{Category: "Food", Total: 70},
			{Category: "Shopping", Total: 200},
			{Category: "Transport", Total: 100},
			{Category: "food", Total: 7},
		}, totals, "categories differing only in case are distinct groups")
	})
}
