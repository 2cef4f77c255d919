// Package testutil provides shared test helpers for packages that need a
// real expense store.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/storage"
)

// TestDB wraps a migrated in-memory store.
type TestDB struct {
	Storage *storage.SQLiteStorage
	IDs     []int64 // ids of the seeded expenses, in seed order
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database seeded with expenses.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.SampleLedger()...)
func SetupTestDB(t *testing.T, seed ...model.Expense) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db := &TestDB{Storage: store, t: t}
	for _, e := range seed {
		id, err := store.CreateExpense(ctx, e)
		if err != nil {
			t.Fatalf("failed to seed expense %+v: %v", e, err)
		}
		db.IDs = append(db.IDs, id)
	}

	return db
}

// All returns every expense currently stored, failing the test on error.
func (db *TestDB) All() []model.Expense {
	db.t.Helper()
	expenses, err := db.Storage.GetExpenses(context.Background())
	if err != nil {
		db.t.Fatalf("failed to list expenses: %v", err)
	}
	return expenses
}

// MustGet returns the expense with id, failing the test if it is missing.
func (db *TestDB) MustGet(id int64) model.Expense {
	db.t.Helper()
	expense, found, err := db.Storage.GetExpense(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to get expense %d: %v", id, err)
	}
	if !found {
		db.t.Fatalf("expense %d not found", id)
	}
	return expense
}

// Exists reports whether an expense with id is stored.
func (db *TestDB) Exists(id int64) bool {
	db.t.Helper()
	_, found, err := db.Storage.GetExpense(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to get expense %d: %v", id, err)
	}
	return found
}
