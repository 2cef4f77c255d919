package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-tracker/internal/model"
)

var testDrivers = []string{DriverSQLite3, DriverSQLite}

// Helper function to create test storage.
func createTestStorage(t *testing.T, driver string) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath, WithDriver(driver))
	require.NoError(t, err, "failed to create storage")
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()), "failed to migrate")
	return store
}

// forEachDriver runs fn once per supported SQL driver.
func forEachDriver(t *testing.T, fn func(t *testing.T, store *SQLiteStorage)) {
	t.Helper()
	for _, driver := range testDrivers {
		t.Run(driver, func(t *testing.T) {
			fn(t, createTestStorage(t, driver))
		})
	}
}

// seedExpenses inserts the fixture ledger used by the query tests.
func seedExpenses(t *testing.T, store *SQLiteStorage) []int64 {
	t.Helper()
	ctx := context.Background()

	fixtures := []model.Expense{
		{Amount: 100, Category: "Transport", Description: "Bus ticket", Date: "2025-07-30"},
		{Amount: 50, Category: "Food", Description: "Groceries", Date: "2025-07-31"},
		{Amount: 20, Category: "Food", Description: "Snacks", Date: "2025-08-01"},
		{Amount: 200, Category: "Shopping", Description: "Clothes", Date: "2025-08-02"},
	}

	ids := make([]int64, 0, len(fixtures))
	for _, e := range fixtures {
		id, err := store.CreateExpense(ctx, e)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestNewSQLiteStorage(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		driver  string
		wantErr error
	}{
		{
			name:   "mattn driver creates nested directory",
			path:   filepath.Join(t.TempDir(), "nested", "dir", "expenses.db"),
			driver: DriverSQLite3,
		},
		{
			name:   "modernc driver",
			path:   filepath.Join(t.TempDir(), "expenses.db"),
			driver: DriverSQLite,
		},
		{
			name:   "in-memory database",
			path:   ":memory:",
			driver: DriverSQLite3,
		},
		{
			name:    "empty path",
			path:    "  ",
			driver:  DriverSQLite3,
			wantErr: ErrEmptyString,
		},
		{
			name:    "unknown driver",
			path:    filepath.Join(t.TempDir(), "expenses.db"),
			driver:  "postgres",
			wantErr: ErrUnknownDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewSQLiteStorage(tt.path, WithDriver(tt.driver))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer func() { _ = store.Close() }()

			assert.Equal(t, tt.driver, store.Driver())
			assert.Equal(t, tt.path, store.Path())
		})
	}
}

func TestNewSQLiteStorage_DefaultDriver(t *testing.T) {
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "expenses.db"), WithDriver(""))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, DefaultDriver, store.Driver())
}

func TestSQLiteStorage_InMemoryRoundTrip(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	id, err := store.CreateExpense(ctx, model.Expense{Amount: 1, Category: "Misc", Date: "2025-01-01"})
	require.NoError(t, err)

	got, found, err := store.GetExpense(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Misc", got.Category)
}

func TestSQLiteStorage_NilContext(t *testing.T) {
	store := createTestStorage(t, DriverSQLite3)

	//nolint:staticcheck // Testing nil context handling
	_, err := store.GetExpenses(nil)
	assert.ErrorIs(t, err, ErrNilContext)

	//nolint:staticcheck // Testing nil context handling
	_, err = store.CreateExpense(nil, model.Expense{})
	assert.ErrorIs(t, err, ErrNilContext)

	//nolint:staticcheck // Testing nil context handling
	_, _, err = store.GetExpense(nil, 1)
	assert.ErrorIs(t, err, ErrNilContext)

	//nolint:staticcheck // Testing nil context handling
	_, err = store.GetTotal(nil)
	assert.ErrorIs(t, err, ErrNilContext)

	//nolint:staticcheck // Testing nil context handling
	assert.ErrorIs(t, store.DeleteExpense(nil, 1), ErrNilContext)
}

func TestSQLiteStorage_ClosedDatabase(t *testing.T) {
	store := createTestStorage(t, DriverSQLite3)
	require.NoError(t, store.Close())

	_, err := store.CreateExpense(context.Background(), model.Expense{Amount: 1})
	assert.Error(t, err, "writes to a closed store must fail")
}
