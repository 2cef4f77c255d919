package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/expense-tracker/internal/model"
)

const expenseColumns = `id, amount, category, description, date`

// CreateExpense inserts a new expense and returns its store-assigned id.
// An empty date is replaced with today's date.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, expense model.Expense) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	if expense.Date == "" {
		expense.Date = model.FormatDate(time.Now())
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (amount, category, description, date)
		VALUES (?, ?, ?, ?)
	`, expense.Amount, expense.Category, expense.Description, expense.Date)
	if err != nil {
		return 0, fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get expense id: %w", err)
	}

	slog.Debug("created expense", "id", id, "category", expense.Category, "amount", expense.Amount)
	return id, nil
}

// GetExpense returns the expense with the given id. A missing id is reported
// with found == false and a nil error.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id int64) (model.Expense, bool, error) {
	if err := validateContext(ctx); err != nil {
		return model.Expense{}, false, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = ?
	`, id)

	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Expense{}, false, nil
	}
	if err != nil {
		return model.Expense{}, false, fmt.Errorf("failed to get expense %d: %w", id, err)
	}

	return expense, true, nil
}

// GetExpenses returns every expense in insertion order.
func (s *SQLiteStorage) GetExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryExpenses(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		ORDER BY id
	`)
}

// GetExpensesByCategory returns expenses whose category matches exactly.
// The comparison is case-sensitive.
func (s *SQLiteStorage) GetExpensesByCategory(ctx context.Context, category string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryExpenses(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE category = ?
		ORDER BY id
	`, category)
}

// GetExpensesByDateRange returns expenses whose date lies in [start, end]
// under string comparison, which is chronological for YYYY-MM-DD values.
func (s *SQLiteStorage) GetExpensesByDateRange(ctx context.Context, start, end string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryExpenses(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE date BETWEEN ? AND ?
		ORDER BY id
	`, start, end)
}

// UpdateExpense replaces every mutable field of the expense with the given id.
// Updating a missing id is a no-op.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, id int64, expense model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET amount = ?, category = ?, description = ?, date = ?
		WHERE id = ?
	`, expense.Amount, expense.Category, expense.Description, expense.Date, id)
	if err != nil {
		return fmt.Errorf("failed to update expense %d: %w", id, err)
	}

	logAffected(result, "updated expense", id)
	return nil
}

// DeleteExpense removes the expense with the given id. Deleting a missing id
// is a no-op.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}

	logAffected(result, "deleted expense", id)
	return nil
}

// GetCategories returns the distinct categories currently in use, sorted.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category
		FROM expenses
		WHERE category IS NOT NULL
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (s *SQLiteStorage) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	expenses := []model.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses))
	return expenses, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanExpense converts a raw row into an Expense. Columns are nullable in the
// schema, so NULLs map to zero values.
func scanExpense(row scanner) (model.Expense, error) {
	var (
		expense     model.Expense
		amount      sql.NullFloat64
		category    sql.NullString
		description sql.NullString
		date        sql.NullString
	)

	if err := row.Scan(&expense.ID, &amount, &category, &description, &date); err != nil {
		return model.Expense{}, err
	}

	expense.Amount = amount.Float64
	expense.Category = category.String
	expense.Description = description.String
	expense.Date = date.String
	return expense, nil
}

func logAffected(result sql.Result, msg string, id int64) {
	affected, err := result.RowsAffected()
	if err != nil {
		slog.Warn("Failed to read affected rows", "id", id, "error", err)
		return
	}
	slog.Debug(msg, "id", id, "rows_affected", affected)
}
