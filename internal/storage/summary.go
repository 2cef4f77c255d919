package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// GetTotal returns the sum of every expense amount, 0 for an empty ledger.
func (s *SQLiteStorage) GetTotal(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var total float64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0.0) FROM expenses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return total, nil
}

// GetCategoryTotals returns the summed amount per distinct category,
// ordered by category name.
func (s *SQLiteStorage) GetCategoryTotals(ctx context.Context) ([]model.CategoryTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(category, ''), COALESCE(SUM(amount), 0.0) AS total
		FROM expenses
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	totals := []model.CategoryTotal{}
	for rows.Next() {
		var ct model.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		totals = append(totals, ct)
	}

	return totals, rows.Err()
}
