package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// ExpenseTableHeader heads every expense listing.
const ExpenseTableHeader = "ID | Amount | Category | Description | Date"

// NoExpensesMessage is printed when a query yields no rows.
const NoExpensesMessage = "No expenses found."

// FormatExpenseRow renders one expense in the listing's column order.
func FormatExpenseRow(e model.Expense) string {
	return fmt.Sprintf("%d | %.2f | %s | %s | %s", e.ID, e.Amount, e.Category, e.Description, e.Date)
}

func (m *Menu) renderExpenses(expenses []model.Expense) error {
	if len(expenses) == 0 {
		m.println(InfoStyle.Render(NoExpensesMessage))
		return nil
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(ExpenseTableHeader))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(strings.Repeat("-", len(ExpenseTableHeader))))
	b.WriteString("\n")
	for _, e := range expenses {
		b.WriteString(FormatExpenseRow(e))
		b.WriteString("\n")
	}

	if _, err := fmt.Fprint(m.writer, b.String()); err != nil {
		return fmt.Errorf("failed to write expenses: %w", err)
	}
	return nil
}

func (m *Menu) renderSummary(total float64, totals []model.CategoryTotal) error {
	var b strings.Builder
	b.WriteString(BoldStyle.Render(fmt.Sprintf("Total: %.2f", total)))
	b.WriteString("\n")

	if len(totals) > 0 {
		b.WriteString("By category:\n")
		for _, ct := range totals {
			fmt.Fprintf(&b, "  %s: %.2f\n", ct.Category, ct.Total)
		}
	}

	if _, err := fmt.Fprint(m.writer, b.String()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
