package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/service"
)

// MenuChoice is one entry of the main menu.
type MenuChoice int

// Menu entries, numbered as displayed.
const (
	ChoiceAdd MenuChoice = iota + 1
	ChoiceList
	ChoiceFilterCategory
	ChoiceFilterDateRange
	ChoiceSummary
	ChoiceUpdate
	ChoiceDelete
	ChoiceExit
)

var menuLabels = map[MenuChoice]string{
	ChoiceAdd:             "Add expense",
	ChoiceList:            "View all expenses",
	ChoiceFilterCategory:  "Filter by category",
	ChoiceFilterDateRange: "Filter by date range",
	ChoiceSummary:         "Show summary",
	ChoiceUpdate:          "Update expense",
	ChoiceDelete:          "Delete expense",
	ChoiceExit:            "Exit",
}

func (c MenuChoice) String() string {
	if label, ok := menuLabels[c]; ok {
		return label
	}
	return fmt.Sprintf("MenuChoice(%d)", int(c))
}

// ParseMenuChoice maps the user's input to a menu entry.
func ParseMenuChoice(input string) (MenuChoice, bool) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, false
	}
	choice := MenuChoice(n)
	if choice < ChoiceAdd || choice > ChoiceExit {
		return 0, false
	}
	return choice, true
}

// Menu drives the interactive expense menu over a line-based reader and writer.
type Menu struct {
	store    service.ExpenseStore
	reader   *NonBlockingReader
	writer   io.Writer
	now      func() time.Time
	handlers map[MenuChoice]func(context.Context) error
}

// MenuOption configures a Menu.
type MenuOption func(*Menu)

// WithClock overrides the clock used to date expenses entered without a date.
func WithClock(now func() time.Time) MenuOption {
	return func(m *Menu) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMenu creates a menu backed by store, reading from reader and writing to writer.
func NewMenu(store service.ExpenseStore, reader io.Reader, writer io.Writer, opts ...MenuOption) *Menu {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	m := &Menu{
		store:  store,
		reader: NewNonBlockingReader(reader),
		writer: writer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.handlers = map[MenuChoice]func(context.Context) error{
		ChoiceAdd:             m.addExpense,
		ChoiceList:            m.listExpenses,
		ChoiceFilterCategory:  m.filterByCategory,
		ChoiceFilterDateRange: m.filterByDateRange,
		ChoiceSummary:         m.showSummary,
		ChoiceUpdate:          m.updateExpense,
		ChoiceDelete:          m.deleteExpense,
	}

	return m
}

// Run shows the menu until the user exits or input ends. It returns
// context.Canceled when ctx is canceled while waiting for input, and the
// storage error when a store call fails.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := m.showMenu(); err != nil {
			return err
		}

		input, err := m.prompt(ctx, "Choose an option")
		if err != nil && !errors.Is(err, ErrCancelled) {
			return m.finish(ctx, err)
		}

		choice, ok := ParseMenuChoice(input)
		if !ok {
			m.printError("Invalid choice. Please try again.")
			continue
		}

		if choice == ChoiceExit {
			m.println(FormatInfo("Goodbye!"))
			return nil
		}

		slog.Debug("menu choice", "choice", choice.String())

		if err := m.handlers[choice](ctx); err != nil {
			switch {
			case errors.Is(err, ErrCancelled):
				m.println(FormatInfo("Cancelled. Returning to menu."))
			case errors.Is(err, ErrInvalidAmount):
				m.printError("Invalid amount. Please enter a number.")
			default:
				return m.finish(ctx, err)
			}
		}
	}
}

// finish maps the error that ended the loop to Run's result.
func (m *Menu) finish(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, io.EOF):
		m.println("")
		return nil
	case errors.Is(err, ErrInputCancelled):
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return context.Canceled
	default:
		return err
	}
}

func (m *Menu) showMenu() error {
	if _, err := fmt.Fprintln(m.writer); err != nil {
		return fmt.Errorf("failed to write menu: %w", err)
	}
	if _, err := fmt.Fprintln(m.writer, FormatTitle("Expense Tracker")); err != nil {
		return fmt.Errorf("failed to write menu: %w", err)
	}
	for c := ChoiceAdd; c <= ChoiceExit; c++ {
		if _, err := fmt.Fprintf(m.writer, "  %d. %s\n", int(c), c); err != nil {
			return fmt.Errorf("failed to write menu: %w", err)
		}
	}
	return nil
}

func (m *Menu) addExpense(ctx context.Context) error {
	expense, err := m.promptExpense(ctx)
	if err != nil {
		return err
	}

	id, err := m.store.CreateExpense(ctx, expense)
	if err != nil {
		return common.NewUserError("Could not save expense", err)
	}

	m.println(FormatSuccess(fmt.Sprintf("Expense added with ID %d.", id)))
	return nil
}

func (m *Menu) listExpenses(ctx context.Context) error {
	expenses, err := m.store.GetExpenses(ctx)
	if err != nil {
		return common.NewUserError("Could not load expenses", err)
	}
	return m.renderExpenses(expenses)
}

func (m *Menu) filterByCategory(ctx context.Context) error {
	category, err := m.promptCategory(ctx)
	if err != nil {
		return err
	}

	expenses, err := m.store.GetExpensesByCategory(ctx, category)
	if err != nil {
		return common.NewUserError("Could not load expenses", err)
	}
	return m.renderExpenses(expenses)
}

func (m *Menu) filterByDateRange(ctx context.Context) error {
	start, err := m.promptDate(ctx, "Start date")
	if err != nil {
		return err
	}

	end, err := m.promptDate(ctx, "End date")
	if err != nil {
		return err
	}

	expenses, err := m.store.GetExpensesByDateRange(ctx, start, end)
	if err != nil {
		return common.NewUserError("Could not load expenses", err)
	}
	return m.renderExpenses(expenses)
}

func (m *Menu) showSummary(ctx context.Context) error {
	total, err := m.store.GetTotal(ctx)
	if err != nil {
		return common.NewUserError("Could not compute total", err)
	}

	totals, err := m.store.GetCategoryTotals(ctx)
	if err != nil {
		return common.NewUserError("Could not compute category totals", err)
	}

	return m.renderSummary(total, totals)
}

// selectExpense lists the ledger and asks for an existing id. It reports
// found == false when there is nothing to choose from.
func (m *Menu) selectExpense(ctx context.Context) (int64, bool, error) {
	expenses, err := m.store.GetExpenses(ctx)
	if err != nil {
		return 0, false, common.NewUserError("Could not load expenses", err)
	}
	if err := m.renderExpenses(expenses); err != nil {
		return 0, false, err
	}
	if len(expenses) == 0 {
		return 0, false, nil
	}

	id, err := m.promptExistingID(ctx)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (m *Menu) updateExpense(ctx context.Context) error {
	id, ok, err := m.selectExpense(ctx)
	if err != nil || !ok {
		return err
	}

	m.println(InfoStyle.Render("Enter the new values for every field."))
	expense, err := m.promptExpense(ctx)
	if err != nil {
		return err
	}

	if err := m.store.UpdateExpense(ctx, id, expense); err != nil {
		return common.NewUserError("Could not update expense", err)
	}

	m.println(FormatSuccess(fmt.Sprintf("Expense %d updated.", id)))
	return nil
}

func (m *Menu) deleteExpense(ctx context.Context) error {
	id, ok, err := m.selectExpense(ctx)
	if err != nil || !ok {
		return err
	}

	if err := m.store.DeleteExpense(ctx, id); err != nil {
		return common.NewUserError("Could not delete expense", err)
	}

	m.println(FormatSuccess(fmt.Sprintf("Expense %d deleted.", id)))
	return nil
}

// println writes one line. Console write failures are logged, not fatal.
func (m *Menu) println(line string) {
	if _, err := fmt.Fprintln(m.writer, line); err != nil {
		slog.Warn("Failed to write to console", "error", err)
	}
}

func (m *Menu) printError(message string) {
	m.println(FormatError(message))
}
