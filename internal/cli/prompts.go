package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/expense-tracker/internal/model"
)

// CancelSentinel aborts the current sub-dialogue when entered at any prompt.
const CancelSentinel = "-1"

// Sub-dialogue outcomes other than success.
var (
	// ErrCancelled means the user entered CancelSentinel.
	ErrCancelled = errors.New("cancelled by user")
	// ErrInvalidAmount means an amount did not parse as a number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidID means an id did not parse as an integer.
	ErrInvalidID = errors.New("invalid id")
)

// prompt writes label and reads one line. CancelSentinel yields ErrCancelled.
func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(m.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	input, err := m.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}

	if input == CancelSentinel {
		return "", ErrCancelled
	}
	return input, nil
}

// promptText reads a free-form field. Empty input is a valid empty value.
func (m *Menu) promptText(ctx context.Context, label string) (string, error) {
	return m.prompt(ctx, label)
}

// promptAmount reads an amount. A value that does not parse aborts the
// sub-dialogue with ErrInvalidAmount rather than re-prompting.
func (m *Menu) promptAmount(ctx context.Context) (float64, error) {
	input, err := m.prompt(ctx, "Amount")
	if err != nil {
		return 0, err
	}
	return parseAmount(input)
}

// promptDate reads a date, substituting today for empty input. The value is
// not checked against the calendar.
func (m *Menu) promptDate(ctx context.Context, label string) (string, error) {
	input, err := m.prompt(ctx, label+" (YYYY-MM-DD, empty for today)")
	if err != nil {
		return "", err
	}
	if input == "" {
		return model.FormatDate(m.now()), nil
	}
	return input, nil
}

// promptCategory shows the categories already in use, then reads one.
func (m *Menu) promptCategory(ctx context.Context) (string, error) {
	categories, err := m.store.GetCategories(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) > 0 {
		m.println(SubtleStyle.Render("Known categories: " + strings.Join(categories, ", ")))
	}
	return m.promptText(ctx, "Category")
}

// promptExpense runs the four-field sub-dialogue shared by add and update:
// amount, category, description, date. Nothing is returned unless every
// field was supplied.
func (m *Menu) promptExpense(ctx context.Context) (model.Expense, error) {
	amount, err := m.promptAmount(ctx)
	if err != nil {
		return model.Expense{}, err
	}

	category, err := m.promptCategory(ctx)
	if err != nil {
		return model.Expense{}, err
	}

	description, err := m.promptText(ctx, "Description")
	if err != nil {
		return model.Expense{}, err
	}

	date, err := m.promptDate(ctx, "Date")
	if err != nil {
		return model.Expense{}, err
	}

	return model.NewExpense(amount, category, description, date, m.now()), nil
}

// promptExistingID keeps asking until the input names an existing expense
// or the user cancels. Non-numeric and unknown ids both re-prompt.
func (m *Menu) promptExistingID(ctx context.Context) (int64, error) {
	for {
		input, err := m.prompt(ctx, "Expense ID (-1 to cancel)")
		if err != nil {
			return 0, err
		}

		id, err := parseID(input)
		if err != nil {
			m.printError(fmt.Sprintf("%q is not a valid ID. Please try again.", input))
			continue
		}

		_, found, err := m.store.GetExpense(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("failed to look up expense %d: %w", id, err)
		}
		if !found {
			m.printError(fmt.Sprintf("No expense with ID %d. Please try again.", id))
			continue
		}

		return id, nil
	}
}

func parseAmount(input string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	return amount, nil
}

func parseID(input string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, input)
	}
	return id, nil
}
