package core

import (
	"fmt"
	"strings"
	"time"
)

// TransactionCandidate is a transaction as submitted, before any store
// lookup. Amount has already been converted to cents by the caller.
type TransactionCandidate struct {
	Amount      Money
	Description string
	Date        Date
	CategoryID  string
}

// ValidateTransaction performs the structural pass over a candidate and
// collects every violation. It never consults the budget state; advisory
// warnings are a separate pass once the structural checks hold.
func ValidateTransaction(c TransactionCandidate, now time.Time) ValidationErrors {
	var errs ValidationErrors

	if c.Amount.Cents < MinTransactionCents {
		errs = append(errs, FieldError{Field: "amount", Message: "must be at least 0.01", Value: c.Amount.Amount()})
	} else if c.Amount.Cents > MaxTransactionCents {
		errs = append(errs, FieldError{Field: "amount", Message: "must be at most 50000", Value: c.Amount.Amount()})
	}

	if c.Date.IsZero() {
		errs = append(errs, FieldError{Field: "transaction_date", Message: "is required"})
	} else {
		min := now.AddDate(-2, 0, 0)
		max := now.AddDate(1, 0, 0)
		if c.Date.Before(min) {
			errs = append(errs, FieldError{Field: "transaction_date", Message: "must not be older than 2 years", Value: c.Date.String()})
		} else if c.Date.After(max) {
			errs = append(errs, FieldError{Field: "transaction_date", Message: "must not be more than 1 year ahead", Value: c.Date.String()})
		}
	}

	if strings.TrimSpace(c.CategoryID) == "" {
		errs = append(errs, FieldError{Field: "category_id", Message: "is required"})
	}

	if len(c.Description) > MaxDescriptionLen {
		errs = append(errs, FieldError{Field: "description", Message: "must be at most 500 characters"})
	}

	return errs
}

// PeriodState is the current budget position of a period, computed from
// the stores before the candidate is applied.
type PeriodState struct {
	Settings BudgetSettings
	Category Category

	// Totals for the period excluding the candidate.
	TotalExpenses Money
	ActualSavings Money

	// CategorySpent is what the candidate's category already holds.
	CategorySpent Money
}

func (ps PeriodState) remainingBudget() int64 {
	return ps.Settings.MonthlySalary.Cents - ps.TotalExpenses.Cents - ps.ActualSavings.Cents
}

// AdvisoryWarnings simulates admitting the candidate against the period
// state and returns the warnings the result would carry. It never blocks:
// a structurally valid transaction is admitted no matter what it does to
// the budget. Income transactions produce no warnings.
func AdvisoryWarnings(c TransactionCandidate, ps PeriodState) []string {
	if ps.Category.Type == Income {
		return nil
	}

	var warnings []string

	if ps.Category.Type == Savings {
		if ps.ActualSavings.Cents+c.Amount.Cents > ps.Settings.SavingsGoal.Cents {
			warnings = append(warnings, fmt.Sprintf("savings goal exceeded: %s saved against a goal of %s",
				FormatAmount(ps.ActualSavings.Cents+c.Amount.Cents), FormatAmount(ps.Settings.SavingsGoal.Cents)))
		}
	}

	if ps.Category.Budget.Cents > 0 && ps.CategorySpent.Cents+c.Amount.Cents > ps.Category.Budget.Cents {
		warnings = append(warnings, fmt.Sprintf("category budget exceeded for %s: %s spent against a budget of %s",
			ps.Category.Name, FormatAmount(ps.CategorySpent.Cents+c.Amount.Cents), FormatAmount(ps.Category.Budget.Cents)))
	}

	newRemaining := ps.remainingBudget() - c.Amount.Cents
	switch {
	case newRemaining < 0:
		warnings = append(warnings, fmt.Sprintf("monthly budget exceeded by %s", FormatAmount(-newRemaining)))
	case newRemaining < LowBalanceCents:
		warnings = append(warnings, fmt.Sprintf("low remaining balance: %s", FormatAmount(newRemaining)))
	}

	return warnings
}
