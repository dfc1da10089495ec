package core

import "fmt"

// SettingsInput is a salary/savings-goal pair as submitted for one period.
type SettingsInput struct {
	MonthlySalary Money
	SavingsGoal   Money
}

// BudgetPlan carries the known per-category budgets for the coherence
// check. Zero values mean no categories are defined yet and the check
// is skipped.
type BudgetPlan struct {
	FixedBudgets    Money
	VariableBudgets Money
}

// LowMarginCents is the slack under which a coherent plan still earns a
// low-margin warning.
const LowMarginCents = 5000 // 50.00

// ValidateSettings checks a salary/savings-goal pair for range and
// internal coherence. Every violation is collected; the returned warnings
// are advisory and never make the pair invalid on their own.
func ValidateSettings(in SettingsInput, plan *BudgetPlan) (ValidationErrors, []string) {
	var errs ValidationErrors
	var warnings []string

	if in.MonthlySalary.Cents < MinSalaryCents {
		errs = append(errs, FieldError{Field: "monthly_salary", Message: "must be at least 1000", Value: in.MonthlySalary.Amount()})
	} else if in.MonthlySalary.Cents > MaxSalaryCents {
		errs = append(errs, FieldError{Field: "monthly_salary", Message: "must be at most 50000", Value: in.MonthlySalary.Amount()})
	}

	if in.SavingsGoal.Cents < 0 {
		errs = append(errs, FieldError{Field: "savings_goal", Message: "must not be negative", Value: in.SavingsGoal.Amount()})
	} else if in.SavingsGoal.Cents > MaxSavingsGoalCents {
		errs = append(errs, FieldError{Field: "savings_goal", Message: "must be at most 10000", Value: in.SavingsGoal.Amount()})
	}

	// Each rule runs on its own: a range violation on one field must not
	// hide a violation on another.
	if in.SavingsGoal.Cents >= in.MonthlySalary.Cents {
		errs = append(errs, FieldError{Field: "savings_goal", Message: "must be strictly less than monthly salary", Value: in.SavingsGoal.Amount()})
	} else if float64(in.SavingsGoal.Cents) > float64(in.MonthlySalary.Cents)*0.8 {
		warnings = append(warnings, fmt.Sprintf("savings goal of %s leaves less than 20%% of salary for expenses",
			FormatAmount(in.SavingsGoal.Cents)))
	}

	if plan != nil {
		committed := plan.FixedBudgets.Cents + plan.VariableBudgets.Cents + in.SavingsGoal.Cents
		slack := in.MonthlySalary.Cents - committed
		switch {
		case slack < 0:
			errs = append(errs, FieldError{
				Field:   "savings_goal",
				Message: fmt.Sprintf("category budgets plus savings goal exceed salary by %s", FormatAmount(-slack)),
				Value:   in.SavingsGoal.Amount(),
			})
		case slack < LowMarginCents:
			warnings = append(warnings, fmt.Sprintf("only %s of salary left after category budgets and savings goal", FormatAmount(slack)))
		}
	}

	return errs, warnings
}
