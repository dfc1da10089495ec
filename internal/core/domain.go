package core

import (
	"strings"
	"time"
)

const (
	Income          CategoryType = "income"
	FixedExpense    CategoryType = "fixed_expense"
	VariableExpense CategoryType = "variable_expense"
	Savings         CategoryType = "savings"
)

// Domain limits, in cents where monetary.
const (
	MinTransactionCents    = 1       // 0.01
	MaxTransactionCents    = 5000000 // 50000.00
	MaxCategoryBudgetCents = 1000000 // 10000.00
	MaxSavingsBudgetCents  = 500000  // 5000.00
	MinSalaryCents         = 100000  // 1000.00
	MaxSalaryCents         = 5000000 // 50000.00
	MaxSavingsGoalCents    = 1000000 // 10000.00

	DefaultSalaryCents      = 275000 // 2750.00
	DefaultSavingsGoalCents = 80000  // 800.00

	// Remaining budget under this threshold triggers the low-balance alert.
	LowBalanceCents = 10000 // 100.00

	MaxDescriptionLen = 500

	MinYear = 2020
	MaxYear = 2030
)

type (
	CategoryType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Period scopes all budget computations to one calendar month.
	Period struct {
		Month int // 1-12
		Year  int
	}

	User struct {
		ID        string
		Email     string
		Name      string
		CreatedAt time.Time
	}

	Category struct {
		ID        string
		UserID    string
		Name      string
		Type      CategoryType
		Budget    Money
		Color     string
		CreatedAt time.Time
	}

	Transaction struct {
		ID          string
		UserID      string
		CategoryID  string
		Amount      Money
		Description string
		Date        Date
		CreatedAt   time.Time
	}

	// BudgetSettings holds the salary/savings-goal pair for one user period.
	// IsDefault is true while the row only carries lazily created defaults;
	// it flips to false on the first explicit write and never back.
	BudgetSettings struct {
		UserID        string
		Month         int
		Year          int
		MonthlySalary Money
		SavingsGoal   Money
		IsDefault     bool
	}
)

// CategoryTypes lists the closed enumeration in display order.
var CategoryTypes = []CategoryType{Income, FixedExpense, VariableExpense, Savings}

func (t CategoryType) Valid() bool {
	switch t {
	case Income, FixedExpense, VariableExpense, Savings:
		return true
	}
	return false
}

// IsExpense reports whether transactions of this type count into
// totalExpenses (fixed or variable).
func (t CategoryType) IsExpense() bool {
	return t == FixedExpense || t == VariableExpense
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// In reports whether the date falls inside the period.
func (d Date) In(p Period) bool {
	return d.Year() == p.Year && int(d.Month()) == p.Month
}

func (p Period) Validate() ValidationErrors {
	var errs ValidationErrors
	if p.Month < 1 || p.Month > 12 {
		errs = append(errs, FieldError{Field: "month", Message: "must be between 1 and 12", Value: p.Month})
	}
	if p.Year < MinYear || p.Year > MaxYear {
		errs = append(errs, FieldError{Field: "year", Message: "must be between 2020 and 2030", Value: p.Year})
	}
	return errs
}

// PeriodOf returns the period a date belongs to.
func PeriodOf(d Date) Period {
	return Period{Month: int(d.Month()), Year: d.Year()}
}

// DefaultSettings returns the lazily created fallback for an untouched period.
func DefaultSettings(userID string, p Period) BudgetSettings {
	return BudgetSettings{
		UserID:        userID,
		Month:         p.Month,
		Year:          p.Year,
		MonthlySalary: Money{Cents: DefaultSalaryCents},
		SavingsGoal:   Money{Cents: DefaultSavingsGoalCents},
		IsDefault:     true,
	}
}

// Validate checks category attributes, collecting every violation.
func (c Category) Validate() ValidationErrors {
	var errs ValidationErrors
	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "is required", Value: c.Name})
	} else if len(name) > 100 {
		errs = append(errs, FieldError{Field: "name", Message: "must be at most 100 characters", Value: c.Name})
	}
	if !c.Type.Valid() {
		errs = append(errs, FieldError{Field: "type", Message: "must be one of income, fixed_expense, variable_expense, savings", Value: string(c.Type)})
	}
	if c.Budget.Cents < 0 {
		errs = append(errs, FieldError{Field: "budget_amount", Message: "must not be negative", Value: c.Budget.Amount()})
	} else if c.Budget.Cents > MaxCategoryBudgetCents {
		errs = append(errs, FieldError{Field: "budget_amount", Message: "must be at most 10000", Value: c.Budget.Amount()})
	} else if c.Type == Savings && c.Budget.Cents > MaxSavingsBudgetCents {
		errs = append(errs, FieldError{Field: "budget_amount", Message: "must be at most 5000 for savings categories", Value: c.Budget.Amount()})
	}
	return errs
}
