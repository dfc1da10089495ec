package core

import "sort"

// CategoryBreakdown is the per-category slice of a BudgetSummary.
type CategoryBreakdown struct {
	CategoryID       string       `json:"categoryId"`
	Name             string       `json:"name"`
	Type             CategoryType `json:"type"`
	Color            string       `json:"color"`
	Budget           Money        `json:"budget"`
	Spent            Money        `json:"spent"`
	Remaining        Money        `json:"remaining"`
	Percentage       float64      `json:"percentage"`
	SalaryPercentage float64      `json:"salaryPercentage"`
	IsOverBudget     bool         `json:"isOverBudget"`
	TransactionCount int          `json:"transactionCount"`
}

// Alerts flags notable budget conditions for the period.
type Alerts struct {
	OverBudgetCategories int  `json:"overBudgetCategories"`
	SavingsGoalAchieved  bool `json:"savingsGoalAchieved"`
	BudgetExceeded       bool `json:"budgetExceeded"`
	LowBalance           bool `json:"lowBalance"`
	HighSpending         bool `json:"highSpending"`
}

// BudgetSummary is the derived monthly view. It is computed on every read
// and never persisted or cached.
type BudgetSummary struct {
	Month     int  `json:"month"`
	Year      int  `json:"year"`
	IsDefault bool `json:"isDefault"`

	MonthlySalary Money `json:"monthlySalary"`
	SavingsGoal   Money `json:"savingsGoal"`

	TotalIncome           Money `json:"totalIncome"`
	TotalExpenses         Money `json:"totalExpenses"`
	TotalFixedExpenses    Money `json:"totalFixedExpenses"`
	TotalVariableExpenses Money `json:"totalVariableExpenses"`
	ActualSavings         Money `json:"actualSavings"`

	// RemainingBudget = salary - expenses - savings. Recorded income is
	// informational only and never feeds this figure.
	RemainingBudget        Money   `json:"remainingBudget"`
	RemainingToSavingsGoal Money   `json:"remainingToSavingsGoal"`
	BudgetUsagePercentage  float64 `json:"budgetUsagePercentage"`

	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	Alerts            Alerts              `json:"alerts"`
}

// ComputeSummary derives the monthly budget view from the settings,
// category set and the period's transactions. It is a pure function:
// the same inputs always produce the same summary.
//
// Transactions referencing a category not in the set are skipped; the
// stores never hand out such rows, so the guard only matters for callers
// assembling inputs by hand.
func ComputeSummary(settings BudgetSettings, categories []Category, transactions []Transaction) BudgetSummary {
	byID := make(map[string]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	spent := make(map[string]int64, len(categories))
	counts := make(map[string]int, len(categories))
	for _, tx := range transactions {
		if _, ok := byID[tx.CategoryID]; !ok {
			continue
		}
		spent[tx.CategoryID] += tx.Amount.Cents
		counts[tx.CategoryID]++
	}

	s := BudgetSummary{
		Month:         settings.Month,
		Year:          settings.Year,
		IsDefault:     settings.IsDefault,
		MonthlySalary: settings.MonthlySalary,
		SavingsGoal:   settings.SavingsGoal,
	}

	breakdown := make([]CategoryBreakdown, 0, len(categories))
	for _, c := range categories {
		sp := spent[c.ID]
		remaining := c.Budget.Cents - sp
		if remaining < 0 {
			remaining = 0
		}
		breakdown = append(breakdown, CategoryBreakdown{
			CategoryID:       c.ID,
			Name:             c.Name,
			Type:             c.Type,
			Color:            c.Color,
			Budget:           c.Budget,
			Spent:            Money{Cents: sp},
			Remaining:        Money{Cents: remaining},
			Percentage:       Round2(percentage(sp, c.Budget.Cents)),
			SalaryPercentage: Round2(percentage(sp, settings.MonthlySalary.Cents)),
			IsOverBudget:     c.Budget.Cents > 0 && sp > c.Budget.Cents,
			TransactionCount: counts[c.ID],
		})

		switch c.Type {
		case Income:
			s.TotalIncome.Cents += sp
		case FixedExpense:
			s.TotalFixedExpenses.Cents += sp
		case VariableExpense:
			s.TotalVariableExpenses.Cents += sp
		case Savings:
			s.ActualSavings.Cents += sp
		}
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Name < breakdown[j].Name })
	s.CategoryBreakdown = breakdown

	s.TotalExpenses.Cents = s.TotalFixedExpenses.Cents + s.TotalVariableExpenses.Cents
	s.RemainingBudget.Cents = s.MonthlySalary.Cents - s.TotalExpenses.Cents - s.ActualSavings.Cents

	toGoal := s.SavingsGoal.Cents - s.ActualSavings.Cents
	if toGoal < 0 {
		toGoal = 0
	}
	s.RemainingToSavingsGoal.Cents = toGoal
	s.BudgetUsagePercentage = Round2(percentage(s.TotalExpenses.Cents+s.ActualSavings.Cents, s.MonthlySalary.Cents))

	for _, b := range breakdown {
		if b.IsOverBudget {
			s.Alerts.OverBudgetCategories++
		}
	}
	s.Alerts.SavingsGoalAchieved = s.ActualSavings.Cents >= s.SavingsGoal.Cents
	s.Alerts.BudgetExceeded = s.RemainingBudget.Cents < 0
	s.Alerts.LowBalance = s.RemainingBudget.Cents >= 0 && s.RemainingBudget.Cents < LowBalanceCents
	s.Alerts.HighSpending = s.BudgetUsagePercentage > 90

	return s
}
