package core

import (
	"strings"
	"testing"
)

func TestValidateSettings(t *testing.T) {
	cases := []struct {
		name   string
		salary int64
		goal   int64
		fields []string
	}{
		{"valid", 275000, 80000, nil},
		{"zero goal", 275000, 0, nil},
		{"salary too low", 90000, 80000, []string{"monthly_salary"}},
		{"salary too high", 5000001, 80000, []string{"monthly_salary"}},
		{"goal negative", 275000, -1, []string{"savings_goal"}},
		{"goal too high", 275000, 1000001, []string{"savings_goal"}},
		{"goal equals salary", 200000, 200000, []string{"savings_goal"}},
		{"goal above salary", 200000, 250000, []string{"savings_goal"}},
		{"collects all", 90000, -1, []string{"monthly_salary", "savings_goal"}},
		{"low salary does not hide goal check", 90000, 95000, []string{"monthly_salary", "savings_goal"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs, _ := ValidateSettings(SettingsInput{
				MonthlySalary: Money{Cents: tc.salary},
				SavingsGoal:   Money{Cents: tc.goal},
			}, nil)
			if len(errs) != len(tc.fields) {
				t.Fatalf("expected %d errors, got %v", len(tc.fields), errs)
			}
			for i, f := range tc.fields {
				if errs[i].Field != f {
					t.Fatalf("expected field %q, got %q", f, errs[i].Field)
				}
			}
		})
	}
}

func TestValidateSettingsHighGoalWarning(t *testing.T) {
	errs, warnings := ValidateSettings(SettingsInput{
		MonthlySalary: Money{Cents: 200000},
		SavingsGoal:   Money{Cents: 170000}, // 85% of salary
	}, nil)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "less than 20%") {
		t.Fatalf("expected high-goal warning, got %v", warnings)
	}
}

func TestValidateSettingsCoherence(t *testing.T) {
	in := SettingsInput{
		MonthlySalary: Money{Cents: 275000},
		SavingsGoal:   Money{Cents: 80000},
	}

	t.Run("plan fits", func(t *testing.T) {
		errs, warnings := ValidateSettings(in, &BudgetPlan{
			FixedBudgets:    Money{Cents: 100000},
			VariableBudgets: Money{Cents: 50000},
		})
		if len(errs) != 0 || len(warnings) != 0 {
			t.Fatalf("expected clean result, got errs=%v warnings=%v", errs, warnings)
		}
	})

	t.Run("plan exceeds salary", func(t *testing.T) {
		errs, _ := ValidateSettings(in, &BudgetPlan{
			FixedBudgets:    Money{Cents: 150000},
			VariableBudgets: Money{Cents: 60000},
		})
		if len(errs) != 1 {
			t.Fatalf("expected shortfall error, got %v", errs)
		}
		if !strings.Contains(errs[0].Message, "exceed salary by 150.00") {
			t.Fatalf("unexpected message %q", errs[0].Message)
		}
	})

	t.Run("runs despite range violation", func(t *testing.T) {
		errs, _ := ValidateSettings(SettingsInput{
			MonthlySalary: Money{Cents: 90000},
			SavingsGoal:   Money{Cents: 20000},
		}, &BudgetPlan{
			FixedBudgets:    Money{Cents: 150000},
			VariableBudgets: Money{Cents: 60000},
		})
		if len(errs) != 2 {
			t.Fatalf("expected salary and shortfall errors, got %v", errs)
		}
		if errs[0].Field != "monthly_salary" || !strings.Contains(errs[1].Message, "exceed salary") {
			t.Fatalf("unexpected errors %v", errs)
		}
	})

	t.Run("low margin", func(t *testing.T) {
		errs, warnings := ValidateSettings(in, &BudgetPlan{
			FixedBudgets:    Money{Cents: 140000},
			VariableBudgets: Money{Cents: 52000},
		})
		if len(errs) != 0 {
			t.Fatalf("expected no errors, got %v", errs)
		}
		if len(warnings) != 1 || !strings.Contains(warnings[0], "30.00") {
			t.Fatalf("expected low-margin warning, got %v", warnings)
		}
	})
}
