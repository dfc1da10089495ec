package core

import (
	"strings"
	"testing"
)

func TestCategoryTypeValid(t *testing.T) {
	for _, ct := range CategoryTypes {
		if !ct.Valid() {
			t.Fatalf("%s should be valid", ct)
		}
	}
	if CategoryType("expense").Valid() {
		t.Fatal("unknown type should be invalid")
	}
}

func TestPeriodValidate(t *testing.T) {
	cases := []struct {
		name   string
		p      Period
		fields []string
	}{
		{"valid", Period{Month: 6, Year: 2025}, nil},
		{"month low", Period{Month: 0, Year: 2025}, []string{"month"}},
		{"month high", Period{Month: 13, Year: 2025}, []string{"month"}},
		{"year low", Period{Month: 6, Year: 2019}, []string{"year"}},
		{"year high", Period{Month: 6, Year: 2031}, []string{"year"}},
		{"both", Period{Month: 0, Year: 1999}, []string{"month", "year"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.p.Validate()
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

func TestDateIn(t *testing.T) {
	d := NewDate(2025, 3, 15)
	if !d.In(Period{Month: 3, Year: 2025}) {
		t.Fatal("date should fall in its own period")
	}
	if d.In(Period{Month: 4, Year: 2025}) || d.In(Period{Month: 3, Year: 2024}) {
		t.Fatal("date should not fall in other periods")
	}
	if got := PeriodOf(d); got != (Period{Month: 3, Year: 2025}) {
		t.Fatalf("unexpected period %+v", got)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("u1", Period{Month: 2, Year: 2025})
	if s.MonthlySalary.Cents != 275000 || s.SavingsGoal.Cents != 80000 {
		t.Fatalf("unexpected defaults %+v", s)
	}
	if !s.IsDefault {
		t.Fatal("defaults must be flagged")
	}
}

func TestCategoryValidate(t *testing.T) {
	cases := []struct {
		name   string
		c      Category
		fields []string
	}{
		{"valid", Category{Name: "Groceries", Type: VariableExpense, Budget: Money{Cents: 25000}}, nil},
		{"empty name", Category{Name: "  ", Type: Income}, []string{"name"}},
		{"long name", Category{Name: strings.Repeat("x", 101), Type: Income}, []string{"name"}},
		{"bad type", Category{Name: "A", Type: "other"}, []string{"type"}},
		{"negative budget", Category{Name: "A", Type: FixedExpense, Budget: Money{Cents: -1}}, []string{"budget_amount"}},
		{"budget too high", Category{Name: "A", Type: FixedExpense, Budget: Money{Cents: 1000001}}, []string{"budget_amount"}},
		{"savings cap", Category{Name: "A", Type: Savings, Budget: Money{Cents: 500001}}, []string{"budget_amount"}},
		{"collects all", Category{Name: "", Type: "other", Budget: Money{Cents: -1}}, []string{"name", "type", "budget_amount"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.c.Validate()
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
