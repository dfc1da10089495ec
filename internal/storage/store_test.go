package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"budget/internal/core"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store) core.User {
	t.Helper()
	u := core.User{ID: uuid.NewString(), Email: uuid.NewString() + "@example.com", Name: "Test"}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createTestCategory(t *testing.T, s *Store, userID, name string, ct core.CategoryType, budgetCents int64) core.Category {
	t.Helper()
	c := core.Category{
		ID: uuid.NewString(), UserID: userID, Name: name, Type: ct,
		Budget: core.Money{Cents: budgetCents}, Color: "#336699",
	}
	if err := s.CreateCategory(context.Background(), c); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func TestUsers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := core.User{ID: uuid.NewString(), Email: "mario@example.com", Name: "Mario"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != u.Email || got.Name != u.Name {
		t.Fatalf("got %+v", got)
	}

	byEmail, err := s.GetUserByEmail(ctx, "MARIO@example.com")
	if err != nil {
		t.Fatalf("get by email should be case-insensitive: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("got %+v", byEmail)
	}

	dup := core.User{ID: uuid.NewString(), Email: u.Email, Name: "Other"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("duplicate email should conflict, got %v", err)
	}

	if _, err := s.GetUser(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s)

	c := createTestCategory(t, s, u.ID, "Groceries", core.VariableExpense, 25000)

	got, err := s.GetCategory(ctx, u.ID, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Groceries" || got.Type != core.VariableExpense || got.Budget.Cents != 25000 {
		t.Fatalf("got %+v", got)
	}

	// Names are unique per user regardless of case.
	dup := core.Category{ID: uuid.NewString(), UserID: u.ID, Name: "groceries", Type: core.VariableExpense}
	if err := s.CreateCategory(ctx, dup); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("duplicate name should conflict, got %v", err)
	}

	// A second user can reuse the name.
	other := createTestUser(t, s)
	createTestCategory(t, s, other.ID, "Groceries", core.VariableExpense, 10000)

	// Cross-user lookup reports not found.
	if _, err := s.GetCategory(ctx, other.ID, c.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found across users, got %v", err)
	}

	c.Budget = core.Money{Cents: 30000}
	c.Name = "Food"
	if err := s.UpdateCategory(ctx, c); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.GetCategory(ctx, u.ID, c.ID)
	if got.Name != "Food" || got.Budget.Cents != 30000 {
		t.Fatalf("update not applied: %+v", got)
	}

	list, err := s.ListCategories(ctx, u.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}
}

func TestDeleteCategoryWithTransactions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s)
	c := createTestCategory(t, s, u.ID, "Groceries", core.VariableExpense, 25000)

	tx := core.Transaction{
		ID: uuid.NewString(), UserID: u.ID, CategoryID: c.ID,
		Amount: core.Money{Cents: 6550}, Date: core.NewDate(2025, 6, 10),
	}
	if err := s.InsertTransaction(ctx, tx); err != nil {
		t.Fatalf("insert tx: %v", err)
	}

	err := s.DeleteCategory(ctx, u.ID, c.ID)
	var inUse *core.CategoryInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("expected in-use error, got %v", err)
	}
	if inUse.TransactionCount != 1 {
		t.Fatalf("count = %d", inUse.TransactionCount)
	}

	if err := s.DeleteTransaction(ctx, u.ID, tx.ID); err != nil {
		t.Fatalf("delete tx: %v", err)
	}
	if err := s.DeleteCategory(ctx, u.ID, c.ID); err != nil {
		t.Fatalf("delete after unlink: %v", err)
	}
}

func TestTransactionsForPeriod(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s)
	c := createTestCategory(t, s, u.ID, "Groceries", core.VariableExpense, 25000)

	dates := []core.Date{
		core.NewDate(2025, 5, 31),
		core.NewDate(2025, 6, 1),
		core.NewDate(2025, 6, 30),
		core.NewDate(2025, 7, 1),
	}
	for _, d := range dates {
		tx := core.Transaction{
			ID: uuid.NewString(), UserID: u.ID, CategoryID: c.ID,
			Amount: core.Money{Cents: 1000}, Date: d,
		}
		if err := s.InsertTransaction(ctx, tx); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	txs, err := s.TransactionsForPeriod(ctx, u.ID, core.Period{Month: 6, Year: 2025})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 june transactions, got %d", len(txs))
	}
	for _, tx := range txs {
		if !tx.Date.In(core.Period{Month: 6, Year: 2025}) {
			t.Fatalf("out-of-period transaction %s", tx.Date)
		}
	}

	rows, err := s.TransactionRowsForPeriod(ctx, u.ID, core.Period{Month: 6, Year: 2025})
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 || rows[0].CategoryName != "Groceries" || rows[0].CategoryType != core.VariableExpense {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestUpdateTransaction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s)
	c1 := createTestCategory(t, s, u.ID, "Groceries", core.VariableExpense, 25000)
	c2 := createTestCategory(t, s, u.ID, "Leisure", core.VariableExpense, 15000)

	tx := core.Transaction{
		ID: uuid.NewString(), UserID: u.ID, CategoryID: c1.ID,
		Amount: core.Money{Cents: 6550}, Description: "old", Date: core.NewDate(2025, 6, 10),
	}
	if err := s.InsertTransaction(ctx, tx); err != nil {
		t.Fatalf("insert: %v", err)
	}

	tx.CategoryID = c2.ID
	tx.Amount = core.Money{Cents: 9900}
	tx.Description = "new"
	tx.Date = core.NewDate(2025, 6, 12)
	if err := s.UpdateTransaction(ctx, tx); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetTransaction(ctx, u.ID, tx.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CategoryID != c2.ID || got.Amount.Cents != 9900 || got.Description != "new" || got.Date.String() != "2025-06-12" {
		t.Fatalf("got %+v", got)
	}

	missing := tx
	missing.ID = uuid.NewString()
	if err := s.UpdateTransaction(ctx, missing); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSettingsLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s)
	p := core.Period{Month: 6, Year: 2025}

	if _, err := s.GetSettings(ctx, u.ID, p); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found before ensure, got %v", err)
	}

	got, err := s.EnsureSettings(ctx, u.ID, p)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if got.MonthlySalary.Cents != 275000 || got.SavingsGoal.Cents != 80000 || !got.IsDefault {
		t.Fatalf("defaults = %+v", got)
	}

	// Ensure is idempotent and does not clobber explicit values.
	explicit := core.BudgetSettings{
		UserID: u.ID, Month: p.Month, Year: p.Year,
		MonthlySalary: core.Money{Cents: 300000}, SavingsGoal: core.Money{Cents: 100000},
	}
	if err := s.UpsertSettings(ctx, explicit); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err = s.EnsureSettings(ctx, u.ID, p)
	if err != nil {
		t.Fatalf("ensure after upsert: %v", err)
	}
	if got.MonthlySalary.Cents != 300000 || got.IsDefault {
		t.Fatalf("ensure clobbered explicit settings: %+v", got)
	}

	// Re-upserting keeps the flag cleared.
	explicit.SavingsGoal = core.Money{Cents: 90000}
	if err := s.UpsertSettings(ctx, explicit); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, _ = s.GetSettings(ctx, u.ID, p)
	if got.SavingsGoal.Cents != 90000 || got.IsDefault {
		t.Fatalf("got %+v", got)
	}
}

func TestBudgetPlan(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, s)
	createTestCategory(t, s, u.ID, "Housing", core.FixedExpense, 80000)
	createTestCategory(t, s, u.ID, "Insurance", core.FixedExpense, 15000)
	createTestCategory(t, s, u.ID, "Groceries", core.VariableExpense, 25000)
	createTestCategory(t, s, u.ID, "Salary", core.Income, 0)

	plan, err := s.BudgetPlan(ctx, u.ID)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan.FixedBudgets.Cents != 95000 || plan.VariableBudgets.Cents != 25000 {
		t.Fatalf("plan = %+v", plan)
	}
}
