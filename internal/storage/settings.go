package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"budget/internal/core"
)

// GetSettings returns the stored settings for a period, or core.ErrNotFound.
func (s *Store) GetSettings(ctx context.Context, userID string, p core.Period) (core.BudgetSettings, error) {
	var bs core.BudgetSettings
	var isDefault int
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, month, year, monthly_salary_cents, savings_goal_cents, is_default
		 FROM budget_settings WHERE user_id = ? AND month = ? AND year = ?`,
		userID, p.Month, p.Year).
		Scan(&bs.UserID, &bs.Month, &bs.Year, &bs.MonthlySalary.Cents, &bs.SavingsGoal.Cents, &isDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BudgetSettings{}, fmt.Errorf("settings for %d/%d: %w", p.Month, p.Year, core.ErrNotFound)
	}
	if err != nil {
		return core.BudgetSettings{}, fmt.Errorf("get settings: %w", err)
	}
	bs.IsDefault = isDefault != 0
	return bs, nil
}

// EnsureSettings returns the settings for a period, lazily inserting the
// defaults if the row is absent. INSERT OR IGNORE against the (user,
// month, year) primary key makes the check-then-insert race safe: two
// concurrent callers both end up reading the single surviving row.
func (s *Store) EnsureSettings(ctx context.Context, userID string, p core.Period) (core.BudgetSettings, error) {
	def := core.DefaultSettings(userID, p)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO budget_settings
		 (user_id, month, year, monthly_salary_cents, savings_goal_cents, is_default, updated_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?)`,
		userID, p.Month, p.Year, def.MonthlySalary.Cents, def.SavingsGoal.Cents, time.Now().UTC())
	if err != nil {
		return core.BudgetSettings{}, fmt.Errorf("ensure settings: %w", err)
	}
	return s.GetSettings(ctx, userID, p)
}

// UpsertSettings writes explicit values for a period and clears the
// default flag. The flag never flips back.
func (s *Store) UpsertSettings(ctx context.Context, bs core.BudgetSettings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budget_settings
		 (user_id, month, year, monthly_salary_cents, savings_goal_cents, is_default, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?)
		 ON CONFLICT (user_id, month, year) DO UPDATE SET
		   monthly_salary_cents = excluded.monthly_salary_cents,
		   savings_goal_cents = excluded.savings_goal_cents,
		   is_default = 0,
		   updated_at = excluded.updated_at`,
		bs.UserID, bs.Month, bs.Year, bs.MonthlySalary.Cents, bs.SavingsGoal.Cents, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
