package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"budget/internal/core"
)

func scanCategory(row interface{ Scan(...any) error }) (core.Category, error) {
	var c core.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Budget.Cents, &c.Color, &c.CreatedAt)
	return c, err
}

// CreateCategory inserts a category. Names are unique per user, case
// insensitive; a duplicate maps to core.ErrConflict.
func (s *Store) CreateCategory(ctx context.Context, c core.Category) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name, type, budget_cents, color, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, string(c.Type), c.Budget.Cents, c.Color, createdAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("category named %q: %w", c.Name, core.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetCategory looks up one category scoped to its owner. A category owned
// by another user is reported as not found.
func (s *Store) GetCategory(ctx context.Context, userID, id string) (core.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, type, budget_cents, color, created_at
		 FROM categories WHERE user_id = ? AND id = ?`, userID, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, fmt.Errorf("category %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, type, budget_cents, color, created_at
		 FROM categories WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

// UpdateCategory replaces the mutable attributes of a category.
func (s *Store) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, type = ?, budget_cents = ?, color = ?
		 WHERE user_id = ? AND id = ?`,
		c.Name, string(c.Type), c.Budget.Cents, c.Color, c.UserID, c.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("category named %q: %w", c.Name, core.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", c.ID, core.ErrNotFound)
	}
	return nil
}

// DeleteCategory removes a category with zero linked transactions. With
// linked transactions it fails with CategoryInUseError and changes nothing.
func (s *Store) DeleteCategory(ctx context.Context, userID, id string) error {
	count, err := s.CountTransactionsForCategory(ctx, userID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &core.CategoryInUseError{CategoryID: id, TransactionCount: count}
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *Store) CountTransactionsForCategory(ctx context.Context, userID, id string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = ? AND category_id = ?`,
		userID, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions for category: %w", err)
	}
	return count, nil
}

// BudgetPlan sums the configured category budgets per expense type, used
// by the settings coherence check.
func (s *Store) BudgetPlan(ctx context.Context, userID string) (core.BudgetPlan, error) {
	var plan core.BudgetPlan
	err := s.db.QueryRowContext(ctx,
		`SELECT
		   COALESCE(SUM(CASE WHEN type = 'fixed_expense' THEN budget_cents ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN type = 'variable_expense' THEN budget_cents ELSE 0 END), 0)
		 FROM categories WHERE user_id = ?`, userID).
		Scan(&plan.FixedBudgets.Cents, &plan.VariableBudgets.Cents)
	if err != nil {
		return core.BudgetPlan{}, fmt.Errorf("sum category budgets: %w", err)
	}
	return plan, nil
}
