package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"budget/internal/core"
)

// TransactionRow is a transaction joined with its category attributes for
// listing endpoints.
type TransactionRow struct {
	Transaction  core.Transaction
	CategoryName string
	CategoryType core.CategoryType
	Color        string
}

// periodBounds returns the half-open [first day, first day of next month)
// date range for a period, in the stored YYYY-MM-DD text form.
func periodBounds(p core.Period) (string, string) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start.Format("2006-01-02"), start.AddDate(0, 1, 0).Format("2006-01-02")
}

func scanTransaction(row interface{ Scan(...any) error }, extra ...any) (core.Transaction, error) {
	var tx core.Transaction
	var date string
	dest := []any{&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Amount.Cents, &tx.Description, &date, &tx.CreatedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return core.Transaction{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	tx.Date = d
	return tx, nil
}

func (s *Store) InsertTransaction(ctx context.Context, tx core.Transaction) error {
	createdAt := tx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, category_id, amount_cents, description, transaction_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.CategoryID, tx.Amount.Cents, tx.Description, tx.Date.String(), createdAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, category_id, amount_cents, description, transaction_date, created_at
		 FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// UpdateTransaction replaces amount, description, category and date in full.
func (s *Store) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category_id = ?, amount_cents = ?, description = ?, transaction_date = ?
		 WHERE user_id = ? AND id = ?`,
		tx.CategoryID, tx.Amount.Cents, tx.Description, tx.Date.String(), tx.UserID, tx.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", tx.ID, core.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// TransactionsForPeriod returns the raw transactions of one user month,
// the input the summary and admission computations work from.
func (s *Store) TransactionsForPeriod(ctx context.Context, userID string, p core.Period) ([]core.Transaction, error) {
	start, end := periodBounds(p)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, category_id, amount_cents, description, transaction_date, created_at
		 FROM transactions
		 WHERE user_id = ? AND transaction_date >= ? AND transaction_date < ?
		 ORDER BY transaction_date, created_at`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// TransactionRowsForPeriod returns the period's transactions joined with
// category name, type and color for the listing API.
func (s *Store) TransactionRowsForPeriod(ctx context.Context, userID string, p core.Period) ([]TransactionRow, error) {
	start, end := periodBounds(p)
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.user_id, t.category_id, t.amount_cents, t.description, t.transaction_date, t.created_at,
		        c.name, c.type, c.color
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id
		 WHERE t.user_id = ? AND t.transaction_date >= ? AND t.transaction_date < ?
		 ORDER BY t.transaction_date DESC, t.created_at DESC`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list transaction rows: %w", err)
	}
	defer rows.Close()

	var out []TransactionRow
	for rows.Next() {
		var r TransactionRow
		tx, err := scanTransaction(rows, &r.CategoryName, &r.CategoryType, &r.Color)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		r.Transaction = tx
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return out, nil
}
