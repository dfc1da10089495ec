// Package services orchestrates the budget domain across storage and AMQP.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budget/internal/core"
	"budget/internal/storage"

	"github.com/google/uuid"
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u core.User) error
	GetUser(ctx context.Context, id string) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
}

// CategoryStore persists category definitions.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c core.Category) error
	GetCategory(ctx context.Context, userID, id string) (core.Category, error)
	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, userID, id string) error
	BudgetPlan(ctx context.Context, userID string) (core.BudgetPlan, error)
}

// TransactionStore persists recorded transactions.
type TransactionStore interface {
	InsertTransaction(ctx context.Context, tx core.Transaction) error
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, tx core.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
	TransactionsForPeriod(ctx context.Context, userID string, p core.Period) ([]core.Transaction, error)
	TransactionRowsForPeriod(ctx context.Context, userID string, p core.Period) ([]storage.TransactionRow, error)
}

// SettingsStore persists per-period budget settings.
type SettingsStore interface {
	GetSettings(ctx context.Context, userID string, p core.Period) (core.BudgetSettings, error)
	EnsureSettings(ctx context.Context, userID string, p core.Period) (core.BudgetSettings, error)
	UpsertSettings(ctx context.Context, bs core.BudgetSettings) error
}

// Store is the full persistence surface the service needs. *storage.Store
// satisfies it.
type Store interface {
	UserStore
	CategoryStore
	TransactionStore
	SettingsStore
}

// AlertPublisher pushes budget-alert events to the message broker. May be
// nil when no broker is configured.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, userID string, p core.Period, transactionID string, warnings []string) error
}

// BudgetService orchestrates budget operations across storage and AMQP.
type BudgetService struct {
	store     Store
	publisher AlertPublisher
	now       func() time.Time
}

func NewBudgetService(store Store, publisher AlertPublisher) *BudgetService {
	return &BudgetService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// defaultCategories is seeded for every new account.
var defaultCategories = []struct {
	name        string
	ctype       core.CategoryType
	budgetCents int64
	color       string
}{
	{"Housing", core.FixedExpense, 70000, "#e74c3c"},
	{"Car loan", core.FixedExpense, 20000, "#c0392b"},
	{"Insurance", core.FixedExpense, 10000, "#d35400"},
	{"Phone & Internet", core.FixedExpense, 5000, "#e67e22"},
	{"Groceries", core.VariableExpense, 30000, "#27ae60"},
	{"Transport", core.VariableExpense, 10000, "#16a085"},
	{"Leisure", core.VariableExpense, 15000, "#2980b9"},
	{"Health", core.VariableExpense, 5000, "#8e44ad"},
	{"Clothing", core.VariableExpense, 5000, "#34495e"},
	{"Salary", core.Income, 0, "#f1c40f"},
	{"Bonuses", core.Income, 0, "#f39c12"},
	{"Monthly Savings", core.Savings, 80000, "#2ecc71"},
}

// RegisterUser creates an account and seeds its default categories.
func (s *BudgetService) RegisterUser(ctx context.Context, email, name string) (core.User, error) {
	var errs core.ValidationErrors
	if email == "" {
		errs = append(errs, core.FieldError{Field: "email", Message: "is required"})
	}
	if name == "" {
		errs = append(errs, core.FieldError{Field: "name", Message: "is required"})
	}
	if err := errs.OrNil(); err != nil {
		return core.User{}, err
	}

	u := core.User{ID: uuid.NewString(), Email: email, Name: name, CreatedAt: s.now().UTC()}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return core.User{}, err
	}

	for _, dc := range defaultCategories {
		c := core.Category{
			ID:     uuid.NewString(),
			UserID: u.ID,
			Name:   dc.name,
			Type:   dc.ctype,
			Budget: core.Money{Cents: dc.budgetCents},
			Color:  dc.color,
		}
		if err := s.store.CreateCategory(ctx, c); err != nil {
			return core.User{}, fmt.Errorf("seed category %q: %w", dc.name, err)
		}
	}

	slog.InfoContext(ctx, "User registered", "user_id", u.ID, "categories_seeded", len(defaultCategories))
	return u, nil
}

func (s *BudgetService) GetUser(ctx context.Context, id string) (core.User, error) {
	return s.store.GetUser(ctx, id)
}

// CategoryInput is a category create/update request after decoding.
type CategoryInput struct {
	Name        string
	Type        core.CategoryType
	BudgetCents int64
	Color       string
}

func (s *BudgetService) CreateCategory(ctx context.Context, userID string, in CategoryInput) (core.Category, error) {
	c := core.Category{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   in.Name,
		Type:   in.Type,
		Budget: core.Money{Cents: in.BudgetCents},
		Color:  in.Color,
	}
	if err := c.Validate().OrNil(); err != nil {
		return core.Category{}, err
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return core.Category{}, err
	}
	return c, nil
}

func (s *BudgetService) UpdateCategory(ctx context.Context, userID, id string, in CategoryInput) (core.Category, error) {
	existing, err := s.store.GetCategory(ctx, userID, id)
	if err != nil {
		return core.Category{}, err
	}
	existing.Name = in.Name
	existing.Type = in.Type
	existing.Budget = core.Money{Cents: in.BudgetCents}
	existing.Color = in.Color
	if err := existing.Validate().OrNil(); err != nil {
		return core.Category{}, err
	}
	if err := s.store.UpdateCategory(ctx, existing); err != nil {
		return core.Category{}, err
	}
	return existing, nil
}

func (s *BudgetService) DeleteCategory(ctx context.Context, userID, id string) error {
	return s.store.DeleteCategory(ctx, userID, id)
}

func (s *BudgetService) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	return s.store.ListCategories(ctx, userID)
}

// BudgetInfo is the budget position attached to a successful admission,
// computed after the transaction is stored.
type BudgetInfo struct {
	MonthlySalary   core.Money `json:"monthlySalary"`
	SavingsGoal     core.Money `json:"savingsGoal"`
	RemainingBudget core.Money `json:"remainingBudget"`
	TotalExpenses   core.Money `json:"totalExpenses"`
}

// AdmissionResult is what a successful transaction creation returns.
type AdmissionResult struct {
	Transaction core.Transaction
	BudgetInfo  BudgetInfo
	Warnings    []string
}

// CreateTransaction runs the full admission flow: structural validation,
// category ownership check, lazy settings creation, advisory warnings,
// insert, and the post-insert budget position. Warnings never block a
// structurally valid transaction.
func (s *BudgetService) CreateTransaction(ctx context.Context, userID string, c core.TransactionCandidate) (AdmissionResult, error) {
	if err := core.ValidateTransaction(c, s.now()).OrNil(); err != nil {
		return AdmissionResult{}, err
	}

	category, err := s.store.GetCategory(ctx, userID, c.CategoryID)
	if err != nil {
		return AdmissionResult{}, err
	}

	p := core.PeriodOf(c.Date)
	settings, err := s.store.EnsureSettings(ctx, userID, p)
	if err != nil {
		return AdmissionResult{}, err
	}

	txs, err := s.store.TransactionsForPeriod(ctx, userID, p)
	if err != nil {
		return AdmissionResult{}, err
	}
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return AdmissionResult{}, err
	}

	warnings := core.AdvisoryWarnings(c, periodStateFor(settings, category, categories, txs))

	tx := core.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		CategoryID:  c.CategoryID,
		Amount:      c.Amount,
		Description: c.Description,
		Date:        c.Date,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		return AdmissionResult{}, err
	}

	summary := core.ComputeSummary(settings, categories, append(txs, tx))
	result := AdmissionResult{
		Transaction: tx,
		BudgetInfo: BudgetInfo{
			MonthlySalary:   summary.MonthlySalary,
			SavingsGoal:     summary.SavingsGoal,
			RemainingBudget: summary.RemainingBudget,
			TotalExpenses:   summary.TotalExpenses,
		},
		Warnings: warnings,
	}

	if len(warnings) > 0 {
		s.publishAlert(ctx, userID, p, tx.ID, warnings)
	}

	return result, nil
}

// periodStateFor derives the pre-admission budget position from the
// period's stored transactions.
func periodStateFor(settings core.BudgetSettings, category core.Category, categories []core.Category, txs []core.Transaction) core.PeriodState {
	types := make(map[string]core.CategoryType, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}

	ps := core.PeriodState{Settings: settings, Category: category}
	for _, tx := range txs {
		switch types[tx.CategoryID] {
		case core.FixedExpense, core.VariableExpense:
			ps.TotalExpenses.Cents += tx.Amount.Cents
		case core.Savings:
			ps.ActualSavings.Cents += tx.Amount.Cents
		}
		if tx.CategoryID == category.ID {
			ps.CategorySpent.Cents += tx.Amount.Cents
		}
	}
	return ps
}

func (s *BudgetService) publishAlert(ctx context.Context, userID string, p core.Period, txID string, warnings []string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping budget alert")
		return
	}
	// The transaction is already stored; a failed publish must not fail
	// the request.
	if err := s.publisher.PublishBudgetAlert(ctx, userID, p, txID, warnings); err != nil {
		slog.ErrorContext(ctx, "Failed to publish budget alert",
			"user_id", userID, "transaction_id", txID, "error", err)
	}
}

// UpdateTransaction fully replaces amount, description, category and date.
// Updates carry no advisory warnings.
func (s *BudgetService) UpdateTransaction(ctx context.Context, userID, id string, c core.TransactionCandidate) (core.Transaction, error) {
	if err := core.ValidateTransaction(c, s.now()).OrNil(); err != nil {
		return core.Transaction{}, err
	}
	if _, err := s.store.GetCategory(ctx, userID, c.CategoryID); err != nil {
		return core.Transaction{}, err
	}
	existing, err := s.store.GetTransaction(ctx, userID, id)
	if err != nil {
		return core.Transaction{}, err
	}

	existing.CategoryID = c.CategoryID
	existing.Amount = c.Amount
	existing.Description = c.Description
	existing.Date = c.Date
	if err := s.store.UpdateTransaction(ctx, existing); err != nil {
		return core.Transaction{}, err
	}
	return existing, nil
}

func (s *BudgetService) DeleteTransaction(ctx context.Context, userID, id string) error {
	return s.store.DeleteTransaction(ctx, userID, id)
}

// TransactionsForPeriod lists the period's transactions joined with their
// category attributes.
func (s *BudgetService) TransactionsForPeriod(ctx context.Context, userID string, p core.Period) ([]storage.TransactionRow, error) {
	if err := p.Validate().OrNil(); err != nil {
		return nil, err
	}
	return s.store.TransactionRowsForPeriod(ctx, userID, p)
}

// Summary computes the monthly budget view. Settings are lazily created
// so an untouched period reports the defaults.
func (s *BudgetService) Summary(ctx context.Context, userID string, p core.Period) (core.BudgetSummary, error) {
	if err := p.Validate().OrNil(); err != nil {
		return core.BudgetSummary{}, err
	}
	settings, err := s.store.EnsureSettings(ctx, userID, p)
	if err != nil {
		return core.BudgetSummary{}, err
	}
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return core.BudgetSummary{}, err
	}
	txs, err := s.store.TransactionsForPeriod(ctx, userID, p)
	if err != nil {
		return core.BudgetSummary{}, err
	}
	return core.ComputeSummary(settings, categories, txs), nil
}

// SettingsResult pairs stored settings with the coherence warnings of the
// write that produced them.
type SettingsResult struct {
	Settings core.BudgetSettings
	Warnings []string
}

func (s *BudgetService) GetSettings(ctx context.Context, userID string, p core.Period) (core.BudgetSettings, error) {
	if err := p.Validate().OrNil(); err != nil {
		return core.BudgetSettings{}, err
	}
	return s.store.EnsureSettings(ctx, userID, p)
}

// UpdateSettings validates and writes explicit salary/savings-goal values
// for a period, clearing the default flag.
func (s *BudgetService) UpdateSettings(ctx context.Context, userID string, p core.Period, in core.SettingsInput) (SettingsResult, error) {
	if err := p.Validate().OrNil(); err != nil {
		return SettingsResult{}, err
	}

	plan, err := s.store.BudgetPlan(ctx, userID)
	if err != nil {
		return SettingsResult{}, err
	}
	errs, warnings := core.ValidateSettings(in, &plan)
	if err := errs.OrNil(); err != nil {
		return SettingsResult{}, err
	}

	bs := core.BudgetSettings{
		UserID:        userID,
		Month:         p.Month,
		Year:          p.Year,
		MonthlySalary: in.MonthlySalary,
		SavingsGoal:   in.SavingsGoal,
	}
	if err := s.store.UpsertSettings(ctx, bs); err != nil {
		return SettingsResult{}, err
	}
	return SettingsResult{Settings: bs, Warnings: warnings}, nil
}
