// Package export appends monthly budget summaries to a Google Sheets
// spreadsheet, one row per computed summary.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"budget/internal/core"
)

// SheetsExporter writes summary rows via the Sheets API. The zero value is
// not usable; construct with NewSheetsExporter.
type SheetsExporter struct {
	service       *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter authenticates with a Service Account and targets one
// spreadsheet tab.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName string) (*SheetsExporter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	if sheetName == "" {
		sheetName = "Summaries"
	}

	service, err := newSheetsService(ctx)
	if err != nil {
		return nil, err
	}

	return &SheetsExporter{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets service using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// AppendSummary appends one row with the summary's headline figures.
func (e *SheetsExporter) AppendSummary(ctx context.Context, userID string, s core.BudgetSummary) error {
	row := summaryRow(userID, s)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	_, err := e.service.Spreadsheets.Values.
		Append(e.spreadsheetID, e.sheetName+"!A:J", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append summary row: %w", err)
	}

	slog.InfoContext(ctx, "Exported budget summary",
		"user_id", userID,
		"month", s.Month,
		"year", s.Year,
		"spreadsheet_id", e.spreadsheetID)
	return nil
}

// summaryRow flattens a summary into the exported column order: user,
// period, salary, goal, expense totals, savings, remaining, usage.
func summaryRow(userID string, s core.BudgetSummary) []any {
	return []any{
		userID,
		fmt.Sprintf("%04d-%02d", s.Year, s.Month),
		s.MonthlySalary.Amount(),
		s.SavingsGoal.Amount(),
		s.TotalIncome.Amount(),
		s.TotalExpenses.Amount(),
		s.ActualSavings.Amount(),
		s.RemainingBudget.Amount(),
		s.BudgetUsagePercentage,
		s.Alerts.OverBudgetCategories,
	}
}
