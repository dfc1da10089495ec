// Package worker processes budget-alert messages off the queue.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"budget/internal/amqp"
	"budget/internal/core"
)

// SummaryReader recomputes a period's summary from current store state.
type SummaryReader interface {
	Summary(ctx context.Context, userID string, p core.Period) (core.BudgetSummary, error)
}

// SummaryExporter pushes a summary to an external destination. May be nil
// when no exporter is configured.
type SummaryExporter interface {
	AppendSummary(ctx context.Context, userID string, s core.BudgetSummary) error
}

// AlertWorker recomputes the affected period's summary for every alert and
// optionally exports it.
type AlertWorker struct {
	summaries SummaryReader
	exporter  SummaryExporter
}

func NewAlertWorker(summaries SummaryReader, exporter SummaryExporter) *AlertWorker {
	return &AlertWorker{
		summaries: summaries,
		exporter:  exporter,
	}
}

// HandleAlert processes one budget-alert message. The summary is computed
// fresh rather than trusted from the message, since more transactions may
// have landed since the alert was published.
func (w *AlertWorker) HandleAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	summary, err := w.summaries.Summary(ctx, msg.UserID, msg.Period())
	if err != nil {
		return fmt.Errorf("recompute summary: %w", err)
	}

	slog.InfoContext(ctx, "Budget alert",
		"user_id", msg.UserID,
		"transaction_id", msg.TransactionID,
		"month", msg.Month,
		"year", msg.Year,
		"warnings", msg.Warnings,
		"remaining_budget_cents", summary.RemainingBudget.Cents,
		"budget_exceeded", summary.Alerts.BudgetExceeded,
		"over_budget_categories", summary.Alerts.OverBudgetCategories)

	if w.exporter == nil {
		return nil
	}
	if err := w.exporter.AppendSummary(ctx, msg.UserID, summary); err != nil {
		// Export is best effort; the alert itself is already logged.
		slog.ErrorContext(ctx, "Failed to export summary",
			"user_id", msg.UserID, "error", err)
	}
	return nil
}
