package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/observability"
	"github.com/Aditya290605/Expense-Tracker/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var reportTracer = otel.Tracer("service/report")

// ReportService builds the AI financial report: it assembles the caller's
// records into a prompt and hands it to the text-generation service. The
// generated text is returned verbatim and never stored.
type ReportService struct {
	generator port.TextGenerator
	dashboard *DashboardService
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewReportService creates a new report service.
func NewReportService(generator port.TextGenerator, dashboard *DashboardService, metrics *observability.Metrics, logger *zap.Logger) *ReportService {
	return &ReportService{
		generator: generator,
		dashboard: dashboard,
		metrics:   metrics,
		logger:    logger,
	}
}

// ============================================================
// GenerateReport — POST /report
// ============================================================

func (s *ReportService) GenerateReport(ctx context.Context, userID string) (*domain.ReportResponse, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.GenerateReport")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("report", time.Since(start))
	}()

	income, expense, err := s.dashboard.fetchRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt, err := buildReportPrompt(income, expense)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	genStart := time.Now()
	generated, err := s.generator.Generate(ctx, prompt)
	s.metrics.RecordRequestDuration("textgen", time.Since(genStart))

	if err != nil {
		s.logger.Error("text generation failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		s.metrics.IncrExternalError("textgen")
		return nil, err
	}

	s.metrics.RecordTokens(generated.PromptTokens, generated.CompletionTokens)

	s.logger.Info("report generated",
		zap.String("user_id", userID),
		zap.Int("prompt_tokens", generated.PromptTokens),
		zap.Int("completion_tokens", generated.CompletionTokens),
	)

	return &domain.ReportResponse{
		Report:      generated.Text,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// promptRecord is the trimmed record shape embedded in the prompt. Owner
// and internal ids stay out of it.
type promptRecord struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date"`
}

func buildReportPrompt(income, expense []domain.Record) (string, error) {
	toPrompt := func(records []domain.Record) []promptRecord {
		out := make([]promptRecord, 0, len(records))
		for _, r := range records {
			out = append(out, promptRecord{
				Amount:      r.Amount,
				Category:    r.Category,
				Description: r.Description,
				Date:        r.Date.UTC().Format("2006-01-02"),
			})
		}
		return out
	}

	incomeJSON, err := json.Marshal(toPrompt(income))
	if err != nil {
		return "", err
	}
	expenseJSON, err := json.Marshal(toPrompt(expense))
	if err != nil {
		return "", err
	}

	totalIncome := SumAmounts(income)
	totalExpense := SumAmounts(expense)

	var sb strings.Builder
	sb.WriteString("You are a personal financial advisor. Analyze the following financial data and write a concise report with actionable advice.\n\n")
	fmt.Fprintf(&sb, "Total income: %.2f\n", totalIncome)
	fmt.Fprintf(&sb, "Total expenses: %.2f\n", totalExpense)
	fmt.Fprintf(&sb, "Net balance: %.2f\n\n", totalIncome-totalExpense)
	fmt.Fprintf(&sb, "Income records:\n%s\n\n", incomeJSON)
	fmt.Fprintf(&sb, "Expense records:\n%s\n\n", expenseJSON)
	sb.WriteString("Cover: spending patterns by category, savings rate, and three specific recommendations to improve the balance.")

	return sb.String(), nil
}
