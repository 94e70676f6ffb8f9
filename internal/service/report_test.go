package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/observability"
	"github.com/Aditya290605/Expense-Tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mocks ---

type mockTextGenerator struct {
	text       *domain.GeneratedText
	err        error
	lastPrompt string
}

func (m *mockTextGenerator) Generate(_ context.Context, prompt string) (*domain.GeneratedText, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return nil, m.err
	}
	return m.text, nil
}

func newReportService(store *mockRecordStore, gen *mockTextGenerator) *service.ReportService {
	metrics := observability.NewMetrics()
	logger := zap.NewNop()
	dashboard := service.NewDashboardService(store, metrics, logger)
	return service.NewReportService(gen, dashboard, metrics, logger)
}

// --- Tests ---

func TestGenerateReport_Success(t *testing.T) {
	store := newMockRecordStore()
	seedRecords(t, store)
	gen := &mockTextGenerator{
		text: &domain.GeneratedText{
			Text:             "Your savings rate is healthy.",
			PromptTokens:     420,
			CompletionTokens: 120,
		},
	}
	svc := newReportService(store, gen)

	resp, err := svc.GenerateReport(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Your savings rate is healthy.", resp.Report)
	assert.False(t, resp.GeneratedAt.IsZero())

	// the prompt carries the caller's totals and records
	assert.Contains(t, gen.lastPrompt, "Total income: 52000.00")
	assert.Contains(t, gen.lastPrompt, "Total expenses: 15000.00")
	assert.Contains(t, gen.lastPrompt, "Salary")
	assert.Contains(t, gen.lastPrompt, "Rent")

	// other users' data stays out of the prompt
	assert.False(t, strings.Contains(gen.lastPrompt, "777"))
}

func TestGenerateReport_GeneratorError(t *testing.T) {
	store := newMockRecordStore()
	seedRecords(t, store)
	gen := &mockTextGenerator{err: &domain.ErrExternalService{Service: "textgen", Err: errors.New("quota exceeded")}}
	svc := newReportService(store, gen)

	_, err := svc.GenerateReport(context.Background(), "user-1")
	require.Error(t, err)

	var external *domain.ErrExternalService
	assert.ErrorAs(t, err, &external)
}

func TestGenerateReport_StoreError(t *testing.T) {
	store := newMockRecordStore()
	store.err = errors.New("connection refused")
	svc := newReportService(store, &mockTextGenerator{text: &domain.GeneratedText{Text: "x"}})

	_, err := svc.GenerateReport(context.Background(), "user-1")
	assert.Error(t, err)
}
