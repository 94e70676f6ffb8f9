package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/observability"
	"github.com/Aditya290605/Expense-Tracker/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var dashboardTracer = otel.Tracer("service/dashboard")

const recentTransactionCount = 5

// DashboardService computes the aggregated views over a user's records.
type DashboardService struct {
	store   port.RecordStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store port.RecordStore, metrics *observability.Metrics, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// fetchRecords loads the caller's income and expense sets concurrently.
// A failure on either side fails the whole call: a summary computed over a
// silently-empty set would be wrong, not degraded.
func (s *DashboardService) fetchRecords(ctx context.Context, userID string) (income, expense []domain.Record, err error) {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := s.store.ListRecordsByOwner(gCtx, domain.KindIncome, userID)
		if err != nil {
			s.logger.Error("failed to fetch income records",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			s.metrics.IncrExternalError("income")
			return fmt.Errorf("income fetch: %w", err)
		}
		income = recs
		return nil
	})

	g.Go(func() error {
		recs, err := s.store.ListRecordsByOwner(gCtx, domain.KindExpense, userID)
		if err != nil {
			s.logger.Error("failed to fetch expense records",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			s.metrics.IncrExternalError("expense")
			return fmt.Errorf("expense fetch: %w", err)
		}
		expense = recs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return income, expense, nil
}

// ============================================================
// GetDashboard — GET /dashboard
// ============================================================

func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.GetDashboard")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("dashboard", time.Since(start))
	}()

	income, expense, err := s.fetchRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		TotalIncome:        SumAmounts(income),
		TotalExpense:       SumAmounts(expense),
		NetBalance:         NetBalance(income, expense),
		CategoryBreakdown:  CategoryBreakdown(expense),
		DailyExpenses:      DailyTotals(expense),
		MonthlyTrend:       MonthlyTrend(income, expense),
		RecentTransactions: RecentTransactions(income, expense, recentTransactionCount),
	}, nil
}

// ============================================================
// ListTransactions — GET /transactions
// ============================================================

func (s *DashboardService) ListTransactions(ctx context.Context, userID string, filter *domain.TransactionFilter) (*domain.TransactionListResponse, error) {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.ListTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	income, expense, err := s.fetchRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := MergeTransactions(income, expense)
	matched := FilterTransactions(merged, filter)

	return &domain.TransactionListResponse{
		Transactions: matched,
		Total:        len(merged),
		Matched:      len(matched),
	}, nil
}
