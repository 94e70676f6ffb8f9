package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/observability"
	"github.com/Aditya290605/Expense-Tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedRecords(t *testing.T, store *mockRecordStore) {
	t.Helper()
	seed := []struct {
		kind domain.RecordKind
		rec  domain.Record
	}{
		{domain.KindIncome, domain.Record{OwnerID: "user-1", Amount: 50000, Category: "Salary", Date: day("2026-08-01")}},
		{domain.KindIncome, domain.Record{OwnerID: "user-1", Amount: 2000, Category: "Interest", Date: day("2026-07-15")}},
		{domain.KindExpense, domain.Record{OwnerID: "user-1", Amount: 12000, Category: "Rent", Date: day("2026-08-02")}},
		{domain.KindExpense, domain.Record{OwnerID: "user-1", Amount: 3000, Category: "Food", Date: day("2026-08-10")}},
		{domain.KindExpense, domain.Record{OwnerID: "user-2", Amount: 777, Category: "Other", Date: day("2026-08-03")}},
	}
	for _, s := range seed {
		rec := s.rec
		_, err := store.CreateRecord(context.Background(), s.kind, &rec)
		require.NoError(t, err)
	}
}

func TestGetDashboard(t *testing.T) {
	store := newMockRecordStore()
	seedRecords(t, store)
	svc := service.NewDashboardService(store, observability.NewMetrics(), zap.NewNop())

	summary, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 52000.0, summary.TotalIncome)
	assert.Equal(t, 15000.0, summary.TotalExpense)
	assert.Equal(t, 37000.0, summary.NetBalance)

	require.Len(t, summary.CategoryBreakdown, 2)
	assert.Equal(t, "Rent", summary.CategoryBreakdown[0].Category)

	require.Len(t, summary.MonthlyTrend, 2)
	assert.Equal(t, "2026-07", summary.MonthlyTrend[0].Month)

	// other users' records never leak into the summary
	for _, tx := range summary.RecentTransactions {
		assert.Equal(t, "user-1", tx.OwnerID)
	}
}

func TestGetDashboard_EmptyRecordSet(t *testing.T) {
	svc := service.NewDashboardService(newMockRecordStore(), observability.NewMetrics(), zap.NewNop())

	summary, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.TotalIncome)
	assert.Equal(t, 0.0, summary.NetBalance)
	assert.Empty(t, summary.CategoryBreakdown)
	assert.Empty(t, summary.RecentTransactions)
}

func TestGetDashboard_StoreErrorFailsRequest(t *testing.T) {
	store := newMockRecordStore()
	store.err = errors.New("connection refused")
	svc := service.NewDashboardService(store, observability.NewMetrics(), zap.NewNop())

	_, err := svc.GetDashboard(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestListTransactions_FilterAndCounts(t *testing.T) {
	store := newMockRecordStore()
	seedRecords(t, store)
	svc := service.NewDashboardService(store, observability.NewMetrics(), zap.NewNop())

	resp, err := svc.ListTransactions(context.Background(), "user-1", &domain.TransactionFilter{
		Type: domain.KindExpense,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 2, resp.Matched)
	for _, tx := range resp.Transactions {
		assert.Equal(t, domain.KindExpense, tx.Type)
		assert.Equal(t, "user-1", tx.OwnerID)
	}
}
