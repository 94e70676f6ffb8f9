package handler

import (
	"net/http"
	"strconv"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Dashboard & filtered transactions
// ============================================================

func dashboardHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /dashboard")
		defer span.End()

		summary, err := svc.GetDashboard(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func listTransactionsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /transactions")
		defer span.End()

		filter, err := parseTransactionFilter(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		resp, err := svc.ListTransactions(ctx, UserIDFromContext(ctx), filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func parseTransactionFilter(r *http.Request) (*domain.TransactionFilter, error) {
	q := r.URL.Query()
	filter := &domain.TransactionFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
		From:     q.Get("from"),
		To:       q.Get("to"),
	}

	switch t := q.Get("type"); t {
	case "":
	case string(domain.KindIncome):
		filter.Type = domain.KindIncome
	case string(domain.KindExpense):
		filter.Type = domain.KindExpense
	default:
		return nil, &domain.ErrValidation{Field: "type", Message: "must be 'income' or 'expense'"}
	}

	if v := q.Get("min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "min", Message: "must be a number"}
		}
		filter.MinAmount = &f
	}
	if v := q.Get("max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "max", Message: "must be a number"}
		}
		filter.MaxAmount = &f
	}

	return filter, nil
}
