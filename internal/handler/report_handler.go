package handler

import (
	"net/http"

	"github.com/Aditya290605/Expense-Tracker/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// AI financial report
// ============================================================

func generateReportHandler(svc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /report")
		defer span.End()

		resp, err := svc.GenerateReport(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
