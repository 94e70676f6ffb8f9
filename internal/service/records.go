package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/observability"
	"github.com/Aditya290605/Expense-Tracker/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var recordTracer = otel.Tracer("service/records")

// RecordService handles income and expense records. Records are write-once:
// there is no update or delete path.
type RecordService struct {
	store   port.RecordStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewRecordService creates a new record service.
func NewRecordService(store port.RecordStore, metrics *observability.Metrics, logger *zap.Logger) *RecordService {
	return &RecordService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// ============================================================
// AddIncome — POST /income
// ============================================================

func (s *RecordService) AddIncome(ctx context.Context, userID string, req *domain.CreateRecordRequest) (*domain.CreateRecordResponse, error) {
	rec, err := s.addRecord(ctx, domain.KindIncome, userID, req)
	if err != nil {
		return nil, err
	}
	return &domain.CreateRecordResponse{
		Message: "Income added successfully",
		Income:  rec,
	}, nil
}

// ============================================================
// AddExpense — POST /expense
// ============================================================

func (s *RecordService) AddExpense(ctx context.Context, userID string, req *domain.CreateRecordRequest) (*domain.CreateRecordResponse, error) {
	rec, err := s.addRecord(ctx, domain.KindExpense, userID, req)
	if err != nil {
		return nil, err
	}
	return &domain.CreateRecordResponse{
		Message: "Expense added successfully",
		Expense: rec,
	}, nil
}

func (s *RecordService) addRecord(ctx context.Context, kind domain.RecordKind, userID string, req *domain.CreateRecordRequest) (*domain.Record, error) {
	ctx, span := recordTracer.Start(ctx, "RecordService.AddRecord")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.kind", string(kind)),
		attribute.String("user.id", userID),
	)

	amount, date, errs := validateRecordInput(req)
	if len(errs) > 0 {
		return nil, &domain.ErrInvalidFields{Fields: errs}
	}

	// Owner always comes from the authenticated caller, never the body.
	rec, err := s.store.CreateRecord(ctx, kind, &domain.Record{
		OwnerID:     userID,
		Amount:      amount,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrRecordCreated(string(kind))
	s.logger.Info("record created",
		zap.String("kind", string(kind)),
		zap.String("record_id", rec.ID),
		zap.String("user_id", userID),
	)

	return rec, nil
}

// validateRecordInput checks the creation body and returns the parsed
// amount and date. All field errors are collected so the client sees the
// full list in one round trip.
func validateRecordInput(req *domain.CreateRecordRequest) (float64, time.Time, []domain.FieldError) {
	var errs []domain.FieldError

	amount, err := parseAmount(req.Amount)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "Amount must be a number"})
	}

	if strings.TrimSpace(req.Category) == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "Category is required"})
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "date", Message: "Date must be a valid ISO 8601 date"})
		} else {
			date = parsed
		}
	}

	return amount, date, errs
}

// parseAmount accepts the value shapes the frontend has sent over time:
// JSON numbers, json.Number, and numeric strings. Only finite values pass;
// ParseFloat would otherwise let "NaN" and "Inf" strings through, and a
// single NaN record poisons every aggregate computed over it.
func parseAmount(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", n.String(), err)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", n, err)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("amount has unsupported type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("amount %v is not a finite number", f)
	}
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// ============================================================
// ListIncome — GET /income
// ============================================================

func (s *RecordService) ListIncome(ctx context.Context, userID string) (*domain.IncomeListResponse, error) {
	ctx, span := recordTracer.Start(ctx, "RecordService.ListIncome")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	records, err := s.store.ListRecordsByOwner(ctx, domain.KindIncome, userID)
	if err != nil {
		return nil, err
	}
	return &domain.IncomeListResponse{Income: records}, nil
}

// ============================================================
// ListExpense — GET /expense
// ============================================================

func (s *RecordService) ListExpense(ctx context.Context, userID string) (*domain.ExpenseListResponse, error) {
	ctx, span := recordTracer.Start(ctx, "RecordService.ListExpense")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	records, err := s.store.ListRecordsByOwner(ctx, domain.KindExpense, userID)
	if err != nil {
		return nil, err
	}
	return &domain.ExpenseListResponse{Expenses: records}, nil
}
