package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// RecordStore implementation — income/expense rows via PostgREST
// ============================================================

// supabaseRecord maps the income_records / expense_records columns.
// Both tables share the same shape.
type supabaseRecord struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
}

func (r *supabaseRecord) toDomain() domain.Record {
	date, _ := time.Parse(time.RFC3339, r.Date)
	if date.IsZero() {
		date, _ = time.Parse("2006-01-02", r.Date)
	}
	created, _ := time.Parse(time.RFC3339, r.CreatedAt)
	return domain.Record{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        date,
		CreatedAt:   created,
	}
}

func tableFor(kind domain.RecordKind) string {
	if kind == domain.KindIncome {
		return incomeTable
	}
	return expenseTable
}

// CreateRecord inserts a record into the collection for kind. The owner id
// on the record comes from the authenticated caller, never from the body.
func (c *Client) CreateRecord(ctx context.Context, kind domain.RecordKind, rec *domain.Record) (*domain.Record, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateRecord")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.kind", string(kind)),
		attribute.String("user.id", rec.OwnerID),
	)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	data := map[string]any{
		"id":          rec.ID,
		"owner_id":    rec.OwnerID,
		"amount":      rec.Amount,
		"category":    rec.Category,
		"description": rec.Description,
		"date":        rec.Date.Format(time.RFC3339),
		"created_at":  rec.CreatedAt.Format(time.RFC3339),
	}

	var created *domain.Record

	_, err := c.cb.Execute(func() (any, error) {
		body, err := c.doPost(ctx, tableFor(kind), data)
		if err != nil {
			return nil, err
		}

		var rows []supabaseRecord
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode %s: %w", tableFor(kind), err)
		}
		if len(rows) > 0 {
			r := rows[0].toDomain()
			created = &r
		} else {
			created = rec
		}
		return nil, nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/" + tableFor(kind), Err: err}
	}

	return created, nil
}

// ListRecordsByOwner returns the owner's records for kind sorted by date
// descending. The owner filter is applied store-side; no request parameter
// can widen it.
func (c *Client) ListRecordsByOwner(ctx context.Context, kind domain.RecordKind, ownerID string) ([]domain.Record, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListRecordsByOwner")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.kind", string(kind)),
		attribute.String("user.id", ownerID),
	)

	var records []domain.Record

	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.withRetry(ctx, func() error {
			path := fmt.Sprintf("%s?owner_id=eq.%s&order=date.desc", tableFor(kind), url.QueryEscape(ownerID))
			body, err := c.doGet(ctx, path)
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				records = []domain.Record{}
				return nil
			}

			var rows []supabaseRecord
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode %s: %w", tableFor(kind), err)
			}

			records = make([]domain.Record, 0, len(rows))
			for _, r := range rows {
				records = append(records, r.toDomain())
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/" + tableFor(kind), Err: err}
	}

	return records, nil
}
