package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/resilience"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// AuthStore implementation — user rows via PostgREST
// ============================================================

// supabaseUser maps the users table columns.
type supabaseUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Avatar       string `json:"avatar"`
	CreatedAt    string `json:"created_at"`
}

func (u *supabaseUser) toDomain() *domain.User {
	created, _ := time.Parse(time.RFC3339, u.CreatedAt)
	return &domain.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		CreatedAt:    created,
	}
}

// CreateUser inserts a new user row. The caller has already checked for
// duplicates; a unique-email violation still surfaces as an error here.
func (c *Client) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateUser")
	defer span.End()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	data := map[string]any{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"avatar":        user.Avatar,
		"created_at":    user.CreatedAt.Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, usersTable, data)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	var rows []supabaseUser
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if len(rows) == 0 {
		return user, nil // store accepted the row but returned nothing
	}
	return rows[0].toDomain(), nil
}

// GetUserByEmail returns (nil, nil) when no user matches: absence is not
// an error for auth lookups.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetUserByEmail")
	defer span.End()

	path := fmt.Sprintf("%s?email=eq.%s&limit=1", usersTable, url.QueryEscape(email))
	return c.getOneUser(ctx, path)
}

func (c *Client) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetUserByID")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	path := fmt.Sprintf("%s?id=eq.%s&limit=1", usersTable, url.QueryEscape(userID))
	user, err := c.getOneUser(ctx, path)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.ErrNotFound{Resource: "user", ID: userID}
	}
	return user, nil
}

func (c *Client) getOneUser(ctx context.Context, path string) (*domain.User, error) {
	var user *domain.User

	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.withRetry(ctx, func() error {
			body, err := c.doGet(ctx, path)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				user = nil
				return nil
			}

			var rows []supabaseUser
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode users: %w", err)
			}
			if len(rows) == 0 {
				user = nil
				return nil
			}
			user = rows[0].toDomain()
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/users", Err: err}
	}
	return user, nil
}

func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	return resilience.RetryWithBackoff(ctx, c.cfg, fn)
}
