package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/handler"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/cache"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/observability"
	"github.com/Aditya290605/Expense-Tracker/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- In-memory stores ---

type memAuthStore struct {
	users map[string]*domain.User
}

func (m *memAuthStore) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	stored := *user
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	m.users[stored.Email] = &stored
	return &stored, nil
}

func (m *memAuthStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.users[email], nil
}

func (m *memAuthStore) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "user", ID: userID}
}

type memRecordStore struct {
	records map[domain.RecordKind][]domain.Record
}

func (m *memRecordStore) CreateRecord(_ context.Context, kind domain.RecordKind, rec *domain.Record) (*domain.Record, error) {
	stored := *rec
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	m.records[kind] = append(m.records[kind], stored)
	return &stored, nil
}

func (m *memRecordStore) ListRecordsByOwner(_ context.Context, kind domain.RecordKind, ownerID string) ([]domain.Record, error) {
	out := []domain.Record{}
	for _, r := range m.records[kind] {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter() http.Handler {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	authStore := &memAuthStore{users: make(map[string]*domain.User)}
	recordStore := &memRecordStore{records: make(map[domain.RecordKind][]domain.Record)}

	authSvc := service.NewAuthService(authStore, "test-secret", time.Hour,
		cache.New[*domain.UserInfo](time.Minute), metrics, logger)
	recordSvc := service.NewRecordService(recordStore, metrics, logger)
	dashboardSvc := service.NewDashboardService(recordStore, metrics, logger)

	return handler.NewRouter(handler.Services{
		Auth:      authSvc,
		Records:   recordSvc,
		Dashboard: dashboardSvc,
	}, okPinger{}, metrics, []string{"*"}, logger)
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestHealthz(t *testing.T) {
	rec := doJSON(t, newTestRouter(), http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	rec := doJSON(t, newTestRouter(), http.MethodGet, "/readyz", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	rec := doJSON(t, newTestRouter(), http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	rec := doJSON(t, newTestRouter(), http.MethodGet, "/income", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestProtectedRouteWithGarbageToken(t *testing.T) {
	rec := doJSON(t, newTestRouter(), http.MethodGet, "/income", "not.a.token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestSignupLoginAndRecordFlow(t *testing.T) {
	router := newTestRouter()

	// signup
	rec := doJSON(t, router, http.MethodPost, "/auth/signup", "",
		`{"name":"Ada","email":"ada@example.com","password":"secret123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var auth domain.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &auth); err != nil {
		t.Fatalf("signup: decode response: %v", err)
	}
	if auth.Token == "" {
		t.Fatal("signup: expected a token")
	}

	// login with the same credentials
	rec = doJSON(t, router, http.MethodPost, "/auth/login", "",
		`{"email":"ada@example.com","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}

	// me
	rec = doJSON(t, router, http.MethodGet, "/auth/me", auth.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}

	// add income
	rec = doJSON(t, router, http.MethodPost, "/income", auth.Token,
		`{"amount":50000,"category":"Salary"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add income: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.CreateRecordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("add income: decode response: %v", err)
	}
	if created.Income == nil || created.Income.OwnerID != auth.User.ID {
		t.Fatal("add income: record not stamped with caller's id")
	}

	// list income
	rec = doJSON(t, router, http.MethodGet, "/income", auth.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list income: expected 200, got %d", rec.Code)
	}

	var list domain.IncomeListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("list income: decode response: %v", err)
	}
	if len(list.Income) != 1 {
		t.Fatalf("list income: expected 1 record, got %d", len(list.Income))
	}

	// dashboard
	rec = doJSON(t, router, http.MethodGet, "/dashboard", auth.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", rec.Code)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("dashboard: decode response: %v", err)
	}
	if summary.NetBalance != 50000 {
		t.Errorf("dashboard: expected net balance 50000, got %f", summary.NetBalance)
	}
}

func TestAddIncomeValidationErrorList(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/signup", "",
		`{"name":"Ada","email":"ada@example.com","password":"secret123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}
	var auth domain.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &auth); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(t, router, http.MethodPost, "/income", auth.Token,
		`{"amount":"abc","category":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Errors []domain.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(body.Errors))
	}

	// nothing persisted
	rec = doJSON(t, router, http.MethodGet, "/income", auth.Token, "")
	var list domain.IncomeListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Income) != 0 {
		t.Errorf("expected no records after validation failure, got %d", len(list.Income))
	}
}
