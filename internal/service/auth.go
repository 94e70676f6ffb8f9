// Package service — AuthService handles signup, login, JWT token
// management and authenticated-user lookup.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
	"github.com/Aditya290605/Expense-Tracker/internal/infra/observability"
	"github.com/Aditya290605/Expense-Tracker/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authTracer = otel.Tracer("service/auth")

const (
	bcryptCost        = 12
	minPasswordLength = 6
)

// AuthService orchestrates authentication flows.
type AuthService struct {
	store     port.AuthStore
	jwtSecret []byte
	tokenTTL  time.Duration
	cache     port.Cache[*domain.UserInfo]
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store port.AuthStore, jwtSecret string, tokenTTL time.Duration, cache port.Cache[*domain.UserInfo], metrics *observability.Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// ============================================================
// Signup — POST /auth/signup
// ============================================================

func (s *AuthService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AuthResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Signup")
	defer span.End()

	if errs := validateSignup(req); len(errs) > 0 {
		return nil, &domain.ErrInvalidFields{Fields: errs}
	}

	email := normalizeEmail(req.Email)

	// Check if email already registered
	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, &domain.ErrConflict{Message: "Email already registered"}
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.signAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return &domain.AuthResponse{
		Message: "User registered successfully",
		User:    user.Public(),
		Token:   token,
	}, nil
}

func validateSignup(req *domain.SignupRequest) []domain.FieldError {
	var errs []domain.FieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "Name is required"})
	}
	email := normalizeEmail(req.Email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "A valid email is required"})
	}
	if len(req.Password) < minPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ============================================================
// Login — POST /auth/login
// ============================================================

func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, &domain.ErrUnauthorized{Message: "Invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login: failed password attempt",
			zap.String("user_id", user.ID),
		)
		return nil, &domain.ErrUnauthorized{Message: "Invalid credentials"}
	}

	token, err := s.signAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))

	return &domain.AuthResponse{
		Message: "Login successful",
		User:    user.Public(),
		Token:   token,
	}, nil
}

// ============================================================
// CurrentUser — GET /auth/me
// ============================================================

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.MeResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.CurrentUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if cached, ok := s.cache.Get(userID); ok {
		s.metrics.IncrCacheHit("profile")
		return &domain.MeResponse{User: cached}, nil
	}
	s.metrics.IncrCacheMiss("profile")

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := user.Public()
	s.cache.Set(userID, info)

	return &domain.MeResponse{User: info}, nil
}

// ============================================================
// ValidateToken — used by middleware
// ============================================================

// JWTClaims represents the custom claims in access tokens.
type JWTClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

func (s *AuthService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "Invalid or expired token"}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "Invalid token"}
	}

	if claims.Type != "access" {
		return nil, &domain.ErrUnauthorized{Message: "Invalid token type"}
	}

	return claims, nil
}

// ============================================================
// Internal helpers
// ============================================================

func (s *AuthService) signAccessToken(userID, email string) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Sub:   userID,
		Email: email,
		Type:  "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Issuer:    "fintrack-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
