package domain

// ============================================================
// Auth — Request / Response types (matches frontend API contract)
// ============================================================

// SignupRequest is the body for POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body returned by signup (201) and login (200).
// The token is a stateless HS256 access token; the frontend keeps it in
// local storage and sends it as `Authorization: Bearer <token>`.
type AuthResponse struct {
	Message string    `json:"message"`
	User    *UserInfo `json:"user"`
	Token   string    `json:"token"`
}

// MeResponse is the body for GET /auth/me.
type MeResponse struct {
	User *UserInfo `json:"user"`
}
