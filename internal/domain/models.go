// Package domain holds the core types of the expense tracker API:
// users, income/expense records, and the request/response shapes of the
// REST contract consumed by the web frontend.
package domain

import "time"

// RecordKind selects between the two record collections.
type RecordKind string

const (
	KindIncome  RecordKind = "income"
	KindExpense RecordKind = "expense"
)

// Record is a single income or expense entry. Income and expense share
// the same shape and live in separate collections; records are immutable
// once created.
type Record struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// User is a registered account holder.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns the user without credential material, as exposed by the API.
func (u *User) Public() *UserInfo {
	if u == nil {
		return nil
	}
	return &UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// UserInfo is the public view of a user returned by auth endpoints.
type UserInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateRecordRequest is the body for POST /income and POST /expense.
// Amount is `any` on purpose: the frontend has historically sent both JSON
// numbers and numeric strings, and the contract only requires "numeric".
type CreateRecordRequest struct {
	Amount      any    `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// CreateRecordResponse is the 201 body for record creation.
// Exactly one of Income/Expense is set, matching the resource posted to.
type CreateRecordResponse struct {
	Message string  `json:"message"`
	Income  *Record `json:"income,omitempty"`
	Expense *Record `json:"expense,omitempty"`
}

// IncomeListResponse is the body for GET /income.
type IncomeListResponse struct {
	Income []Record `json:"income"`
}

// ExpenseListResponse is the body for GET /expense.
type ExpenseListResponse struct {
	Expenses []Record `json:"expenses"`
}
