// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/Aditya290605/Expense-Tracker/internal/domain"
)

// AuthStore defines the data operations for user accounts.
type AuthStore interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// RecordStore defines the data operations for income/expense records.
// Records are immutable: there is no update or delete.
type RecordStore interface {
	// CreateRecord persists a record into the collection for kind.
	// The owner on the record is always the authenticated caller.
	CreateRecord(ctx context.Context, kind domain.RecordKind, rec *domain.Record) (*domain.Record, error)

	// ListRecordsByOwner returns the owner's records for kind, sorted by
	// date descending. It never returns another owner's records.
	ListRecordsByOwner(ctx context.Context, kind domain.RecordKind, ownerID string) ([]domain.Record, error)
}

// TextGenerator invokes the external text-generation service used for
// the AI financial report.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*domain.GeneratedText, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
