package repository

import (
	"context"
	"errors"

	"todo-backend/internal/domain"
)

var (
	// ErrNotFound indicates no record matched the given filter.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique constraint was violated.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
