package repository

import (
	"context"

	"todo-backend/internal/domain"
)

// TaskRepository exposes persistence operations for Task records.
//
// Every read and write that targets a single task filters by the
// (id, user_id) pair in one query, so a task belonging to another user
// is indistinguishable from a missing one.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	Get(ctx context.Context, userID string, id int64) (*domain.Task, error)
	List(ctx context.Context, userID string, completed *bool) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID string, id int64) (bool, error)
}
