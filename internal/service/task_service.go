package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"todo-backend/internal/domain"
	"todo-backend/internal/repository"
)

var (
	// ErrForbidden indicates the authenticated subject does not own the resource.
	ErrForbidden = errors.New("not authorized to access this resource")
	// ErrTaskNotFound indicates no task matched the given id for the owner.
	ErrTaskNotFound = errors.New("task not found")
	// ErrValidation indicates a field constraint was violated. Wrapped errors
	// carry the field-specific message.
	ErrValidation = errors.New("validation failed")
)

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskService exposes the ownership-checked task operations. Every method
// takes the authenticated subject id alongside the owner id declared in
// the request path and refuses mismatches before touching storage.
type TaskService interface {
	ListTasks(ctx context.Context, subjectID, ownerID string, completed *bool) ([]domain.Task, error)
	GetTask(ctx context.Context, subjectID, ownerID string, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, subjectID, ownerID, title, description string, completed bool) (*domain.Task, error)
	UpdateTask(ctx context.Context, subjectID, ownerID string, id int64, patch TaskPatch) (*domain.Task, error)
	ToggleCompletion(ctx context.Context, subjectID, ownerID string, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, subjectID, ownerID string, id int64) (bool, error)
}

type taskService struct {
	tasks  repository.TaskRepository
	logger *logrus.Logger
}

func NewTaskService(tasks repository.TaskRepository, logger *logrus.Logger) TaskService {
	if logger == nil {
		logger = logrus.New()
	}
	return &taskService{
		tasks:  tasks,
		logger: logger,
	}
}

// authorize is the single ownership gate shared by every operation.
func (s *taskService) authorize(subjectID, ownerID string) error {
	if subjectID == "" || subjectID != ownerID {
		return ErrForbidden
	}
	return nil
}

func (s *taskService) ListTasks(ctx context.Context, subjectID, ownerID string, completed *bool) ([]domain.Task, error) {
	if err := s.authorize(subjectID, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.List(ctx, ownerID, completed)
}

func (s *taskService) GetTask(ctx context.Context, subjectID, ownerID string, id int64) (*domain.Task, error) {
	if err := s.authorize(subjectID, ownerID); err != nil {
		return nil, err
	}
	task, err := s.tasks.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) CreateTask(ctx context.Context, subjectID, ownerID, title, description string, completed bool) (*domain.Task, error) {
	if err := s.authorize(subjectID, ownerID); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	task := &domain.Task{
		UserID:      ownerID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Completed:   completed,
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infof("task %d created for user %s", task.ID, ownerID)
	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, subjectID, ownerID string, id int64, patch TaskPatch) (*domain.Task, error) {
	if err := s.authorize(subjectID, ownerID); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.logger.Infof("task %d updated for user %s", id, ownerID)
	return task, nil
}

func (s *taskService) ToggleCompletion(ctx context.Context, subjectID, ownerID string, id int64) (*domain.Task, error) {
	if err := s.authorize(subjectID, ownerID); err != nil {
		return nil, err
	}

	task, err := s.tasks.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.logger.Infof("task %d completion toggled to %t for user %s", id, task.Completed, ownerID)
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, subjectID, ownerID string, id int64) (bool, error) {
	if err := s.authorize(subjectID, ownerID); err != nil {
		return false, err
	}
	deleted, err := s.tasks.Delete(ctx, ownerID, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Infof("task %d deleted for user %s", id, ownerID)
	}
	return deleted, nil
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || len(trimmed) > 255 {
		return fmt.Errorf("%w: title must be between 1 and 255 characters", ErrValidation)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > 1000 {
		return fmt.Errorf("%w: description must be at most 1000 characters", ErrValidation)
	}
	return nil
}
