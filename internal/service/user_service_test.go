package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"todo-backend/internal/domain"
	"todo-backend/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]domain.User
	byID    map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]domain.User{},
		byID:    map[string]domain.User{},
	}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return fmt.Errorf("insert user: %w", repository.ErrDuplicate)
	}
	f.byEmail[user.Email] = *user
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := user
	return &copied, nil
}

func TestSignupThenLogin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Alice", "a@x.com", "password123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if created.ID == "" {
		t.Error("signup should assign a user id")
	}
	if created.PasswordHash != "" {
		t.Error("signup response must not carry the password hash")
	}

	authed, err := svc.Authenticate(ctx, "a@x.com", "password123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != created.ID {
		t.Errorf("authenticated id %q, want %q", authed.ID, created.ID)
	}

	if _, err := svc.Authenticate(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@x.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Alice", "a@x.com", "password123"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Signup(ctx, "Other Alice", "a@x.com", "password456"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
	// email comparison is case-insensitive
	if _, err := svc.Signup(ctx, "Shouty Alice", "A@X.COM", "password456"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken for uppercased email, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "", "a@x.com", "password123"},
		{"bad email", "Alice", "not-an-email", "password123"},
		{"empty email", "Alice", "", "password123"},
		{"short password", "Alice", "a@x.com", "short"},
	}
	for _, tc := range cases {
		if _, err := svc.Signup(ctx, tc.userName, tc.email, tc.password); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestGetByID(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Alice", "a@x.com", "password123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	user, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if user.Email != "a@x.com" || user.PasswordHash != "" {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := svc.GetByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
