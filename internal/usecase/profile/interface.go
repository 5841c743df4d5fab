package profile

import (
	"context"

	"user-profiles/internal/domain/user"
	"user-profiles/internal/store"
)

// Store defines the persistence operations the controller depends on. It
// abstracts the persistence store so tests can substitute a mock.
type Store interface {
	GetUsers(ctx context.Context) ([]user.User, error)
	AddUser(ctx context.Context, f store.Fields) (*user.User, error)
	UpdateUser(ctx context.Context, id string, f store.Fields) (*user.User, error)
	DeleteUser(ctx context.Context, id string) error
	ResetToSampleData(ctx context.Context) ([]user.User, error)
	ClearAllData(ctx context.Context) ([]user.User, error)
	IsDevMode(ctx context.Context) (bool, error)
	ToggleDevMode(ctx context.Context) (bool, error)
}

// Usecase defines the user intents the presentation layer can issue.
type Usecase interface {
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	CreateUser(ctx context.Context, in CreateUserRequest) (*user.User, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*user.User, error)
	DeleteUser(ctx context.Context, id string) error
	ResetData(ctx context.Context) ([]user.User, error)
	ClearData(ctx context.Context) ([]user.User, error)
	DevMode(ctx context.Context) (bool, error)
	ToggleDevMode(ctx context.Context) (bool, error)
}
