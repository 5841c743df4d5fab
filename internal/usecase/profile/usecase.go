package profile

import (
	"context"

	"go.uber.org/zap"

	"user-profiles/internal/domain/user"
	"user-profiles/internal/store"
	"user-profiles/internal/validate"
	apperrors "user-profiles/pkg/errors"
)

// usecase implements the Usecase interface. It validates submitted records,
// checks email uniqueness against the live collection, and delegates
// persistence to the store; it never writes to the substrate directly.
type usecase struct {
	store    Store
	validate *validate.Validator
	log      *zap.Logger
}

// New creates the application controller over the given store.
func New(s Store, log *zap.Logger) Usecase {
	return &usecase{store: s, validate: validate.New(), log: log}
}

// ListUsers loads the collection and applies the view pipeline.
func (uc *usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	users, err := uc.store.GetUsers(ctx)
	if err != nil {
		uc.log.Error("failed to load users", zap.Error(err))
		return nil, err
	}

	q := user.ViewQuery{Search: in.Search, Role: in.Role, SortBy: in.SortBy, Order: in.Order}
	return &ListUsersResponse{Users: q.Apply(users), Total: len(users)}, nil
}

// CreateUser validates the submitted record, checks email uniqueness at
// submission time, and appends the new record.
func (uc *usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*user.User, error) {
	uc.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	res := uc.validate.User(validate.Candidate{Name: in.Name, Email: in.Email, Role: in.Role, Avatar: in.Avatar})
	if !res.Valid {
		uc.log.Warn("validate failed", zap.Any("errors", res.Errors))
		return nil, apperrors.NewValidationErrors(res.Errors)
	}

	users, err := uc.store.GetUsers(ctx)
	if err != nil {
		uc.log.Error("failed to check email uniqueness", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if !validate.EmailUnique(in.Email, users, "") {
		uc.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewValidationError("email", "Email already exists")
	}

	created, err := uc.store.AddUser(ctx, store.Fields{Name: in.Name, Email: in.Email, Role: in.Role, Avatar: in.Avatar})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}
	return created, nil
}

// UpdateUser validates the submitted record, checks email uniqueness
// excluding the edited record, and replaces its mutable fields.
func (uc *usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*user.User, error) {
	uc.log.Info("updating user", zap.String("id", in.ID), zap.String("email", in.Email))

	res := uc.validate.User(validate.Candidate{Name: in.Name, Email: in.Email, Role: in.Role, Avatar: in.Avatar})
	if !res.Valid {
		uc.log.Warn("validate failed", zap.String("id", in.ID), zap.Any("errors", res.Errors))
		return nil, apperrors.NewValidationErrors(res.Errors)
	}

	users, err := uc.store.GetUsers(ctx)
	if err != nil {
		uc.log.Error("failed to check email uniqueness", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if !validate.EmailUnique(in.Email, users, in.ID) {
		uc.log.Warn("email already exists", zap.String("email", in.Email), zap.String("id", in.ID))
		return nil, apperrors.NewValidationError("email", "Email already exists")
	}

	updated, err := uc.store.UpdateUser(ctx, in.ID, store.Fields{Name: in.Name, Email: in.Email, Role: in.Role, Avatar: in.Avatar})
	if err != nil {
		uc.log.Error("failed to update user", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes the record with the given id.
func (uc *usecase) DeleteUser(ctx context.Context, id string) error {
	uc.log.Info("deleting user", zap.String("id", id))

	if err := uc.store.DeleteUser(ctx, id); err != nil {
		uc.log.Error("failed to delete user", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ResetData replaces the collection with the sample seed set.
func (uc *usecase) ResetData(ctx context.Context) ([]user.User, error) {
	uc.log.Info("resetting to sample data")

	users, err := uc.store.ResetToSampleData(ctx)
	if err != nil {
		uc.log.Error("failed to reset data", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// ClearData removes all persisted records.
func (uc *usecase) ClearData(ctx context.Context) ([]user.User, error) {
	uc.log.Info("clearing all data")

	users, err := uc.store.ClearAllData(ctx)
	if err != nil {
		uc.log.Error("failed to clear data", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// DevMode reports whether fault injection is enabled.
func (uc *usecase) DevMode(ctx context.Context) (bool, error) {
	return uc.store.IsDevMode(ctx)
}

// ToggleDevMode flips the fault-injection flag and returns the new value.
func (uc *usecase) ToggleDevMode(ctx context.Context) (bool, error) {
	enabled, err := uc.store.ToggleDevMode(ctx)
	if err != nil {
		uc.log.Error("failed to toggle dev mode", zap.Error(err))
		return false, err
	}

	uc.log.Info("dev mode changed", zap.Bool("enabled", enabled))
	return enabled, nil
}
