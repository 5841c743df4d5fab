package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-profiles/internal/domain/user"
	"user-profiles/internal/store"
	apperrors "user-profiles/pkg/errors"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetUsers(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockStore) AddUser(ctx context.Context, f store.Fields) (*user.User, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockStore) UpdateUser(ctx context.Context, id string, f store.Fields) (*user.User, error) {
	args := m.Called(ctx, id, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockStore) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ResetToSampleData(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockStore) ClearAllData(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockStore) IsDevMode(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ToggleDevMode(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func setupTestUsecase(t *testing.T) (Usecase, *MockStore) {
	mockStore := new(MockStore)
	uc := New(mockStore, zaptest.NewLogger(t))
	return uc, mockStore
}

// ==================== LIST USERS TESTS ====================

func TestListUsers_AppliesViewQuery(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	all := []user.User{
		{ID: "1", Name: "Bob", Email: "bob@example.com", Role: user.RoleDeveloper},
		{ID: "2", Name: "Alice", Email: "alice@example.com", Role: user.RoleAdmin},
		{ID: "3", Name: "Dana", Email: "dana@example.com", Role: user.RoleDeveloper},
	}
	mockStore.On("GetUsers", ctx).Return(all, nil)

	resp, err := uc.ListUsers(ctx, ListUsersRequest{Search: "dev", SortBy: user.SortByName})

	require.NoError(t, err)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "Bob", resp.Users[0].Name)
	assert.Equal(t, "Dana", resp.Users[1].Name)
	assert.Equal(t, 3, resp.Total)

	mockStore.AssertExpectations(t)
}

func TestListUsers_StoreError(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	mockStore.On("GetUsers", ctx).Return(nil, apperrors.NewTransientError("get_users", "failed to fetch users"))

	resp, err := uc.ListUsers(ctx, ListUsersRequest{})

	assert.Error(t, err)
	assert.Nil(t, resp)
}

// ==================== CREATE USER TESTS ====================

func TestCreateUser_Success(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	req := CreateUserRequest{Name: "Zoe Lee", Email: "zoe@x.com", Role: user.RoleUser}

	mockStore.On("GetUsers", ctx).Return([]user.User{}, nil)
	mockStore.On("AddUser", ctx, mock.MatchedBy(func(f store.Fields) bool {
		return f.Name == req.Name && f.Email == req.Email && f.Role == req.Role
	})).Return(&user.User{ID: "new-id", Name: req.Name, Email: req.Email, Role: req.Role}, nil)

	created, err := uc.CreateUser(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)

	mockStore.AssertExpectations(t)
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateUserRequest
		field   string
		message string
	}{
		{"name required", CreateUserRequest{Email: "a@b.com", Role: user.RoleUser}, "name", "Name is required"},
		{"name too short", CreateUserRequest{Name: "J", Email: "a@b.com", Role: user.RoleUser}, "name", "Name must be at least 2 characters"},
		{"email invalid", CreateUserRequest{Name: "John Doe", Email: "invalid", Role: user.RoleUser}, "email", "Please enter a valid email address"},
		{"role invalid", CreateUserRequest{Name: "John Doe", Email: "a@b.com", Role: "Superuser"}, "role", "Please select a valid role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := uc.CreateUser(ctx, tt.req)

			assert.Nil(t, created)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Fields[tt.field])
		})
	}

	// validation failures never reach the store
	mockStore.AssertNotCalled(t, "GetUsers", mock.Anything)
	mockStore.AssertNotCalled(t, "AddUser", mock.Anything, mock.Anything)
}

func TestCreateUser_EmailAlreadyExists(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	existing := []user.User{{ID: "1", Name: "John", Email: "John@Example.com", Role: user.RoleUser}}
	mockStore.On("GetUsers", ctx).Return(existing, nil)

	created, err := uc.CreateUser(ctx, CreateUserRequest{Name: "Johnny", Email: "john@example.com", Role: user.RoleUser})

	assert.Nil(t, created)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email already exists", verr.Fields["email"])

	mockStore.AssertNotCalled(t, "AddUser", mock.Anything, mock.Anything)
}

// ==================== UPDATE USER TESTS ====================

func TestUpdateUser_Success(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	req := UpdateUserRequest{ID: "1", Name: "John Updated", Email: "john.updated@example.com", Role: user.RoleManager}
	existing := []user.User{{ID: "1", Name: "John", Email: "john@example.com", Role: user.RoleUser}}

	mockStore.On("GetUsers", ctx).Return(existing, nil)
	mockStore.On("UpdateUser", ctx, "1", mock.MatchedBy(func(f store.Fields) bool {
		return f.Name == req.Name && f.Email == req.Email && f.Role == req.Role
	})).Return(&user.User{ID: "1", Name: req.Name, Email: req.Email, Role: req.Role}, nil)

	updated, err := uc.UpdateUser(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "John Updated", updated.Name)

	mockStore.AssertExpectations(t)
}

func TestUpdateUser_KeepingOwnEmailIsNotAConflict(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	existing := []user.User{{ID: "1", Name: "John", Email: "john@example.com", Role: user.RoleUser}}
	mockStore.On("GetUsers", ctx).Return(existing, nil)
	mockStore.On("UpdateUser", ctx, "1", mock.Anything).
		Return(&user.User{ID: "1", Name: "John R", Email: "john@example.com", Role: user.RoleUser}, nil)

	updated, err := uc.UpdateUser(ctx, UpdateUserRequest{ID: "1", Name: "John R", Email: "john@example.com", Role: user.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, "John R", updated.Name)
}

func TestUpdateUser_EmailTakenByAnotherRecord(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	existing := []user.User{
		{ID: "1", Name: "John", Email: "john@example.com", Role: user.RoleUser},
		{ID: "2", Name: "Jane", Email: "jane@example.com", Role: user.RoleUser},
	}
	mockStore.On("GetUsers", ctx).Return(existing, nil)

	updated, err := uc.UpdateUser(ctx, UpdateUserRequest{ID: "1", Name: "John", Email: "jane@example.com", Role: user.RoleUser})

	assert.Nil(t, updated)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email already exists", verr.Fields["email"])

	mockStore.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_NotFoundPropagates(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	mockStore.On("GetUsers", ctx).Return([]user.User{}, nil)
	mockStore.On("UpdateUser", ctx, "missing", mock.Anything).
		Return(nil, apperrors.NewNotFoundError("user", "User not found"))

	updated, err := uc.UpdateUser(ctx, UpdateUserRequest{ID: "missing", Name: "Ghost", Email: "ghost@x.com", Role: user.RoleUser})

	assert.Nil(t, updated)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

// ==================== DELETE / RESET / CLEAR TESTS ====================

func TestDeleteUser_Success(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	mockStore.On("DeleteUser", ctx, "1").Return(nil)

	require.NoError(t, uc.DeleteUser(ctx, "1"))
	mockStore.AssertExpectations(t)
}

func TestDeleteUser_ErrorPropagates(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	mockStore.On("DeleteUser", ctx, "missing").Return(apperrors.NewNotFoundError("user", "User not found"))

	err := uc.DeleteUser(ctx, "missing")

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResetData_ReturnsSeed(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	created := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	seed := []user.User{{ID: "seed-1", Name: "Alice Johnson", Email: "alice.johnson@example.com", Role: user.RoleAdmin, CreatedAt: created, LastModified: created}}
	mockStore.On("ResetToSampleData", ctx).Return(seed, nil)

	users, err := uc.ResetData(ctx)

	require.NoError(t, err)
	assert.Equal(t, seed, users)
}

func TestClearData(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	mockStore.On("ClearAllData", ctx).Return([]user.User{}, nil)

	users, err := uc.ClearData(ctx)

	require.NoError(t, err)
	assert.Empty(t, users)
}

// ==================== DEV MODE TESTS ====================

func TestDevMode_Passthrough(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	mockStore.On("IsDevMode", ctx).Return(true, nil)

	enabled, err := uc.DevMode(ctx)

	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestToggleDevMode(t *testing.T) {
	uc, mockStore := setupTestUsecase(t)
	ctx := context.Background()

	mockStore.On("ToggleDevMode", ctx).Return(true, nil)

	enabled, err := uc.ToggleDevMode(ctx)

	require.NoError(t, err)
	assert.True(t, enabled)
	mockStore.AssertExpectations(t)
}
