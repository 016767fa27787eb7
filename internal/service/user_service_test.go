// internal/service/user_service_test.go
package service

import (
	"context"
	"database/sql"
	"testing"

	"user-directory/internal/domain"
	"user-directory/internal/repository"
	"user-directory/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	args := m.Called(ctx, q, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) VerifyPassword(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

func newTestService(t *testing.T) (UserService, *MockUserRepository, *MockPasswordHasher) {
	t.Helper()
	userRepo := new(MockUserRepository)
	hasher := new(MockPasswordHasher)
	svc := NewUserService(new(MockDBExecutor), userRepo, hasher)
	return svc, userRepo, hasher
}

func existingUser() *domain.User {
	return &domain.User{
		ID:           1,
		UserName:     "alice",
		FullName:     "Alice Smith",
		Email:        "alice@x.com",
		Mobile:       "123",
		Language:     "en",
		Culture:      "en-US",
		PasswordHash: "stored_hash",
	}
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	svc, userRepo, hasher := newTestService(t)

	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "alice").Return(nil, util.ErrNotFound)
	hasher.On("HashPassword", "pw1").Return("hashed_pw1", nil)
	userRepo.On("CreateUser", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*domain.User).ID = 1
		}).
		Return(nil)

	user, err := svc.Create(context.Background(), CreateUserInput{
		UserName: "alice",
		FullName: "Alice Smith",
		Email:    "alice@x.com",
		Password: "pw1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, "hashed_pw1", user.PasswordHash)
	userRepo.AssertExpectations(t)
	hasher.AssertExpectations(t)
}

func TestCreate_ConflictOnPreCheck(t *testing.T) {
	svc, userRepo, hasher := newTestService(t)

	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "alice").Return(existingUser(), nil)

	_, err := svc.Create(context.Background(), CreateUserInput{
		UserName: "alice",
		FullName: "Other Person",
		Email:    "other@x.com",
		Password: "pw2",
	})

	assert.ErrorIs(t, err, util.ErrDuplicateEntry)
	// On conflict no record is created and no hash is computed.
	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	hasher.AssertNotCalled(t, "HashPassword", mock.Anything)
}

func TestCreate_ConflictFromStoreConstraint(t *testing.T) {
	// Two concurrent creates can both pass the pre-check; the store's unique
	// constraint rejects the second write and that rejection must surface as
	// the same conflict outcome.
	svc, userRepo, hasher := newTestService(t)

	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "alice").Return(nil, util.ErrNotFound)
	hasher.On("HashPassword", "pw1").Return("hashed_pw1", nil)
	userRepo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(util.ErrDuplicateEntry)

	_, err := svc.Create(context.Background(), CreateUserInput{
		UserName: "alice",
		FullName: "Alice Smith",
		Email:    "alice@x.com",
		Password: "pw1",
	})

	assert.ErrorIs(t, err, util.ErrDuplicateEntry)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	cases := []struct {
		name  string
		input CreateUserInput
	}{
		{"missing username", CreateUserInput{FullName: "A", Email: "a@x.com", Password: "pw"}},
		{"missing full name", CreateUserInput{UserName: "a", Email: "a@x.com", Password: "pw"}},
		{"invalid email", CreateUserInput{UserName: "a", FullName: "A", Email: "not-an-email", Password: "pw"}},
		{"missing password", CreateUserInput{UserName: "a", FullName: "A", Email: "a@x.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			assert.ErrorIs(t, err, util.ErrInvalidInput)
		})
	}
	// Validation failures never reach the store.
	userRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_NotFound(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	userRepo.On("GetUserByID", mock.Anything, mock.Anything, int64(42)).Return(nil, util.ErrNotFound)

	_, err := svc.Get(context.Background(), 42)

	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestList_ReturnsAllUsers(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	userRepo.On("ListUsers", mock.Anything, mock.Anything).Return([]domain.User{*existingUser()}, nil)

	users, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "ghost@x.com").Return(nil, util.ErrNotFound)

	_, err := svc.Update(context.Background(), UpdateUserInput{Email: "ghost@x.com"})

	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUpdate_EmptyMobileOverwritesOnlyMobile(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "alice@x.com").Return(existingUser(), nil)
	userRepo.On("UpdateUser", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Update(context.Background(), UpdateUserInput{
		Email:  "alice@x.com",
		Mobile: strPtr(""),
	})

	require.NoError(t, err)
	assert.Equal(t, "", user.Mobile)
	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, "Alice Smith", user.FullName)
	assert.Equal(t, "en", user.Language)
	assert.Equal(t, "en-US", user.Culture)
	// Username omitted: no uniqueness check is performed.
	userRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_EmptyUserNameLeavesUserNameUnchanged(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "alice@x.com").Return(existingUser(), nil)
	userRepo.On("UpdateUser", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Update(context.Background(), UpdateUserInput{
		Email:    "alice@x.com",
		UserName: strPtr(""),
		FullName: strPtr(""),
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, "Alice Smith", user.FullName)
	userRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_UsernameConflict(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	taken := &domain.User{ID: 2, UserName: "bob"}
	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "alice@x.com").Return(existingUser(), nil)
	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "bob").Return(taken, nil)

	_, err := svc.Update(context.Background(), UpdateUserInput{
		Email:    "alice@x.com",
		UserName: strPtr("bob"),
	})

	assert.ErrorIs(t, err, util.ErrDuplicateEntry)
	userRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_SameUsernameSkipsUniquenessCheck(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "alice@x.com").Return(existingUser(), nil)
	userRepo.On("UpdateUser", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Update(context.Background(), UpdateUserInput{
		Email:    "alice@x.com",
		UserName: strPtr("alice"),
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	userRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PasswordIsRehashed(t *testing.T) {
	svc, userRepo, hasher := newTestService(t)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "alice@x.com").Return(existingUser(), nil)
	hasher.On("HashPassword", "newpw").Return("new_hash", nil)
	userRepo.On("UpdateUser", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Update(context.Background(), UpdateUserInput{
		Email:    "alice@x.com",
		Password: strPtr("newpw"),
	})

	require.NoError(t, err)
	assert.Equal(t, "new_hash", user.PasswordHash)
}

func TestDelete_Success(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	userRepo.On("DeleteUser", mock.Anything, mock.Anything, int64(1)).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), 1))
}

func TestDelete_NotFound(t *testing.T) {
	svc, userRepo, _ := newTestService(t)

	userRepo.On("DeleteUser", mock.Anything, mock.Anything, int64(42)).Return(util.ErrNotFound)

	err := svc.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestValidatePassword_Match(t *testing.T) {
	svc, userRepo, hasher := newTestService(t)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "alice@x.com").Return(existingUser(), nil)
	hasher.On("VerifyPassword", "pw1", "stored_hash").Return(true)

	assert.NoError(t, svc.ValidatePassword(context.Background(), "alice@x.com", "pw1"))
}

func TestValidatePassword_Mismatch(t *testing.T) {
	svc, userRepo, hasher := newTestService(t)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "alice@x.com").Return(existingUser(), nil)
	hasher.On("VerifyPassword", "wrong", "stored_hash").Return(false)

	err := svc.ValidatePassword(context.Background(), "alice@x.com", "wrong")

	assert.ErrorIs(t, err, util.ErrInvalidPassword)
}

func TestValidatePassword_NotFound(t *testing.T) {
	svc, userRepo, hasher := newTestService(t)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "ghost@x.com").Return(nil, util.ErrNotFound)

	err := svc.ValidatePassword(context.Background(), "ghost@x.com", "pw1")

	assert.ErrorIs(t, err, util.ErrUserNotFound)
	hasher.AssertNotCalled(t, "VerifyPassword", mock.Anything, mock.Anything)
}
