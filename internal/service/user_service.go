// internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"user-directory/internal/domain"
	"user-directory/internal/repository"
	"user-directory/internal/util"
)

const (
	maxUserNameLen = 100
	maxFullNameLen = 200
	maxEmailLen    = 255
)

// CreateUserInput carries the fields for creating a new user.
type CreateUserInput struct {
	UserName string
	FullName string
	Email    string
	Mobile   string
	Language string
	Culture  string
	Password string
}

// UpdateUserInput carries a partial update, matched by Email.
//
// The optional fields are pointers so that "absent" and "present but empty"
// can be told apart. The asymmetry is deliberate and part of the contract:
// UserName, FullName and Password are applied only when present AND
// non-empty, while Mobile, Language and Culture are applied whenever present,
// including when set to the empty string.
type UpdateUserInput struct {
	Email    string
	UserName *string
	FullName *string
	Mobile   *string
	Language *string
	Culture  *string
	Password *string
}

// UserService defines the interface for user directory business logic.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	ValidatePassword(ctx context.Context, email, password string) error
}

// userService implements the UserService interface.
type userService struct {
	dbExecutor repository.DBExecutor // For store access (e.g., *sqlx.DB)
	userRepo   repository.UserRepository
	hasher     PasswordHasher
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	hasher PasswordHasher,
) UserService {
	return &userService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		hasher:     hasher,
	}
}

// Create adds a new user after checking username uniqueness.
//
// The existence check followed by the insert is a check-then-act race under
// concurrent access; the store's unique constraint on username is the
// authoritative arbiter, and its violation surfaces as the same
// util.ErrDuplicateEntry as the pre-check.
func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	_, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, input.UserName)
	if err == nil {
		return nil, util.ErrDuplicateEntry
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("create: failed to check username '%s': %w", input.UserName, err)
	}

	hash, err := s.hasher.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create: failed to hash password: %w", err)
	}

	user := domain.NewUser(input.UserName, input.FullName, input.Email,
		input.Mobile, input.Language, input.Culture, hash)
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		if util.IsError(err, util.ErrDuplicateEntry) {
			return nil, util.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("create: failed to insert user: %w", err)
	}
	return user, nil
}

// Get returns the user with the given ID.
func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get: failed to get user %d: %w", id, err)
	}
	return user, nil
}

// List returns all users in store iteration order.
func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list: failed to list users: %w", err)
	}
	return users, nil
}

// Update applies a partial update to the user matched by input.Email.
func (s *userService) Update(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	if !isValidEmail(input.Email) {
		return nil, util.ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, input.Email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("update: failed to get user by email '%s': %w", input.Email, err)
	}

	if input.UserName != nil && *input.UserName != "" {
		if len(*input.UserName) > maxUserNameLen {
			return nil, util.ErrInvalidInput
		}
		// Uniqueness is only re-checked when the username actually changes.
		if user.UserName != *input.UserName {
			if err := s.checkUsernameFree(ctx, *input.UserName); err != nil {
				return nil, err
			}
		}
		user.UserName = *input.UserName
	}

	if input.FullName != nil && *input.FullName != "" {
		if len(*input.FullName) > maxFullNameLen {
			return nil, util.ErrInvalidInput
		}
		user.FullName = *input.FullName
	}

	// Mobile, Language and Culture overwrite on any present value, including
	// the empty string; nil means leave unchanged.
	if input.Mobile != nil {
		user.Mobile = *input.Mobile
	}
	if input.Language != nil {
		user.Language = *input.Language
	}
	if input.Culture != nil {
		user.Culture = *input.Culture
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := s.hasher.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("update: failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.UpdateUser(ctx, s.dbExecutor, user); err != nil {
		if util.IsError(err, util.ErrDuplicateEntry) {
			return nil, util.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("update: failed to update user %d: %w", user.ID, err)
	}
	return user, nil
}

// Delete removes the user with the given ID.
func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.DeleteUser(ctx, s.dbExecutor, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrUserNotFound
		}
		return fmt.Errorf("delete: failed to delete user %d: %w", id, err)
	}
	return nil
}

// ValidatePassword verifies the clear-text password of the user matched by
// email. It returns nil on match, util.ErrInvalidPassword on mismatch and
// util.ErrUserNotFound if no user has that email. Neither the hash nor the
// clear text leaves this method.
func (s *userService) ValidatePassword(ctx context.Context, email, password string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrUserNotFound
		}
		return fmt.Errorf("validate password: failed to get user by email '%s': %w", email, err)
	}
	if !s.hasher.VerifyPassword(password, user.PasswordHash) {
		return util.ErrInvalidPassword
	}
	return nil
}

// checkUsernameFree returns util.ErrDuplicateEntry if the username is taken.
func (s *userService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err == nil {
		return util.ErrDuplicateEntry
	}
	if !util.IsError(err, util.ErrNotFound) {
		return fmt.Errorf("failed to check username '%s': %w", username, err)
	}
	return nil
}

func validateCreateInput(input CreateUserInput) error {
	if strings.TrimSpace(input.UserName) == "" || len(input.UserName) > maxUserNameLen {
		return util.ErrInvalidInput
	}
	if strings.TrimSpace(input.FullName) == "" || len(input.FullName) > maxFullNameLen {
		return util.ErrInvalidInput
	}
	if !isValidEmail(input.Email) {
		return util.ErrInvalidInput
	}
	if input.Password == "" {
		return util.ErrInvalidInput
	}
	return nil
}

// isValidEmail checks email syntax and length.
func isValidEmail(email string) bool {
	if email == "" || len(email) > maxEmailLen {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
