package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talenttrack-backend/internal/models"
	"talenttrack-backend/internal/repository"
	"talenttrack-backend/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Fixed bcrypt work factor; every stored hash was produced with it.
const bcryptCost = 10

var (
	ErrEmailTaken = errors.New("user already exists")
	// ErrUnknownUser means the email has no account; ErrInvalidCredentials
	// means the password did not match. The HTTP layer maps them to the
	// distinct statuses the frontend expects.
	ErrUnknownUser        = errors.New("unknown user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	Phone    string
	Age      *int
	Location string
	Sport    string
}

// UserService handles account registration, login and profile management.
type UserService struct {
	users  repository.UserRepository
	tokens *token.Service
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepository, tokens *token.Service) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Register creates a new account. The password is stored only as a bcrypt
// hash; a duplicate email fails with ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Phone:        in.Phone,
		Age:          in.Age,
		Location:     in.Location,
		Sport:        in.Sport,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and, on success, returns the user together
// with a freshly issued bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUnknownUser
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, signed, nil
}

// GetByID returns a single user record.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Feed returns every registered user, most recent first.
func (s *UserService) Feed(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return users, nil
}

// UpdateProfile applies a partial update to the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	user, err := s.users.UpdateProfile(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// SetProfilePic records the served path of an uploaded profile photo.
func (s *UserService) SetProfilePic(ctx context.Context, id, path string) error {
	if err := s.users.SetProfilePic(ctx, id, path); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set profile pic: %w", err)
	}
	return nil
}
