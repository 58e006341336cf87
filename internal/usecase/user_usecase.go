package usecase

import (
	"context"

	"cashtrail/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterUserInput represents the input for registering a new user.
type RegisterUserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginInput represents the input for logging in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthOutput carries the token pair issued on register/login.
type AuthOutput struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// UserUsecase handles registration and authentication.
type UserUsecase interface {
	// Register creates a new user. An empty email is rejected with
	// domainerrors.ErrInvalidIdentity before any persistence attempt.
	Register(ctx context.Context, input *RegisterUserInput) (*AuthOutput, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GetProfile retrieves the user's own record.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
