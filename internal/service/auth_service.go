package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"bibliotec/internal/auth"
	"bibliotec/internal/db"
	"bibliotec/internal/entities"
	apperrors "bibliotec/internal/errors"
	"bibliotec/internal/repository"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates an account with a bcrypt digest and returns a fresh
// token plus the user's public fields.
func (s *AuthService) Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "Nome, email e senha são obrigatórios.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &db.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &entities.AuthResponse{
		Message: "Usuário criado com sucesso!",
		Token:   token,
		User: entities.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}

// Login verifies the password digest and issues a token. Unknown email
// and wrong password surface as the same error.
func (s *AuthService) Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &entities.AuthResponse{
		Message: "Login realizado com sucesso!",
		Token:   token,
		User: entities.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		},
	}, nil
}
