package service

import (
	"context"
	"errors"
	"log"
	"os"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// DTO for returning User without exposing sensitive data
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

// UserService backs the access guard: it issues tokens and seeds the initial
// superadmin operator account.
type UserService interface {
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	EnsureSuperadmin(ctx context.Context) error
}

type userService struct {
	repo repository.UserRepository
	txm  repository.TransactionManager
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, txm repository.TransactionManager) UserService {
	return &userService{repo: repo, txm: txm}
}

func mapToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// Login verifies credentials and issues a short access token carrying the
// subject and role claims the guard and websocket auth read.
func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
	})

	tokenString, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &TokenResponse{Token: tokenString}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapToResponse(user), nil
}

// EnsureSuperadmin seeds the initial superadmin from SUPERADMIN_EMAIL /
// SUPERADMIN_PASSWORD if no account exists for that email yet. Without it a
// fresh deployment has no identity able to pass the access guard.
func (s *userService) EnsureSuperadmin(ctx context.Context) error {
	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD not set, skipping superadmin seed")
		return nil
	}

	return s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByEmail(txCtx, email); err == nil {
			return nil // already seeded
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return errors.New("failed to hash superadmin password")
		}

		user := &model.User{
			Username: "superadmin",
			Email:    email,
			Password: string(hashed),
			Role:     model.RoleSuperadmin,
		}
		if err := s.repo.Create(txCtx, user); err != nil {
			return err
		}
		log.Printf("seeded superadmin account %s", email)
		return nil
	})
}
