package service

import (
	"errors"
	"time"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperr"
	"go-inventory-api/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req *model.RegisterRequest) (*model.UserResponse, error)
	Token(username, password string) (*TokenResponse, error)
	GetUser(id uuid.UUID) (*model.UserResponse, error)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type authService struct {
	users  repository.UserRepository
	secret []byte
	expiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret []byte, expiry time.Duration) AuthService {
	return &authService{
		users:  userRepo,
		secret: secret,
		expiry: expiry,
	}
}

func (s *authService) Register(req *model.RegisterRequest) (*model.UserResponse, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByUsername(req.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("Username %s is already registered", req.Username)
	}

	user := &model.User{Username: req.Username}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.users.Create(user); err != nil {
		return nil, apperr.Internal(err)
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Token(username, password string) (*TokenResponse, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, apperr.Auth("Incorrect username or password")
	}
	if !user.CheckPassword(password) {
		return nil, apperr.Auth("Incorrect username or password")
	}

	token, err := jwt.GenerateToken(s.secret, user.ID, user.Username, s.expiry)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

func (s *authService) GetUser(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}
	resp := user.ToResponse()
	return &resp, nil
}
