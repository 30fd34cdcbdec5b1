package services

import (
	"time"

	"blog-platform-api/models"
	"blog-platform-api/repositories"

	"github.com/google/uuid"
)

type AuthService interface {
	Login(input models.LoginInput) (*models.AuthPayload, error)
	Register(input models.RegisterInput) (*models.AuthPayload, error)
	GetUserByID(id string) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
}

func NewAuthService(userRepo repositories.UserRepository, hasher PasswordHasher, tokens TokenService) AuthService {
	return &authService{userRepo: userRepo, hasher: hasher, tokens: tokens}
}

// Login answers a missing user and a wrong password with the same error, so
// the response never reveals which emails are registered.
func (s *authService) Login(input models.LoginInput) (*models.AuthPayload, error) {
	user, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrInvalidCredentials
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthPayload{Token: token, User: *user}, nil
}

func (s *authService) Register(input models.RegisterInput) (*models.AuthPayload, error) {
	existing, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &models.ConflictError{Message: "email already registered"}
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashed,
		// Registration never grants elevated roles.
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthPayload{Token: token, User: *user}, nil
}

func (s *authService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
