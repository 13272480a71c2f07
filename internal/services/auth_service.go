package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/security"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials     = errors.New("invalid login credentials")
	ErrEmailAlreadyRegistered = errors.New("user already registered")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// SignIn returns the user whose normalized email and password match.
func (service *AuthService) SignIn(ctx context.Context, email string, password string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(NormalizeAuthEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	if security.ComparePassword(user.PasswordHash, password) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// SignUp creates an account with a bcrypt password hash.
func (service *AuthService) SignUp(ctx context.Context, email string, password string, name string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	normalized := NormalizeAuthEmail(email)
	exists, err := service.users.ExistsByNormalizedEmail(normalized)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailAlreadyRegistered
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        normalized,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
	}
	if err := service.users.Create(&user); err != nil {
		if exists, lookupErr := service.users.ExistsByNormalizedEmail(normalized); lookupErr == nil && exists {
			return models.User{}, ErrEmailAlreadyRegistered
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// NormalizeAuthEmail lowercases and trims an email for lookups.
func NormalizeAuthEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
