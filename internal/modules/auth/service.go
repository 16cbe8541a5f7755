package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebox/internal/domain"
	"recipebox/internal/pkg/jwt"
	"recipebox/internal/pkg/shareid"
	"recipebox/internal/repository"
)

// shareIDAttempts bounds retries on the astronomically unlikely handle clash.
const shareIDAttempts = 5

type Service struct {
	users *repository.UserRepository
	jwt   *jwt.Service
}

func NewService(users *repository.UserRepository, jwtSvc *jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Register creates the account with a freshly generated share id and returns
// the user plus a signed token, so the client is logged in immediately.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(in.DisplayName),
	}

	for attempt := 0; ; attempt++ {
		user.ShareID, err = shareid.New()
		if err != nil {
			return nil, "", err
		}
		err = s.users.Create(ctx, user)
		if err == nil {
			break
		}
		if repository.IsUniqueViolation(err) {
			if exists, checkErr := s.users.EmailExists(ctx, email); checkErr == nil && exists {
				return nil, "", ErrEmailTaken
			}
			if attempt < shareIDAttempts {
				continue
			}
		}
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
