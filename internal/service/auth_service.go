package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/config"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")

type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	validate *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		validate: newValidator(),
	}
}

type RegisterInput struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,password"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

// Login exchanges email/password for a signed bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateAccessToken(user)
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	method := jwt.GetSigningMethod(s.cfg.JWTAlgorithm)
	if method == nil {
		return "", errors.New("unknown signing algorithm: " + s.cfg.JWTAlgorithm)
	}

	claims := jwt.MapClaims{
		"sub": user.Email,
		"exp": time.Now().Add(time.Duration(s.cfg.AccessTokenTTLMin) * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(method, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// GetCurrentUser resolves a bearer token to its user. Every failure mode
// (bad signature, expired, missing subject, unknown user) comes back as the
// same ErrCouldNotValidate so callers cannot tell them apart.
func (s *AuthService) GetCurrentUser(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrCouldNotValidate
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrCouldNotValidate
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, domain.ErrCouldNotValidate
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrCouldNotValidate
	}
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
