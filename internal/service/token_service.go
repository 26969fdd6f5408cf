package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studyhall/ai-tutor-api/internal/cryptoutil"
	"github.com/studyhall/ai-tutor-api/internal/domain"
	"github.com/studyhall/ai-tutor-api/internal/gateway"
	"github.com/studyhall/ai-tutor-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Refresher performs the refresh-token grant against the OAuth provider.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*gateway.Credentials, error)
}

// TokenService owns the credential-record lifecycle: encrypted persistence
// and refresh-on-expiry. A record whose expiry is not strictly in the future
// counts as expired.
type TokenService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.AuthTokenRepository
	cipher    *cryptoutil.Cipher
	refresher Refresher
	now       func() time.Time
}

func NewTokenService(userRepo repository.UserRepository, tokenRepo repository.AuthTokenRepository, cipher *cryptoutil.Cipher, refresher Refresher) *TokenService {
	return &TokenService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cipher:    cipher,
		refresher: refresher,
		now:       time.Now,
	}
}

// SetClock replaces the time source. Tests use it to pin the expiry
// boundary exactly.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

// DecryptedToken is a credential record with its fields in the clear, ready
// for use against the provider.
type DecryptedToken struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	Email        string
}

// GetAuthToken returns usable credentials for the user, refreshing first when
// the stored record has expired.
func (s *TokenService) GetAuthToken(ctx context.Context, userID uuid.UUID) (*DecryptedToken, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	record, err := s.tokenRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoStoredToken
		}
		return nil, err
	}

	if !record.Expiry.UTC().After(s.now().UTC()) {
		refreshToken, err := s.cipher.Decrypt(record.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("decrypt refresh token: %w", err)
		}
		creds, err := s.refresher.Refresh(ctx, refreshToken)
		if err != nil {
			return nil, fmt.Errorf("refresh credentials: %w", err)
		}
		if creds.Email == "" {
			creds.Email = record.Email
		}
		if err := s.UpdateAuthToken(ctx, userID, creds); err != nil {
			return nil, err
		}
		record, err = s.tokenRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	return s.decrypt(record)
}

// UpdateAuthToken persists new credentials for the user, encrypting each
// field. When the caller supplies no refresh token the previously stored
// encrypted one is kept; if none exists either, the update is rejected.
func (s *TokenService) UpdateAuthToken(ctx context.Context, userID uuid.UUID, creds *gateway.Credentials) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	existing, err := s.tokenRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var refreshEncrypted string
	switch {
	case creds.RefreshToken != "":
		refreshEncrypted, err = s.cipher.Encrypt(creds.RefreshToken)
		if err != nil {
			return err
		}
	case existing != nil && existing.RefreshToken != "":
		refreshEncrypted = existing.RefreshToken
	default:
		return domain.ErrMissingRefresh
	}

	accessEncrypted, err := s.cipher.Encrypt(creds.AccessToken)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.AccessToken = accessEncrypted
		existing.RefreshToken = refreshEncrypted
		existing.Expiry = creds.Expiry.UTC()
		existing.Email = creds.Email
		existing.UpdatedAt = time.Now()
		return s.tokenRepo.Update(ctx, existing)
	}

	scopes, _ := json.Marshal(gateway.GoogleScopes)
	record := &domain.AuthToken{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  accessEncrypted,
		RefreshToken: refreshEncrypted,
		Expiry:       creds.Expiry.UTC(),
		Email:        creds.Email,
		Scopes:       datatypes.JSON(scopes),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return s.tokenRepo.Create(ctx, record)
}

// decrypt fails hard on credential fields: a record we cannot decrypt is
// unusable and must not be silently passed through.
func (s *TokenService) decrypt(record *domain.AuthToken) (*DecryptedToken, error) {
	accessToken, err := s.cipher.Decrypt(record.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("decrypt access token: %w", err)
	}
	refreshToken, err := s.cipher.Decrypt(record.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("decrypt refresh token: %w", err)
	}
	return &DecryptedToken{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Expiry:       record.Expiry.UTC(),
		Email:        record.Email,
	}, nil
}
