package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bbshop/internal/auth"
	apperrors "bbshop/internal/errors"
	"bbshop/internal/model"
	"bbshop/internal/repository"
)

const bcryptCost = 10

// AuthService handles admin authentication.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, admin *model.Admin, err error)
	CurrentAdmin(ctx context.Context, id uuid.UUID) (*model.Admin, error)
}

type authService struct {
	adminRepo  repository.AdminRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(adminRepo repository.AdminRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Login authenticates an admin and issues a signed token. A deactivated
// account is reported as such before the password is checked, matching the
// API contract: correct credentials against a deactivated account must not
// read as invalid credentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.Admin, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find admin: %w", err)
	}

	if !admin.IsActive {
		return "", nil, apperrors.ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return "", nil, fmt.Errorf("record last login: %w", err)
	}

	token, err := s.jwtService.GenerateToken(admin)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, admin, nil
}

// CurrentAdmin loads the profile for a verified token's admin ID.
func (s *authService) CurrentAdmin(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return admin, nil
}

// HashPassword hashes a plaintext password with a randomized per-record salt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
