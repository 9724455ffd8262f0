package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "bbshop/internal/errors"
	"bbshop/internal/model"
	"bbshop/internal/repository"
)

// AdminInput carries the fields for creating an admin account.
type AdminInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AdminUpdate carries partial update fields for an admin account. A password
// change requires both CurrentPassword and NewPassword.
type AdminUpdate struct {
	Name            *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
	Role            *string
}

// Caller identifies the authenticated admin performing an operation.
type Caller struct {
	ID   uuid.UUID
	Role string
}

// IsSuperadmin reports whether the caller holds the superadmin role.
func (c Caller) IsSuperadmin() bool {
	return c.Role == model.RoleSuperadmin
}

// AdminService handles admin account management.
type AdminService interface {
	List(ctx context.Context) ([]model.Admin, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	Create(ctx context.Context, input AdminInput) (*model.Admin, error)
	Update(ctx context.Context, caller Caller, id uuid.UUID, update AdminUpdate) (*model.Admin, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
	ToggleStatus(ctx context.Context, caller Caller, id uuid.UUID) (*model.Admin, error)
}

type adminService struct {
	repo repository.AdminRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(repo repository.AdminRepository) AdminService {
	return &adminService{repo: repo}
}

// List returns all admin accounts.
func (s *adminService) List(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// Get returns an admin account by ID.
func (s *adminService) Get(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	return s.find(ctx, id)
}

// Create adds an admin account. The role defaults to admin; a taken email
// fails with ErrAdminExists.
func (s *adminService) Create(ctx context.Context, input AdminInput) (*model.Admin, error) {
	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check admin existence: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrAdminExists
	}

	role := input.Role
	if role == "" {
		role = model.RoleAdmin
	}
	if !model.ValidRole(role) {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "invalid role", "INVALID_ROLE")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperrors.ErrAdminExists
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// Update modifies an admin account. Only the account owner or a superadmin
// may update; email changes re-check uniqueness; password changes verify the
// current password first; role changes are reserved for superadmins.
func (s *adminService) Update(ctx context.Context, caller Caller, id uuid.UUID, update AdminUpdate) (*model.Admin, error) {
	if caller.ID != id && !caller.IsSuperadmin() {
		return nil, apperrors.ErrNotAuthorized
	}

	admin, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		admin.Name = *update.Name
	}

	if update.Email != nil && *update.Email != admin.Email {
		other, err := s.repo.FindByEmail(ctx, *update.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, apperrors.ErrEmailInUse
		}
		admin.Email = *update.Email
	}

	if update.CurrentPassword != nil && update.NewPassword != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(*update.CurrentPassword)); err != nil {
			return nil, apperrors.ErrCurrentPasswordIncorrect
		}
		hash, err := HashPassword(*update.NewPassword)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = hash
	}

	if update.Role != nil {
		if !caller.IsSuperadmin() {
			return nil, apperrors.ErrNotAuthorized
		}
		if !model.ValidRole(*update.Role) {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest, "invalid role", "INVALID_ROLE")
		}
		admin.Role = *update.Role
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperrors.ErrEmailInUse
		}
		return nil, fmt.Errorf("update admin: %w", err)
	}
	return admin, nil
}

// Delete removes an admin account. Self-deletion is forbidden, and the
// repository guard refuses to remove the last active superadmin.
func (s *adminService) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	if caller.ID == id {
		return apperrors.ErrSelfDelete
	}
	if err := s.repo.DeleteGuarded(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAdminNotFound
		}
		if err == apperrors.ErrLastSuperadmin {
			return err
		}
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}

// ToggleStatus flips an account's active flag. Self-deactivation is
// forbidden, and deactivating the last active superadmin is refused by the
// repository guard.
func (s *adminService) ToggleStatus(ctx context.Context, caller Caller, id uuid.UUID) (*model.Admin, error) {
	if caller.ID == id {
		return nil, apperrors.ErrSelfDeactivate
	}

	admin, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.SetActiveGuarded(ctx, id, !admin.IsActive)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAdminNotFound
		}
		if err == apperrors.ErrLastSuperadmin {
			return nil, err
		}
		return nil, fmt.Errorf("toggle admin status: %w", err)
	}
	return updated, nil
}

func (s *adminService) find(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return admin, nil
}
