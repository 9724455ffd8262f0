package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "bbshop/internal/errors"
	"bbshop/internal/model"
)

// AdminRepository defines admin persistence operations.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	Update(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	// DeleteGuarded and SetActiveGuarded enforce the last-active-superadmin
	// invariant inside a transaction with row locks, so concurrent requests
	// cannot both pass the count check.
	DeleteGuarded(ctx context.Context, id uuid.UUID) error
	SetActiveGuarded(ctx context.Context, id uuid.UUID, active bool) (*model.Admin, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Create creates a new admin.
func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// Update updates an existing admin.
func (r *adminRepository) Update(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

// FindByID finds an admin by ID.
func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByEmail finds an admin by email.
func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// List returns all admins ordered by creation time.
func (r *adminRepository) List(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := r.db.WithContext(ctx).Order("created_at").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// DeleteGuarded hard-deletes an admin. Removing an active superadmin fails
// with ErrLastSuperadmin when no other active superadmin would remain.
func (r *adminRepository) DeleteGuarded(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := lockAdmin(tx, id)
		if err != nil {
			return err
		}
		if target.IsSuperadmin() && target.IsActive {
			n, err := countActiveSuperadmins(tx)
			if err != nil {
				return err
			}
			if n <= 1 {
				return apperrors.ErrLastSuperadmin
			}
		}
		return tx.Delete(&model.Admin{}, "id = ?", id).Error
	})
}

// SetActiveGuarded flips the active flag. Deactivating the last active
// superadmin fails with ErrLastSuperadmin.
func (r *adminRepository) SetActiveGuarded(ctx context.Context, id uuid.UUID, active bool) (*model.Admin, error) {
	var updated *model.Admin
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := lockAdmin(tx, id)
		if err != nil {
			return err
		}
		if !active && target.IsSuperadmin() && target.IsActive {
			n, err := countActiveSuperadmins(tx)
			if err != nil {
				return err
			}
			if n <= 1 {
				return apperrors.ErrLastSuperadmin
			}
		}
		target.IsActive = active
		if err := tx.Save(target).Error; err != nil {
			return err
		}
		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func lockAdmin(tx *gorm.DB, id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func countActiveSuperadmins(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Model(&model.Admin{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("role = ? AND is_active = ?", model.RoleSuperadmin, true).
		Count(&n).Error
	return n, err
}
