package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "bbshop/internal/errors"
	"bbshop/internal/model"
)

func superadminCaller() Caller {
	return Caller{ID: uuid.New(), Role: model.RoleSuperadmin}
}

func TestAdminService_Create(t *testing.T) {
	t.Run("default role and hashed password", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByEmail", mock.Anything, "new@bbshop.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)

		service := NewAdminService(mockRepo)
		admin, err := service.Create(context.Background(), AdminInput{
			Name:     "New Admin",
			Email:    "new@bbshop.com",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, admin.Role)
		assert.True(t, admin.IsActive)
		assert.NotEqual(t, "secret123", admin.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("secret123")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByEmail", mock.Anything, "taken@bbshop.com").Return(&model.Admin{Email: "taken@bbshop.com"}, nil)

		service := NewAdminService(mockRepo)
		_, err := service.Create(context.Background(), AdminInput{
			Name:     "New Admin",
			Email:    "taken@bbshop.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, apperrors.ErrAdminExists)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid role", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByEmail", mock.Anything, "new@bbshop.com").Return(nil, gorm.ErrRecordNotFound)

		service := NewAdminService(mockRepo)
		_, err := service.Create(context.Background(), AdminInput{
			Name:     "New Admin",
			Email:    "new@bbshop.com",
			Password: "secret123",
			Role:     "owner",
		})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAdminService_Update(t *testing.T) {
	targetID := uuid.New()

	target := func() *model.Admin {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), 10)
		return &model.Admin{
			ID:           targetID,
			Name:         "Target",
			Email:        "target@bbshop.com",
			PasswordHash: string(hashed),
			Role:         model.RoleAdmin,
			IsActive:     true,
		}
	}

	t.Run("stranger admin cannot update", func(t *testing.T) {
		service := NewAdminService(new(MockAdminRepository))
		caller := Caller{ID: uuid.New(), Role: model.RoleAdmin}

		_, err := service.Update(context.Background(), caller, targetID, AdminUpdate{Name: strPtr("X")})

		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	})

	t.Run("self update allowed", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(target(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)

		service := NewAdminService(mockRepo)
		caller := Caller{ID: targetID, Role: model.RoleAdmin}

		admin, err := service.Update(context.Background(), caller, targetID, AdminUpdate{Name: strPtr("Renamed")})

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", admin.Name)
	})

	t.Run("email change collides", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(target(), nil)
		mockRepo.On("FindByEmail", mock.Anything, "other@bbshop.com").Return(&model.Admin{
			ID:    uuid.New(),
			Email: "other@bbshop.com",
		}, nil)

		service := NewAdminService(mockRepo)
		caller := Caller{ID: targetID, Role: model.RoleAdmin}

		_, err := service.Update(context.Background(), caller, targetID, AdminUpdate{Email: strPtr("other@bbshop.com")})

		assert.ErrorIs(t, err, apperrors.ErrEmailInUse)
	})

	t.Run("password change verifies current password", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(target(), nil)

		service := NewAdminService(mockRepo)
		caller := Caller{ID: targetID, Role: model.RoleAdmin}

		_, err := service.Update(context.Background(), caller, targetID, AdminUpdate{
			CurrentPassword: strPtr("wrong"),
			NewPassword:     strPtr("newpass123"),
		})

		assert.ErrorIs(t, err, apperrors.ErrCurrentPasswordIncorrect)
	})

	t.Run("password change with correct current password", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(target(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)

		service := NewAdminService(mockRepo)
		caller := Caller{ID: targetID, Role: model.RoleAdmin}

		admin, err := service.Update(context.Background(), caller, targetID, AdminUpdate{
			CurrentPassword: strPtr("oldpass"),
			NewPassword:     strPtr("newpass123"),
		})

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("newpass123")))
	})

	t.Run("role change requires superadmin", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(target(), nil)

		service := NewAdminService(mockRepo)
		caller := Caller{ID: targetID, Role: model.RoleAdmin}

		_, err := service.Update(context.Background(), caller, targetID, AdminUpdate{
			Role: strPtr(model.RoleSuperadmin),
		})

		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	})

	t.Run("superadmin changes role", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(target(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)

		service := NewAdminService(mockRepo)

		admin, err := service.Update(context.Background(), superadminCaller(), targetID, AdminUpdate{
			Role: strPtr(model.RoleSuperadmin),
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleSuperadmin, admin.Role)
	})
}

func TestAdminService_Delete(t *testing.T) {
	t.Run("self delete forbidden", func(t *testing.T) {
		service := NewAdminService(new(MockAdminRepository))
		caller := superadminCaller()

		err := service.Delete(context.Background(), caller, caller.ID)

		assert.ErrorIs(t, err, apperrors.ErrSelfDelete)
	})

	t.Run("last superadmin protected", func(t *testing.T) {
		targetID := uuid.New()
		mockRepo := new(MockAdminRepository)
		mockRepo.On("DeleteGuarded", mock.Anything, targetID).Return(apperrors.ErrLastSuperadmin)

		service := NewAdminService(mockRepo)
		err := service.Delete(context.Background(), superadminCaller(), targetID)

		assert.ErrorIs(t, err, apperrors.ErrLastSuperadmin)
	})

	t.Run("unknown id", func(t *testing.T) {
		targetID := uuid.New()
		mockRepo := new(MockAdminRepository)
		mockRepo.On("DeleteGuarded", mock.Anything, targetID).Return(gorm.ErrRecordNotFound)

		service := NewAdminService(mockRepo)
		err := service.Delete(context.Background(), superadminCaller(), targetID)

		assert.ErrorIs(t, err, apperrors.ErrAdminNotFound)
	})
}

func TestAdminService_ToggleStatus(t *testing.T) {
	t.Run("self deactivation forbidden", func(t *testing.T) {
		service := NewAdminService(new(MockAdminRepository))
		caller := superadminCaller()

		_, err := service.ToggleStatus(context.Background(), caller, caller.ID)

		assert.ErrorIs(t, err, apperrors.ErrSelfDeactivate)
	})

	t.Run("last active superadmin protected", func(t *testing.T) {
		targetID := uuid.New()
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(&model.Admin{
			ID:       targetID,
			Role:     model.RoleSuperadmin,
			IsActive: true,
		}, nil)
		mockRepo.On("SetActiveGuarded", mock.Anything, targetID, false).Return(nil, apperrors.ErrLastSuperadmin)

		service := NewAdminService(mockRepo)
		_, err := service.ToggleStatus(context.Background(), superadminCaller(), targetID)

		assert.ErrorIs(t, err, apperrors.ErrLastSuperadmin)
	})

	t.Run("flips the active flag", func(t *testing.T) {
		targetID := uuid.New()
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, targetID).Return(&model.Admin{
			ID:       targetID,
			Role:     model.RoleAdmin,
			IsActive: true,
		}, nil)
		mockRepo.On("SetActiveGuarded", mock.Anything, targetID, false).Return(&model.Admin{
			ID:       targetID,
			Role:     model.RoleAdmin,
			IsActive: false,
		}, nil)

		service := NewAdminService(mockRepo)
		admin, err := service.ToggleStatus(context.Background(), superadminCaller(), targetID)

		assert.NoError(t, err)
		assert.False(t, admin.IsActive)
		mockRepo.AssertExpectations(t)
	})
}
