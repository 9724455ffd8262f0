package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bbshop/internal/model"
)

func testAdmin() *model.Admin {
	return &model.Admin{
		ID:       uuid.New(),
		Name:     "Owner",
		Email:    "owner@bbshop.com",
		Role:     model.RoleSuperadmin,
		IsActive: true,
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")
	admin := testAdmin()

	token, err := service.GenerateToken(admin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, admin.Name, claims.Name)
	assert.Equal(t, admin.Email, claims.Email)
	assert.Equal(t, admin.Role, claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateToken(testAdmin())
	assert.NoError(t, err)

	claims, err := NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := &Claims{
		AdminID: uuid.New(),
		Role:    model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	assert.NoError(t, err)

	parsed, err := NewJWTService("test-secret").ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, parsed)
}

func TestJWTService_MalformedToken(t *testing.T) {
	claims, err := NewJWTService("test-secret").ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
